package main

import (
	"io"
	"log"
	"os"

	"github.com/alecthomas/kong"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type cli struct {
	Pack    packCmd    `cmd:"" help:"Pack low/high/kind into an identifier."`
	Inspect inspectCmd `cmd:"" help:"Show the fields of identifiers given as text or raw bits."`
	Batch   batchCmd   `cmd:"" help:"Convert between JSON identifier lists and batch files."`
	Stats   statsCmd   `cmd:"" help:"Summarise the identifiers of a batch file."`
}

// runEnv is bound into every command's Run method.
type runEnv struct {
	out     io.Writer
	printer *message.Printer
}

func newRunEnv(out io.Writer) *runEnv {
	return &runEnv{
		out:     out,
		printer: message.NewPrinter(language.English),
	}
}

func run(argv []string, out io.Writer, options ...kong.Option) error {
	var args cli
	options = append([]kong.Option{
		kong.Name("identctl"),
		kong.Description("Pack, inspect and convert 64-bit packed identifiers."),
		kong.Writers(out, os.Stderr),
	}, options...)
	parser, err := kong.New(&args, options...)
	if err != nil {
		return err
	}
	ctx, err := parser.Parse(argv)
	if err != nil {
		return err
	}
	return ctx.Run(newRunEnv(out))
}

func main() {
	log.SetFlags(0)

	if err := run(os.Args[1:], os.Stdout, kong.UsageOnError()); err != nil {
		log.Fatal(err)
	}
}
