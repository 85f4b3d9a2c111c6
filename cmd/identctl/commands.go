package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/fxamacker/cbor/v2"
	ident "github.com/starfederation/ident-go"
	"github.com/starfederation/ident-go/idset"
)

type packCmd struct {
	Low      uint32 `help:"Low segment."`
	High     uint32 `help:"High segment value; bits 31 and 30 are discarded."`
	Kind     string `help:"Identifier kind." enum:"entity,pair" default:"entity"`
	Inactive bool   `help:"Set the inactive flag."`
}

func (c *packCmd) Run(env *runEnv) error {
	kind, err := ident.ParseKind(c.Kind)
	if err != nil {
		return err
	}
	id := ident.New(c.Low, c.High, kind)
	if c.Inactive {
		id = id.Deactivate()
	}
	_, err = fmt.Fprintf(env.out, "bits\t%d\nhex\t0x%016x\ntext\t%s\n", id.ToBits(), id.ToBits(), id)
	return err
}

type inspectCmd struct {
	Values []string `arg:"" help:"Identifiers in text form (12v55[pair]) or raw bits (decimal or 0x hex)."`
}

func (c *inspectCmd) Run(env *runEnv) error {
	for _, v := range c.Values {
		id, err := ident.ParseIdentifier(v)
		if err != nil {
			return err
		}
		// bits stays ungrouped so it can be fed back to inspect.
		if _, err := fmt.Fprintf(env.out, "%s\n  bits    %d (0x%016x)\n", id, id.ToBits(), id.ToBits()); err != nil {
			return err
		}
		_, err = env.printer.Fprintf(env.out,
			"  low     %d\n  high    0x%08x\n  value   %d\n  kind    %s\n  active  %t\n",
			id.Low(), id.High(), id.Value(), id.Kind(), id.IsActive(),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

type batchCmd struct {
	Encode batchEncodeCmd `cmd:"" help:"Encode a JSON list of identifiers into a batch file."`
	Decode batchDecodeCmd `cmd:"" help:"Decode a batch file to stdout."`
}

type batchEncodeCmd struct {
	In       string `help:"JSON list of identifiers." type:"existingfile" required:""`
	Out      string `help:"Batch file to write." required:""`
	Compress bool   `help:"Compress the batch body with zstd."`
}

func (c *batchEncodeCmd) Run(env *runEnv) error {
	data, err := os.ReadFile(c.In)
	if err != nil {
		return err
	}
	ids, err := ident.ParseJSONList(data)
	if err != nil {
		return fmt.Errorf("%s: %w", c.In, err)
	}
	doc, err := ident.EncodeBatch(ids, ident.BatchOptions{Compress: c.Compress})
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.Out, doc, 0o644); err != nil {
		return err
	}
	log.Printf("identctl: wrote %d identifier(s) to %s (%d bytes)", len(ids), c.Out, len(doc))
	return nil
}

type batchDecodeCmd struct {
	File   string `arg:"" help:"Batch file." type:"existingfile"`
	Format string `help:"Output format." enum:"json,text,cbor" default:"json"`
}

func (c *batchDecodeCmd) Run(env *runEnv) error {
	ids, err := readBatchFile(c.File)
	if err != nil {
		return err
	}
	switch c.Format {
	case "text":
		for _, id := range ids {
			if _, err := fmt.Fprintln(env.out, id); err != nil {
				return err
			}
		}
		return nil
	case "cbor":
		out, err := cbor.Marshal(ids)
		if err != nil {
			return err
		}
		_, err = env.out.Write(out)
		return err
	default:
		return json.NewEncoder(env.out).Encode(ids)
	}
}

type statsCmd struct {
	File string `arg:"" help:"Batch file." type:"existingfile"`
}

func (c *statsCmd) Run(env *runEnv) error {
	ids, err := readBatchFile(c.File)
	if err != nil {
		return err
	}
	set := idset.New(ids...)
	p := env.printer
	if _, err := p.Fprintf(env.out,
		"identifiers  %d\ndistinct     %d\nentities     %d\npairs        %d\ninactive     %d\n",
		len(ids), set.Len(), set.CountKind(ident.KindEntity), set.CountKind(ident.KindPair), set.CountInactive(),
	); err != nil {
		return err
	}
	if lo, ok := set.Min(); ok {
		hi, _ := set.Max()
		if _, err := fmt.Fprintf(env.out, "min          %s\nmax          %s\n", lo, hi); err != nil {
			return err
		}
	}
	return nil
}

func readBatchFile(path string) ([]ident.Identifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ids, err := ident.DecodeBatch(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ids, nil
}
