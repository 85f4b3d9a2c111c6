package ident

import (
	"github.com/delaneyj/toolbelt"
	"github.com/klauspost/compress/zstd"
	"github.com/minio/simdjson-go"
)

var (
	parsedJSONPool  = toolbelt.New(func() *simdjson.ParsedJson { return &simdjson.ParsedJson{} })
	zstdEncoderPool = toolbelt.New(newZstdEncoder)
	zstdDecoderPool = toolbelt.New(newZstdDecoder)
)

// zstdWindowSize is the encoder window; decoders refuse frames asking for more.
const zstdWindowSize = 8 << 20

func newZstdEncoder() *zstd.Encoder {
	// Only EncodeAll is used, so no writer is attached.
	enc, _ := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedDefault),
		zstd.WithEncoderConcurrency(1),
		zstd.WithWindowSize(zstdWindowSize),
	)
	return enc
}

func newZstdDecoder() *zstd.Decoder {
	dec, _ := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderMaxMemory(MaxCompressedBatchBody),
		zstd.WithDecoderMaxWindow(zstdWindowSize),
	)
	return dec
}

func getParsedJSON() *simdjson.ParsedJson {
	return parsedJSONPool.Get()
}

func putParsedJSON(pj *simdjson.ParsedJson) {
	if pj == nil {
		return
	}
	parsedJSONPool.Put(pj)
}
