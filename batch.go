package ident

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/delaneyj/toolbelt/bytebufferpool"
	"github.com/klauspost/compress/zstd"
	"github.com/zeebo/xxh3"
)

// BatchMagic is the 4-byte header of a batch document.
var BatchMagic = [4]byte{'I', 'D', 'N', 'T'}

const (
	BatchHeaderSize  = 8
	BatchTrailerSize = 8

	// BatchFlagZstd marks a zstd-compressed body.
	BatchFlagZstd byte = 0x01

	batchKnownFlags = BatchFlagZstd

	// MaxCompressedBatchBody bounds the decompressed body of a zstd batch.
	MaxCompressedBatchBody = 1 << 30
)

// BatchOptions controls EncodeBatch.
type BatchOptions struct {
	// Compress stores the body as a zstd frame.
	Compress bool
}

// BatchTrailer describes the fixed footer of a batch document.
type BatchTrailer struct {
	Count    uint32
	Checksum uint32
}

// ParseBatchTrailer parses the header magic and the last 8 bytes of a batch.
func ParseBatchTrailer(b []byte) (BatchTrailer, error) {
	if len(b) < BatchHeaderSize+BatchTrailerSize {
		return BatchTrailer{}, fmt.Errorf("%w: %d bytes", ErrBatchTruncated, len(b))
	}
	if !bytes.Equal(b[:len(BatchMagic)], BatchMagic[:]) {
		return BatchTrailer{}, ErrBatchMagic
	}
	start := len(b) - BatchTrailerSize
	return BatchTrailer{
		Count:    binary.LittleEndian.Uint32(b[start : start+4]),
		Checksum: binary.LittleEndian.Uint32(b[start+4 : start+8]),
	}, nil
}

// AppendBatchTrailer appends t to dst and returns the extended slice.
func AppendBatchTrailer(dst []byte, t BatchTrailer) []byte {
	dst = binary.LittleEndian.AppendUint32(dst, t.Count)
	return binary.LittleEndian.AppendUint32(dst, t.Checksum)
}

func batchChecksum(body []byte) uint32 {
	return uint32(xxh3.Hash(body))
}

// EncodeBatch encodes ids, in order, into a batch document.
func EncodeBatch(ids []Identifier, opts BatchOptions) ([]byte, error) {
	if uint64(len(ids)) > math.MaxUint32 {
		return nil, fmt.Errorf("batch too large: %d identifiers", len(ids))
	}

	body := bytebufferpool.Get()
	defer bytebufferpool.Put(body)
	var tmp [BinarySize]byte
	for _, id := range ids {
		binary.LittleEndian.PutUint64(tmp[:], id.ToBits())
		body.Write(tmp[:])
	}
	raw := body.Bytes()

	var flags byte
	if opts.Compress && len(ids) > 0 {
		if len(raw) > MaxCompressedBatchBody {
			return nil, fmt.Errorf("batch too large to compress: %d bytes", len(raw))
		}
		flags |= BatchFlagZstd
	}

	out := make([]byte, 0, BatchHeaderSize+len(raw)+BatchTrailerSize)
	out = append(out, BatchMagic[:]...)
	out = append(out, flags, 0, 0, 0)
	if flags&BatchFlagZstd != 0 {
		enc := zstdEncoderPool.Get()
		out = enc.EncodeAll(raw, out)
		zstdEncoderPool.Put(enc)
	} else {
		out = append(out, raw...)
	}
	return AppendBatchTrailer(out, BatchTrailer{
		Count:    uint32(len(ids)),
		Checksum: batchChecksum(raw),
	}), nil
}

// DecodeBatch decodes a batch document produced by EncodeBatch.
func DecodeBatch(b []byte) ([]Identifier, error) {
	tr, err := ParseBatchTrailer(b)
	if err != nil {
		return nil, err
	}
	flags := b[len(BatchMagic)]
	if flags&^batchKnownFlags != 0 {
		return nil, fmt.Errorf("unsupported batch flags 0x%02x", flags)
	}
	if reserved := b[len(BatchMagic)+1 : BatchHeaderSize]; !bytes.Equal(reserved, []byte{0, 0, 0}) {
		return nil, fmt.Errorf("unsupported batch header: reserved bytes % x", reserved)
	}

	want := uint64(tr.Count) * BinarySize
	body := b[BatchHeaderSize : len(b)-BatchTrailerSize]
	if flags&BatchFlagZstd != 0 && len(body) > 0 {
		body, err = decompressBatchBody(body, want)
		if err != nil {
			return nil, err
		}
	}

	if uint64(len(body)) != want {
		return nil, fmt.Errorf("%w: body has %d bytes, count %d needs %d", ErrBatchTruncated, len(body), tr.Count, want)
	}
	if got := batchChecksum(body); got != tr.Checksum {
		return nil, fmt.Errorf("%w: got=0x%08X want=0x%08X", ErrBatchChecksum, got, tr.Checksum)
	}

	ids := make([]Identifier, tr.Count)
	for i := range ids {
		ids[i] = FromBits(binary.LittleEndian.Uint64(body[i*BinarySize:]))
	}
	return ids, nil
}

// decompressBatchBody inflates a zstd body that must hold exactly want bytes.
// Output never grows past want, whatever the frame claims.
func decompressBatchBody(src []byte, want uint64) ([]byte, error) {
	if want > MaxCompressedBatchBody {
		return nil, fmt.Errorf("%w: count needs %d bytes, compressed bodies hold at most %d", ErrBatchTruncated, want, MaxCompressedBatchBody)
	}
	var h zstd.Header
	if err := h.Decode(src); err != nil {
		return nil, fmt.Errorf("decompress batch: %w", err)
	}
	if h.HasFCS && h.FrameContentSize != want {
		return nil, fmt.Errorf("%w: frame holds %d bytes, count needs %d", ErrBatchTruncated, h.FrameContentSize, want)
	}

	dec := zstdDecoderPool.Get()
	defer func() {
		dec.Reset(nil)
		zstdDecoderPool.Put(dec)
	}()
	if err := dec.Reset(bytes.NewReader(src)); err != nil {
		return nil, fmt.Errorf("decompress batch: %w", err)
	}

	body := make([]byte, want)
	if _, err := io.ReadFull(dec, body); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: body is shorter than count %d needs", ErrBatchTruncated, want/BinarySize)
		}
		return nil, fmt.Errorf("decompress batch: %w", err)
	}
	var extra [1]byte
	n, err := dec.Read(extra[:])
	if n > 0 {
		return nil, fmt.Errorf("%w: body is longer than count %d needs", ErrBatchTruncated, want/BinarySize)
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decompress batch: %w", err)
	}
	return body, nil
}
