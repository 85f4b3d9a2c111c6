package ident

import "errors"

var (
	ErrInvalidText    = errors.New("ident: invalid identifier text")
	ErrInvalidLength  = errors.New("ident: invalid binary length")
	ErrInvalidJSON    = errors.New("ident: invalid identifier json")
	ErrBatchMagic     = errors.New("ident: missing batch magic")
	ErrBatchTruncated = errors.New("ident: batch truncated")
	ErrBatchChecksum  = errors.New("ident: batch checksum mismatch")
)
