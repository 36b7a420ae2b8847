// Package codec encodes records into the bounded byte form stored by every
// substrate. Records are CBOR maps keyed by small integers; an encoding larger
// than the ceiling is an error, never a truncation.
package codec

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/mesh-intelligence/estate/pkg/types"
)

// MaxRecordSize is the capacity ceiling, in bytes, for one encoded record.
const MaxRecordSize = 1024

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	if encMode, err = cbor.CoreDetEncOptions().EncMode(); err != nil {
		panic(fmt.Errorf("codec: enc mode: %w", err))
	}
	decMode, err = cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		MaxMapPairs: 64,
	}.DecMode()
	if err != nil {
		panic(fmt.Errorf("codec: dec mode: %w", err))
	}
}

// Encode encodes v, failing with types.ErrRecordTooLarge past MaxRecordSize
// and with types.ErrInvalidText when a string is not valid UTF-8.
func Encode(v any) ([]byte, error) {
	return encodeLimit(v, MaxRecordSize)
}

func encodeLimit(v any, limit int) ([]byte, error) {
	data, err := encMode.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding %T: %w", v, err)
	}
	if len(data) > limit {
		return nil, fmt.Errorf("encoding %T: %d bytes, limit %d: %w", v, len(data), limit, types.ErrRecordTooLarge)
	}
	// The encoder writes strings as given; the decoder rejects invalid UTF-8.
	// Anything Decode would refuse must never reach a table.
	var readBack any
	if err := decMode.Unmarshal(data, &readBack); err != nil {
		return nil, fmt.Errorf("encoding %T: %v: %w", v, err, types.ErrInvalidText)
	}
	return data, nil
}

// Decode decodes a stored record. Any failure wraps types.ErrCorruptRecord.
func Decode[R any](data []byte) (R, error) {
	var r R
	if len(data) > MaxRecordSize {
		return r, fmt.Errorf("decoding %T: %d bytes: %w", r, len(data), types.ErrCorruptRecord)
	}
	if err := decMode.Unmarshal(data, &r); err != nil {
		return r, fmt.Errorf("decoding %T: %v: %w", r, err, types.ErrCorruptRecord)
	}
	return r, nil
}
