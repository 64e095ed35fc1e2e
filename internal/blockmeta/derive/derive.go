// Package derive builds block metadata from raw blocks and offers it to the bucket store.
package derive

import (
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-blockmeta/internal/blockmeta/model"
)

var (
	// ErrMissingField reports a raw block lacking a field required to derive metadata.
	ErrMissingField = errors.New("missing block field")
	// ErrInvalidTimestamp reports a header timestamp that cannot be bucketed.
	ErrInvalidTimestamp = errors.New("invalid block timestamp")
)

// Bucket keys carry a four-digit year.
const (
	minYear = 0
	maxYear = 9999
)

// Derive returns the block instant and its metadata record. The block must carry a header
// with a timestamp; anything else is reported as ErrMissingField.
func Derive(block model.Block) (time.Time, model.BlockMeta, error) {
	if block.Header == nil {
		return time.Time{}, model.BlockMeta{}, fmt.Errorf("%w: header of block %d", ErrMissingField, block.Number)
	}
	if block.Header.Timestamp == nil {
		return time.Time{}, model.BlockMeta{}, fmt.Errorf("%w: header timestamp of block %d", ErrMissingField, block.Number)
	}

	ts := *block.Header.Timestamp
	if ts.Nanos >= uint32(time.Second) {
		return time.Time{}, model.BlockMeta{}, fmt.Errorf("%w: block %d timestamp nanos %d out of range", ErrInvalidTimestamp, block.Number, ts.Nanos)
	}
	instant := ts.Time()
	if y := instant.Year(); y < minYear || y > maxYear {
		return time.Time{}, model.BlockMeta{}, fmt.Errorf("%w: block %d timestamp year %d out of range", ErrInvalidTimestamp, block.Number, y)
	}

	return instant, model.BlockMeta{
		Number:     block.Number,
		Hash:       block.Hash,
		ParentHash: block.Header.ParentHash,
		Timestamp:  ts,
	}, nil
}
