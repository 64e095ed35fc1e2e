package changelog

import (
	"errors"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-blockmeta/internal/blockmeta/model"
	"github.com/goodnatureofminers/blockinsight7000-blockmeta/internal/blockmeta/timekey"
)

var (
	// ErrUnsupportedOperation reports a delta operation this stage does not handle.
	ErrUnsupportedOperation = errors.New("unsupported delta operation")
	// ErrMalformedDelta reports a delta missing the values its operation requires.
	ErrMalformedDelta = errors.New("malformed delta")
)

// Build converts deltas into change records, one per delta and in delivery order.
// The first failing delta aborts the whole batch and no records are returned.
func Build(deltas []model.Delta) ([]Record, error) {
	records := make([]Record, 0, len(deltas))
	for i, delta := range deltas {
		record, err := BuildRecord(delta)
		if err != nil {
			return nil, fmt.Errorf("delta %d (key %s, ordinal %d): %w", i, delta.Key, delta.Ordinal, err)
		}
		records = append(records, record)
	}
	return records, nil
}

// BuildRecord converts a single delta.
func BuildRecord(delta model.Delta) (Record, error) {
	switch delta.Operation {
	case model.OperationCreate:
		return buildCreate(delta)
	case model.OperationUpdate:
		return buildUpdate(delta)
	case model.OperationDelete:
		return Record{}, fmt.Errorf("%w: delete of a block metadata bucket", ErrUnsupportedOperation)
	default:
		return Record{}, fmt.Errorf("%w: %s (%d)", ErrUnsupportedOperation, delta.Operation, delta.Operation)
	}
}

func buildCreate(delta model.Delta) (Record, error) {
	if delta.NewValue == nil {
		return Record{}, fmt.Errorf("%w: create without new value", ErrMalformedDelta)
	}
	at, err := timekey.Parse(delta.Key)
	if err != nil {
		return Record{}, fmt.Errorf("resolve bucket key: %w", err)
	}

	v := delta.NewValue
	r := newRecord(delta)
	r.change(ColumnAt, nil, TimestampValue(at)).
		change(ColumnNumber, nil, UintValue(v.Number)).
		change(ColumnHash, nil, HexValue(v.Hash)).
		change(ColumnParentHash, nil, HexValue(v.ParentHash)).
		change(ColumnTimestamp, nil, TimestampValue(v.Timestamp.Time()))
	return *r, nil
}

// at is never re-emitted: the bucket key of an existing row does not change.
func buildUpdate(delta model.Delta) (Record, error) {
	if delta.OldValue == nil || delta.NewValue == nil {
		return Record{}, fmt.Errorf("%w: update requires old and new values", ErrMalformedDelta)
	}

	o, n := delta.OldValue, delta.NewValue
	r := newRecord(delta)
	r.change(ColumnNumber, UintValue(o.Number), UintValue(n.Number)).
		change(ColumnHash, HexValue(o.Hash), HexValue(n.Hash)).
		change(ColumnParentHash, HexValue(o.ParentHash), HexValue(n.ParentHash)).
		change(ColumnTimestamp, TimestampValue(o.Timestamp.Time()), TimestampValue(n.Timestamp.Time()))
	return *r, nil
}

func newRecord(delta model.Delta) *Record {
	return &Record{
		Table:      Table,
		PrimaryKey: delta.Key,
		Ordinal:    delta.Ordinal,
		Operation:  delta.Operation,
		Columns:    make([]Column, 0, 5),
	}
}
