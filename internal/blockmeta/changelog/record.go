// Package changelog turns bucket store deltas into column-level change records for the SQL sink.
package changelog

import (
	"encoding/hex"
	"strconv"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-blockmeta/internal/blockmeta/model"
	"github.com/goodnatureofminers/blockinsight7000-blockmeta/internal/blockmeta/timekey"
)

// Table is the sink table every record targets.
const Table = "block_meta"

// Column names of the block_meta table.
const (
	ColumnAt         = "at"
	ColumnNumber     = "number"
	ColumnHash       = "hash"
	ColumnParentHash = "parent_hash"
	ColumnTimestamp  = "timestamp"
)

// ValueKind tells the sink how a rendered value should be typed.
type ValueKind int

const (
	KindTimestamp ValueKind = iota + 1
	KindUint
	KindHex
)

// Value is a single column value rendered to the string form the sink consumes.
type Value struct {
	Kind ValueKind
	Text string
}

// String returns the rendered value.
func (v Value) String() string {
	return v.Text
}

// TimestampValue renders t through timekey.Format.
func TimestampValue(t time.Time) *Value {
	return &Value{Kind: KindTimestamp, Text: timekey.Format(t)}
}

// UintValue renders v in decimal.
func UintValue(v uint64) *Value {
	return &Value{Kind: KindUint, Text: strconv.FormatUint(v, 10)}
}

// HexValue renders b as lowercase hex without prefix.
func HexValue(b []byte) *Value {
	return &Value{Kind: KindHex, Text: Hex(b)}
}

// Hex encodes raw bytes as lowercase hex without a 0x prefix; empty input encodes to "".
func Hex(b []byte) string {
	return hex.EncodeToString(b)
}

// Column is the before/after pair of one column. A nil side is absent.
type Column struct {
	Name string
	Old  *Value
	New  *Value
}

// Record describes one row mutation of Table, keyed by the bucket key.
type Record struct {
	Table      string
	PrimaryKey string
	Ordinal    uint64
	Operation  model.Operation
	Columns    []Column
}

// Column looks up a column by name.
func (r Record) Column(name string) (Column, bool) {
	for _, c := range r.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

func (r *Record) change(name string, before, after *Value) *Record {
	r.Columns = append(r.Columns, Column{Name: name, Old: before, New: after})
	return r
}
