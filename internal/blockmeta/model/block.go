// Package model defines domain models for block metadata indexing.
package model

import "time"

// Timestamp is a block header time as delivered by the host: seconds and nanoseconds since epoch.
type Timestamp struct {
	Seconds int64
	Nanos   uint32
}

// Time converts the timestamp into a UTC instant.
func (t Timestamp) Time() time.Time {
	return time.Unix(t.Seconds, int64(t.Nanos)).UTC()
}

// BlockHeader carries the header fields required to derive block metadata.
type BlockHeader struct {
	ParentHash []byte
	Timestamp  *Timestamp
}

// Block is a raw inbound block supplied by the host once per invocation.
type Block struct {
	Number uint64
	Hash   []byte
	Header *BlockHeader
}

// BlockMeta is the metadata record stored under each bucket key.
type BlockMeta struct {
	Number     uint64
	Hash       []byte
	ParentHash []byte
	Timestamp  Timestamp
}
