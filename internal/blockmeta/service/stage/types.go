package stage

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-blockmeta/internal/blockmeta/changelog"
	"github.com/goodnatureofminers/blockinsight7000-blockmeta/internal/blockmeta/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Store is the bucket store capability: first-write-wins offers and the delta log.
	Store interface {
		SetIfNotExists(ordinal uint64, key string, value model.BlockMeta) error
		Deltas() []model.Delta
	}
	// Sink receives the change records of one block, in order.
	Sink interface {
		WriteRecords(ctx context.Context, blockNumber uint64, records []changelog.Record) error
	}
	Metrics interface {
		ObserveBlock(err error, records int, started time.Time)
	}
)
