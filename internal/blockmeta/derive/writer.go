package derive

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-blockmeta/internal/blockmeta/model"
	"github.com/goodnatureofminers/blockinsight7000-blockmeta/internal/blockmeta/timekey"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

// Store is the write-once-per-key capability of the bucket store.
type Store interface {
	SetIfNotExists(ordinal uint64, key string, value model.BlockMeta) error
}

// Write derives the metadata of block and offers it to the store under the start-of-day and
// start-of-month keys of the block instant, using the block number as ordinal. Keys that
// already hold an entry keep it.
func Write(ctx context.Context, store Store, block model.Block) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	instant, meta, err := Derive(block)
	if err != nil {
		return err
	}

	for _, key := range []string{timekey.StartOfDayKey(instant), timekey.StartOfMonthKey(instant)} {
		if err := store.SetIfNotExists(meta.Number, key, meta); err != nil {
			return fmt.Errorf("set %s for block %d: %w", key, meta.Number, err)
		}
	}
	return nil
}
