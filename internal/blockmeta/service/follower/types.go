package follower

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-blockmeta/internal/blockmeta/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// BlockSource exposes the chain the follower walks.
	BlockSource interface {
		LatestHeight(ctx context.Context) (uint64, error)
		FetchBlock(ctx context.Context, height uint64) (model.Block, error)
	}
	// Processor consumes blocks strictly in height order.
	Processor interface {
		Process(ctx context.Context, block model.Block) error
	}
	Metrics interface {
		ObserveFetchWindow(err error, blocks int, started time.Time)
		SetNextHeight(height uint64)
		SetTipHeight(height uint64)
	}
)
