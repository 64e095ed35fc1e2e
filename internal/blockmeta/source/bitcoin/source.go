// Package bitcoin implements a block source over the bitcoind JSON-RPC API.
package bitcoin

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/goodnatureofminers/blockinsight7000-blockmeta/internal/blockmeta/model"
	"github.com/goodnatureofminers/blockinsight7000-blockmeta/pkg/safe"
	"go.uber.org/ratelimit"
)

// Source fetches block headers and converts them into raw blocks.
type Source struct {
	rpc     RPCClient
	limiter ratelimit.Limiter
}

// NewSource creates a Source issuing at most rps RPC calls per second; rps <= 0 disables the limit.
func NewSource(rpc RPCClient, rps int) *Source {
	limiter := ratelimit.NewUnlimited()
	if rps > 0 {
		limiter = ratelimit.New(rps)
	}
	return &Source{rpc: rpc, limiter: limiter}
}

// LatestHeight returns the latest block height from the node.
func (s *Source) LatestHeight(ctx context.Context) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.limiter.Take()
	count, err := s.rpc.GetBlockCount()
	if err != nil {
		return 0, fmt.Errorf("get block count: %w", err)
	}
	height, err := safe.Uint64(count)
	if err != nil {
		return 0, fmt.Errorf("block count overflow: %w", err)
	}
	return height, nil
}

// FetchBlock retrieves the header of the block at height.
func (s *Source) FetchBlock(ctx context.Context, height uint64) (model.Block, error) {
	rpcHeight, err := safe.Int64(height)
	if err != nil {
		return model.Block{}, fmt.Errorf("block height %d exceeds rpc limit: %w", height, err)
	}
	if err := ctx.Err(); err != nil {
		return model.Block{}, err
	}

	s.limiter.Take()
	hash, err := s.rpc.GetBlockHash(rpcHeight)
	if err != nil {
		return model.Block{}, fmt.Errorf("get block hash at height %d: %w", height, err)
	}

	if err := ctx.Err(); err != nil {
		return model.Block{}, err
	}
	s.limiter.Take()
	header, err := s.rpc.GetBlockHeaderVerbose(hash)
	if err != nil {
		return model.Block{}, fmt.Errorf("get block header %s: %w", hash, err)
	}

	return BuildBlockFromHeader(*header)
}

// BuildBlockFromHeader maps a verbose header into a raw block. Hashes keep the display byte
// order, so they hex-encode to the strings the node reports. The genesis block has no parent
// and maps to an empty parent hash.
func BuildBlockFromHeader(src btcjson.GetBlockHeaderVerboseResult) (model.Block, error) {
	height, err := safe.Uint64(src.Height)
	if err != nil {
		return model.Block{}, fmt.Errorf("block height %d overflow: %w", src.Height, err)
	}
	hash, err := hex.DecodeString(src.Hash)
	if err != nil {
		return model.Block{}, fmt.Errorf("block %d hash decode: %w", height, err)
	}
	var parent []byte
	if src.PreviousHash != "" {
		parent, err = hex.DecodeString(src.PreviousHash)
		if err != nil {
			return model.Block{}, fmt.Errorf("block %d previous hash decode: %w", height, err)
		}
	}

	return model.Block{
		Number: height,
		Hash:   hash,
		Header: &model.BlockHeader{
			ParentHash: parent,
			Timestamp:  &model.Timestamp{Seconds: src.Time},
		},
	}, nil
}
