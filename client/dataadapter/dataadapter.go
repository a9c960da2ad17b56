// Copyright 2022 Coinbase, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package dataadapter implements services.DataAdapter over JSON-RPC. It is
// kept separate from client so that client itself never has to import
// services: services already imports services/construction, which imports
// client for its Options/Metadata wire types, and a client -> services edge
// would close that into an import cycle.
package dataadapter

import (
	"context"
	"math/big"

	"golang.org/x/sync/semaphore"

	"github.com/hirosystems/rosetta-stacks-sdk/client"
	"github.com/hirosystems/rosetta-stacks-sdk/services"
)

const semaphoreWeight = int64(1)

// RPCDataAdapter implements services.DataAdapter over the same JSON-RPC
// transport RPCNodeClient uses for construction, against a node that also
// indexes block and mempool history (as the Stacks node itself does).
// Deployments that front a separate indexer can satisfy services.DataAdapter
// without this type; it exists so the server can run against nothing more
// than NODE_URL.
type RPCDataAdapter struct {
	rpc  client.JSONRPC
	pool *semaphore.Weighted
}

// NewRPCDataAdapter wraps rpc with a connection pool bounded to
// maxConnections concurrent in-flight calls.
func NewRPCDataAdapter(rpc client.JSONRPC, maxConnections int64) *RPCDataAdapter {
	return &RPCDataAdapter{
		rpc:  rpc,
		pool: semaphore.NewWeighted(maxConnections),
	}
}

type rpcBlock struct {
	Height       int64  `json:"height"`
	Hash         string `json:"hash"`
	ParentHash   string `json:"parent_hash"`
	ParentHeight int64  `json:"parent_height"`
	Timestamp    int64  `json:"timestamp"`
}

func (b *rpcBlock) toBlock() *services.Block {
	if b == nil {
		return nil
	}
	return &services.Block{
		Height:       b.Height,
		Hash:         b.Hash,
		ParentHash:   b.ParentHash,
		ParentHeight: b.ParentHeight,
		Timestamp:    b.Timestamp,
	}
}

type rpcTransaction struct {
	TxID             string `json:"txid"`
	Type             string `json:"type"`
	SenderAddress    string `json:"sender_address"`
	RecipientAddress string `json:"recipient_address"`
	Amount           string `json:"amount"`
	Fee              string `json:"fee"`
	Status           string `json:"status"`
}

func parseAmount(s string) *big.Int {
	amount, ok := new(big.Int).SetString(s, 10) //nolint:gomnd
	if !ok {
		return big.NewInt(0)
	}
	return amount
}

func (t *rpcTransaction) toTransaction() *services.Transaction {
	if t == nil {
		return nil
	}
	return &services.Transaction{
		TxID:             t.TxID,
		Type:             t.Type,
		SenderAddress:    t.SenderAddress,
		RecipientAddress: t.RecipientAddress,
		Amount:           parseAmount(t.Amount),
		Fee:              parseAmount(t.Fee),
		Status:           t.Status,
	}
}

// GetBlockByHeight calls stx_getBlockByHeight.
func (c *RPCDataAdapter) GetBlockByHeight(ctx context.Context, height int64) (services.Lookup[*services.Block], error) {
	if err := c.pool.Acquire(ctx, semaphoreWeight); err != nil {
		return services.Lookup[*services.Block]{}, err
	}
	defer c.pool.Release(semaphoreWeight)

	var result *rpcBlock
	if err := c.rpc.CallContext(ctx, &result, "stx_getBlockByHeight", height); err != nil {
		return services.Lookup[*services.Block]{}, err
	}
	return services.Lookup[*services.Block]{Found: result != nil, Result: result.toBlock()}, nil
}

// GetBlockByHash calls stx_getBlockByHash.
func (c *RPCDataAdapter) GetBlockByHash(ctx context.Context, hash string) (services.Lookup[*services.Block], error) {
	if err := c.pool.Acquire(ctx, semaphoreWeight); err != nil {
		return services.Lookup[*services.Block]{}, err
	}
	defer c.pool.Release(semaphoreWeight)

	var result *rpcBlock
	if err := c.rpc.CallContext(ctx, &result, "stx_getBlockByHash", hash); err != nil {
		return services.Lookup[*services.Block]{}, err
	}
	return services.Lookup[*services.Block]{Found: result != nil, Result: result.toBlock()}, nil
}

// GetCurrentBlock calls stx_getCurrentBlock.
func (c *RPCDataAdapter) GetCurrentBlock(ctx context.Context) (*services.Block, error) {
	if err := c.pool.Acquire(ctx, semaphoreWeight); err != nil {
		return nil, err
	}
	defer c.pool.Release(semaphoreWeight)

	var result *rpcBlock
	if err := c.rpc.CallContext(ctx, &result, "stx_getCurrentBlock"); err != nil {
		return nil, err
	}
	return result.toBlock(), nil
}

// GetBlockTxs calls stx_getBlockTransactions.
func (c *RPCDataAdapter) GetBlockTxs(ctx context.Context, blockHash string) ([]*services.Transaction, error) {
	if err := c.pool.Acquire(ctx, semaphoreWeight); err != nil {
		return nil, err
	}
	defer c.pool.Release(semaphoreWeight)

	var result []*rpcTransaction
	if err := c.rpc.CallContext(ctx, &result, "stx_getBlockTransactions", blockHash); err != nil {
		return nil, err
	}

	txs := make([]*services.Transaction, len(result))
	for i, tx := range result {
		txs[i] = tx.toTransaction()
	}
	return txs, nil
}

// GetTx calls stx_getTransaction.
func (c *RPCDataAdapter) GetTx(ctx context.Context, txID string) (services.Lookup[*services.Transaction], error) {
	if err := c.pool.Acquire(ctx, semaphoreWeight); err != nil {
		return services.Lookup[*services.Transaction]{}, err
	}
	defer c.pool.Release(semaphoreWeight)

	var result *rpcTransaction
	if err := c.rpc.CallContext(ctx, &result, "stx_getTransaction", txID); err != nil {
		return services.Lookup[*services.Transaction]{}, err
	}
	return services.Lookup[*services.Transaction]{Found: result != nil, Result: result.toTransaction()}, nil
}

// GetMempoolTxs calls stx_getMempoolTransactions.
func (c *RPCDataAdapter) GetMempoolTxs(ctx context.Context, limit, offset int) ([]*services.Transaction, error) {
	if err := c.pool.Acquire(ctx, semaphoreWeight); err != nil {
		return nil, err
	}
	defer c.pool.Release(semaphoreWeight)

	var result []*rpcTransaction
	if err := c.rpc.CallContext(ctx, &result, "stx_getMempoolTransactions", limit, offset); err != nil {
		return nil, err
	}

	txs := make([]*services.Transaction, len(result))
	for i, tx := range result {
		txs[i] = tx.toTransaction()
	}
	return txs, nil
}

// GetAccountBalance calls stx_getAccountBalance, optionally pinned to a
// historical block height.
func (c *RPCDataAdapter) GetAccountBalance(ctx context.Context, address string, atBlockHeight *int64) (*big.Int, error) {
	if err := c.pool.Acquire(ctx, semaphoreWeight); err != nil {
		return nil, err
	}
	defer c.pool.Release(semaphoreWeight)

	var result string
	var err error
	if atBlockHeight != nil {
		err = c.rpc.CallContext(ctx, &result, "stx_getAccountBalance", address, *atBlockHeight)
	} else {
		err = c.rpc.CallContext(ctx, &result, "stx_getAccountBalance", address)
	}
	if err != nil {
		return nil, err
	}
	return parseAmount(result), nil
}
