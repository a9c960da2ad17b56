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

package client

import (
	"context"
	"math/big"

	"golang.org/x/sync/semaphore"

	"github.com/hirosystems/rosetta-stacks-sdk/codec"
)

const (
	semaphoreWeight = int64(1)
)

// NodeClient is the minimal surface the construction endpoints need from
// the upstream node: nonce/fee-rate lookup and broadcast. It deliberately
// excludes everything a block/mempool indexer would need; that belongs to
// a DataAdapter.
type NodeClient interface {
	// GetAccount returns the current nonce and spendable balance for address.
	GetAccount(ctx context.Context, address string) (nonce uint64, balance *big.Int, err error)

	// GetFeeRate returns the chain's current fee rate in micro-STX per byte.
	GetFeeRate(ctx context.Context) (uint64, error)

	// BroadcastTransaction submits a signed, serialized transaction and
	// returns its transaction id.
	BroadcastTransaction(ctx context.Context, rawTx []byte) (txid string, err error)
}

// RPCNodeClient implements NodeClient over JSON-RPC, bounding concurrent
// in-flight requests with a weighted semaphore the same way the teacher
// bounds trace-RPC concurrency in client.go's TraceBlockByHash.
type RPCNodeClient struct {
	rpc  JSONRPC
	pool *semaphore.Weighted
}

// NewRPCNodeClient wraps rpc with a connection pool bounded to
// maxConnections concurrent in-flight calls.
func NewRPCNodeClient(rpc JSONRPC, maxConnections int64) *RPCNodeClient {
	return &RPCNodeClient{
		rpc:  rpc,
		pool: semaphore.NewWeighted(maxConnections),
	}
}

type rpcAccountResult struct {
	Nonce   uint64 `json:"nonce"`
	Balance string `json:"balance"`
}

// GetAccount calls stx_getAccount.
func (c *RPCNodeClient) GetAccount(ctx context.Context, address string) (uint64, *big.Int, error) {
	if err := c.pool.Acquire(ctx, semaphoreWeight); err != nil {
		return 0, nil, err
	}
	defer c.pool.Release(semaphoreWeight)

	var result rpcAccountResult
	if err := c.rpc.CallContext(ctx, &result, "stx_getAccount", address); err != nil {
		return 0, nil, err
	}

	balance, ok := new(big.Int).SetString(result.Balance, 10) //nolint:gomnd
	if !ok {
		balance = big.NewInt(0)
	}
	return result.Nonce, balance, nil
}

// GetFeeRate calls stx_getFeeRate.
func (c *RPCNodeClient) GetFeeRate(ctx context.Context) (uint64, error) {
	if err := c.pool.Acquire(ctx, semaphoreWeight); err != nil {
		return 0, err
	}
	defer c.pool.Release(semaphoreWeight)

	var feeRate uint64
	if err := c.rpc.CallContext(ctx, &feeRate, "stx_getFeeRate"); err != nil {
		return 0, err
	}
	return feeRate, nil
}

type rpcBroadcastResult struct {
	TxID string `json:"txid"`
}

// BroadcastTransaction calls stx_sendRawTransaction.
func (c *RPCNodeClient) BroadcastTransaction(ctx context.Context, rawTx []byte) (string, error) {
	if err := c.pool.Acquire(ctx, semaphoreWeight); err != nil {
		return "", err
	}
	defer c.pool.Release(semaphoreWeight)

	var result rpcBroadcastResult
	if err := c.rpc.CallContext(ctx, &result, "stx_sendRawTransaction", codec.EncodeHex(rawTx)); err != nil {
		return "", err
	}
	return result.TxID, nil
}
