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

package dataadapter

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockJSONRPC struct {
	callFn func(ctx context.Context, result interface{}, method string, args ...interface{}) error
}

func (m *mockJSONRPC) CallContext(ctx context.Context, result interface{}, method string, args ...interface{}) error {
	return m.callFn(ctx, result, method, args...)
}

func (m *mockJSONRPC) BatchCallContext(ctx context.Context, b []rpc.BatchElem) error { return nil }
func (m *mockJSONRPC) Close()                                                        {}

func TestGetCurrentBlock(t *testing.T) {
	mock := &mockJSONRPC{
		callFn: func(ctx context.Context, result interface{}, method string, args ...interface{}) error {
			assert.Equal(t, "stx_getCurrentBlock", method)
			out := result.(**rpcBlock)
			*out = &rpcBlock{Height: 100, Hash: "0xb100", ParentHash: "0xb099", ParentHeight: 99, Timestamp: 1000}
			return nil
		},
	}

	da := NewRPCDataAdapter(mock, 4)
	block, err := da.GetCurrentBlock(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 100, block.Height)
	assert.Equal(t, "0xb100", block.Hash)
}

func TestGetBlockByHeightNotFound(t *testing.T) {
	mock := &mockJSONRPC{
		callFn: func(ctx context.Context, result interface{}, method string, args ...interface{}) error {
			assert.Equal(t, "stx_getBlockByHeight", method)
			return nil
		},
	}

	da := NewRPCDataAdapter(mock, 4)
	lookup, err := da.GetBlockByHeight(context.Background(), 9999)
	require.NoError(t, err)
	assert.False(t, lookup.Found)
}

func TestGetAccountBalanceHistorical(t *testing.T) {
	mock := &mockJSONRPC{
		callFn: func(ctx context.Context, result interface{}, method string, args ...interface{}) error {
			assert.Equal(t, "stx_getAccountBalance", method)
			require.Len(t, args, 2)
			assert.EqualValues(t, 50, args[1])
			*(result.(*string)) = "250000"
			return nil
		},
	}

	da := NewRPCDataAdapter(mock, 4)
	height := int64(50)
	balance, err := da.GetAccountBalance(context.Background(), "SP000000000000000000002Q6VF78", &height)
	require.NoError(t, err)
	assert.Equal(t, "250000", balance.String())
}

func TestGetMempoolTxs(t *testing.T) {
	mock := &mockJSONRPC{
		callFn: func(ctx context.Context, result interface{}, method string, args ...interface{}) error {
			assert.Equal(t, "stx_getMempoolTransactions", method)
			out := result.(*[]*rpcTransaction)
			*out = []*rpcTransaction{
				{TxID: "0x1", Amount: "100", Fee: "10", Status: "pending"},
			}
			return nil
		},
	}

	da := NewRPCDataAdapter(mock, 4)
	txs, err := da.GetMempoolTxs(context.Background(), 2500, 0)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "0x1", txs[0].TxID)
	assert.Equal(t, "100", txs[0].Amount.String())
}
