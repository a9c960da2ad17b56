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

func TestGetAccountParsesBalance(t *testing.T) {
	mock := &mockJSONRPC{
		callFn: func(ctx context.Context, result interface{}, method string, args ...interface{}) error {
			assert.Equal(t, "stx_getAccount", method)
			out := result.(*rpcAccountResult)
			out.Nonce = 7
			out.Balance = "1000000"
			return nil
		},
	}

	nc := NewRPCNodeClient(mock, 4)
	nonce, balance, err := nc.GetAccount(context.Background(), "SP000000000000000000002Q6VF78")
	require.NoError(t, err)
	assert.EqualValues(t, 7, nonce)
	assert.Equal(t, "1000000", balance.String())
}

func TestGetFeeRate(t *testing.T) {
	mock := &mockJSONRPC{
		callFn: func(ctx context.Context, result interface{}, method string, args ...interface{}) error {
			assert.Equal(t, "stx_getFeeRate", method)
			*(result.(*uint64)) = 180
			return nil
		},
	}

	nc := NewRPCNodeClient(mock, 4)
	rate, err := nc.GetFeeRate(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 180, rate)
}

func TestBroadcastTransaction(t *testing.T) {
	mock := &mockJSONRPC{
		callFn: func(ctx context.Context, result interface{}, method string, args ...interface{}) error {
			assert.Equal(t, "stx_sendRawTransaction", method)
			require.Len(t, args, 1)
			hexArg, ok := args[0].(string)
			require.True(t, ok)
			assert.Equal(t, "0x0102", hexArg)
			out := result.(*rpcBroadcastResult)
			out.TxID = "0xabc"
			return nil
		},
	}

	nc := NewRPCNodeClient(mock, 4)
	txid, err := nc.BroadcastTransaction(context.Background(), []byte{0x01, 0x02})
	require.NoError(t, err)
	assert.Equal(t, "0xabc", txid)
}
