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

package construction

import (
	"context"
	"math/big"
	"testing"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/coinbase/rosetta-sdk-go/types"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hirosystems/rosetta-stacks-sdk/addresscodec"
	"github.com/hirosystems/rosetta-stacks-sdk/configuration"
	sdkTypes "github.com/hirosystems/rosetta-stacks-sdk/types"
)

var (
	stacksCurrencyConfig = &types.Currency{
		Symbol:   "STX",
		Decimals: 6,
	}

	stacksNetworkIdentifier = &types.NetworkIdentifier{
		Network:    "testnet",
		Blockchain: "stacks",
	}
)

// mockClient is a hand-rolled stand-in for the node Client interface: the
// package has no mocks/ generator wired up, so tests set the return values
// directly instead of scripting expectations.
type mockClient struct {
	nonce       uint64
	balance     *big.Int
	feeRate     uint64
	broadcastID string

	getAccountErr   error
	getFeeRateErr   error
	broadcastErr    error
	lastBroadcastTx []byte
}

func (m *mockClient) GetAccount(ctx context.Context, address string) (uint64, *big.Int, error) {
	if m.getAccountErr != nil {
		return 0, nil, m.getAccountErr
	}
	return m.nonce, m.balance, nil
}

func (m *mockClient) GetFeeRate(ctx context.Context) (uint64, error) {
	if m.getFeeRateErr != nil {
		return 0, m.getFeeRateErr
	}
	return m.feeRate, nil
}

func (m *mockClient) BroadcastTransaction(ctx context.Context, rawTx []byte) (string, error) {
	m.lastBroadcastTx = rawTx
	if m.broadcastErr != nil {
		return "", m.broadcastErr
	}
	return m.broadcastID, nil
}

type testingClient struct {
	cfg        *configuration.Configuration
	mockClient *mockClient
	servicer   *APIService
}

func newTestingClient() *testingClient {
	return newTestingClientWithMode(configuration.ModeOnline)
}

func newTestingClientWithMode(mode configuration.Mode) *testingClient {
	cfg := &configuration.Configuration{
		Mode:    mode,
		Network: stacksNetworkIdentifier,
		RosettaCfg: configuration.RosettaConfig{
			Currency:               stacksCurrencyConfig,
			DefaultTransactionSize: sdkTypes.SingleSigStandardSize,
		},
		ServiceName: configuration.DefaultServiceName,
	}
	mc := &mockClient{
		nonce:       7,
		balance:     big.NewInt(1_000_000),
		feeRate:     2,
		broadcastID: "0xdeadbeef",
	}

	// UDP statsd writes never block on a listener, so a dummy loopback
	// address is enough to exercise the real Timer/Incr codepaths in tests.
	statsdClient, err := statsd.New("127.0.0.1:8125")
	if err != nil {
		panic(err)
	}

	servicer := NewAPIService(
		cfg,
		sdkTypes.LoadTypes(),
		sdkTypes.Errors,
		mc,
		zap.NewNop(),
		statsdClient,
	)

	return &testingClient{
		cfg:        cfg,
		mockClient: mc,
		servicer:   servicer,
	}
}

// testKeyPair returns a fresh secp256k1 key and its compressed public key,
// along with the testnet address it derives to.
func testKeyPair(t *testing.T) (*btcec.PrivateKey, []byte, string) {
	key, err := btcec.NewPrivateKey()
	require.NoError(t, err)
	pubKey := key.PubKey().SerializeCompressed()
	addr, err := addresscodec.DeriveAddress(pubKey, addresscodec.Testnet)
	require.NoError(t, err)
	return key, pubKey, addr
}

func templateOperations(
	amount *big.Int,
	senderAddr, recipientAddr string,
	currency *types.Currency,
) []*types.Operation {
	return []*types.Operation{
		{
			OperationIdentifier: &types.OperationIdentifier{Index: 0},
			Type:                sdkTypes.TokenTransferOpType,
			Account:             &types.AccountIdentifier{Address: senderAddr},
			Amount: &types.Amount{
				Value:    new(big.Int).Neg(amount).String(),
				Currency: currency,
			},
		},
		{
			OperationIdentifier: &types.OperationIdentifier{Index: 1},
			Type:                sdkTypes.TokenTransferOpType,
			Account:             &types.AccountIdentifier{Address: recipientAddr},
			Amount: &types.Amount{
				Value:    amount.String(),
				Currency: currency,
			},
		},
	}
}

func templateError(rErr *types.Error, context string) *types.Error {
	return &types.Error{
		Code:      rErr.Code,
		Message:   rErr.Message,
		Retriable: rErr.Retriable,
		Details: map[string]interface{}{
			"context": context,
		},
	}
}
