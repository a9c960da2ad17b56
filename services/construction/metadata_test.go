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
	"errors"
	"math/big"
	"testing"

	"github.com/coinbase/rosetta-sdk-go/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirosystems/rosetta-stacks-sdk/client"
	"github.com/hirosystems/rosetta-stacks-sdk/configuration"
	sdkTypes "github.com/hirosystems/rosetta-stacks-sdk/types"
)

func templateMetadataOptions(senderAddr, recipientAddr string, size int64) map[string]interface{} {
	opts := &client.Options{
		SenderAddress:    senderAddr,
		RecipientAddress: recipientAddr,
		Amount:           "1000",
		Type:             sdkTypes.TokenTransferOpType,
		Currency:         stacksCurrencyConfig,
		Size:             size,
	}
	m, err := client.MarshalJSONMap(opts)
	if err != nil {
		panic(err)
	}
	return m
}

func TestConstructionMetadata(t *testing.T) {
	testingClient := newTestingClient()
	_, senderPubKey, senderAddr := testKeyPair(t)
	_, _, recipientAddr := testKeyPair(t)
	_, _, otherAddr := testKeyPair(t)

	tests := map[string]struct {
		request       *types.ConstructionMetadataRequest
		expectedError *types.Error
		check         func(t *testing.T, resp *types.ConstructionMetadataResponse)
	}{
		"happy path": {
			request: &types.ConstructionMetadataRequest{
				NetworkIdentifier: stacksNetworkIdentifier,
				Options:           templateMetadataOptions(senderAddr, recipientAddr, 180),
			},
			check: func(t *testing.T, resp *types.ConstructionMetadataResponse) {
				require.Len(t, resp.SuggestedFee, 1)
				var md client.Metadata
				require.NoError(t, client.UnmarshalJSONMap(resp.Metadata, &md))
				assert.EqualValues(t, 7, md.AccountSequence)
				// feeRate(2) * size(180) * multiplier(1) = 360
				assert.Equal(t, "360", resp.SuggestedFee[0].Value)
			},
		},
		"happy path: public key matches sender": {
			request: &types.ConstructionMetadataRequest{
				NetworkIdentifier: stacksNetworkIdentifier,
				Options:           templateMetadataOptions(senderAddr, recipientAddr, 180),
				PublicKeys: []*types.PublicKey{
					{Bytes: senderPubKey, CurveType: types.Secp256k1},
				},
			},
			check: func(t *testing.T, resp *types.ConstructionMetadataResponse) {
				require.Len(t, resp.SuggestedFee, 1)
			},
		},
		"error: public key does not match sender": {
			request: &types.ConstructionMetadataRequest{
				NetworkIdentifier: stacksNetworkIdentifier,
				Options:           templateMetadataOptions(otherAddr, recipientAddr, 180),
				PublicKeys: []*types.PublicKey{
					{Bytes: senderPubKey, CurveType: types.Secp256k1},
				},
			},
			expectedError: sdkTypes.ErrInvalidPublicKey,
		},
		"error: missing size": {
			request: &types.ConstructionMetadataRequest{
				NetworkIdentifier: stacksNetworkIdentifier,
				Options:           templateMetadataOptions(senderAddr, recipientAddr, 0),
			},
			expectedError: sdkTypes.ErrMissingTransactionSize,
		},
		"error: invalid sender address": {
			request: &types.ConstructionMetadataRequest{
				NetworkIdentifier: stacksNetworkIdentifier,
				Options:           templateMetadataOptions("not-an-address", recipientAddr, 180),
			},
			expectedError: sdkTypes.ErrInvalidSender,
		},
		"error: invalid recipient address": {
			request: &types.ConstructionMetadataRequest{
				NetworkIdentifier: stacksNetworkIdentifier,
				Options:           templateMetadataOptions(senderAddr, "not-an-address", 180),
			},
			expectedError: sdkTypes.ErrInvalidRecipient,
		},
		"error: offline mode": {
			request: &types.ConstructionMetadataRequest{
				NetworkIdentifier: stacksNetworkIdentifier,
				Options:           templateMetadataOptions(senderAddr, recipientAddr, 180),
			},
			expectedError: sdkTypes.ErrUnavailableOffline,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			tc := testingClient
			if name == "error: offline mode" {
				tc = newTestingClientWithMode(configuration.ModeOffline)
			}

			resp, err := tc.servicer.ConstructionMetadata(
				context.Background(),
				test.request,
			)

			if test.expectedError != nil {
				require.Nil(t, resp)
				assert.Equal(t, test.expectedError.Code, err.Code)
				return
			}

			require.Nil(t, err)
			require.NotNil(t, resp)
			test.check(t, resp)
		})
	}
}

func TestConstructionMetadataNonceError(t *testing.T) {
	testingClient := newTestingClient()
	testingClient.mockClient.getAccountErr = errors.New("connection refused")
	_, _, senderAddr := testKeyPair(t)
	_, _, recipientAddr := testKeyPair(t)

	resp, err := testingClient.servicer.ConstructionMetadata(context.Background(), &types.ConstructionMetadataRequest{
		NetworkIdentifier: stacksNetworkIdentifier,
		Options:           templateMetadataOptions(senderAddr, recipientAddr, 180),
	})

	assert.Nil(t, resp)
	require.NotNil(t, err)
	assert.Equal(t, sdkTypes.ErrNonceError.Code, err.Code)
}

func TestComputeSuggestedFee(t *testing.T) {
	multiplier := 1.5
	fee := computeSuggestedFee(10, 180, &multiplier, nil)
	assert.Equal(t, "2700", fee.String())

	noMultiplier := computeSuggestedFee(10, 180, nil, nil)
	assert.Equal(t, "1800", noMultiplier.String())

	capped := computeSuggestedFee(10, 180, nil, big.NewInt(1000))
	assert.Equal(t, "1000", capped.String())
}
