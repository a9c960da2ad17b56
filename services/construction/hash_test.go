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

	"github.com/coinbase/rosetta-sdk-go/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirosystems/rosetta-stacks-sdk/codec"
	sdkTypes "github.com/hirosystems/rosetta-stacks-sdk/types"
)

func buildSignedTx(t *testing.T, tc *testingClient) string {
	senderKey, senderPubKey, senderAddr := testKeyPair(t)
	_, _, recipientAddr := testKeyPair(t)

	payloadsResp, perr := tc.servicer.ConstructionPayloads(context.Background(), &types.ConstructionPayloadsRequest{
		NetworkIdentifier: stacksNetworkIdentifier,
		Operations:        templateOperations(big.NewInt(1000), senderAddr, recipientAddr, stacksCurrencyConfig),
		Metadata:          templateParseMetadata(7, 360),
		PublicKeys: []*types.PublicKey{
			{Bytes: senderPubKey, CurveType: types.Secp256k1},
		},
	})
	require.Nil(t, perr)

	unsignedRaw, err := codec.DecodeHex(payloadsResp.UnsignedTransaction)
	require.NoError(t, err)
	unsignedFields, err := codec.Deserialize(unsignedRaw)
	require.NoError(t, err)
	sigHash := codec.TxHash(unsignedRaw)
	preHash := codec.PreSignHash(sigHash, unsignedFields.AuthType, unsignedFields.Fee, unsignedFields.Nonce)
	sig := codec.SignRecoverable(senderKey, preHash)

	combineResp, cerr := tc.servicer.ConstructionCombine(context.Background(), &types.ConstructionCombineRequest{
		NetworkIdentifier:   stacksNetworkIdentifier,
		UnsignedTransaction: payloadsResp.UnsignedTransaction,
		Signatures: []*types.Signature{
			{
				SigningPayload: payloadsResp.Payloads[0],
				PublicKey:      &types.PublicKey{Bytes: senderPubKey, CurveType: types.Secp256k1},
				SignatureType:  types.EcdsaRecovery,
				Bytes:          sig[:],
			},
		},
	})
	require.Nil(t, cerr)
	return combineResp.SignedTransaction
}

func TestConstructionHash(t *testing.T) {
	testingClient := newTestingClient()
	signedTx := buildSignedTx(t, testingClient)

	resp, err := testingClient.servicer.ConstructionHash(context.Background(), &types.ConstructionHashRequest{
		NetworkIdentifier: stacksNetworkIdentifier,
		SignedTransaction: signedTx,
	})
	require.Nil(t, err)
	require.NotNil(t, resp)
	assert.NotEmpty(t, resp.TransactionIdentifier.Hash)

	raw, derr := codec.DecodeHex(signedTx)
	require.NoError(t, derr)
	want := codec.TxHash(raw)
	assert.Equal(t, codec.EncodeHex(want[:]), resp.TransactionIdentifier.Hash)
}

func TestConstructionHashRejectsUnsigned(t *testing.T) {
	testingClient := newTestingClient()
	_, senderPubKey, senderAddr := testKeyPair(t)
	_, _, recipientAddr := testKeyPair(t)

	payloadsResp, perr := testingClient.servicer.ConstructionPayloads(context.Background(), &types.ConstructionPayloadsRequest{
		NetworkIdentifier: stacksNetworkIdentifier,
		Operations:        templateOperations(big.NewInt(1000), senderAddr, recipientAddr, stacksCurrencyConfig),
		Metadata:          templateParseMetadata(7, 360),
		PublicKeys: []*types.PublicKey{
			{Bytes: senderPubKey, CurveType: types.Secp256k1},
		},
	})
	require.Nil(t, perr)

	resp, err := testingClient.servicer.ConstructionHash(context.Background(), &types.ConstructionHashRequest{
		NetworkIdentifier: stacksNetworkIdentifier,
		SignedTransaction: payloadsResp.UnsignedTransaction,
	})
	assert.Nil(t, resp)
	require.NotNil(t, err)
	assert.Equal(t, sdkTypes.ErrTransactionNotSigned.Code, err.Code)
}

func TestConstructionHashRejectsEmptyTransaction(t *testing.T) {
	testingClient := newTestingClient()
	resp, err := testingClient.servicer.ConstructionHash(context.Background(), &types.ConstructionHashRequest{
		NetworkIdentifier: stacksNetworkIdentifier,
	})
	assert.Nil(t, resp)
	require.NotNil(t, err)
	assert.Equal(t, sdkTypes.ErrInvalidTransactionString.Code, err.Code)
}
