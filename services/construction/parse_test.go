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

	"github.com/hirosystems/rosetta-stacks-sdk/addresscodec"
	"github.com/hirosystems/rosetta-stacks-sdk/codec"
)

func TestConstructionParse(t *testing.T) {
	testingClient := newTestingClient()
	senderKey, senderPubKey, senderAddr := testKeyPair(t)
	_, _, recipientAddr := testKeyPair(t)

	payloadsResp, perr := testingClient.servicer.ConstructionPayloads(context.Background(), &types.ConstructionPayloadsRequest{
		NetworkIdentifier: stacksNetworkIdentifier,
		Operations:        templateOperations(bigThousand(), senderAddr, recipientAddr, stacksCurrencyConfig),
		Metadata:          templateParseMetadata(7, 360),
		PublicKeys: []*types.PublicKey{
			{Bytes: senderPubKey, CurveType: types.Secp256k1},
		},
	})
	require.Nil(t, perr)
	require.NotNil(t, payloadsResp)

	unsignedRaw, err := codec.DecodeHex(payloadsResp.UnsignedTransaction)
	require.NoError(t, err)
	unsignedFields, err := codec.Deserialize(unsignedRaw)
	require.NoError(t, err)

	sigHash := codec.TxHash(unsignedRaw)
	preHash := codec.PreSignHash(sigHash, unsignedFields.AuthType, unsignedFields.Fee, unsignedFields.Nonce)
	sig := codec.SignRecoverable(senderKey, preHash)

	combineResp, cerr := testingClient.servicer.ConstructionCombine(context.Background(), &types.ConstructionCombineRequest{
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
	require.NotNil(t, combineResp)

	t.Run("unsigned", func(t *testing.T) {
		resp, err := testingClient.servicer.ConstructionParse(context.Background(), &types.ConstructionParseRequest{
			NetworkIdentifier: stacksNetworkIdentifier,
			Signed:            false,
			Transaction:       payloadsResp.UnsignedTransaction,
		})
		require.Nil(t, err)
		require.NotNil(t, resp)

		require.Len(t, resp.Operations, 3)
		assert.Nil(t, resp.Operations[0].Status)
		assert.Equal(t, senderAddr, resp.Operations[1].Account.Address)
		assert.Equal(t, recipientAddr, resp.Operations[2].Account.Address)
		assert.Empty(t, resp.AccountIdentifierSigners)
	})

	t.Run("signed", func(t *testing.T) {
		resp, err := testingClient.servicer.ConstructionParse(context.Background(), &types.ConstructionParseRequest{
			NetworkIdentifier: stacksNetworkIdentifier,
			Signed:            true,
			Transaction:       combineResp.SignedTransaction,
		})
		require.Nil(t, err)
		require.NotNil(t, resp)

		require.Len(t, resp.AccountIdentifierSigners, 1)
		assert.Equal(t, senderAddr, resp.AccountIdentifierSigners[0].Address)
	})

	t.Run("error: signed flag set but transaction unsigned", func(t *testing.T) {
		resp, err := testingClient.servicer.ConstructionParse(context.Background(), &types.ConstructionParseRequest{
			NetworkIdentifier: stacksNetworkIdentifier,
			Signed:            true,
			Transaction:       payloadsResp.UnsignedTransaction,
		})
		require.Nil(t, resp)
		require.NotNil(t, err)
	})

	t.Run("error: malformed hex", func(t *testing.T) {
		resp, err := testingClient.servicer.ConstructionParse(context.Background(), &types.ConstructionParseRequest{
			NetworkIdentifier: stacksNetworkIdentifier,
			Transaction:       "not-hex",
		})
		require.Nil(t, resp)
		require.NotNil(t, err)
	})

	// sanity: derived sender address round-trips through c32check.
	_, err = addresscodec.ValidateAddressAnyNetwork(senderAddr)
	require.NoError(t, err)
}

func bigThousand() *big.Int {
	return big.NewInt(1000)
}
