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

	"github.com/coinbase/rosetta-sdk-go/types"

	"github.com/hirosystems/rosetta-stacks-sdk/addresscodec"
	"github.com/hirosystems/rosetta-stacks-sdk/client"
	"github.com/hirosystems/rosetta-stacks-sdk/codec"
	sdkTypes "github.com/hirosystems/rosetta-stacks-sdk/types"
)

// ConstructionPayloads implements /construction/payloads endpoint.
//
// Payloads is called with an array of operations and the response from
// /construction/metadata. It returns an unsigned transaction blob and a
// collection of payloads that must be signed by particular
// AccountIdentifiers using a certain SignatureType. The array of operations
// provided in transaction construction cannot specify all effects of a
// transaction, but they can deterministically specify its intent, which is
// sufficient for construction.
func (s *APIService) ConstructionPayloads(
	ctx context.Context,
	req *types.ConstructionPayloadsRequest,
) (*types.ConstructionPayloadsResponse, *types.Error) {
	intent, ierr := Forward(req.Operations, s.config.RosettaCfg.Currency)
	if ierr != nil {
		return nil, sdkTypes.WrapErr(sdkTypes.ErrInvalidOperation, ierr)
	}

	if len(req.PublicKeys) != 1 {
		if len(req.PublicKeys) == 0 {
			return nil, sdkTypes.ErrEmptyPublicKey
		}
		return nil, sdkTypes.ErrNeedOnePublicKey
	}
	if req.PublicKeys[0].CurveType != types.Secp256k1 {
		return nil, sdkTypes.ErrInvalidCurveType
	}

	var metadata client.ParseMetadata
	if err := client.UnmarshalJSONMap(req.Metadata, &metadata); err != nil {
		return nil, sdkTypes.WrapErr(sdkTypes.ErrInvalidInput, err)
	}

	network, nerr := s.networkFor(req.NetworkIdentifier)
	if nerr != nil {
		return nil, nerr
	}

	_, senderHash, err := addresscodec.Decode(intent.SenderAddress)
	if err != nil {
		return nil, sdkTypes.WrapErr(sdkTypes.ErrInvalidSender, err)
	}
	recipientVersion, recipientHash, err := addresscodec.Decode(intent.RecipientAddress)
	if err != nil {
		return nil, sdkTypes.WrapErr(sdkTypes.ErrInvalidRecipient, err)
	}

	fields := &codec.TxFields{
		Version:          addresscodec.VersionFor(network),
		ChainID:          chainIDFor(network),
		AuthType:         codec.AuthStandard,
		Nonce:            metadata.Nonce,
		Fee:              metadata.Fee,
		RecipientVersion: recipientVersion,
		Amount:           intent.Amount.Uint64(),
	}
	copy(fields.SignerAddress[:], senderHash)
	copy(fields.RecipientAddress[:], recipientHash)

	unsigned := codec.SerializeUnsigned(*fields)
	sigHash := codec.TxHash(unsigned)
	preHash := codec.PreSignHash(sigHash, codec.AuthStandard, fields.Fee, fields.Nonce)

	return &types.ConstructionPayloadsResponse{
		UnsignedTransaction: codec.EncodeHex(unsigned),
		Payloads: []*types.SigningPayload{
			{
				AccountIdentifier: &types.AccountIdentifier{Address: intent.SenderAddress},
				Bytes:             preHash[:],
				SignatureType:     types.EcdsaRecovery,
			},
		},
	}, nil
}

func chainIDFor(network addresscodec.Network) uint32 {
	if network == addresscodec.Testnet {
		return codec.ChainIDTestnet
	}
	return codec.ChainIDMainnet
}
