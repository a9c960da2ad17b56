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

	"github.com/coinbase/rosetta-sdk-go/types"

	"github.com/hirosystems/rosetta-stacks-sdk/addresscodec"
	"github.com/hirosystems/rosetta-stacks-sdk/codec"
	sdkTypes "github.com/hirosystems/rosetta-stacks-sdk/types"
)

// ConstructionParse implements the /construction/parse endpoint.
func (s *APIService) ConstructionParse(
	ctx context.Context,
	req *types.ConstructionParseRequest,
) (*types.ConstructionParseResponse, *types.Error) {
	raw, err := codec.DecodeHex(req.Transaction)
	if err != nil {
		return nil, sdkTypes.WrapErr(sdkTypes.ErrInvalidTransactionString, err)
	}

	fields, err := codec.Deserialize(raw)
	if err != nil {
		return nil, sdkTypes.WrapErr(sdkTypes.ErrInvalidTransactionString, err)
	}

	if req.Signed && !codec.IsSigned(fields) {
		return nil, sdkTypes.ErrTransactionNotSigned
	}

	network, nerr := s.networkFor(req.NetworkIdentifier)
	if nerr != nil {
		return nil, nerr
	}

	senderAddr := addresscodec.Encode(fields.Version, fields.SignerAddress[:])
	recipientAddr := addresscodec.Encode(fields.RecipientVersion, fields.RecipientAddress[:])

	status := ""
	ops := Reverse(&MinedTransfer{
		TxID:             "",
		SenderAddress:    senderAddr,
		RecipientAddress: recipientAddr,
		Amount:           new(big.Int).SetUint64(fields.Amount),
		Fee:              new(big.Int).SetUint64(fields.Fee),
		Currency:         s.config.RosettaCfg.Currency,
		Status:           status,
	})
	// Unsigned/parsed operations don't carry a terminal status.
	for _, op := range ops {
		op.Status = nil
	}

	resp := &types.ConstructionParseResponse{
		Operations:               ops,
		AccountIdentifierSigners: []*types.AccountIdentifier{},
	}

	if req.Signed {
		unsignedFields := *fields
		unsignedFields.Signature = [65]byte{}
		unsigned := codec.SerializeUnsigned(unsignedFields)
		sigHash := codec.TxHash(unsigned)
		preHash := codec.PreSignHash(sigHash, fields.AuthType, fields.Fee, fields.Nonce)

		pubKey, rerr := codec.RecoverPublicKey(preHash, fields.Signature[:])
		if rerr != nil {
			return nil, sdkTypes.WrapErr(sdkTypes.ErrSignatureNotVerified, rerr)
		}

		signerAddr, derr := addresscodec.DeriveAddress(pubKey, network)
		if derr != nil {
			return nil, sdkTypes.WrapErr(sdkTypes.ErrSignatureNotVerified, derr)
		}

		resp.AccountIdentifierSigners = []*types.AccountIdentifier{
			{Address: signerAddr},
		}
	}

	return resp, nil
}
