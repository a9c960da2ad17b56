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

	"github.com/hirosystems/rosetta-stacks-sdk/codec"
	sdkTypes "github.com/hirosystems/rosetta-stacks-sdk/types"

	"github.com/hirosystems/rosetta-stacks-sdk/stats"
)

// ConstructionCombine implements /construction/combine endpoint.
//
// Combine creates a network-specific transaction from an unsigned
// transaction and the signature(s) provided by the caller. The returned
// signed transaction is sent to /construction/submit by the caller.
func (s *APIService) ConstructionCombine(
	ctx context.Context,
	req *types.ConstructionCombineRequest,
) (*types.ConstructionCombineResponse, *types.Error) {
	timer := stats.InitBlockchainClientTimer(s.statsdClient, stats.ConstructionCombineKey)
	defer timer.Emit()

	response, err := s.constructionCombine(req)
	if err != nil {
		stats.IncrementErrorCount(s.statsdClient, stats.ConstructionCombineKey, "ErrConstructionCombine")
		stats.LogError(s.logger, err.Message, stats.ConstructionCombineKey, err)
		return nil, err
	}

	return response, nil
}

func (s *APIService) constructionCombine(
	req *types.ConstructionCombineRequest,
) (*types.ConstructionCombineResponse, *types.Error) {
	if len(req.Signatures) != 1 {
		return nil, sdkTypes.ErrNeedOnlyOneSignature
	}
	sig := req.Signatures[0]

	unsigned, err := codec.DecodeHex(req.UnsignedTransaction)
	if err != nil {
		return nil, sdkTypes.WrapErr(sdkTypes.ErrInvalidTransactionString, err)
	}

	fields, err := codec.Deserialize(unsigned)
	if err != nil {
		return nil, sdkTypes.WrapErr(sdkTypes.ErrInvalidTransactionString, err)
	}

	if len(sig.Bytes) != 65 {
		return nil, sdkTypes.ErrInvalidSignature
	}
	sig65, nerr := codec.NormalizeSignature(sig.Bytes)
	if nerr != nil {
		return nil, sdkTypes.WrapErr(sdkTypes.ErrInvalidSignature, nerr)
	}

	sigHash := codec.TxHash(unsigned)
	preHash := codec.PreSignHash(sigHash, fields.AuthType, fields.Fee, fields.Nonce)

	var claimedPubKey []byte
	if sig.PublicKey != nil {
		claimedPubKey = sig.PublicKey.Bytes
	}

	ok, verr := codec.RecoverAndVerify(preHash, sig65[:], claimedPubKey)
	if verr != nil {
		return nil, sdkTypes.WrapErr(sdkTypes.ErrSignatureNotVerified, verr)
	}
	if !ok {
		return nil, sdkTypes.ErrSignatureNotVerified
	}

	signed := codec.SerializeSigned(*fields, sig65)

	return &types.ConstructionCombineResponse{
		SignedTransaction: codec.EncodeHex(signed),
	}, nil
}
