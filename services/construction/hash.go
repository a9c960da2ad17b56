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
)

// ConstructionHash implements the /construction/hash endpoint.
//
// TransactionHash returns the network-specific transaction hash for a
// signed transaction.
func (s *APIService) ConstructionHash(
	ctx context.Context,
	req *types.ConstructionHashRequest,
) (*types.TransactionIdentifierResponse, *types.Error) {
	if len(req.SignedTransaction) == 0 {
		return nil, sdkTypes.WrapErrString(sdkTypes.ErrInvalidTransactionString, "signed transaction is not provided")
	}

	raw, err := codec.DecodeHex(req.SignedTransaction)
	if err != nil {
		return nil, sdkTypes.WrapErr(sdkTypes.ErrInvalidTransactionString, err)
	}

	fields, err := codec.Deserialize(raw)
	if err != nil {
		return nil, sdkTypes.WrapErr(sdkTypes.ErrInvalidTransactionString, err)
	}

	if !codec.IsSigned(fields) {
		return nil, sdkTypes.ErrTransactionNotSigned
	}

	hash := codec.TxHash(raw)

	return &types.TransactionIdentifierResponse{
		TransactionIdentifier: &types.TransactionIdentifier{
			Hash: codec.EncodeHex(hash[:]),
		},
	}, nil
}
