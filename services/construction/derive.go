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
	"github.com/hirosystems/rosetta-stacks-sdk/stats"
	sdkTypes "github.com/hirosystems/rosetta-stacks-sdk/types"
)

// ConstructionDerive implements the /construction/derive endpoint.
func (s *APIService) ConstructionDerive(
	ctx context.Context, req *types.ConstructionDeriveRequest,
) (*types.ConstructionDeriveResponse, *types.Error) {
	timer := stats.InitBlockchainClientTimer(s.statsdClient, stats.ConstructionDeriveKey)
	defer timer.Emit()

	if req.PublicKey == nil {
		stats.LogError(s.logger, "public key is not provided", stats.ConstructionDeriveKey, sdkTypes.ErrInvalidPublicKey)
		return nil, sdkTypes.ErrInvalidPublicKey
	}

	if req.PublicKey.CurveType != types.Secp256k1 {
		stats.LogError(s.logger, "unsupported curve type", stats.ConstructionDeriveKey, sdkTypes.ErrInvalidCurveType)
		return nil, sdkTypes.ErrInvalidCurveType
	}

	network, nerr := s.networkFor(req.NetworkIdentifier)
	if nerr != nil {
		return nil, nerr
	}

	address, err := addresscodec.DeriveAddress(req.PublicKey.Bytes, network)
	if err != nil {
		stats.LogError(s.logger, err.Error(), stats.ConstructionDeriveKey, sdkTypes.ErrInvalidPublicKey)
		return nil, sdkTypes.WrapErr(sdkTypes.ErrInvalidPublicKey, err)
	}

	return &types.ConstructionDeriveResponse{
		AccountIdentifier: &types.AccountIdentifier{
			Address: address,
		},
	}, nil
}
