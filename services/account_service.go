// Copyright 2020 Coinbase, Inc.
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

package services

import (
	"context"

	"github.com/coinbase/rosetta-sdk-go/types"

	"github.com/hirosystems/rosetta-stacks-sdk/addresscodec"
	"github.com/hirosystems/rosetta-stacks-sdk/configuration"
	sdkTypes "github.com/hirosystems/rosetta-stacks-sdk/types"
)

// AccountAPIService implements the server.AccountAPIServicer interface.
type AccountAPIService struct {
	config      *configuration.Configuration
	types       *sdkTypes.Types
	errors      []*types.Error
	dataAdapter DataAdapter
}

// NewAccountAPIService returns a new *AccountAPIService.
func NewAccountAPIService(
	cfg *configuration.Configuration,
	loadedTypes *sdkTypes.Types,
	errors []*types.Error,
	dataAdapter DataAdapter,
) *AccountAPIService {
	return &AccountAPIService{
		config:      cfg,
		types:       loadedTypes,
		errors:      errors,
		dataAdapter: dataAdapter,
	}
}

// AccountBalance implements /account/balance.
func (s *AccountAPIService) AccountBalance(
	ctx context.Context,
	request *types.AccountBalanceRequest,
) (*types.AccountBalanceResponse, *types.Error) {
	if s.config.IsOfflineMode() {
		return nil, sdkTypes.ErrUnavailableOffline
	}

	if request.AccountIdentifier == nil {
		return nil, sdkTypes.ErrInvalidInput
	}

	if _, err := addresscodec.ValidateAddressAnyNetwork(request.AccountIdentifier.Address); err != nil {
		return nil, sdkTypes.WrapErr(sdkTypes.ErrInvalidAccount, err)
	}

	var atBlockHeight *int64
	if request.BlockIdentifier != nil && request.BlockIdentifier.Index != nil {
		atBlockHeight = request.BlockIdentifier.Index
	}

	balance, err := s.dataAdapter.GetAccountBalance(ctx, request.AccountIdentifier.Address, atBlockHeight)
	if err != nil {
		return nil, sdkTypes.WrapErr(sdkTypes.ErrAccountNotFound, err)
	}

	current, err := s.dataAdapter.GetCurrentBlock(ctx)
	if err != nil {
		return nil, sdkTypes.WrapErr(sdkTypes.ErrBlockNotFound, err)
	}

	blockIdentifier := &types.BlockIdentifier{Index: current.Height, Hash: current.Hash}
	if atBlockHeight != nil {
		found, lookupErr := s.dataAdapter.GetBlockByHeight(ctx, *atBlockHeight)
		if lookupErr != nil || !found.Found {
			return nil, sdkTypes.ErrBlockNotFound
		}
		blockIdentifier = &types.BlockIdentifier{Index: found.Result.Height, Hash: found.Result.Hash}
	}

	return &types.AccountBalanceResponse{
		BlockIdentifier: blockIdentifier,
		Balances: []*types.Amount{
			{
				Value:    balance.String(),
				Currency: s.types.Currency,
			},
		},
	}, nil
}

// AccountCoins implements /account/coins. Unimplemented: the chain is
// account-based, not UTXO-based, so there are no per-account coins to list.
func (s *AccountAPIService) AccountCoins(
	ctx context.Context,
	request *types.AccountCoinsRequest,
) (*types.AccountCoinsResponse, *types.Error) {
	return nil, sdkTypes.WrapErr(sdkTypes.ErrInternalError, nil)
}
