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

package services

import (
	"context"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/coinbase/rosetta-sdk-go/types"
	"github.com/coinbase/rosetta-sdk-go/utils"
	"go.uber.org/zap"

	"github.com/hirosystems/rosetta-stacks-sdk/configuration"
	"github.com/hirosystems/rosetta-stacks-sdk/stats"
	sdkTypes "github.com/hirosystems/rosetta-stacks-sdk/types"
)

// NetworkAPIService implements the server.NetworkAPIServicer interface.
type NetworkAPIService struct {
	config       *configuration.Configuration
	types        *sdkTypes.Types
	errors       []*types.Error
	dataAdapter  DataAdapter
	logger       *zap.Logger
	statsdClient *statsd.Client
}

// NewNetworkAPIService creates a new instance of a NetworkAPIService.
func NewNetworkAPIService(
	cfg *configuration.Configuration,
	loadedTypes *sdkTypes.Types,
	errors []*types.Error,
	dataAdapter DataAdapter,
	logger *zap.Logger,
	statsdClient *statsd.Client,
) *NetworkAPIService {
	return &NetworkAPIService{
		config:       cfg,
		types:        loadedTypes,
		errors:       errors,
		dataAdapter:  dataAdapter,
		logger:       logger,
		statsdClient: statsdClient,
	}
}

// NetworkList implements the /network/list endpoint.
func (s *NetworkAPIService) NetworkList(
	ctx context.Context,
	request *types.MetadataRequest,
) (*types.NetworkListResponse, *types.Error) {
	timer := stats.InitBlockchainClientTimer(s.statsdClient, stats.NetworkListKey)
	defer timer.Emit()

	return &types.NetworkListResponse{
		NetworkIdentifiers: []*types.NetworkIdentifier{s.config.Network},
	}, nil
}

// NetworkOptions implements the /network/options endpoint.
func (s *NetworkAPIService) NetworkOptions(
	ctx context.Context,
	request *types.NetworkRequest,
) (*types.NetworkOptionsResponse, *types.Error) {
	timer := stats.InitBlockchainClientTimer(s.statsdClient, stats.NetworkOptionsKey)
	defer timer.Emit()

	return &types.NetworkOptionsResponse{
		Version: &types.Version{
			NodeVersion:    s.types.NodeVersion,
			RosettaVersion: types.RosettaAPIVersion,
		},
		Allow: &types.Allow{
			Errors:                  s.errors,
			OperationTypes:          s.types.OperationTypes,
			OperationStatuses:       s.types.OperationStatuses,
			HistoricalBalanceLookup: s.types.HistoricalBalanceSupported,
			CallMethods:             s.types.CallMethods,
		},
	}, nil
}

// NetworkStatus implements the /network/status endpoint.
func (s *NetworkAPIService) NetworkStatus(
	ctx context.Context,
	request *types.NetworkRequest,
) (*types.NetworkStatusResponse, *types.Error) {
	if s.config.IsOfflineMode() {
		return nil, sdkTypes.ErrUnavailableOffline
	}

	timer := stats.InitBlockchainClientTimer(s.statsdClient, stats.NetworkStatusKey)
	defer timer.Emit()

	response, err := s.networkStatus(ctx)
	if err != nil {
		stats.IncrementErrorCount(s.statsdClient, stats.NetworkStatusKey, "ErrGetNetworkStatus")
		stats.LogError(s.logger, err.Message, stats.NetworkStatusKey, sdkTypes.ErrBlockNotFound)
		return nil, err
	}

	return response, nil
}

func (s *NetworkAPIService) networkStatus(ctx context.Context) (*types.NetworkStatusResponse, *types.Error) {
	currentBlock, err := s.dataAdapter.GetCurrentBlock(ctx)
	if err != nil {
		return nil, sdkTypes.WrapErr(sdkTypes.ErrBlockNotFound, err)
	}

	return &types.NetworkStatusResponse{
		CurrentBlockIdentifier: &types.BlockIdentifier{
			Index: currentBlock.Height,
			Hash:  currentBlock.Hash,
		},
		CurrentBlockTimestamp:  currentBlock.Timestamp * utils.MillisecondsInSecond,
		GenesisBlockIdentifier: s.config.GenesisBlockIdentifier,
		Peers:                  []*types.Peer{},
	}, nil
}
