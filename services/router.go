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
	"net/http"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/coinbase/rosetta-sdk-go/asserter"
	"github.com/coinbase/rosetta-sdk-go/server"
	"github.com/coinbase/rosetta-sdk-go/types"
	"go.uber.org/zap"

	"github.com/hirosystems/rosetta-stacks-sdk/configuration"
	"github.com/hirosystems/rosetta-stacks-sdk/headers"
	"github.com/hirosystems/rosetta-stacks-sdk/services/construction"
	sdkTypes "github.com/hirosystems/rosetta-stacks-sdk/types"
)

// NewBlockchainRouter creates a Mux http.Handler from a collection
// of server controllers.
//
// Unlike the construction endpoints, which talk to the node through a
// construction.Client, the read endpoints (network/account/block/mempool)
// are served from a DataAdapter: an indexer-backed view of chain state,
// not the node itself.
func NewBlockchainRouter(
	config *configuration.Configuration,
	loadedTypes *sdkTypes.Types,
	errors []*types.Error,
	client construction.Client,
	dataAdapter DataAdapter,
	asserter *asserter.Asserter,
	logger *zap.Logger,
	statsdClient *statsd.Client,
) http.Handler {
	var contextFromRequest func(r *http.Request) context.Context
	if config.RosettaCfg.SupportHeaderForwarding {
		contextFromRequest = headers.ContextWithHeaders
	}

	networkAPIService := NewNetworkAPIService(config, loadedTypes, errors, dataAdapter, logger, statsdClient)
	networkAPIController := server.NewNetworkAPIController(
		networkAPIService,
		asserter,
		contextFromRequest,
	)

	accountAPIService := NewAccountAPIService(config, loadedTypes, errors, dataAdapter)
	accountAPIController := server.NewAccountAPIController(
		accountAPIService,
		asserter,
		contextFromRequest,
	)

	blockAPIService := NewBlockAPIService(config, dataAdapter)
	blockAPIController := server.NewBlockAPIController(
		blockAPIService,
		asserter,
		contextFromRequest,
	)

	constructionAPIService := construction.NewAPIService(config, loadedTypes, errors, client, logger, statsdClient)
	constructionAPIController := server.NewConstructionAPIController(
		constructionAPIService,
		asserter,
		contextFromRequest,
	)

	mempoolAPIService := NewMempoolAPIService(config, dataAdapter)
	mempoolAPIController := server.NewMempoolAPIController(
		mempoolAPIService,
		asserter,
		contextFromRequest,
	)

	return server.NewRouter(
		networkAPIController,
		accountAPIController,
		blockAPIController,
		constructionAPIController,
		mempoolAPIController,
	)
}
