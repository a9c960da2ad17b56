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

package utils

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/coinbase/rosetta-sdk-go/asserter"
	"github.com/coinbase/rosetta-sdk-go/server"
	RosettaTypes "github.com/coinbase/rosetta-sdk-go/types"
	"github.com/neilotoole/errgroup"
	"go.uber.org/zap"

	"github.com/hirosystems/rosetta-stacks-sdk/configuration"
	"github.com/hirosystems/rosetta-stacks-sdk/services"
	"github.com/hirosystems/rosetta-stacks-sdk/services/construction"
	sdkTypes "github.com/hirosystems/rosetta-stacks-sdk/types"
)

const (
	ReadHeaderTimeout = time.Minute
)

// BootStrap quickly starts the Rosetta server
// and begins to serve Rosetta RESTful requests.
func BootStrap(
	cfg *configuration.Configuration,
	loadedTypes *sdkTypes.Types,
	errors []*RosettaTypes.Error,
	client construction.Client,
	dataAdapter services.DataAdapter,
	logger *zap.Logger,
	statsdClient *statsd.Client,
	middleware ...func(http.Handler) http.Handler,
) error {
	// The asserter automatically rejects incorrectly formatted requests.
	asserter, err := asserter.NewServer(
		loadedTypes.OperationTypes,
		loadedTypes.HistoricalBalanceSupported,
		[]*RosettaTypes.NetworkIdentifier{cfg.Network},
		loadedTypes.CallMethods,
		sdkTypes.IncludeMempoolCoins,
		"",
	)
	if err != nil {
		return fmt.Errorf("could not initialize server asserter: %w", err)
	}

	router := services.NewBlockchainRouter(cfg, loadedTypes, errors, client, dataAdapter, asserter, logger, statsdClient)

	routerWithMiddleware := router
	for _, m := range middleware {
		routerWithMiddleware = m(routerWithMiddleware)
	}

	// Add this middleware last so that it executes first.
	loggedRouter := server.LoggerMiddleware(routerWithMiddleware)
	corsRouter := server.CorsMiddleware(loggedRouter)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           corsRouter,
		ReadHeaderTimeout: ReadHeaderTimeout,
	}

	ctx := context.Background()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("server listening on port %d", cfg.Port)
		return httpServer.ListenAndServe()
	})

	g.Go(func() error {
		// If we don't shut down the server inside the errgroup, it never
		// stops because http.Server.ListenAndServe doesn't take a context.
		<-ctx.Done()

		return httpServer.Shutdown(ctx)
	})

	return g.Wait()
}
