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

package main

import (
	"log"

	"github.com/hirosystems/rosetta-stacks-sdk/client"
	"github.com/hirosystems/rosetta-stacks-sdk/client/dataadapter"
	"github.com/hirosystems/rosetta-stacks-sdk/cmd/stacks-rosetta/config"
	"github.com/hirosystems/rosetta-stacks-sdk/stats"
	sdkTypes "github.com/hirosystems/rosetta-stacks-sdk/types"
	"github.com/hirosystems/rosetta-stacks-sdk/utils"
)

func main() {
	// Load configuration using the ENVs in the environment.
	cfg, err := config.LoadConfiguration()
	if err != nil {
		log.Fatalf("unable to load configuration: %v", err)
	}

	// Load all the supported operation types, statuses, and errors.
	loadedTypes := sdkTypes.LoadTypes()
	errors := sdkTypes.Errors

	logger, syncFn, err := stats.InitLogger(cfg)
	if err != nil {
		log.Fatalf("unable to initialize logger: %v", err)
	}
	defer syncFn()

	statsdClient, statsdDone, err := stats.InitStatsd(logger, cfg)
	if err != nil {
		log.Fatalf("unable to initialize statsd: %v", err)
	}
	defer statsdDone()

	rpcClient, err := client.NewRPCClient(cfg.NodeURL)
	if err != nil {
		log.Fatalf("unable to dial node at %s: %v", cfg.NodeURL, err)
	}

	nodeClient := client.NewRPCNodeClient(rpcClient, cfg.NodeConnections)
	dataAdapter := dataadapter.NewRPCDataAdapter(rpcClient, cfg.NodeConnections)

	if err := utils.BootStrap(cfg, loadedTypes, errors, nodeClient, dataAdapter, logger, statsdClient); err != nil {
		log.Fatalf("unable to bootstrap Rosetta server: %v", err)
	}
}
