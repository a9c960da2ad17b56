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

package config

import (
	"errors"
	"fmt"
	"math/big"
	"os"
	"strconv"

	"github.com/coinbase/rosetta-sdk-go/types"

	"github.com/hirosystems/rosetta-stacks-sdk/configuration"
	sdkTypes "github.com/hirosystems/rosetta-stacks-sdk/types"
)

const (
	// Blockchain is the fixed blockchain value in every NetworkIdentifier.
	Blockchain string = "stacks"

	// MainnetNetwork is the value of the network in the mainnet NetworkIdentifier.
	MainnetNetwork string = "mainnet"

	// TestnetNetwork is the value of the network in the testnet NetworkIdentifier.
	TestnetNetwork string = "testnet"

	// Mainnet selects MainnetNetwork via the NETWORK env var.
	Mainnet string = "MAINNET"

	// Testnet selects TestnetNetwork via the NETWORK env var.
	Testnet string = "TESTNET"

	// ModeEnv is the environment variable read to determine mode.
	ModeEnv = "MODE"

	// NetworkEnv is the environment variable read to determine network.
	NetworkEnv = "NETWORK"

	// PortEnv is the environment variable read to determine the port the
	// Rosetta implementation listens on.
	PortEnv = "PORT"

	// NodeURLEnv is the environment variable read to determine the upstream
	// node's JSON-RPC endpoint.
	NodeURLEnv = "NODE_URL"

	// DefaultNodeURL is used when NodeURLEnv is not populated.
	DefaultNodeURL = "http://127.0.0.1:20443"

	// MainnetGenesisHash is the block hash of the Stacks mainnet genesis block.
	MainnetGenesisHash = "0x918c279119d7dfef0fd7073936b95f8bc2376b3b975bec6e86e9a7df8f34a2fe"

	// TestnetGenesisHash is the block hash of the Stacks testnet genesis block.
	TestnetGenesisHash = "0xb4967c75eedc6868fa1decfb0fce16df40f1d3a24da38d3953a9cb51fef26eb8"
)

var (
	// MainnetGenesisBlockIdentifier identifies the mainnet genesis block.
	MainnetGenesisBlockIdentifier = &types.BlockIdentifier{
		Hash:  MainnetGenesisHash,
		Index: sdkTypes.GenesisBlockIndex,
	}

	// TestnetGenesisBlockIdentifier identifies the testnet genesis block.
	TestnetGenesisBlockIdentifier = &types.BlockIdentifier{
		Hash:  TestnetGenesisHash,
		Index: sdkTypes.GenesisBlockIndex,
	}
)

// LoadConfiguration attempts to create a new Configuration using the ENVs in
// the environment.
func LoadConfiguration() (*configuration.Configuration, error) {
	cfg := &configuration.Configuration{}

	mode := os.Getenv(ModeEnv)
	modeValue := configuration.Mode(mode)
	switch modeValue {
	case configuration.ModeOnline:
		cfg.Mode = configuration.ModeOnline
	case configuration.ModeOffline:
		cfg.Mode = configuration.ModeOffline
	case "":
		return nil, errors.New("MODE must be populated")
	default:
		return nil, fmt.Errorf("%s is not a valid mode", modeValue)
	}

	networkValue := os.Getenv(NetworkEnv)
	switch networkValue {
	case Mainnet:
		cfg.Network = &types.NetworkIdentifier{
			Blockchain: Blockchain,
			Network:    MainnetNetwork,
		}
		cfg.GenesisBlockIdentifier = MainnetGenesisBlockIdentifier
	case Testnet:
		cfg.Network = &types.NetworkIdentifier{
			Blockchain: Blockchain,
			Network:    TestnetNetwork,
		}
		cfg.GenesisBlockIdentifier = TestnetGenesisBlockIdentifier
	default:
		return nil, fmt.Errorf("%s is not a valid network", networkValue)
	}

	cfg.NodeURL = DefaultNodeURL
	envNodeURL := os.Getenv(NodeURLEnv)
	if len(envNodeURL) > 0 {
		cfg.RemoteNode = true
		cfg.NodeURL = envNodeURL
	}

	portValue := os.Getenv(PortEnv)
	if len(portValue) == 0 {
		return nil, errors.New("PORT must be populated")
	}

	port, err := strconv.Atoi(portValue)
	if err != nil || port <= 0 {
		return nil, fmt.Errorf("unable to parse port %s: %w", portValue, err)
	}
	cfg.Port = port

	cfg.ServiceName = configuration.DefaultServiceName
	if serviceName := os.Getenv("SERVICE_NAME"); len(serviceName) > 0 {
		cfg.ServiceName = serviceName
	}

	cfg.StatsdAddress = os.Getenv("STATSD_ADDRESS")
	cfg.StatsdTraceAddress = os.Getenv("STATSD_TRACE_ADDRESS")

	cfg.NodeConnections = configuration.DefaultNodeConnections
	if rawConnections := os.Getenv("NODE_CONNECTIONS"); len(rawConnections) > 0 {
		connections, err := strconv.ParseInt(rawConnections, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("unable to parse NODE_CONNECTIONS %s: %w", rawConnections, err)
		}
		cfg.NodeConnections = connections
	}

	minFeeRate := big.NewInt(1)
	cfg.RosettaCfg = configuration.RosettaConfig{
		HistoricalBalanceSupported: sdkTypes.HistoricalBalanceSupported,
		Currency:                   sdkTypes.Currency,
		DefaultTransactionSize:     sdkTypes.SingleSigStandardSize,
		FeeRateMultiplierCeiling:   configuration.DefaultFeeRateMultiplierCeiling,
		MinFeeRate:                 minFeeRate,
		IngestionMode:              configuration.StandardIngestion,
		SupportHeaderForwarding:    true,
	}

	return cfg, nil
}
