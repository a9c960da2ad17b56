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

package configuration

import (
	"math/big"

	RosettaTypes "github.com/coinbase/rosetta-sdk-go/types"
)

// Configuration determines how we set up the blockchain connection and
// Rosetta server.
type Configuration struct {
	// Mode is the setting that determines if
	// the implementation is "online" or "offline".
	Mode Mode

	// Network specifies which network our Rosetta server uses.
	Network *RosettaTypes.NetworkIdentifier

	// GenesisBlockIdentifier is the genesis block.
	GenesisBlockIdentifier *RosettaTypes.BlockIdentifier

	// NodeURL is the blockchain node we are connecting to.
	NodeURL string

	// RemoteNode indicates whether we are using a local or remote node.
	RemoteNode bool

	// NodeConnections bounds how many concurrent requests the NodeClient
	// pool may have in flight against NodeURL.
	NodeConnections int64

	// Port is the Rosetta server's listening port.
	Port int

	// ServiceName identifies this process in logs, metrics, and traces.
	ServiceName string

	// StatsdAddress is the statsd agent address metrics are emitted to.
	StatsdAddress string

	// StatsdTraceAddress is the trace agent address APM spans are sent to.
	StatsdTraceAddress string

	// RosettaCfg defines the config used to implement Rosetta APIs.
	RosettaCfg RosettaConfig
}

// RosettaConfig holds the knobs specific to how this implementation answers
// Rosetta requests, as opposed to how it talks to the node.
type RosettaConfig struct {
	// HistoricalBalanceSupported indicates if the DataAdapter can serve
	// account balances as of an arbitrary historical block.
	HistoricalBalanceSupported bool

	// Currency is the native currency the blockchain supports.
	Currency *RosettaTypes.Currency

	// DefaultTransactionSize is the byte size assumed for a single-signature
	// standard token-transfer transaction; preprocess puts it in options.size
	// for every request.
	DefaultTransactionSize int64

	// FeeRateMultiplierCeiling is the configured upper bound for
	// suggested_fee_multiplier. The /construction/metadata fee computation
	// does not read it, so a caller's multiplier is applied without a bound.
	FeeRateMultiplierCeiling float64

	// MinFeeRate is the configured floor fee rate (micro-STX per byte). The
	// /construction/metadata fee computation does not read it and uses the
	// node's reported fee rate as is.
	MinFeeRate *big.Int

	// IngestionMode indicates the blockchain ingestion mode.
	IngestionMode string

	// SupportHeaderForwarding indicates if Rosetta should forward request
	// headers onto the context passed to the DataAdapter/NodeClient.
	SupportHeaderForwarding bool
}

// Mode is the setting that determines if
// the implementation is "online" or "offline".
type Mode string

// HTTPHeader is a key, value pair to be set on the HTTP client.
type HTTPHeader struct {
	Key   string
	Value string
}

const (
	ModeOffline Mode = "OFFLINE"
	ModeOnline  Mode = "ONLINE"

	StandardIngestion  = "standard"
	AnalyticsIngestion = "analytics"

	// DefaultServiceName is used when SERVICE_NAME is not populated.
	DefaultServiceName = "rosetta-stacks"

	// DefaultNodeConnections bounds the NodeClient connection pool when
	// NODE_CONNECTIONS is not populated.
	DefaultNodeConnections = 4

	// DefaultFeeRateMultiplierCeiling is the fee-rate multiplier ceiling
	// used when none is configured.
	DefaultFeeRateMultiplierCeiling = 10.0
)

// IsOfflineMode returns true if running in offline mode.
func (c Configuration) IsOfflineMode() bool {
	return c.Mode == ModeOffline
}

// IsOnlineMode returns true if running in online mode.
func (c Configuration) IsOnlineMode() bool {
	return c.Mode == ModeOnline
}

// IsStandardMode returns true if running in standard ingestion mode.
func (c Configuration) IsStandardMode() bool {
	return c.RosettaCfg.IngestionMode == StandardIngestion
}

// IsAnalyticsMode returns true if running in analytics ingestion mode.
func (c Configuration) IsAnalyticsMode() bool {
	return c.RosettaCfg.IngestionMode == AnalyticsIngestion
}
