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

package types

import (
	RosettaTypes "github.com/coinbase/rosetta-sdk-go/types"
)

const (
	// RosettaVersion is the version of the Rosetta spec this server implements.
	RosettaVersion = "1.4.6"

	// MiddlewareVersion is the version of this Rosetta implementation.
	MiddlewareVersion = "0.1.0"

	// Blockchain is the fixed blockchain name every NetworkIdentifier must carry.
	Blockchain = "stacks"

	// Symbol is the symbol value used in Currency.
	Symbol = "STX"

	// Decimals is the decimals value used in Currency.
	Decimals = 6

	// TokenTransferOpType is a balance-changing transfer of the native currency.
	TokenTransferOpType = "token_transfer"

	// ContractCallOpType represents a contract-call transaction.
	ContractCallOpType = "contract_call"

	// SmartContractOpType represents a smart-contract-publish transaction.
	SmartContractOpType = "smart_contract"

	// CoinbaseOpType represents a coinbase (miner reward) transaction.
	CoinbaseOpType = "coinbase"

	// PoisonMicroblockOpType represents a poison-microblock transaction.
	PoisonMicroblockOpType = "poison_microblock"

	// FeeOpType represents the fee debited from the sender of a transaction.
	FeeOpType = "fee"

	// StatusSuccess is the status of an operation that landed on chain successfully.
	StatusSuccess = "success"

	// StatusPending is the status of an operation still in the mempool.
	//
	// The source data preserves `successful: true` on this status for wire
	// compatibility even though it contradicts Rosetta's terminal-success
	// convention — see DESIGN.md Open Questions.
	StatusPending = "pending"

	// StatusAbortByResponse is the status of an operation that aborted due to
	// a non-OK Clarity response.
	StatusAbortByResponse = "abort_by_response"

	// StatusAbortByPostCondition is the status of an operation that aborted
	// because a post-condition failed.
	StatusAbortByPostCondition = "abort_by_post_condition"

	// HistoricalBalanceSupported is whether historical balance lookup is supported.
	HistoricalBalanceSupported = true

	// IncludeMempoolCoins is false because this chain is account-based, not UTXO-based.
	IncludeMempoolCoins = false

	// SingleSigStandardSize is the estimated byte size of a single-signature
	// standard-auth token-transfer transaction, used as the fixed size
	// estimate /construction/preprocess reports.
	SingleSigStandardSize = 180

	// Online is when the implementation is permitted to make outbound connections.
	Online = "ONLINE"

	// Offline is when the implementation is not permitted to make outbound connections.
	Offline = "OFFLINE"

	// NodeVersion is the version of the upstream node this implementation targets.
	NodeVersion = "2.5.0"

	// GenesisBlockIndex is the height of the chain's genesis block.
	GenesisBlockIndex = int64(0)
)

var (
	// OperationTypes are all operation types this implementation recognizes.
	OperationTypes = []string{
		TokenTransferOpType,
		ContractCallOpType,
		SmartContractOpType,
		CoinbaseOpType,
		PoisonMicroblockOpType,
		FeeOpType,
	}

	// OperationStatuses are all operation statuses this implementation recognizes.
	OperationStatuses = []*RosettaTypes.OperationStatus{
		{
			Status:     StatusSuccess,
			Successful: true,
		},
		{
			Status:     StatusPending,
			Successful: true,
		},
		{
			Status:     StatusAbortByResponse,
			Successful: false,
		},
		{
			Status:     StatusAbortByPostCondition,
			Successful: false,
		},
	}

	// Currency is the chain's sole native currency.
	Currency = &RosettaTypes.Currency{
		Symbol:   Symbol,
		Decimals: Decimals,
	}
)

// Types bundles the supported-type catalog surfaced on /network/options.
type Types struct {
	OperationTypes             []string
	OperationStatuses          []*RosettaTypes.OperationStatus
	Currency                   *RosettaTypes.Currency
	HistoricalBalanceSupported bool
	NodeVersion                string

	// CallMethods is empty: /call is a Non-goal, this implementation does not
	// expose arbitrary node RPC passthrough.
	CallMethods []string
}

// LoadTypes returns the static catalog of supported types.
func LoadTypes() *Types {
	return &Types{
		OperationTypes:             OperationTypes,
		OperationStatuses:          OperationStatuses,
		Currency:                   Currency,
		HistoricalBalanceSupported: HistoricalBalanceSupported,
		NodeVersion:                NodeVersion,
		CallMethods:                []string{},
	}
}

// IsTransferType returns true if t participates in construction today.
func IsTransferType(t string) bool {
	return t == TokenTransferOpType
}
