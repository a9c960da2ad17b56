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

package client

import (
	"math/big"

	RosettaTypes "github.com/coinbase/rosetta-sdk-go/types"
)

// Options is the intermediate representation /construction/preprocess hands
// to /construction/metadata: the transfer intent plus any caller-supplied
// fee tuning.
type Options struct {
	SenderAddress          string                 `json:"sender_address"`
	RecipientAddress       string                 `json:"recipient_address"`
	Amount                 string                 `json:"amount"`
	Type                   string                 `json:"type"`
	Currency               *RosettaTypes.Currency `json:"currency,omitempty"`
	MaxFee                 *big.Int               `json:"max_fee,omitempty"`
	SuggestedFeeMultiplier *float64               `json:"suggested_fee_multiplier,omitempty"`
	Size                   int64                  `json:"size"`
}

// Metadata is what /construction/metadata returns for /construction/payloads
// to consume: the values that close over a specific nonce/fee pair.
type Metadata struct {
	AccountSequence uint64 `json:"account_sequence"`
	RecentBlockHash string `json:"recent_block_hash,omitempty"`
	Fee             uint64 `json:"fee"`
}

// ParseMetadata is surfaced by /construction/parse alongside the
// reconstructed operations.
type ParseMetadata struct {
	Nonce uint64 `json:"nonce"`
	Fee   uint64 `json:"fee"`
}

// Amount builds a *types.Amount from a signed integer value and currency,
// returning nil when value is nil (mirrors the teacher's client.Amount).
func Amount(value *big.Int, currency *RosettaTypes.Currency) *RosettaTypes.Amount {
	if value == nil {
		return nil
	}
	return &RosettaTypes.Amount{
		Value:    value.String(),
		Currency: currency,
	}
}
