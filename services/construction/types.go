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
	"math/big"
)

// Client contains the methods required to interact with the Stacks node
// during construction. It is intentionally narrow: block/mempool querying
// lives behind a DataAdapter, not here.
type Client interface {
	// GetAccount returns the current nonce and spendable balance for address.
	GetAccount(ctx context.Context, address string) (nonce uint64, balance *big.Int, err error)

	// GetFeeRate returns the chain's current fee rate in micro-STX per byte.
	GetFeeRate(ctx context.Context) (uint64, error)

	// BroadcastTransaction submits a signed, serialized transaction and
	// returns its transaction id.
	BroadcastTransaction(ctx context.Context, rawTx []byte) (txid string, err error)
}
