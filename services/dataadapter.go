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
	"math/big"
)

// Lookup wraps a DataAdapter read with an explicit found flag, so a miss
// (no such block/transaction/account) is distinguishable from the zero value
// without resorting to a nil pointer or a sentinel error.
type Lookup[T any] struct {
	Found  bool
	Result T
}

// Block is the DataAdapter's projection of a mined block; enough for
// BlockAPIService to build a Rosetta BlockIdentifier/ParentBlockIdentifier
// pair and walk its transactions.
type Block struct {
	Height       int64
	Hash         string
	ParentHash   string
	ParentHeight int64
	Timestamp    int64 // unix seconds
}

// Transaction is the DataAdapter's projection of a mined or mempool
// transaction; OperationMapper.Reverse consumes it by way of
// construction.MinedTransfer.
type Transaction struct {
	TxID             string
	Type             string
	SenderAddress    string
	RecipientAddress string
	Amount           *big.Int
	Fee              *big.Int
	Status           string
}

// DataAdapter is the read-only projection of the block/transaction/account
// datastore the non-construction endpoints need. The core never writes
// through it; it is a pure query surface reached from Network/Account/Block/
// Mempool API services only.
type DataAdapter interface {
	GetBlockByHeight(ctx context.Context, height int64) (Lookup[*Block], error)
	GetBlockByHash(ctx context.Context, hash string) (Lookup[*Block], error)
	GetCurrentBlock(ctx context.Context) (*Block, error)
	GetBlockTxs(ctx context.Context, blockHash string) ([]*Transaction, error)
	GetTx(ctx context.Context, txID string) (Lookup[*Transaction], error)
	GetMempoolTxs(ctx context.Context, limit, offset int) ([]*Transaction, error)
	GetAccountBalance(ctx context.Context, address string, atBlockHeight *int64) (*big.Int, error)
}
