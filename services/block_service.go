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
	"log"

	lru "github.com/hashicorp/golang-lru"

	"github.com/coinbase/rosetta-sdk-go/types"
	"github.com/coinbase/rosetta-sdk-go/utils"

	"github.com/hirosystems/rosetta-stacks-sdk/configuration"
	"github.com/hirosystems/rosetta-stacks-sdk/services/construction"
	sdkTypes "github.com/hirosystems/rosetta-stacks-sdk/types"
)

// blockTxCacheSize bounds how many recently-seen blocks' transaction lists
// this service keeps around, the same pattern the teacher uses to cache
// ERC-20 contract currencies in front of the node.
const blockTxCacheSize = 100

// BlockAPIService implements the server.BlockAPIServicer interface.
type BlockAPIService struct {
	config      *configuration.Configuration
	dataAdapter DataAdapter
	txCache     *lru.Cache
}

// NewBlockAPIService creates a new instance of a BlockAPIService.
func NewBlockAPIService(
	cfg *configuration.Configuration,
	dataAdapter DataAdapter,
) *BlockAPIService {
	txCache, err := lru.New(blockTxCacheSize)
	if err != nil {
		log.Fatalln(err)
	}

	return &BlockAPIService{
		config:      cfg,
		dataAdapter: dataAdapter,
		txCache:     txCache,
	}
}

func (s *BlockAPIService) getBlockTxs(ctx context.Context, blockHash string) ([]*construction.MinedTransfer, error) {
	if cached, found := s.txCache.Get(blockHash); found {
		return cached.([]*construction.MinedTransfer), nil
	}

	raw, err := s.dataAdapter.GetBlockTxs(ctx, blockHash)
	if err != nil {
		return nil, err
	}

	mined := make([]*construction.MinedTransfer, len(raw))
	for i, tx := range raw {
		mined[i] = &construction.MinedTransfer{
			TxID:             tx.TxID,
			SenderAddress:    tx.SenderAddress,
			RecipientAddress: tx.RecipientAddress,
			Amount:           tx.Amount,
			Fee:              tx.Fee,
			Currency:         s.config.RosettaCfg.Currency,
			Status:           tx.Status,
		}
	}

	s.txCache.Add(blockHash, mined)
	return mined, nil
}

func (s *BlockAPIService) populateTransactions(ctx context.Context, blockHash string) ([]*types.Transaction, error) {
	mined, err := s.getBlockTxs(ctx, blockHash)
	if err != nil {
		return nil, err
	}

	transactions := make([]*types.Transaction, len(mined))
	for i, tx := range mined {
		transactions[i] = &types.Transaction{
			TransactionIdentifier: &types.TransactionIdentifier{Hash: tx.TxID},
			Operations:            construction.Reverse(tx),
		}
	}
	return transactions, nil
}

func (s *BlockAPIService) resolveBlock(
	ctx context.Context,
	partial *types.PartialBlockIdentifier,
) (*Block, *types.Error) {
	switch {
	case partial == nil:
		current, err := s.dataAdapter.GetCurrentBlock(ctx)
		if err != nil {
			return nil, sdkTypes.WrapErr(sdkTypes.ErrBlockNotFound, err)
		}
		return current, nil
	case partial.Hash != nil:
		found, err := s.dataAdapter.GetBlockByHash(ctx, *partial.Hash)
		if err != nil || !found.Found {
			return nil, sdkTypes.ErrBlockNotFound
		}
		return found.Result, nil
	case partial.Index != nil:
		found, err := s.dataAdapter.GetBlockByHeight(ctx, *partial.Index)
		if err != nil || !found.Found {
			return nil, sdkTypes.ErrBlockNotFound
		}
		return found.Result, nil
	default:
		current, err := s.dataAdapter.GetCurrentBlock(ctx)
		if err != nil {
			return nil, sdkTypes.WrapErr(sdkTypes.ErrBlockNotFound, err)
		}
		return current, nil
	}
}

// Block implements the /block endpoint.
func (s *BlockAPIService) Block(
	ctx context.Context,
	request *types.BlockRequest,
) (*types.BlockResponse, *types.Error) {
	if s.config.IsOfflineMode() {
		return nil, sdkTypes.ErrUnavailableOffline
	}

	block, rErr := s.resolveBlock(ctx, request.BlockIdentifier)
	if rErr != nil {
		return nil, rErr
	}

	parentBlockIdentifier := &types.BlockIdentifier{Hash: block.Hash, Index: block.Height}
	if block.Height != sdkTypes.GenesisBlockIndex {
		parentBlockIdentifier = &types.BlockIdentifier{Hash: block.ParentHash, Index: block.ParentHeight}
	}

	transactions, err := s.populateTransactions(ctx, block.Hash)
	if err != nil {
		return nil, sdkTypes.WrapErr(sdkTypes.ErrInternalError, err)
	}

	return &types.BlockResponse{
		Block: &types.Block{
			BlockIdentifier:       &types.BlockIdentifier{Index: block.Height, Hash: block.Hash},
			ParentBlockIdentifier: parentBlockIdentifier,
			Timestamp:             block.Timestamp * utils.MillisecondsInSecond,
			Transactions:          transactions,
		},
	}, nil
}

// BlockTransaction implements the /block/transaction endpoint.
func (s *BlockAPIService) BlockTransaction(
	ctx context.Context,
	request *types.BlockTransactionRequest,
) (*types.BlockTransactionResponse, *types.Error) {
	if s.config.IsOfflineMode() {
		return nil, sdkTypes.ErrUnavailableOffline
	}

	if request.BlockIdentifier == nil || request.TransactionIdentifier == nil {
		return nil, sdkTypes.ErrInvalidInput
	}

	found, err := s.dataAdapter.GetTx(ctx, request.TransactionIdentifier.Hash)
	if err != nil || !found.Found {
		return nil, sdkTypes.ErrTransactionNotFound
	}

	tx := found.Result
	mined := &construction.MinedTransfer{
		TxID:             tx.TxID,
		SenderAddress:    tx.SenderAddress,
		RecipientAddress: tx.RecipientAddress,
		Amount:           tx.Amount,
		Fee:              tx.Fee,
		Currency:         s.config.RosettaCfg.Currency,
		Status:           tx.Status,
	}

	return &types.BlockTransactionResponse{
		Transaction: &types.Transaction{
			TransactionIdentifier: &types.TransactionIdentifier{Hash: tx.TxID},
			Operations:            construction.Reverse(mined),
		},
	}, nil
}
