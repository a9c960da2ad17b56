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

	"github.com/coinbase/rosetta-sdk-go/types"

	"github.com/hirosystems/rosetta-stacks-sdk/configuration"
	"github.com/hirosystems/rosetta-stacks-sdk/services/construction"
	sdkTypes "github.com/hirosystems/rosetta-stacks-sdk/types"
)

// mempoolPageSize bounds how many pending transaction identifiers /mempool
// returns in one response.
const mempoolPageSize = 2500

// MempoolAPIService implements the server.MempoolAPIServicer interface.
type MempoolAPIService struct {
	config      *configuration.Configuration
	dataAdapter DataAdapter
}

// NewMempoolAPIService creates a new instance of a MempoolAPIService.
func NewMempoolAPIService(
	cfg *configuration.Configuration,
	dataAdapter DataAdapter,
) *MempoolAPIService {
	return &MempoolAPIService{
		config:      cfg,
		dataAdapter: dataAdapter,
	}
}

// Mempool implements the /mempool endpoint.
func (s *MempoolAPIService) Mempool(
	ctx context.Context,
	request *types.NetworkRequest,
) (*types.MempoolResponse, *types.Error) {
	if s.config.IsOfflineMode() {
		return nil, sdkTypes.ErrUnavailableOffline
	}

	txs, err := s.dataAdapter.GetMempoolTxs(ctx, mempoolPageSize, 0)
	if err != nil {
		return nil, sdkTypes.WrapErr(sdkTypes.ErrInternalError, err)
	}

	identifiers := make([]*types.TransactionIdentifier, len(txs))
	for i, tx := range txs {
		identifiers[i] = &types.TransactionIdentifier{Hash: tx.TxID}
	}

	return &types.MempoolResponse{TransactionIdentifiers: identifiers}, nil
}

// MempoolTransaction implements the /mempool/transaction endpoint.
func (s *MempoolAPIService) MempoolTransaction(
	ctx context.Context,
	request *types.MempoolTransactionRequest,
) (*types.MempoolTransactionResponse, *types.Error) {
	if s.config.IsOfflineMode() {
		return nil, sdkTypes.ErrUnavailableOffline
	}

	if request.TransactionIdentifier == nil {
		return nil, sdkTypes.ErrInvalidInput
	}

	found, err := s.dataAdapter.GetTx(ctx, request.TransactionIdentifier.Hash)
	if err != nil || !found.Found {
		return nil, sdkTypes.ErrMempoolTransactionNotFound
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

	return &types.MempoolTransactionResponse{
		Transaction: &types.Transaction{
			TransactionIdentifier: &types.TransactionIdentifier{Hash: tx.TxID},
			Operations:            construction.Reverse(mined),
		},
	}, nil
}
