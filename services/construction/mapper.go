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
	"fmt"
	"math/big"

	"github.com/coinbase/rosetta-sdk-go/parser"
	"github.com/coinbase/rosetta-sdk-go/types"

	sdkTypes "github.com/hirosystems/rosetta-stacks-sdk/types"
)

const numOfValidOpsForDescription = 2

// TransferIntent is the semantic meaning OperationMapper.Forward recovers
// from a pair of balanced operations.
type TransferIntent struct {
	SenderAddress    string
	RecipientAddress string
	Amount           *big.Int
	Currency         *types.Currency
}

// nativeTransferDescriptions declares the two-operation shape of a native
// currency transfer: one negative debit, one positive credit, same
// currency, following the teacher's CreateOperationDescriptionNative.
func nativeTransferDescriptions(currency *types.Currency) *parser.Descriptions {
	return &parser.Descriptions{
		OperationDescriptions: []*parser.OperationDescription{
			{
				Type: sdkTypes.TokenTransferOpType,
				Account: &parser.AccountDescription{
					Exists: true,
				},
				Amount: &parser.AmountDescription{
					Exists:   true,
					Sign:     parser.NegativeAmountSign,
					Currency: currency,
				},
			},
			{
				Type: sdkTypes.TokenTransferOpType,
				Account: &parser.AccountDescription{
					Exists: true,
				},
				Amount: &parser.AmountDescription{
					Exists:   true,
					Sign:     parser.PositiveAmountSign,
					Currency: currency,
				},
			},
		},
		OppositeAmounts: [][]int{{0, 1}},
		ErrUnmatched:    true,
	}
}

// Forward maps a list of Rosetta operations onto a TransferIntent. Only a
// balanced debit/credit pair of token_transfer operations is recognized;
// any other shape is invalidOperation/unclearIntent.
func Forward(ops []*types.Operation, currency *types.Currency) (*TransferIntent, error) {
	if len(ops) != numOfValidOpsForDescription {
		return nil, fmt.Errorf("expected %d operations, got %d", numOfValidOpsForDescription, len(ops))
	}

	matches, err := parser.MatchOperations(nativeTransferDescriptions(currency), ops)
	if err != nil {
		return nil, fmt.Errorf("unable to match operations: %w", err)
	}

	debitOp, amount := matches[0].First()
	creditOp, _ := matches[1].First()

	return &TransferIntent{
		SenderAddress:    debitOp.Account.Address,
		RecipientAddress: creditOp.Account.Address,
		Amount:           new(big.Int).Abs(amount),
		Currency:         currency,
	}, nil
}

// MinedTransfer is what a DataAdapter hands back for a mined transaction;
// Reverse projects it onto the fixed three-operation shape §4.3 specifies.
type MinedTransfer struct {
	TxID             string
	SenderAddress    string
	RecipientAddress string
	Amount           *big.Int
	Fee              *big.Int
	Currency         *types.Currency
	Status           string
}

// Reverse emits, in order: the fee operation, the sender's debit, and the
// recipient's credit, with coin_change/related_operations wired exactly as
// §4.3 specifies.
func Reverse(tx *MinedTransfer) []*types.Operation {
	status := tx.Status

	feeOp := &types.Operation{
		OperationIdentifier: &types.OperationIdentifier{Index: 0},
		Type:                sdkTypes.FeeOpType,
		Status:              &status,
		Account:             &types.AccountIdentifier{Address: tx.SenderAddress},
		Amount: &types.Amount{
			Value:    new(big.Int).Neg(tx.Fee).String(),
			Currency: tx.Currency,
		},
	}

	debitOp := &types.Operation{
		OperationIdentifier: &types.OperationIdentifier{Index: 1},
		Type:                sdkTypes.TokenTransferOpType,
		Status:              &status,
		Account:             &types.AccountIdentifier{Address: tx.SenderAddress},
		Amount: &types.Amount{
			Value:    new(big.Int).Neg(tx.Amount).String(),
			Currency: tx.Currency,
		},
		CoinChange: &types.CoinChange{
			CoinAction:     types.CoinSpent,
			CoinIdentifier: &types.CoinIdentifier{Identifier: fmt.Sprintf("%s:1", tx.TxID)},
		},
	}

	creditOp := &types.Operation{
		OperationIdentifier: &types.OperationIdentifier{Index: 2},
		RelatedOperations:   []*types.OperationIdentifier{{Index: 1}},
		Type:                sdkTypes.TokenTransferOpType,
		Status:              &status,
		Account:             &types.AccountIdentifier{Address: tx.RecipientAddress},
		Amount: &types.Amount{
			Value:    tx.Amount.String(),
			Currency: tx.Currency,
		},
		CoinChange: &types.CoinChange{
			CoinAction:     types.CoinCreated,
			CoinIdentifier: &types.CoinIdentifier{Identifier: fmt.Sprintf("%s:2", tx.TxID)},
		},
	}

	return []*types.Operation{feeOp, debitOp, creditOp}
}
