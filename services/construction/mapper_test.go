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
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sdkTypes "github.com/hirosystems/rosetta-stacks-sdk/types"
)

func TestForwardRecoversTransferIntent(t *testing.T) {
	ops := templateOperations(big.NewInt(500), "S_sender", "S_recipient", stacksCurrencyConfig)

	intent, err := Forward(ops, stacksCurrencyConfig)
	require.NoError(t, err)

	assert.Equal(t, "S_sender", intent.SenderAddress)
	assert.Equal(t, "S_recipient", intent.RecipientAddress)
	assert.Equal(t, big.NewInt(500), intent.Amount)
}

func TestForwardRejectsWrongOperationCount(t *testing.T) {
	ops := templateOperations(big.NewInt(500), "S_sender", "S_recipient", stacksCurrencyConfig)

	_, err := Forward(ops[:1], stacksCurrencyConfig)
	assert.Error(t, err)

	_, err = Forward(append(ops, ops[0]), stacksCurrencyConfig)
	assert.Error(t, err)
}

func TestForwardRejectsUnbalancedAmounts(t *testing.T) {
	ops := templateOperations(big.NewInt(500), "S_sender", "S_recipient", stacksCurrencyConfig)
	// Break the balance: both legs positive.
	ops[0].Amount.Value = "500"

	_, err := Forward(ops, stacksCurrencyConfig)
	assert.Error(t, err)
}

func TestReverseProducesFeeDebitCredit(t *testing.T) {
	status := sdkTypes.StatusSuccess
	ops := Reverse(&MinedTransfer{
		TxID:             "0xabc",
		SenderAddress:    "S_sender",
		RecipientAddress: "S_recipient",
		Amount:           big.NewInt(1000),
		Fee:              big.NewInt(180),
		Currency:         stacksCurrencyConfig,
		Status:           status,
	})

	require.Len(t, ops, 3)

	feeOp, debitOp, creditOp := ops[0], ops[1], ops[2]

	assert.Equal(t, sdkTypes.FeeOpType, feeOp.Type)
	assert.Equal(t, "-180", feeOp.Amount.Value)
	assert.Equal(t, "S_sender", feeOp.Account.Address)

	assert.Equal(t, sdkTypes.TokenTransferOpType, debitOp.Type)
	assert.Equal(t, "-1000", debitOp.Amount.Value)
	assert.Equal(t, "0xabc:1", debitOp.CoinChange.CoinIdentifier.Identifier)

	assert.Equal(t, sdkTypes.TokenTransferOpType, creditOp.Type)
	assert.Equal(t, "1000", creditOp.Amount.Value)
	assert.Equal(t, "0xabc:2", creditOp.CoinChange.CoinIdentifier.Identifier)
	require.Len(t, creditOp.RelatedOperations, 1)
	assert.EqualValues(t, 1, creditOp.RelatedOperations[0].Index)

	for _, op := range ops {
		require.NotNil(t, op.Status)
		assert.Equal(t, status, *op.Status)
	}
}
