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

	"github.com/coinbase/rosetta-sdk-go/types"

	"github.com/hirosystems/rosetta-stacks-sdk/client"
	sdkTypes "github.com/hirosystems/rosetta-stacks-sdk/types"

	"github.com/hirosystems/rosetta-stacks-sdk/stats"
)

// ConstructionPreprocess implements /construction/preprocess endpoint.
//
// Preprocess is called prior to /construction/metadata to construct a
// request for any metadata needed for transaction construction (the
// sender's nonce and the current fee rate, fetched in /construction/metadata).
func (s *APIService) ConstructionPreprocess(
	ctx context.Context,
	req *types.ConstructionPreprocessRequest,
) (*types.ConstructionPreprocessResponse, *types.Error) {
	timer := stats.InitBlockchainClientTimer(s.statsdClient, stats.ConstructionPreprocessKey)
	defer timer.Emit()

	response, err := s.constructionPreprocess(req)
	if err != nil {
		stats.IncrementErrorCount(s.statsdClient, stats.ConstructionPreprocessKey, "ErrConstructionPreprocess")
		stats.LogError(s.logger, err.Message, stats.ConstructionPreprocessKey, err)
		return nil, err
	}

	return response, nil
}

func (s *APIService) constructionPreprocess(
	req *types.ConstructionPreprocessRequest,
) (*types.ConstructionPreprocessResponse, *types.Error) {
	intent, ierr := Forward(req.Operations, s.config.RosettaCfg.Currency)
	if ierr != nil {
		return nil, sdkTypes.WrapErr(sdkTypes.ErrInvalidOperation, ierr)
	}

	options := &client.Options{
		SenderAddress:    intent.SenderAddress,
		RecipientAddress: intent.RecipientAddress,
		Amount:           intent.Amount.String(),
		Type:             sdkTypes.TokenTransferOpType,
		Currency:         intent.Currency,
		SuggestedFeeMultiplier: req.SuggestedFeeMultiplier,
		Size:                   s.config.RosettaCfg.DefaultTransactionSize,
	}

	if len(req.MaxFee) > 0 && req.MaxFee[0] != nil {
		maxFee, ok := new(big.Int).SetString(req.MaxFee[0].Value, 10) //nolint:gomnd
		if !ok {
			return nil, sdkTypes.WrapErrString(sdkTypes.ErrInvalidInput, "max_fee is not a valid integer")
		}
		options.MaxFee = maxFee
	}

	marshaled, err := client.MarshalJSONMap(options)
	if err != nil {
		return nil, sdkTypes.WrapErr(sdkTypes.ErrInvalidInput, err)
	}

	return &types.ConstructionPreprocessResponse{
		Options: marshaled,
		RequiredPublicKeys: []*types.AccountIdentifier{
			{Address: intent.SenderAddress},
		},
	}, nil
}
