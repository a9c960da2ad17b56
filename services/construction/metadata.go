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
	"math"
	"math/big"

	"github.com/coinbase/rosetta-sdk-go/types"

	"github.com/hirosystems/rosetta-stacks-sdk/addresscodec"
	"github.com/hirosystems/rosetta-stacks-sdk/client"
	sdkTypes "github.com/hirosystems/rosetta-stacks-sdk/types"

	"github.com/hirosystems/rosetta-stacks-sdk/stats"
)

// ConstructionMetadata implements /construction/metadata endpoint.
//
// Metadata returned here is the sender's account sequence (nonce) and the
// fee quote for the transaction being built. The request used when calling
// this endpoint is produced by /construction/preprocess.
func (s *APIService) ConstructionMetadata(
	ctx context.Context,
	req *types.ConstructionMetadataRequest,
) (*types.ConstructionMetadataResponse, *types.Error) {
	timer := stats.InitBlockchainClientTimer(s.statsdClient, stats.ConstructionMetadataKey)
	defer timer.Emit()

	response, err := s.constructionMetadata(ctx, req)
	if err != nil {
		stats.IncrementErrorCount(s.statsdClient, stats.ConstructionMetadataKey, "ErrConstructionMetadata")
		stats.LogError(s.logger, err.Message, stats.ConstructionMetadataKey, err)
		return nil, err
	}

	return response, nil
}

func (s *APIService) constructionMetadata(
	ctx context.Context,
	req *types.ConstructionMetadataRequest,
) (*types.ConstructionMetadataResponse, *types.Error) {
	if s.config.IsOfflineMode() {
		return nil, sdkTypes.ErrUnavailableOffline
	}

	var options client.Options
	if err := client.UnmarshalJSONMap(req.Options, &options); err != nil {
		return nil, sdkTypes.WrapErr(sdkTypes.ErrInvalidInput, err)
	}

	if options.Type != sdkTypes.TokenTransferOpType {
		return nil, sdkTypes.WrapErrString(sdkTypes.ErrInvalidOperation, "only token_transfer is supported")
	}

	if options.Size == 0 {
		return nil, sdkTypes.ErrMissingTransactionSize
	}

	network, nerr := s.networkFor(req.NetworkIdentifier)
	if nerr != nil {
		return nil, nerr
	}

	if err := addresscodec.ValidateAddress(options.SenderAddress, network); err != nil {
		return nil, sdkTypes.WrapErr(sdkTypes.ErrInvalidSender, err)
	}
	if err := addresscodec.ValidateAddress(options.RecipientAddress, network); err != nil {
		return nil, sdkTypes.WrapErr(sdkTypes.ErrInvalidRecipient, err)
	}

	if len(req.PublicKeys) > 0 && req.PublicKeys[0] != nil {
		derived, err := addresscodec.DeriveAddress(req.PublicKeys[0].Bytes, network)
		if err != nil || derived != options.SenderAddress {
			return nil, sdkTypes.ErrInvalidPublicKey
		}
	}

	nonce, _, err := s.client.GetAccount(ctx, options.SenderAddress)
	if err != nil {
		return nil, sdkTypes.WrapErr(sdkTypes.ErrNonceError, err)
	}

	feeRate, err := s.client.GetFeeRate(ctx)
	if err != nil {
		return nil, sdkTypes.WrapErr(sdkTypes.ErrFeeRateError, err)
	}

	suggestedFee := computeSuggestedFee(feeRate, options.Size, options.SuggestedFeeMultiplier, options.MaxFee)

	metadata := &client.Metadata{
		AccountSequence: nonce,
		Fee:             suggestedFee.Uint64(),
	}

	metadataMap, merr := client.MarshalJSONMap(metadata)
	if merr != nil {
		return nil, sdkTypes.WrapErr(sdkTypes.ErrInternalError, merr)
	}

	return &types.ConstructionMetadataResponse{
		Metadata: metadataMap,
		SuggestedFee: []*types.Amount{
			client.Amount(suggestedFee, s.config.RosettaCfg.Currency),
		},
	}, nil
}

// computeSuggestedFee rounds feeRate*size*max(1, multiplier) up to the
// nearest integer micro-STX and caps it at maxFee when one is supplied.
func computeSuggestedFee(feeRate uint64, size int64, multiplier *float64, maxFee *big.Int) *big.Int {
	m := 1.0
	if multiplier != nil && *multiplier > m {
		m = *multiplier
	}

	raw := float64(feeRate) * float64(size) * m
	fee := big.NewInt(int64(math.Ceil(raw)))

	if maxFee != nil && maxFee.Sign() > 0 && fee.Cmp(maxFee) > 0 {
		fee = new(big.Int).Set(maxFee)
	}
	return fee
}
