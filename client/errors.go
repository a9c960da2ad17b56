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
	"strings"

	sdkTypes "github.com/hirosystems/rosetta-stacks-sdk/types"

	"github.com/coinbase/rosetta-sdk-go/types"
)

// ClassifyNodeError maps a raw error string surfaced by the node to one of
// the catalog's error kinds, falling back to ErrBroadcastFailed so a
// handler never returns unstructured text to a caller.
func ClassifyNodeError(msg string) *types.Error {
	lower := strings.ToLower(msg)

	switch {
	case strings.Contains(lower, "nonce"):
		return sdkTypes.WrapErrString(sdkTypes.ErrNonceError, msg)
	case strings.Contains(lower, "insufficient") || strings.Contains(lower, "not enough funds"):
		return sdkTypes.WrapErrString(sdkTypes.ErrInsufficientFunds, msg)
	case strings.Contains(lower, "fee") && strings.Contains(lower, "too low"):
		return sdkTypes.WrapErrString(sdkTypes.ErrFeeRateError, msg)
	case strings.Contains(lower, "bad transaction") || strings.Contains(lower, "could not deserialize") ||
		strings.Contains(lower, "invalid transaction"):
		return sdkTypes.WrapErrString(sdkTypes.ErrInvalidTransactionString, msg)
	case strings.Contains(lower, "signature"):
		return sdkTypes.WrapErrString(sdkTypes.ErrSignatureNotVerified, msg)
	case strings.Contains(lower, "not ready") || strings.Contains(lower, "syncing"):
		return sdkTypes.WrapErrString(sdkTypes.ErrNodeNotReady, msg)
	default:
		return sdkTypes.WrapErrString(sdkTypes.ErrBroadcastFailed, msg)
	}
}
