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

package types

import (
	"github.com/coinbase/rosetta-sdk-go/types"
)

// Errors contains every error this Rosetta implementation may return. Codes
// are stable (601, 610-640 and 699); they must never be renumbered once
// published, since clients key retry/backoff behavior off them.
var (
	Errors = []*types.Error{
		ErrUnknownError,
		ErrInvalidNetwork,
		ErrInvalidBlockchain,
		ErrUnavailableOffline,
		ErrEmptyNetworkIdentifier,
		ErrBlockNotFound,
		ErrTransactionNotFound,
		ErrAccountNotFound,
		ErrMempoolTransactionNotFound,
		ErrInvalidAccount,
		ErrInvalidSender,
		ErrInvalidRecipient,
		ErrInvalidCurrency,
		ErrInvalidOperation,
		ErrUnclearIntent,
		ErrInvalidPublicKey,
		ErrInvalidCurveType,
		ErrNeedOnePublicKey,
		ErrEmptyPublicKey,
		ErrInvalidSignature,
		ErrSignatureNotVerified,
		ErrNeedOnlyOneSignature,
		ErrSignatureTypeNotSupported,
		ErrMissingTransactionSize,
		ErrInvalidTransactionString,
		ErrTransactionNotSigned,
		ErrNonceError,
		ErrFeeRateError,
		ErrInsufficientFunds,
		ErrBroadcastFailed,
		ErrNodeNotReady,
		ErrInvalidInput,
		ErrInternalError,
	}

	// ErrUnknownError is the catch-all error for anything that does not map
	// to a more specific kind. Retriable, per §7, since the caller cannot
	// tell whether the failure was transient.
	ErrUnknownError = &types.Error{
		Code:      601, //nolint:gomnd
		Message:   "unknown error",
		Retriable: true,
	}

	// ErrInvalidNetwork is returned when the network in network_identifier
	// does not match the chain this process is configured for.
	ErrInvalidNetwork = &types.Error{
		Code:    610, //nolint:gomnd
		Message: "invalid network",
	}

	// ErrInvalidBlockchain is returned when blockchain != "stacks".
	ErrInvalidBlockchain = &types.Error{
		Code:    611, //nolint:gomnd
		Message: "invalid blockchain",
	}

	// ErrUnavailableOffline is returned when an endpoint that requires the
	// node is called while the server is running in OFFLINE mode.
	ErrUnavailableOffline = &types.Error{
		Code:    612, //nolint:gomnd
		Message: "endpoint unavailable offline",
	}

	// ErrEmptyNetworkIdentifier is returned when network_identifier is
	// absent. Every endpoint maps this detection to the same code.
	ErrEmptyNetworkIdentifier = &types.Error{
		Code:    613, //nolint:gomnd
		Message: "network identifier is not provided",
	}

	// ErrBlockNotFound is returned when the requested block does not exist
	// (yet, or anymore). Retriable because it may simply not have propagated.
	ErrBlockNotFound = &types.Error{
		Code:      614, //nolint:gomnd
		Message:   "block not found",
		Retriable: true,
	}

	// ErrTransactionNotFound is returned when a block/transaction lookup misses.
	ErrTransactionNotFound = &types.Error{
		Code:      615, //nolint:gomnd
		Message:   "transaction not found",
		Retriable: true,
	}

	// ErrAccountNotFound is returned when the DataAdapter has no record of an account.
	ErrAccountNotFound = &types.Error{
		Code:    616, //nolint:gomnd
		Message: "account not found",
	}

	// ErrMempoolTransactionNotFound is returned by /mempool/transaction on a miss.
	ErrMempoolTransactionNotFound = &types.Error{
		Code:      617, //nolint:gomnd
		Message:   "mempool transaction not found",
		Retriable: true,
	}

	// ErrInvalidAccount is returned when an address fails c32check validation.
	ErrInvalidAccount = &types.Error{
		Code:    618, //nolint:gomnd
		Message: "invalid account address",
	}

	// ErrInvalidCurveType is returned when a public key's curve_type is not secp256k1.
	ErrInvalidCurveType = &types.Error{
		Code:    619, //nolint:gomnd
		Message: "invalid curve type",
	}

	// ErrInvalidCurrency is returned when Currency does not equal {STX, 6}.
	ErrInvalidCurrency = &types.Error{
		Code:    620, //nolint:gomnd
		Message: "invalid currency",
	}

	// ErrInvalidOperation is returned when the operation list does not
	// describe a single balanced token_transfer.
	ErrInvalidOperation = &types.Error{
		Code:    621, //nolint:gomnd
		Message: "invalid operation",
	}

	// ErrUnclearIntent is returned when operations cannot be matched against
	// the declarative OperationDescription for any recognized transaction shape.
	ErrUnclearIntent = &types.Error{
		Code:    622, //nolint:gomnd
		Message: "unable to parse intent from operations",
	}

	// ErrInvalidSender is returned when options.sender_address fails validation.
	ErrInvalidSender = &types.Error{
		Code:    623, //nolint:gomnd
		Message: "invalid sender address",
	}

	// ErrInvalidRecipient is returned when the recipient address fails validation.
	ErrInvalidRecipient = &types.Error{
		Code:    624, //nolint:gomnd
		Message: "invalid recipient address",
	}

	// ErrInvalidPublicKey is returned when a public key is not a valid
	// 33-byte compressed secp256k1 point, or does not derive to the claimed
	// sender address.
	ErrInvalidPublicKey = &types.Error{
		Code:    625, //nolint:gomnd
		Message: "invalid public key",
	}

	// ErrNeedOnePublicKey is returned when /construction/payloads is given
	// more than one public key.
	ErrNeedOnePublicKey = &types.Error{
		Code:    626, //nolint:gomnd
		Message: "exactly one public key is required",
	}

	// ErrEmptyPublicKey is returned when /construction/payloads is given zero public keys.
	ErrEmptyPublicKey = &types.Error{
		Code:    627, //nolint:gomnd
		Message: "public key is required",
	}

	// ErrInvalidTransactionString is returned on any structural transaction
	// decode failure: odd hex length, truncated buffer, unknown version,
	// unrecognized payload tag.
	ErrInvalidTransactionString = &types.Error{
		Code:    628, //nolint:gomnd
		Message: "invalid transaction string",
	}

	// ErrTransactionNotSigned is returned when hash/submit is given a
	// transaction whose signature slot is still zero-filled.
	ErrTransactionNotSigned = &types.Error{
		Code:    629, //nolint:gomnd
		Message: "transaction is not signed",
	}

	// ErrInvalidSignature is returned when a signature is not exactly 65 bytes.
	ErrInvalidSignature = &types.Error{
		Code:    630, //nolint:gomnd
		Message: "invalid signature",
	}

	// ErrNonceError is returned when the NodeClient fails to return a nonce.
	ErrNonceError = &types.Error{
		Code:      631, //nolint:gomnd
		Message:   "error getting account nonce",
		Retriable: true,
	}

	// ErrFeeRateError is returned when the NodeClient fails to return a fee rate.
	ErrFeeRateError = &types.Error{
		Code:      632, //nolint:gomnd
		Message:   "error getting fee rate",
		Retriable: true,
	}

	// ErrInsufficientFunds is returned when the node rejects a broadcast for
	// insufficient sender balance.
	ErrInsufficientFunds = &types.Error{
		Code:    633, //nolint:gomnd
		Message: "insufficient funds",
	}

	// ErrBroadcastFailed is returned when NodeClient.BroadcastTransaction fails
	// for a reason that does not match a more specific pattern.
	ErrBroadcastFailed = &types.Error{
		Code:      634, //nolint:gomnd
		Message:   "unable to broadcast transaction",
		Retriable: true,
	}

	// ErrSignatureNotVerified is returned when recover_and_verify fails to
	// match the claimed public key, under either byte ordering.
	ErrSignatureNotVerified = &types.Error{
		Code:    635, //nolint:gomnd
		Message: "signature not verified",
	}

	// ErrNodeNotReady is returned when the upstream node has not finished syncing.
	ErrNodeNotReady = &types.Error{
		Code:      636, //nolint:gomnd
		Message:   "node not ready",
		Retriable: true,
	}

	// ErrNeedOnlyOneSignature is returned when /construction/combine is given
	// more than one signature; multi-sig combine is a non-goal.
	ErrNeedOnlyOneSignature = &types.Error{
		Code:    637, //nolint:gomnd
		Message: "exactly one signature is required",
	}

	// ErrSignatureTypeNotSupported is returned when a signature's
	// signature_type is not ecdsa_recovery.
	//
	// The source shares code 638 between this and ErrMissingTransactionSize;
	// we split them into 638/639 here, a deliberate break from the source
	// numbering that existing clients keyed off code 638 for either meaning
	// should be aware of — see DESIGN.md.
	ErrSignatureTypeNotSupported = &types.Error{
		Code:    638, //nolint:gomnd
		Message: "signature type not supported",
	}

	// ErrMissingTransactionSize is returned when /construction/metadata is
	// given options with no size, since suggested_fee cannot be computed
	// without one.
	ErrMissingTransactionSize = &types.Error{
		Code:    639, //nolint:gomnd
		Message: "transaction size is required",
	}

	// ErrInvalidInput is returned when a request carries a malformed options
	// or metadata map: bad JSON, a field of the wrong type, an unparseable
	// integer string.
	ErrInvalidInput = &types.Error{
		Code:    640, //nolint:gomnd
		Message: "invalid input",
	}

	// ErrInternalError is returned for any failure internal to this process
	// that is not a validation error and not attributable to the node.
	ErrInternalError = &types.Error{
		Code:    699, //nolint:gomnd
		Message: "internal error",
	}
)

// WrapErr adds details to the *types.Error provided, returning a copy so the
// package-level catalog values are never mutated.
func WrapErr(rErr *types.Error, err error) *types.Error {
	newErr := &types.Error{
		Code:      rErr.Code,
		Message:   rErr.Message,
		Retriable: rErr.Retriable,
	}
	if err != nil {
		newErr.Details = map[string]interface{}{
			"context": err.Error(),
		}
	}
	return newErr
}

// WrapErrString is a convenience wrapper for call sites that only have a
// message, not an error value (e.g. when relaying node error text).
func WrapErrString(rErr *types.Error, msg string) *types.Error {
	newErr := &types.Error{
		Code:      rErr.Code,
		Message:   rErr.Message,
		Retriable: rErr.Retriable,
	}
	if msg != "" {
		newErr.Details = map[string]interface{}{
			"context": msg,
		}
	}
	return newErr
}
