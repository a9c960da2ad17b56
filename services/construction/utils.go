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
	"strings"

	"github.com/coinbase/rosetta-sdk-go/types"

	"github.com/hirosystems/rosetta-stacks-sdk/addresscodec"
	sdkTypes "github.com/hirosystems/rosetta-stacks-sdk/types"
)

// networkFor resolves a request's network_identifier onto the address
// codec's Network enum. NetworkGuard has already asserted blockchain and
// network match the configured values, so this fails only when the
// identifier is absent or names a network this implementation has never
// heard of.
func (s *APIService) networkFor(reqNetwork *types.NetworkIdentifier) (addresscodec.Network, *types.Error) {
	if reqNetwork == nil {
		return 0, sdkTypes.ErrEmptyNetworkIdentifier
	}

	switch strings.ToLower(reqNetwork.Network) {
	case "mainnet":
		return addresscodec.Mainnet, nil
	case "testnet":
		return addresscodec.Testnet, nil
	default:
		return 0, sdkTypes.ErrInvalidNetwork
	}
}
