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
	"github.com/hirosystems/rosetta-stacks-sdk/addresscodec"
)

// ValidateAddress ensures address is a well-formed c32check address for
// network.
func ValidateAddress(address string, network addresscodec.Network) error {
	return addresscodec.ValidateAddress(address, network)
}

// DeriveAddress derives the c32check address a compressed public key
// controls on network.
func DeriveAddress(pubKey33 []byte, network addresscodec.Network) (string, error) {
	return addresscodec.DeriveAddress(pubKey33, network)
}
