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

// Package addresscodec derives and validates the chain's c32check addresses.
//
// Derivation follows the same two-stage "hash160" digest (SHA-256 then
// RIPEMD-160 of a compressed public key) used by every hash160-based chain
// in the wider corpus this implementation was grown from — see
// internal/services/address/cosmos.go's deriveCosmosAddressWithPrefix for the
// sibling derivation this one generalizes from. The final encoding step,
// c32check, is this chain's own base32 checksum scheme: no third-party
// library in the retrieved corpus implements it, so it is hand-rolled here
// directly off the bit layout the wire format fixes (not an ambient
// concern — it is the address component the spec itself singles out).
package addresscodec

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck
)

// Network distinguishes the mainnet and testnet version-byte spaces.
type Network int

const (
	// Mainnet is the production network.
	Mainnet Network = iota
	// Testnet is the test network.
	Testnet
)

const (
	// MainnetVersion is the single-sig standard version byte on mainnet.
	MainnetVersion byte = 0x16
	// TestnetVersion is the single-sig standard version byte on testnet.
	TestnetVersion byte = 0x1a

	hash160Length = 20
	addressPrefix = "S"

	// c32Alphabet is the Crockford base32 alphabet used by c32check: digits
	// and uppercase letters, omitting I, L, O, U to avoid visual ambiguity.
	c32Alphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"
)

var c32AlphabetIndex = func() map[byte]int {
	m := make(map[byte]int, len(c32Alphabet))
	for i := 0; i < len(c32Alphabet); i++ {
		m[c32Alphabet[i]] = i
	}
	return m
}()

// VersionFor returns the single-sig standard version byte for a network.
func VersionFor(network Network) byte {
	if network == Testnet {
		return TestnetVersion
	}
	return MainnetVersion
}

// NetworkFor returns the Network a version byte belongs to, if any.
func NetworkFor(version byte) (Network, bool) {
	switch version {
	case MainnetVersion:
		return Mainnet, true
	case TestnetVersion:
		return Testnet, true
	default:
		return 0, false
	}
}

// hash160 returns SHA-256 followed by RIPEMD-160 of data, the same
// derivation used for the hash160-family address schemes across the corpus.
func hash160(data []byte) []byte {
	sum := sha256.Sum256(data)
	r := ripemd160.New() //nolint:staticcheck
	r.Write(sum[:])
	return r.Sum(nil)
}

// DeriveAddress derives a single-sig standard c32check address from a
// compressed secp256k1 public key.
func DeriveAddress(pubKey33 []byte, network Network) (string, error) {
	if len(pubKey33) != 33 {
		return "", fmt.Errorf("public key must be 33 bytes, got %d", len(pubKey33))
	}
	if _, err := btcec.ParsePubKey(pubKey33); err != nil {
		return "", fmt.Errorf("invalid secp256k1 public key: %w", err)
	}
	h160 := hash160(pubKey33)
	return c32checkEncode(VersionFor(network), h160), nil
}

// ValidateAddress decodes s and verifies its checksum and that its version
// byte matches network.
func ValidateAddress(s string, network Network) error {
	version, _, err := c32checkDecode(s)
	if err != nil {
		return err
	}
	if version != VersionFor(network) {
		return fmt.Errorf("address %q belongs to a different network", s)
	}
	return nil
}

// Decode returns the version byte and 20-byte hash160 payload of a
// c32check address, without checking which network it belongs to.
func Decode(s string) (version byte, h160 []byte, err error) {
	return c32checkDecode(s)
}

// Encode is the inverse of Decode: it c32check-encodes a version byte and
// 20-byte hash160 payload into an address string.
func Encode(version byte, h160 []byte) string {
	return c32checkEncode(version, h160)
}

// ValidateAddressAnyNetwork decodes s and verifies only its checksum,
// returning the network the version byte identifies.
func ValidateAddressAnyNetwork(s string) (Network, error) {
	version, _, err := c32checkDecode(s)
	if err != nil {
		return 0, err
	}
	network, ok := NetworkFor(version)
	if !ok {
		return 0, fmt.Errorf("address %q has an unrecognized version byte 0x%02x", s, version)
	}
	return network, nil
}

// c32checkEncode encodes version||hash160||checksum as "S" + one
// version digit + the c32-encoded payload, where checksum is the leading 4
// bytes of double-SHA-256(version||hash160).
func c32checkEncode(version byte, h160 []byte) string {
	checksum := c32checksum(version, h160)
	payload := make([]byte, 0, len(h160)+len(checksum))
	payload = append(payload, h160...)
	payload = append(payload, checksum...)

	versionChar := string(c32Alphabet[int(version)%len(c32Alphabet)])
	return addressPrefix + versionChar + c32Encode(payload)
}

// c32checkDecode is the inverse of c32checkEncode: it validates the prefix,
// version digit, checksum, and returns the version byte and hash160 payload.
func c32checkDecode(s string) (byte, []byte, error) {
	if len(s) < 3 || s[:1] != addressPrefix {
		return 0, nil, errors.New("invalidAccount: missing address prefix")
	}
	versionChar := s[1]
	versionIdx, ok := c32AlphabetIndex[versionChar]
	if !ok {
		return 0, nil, errors.New("invalidAccount: invalid version character")
	}
	version := byte(versionIdx)

	decoded, err := c32Decode(s[2:])
	if err != nil {
		return 0, nil, fmt.Errorf("invalidAccount: %w", err)
	}
	if len(decoded) < hash160Length+4 {
		return 0, nil, errors.New("invalidAccount: payload too short")
	}

	h160 := decoded[:hash160Length]
	checksum := decoded[hash160Length:]
	expected := c32checksum(version, h160)
	if !bytesEqual(checksum, expected) {
		return 0, nil, errors.New("invalidAccount: checksum mismatch")
	}
	return version, h160, nil
}

func c32checksum(version byte, h160 []byte) []byte {
	buf := make([]byte, 0, len(h160)+1)
	buf = append(buf, version)
	buf = append(buf, h160...)
	first := sha256.Sum256(buf)
	second := sha256.Sum256(first[:])
	return second[:4]
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// c32Encode treats data as a big-endian unsigned integer and renders it in
// the c32 base32 alphabet, preserving one output digit per 5 input bits and
// one leading '0' per leading zero input byte (mirroring how base58
// implementations preserve leading zero bytes as leading '1's).
func c32Encode(data []byte) string {
	leadingZeros := 0
	for leadingZeros < len(data) && data[leadingZeros] == 0 {
		leadingZeros++
	}

	value := new(big.Int).SetBytes(data)
	base := big.NewInt(int32(len(c32Alphabet)))
	zero := big.NewInt(0)
	mod := new(big.Int)

	var out []byte
	for value.Cmp(zero) > 0 {
		value.DivMod(value, base, mod)
		out = append(out, c32Alphabet[mod.Int64()])
	}

	// out was built least-significant-digit first; reverse it.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}

	result := make([]byte, 0, leadingZeros+len(out))
	for i := 0; i < leadingZeros; i++ {
		result = append(result, c32Alphabet[0])
	}
	result = append(result, out...)
	if len(result) == 0 {
		result = []byte{c32Alphabet[0]}
	}
	return string(result)
}

// c32Decode is the inverse of c32Encode.
func c32Decode(s string) ([]byte, error) {
	leadingZeros := 0
	for leadingZeros < len(s) && s[leadingZeros] == c32Alphabet[0] {
		leadingZeros++
	}

	value := new(big.Int)
	base := big.NewInt(int32(len(c32Alphabet)))
	digit := new(big.Int)
	for i := 0; i < len(s); i++ {
		idx, ok := c32AlphabetIndex[normalizeC32Char(s[i])]
		if !ok {
			return nil, fmt.Errorf("invalid c32 character %q", s[i])
		}
		digit.SetInt64(int64(idx))
		value.Mul(value, base)
		value.Add(value, digit)
	}

	decoded := value.Bytes()
	result := make([]byte, 0, leadingZeros+len(decoded))
	for i := 0; i < leadingZeros; i++ {
		result = append(result, 0)
	}
	result = append(result, decoded...)
	return result, nil
}

// normalizeC32Char maps the ambiguous letters the Crockford alphabet omits
// (O, I, L) back onto their canonical digits, since wallets sometimes
// round-trip addresses through case-insensitive, ambiguity-tolerant input.
func normalizeC32Char(c byte) byte {
	switch c {
	case 'O', 'o':
		return '0'
	case 'I', 'i', 'L', 'l':
		return '1'
	default:
		if c >= 'a' && c <= 'z' {
			return c - ('a' - 'A')
		}
		return c
	}
}
