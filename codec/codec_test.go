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

package codec

import (
	"crypto/sha256"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFields() TxFields {
	var signer, recipient [addressLength]byte
	for i := range signer {
		signer[i] = byte(i + 1)
	}
	for i := range recipient {
		recipient[i] = byte(i + 100)
	}
	var memo [memoLength]byte

	return TxFields{
		Version:          VersionMainnet,
		ChainID:          ChainIDMainnet,
		AuthType:         AuthStandard,
		SignerAddress:    signer,
		Nonce:            42,
		Fee:              180,
		RecipientVersion: VersionMainnet,
		RecipientAddress: recipient,
		Amount:           1000000,
		Memo:             memo,
	}
}

func TestSerializeUnsignedRoundTrip(t *testing.T) {
	fields := testFields()
	raw := SerializeUnsigned(fields)

	parsed, err := Deserialize(raw)
	require.NoError(t, err)

	assert.Equal(t, fields.Version, parsed.Version)
	assert.Equal(t, fields.ChainID, parsed.ChainID)
	assert.Equal(t, fields.AuthType, parsed.AuthType)
	assert.Equal(t, fields.SignerAddress, parsed.SignerAddress)
	assert.Equal(t, fields.Nonce, parsed.Nonce)
	assert.Equal(t, fields.Fee, parsed.Fee)
	assert.Equal(t, fields.RecipientAddress, parsed.RecipientAddress)
	assert.Equal(t, fields.Amount, parsed.Amount)
	assert.False(t, IsSigned(parsed))
}

func TestSerializeSignedRoundTrip(t *testing.T) {
	fields := testFields()
	var sig [signatureLength]byte
	sig[0] = 0x01
	for i := 1; i < signatureLength; i++ {
		sig[i] = byte(i)
	}

	raw := SerializeSigned(fields, sig)
	parsed, err := Deserialize(raw)
	require.NoError(t, err)

	assert.Equal(t, sig, parsed.Signature)
	assert.True(t, IsSigned(parsed))
}

func TestDeserializeRejectsTruncatedBuffer(t *testing.T) {
	raw := SerializeUnsigned(testFields())
	_, err := Deserialize(raw[:len(raw)-10])
	assert.Error(t, err)
}

func TestDeserializeRejectsTrailingBytes(t *testing.T) {
	raw := SerializeUnsigned(testFields())
	raw = append(raw, 0xff)
	_, err := Deserialize(raw)
	assert.Error(t, err)
}

func TestDeserializeRejectsUnknownAuthType(t *testing.T) {
	raw := SerializeUnsigned(testFields())
	raw[5] = 0x99 // auth type byte follows version(1) + chain id(4)
	_, err := Deserialize(raw)
	assert.Error(t, err)
}

func TestIsSignedRejectsInvalidRecoveryByte(t *testing.T) {
	fields := testFields()
	var sig [signatureLength]byte
	sig[0] = 0x02 // not a valid recovery byte
	raw := SerializeSigned(fields, sig)
	parsed, err := Deserialize(raw)
	require.NoError(t, err)
	assert.False(t, IsSigned(parsed))
}

func TestSignAndRecoverAndVerify(t *testing.T) {
	key, err := btcec.NewPrivateKey()
	require.NoError(t, err)
	pubKey := key.PubKey().SerializeCompressed()

	fields := testFields()
	unsigned := SerializeUnsigned(fields)
	sigHash := TxHash(unsigned)
	preHash := PreSignHash(sigHash, fields.AuthType, fields.Fee, fields.Nonce)

	sig := SignRecoverable(key, preHash)

	ok, err := RecoverAndVerify(preHash, sig[:], pubKey)
	require.NoError(t, err)
	assert.True(t, ok)

	otherKey, err := btcec.NewPrivateKey()
	require.NoError(t, err)
	ok, err = RecoverAndVerify(preHash, sig[:], otherKey.PubKey().SerializeCompressed())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNormalizeSignatureBothOrders(t *testing.T) {
	wire := make([]byte, signatureLength)
	wire[0] = 0x01
	for i := 1; i < signatureLength; i++ {
		wire[i] = byte(i * 3)
	}

	normalized, err := NormalizeSignature(wire)
	require.NoError(t, err)
	assert.Equal(t, wire, normalized[:])

	rsRecovery := make([]byte, signatureLength)
	copy(rsRecovery, wire[1:])
	rsRecovery[signatureLength-1] = wire[0]

	normalized2, err := NormalizeSignature(rsRecovery)
	require.NoError(t, err)
	assert.Equal(t, wire, normalized2[:])
}

func TestNormalizeSignatureRejectsBadLength(t *testing.T) {
	_, err := NormalizeSignature(make([]byte, 64))
	assert.Error(t, err)
}

func TestDecodeHexAcceptsEitherPrefix(t *testing.T) {
	raw := []byte{0xde, 0xad, 0xbe, 0xef}
	want := EncodeHex(raw)

	decoded, err := DecodeHex(want)
	require.NoError(t, err)
	assert.Equal(t, raw, decoded)

	decodedNoPrefix, err := DecodeHex(want[2:])
	require.NoError(t, err)
	assert.Equal(t, raw, decodedNoPrefix)
}

func TestTxHashIsDeterministic(t *testing.T) {
	raw := SerializeUnsigned(testFields())
	h1 := TxHash(raw)
	h2 := TxHash(raw)
	assert.Equal(t, h1, h2)

	// Sanity check it is not simply sha256 (a different 32-byte algorithm).
	sha256Sum := sha256.Sum256(raw)
	assert.NotEqual(t, sha256Sum, h1)
}
