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

// Package codec serializes and deserializes the chain's wire transaction
// format and handles the recoverable-ECDSA signing hash. Recovery follows
// the btcec/v2/ecdsa recover/sign APIs already present in the wider corpus
// (go-ethereum pulls btcsuite/btcd/btcec/v2 transitively, and
// Jason-chen-taiwan-arcSignv2's multi-chain signer uses it directly for the
// same recoverable-signature shape). Hex round-tripping with an optional
// "0x" prefix follows go-ethereum/common/hexutil, used the same way
// throughout the teacher SDK.
package codec

import (
	"bytes"
	"crypto/sha512"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	ecdsa "github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Transaction versions distinguish which network a transaction targets.
const (
	VersionMainnet byte = 0x00
	VersionTestnet byte = 0x80
)

// Chain IDs accompany the version byte and must agree with it.
const (
	ChainIDMainnet uint32 = 0x00000001
	ChainIDTestnet uint32 = 0x80000000
)

// Authorization (auth) modes. Sponsored transactions are accepted on the
// wire but construction of one is a non-goal; Deserialize still recognizes
// the tag so submit/parse never mistake one for a structural error.
const (
	AuthStandard  byte = 0x04
	AuthSponsored byte = 0x05
)

const (
	hashModeP2PKH byte = 0x00

	pubKeyEncodingCompressed byte = 0x00

	anchorModeAny          byte = 0x03
	postConditionModeDeny  byte = 0x02
	payloadTypeTokenTransfer byte = 0x00
	principalTypeStandard    byte = 0x05

	addressLength   = 20
	signatureLength = 65
	memoLength      = 34
)

// TxFields is the decoded form of a single-sig standard token-transfer
// transaction: the fields SerializeUnsigned/SerializeSigned encode and
// Deserialize recovers.
type TxFields struct {
	Version  byte
	ChainID  uint32
	AuthType byte

	SignerAddress [addressLength]byte
	Nonce         uint64
	Fee           uint64

	// Signature is the 65-byte [recovery_byte‖r‖s] wire signature. It is
	// all-zero on an unsigned transaction.
	Signature [signatureLength]byte

	RecipientVersion byte
	RecipientAddress [addressLength]byte
	Amount           uint64
	Memo             [memoLength]byte
}

// SerializeUnsigned emits the wire-format transaction with a zero-filled
// signature slot.
func SerializeUnsigned(fields TxFields) []byte {
	fields.Signature = [signatureLength]byte{}
	return serialize(fields)
}

// SerializeSigned emits the wire-format transaction with sig in the
// signature slot.
func SerializeSigned(fields TxFields, sig [signatureLength]byte) []byte {
	fields.Signature = sig
	return serialize(fields)
}

func serialize(fields TxFields) []byte {
	var buf bytes.Buffer

	buf.WriteByte(fields.Version)
	writeUint32(&buf, fields.ChainID)

	// Authorization: auth type, hash mode, signer address, nonce, fee,
	// public key encoding, recoverable signature.
	buf.WriteByte(fields.AuthType)
	buf.WriteByte(hashModeP2PKH)
	buf.Write(fields.SignerAddress[:])
	writeUint64(&buf, fields.Nonce)
	writeUint64(&buf, fields.Fee)
	buf.WriteByte(pubKeyEncodingCompressed)
	buf.Write(fields.Signature[:])

	buf.WriteByte(anchorModeAny)
	buf.WriteByte(postConditionModeDeny)

	// Post-conditions: empty list for a plain token transfer.
	writeUint32(&buf, 0)

	// Payload: token transfer.
	buf.WriteByte(payloadTypeTokenTransfer)
	buf.WriteByte(principalTypeStandard)
	buf.WriteByte(fields.RecipientVersion)
	buf.Write(fields.RecipientAddress[:])
	writeUint64(&buf, fields.Amount)
	buf.Write(fields.Memo[:])

	return buf.Bytes()
}

// Deserialize parses a wire-format transaction back into TxFields. Any
// structural problem — truncated buffer, unrecognized auth type or payload
// tag — is returned as an error; callers map it to invalidTransactionString.
func Deserialize(raw []byte) (*TxFields, error) {
	r := bytes.NewReader(raw)
	fields := &TxFields{}

	var err error
	if fields.Version, err = readByte(r); err != nil {
		return nil, fmt.Errorf("reading version: %w", err)
	}
	if fields.ChainID, err = readUint32(r); err != nil {
		return nil, fmt.Errorf("reading chain id: %w", err)
	}

	if fields.AuthType, err = readByte(r); err != nil {
		return nil, fmt.Errorf("reading auth type: %w", err)
	}
	if fields.AuthType != AuthStandard && fields.AuthType != AuthSponsored {
		return nil, fmt.Errorf("unrecognized auth type 0x%02x", fields.AuthType)
	}

	hashMode, err := readByte(r)
	if err != nil {
		return nil, fmt.Errorf("reading hash mode: %w", err)
	}
	if hashMode != hashModeP2PKH {
		return nil, fmt.Errorf("unsupported hash mode 0x%02x", hashMode)
	}

	if err := readFull(r, fields.SignerAddress[:]); err != nil {
		return nil, fmt.Errorf("reading signer address: %w", err)
	}
	if fields.Nonce, err = readUint64(r); err != nil {
		return nil, fmt.Errorf("reading nonce: %w", err)
	}
	if fields.Fee, err = readUint64(r); err != nil {
		return nil, fmt.Errorf("reading fee: %w", err)
	}

	keyEncoding, err := readByte(r)
	if err != nil {
		return nil, fmt.Errorf("reading key encoding: %w", err)
	}
	if keyEncoding != pubKeyEncodingCompressed {
		return nil, fmt.Errorf("unsupported public key encoding 0x%02x", keyEncoding)
	}

	if err := readFull(r, fields.Signature[:]); err != nil {
		return nil, fmt.Errorf("reading signature: %w", err)
	}

	if _, err := readByte(r); err != nil { // anchor mode
		return nil, fmt.Errorf("reading anchor mode: %w", err)
	}
	if _, err := readByte(r); err != nil { // post-condition mode
		return nil, fmt.Errorf("reading post-condition mode: %w", err)
	}

	numPostConditions, err := readUint32(r)
	if err != nil {
		return nil, fmt.Errorf("reading post-condition count: %w", err)
	}
	if numPostConditions != 0 {
		return nil, errors.New("post-conditions are not supported")
	}

	payloadType, err := readByte(r)
	if err != nil {
		return nil, fmt.Errorf("reading payload type: %w", err)
	}
	if payloadType != payloadTypeTokenTransfer {
		return nil, fmt.Errorf("unrecognized payload type 0x%02x", payloadType)
	}

	principalType, err := readByte(r)
	if err != nil {
		return nil, fmt.Errorf("reading principal type: %w", err)
	}
	if principalType != principalTypeStandard {
		return nil, fmt.Errorf("unrecognized principal type 0x%02x", principalType)
	}

	if fields.RecipientVersion, err = readByte(r); err != nil {
		return nil, fmt.Errorf("reading recipient version: %w", err)
	}
	if err := readFull(r, fields.RecipientAddress[:]); err != nil {
		return nil, fmt.Errorf("reading recipient address: %w", err)
	}
	if fields.Amount, err = readUint64(r); err != nil {
		return nil, fmt.Errorf("reading amount: %w", err)
	}
	if err := readFull(r, fields.Memo[:]); err != nil {
		return nil, fmt.Errorf("reading memo: %w", err)
	}

	if r.Len() != 0 {
		return nil, fmt.Errorf("%d trailing bytes after payload", r.Len())
	}

	return fields, nil
}

// IsSigned reports whether fields carries a populated, well-formed
// signature: not all-zero, with a valid 0/1 recovery byte.
func IsSigned(fields *TxFields) bool {
	if fields.Signature[0] != 0x00 && fields.Signature[0] != 0x01 {
		return false
	}
	for _, b := range fields.Signature[1:] {
		if b != 0 {
			return true
		}
	}
	return false
}

// TxHash computes SHA-512/256 over the full serialized transaction.
func TxHash(raw []byte) [32]byte {
	return sha512.Sum512_256(raw)
}

// PreSignHash binds a transaction's structural hash to its authorization
// mode, fee, and nonce. This is the digest a wallet actually signs.
func PreSignHash(sigHash [32]byte, authType byte, fee, nonce uint64) [32]byte {
	var buf bytes.Buffer
	buf.Write(sigHash[:])
	buf.WriteByte(authType)
	writeUint64(&buf, fee)
	writeUint64(&buf, nonce)
	return sha512.Sum512_256(buf.Bytes())
}

// RecoverAndVerify recovers the compressed public key from a recoverable
// signature over preHash and reports whether it matches expectedPubKey
// byte-for-byte.
func RecoverAndVerify(preHash [32]byte, sig65 []byte, expectedPubKey []byte) (bool, error) {
	recovered, err := RecoverPublicKey(preHash, sig65)
	if err != nil {
		return false, err
	}
	return bytes.Equal(recovered, expectedPubKey), nil
}

// RecoverPublicKey recovers the 33-byte compressed public key that signed
// preHash, given a wire-order [recovery_byte‖r‖s] signature.
func RecoverPublicKey(preHash [32]byte, sig65 []byte) ([]byte, error) {
	if len(sig65) != signatureLength {
		return nil, fmt.Errorf("signature must be %d bytes, got %d", signatureLength, len(sig65))
	}
	recoveryByte := sig65[0]
	if recoveryByte != 0x00 && recoveryByte != 0x01 {
		return nil, fmt.Errorf("invalid recovery byte 0x%02x", recoveryByte)
	}

	compact := make([]byte, signatureLength)
	compact[0] = 27 + 4 + recoveryByte // compressed-key header, per btcec/v2/ecdsa.SignCompact
	copy(compact[1:], sig65[1:])

	pubKey, wasCompressed, err := ecdsa.RecoverCompact(compact, preHash[:])
	if err != nil {
		return nil, fmt.Errorf("recovering public key: %w", err)
	}
	if !wasCompressed {
		return nil, errors.New("recovered an uncompressed public key")
	}
	return pubKey.SerializeCompressed(), nil
}

// SignRecoverable produces the 65-byte [recovery_byte‖r‖s] wire signature
// over preHash. It exists for tests and tooling; the server itself never
// signs transactions on a client's behalf.
func SignRecoverable(key *btcec.PrivateKey, preHash [32]byte) [signatureLength]byte {
	compact := ecdsa.SignCompact(key, preHash[:], true)

	var sig [signatureLength]byte
	sig[0] = compact[0] - 27 - 4
	copy(sig[1:], compact[1:])
	return sig
}

// NormalizeSignature rotates a 65-byte signature given in [r‖s‖recovery]
// order into wire order [recovery‖r‖s]. It is a no-op if b is already in
// wire order (recovery byte already first).
func NormalizeSignature(b []byte) ([signatureLength]byte, error) {
	var out [signatureLength]byte
	if len(b) != signatureLength {
		return out, fmt.Errorf("signature must be %d bytes, got %d", signatureLength, len(b))
	}
	if b[0] == 0x00 || b[0] == 0x01 {
		copy(out[:], b)
		return out, nil
	}
	last := b[signatureLength-1]
	if last != 0x00 && last != 0x01 {
		return out, errors.New("signature has no recognizable recovery byte in either order")
	}
	out[0] = last
	copy(out[1:], b[:signatureLength-1])
	return out, nil
}

// DecodeHex decodes s, tolerating an optional "0x"/"0X" prefix.
func DecodeHex(s string) ([]byte, error) {
	return hexutil.Decode(ensure0x(s))
}

// EncodeHex renders b as a lowercase "0x"-prefixed hex string.
func EncodeHex(b []byte) string {
	return hexutil.Encode(b)
}

func ensure0x(s string) string {
	if len(s) >= 2 && (s[:2] == "0x" || s[:2] == "0X") {
		return "0x" + s[2:]
	}
	return "0x" + s
}

func writeUint32(buf *bytes.Buffer, v uint32) {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	buf.Write(tmp[:])
}

func writeUint64(buf *bytes.Buffer, v uint64) {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], v)
	buf.Write(tmp[:])
}

func readByte(r *bytes.Reader) (byte, error) {
	return r.ReadByte()
}

func readUint32(r *bytes.Reader) (uint32, error) {
	var tmp [4]byte
	if err := readFull(r, tmp[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(tmp[:]), nil
}

func readUint64(r *bytes.Reader) (uint64, error) {
	var tmp [8]byte
	if err := readFull(r, tmp[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(tmp[:]), nil
}

func readFull(r *bytes.Reader, buf []byte) error {
	n, err := r.Read(buf)
	if err != nil {
		return err
	}
	if n != len(buf) {
		return fmt.Errorf("short read: wanted %d bytes, got %d", len(buf), n)
	}
	return nil
}
