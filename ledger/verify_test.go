package ledger_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	btcecdsa "github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ethenwilde/hdwallet/ledger"
)

func TestBTCVerifyMessage(t *testing.T) {
	w, _, _, _ := newTestWallet("")

	keyBytes := bytes.Repeat([]byte{0x2a}, 32)
	privateKey, publicKey := btcec.PrivKeyFromBytes(keyBytes)

	message := []byte("Hello World")

	var buf bytes.Buffer
	require.NoError(t, wire.WriteVarString(&buf, 0, "Bitcoin Signed Message:\n"))
	require.NoError(t, wire.WriteVarString(&buf, 0, string(message)))
	digest := chainhash.DoubleHashB(buf.Bytes())

	signature := btcecdsa.SignCompact(privateKey, digest, true)

	address, err := btcutil.NewAddressPubKeyHash(
		btcutil.Hash160(publicKey.SerializeCompressed()), &chaincfg.MainNetParams)
	require.NoError(t, err)

	t.Run("valid signature", func(t *testing.T) {
		valid, err := w.BTCVerifyMessage(&ledger.BTCVerifyMessageRequest{
			Coin:      "Bitcoin",
			Address:   address.EncodeAddress(),
			Message:   message,
			Signature: signature,
		})
		require.NoError(t, err)
		assert.True(t, valid)
	})

	t.Run("wrong address", func(t *testing.T) {
		valid, err := w.BTCVerifyMessage(&ledger.BTCVerifyMessageRequest{
			Coin:      "Bitcoin",
			Address:   "1BvBMSEYstWetqTFn5Au4m4GFg7xJaNVN2",
			Message:   message,
			Signature: signature,
		})
		require.NoError(t, err)
		assert.False(t, valid)
	})

	t.Run("tampered message", func(t *testing.T) {
		valid, err := w.BTCVerifyMessage(&ledger.BTCVerifyMessageRequest{
			Coin:      "Bitcoin",
			Address:   address.EncodeAddress(),
			Message:   []byte("Hello World!"),
			Signature: signature,
		})
		if err == nil {
			assert.False(t, valid)
		}
	})

	t.Run("garbage signature", func(t *testing.T) {
		_, err := w.BTCVerifyMessage(&ledger.BTCVerifyMessageRequest{
			Coin:      "Bitcoin",
			Address:   address.EncodeAddress(),
			Message:   message,
			Signature: []byte{0x01, 0x02},
		})
		assert.Error(t, err)
	})
}

func TestETHVerifyMessage(t *testing.T) {
	w, _, _, _ := newTestWallet("")

	privateKey, err := crypto.HexToECDSA("b71c71a67e1177ad4e901695e1b4b9ee17ae16c6668d313eac2f96dbcda3f291")
	require.NoError(t, err)
	address := crypto.PubkeyToAddress(privateKey.PublicKey)

	message := []byte("Hello World")
	digest := crypto.Keccak256([]byte(fmt.Sprintf("\x19Ethereum Signed Message:\n%d%s", len(message), message)))

	signature, err := crypto.Sign(digest, privateKey)
	require.NoError(t, err)

	// Devices report V as 27/28.
	deviceSignature := make([]byte, len(signature))
	copy(deviceSignature, signature)
	deviceSignature[64] += 27

	t.Run("valid signature with device V", func(t *testing.T) {
		valid, err := w.ETHVerifyMessage(&ledger.ETHVerifyMessageRequest{
			Address:   address,
			Message:   message,
			Signature: deviceSignature,
		})
		require.NoError(t, err)
		assert.True(t, valid)
	})

	t.Run("valid signature with raw V", func(t *testing.T) {
		valid, err := w.ETHVerifyMessage(&ledger.ETHVerifyMessageRequest{
			Address:   address,
			Message:   message,
			Signature: signature,
		})
		require.NoError(t, err)
		assert.True(t, valid)
	})

	t.Run("wrong address", func(t *testing.T) {
		valid, err := w.ETHVerifyMessage(&ledger.ETHVerifyMessageRequest{
			Address:   crypto.PubkeyToAddress(privateKey.PublicKey),
			Message:   []byte("different message"),
			Signature: deviceSignature,
		})
		require.NoError(t, err)
		assert.False(t, valid)
	})

	t.Run("bad signature length", func(t *testing.T) {
		_, err := w.ETHVerifyMessage(&ledger.ETHVerifyMessageRequest{
			Address:   address,
			Message:   message,
			Signature: []byte{0x01},
		})
		assert.Error(t, err)
	})
}
