package ledger

import (
	"bytes"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

// btcMessageMagic prefixes signed messages on Bitcoin-style chains.
const btcMessageMagic = "Bitcoin Signed Message:\n"

// BTCVerifyMessage checks a compact message signature against a P2PKH
// address. The check is pure: the public key is recovered from the
// signature, hashed to an address and compared. No device interaction.
func (w *Wallet) BTCVerifyMessage(req *BTCVerifyMessageRequest) (bool, error) {
	params := NetworkForCoin(req.Coin)
	if params == nil {
		params = &chaincfg.MainNetParams
	}

	var buf bytes.Buffer
	if err := wire.WriteVarString(&buf, 0, btcMessageMagic); err != nil {
		return false, errors.Wrap(err, "failed to serialize message prefix")
	}
	if err := wire.WriteVarString(&buf, 0, string(req.Message)); err != nil {
		return false, errors.Wrap(err, "failed to serialize message")
	}
	digest := chainhash.DoubleHashB(buf.Bytes())

	publicKey, compressed, err := ecdsa.RecoverCompact(req.Signature, digest)
	if err != nil {
		return false, errors.Wrap(err, "failed to recover public key from signature")
	}

	serialized := publicKey.SerializeUncompressed()
	if compressed {
		serialized = publicKey.SerializeCompressed()
	}

	address, err := btcutil.NewAddressPubKeyHash(btcutil.Hash160(serialized), params)
	if err != nil {
		return false, errors.Wrap(err, "failed to derive address from recovered key")
	}

	return address.EncodeAddress() == req.Address, nil
}

// ETHVerifyMessage checks an EIP-191 personal message signature against
// an address. Pure, no device interaction.
func (w *Wallet) ETHVerifyMessage(req *ETHVerifyMessageRequest) (bool, error) {
	if len(req.Signature) != 65 {
		return false, errors.Errorf("invalid signature length %d", len(req.Signature))
	}

	// Devices report the recovery id offset by 27 per the original
	// Ethereum signing scheme; normalize before recovery.
	signature := make([]byte, len(req.Signature))
	copy(signature, req.Signature)
	if signature[64] >= 27 {
		signature[64] -= 27
	}

	digest := crypto.Keccak256([]byte(fmt.Sprintf("\x19Ethereum Signed Message:\n%d%s", len(req.Message), req.Message)))

	publicKey, err := crypto.SigToPub(digest, signature)
	if err != nil {
		return false, errors.Wrap(err, "failed to recover public key from signature")
	}

	return crypto.PubkeyToAddress(*publicKey) == req.Address, nil
}
