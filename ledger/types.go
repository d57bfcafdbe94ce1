package ledger

import (
	"context"
	"math/big"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/Ethenwilde/hdwallet/path"
	"github.com/Ethenwilde/hdwallet/transport"
)

// CoinFamily is a closed set of coin families a wallet can serve.
type CoinFamily string

const (
	// CoinFamilyUTXO covers the Bitcoin-style coins.
	CoinFamilyUTXO CoinFamily = "utxo"
	// CoinFamilyEVM covers the Ethereum chain.
	CoinFamilyEVM CoinFamily = "evm"
)

// GetPublicKeyRequest asks for one extended public key. The Coin field
// is informational only: batched retrieval routes on the device's active
// application, never on the request's declared coin.
type GetPublicKeyRequest struct {
	AddressNList path.Path
	Coin         string
	ScriptType   path.ScriptType
	ShowDisplay  bool
}

// PublicKey is one result of a batched key retrieval.
type PublicKey struct {
	XPub string
}

// ExtendedKey parses the xpub into its btcd representation.
func (p *PublicKey) ExtendedKey() (*hdkeychain.ExtendedKey, error) {
	return hdkeychain.NewKeyFromString(p.XPub)
}

// BTCSignTxInput references one UTXO being spent.
type BTCSignTxInput struct {
	AddressNList path.Path
	ScriptType   path.ScriptType
	Amount       btcutil.Amount
	TxID         string
	Vout         uint32
}

// BTCSignTxOutput is one output of the transaction under construction.
// Change outputs carry the derivation path instead of an address so the
// device can verify them without user confirmation.
type BTCSignTxOutput struct {
	Address      string
	AddressNList path.Path
	ScriptType   path.ScriptType
	Amount       btcutil.Amount
	IsChange     bool
}

// BTCSignTxRequest describes a UTXO transaction for on-device signing.
type BTCSignTxRequest struct {
	Coin     string
	Network  *chaincfg.Params
	Inputs   []BTCSignTxInput
	Outputs  []BTCSignTxOutput
	Version  uint32
	LockTime uint32
}

// BTCSignedTx is the device's signing result.
type BTCSignedTx struct {
	Signatures   []string
	SerializedTx []byte
}

// BTCGetAddressRequest asks the device for an address, optionally
// displaying it on-device for verification.
type BTCGetAddressRequest struct {
	AddressNList path.Path
	Coin         string
	ScriptType   path.ScriptType
	ShowDisplay  bool
	Network      *chaincfg.Params
}

// BTCSignMessageRequest asks the device to sign a message with the key
// at the given path.
type BTCSignMessageRequest struct {
	AddressNList path.Path
	Coin         string
	ScriptType   path.ScriptType
	Message      []byte
}

// BTCSignedMessage is the device's message signing result.
type BTCSignedMessage struct {
	Address   string
	Signature []byte
}

// BTCVerifyMessageRequest checks a compact signature against an address.
// Verification is pure and never touches the device.
type BTCVerifyMessageRequest struct {
	Coin      string
	Address   string
	Message   []byte
	Signature []byte
}

// ETHSignTxRequest describes an Ethereum transaction for on-device
// signing. The transaction carries every field the device displays.
type ETHSignTxRequest struct {
	AddressNList path.Path
	Tx           *types.Transaction
	ChainID      *big.Int
}

// ETHGetAddressRequest asks the device for the address at a path.
type ETHGetAddressRequest struct {
	AddressNList path.Path
	ShowDisplay  bool
}

// ETHSignMessageRequest asks the device to sign a personal message.
type ETHSignMessageRequest struct {
	AddressNList path.Path
	Message      []byte
}

// ETHSignedMessage is the device's personal message signing result.
type ETHSignedMessage struct {
	Address   common.Address
	Signature []byte
}

// ETHVerifyMessageRequest checks a personal message signature against an
// address. Verification is pure and never touches the device.
type ETHVerifyMessageRequest struct {
	Address   common.Address
	Message   []byte
	Signature []byte
}

// BTCBackend constructs and exchanges the coin-specific signing payloads
// for UTXO coins. Implementations own the wire encoding; the wallet
// layer only guards and routes.
type BTCBackend interface {
	SignTx(ctx context.Context, t transport.Transport, req *BTCSignTxRequest) (*BTCSignedTx, error)
	GetAddress(ctx context.Context, t transport.Transport, req *BTCGetAddressRequest) (string, error)
	SignMessage(ctx context.Context, t transport.Transport, req *BTCSignMessageRequest) (*BTCSignedMessage, error)
	GetPublicKeys(ctx context.Context, t transport.Transport, reqs []GetPublicKeyRequest) ([]*PublicKey, error)
}

// ETHBackend constructs and exchanges the coin-specific signing payloads
// for the Ethereum application.
type ETHBackend interface {
	SignTx(ctx context.Context, t transport.Transport, req *ETHSignTxRequest) (*types.Transaction, error)
	GetAddress(ctx context.Context, t transport.Transport, req *ETHGetAddressRequest) (common.Address, error)
	SignMessage(ctx context.Context, t transport.Transport, req *ETHSignMessageRequest) (*ETHSignedMessage, error)
	GetPublicKeys(ctx context.Context, t transport.Transport, reqs []GetPublicKeyRequest) ([]*PublicKey, error)
}
