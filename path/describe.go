package path

import "fmt"

// ScriptType identifies the UTXO output encoding scheme tied to a
// derivation purpose code.
type ScriptType string

const (
	// ScriptTypeP2PKH is legacy pay-to-pubkey-hash (BIP-44, purpose 44').
	ScriptTypeP2PKH ScriptType = "p2pkh"
	// ScriptTypeP2SHP2WPKH is wrapped segwit (BIP-49, purpose 49').
	ScriptTypeP2SHP2WPKH ScriptType = "p2sh-p2wpkh"
	// ScriptTypeP2WPKH is native segwit (BIP-84, purpose 84').
	ScriptTypeP2WPKH ScriptType = "p2wpkh"
)

// Purpose returns the BIP-43 purpose code for the script type.
func (s ScriptType) Purpose() (uint32, bool) {
	switch s {
	case ScriptTypeP2PKH:
		return 44, true
	case ScriptTypeP2SHP2WPKH:
		return 49, true
	case ScriptTypeP2WPKH:
		return 84, true
	default:
		return 0, false
	}
}

// slip44ByCoin maps coin names to their registered SLIP-44 coin types.
var slip44ByCoin = map[string]uint32{
	"Bitcoin":     0,
	"Testnet":     1,
	"Litecoin":    2,
	"Dogecoin":    3,
	"Dash":        5,
	"DigiByte":    20,
	"Ethereum":    60,
	"BitcoinCash": 145,
}

// SLIP44 returns the registered SLIP-44 coin type for a coin name.
func SLIP44(coin string) (uint32, bool) {
	id, ok := slip44ByCoin[coin]
	return id, ok
}

// Description is the structured classification of a derivation path.
// It is produced per query and never cached. IsKnown false is a valid
// result for an unrecognized path shape, not an error.
type Description struct {
	Verbose      string
	Coin         string
	IsKnown      bool
	WholeAccount bool
	AccountIdx   uint32
	IsPrefork    bool
	ScriptType   ScriptType
}

// Describer classifies a derivation path for coins this package has no
// dedicated rule for. The ledger facade is handed one at construction;
// DescribeUTXOPath is the stock implementation.
type Describer func(coin string, p Path, script ScriptType) Description

// unknownPath is the uniform rejection result: the canonical path string
// with the coin preserved and IsKnown false.
func unknownPath(coin string, p Path, script ScriptType) Description {
	return Description{
		Verbose:    p.String(),
		Coin:       coin,
		ScriptType: script,
		IsKnown:    false,
	}
}

// DescribeETHPath classifies an Ethereum derivation path. Two shapes are
// recognized: the five component BIP-44 account form m/44'/60'/a'/0/0 and
// the four component legacy form m/44'/60'/0'/x used by older Ledger
// derivations. Both report WholeAccount true; the legacy branch varies an
// address index under a fixed account, but the reference application
// reports it as a whole account and that quirk is kept as-is.
func DescribeETHPath(p Path) Description {
	coin := "Ethereum"

	if len(p) != 4 && len(p) != 5 {
		return unknownPath(coin, p, "")
	}
	if p[0] != Hardened(44) || p[1] != Hardened(60) || !IsHardened(p[2]) {
		return unknownPath(coin, p, "")
	}

	var accountIdx uint32
	switch len(p) {
	case 5:
		if p[3] != 0 || p[4] != 0 {
			return unknownPath(coin, p, "")
		}
		accountIdx = Unharden(p[2])
	case 4:
		if p[2] != Hardened(0) || IsHardened(p[3]) {
			return unknownPath(coin, p, "")
		}
		accountIdx = p[3]
	}

	return Description{
		Verbose:      fmt.Sprintf("Ethereum Account #%d", accountIdx),
		Coin:         coin,
		IsKnown:      true,
		WholeAccount: true,
		AccountIdx:   accountIdx,
		IsPrefork:    false,
	}
}

// DescribeUTXOPath classifies a BIP-44/49/84 style derivation path for a
// UTXO coin. A whole-account path has three hardened components; a full
// address path additionally carries an unhardened change (0 or 1) and
// address index. The purpose code must agree with the script type.
func DescribeUTXOPath(coin string, p Path, script ScriptType) Description {
	slip44, ok := SLIP44(coin)
	if !ok {
		return unknownPath(coin, p, script)
	}
	if len(p) != 3 && len(p) != 5 {
		return unknownPath(coin, p, script)
	}
	purpose, ok := script.Purpose()
	if !ok || p[0] != Hardened(purpose) {
		return unknownPath(coin, p, script)
	}

	// Pre-fork coins share Bitcoin's coin type for balances that predate
	// the chain split.
	isPrefork := false
	switch {
	case p[1] == Hardened(slip44):
	case coin == "BitcoinCash" && p[1] == Hardened(0):
		isPrefork = true
	default:
		return unknownPath(coin, p, script)
	}

	if !IsHardened(p[2]) {
		return unknownPath(coin, p, script)
	}
	accountIdx := Unharden(p[2])

	if len(p) == 3 {
		return Description{
			Verbose:      fmt.Sprintf("%s Account #%d", coin, accountIdx),
			Coin:         coin,
			IsKnown:      true,
			WholeAccount: true,
			AccountIdx:   accountIdx,
			IsPrefork:    isPrefork,
			ScriptType:   script,
		}
	}

	if p[3] != 0 && p[3] != 1 {
		return unknownPath(coin, p, script)
	}
	if IsHardened(p[4]) {
		return unknownPath(coin, p, script)
	}

	verbose := fmt.Sprintf("%s Account #%d, Address #%d", coin, accountIdx, p[4])
	if p[3] == 1 {
		verbose = fmt.Sprintf("%s Account #%d, Change Address #%d", coin, accountIdx, p[4])
	}

	return Description{
		Verbose:      verbose,
		Coin:         coin,
		IsKnown:      true,
		WholeAccount: false,
		AccountIdx:   accountIdx,
		IsPrefork:    isPrefork,
		ScriptType:   script,
	}
}
