package ledger

import (
	"github.com/Ethenwilde/hdwallet/path"
)

// scriptTypesForCoin lists the script types the device application for a
// coin can produce addresses for. Segwit-capable coins get all three
// purposes; the rest are legacy only.
func scriptTypesForCoin(coin string) []path.ScriptType {
	switch coin {
	case "Bitcoin", "Testnet", "Litecoin", "DigiByte":
		return []path.ScriptType{path.ScriptTypeP2PKH, path.ScriptTypeP2SHP2WPKH, path.ScriptTypeP2WPKH}
	case "Dogecoin", "Dash", "BitcoinCash":
		return []path.ScriptType{path.ScriptTypeP2PKH}
	default:
		return nil
	}
}

// Info answers the stateless capability and path queries. It never
// touches the transport and is safe for concurrent use.
type Info struct {
	describer path.Describer
}

// NewInfo creates the stateless query surface. A nil describer falls
// back to the stock BIP-44/49/84 classifier for non-Ethereum coins.
func NewInfo(describer path.Describer) *Info {
	if describer == nil {
		describer = path.DescribeUTXOPath
	}
	return &Info{describer: describer}
}

// VendorName returns the device vendor.
func (i *Info) VendorName() string {
	return Vendor
}

// Capabilities returns the coin families this adapter serves.
func (i *Info) Capabilities() []CoinFamily {
	return []CoinFamily{CoinFamilyUTXO, CoinFamilyEVM}
}

// DescribePath classifies a derivation path for the given coin. Ethereum
// has a device-specific rule; everything else goes to the generic
// describer. An unrecognized path is a valid IsKnown false result, not
// an error.
func (i *Info) DescribePath(coin string, p path.Path, script path.ScriptType) path.Description {
	if coin == coinEthereum {
		return path.DescribeETHPath(p)
	}
	return i.describer(coin, p, script)
}

// BTCGetAccountPaths returns the account-level derivation suggestions
// for a UTXO coin, one per supported script type.
func (i *Info) BTCGetAccountPaths(coin string, accountIdx uint32) []path.BTCAccountPath {
	slip44, ok := path.SLIP44(coin)
	if !ok || !i.BTCSupportsCoin(coin) {
		return nil
	}

	scriptTypes := scriptTypesForCoin(coin)
	paths := make([]path.BTCAccountPath, 0, len(scriptTypes))
	for _, script := range scriptTypes {
		purpose, ok := script.Purpose()
		if !ok {
			continue
		}
		paths = append(paths, path.BTCAccountPath{
			AddressNList: path.Path{path.Hardened(purpose), path.Hardened(slip44), path.Hardened(accountIdx)},
			Coin:         coin,
			ScriptType:   script,
		})
	}
	return paths
}

// ETHGetAccountPaths returns the Ethereum derivation suggestions for an
// account index: the Ledger Live shape and the legacy shape older
// derivations used.
func (i *Info) ETHGetAccountPaths(accountIdx uint32) []path.ETHAccountPath {
	return []path.ETHAccountPath{
		{
			HardenedPath: path.Path{path.Hardened(44), path.Hardened(60), path.Hardened(accountIdx)},
			RelPath:      path.Path{0, 0},
			Description:  "BIP 44: Ledger Live",
		},
		{
			HardenedPath: path.Path{path.Hardened(44), path.Hardened(60), path.Hardened(0)},
			RelPath:      path.Path{accountIdx},
			Description:  "Ledger (legacy)",
		},
	}
}

// BTCNextAccountPath computes the next sibling account path for
// enumeration UIs.
func (i *Info) BTCNextAccountPath(account path.BTCAccountPath) (path.BTCAccountPath, bool) {
	return path.NextBTCAccountPath(account)
}

// ETHNextAccountPath computes the next sibling Ethereum account path.
func (i *Info) ETHNextAccountPath(account path.ETHAccountPath) (path.ETHAccountPath, bool) {
	return path.NextETHAccountPath(account)
}

// BTCSupportsCoin reports whether the device has an application for the
// UTXO coin.
func (i *Info) BTCSupportsCoin(coin string) bool {
	if coin == coinEthereum {
		return false
	}
	_, ok := appForCoin[coin]
	return ok
}

// BTCSupportsScriptType reports whether the coin's application can
// produce addresses of the given script type.
func (i *Info) BTCSupportsScriptType(coin string, script path.ScriptType) bool {
	for _, supported := range scriptTypesForCoin(coin) {
		if supported == script {
			return true
		}
	}
	return false
}

// ETHSupportsNetwork reports whether the Ethereum application serves the
// given chain ID.
func (i *Info) ETHSupportsNetwork(chainID int64) bool {
	return chainID == 1
}

// ETHSupportsSecureTransfer answers a capability probe the device
// exposes no introspection for; the answer is fixed.
func (i *Info) ETHSupportsSecureTransfer() bool {
	return false
}
