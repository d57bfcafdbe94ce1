package path

// BTCAccountPath identifies a UTXO account-level derivation: the path,
// the coin it belongs to and the script type its purpose code implies.
type BTCAccountPath struct {
	AddressNList Path
	Coin         string
	ScriptType   ScriptType
}

// ETHAccountPath identifies an Ethereum account-level derivation, split
// into the hardened prefix and the unhardened suffix. Only the hardened
// prefix participates in on-device confirmation prompts, so the split is
// preserved rather than recomputed by consumers.
type ETHAccountPath struct {
	HardenedPath Path
	RelPath      Path
	Description  string
}

// AddressNList returns the full derivation path, hardened prefix followed
// by the relative suffix.
func (a ETHAccountPath) AddressNList() Path {
	full := make(Path, 0, len(a.HardenedPath)+len(a.RelPath))
	full = append(full, a.HardenedPath...)
	full = append(full, a.RelPath...)
	return full
}

// splitETHPath recomputes the hardened/relative split of a full path:
// the leading run of hardened components forms the prefix.
func splitETHPath(full Path) (hardened, rel Path) {
	split := 0
	for split < len(full) && IsHardened(full[split]) {
		split++
	}
	return full[:split].Clone(), full[split:].Clone()
}

// NextBTCAccountPath computes the next sibling account path for account
// enumeration. The input is classified first; unrecognized paths and
// purpose codes outside BIP-44/49/84 yield no successor. The result is a
// fresh value with the hardened account index advanced by one; the input
// is never modified.
func NextBTCAccountPath(a BTCAccountPath) (BTCAccountPath, bool) {
	description := DescribeUTXOPath(a.Coin, a.AddressNList, a.ScriptType)
	if !description.IsKnown {
		return BTCAccountPath{}, false
	}

	switch a.AddressNList[0] {
	case Hardened(44), Hardened(49), Hardened(84):
	default:
		return BTCAccountPath{}, false
	}

	next := a.AddressNList.Clone()
	next[2]++

	return BTCAccountPath{
		AddressNList: next,
		Coin:         a.Coin,
		ScriptType:   a.ScriptType,
	}, true
}

// NextETHAccountPath computes the next sibling account path for an
// Ethereum account. The concatenated path is classified first; whole
// accounts advance the hardened account index, the legacy four component
// shape advances the relative address index instead. The split is
// recomputed from the advanced path.
func NextETHAccountPath(a ETHAccountPath) (ETHAccountPath, bool) {
	full := a.AddressNList()

	description := DescribeETHPath(full)
	if !description.IsKnown {
		return ETHAccountPath{}, false
	}

	next := full.Clone()
	switch {
	case description.WholeAccount:
		next[2]++
	case len(next) == 5:
		// Unreachable while DescribeETHPath reports every known shape as
		// a whole account, but kept distinct to mirror the reference
		// application's classification quirk.
		next[2]++
	case len(next) == 4:
		next[3]++
	default:
		return ETHAccountPath{}, false
	}

	hardened, rel := splitETHPath(next)
	return ETHAccountPath{
		HardenedPath: hardened,
		RelPath:      rel,
		Description:  a.Description,
	}, true
}
