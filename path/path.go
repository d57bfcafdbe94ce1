// Package path implements BIP-32 derivation path handling for hardware
// wallet integrations: parsing, canonical formatting, account-level
// classification and sibling-account enumeration.
package path

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// hardenedFlag is the BIP-32 hardened derivation marker (bit 31).
const hardenedFlag uint32 = 0x80000000

// Hardened returns the hardened form of a derivation index.
func Hardened(index uint32) uint32 {
	return index | hardenedFlag
}

// Unharden strips the hardened marker from a derivation index.
// All classification logic reports account indices in this form,
// never the raw hardened value.
func Unharden(index uint32) uint32 {
	return index & 0x7fffffff
}

// IsHardened reports whether a derivation index has the hardened marker set.
func IsHardened(index uint32) bool {
	return index&hardenedFlag != 0
}

// Path represents a hierarchical deterministic derivation path as its
// computer friendly sequence of 32-bit indices, root to leaf. Hardened
// components carry bit 31; all arithmetic on components is unsigned.
type Path []uint32

// Parse converts a derivation path string such as "m/44'/60'/0'/0/0" to
// its binary representation. Both the apostrophe and "h" suffixes mark
// hardened components; whitespace around components is ignored.
func Parse(s string) (Path, error) {
	components := strings.Split(strings.TrimSpace(s), "/")
	if len(components) == 0 {
		return nil, errors.New("empty derivation path")
	}
	if strings.TrimSpace(components[0]) == "m" {
		components = components[1:]
	}
	if len(components) == 0 {
		return nil, errors.New("empty derivation path")
	}

	result := make(Path, 0, len(components))
	for _, component := range components {
		component = strings.TrimSpace(component)

		var flag uint32
		if strings.HasSuffix(component, "'") || strings.HasSuffix(component, "h") {
			flag = hardenedFlag
			component = strings.TrimSpace(component[:len(component)-1])
		}

		value, err := strconv.ParseUint(component, 10, 32)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid path component %q", component)
		}
		if uint32(value) >= hardenedFlag {
			return nil, errors.Errorf("path component %d out of range", value)
		}

		result = append(result, uint32(value)|flag)
	}

	return result, nil
}

// String converts a binary derivation path to its canonical representation,
// e.g. "m/44'/60'/0'/0/0".
func (p Path) String() string {
	var sb strings.Builder
	sb.WriteString("m")
	for _, component := range p {
		sb.WriteString("/")
		sb.WriteString(strconv.FormatUint(uint64(Unharden(component)), 10))
		if IsHardened(component) {
			sb.WriteString("'")
		}
	}
	return sb.String()
}

// Clone returns an independent copy of the path. Enumeration never
// mutates its input; callers always receive a fresh value.
func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	clone := make(Path, len(p))
	copy(clone, p)
	return clone
}

// MarshalJSON serializes the path as its canonical string form.
func (p Path) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON deserializes a canonical path string.
func (p *Path) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return errors.Wrapf(err, "invalid derivation path %q", s)
	}
	*p = parsed
	return nil
}
