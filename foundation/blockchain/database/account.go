package database

import (
	"errors"

	"github.com/ethereum/go-ethereum/crypto"
)

// Address represents a wallet address. It uses the same hex format as an
// Ethereum account.
type Address string

// ToAddress converts a hex-encoded string to an address and validates the
// hex-encoded string is formatted correctly.
func ToAddress(hex string) (Address, error) {
	a := Address(hex)
	if !a.IsAddress() {
		return "", errors.New("invalid address format")
	}

	return a, nil
}

// NewAddress generates a new random address. The address is derived from a
// freshly generated secp256k1 key. The key is not retained since the ledger
// does not sign transactions.
func NewAddress() (Address, error) {
	privateKey, err := crypto.GenerateKey()
	if err != nil {
		return "", err
	}

	return Address(crypto.PubkeyToAddress(privateKey.PublicKey).String()), nil
}

// IsAddress verifies whether the underlying data represents a valid
// hex-encoded address.
func (a Address) IsAddress() bool {
	const addressLength = 20

	if has0xPrefix(a) {
		a = a[2:]
	}

	return len(a) == 2*addressLength && isHex(a)
}

// =============================================================================

// has0xPrefix validates the address starts with a 0x.
func has0xPrefix(a Address) bool {
	return len(a) >= 2 && a[0] == '0' && (a[1] == 'x' || a[1] == 'X')
}

// isHex validates whether each byte is valid hexadecimal string.
func isHex(a Address) bool {
	if len(a)%2 != 0 {
		return false
	}

	for _, c := range []byte(a) {
		if !isHexCharacter(c) {
			return false
		}
	}

	return true
}

// isHexCharacter returns bool of c being a valid hexadecimal.
func isHexCharacter(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
