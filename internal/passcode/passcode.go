// Package passcode hashes and verifies the short numeric kiosk passcodes.
//
// Encodings are "salt:derivedHex" where the key is derived with scrypt.
// Records written before salted hashing was introduced are bare plaintext;
// Verify still accepts them so callers can upgrade on first successful match.
package passcode

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/crypto/scrypt"
)

const (
	saltBytes = 16
	keyLen    = 64
	separator = ":"

	// scrypt cost parameters; N is memory-hard on purpose since a passcode
	// is only four digits.
	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
)

var passcodePattern = regexp.MustCompile(`^\d{4}$`)

// ValidatePasscode reports whether p is exactly four decimal digits. Enforced
// before hashing only; Verify accepts whatever was historically stored.
func ValidatePasscode(p string) bool {
	return passcodePattern.MatchString(p)
}

// Hash derives a fresh salted encoding for the passcode. Two calls with the
// same input produce different encodings.
func Hash(p string) (string, error) {
	raw := make([]byte, saltBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	salt := hex.EncodeToString(raw)

	derived, err := scrypt.Key([]byte(p), []byte(salt), scryptN, scryptR, scryptP, keyLen)
	if err != nil {
		return "", fmt.Errorf("derive key: %w", err)
	}

	return salt + separator + hex.EncodeToString(derived), nil
}

// IsLegacy reports whether the stored encoding predates salted hashing.
func IsLegacy(encoded string) bool {
	return !strings.Contains(encoded, separator)
}

// Verify compares a passcode against a stored encoding. Legacy plaintext
// records compare directly; salted records are recomputed with the stored
// salt and compared in constant time. Malformed encodings verify false.
func Verify(p, encoded string) bool {
	if IsLegacy(encoded) {
		return subtle.ConstantTimeCompare([]byte(p), []byte(encoded)) == 1
	}

	parts := strings.SplitN(encoded, separator, 2)
	salt, digestHex := parts[0], parts[1]
	if salt == "" || digestHex == "" {
		return false
	}

	digest, err := hex.DecodeString(digestHex)
	if err != nil || len(digest) != keyLen {
		return false
	}

	derived, err := scrypt.Key([]byte(p), []byte(salt), scryptN, scryptR, scryptP, keyLen)
	if err != nil {
		return false
	}

	return subtle.ConstantTimeCompare(digest, derived) == 1
}
