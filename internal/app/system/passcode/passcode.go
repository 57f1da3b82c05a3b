// internal/app/system/passcode/passcode.go

// Package passcode hashes and verifies group admin passcodes with
// bcrypt. The hash is stored on the group document; a matching passcode
// at join time is what grants the admin role.
package passcode

import "golang.org/x/crypto/bcrypt"

// Hash returns the bcrypt hash of the passcode.
func Hash(passcode string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(passcode), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether passcode matches the stored hash. An empty
// hash (group created without a passcode) never matches.
func Verify(hash, passcode string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(passcode)) == nil
}
