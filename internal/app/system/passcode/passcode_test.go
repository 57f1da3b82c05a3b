package passcode_test

import (
	"testing"

	"github.com/avelichko/groupmap/internal/app/system/passcode"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := passcode.Hash("open sesame")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if hash == "open sesame" {
		t.Error("hash must not equal the plaintext")
	}

	if !passcode.Verify(hash, "open sesame") {
		t.Error("expected matching passcode to verify")
	}
	if passcode.Verify(hash, "wrong") {
		t.Error("expected wrong passcode to fail")
	}
}

func TestVerify_EmptyHash(t *testing.T) {
	// A group created without a passcode stores no hash; nothing may
	// verify against it, not even the empty string.
	if passcode.Verify("", "") {
		t.Error("empty hash must never verify")
	}
	if passcode.Verify("", "anything") {
		t.Error("empty hash must never verify")
	}
}
