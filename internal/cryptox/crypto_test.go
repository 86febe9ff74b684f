package cryptox

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	password := []byte("secret-password")
	salt := []byte("fixed-salt")

	key1 := DeriveKey(password, salt)
	key2 := DeriveKey(password, salt)

	if !bytes.Equal(key1, key2) {
		t.Errorf("expected same result for same inputs, got different")
	}

	// snapshot of argon2id(t=1, m=64MiB, p=4, len=32)
	expectedHex := "34f7a1c64df63ab1ad5b5ee06e64db5713b35f81839823304db63e8e5e6a6a39"
	if hex.EncodeToString(key1) != expectedHex {
		t.Errorf("expected %s, got %s", expectedHex, hex.EncodeToString(key1))
	}
}

func TestDeriveKey_DifferentSalts(t *testing.T) {
	password := []byte("secret-password")

	key1 := DeriveKey(password, []byte("salt-1"))
	key2 := DeriveKey(password, []byte("salt-2"))

	if bytes.Equal(key1, key2) {
		t.Errorf("expected different results for different salts, got same")
	}
}

func TestMakeVerifier_NotEqualToKey(t *testing.T) {
	key := DeriveKey([]byte("pw"), []byte("salt"))
	v := MakeVerifier(key)

	if bytes.Equal(key, v) {
		t.Errorf("verifier must differ from the key")
	}
	if len(v) != 32 {
		t.Errorf("expected 32-byte verifier, got %d", len(v))
	}
}
