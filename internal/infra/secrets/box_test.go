package secrets

import (
	"crypto/rand"
	"encoding/base64"
	"strings"
	"testing"
)

func testBox(t *testing.T) *Box {
	t.Helper()
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		t.Fatalf("random key: %v", err)
	}
	box, err := NewBox(base64.StdEncoding.EncodeToString(key))
	if err != nil {
		t.Fatalf("NewBox: %v", err)
	}
	return box
}

func TestBoxRoundTrip(t *testing.T) {
	box := testBox(t)

	sealed, err := box.Encrypt("smtp-password")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if strings.Contains(sealed, "smtp-password") {
		t.Fatal("ciphertext leaks plaintext")
	}
	opened, err := box.Decrypt(sealed)
	if err != nil || opened != "smtp-password" {
		t.Fatalf("Decrypt = %q, %v", opened, err)
	}

	// Fresh nonce every call.
	again, err := box.Encrypt("smtp-password")
	if err != nil {
		t.Fatalf("Encrypt again: %v", err)
	}
	if again == sealed {
		t.Fatal("repeated encryption produced identical ciphertext")
	}
}

func TestBoxEmptyValues(t *testing.T) {
	box := testBox(t)
	sealed, err := box.Encrypt("")
	if err != nil || sealed != "" {
		t.Fatalf("Encrypt empty = %q, %v", sealed, err)
	}
	opened, err := box.Decrypt("")
	if err != nil || opened != "" {
		t.Fatalf("Decrypt empty = %q, %v", opened, err)
	}
}

func TestBoxRejectsBadInput(t *testing.T) {
	if _, err := NewBox("not-base64!!!"); err == nil {
		t.Fatal("bad key encoding accepted")
	}
	if _, err := NewBox(base64.StdEncoding.EncodeToString([]byte("short"))); err == nil {
		t.Fatal("short key accepted")
	}

	box := testBox(t)
	if _, err := box.Decrypt("AAAA"); err == nil {
		t.Fatal("truncated ciphertext accepted")
	}
	sealed, err := box.Encrypt("value")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if _, err := testBox(t).Decrypt(sealed); err == nil {
		t.Fatal("ciphertext opened under a different key")
	}
}
