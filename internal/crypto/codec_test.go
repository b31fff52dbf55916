package crypto

import (
	"regexp"
	"strings"
	"testing"
)

func TestKeyHexLength(t *testing.T) {
	for _, passphrase := range []string{"a", "mysecretkey", "exactly-thirty-two-characters!!!", strings.Repeat("x", 100)} {
		got := KeyHex(passphrase)
		if len(got) != 64 {
			t.Errorf("KeyHex(%q) length = %d, want 64", passphrase, len(got))
		}
	}
}

func TestKeyHexDeterministic(t *testing.T) {
	if KeyHex("mysecretkey") != KeyHex("mysecretkey") {
		t.Fatal("KeyHex is not deterministic")
	}
	if KeyHex("key-a") == KeyHex("key-b") {
		t.Fatal("distinct passphrases derived the same key")
	}
}

func TestEncryptEnvelopeShape(t *testing.T) {
	envelope, err := Encrypt(map[string]string{"key": "value"}, "mysecretkey")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	shape := regexp.MustCompile(`^[0-9a-f]{24}:[0-9a-f]{32}:[0-9a-f]+$`)
	if !shape.MatchString(envelope) {
		t.Fatalf("envelope %q does not match iv:tag:cipher hex shape", envelope)
	}
}

func TestEncryptFreshIV(t *testing.T) {
	a, err := Encrypt("same payload", "mysecretkey")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	b, err := Encrypt("same payload", "mysecretkey")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	if strings.SplitN(a, ":", 2)[0] == strings.SplitN(b, ":", 2)[0] {
		t.Fatal("IV was reused across encryption calls")
	}
}

func TestRoundTrip(t *testing.T) {
	original := map[string]string{"key": "value"}

	envelope, err := Encrypt(original, "mysecretkey")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	var got map[string]string
	if err := Decrypt(envelope, "mysecretkey", &got); err != nil {
		t.Fatalf("Decrypt error: %v", err)
	}
	if got["key"] != "value" {
		t.Fatalf("round trip mismatch: got %v", got)
	}
}

func TestDecryptWrongKey(t *testing.T) {
	envelope, err := Encrypt(map[string]string{"key": "value"}, "key-one")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	var got map[string]string
	if err := Decrypt(envelope, "key-two", &got); err != ErrDecryptFailed {
		t.Fatalf("Decrypt with wrong key: got %v, want ErrDecryptFailed", err)
	}
}

func TestDecryptEmptyInput(t *testing.T) {
	var got map[string]string
	if err := Decrypt("", "mysecretkey", &got); err != ErrDecryptFailed {
		t.Fatalf("Decrypt(\"\") = %v, want ErrDecryptFailed", err)
	}
}

func TestDecryptMalformed(t *testing.T) {
	cases := []string{
		"not-an-envelope",
		"aaaa:bbbb",
		"zz:zz:zz",
		"00112233445566778899aabb:00112233445566778899aabbccddeeff:nothex",
	}

	var got map[string]string
	for _, envelope := range cases {
		if err := Decrypt(envelope, "mysecretkey", &got); err != ErrDecryptFailed {
			t.Errorf("Decrypt(%q) = %v, want ErrDecryptFailed", envelope, err)
		}
	}
}

func TestDecryptTamperedTag(t *testing.T) {
	envelope, err := Encrypt(map[string]string{"key": "value"}, "mysecretkey")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	parts := strings.Split(envelope, ":")
	flipped := "00"
	if parts[1][:2] == "00" {
		flipped = "11"
	}
	parts[1] = flipped + parts[1][2:]

	var got map[string]string
	if err := Decrypt(strings.Join(parts, ":"), "mysecretkey", &got); err != ErrDecryptFailed {
		t.Fatalf("Decrypt with tampered tag: got %v, want ErrDecryptFailed", err)
	}
}
