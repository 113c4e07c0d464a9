package security

import (
	"strings"
	"testing"

	"github.com/flagsapp/flags-backend/pkg/config"
)

func testHasher() *Hasher {
	// Cheap parameters keep the test fast.
	return NewHasher(config.PasswordConfig{
		ArgonMemoryKB:    8 * 1024,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	})
}

func TestHashAndVerify(t *testing.T) {
	h := testHasher()

	encoded, err := h.Hash("red flag green flag")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if !strings.HasPrefix(encoded, "$argon2id$v=") {
		t.Fatalf("unexpected encoding %q", encoded)
	}

	ok, err := h.Verify("red flag green flag", encoded)
	if err != nil || !ok {
		t.Fatalf("Verify(correct) = %v, %v", ok, err)
	}

	ok, err = h.Verify("wrong password", encoded)
	if err != nil {
		t.Fatalf("Verify(wrong): %v", err)
	}
	if ok {
		t.Fatal("wrong password verified")
	}
}

func TestHashesAreSalted(t *testing.T) {
	h := testHasher()

	a, err := h.Hash("same input")
	if err != nil {
		t.Fatal(err)
	}
	b, err := h.Hash("same input")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatal("two hashes of the same password are identical")
	}
}

func TestVerifyRejectsMalformedHash(t *testing.T) {
	h := testHasher()

	for _, encoded := range []string{
		"",
		"plaintext",
		"$argon2i$v=19$m=8,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=8$c2FsdA$a2V5",
	} {
		if _, err := h.Verify("pw", encoded); err == nil {
			t.Fatalf("expected error for %q", encoded)
		}
	}
}
