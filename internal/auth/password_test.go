package auth

import (
	"errors"
	"strings"
	"testing"
)

// fastParams keeps the test suite quick; production uses DefaultParams.
var fastParams = Params{Time: 1, Memory: 8 * 1024, Threads: 1, KeyLen: 32, SaltLen: 16}

func TestHashPassword_Format(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	parts := strings.Split(hash, "$")
	if len(parts) != 6 {
		t.Fatalf("Hash should have 6 parts, got: %d", len(parts))
	}
	if parts[1] != "argon2id" {
		t.Errorf("Expected argon2id algorithm, got: %s", parts[1])
	}
	if parts[2] != "v=19" {
		t.Errorf("Expected v=19, got: %s", parts[2])
	}
	if parts[3] != "m=65536,t=3,p=4" {
		t.Errorf("Expected m=65536,t=3,p=4, got: %s", parts[3])
	}
}

func TestHashPassword_Uniqueness(t *testing.T) {
	t.Parallel()

	hash1, err := HashPasswordWithParams("the_same_password", fastParams)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	hash2, err := HashPasswordWithParams("the_same_password", fastParams)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if hash1 == hash2 {
		t.Error("Same password should produce different hashes (random salt)")
	}
}

func TestHashPassword_TooShort(t *testing.T) {
	t.Parallel()

	for _, pw := range []string{"", "short", "1234567"} {
		if _, err := HashPasswordWithParams(pw, fastParams); !errors.Is(err, ErrPasswordTooShort) {
			t.Errorf("HashPassword(%q): expected ErrPasswordTooShort, got %v", pw, err)
		}
	}
}

func TestVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPasswordWithParams("s3cret-passphrase", fastParams)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"correct", "s3cret-passphrase", true},
		{"wrong", "s3cret-passphrasf", false},
		{"empty", "", false},
		{"prefix", "s3cret", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := VerifyPassword(tt.password, hash)
			if err != nil {
				t.Fatalf("VerifyPassword failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("VerifyPassword(%q) = %v, want %v", tt.password, got, tt.want)
			}
		})
	}
}

func TestVerifyPassword_InvalidHashFormat(t *testing.T) {
	t.Parallel()

	invalid := []string{
		"",
		"not-a-hash",
		"$argon2i$v=19$m=65536,t=3,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=3$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=3,p=4$!!!$aGFzaA",
		"$argon2id$v=19$m=65536,t=3,p=4$c2FsdA$",
	}

	for _, h := range invalid {
		if _, err := VerifyPassword("password", h); !errors.Is(err, ErrInvalidHash) {
			t.Errorf("VerifyPassword(%q): expected ErrInvalidHash, got %v", h, err)
		}
	}
}

func TestVerifyPassword_WrongVersion(t *testing.T) {
	t.Parallel()

	_, err := VerifyPassword("password", "$argon2id$v=16$m=65536,t=3,p=4$c2FsdA$aGFzaA")
	if !errors.Is(err, ErrIncompatibleVersion) {
		t.Errorf("Expected ErrIncompatibleVersion, got: %v", err)
	}
}

func TestNeedsRehash(t *testing.T) {
	t.Parallel()

	hash, err := HashPasswordWithParams("rehash-me-please", fastParams)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	same, err := NeedsRehash(hash, fastParams)
	if err != nil {
		t.Fatalf("NeedsRehash failed: %v", err)
	}
	if same {
		t.Error("hash made with the same params should not need a rehash")
	}

	stale, err := NeedsRehash(hash, DefaultParams)
	if err != nil {
		t.Fatalf("NeedsRehash failed: %v", err)
	}
	if !stale {
		t.Error("hash made with weaker params should need a rehash")
	}
}
