package commands

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"college/backend/internal/repository/postgres/user"
)

func writeTestKey(t *testing.T) string {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generating rsa key: %v", err)
	}

	block := &pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	}

	path := filepath.Join(t.TempDir(), "private.pem")
	if err := os.WriteFile(path, pem.EncodeToMemory(block), 0o600); err != nil {
		t.Fatalf("writing key file: %v", err)
	}

	return path
}

func TestGenTokenRoundtrip(t *testing.T) {
	keyFile := writeTestKey(t)

	accessToken, refreshToken, err := GenToken(user.AuthClaims{ID: 42, Role: "TEACHER"}, keyFile)
	if err != nil {
		t.Fatalf("generating tokens: %v", err)
	}
	if accessToken == "" || refreshToken == "" {
		t.Fatal("expected non-empty token pair")
	}

	accessClaims, refreshClaims, err := VerifyTokens(accessToken, refreshToken, keyFile)
	if err != nil {
		t.Fatalf("verifying tokens: %v", err)
	}

	if accessClaims.UserId != 42 || accessClaims.Role != "TEACHER" {
		t.Errorf("unexpected access claims: %+v", accessClaims)
	}
	if refreshClaims.UserId != 42 || refreshClaims.Role != "TEACHER" {
		t.Errorf("unexpected refresh claims: %+v", refreshClaims)
	}
}

func TestVerifyTokensRejectsMismatchedPair(t *testing.T) {
	keyFile := writeTestKey(t)

	access1, _, err := GenToken(user.AuthClaims{ID: 1, Role: "STUDENT"}, keyFile)
	if err != nil {
		t.Fatalf("generating tokens: %v", err)
	}
	_, refresh2, err := GenToken(user.AuthClaims{ID: 2, Role: "STUDENT"}, keyFile)
	if err != nil {
		t.Fatalf("generating tokens: %v", err)
	}

	if _, _, err := VerifyTokens(access1, refresh2, keyFile); err == nil {
		t.Fatal("expected token pair mismatch error")
	}
}

func TestVerifyTokensRejectsWrongKey(t *testing.T) {
	keyFile := writeTestKey(t)
	otherKeyFile := writeTestKey(t)

	access, refresh, err := GenToken(user.AuthClaims{ID: 7, Role: "ADMIN"}, keyFile)
	if err != nil {
		t.Fatalf("generating tokens: %v", err)
	}

	if _, _, err := VerifyTokens(access, refresh, otherKeyFile); err == nil {
		t.Fatal("expected verification to fail with a different key")
	}
}
