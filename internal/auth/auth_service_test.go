package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate rsa key: %v", err)
	}

	privatePEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	publicDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatalf("marshal public key: %v", err)
	}
	publicPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: publicDER,
	})

	service, err := NewAuthService(privatePEM, publicPEM, 15*time.Minute, 720*time.Hour)
	if err != nil {
		t.Fatalf("new auth service: %v", err)
	}
	return service
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	service := newTestAuthService(t)

	pair, err := service.GenerateTokenPair(42, true)
	if err != nil {
		t.Fatalf("generate token pair: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("expected both tokens to be non-empty")
	}

	access, err := service.ValidateToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("validate access token: %v", err)
	}
	if access.UserID != 42 || !access.IsAdmin || access.TokenType != "access" {
		t.Fatalf("unexpected access claims: %+v", access)
	}

	refresh, err := service.ValidateToken(pair.RefreshToken)
	if err != nil {
		t.Fatalf("validate refresh token: %v", err)
	}
	if refresh.TokenType != "refresh" {
		t.Fatalf("unexpected refresh token type: %q", refresh.TokenType)
	}
	if refresh.ID == "" {
		t.Fatal("expected refresh token to carry a jti")
	}
}

func TestValidateToken_RejectsTampered(t *testing.T) {
	service := newTestAuthService(t)

	pair, err := service.GenerateTokenPair(42, false)
	if err != nil {
		t.Fatalf("generate token pair: %v", err)
	}

	tampered := pair.AccessToken[:len(pair.AccessToken)-2] + "xx"
	if _, err := service.ValidateToken(tampered); err == nil {
		t.Fatal("expected tampered token to be rejected")
	}
}

func TestValidateToken_RejectsForeignKey(t *testing.T) {
	issuer := newTestAuthService(t)
	verifier := newTestAuthService(t)

	pair, err := issuer.GenerateTokenPair(42, false)
	if err != nil {
		t.Fatalf("generate token pair: %v", err)
	}
	if _, err := verifier.ValidateToken(pair.AccessToken); err == nil {
		t.Fatal("expected token signed by another key to be rejected")
	}
}

func TestValidateToken_Empty(t *testing.T) {
	service := newTestAuthService(t)
	if _, err := service.ValidateToken(""); err == nil {
		t.Fatal("expected empty token to be rejected")
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if !CheckPasswordHash("s3cret-pass", hash) {
		t.Fatal("expected matching password to verify")
	}
	if CheckPasswordHash("wrong-pass", hash) {
		t.Fatal("expected wrong password to fail")
	}
}
