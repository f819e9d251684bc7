package utils

import (
	"strings"
	"testing"
)

func TestJwtGenerateAndValidate(t *testing.T) {
	token, err := JwtGenerate(42, "owner@example.com")
	if err != nil {
		t.Fatalf("JwtGenerate error: %v", err)
	}

	claims, err := JwtValidate(token)
	if err != nil {
		t.Fatalf("JwtValidate error: %v", err)
	}
	if claims.UserId != 42 {
		t.Fatalf("expected userId 42, got %d", claims.UserId)
	}
	if claims.Email != "owner@example.com" {
		t.Fatalf("expected email owner@example.com, got %s", claims.Email)
	}
}

func TestJwtValidate_RejectsTamperedToken(t *testing.T) {
	token, err := JwtGenerate(1, "a@b.com")
	if err != nil {
		t.Fatalf("JwtGenerate error: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %s", token)
	}
	tampered := parts[0] + "." + parts[1] + ".AAAA" + parts[2][4:]

	if _, err := JwtValidate(tampered); err == nil {
		t.Fatal("expected tampered token to be rejected")
	}
}
