package helpers

import "testing"

func TestTokenRoundTrip(t *testing.T) {
	h := NewTokenHelper("test-secret")

	token, refreshToken, err := h.GenerateAllTokens("waiter", "waiter@example.com", 7, []string{"ROLE_USER"})
	if err != nil {
		t.Fatalf("GenerateAllTokens() error = %v", err)
	}
	if token == "" || refreshToken == "" {
		t.Fatal("empty token returned")
	}

	claims, err := h.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.Username != "waiter" {
		t.Errorf("Username = %s, want waiter", claims.Username)
	}
	if claims.Uid != 7 {
		t.Errorf("Uid = %d, want 7", claims.Uid)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != "ROLE_USER" {
		t.Errorf("Roles = %v, want [ROLE_USER]", claims.Roles)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	h := NewTokenHelper("test-secret")
	token, _, err := h.GenerateAllTokens("waiter", "waiter@example.com", 7, nil)
	if err != nil {
		t.Fatalf("GenerateAllTokens() error = %v", err)
	}

	other := NewTokenHelper("another-secret")
	if _, err := other.ValidateToken(token); err == nil {
		t.Error("ValidateToken() accepted a token signed with a different secret")
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	h := NewTokenHelper("test-secret")
	if _, err := h.ValidateToken("not-a-token"); err == nil {
		t.Error("ValidateToken() accepted garbage")
	}
}
