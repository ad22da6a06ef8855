package crypto

import "testing"

func TestTokenIssuerIssueAndValidate(t *testing.T) {
	issuer, err := NewTokenIssuer()
	if err != nil {
		t.Fatalf("NewTokenIssuer() error = %v", err)
	}

	token, err := issuer.Issue()
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if err := issuer.Validate(token); err != nil {
		t.Errorf("Validate() of freshly issued token = %v, want nil", err)
	}
}

func TestTokenIssuerRejectsForeignSecret(t *testing.T) {
	a, _ := NewTokenIssuer()
	b, _ := NewTokenIssuer()

	token, _ := a.Issue()
	if err := b.Validate(token); err == nil {
		t.Error("Validate() accepted a token signed by a different issuer's secret")
	}
}

func TestTokenIssuerRejectsGarbage(t *testing.T) {
	issuer, _ := NewTokenIssuer()
	if err := issuer.Validate("not.a.jwt"); err == nil {
		t.Error("Validate() accepted a malformed token string")
	}
}
