package crypto

import "testing"

func TestDigestDeterministic(t *testing.T) {
	data := []byte("network config bytes")
	if Digest(data) != Digest(data) {
		t.Error("Digest() is not deterministic for identical input")
	}
}

func TestDigestDistinguishesInput(t *testing.T) {
	if Digest([]byte("a")) == Digest([]byte("b")) {
		t.Error("Digest() produced the same value for different inputs")
	}
}
