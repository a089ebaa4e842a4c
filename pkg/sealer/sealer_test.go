package sealer

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"testing"
)

func newTestKey(t *testing.T) string {
	t.Helper()
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	return base64.StdEncoding.EncodeToString(key)
}

func TestSealOpenRoundTrip(t *testing.T) {
	s, err := New(newTestKey(t))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	token, err := s.Seal("session-abc-123")
	if err != nil {
		t.Fatalf("Seal() failed: %v", err)
	}

	got, err := s.Open(token)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if got != "session-abc-123" {
		t.Errorf("Open() = %q, want %q", got, "session-abc-123")
	}
}

func TestSealProducesDistinctTokens(t *testing.T) {
	s, err := New(newTestKey(t))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	a, _ := s.Seal("same-session")
	b, _ := s.Seal("same-session")
	if a == b {
		t.Error("two seals of the same plaintext produced identical tokens")
	}
}

func TestOpenRejectsTamperedToken(t *testing.T) {
	s, err := New(newTestKey(t))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	token, _ := s.Seal("session-abc-123")
	tampered := "A" + token[1:]

	if _, err := s.Open(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Open(tampered) error = %v, want ErrInvalidToken", err)
	}
}

func TestOpenRejectsForeignKey(t *testing.T) {
	a, _ := New(newTestKey(t))
	b, _ := New(newTestKey(t))

	token, _ := a.Seal("session-abc-123")
	if _, err := b.Open(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Open() with wrong key error = %v, want ErrInvalidToken", err)
	}
}

func TestOpenRejectsGarbage(t *testing.T) {
	s, err := New(newTestKey(t))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	for _, token := range []string{"", "not-base64!!!", "c2hvcnQ"} {
		if _, err := s.Open(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Open(%q) error = %v, want ErrInvalidToken", token, err)
		}
	}
}

func TestNewRejectsBadKey(t *testing.T) {
	if _, err := New("tooshort"); err == nil {
		t.Error("New() accepted an invalid key")
	}
}
