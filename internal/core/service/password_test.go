package service

import "testing"

func TestNewPasswordHasher(t *testing.T) {
	cases := []struct {
		scheme  string
		want    string
		wantErr bool
	}{
		{"", "plain", false},
		{"plain", "plain", false},
		{" BCRYPT ", "bcrypt", false},
		{"argon2", "", true},
	}

	for _, tc := range cases {
		h, err := NewPasswordHasher(tc.scheme)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("scheme %q: expected error", tc.scheme)
			}
			continue
		}
		if err != nil {
			t.Fatalf("scheme %q: %v", tc.scheme, err)
		}
		switch h.(type) {
		case PlainHasher:
			if tc.want != "plain" {
				t.Fatalf("scheme %q: got plain hasher", tc.scheme)
			}
		case BcryptHasher:
			if tc.want != "bcrypt" {
				t.Fatalf("scheme %q: got bcrypt hasher", tc.scheme)
			}
		default:
			t.Fatalf("scheme %q: unexpected hasher %T", tc.scheme, h)
		}
	}
}

func TestPlainHasher(t *testing.T) {
	var h PlainHasher
	stored, _ := h.Hash("p")
	if stored != "p" {
		t.Fatalf("plain hash = %q", stored)
	}
	if !h.Matches(stored, "p") || h.Matches(stored, "P") {
		t.Fatal("plain comparison must be exact")
	}
}

func TestBcryptHasher(t *testing.T) {
	h := BcryptHasher{Cost: 4}
	stored, err := h.Hash("p")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if !h.Matches(stored, "p") {
		t.Fatal("expected match")
	}
	if h.Matches(stored, "q") || h.Matches("p", "p") {
		t.Fatal("unexpected match")
	}
}
