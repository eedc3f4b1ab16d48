package services

import (
	"errors"
	"testing"
)

func TestNormalizeAuthEmail(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "lowercases and trims", raw: "  Parent@Example.COM ", want: "parent@example.com"},
		{name: "rejects invalid address", raw: "not-an-email", want: ""},
		{name: "rejects empty", raw: "   ", want: ""},
		{name: "keeps plus addressing", raw: "parent+nido@example.com", want: "parent+nido@example.com"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := NormalizeAuthEmail(test.raw); got != test.want {
				t.Fatalf("NormalizeAuthEmail(%q) = %q, want %q", test.raw, got, test.want)
			}
		})
	}
}

func TestNormalizeCredentialsInput(t *testing.T) {
	email, password, err := NormalizeCredentialsInput(" Parent@Example.com ", " Str0ngPass ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if email != "parent@example.com" {
		t.Fatalf("email = %q", email)
	}
	if password != "Str0ngPass" {
		t.Fatalf("password = %q", password)
	}

	if _, _, err := NormalizeCredentialsInput("bad", "Str0ngPass"); !errors.Is(err, ErrAuthCredentialsInvalid) {
		t.Fatalf("expected ErrAuthCredentialsInvalid, got %v", err)
	}
	if _, _, err := NormalizeCredentialsInput("parent@example.com", "  "); !errors.Is(err, ErrAuthCredentialsInvalid) {
		t.Fatalf("expected ErrAuthCredentialsInvalid for empty password, got %v", err)
	}
}

func TestValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "too short", password: "Ab1", wantErr: true},
		{name: "no digit", password: "Abcdefgh", wantErr: true},
		{name: "no upper", password: "abcdefg1", wantErr: true},
		{name: "no lower", password: "ABCDEFG1", wantErr: true},
		{name: "valid", password: "Abcdefg1", wantErr: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := ValidatePasswordStrength(test.password)
			if test.wantErr && !errors.Is(err, ErrWeakPassword) {
				t.Fatalf("expected ErrWeakPassword, got %v", err)
			}
			if !test.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
