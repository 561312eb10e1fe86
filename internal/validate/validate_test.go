package validate

import (
	"errors"
	"testing"
	"time"
)

func TestPhone(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "Bare10Digits", raw: "0501234567", want: "0501234567"},
		{name: "PlusPrefix", raw: "+0501234567", want: "0501234567"},
		{name: "SurroundingSpace", raw: " 0501234567 ", want: "0501234567"},
		{name: "TooShort", raw: "12345", wantErr: true},
		{name: "TooLong", raw: "05012345678", wantErr: true},
		{name: "Letters", raw: "12a34bc890", wantErr: true},
		{name: "InnerPlus", raw: "050+123456", wantErr: true},
		{name: "Empty", raw: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Phone(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Phone(%q) = %q, want error", tt.raw, got)
				}
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Errorf("Phone(%q) error type = %T, want *ValidationError", tt.raw, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Phone(%q) unexpected error: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("Phone(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestPhoneIdempotent(t *testing.T) {
	for _, raw := range []string{"0501234567", "+0501234567"} {
		once, err := Phone(raw)
		if err != nil {
			t.Fatalf("Phone(%q) failed: %v", raw, err)
		}
		twice, err := Phone(once)
		if err != nil {
			t.Fatalf("Phone(Phone(%q)) failed: %v", raw, err)
		}
		if once != twice {
			t.Errorf("Phone not idempotent for %q: %q vs %q", raw, once, twice)
		}
	}
}

func TestValidationErrorSentinel(t *testing.T) {
	_, err := Phone("bad")
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Phone error does not match ErrValidation: %v", err)
	}
	_, err = Date("bad")
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Date error does not match ErrValidation: %v", err)
	}
}

func TestEmail(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "Simple", raw: "ann@example.com"},
		{name: "Dotted", raw: "ann.smith@mail.example.org"},
		{name: "NoAt", raw: "ann.example.com", wantErr: true},
		{name: "NoDotInDomain", raw: "ann@localhost", wantErr: true},
		{name: "ShortTLD", raw: "ann@example.c", wantErr: true},
		{name: "Empty", raw: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Email(tt.raw)
			if tt.wantErr != (err != nil) {
				t.Fatalf("Email(%q) = %q, %v; wantErr=%v", tt.raw, got, err, tt.wantErr)
			}
			if err == nil && got != tt.raw {
				t.Errorf("Email(%q) = %q, want input back", tt.raw, got)
			}
		})
	}
}

func TestDate(t *testing.T) {
	got, err := Date("1990.05.20")
	if err != nil {
		t.Fatalf("Date failed: %v", err)
	}
	want := time.Date(1990, time.May, 20, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Date = %v, want %v", got, want)
	}

	for _, raw := range []string{"1990-05-20", "20.05.1990", "1990.02.30", "not a date", ""} {
		if _, err := Date(raw); err == nil {
			t.Errorf("Date(%q) succeeded, want error", raw)
		}
	}
}
