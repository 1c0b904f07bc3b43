package format

import (
	"testing"

	"finboard/internal/core"
)

func TestNewCurrency_Validation(t *testing.T) {
	tests := []struct {
		name    string
		locale  string
		code    string
		wantErr bool
	}{
		{"italian euro", "it", "EUR", false},
		{"us dollar", "en-US", "USD", false},
		{"bad locale", "not a locale!", "EUR", true},
		{"bad currency", "it", "EURO", true},
		{"unknown currency", "it", "ZZZ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCurrency(tt.locale, tt.code)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewCurrency(%q, %q) error = %v, wantErr %v", tt.locale, tt.code, err, tt.wantErr)
			}
		})
	}
}

func TestCurrency_Format(t *testing.T) {
	tests := []struct {
		locale string
		code   string
		cents  int64
		want   string
	}{
		{"it", "EUR", 123450, "€ 1.234,50"},
		{"it", "EUR", 5, "€ 0,05"},
		{"it", "EUR", -2500, "-€ 25,00"},
		{"en", "USD", 123450, "$ 1,234.50"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			f, err := NewCurrency(tt.locale, tt.code)
			if err != nil {
				t.Fatalf("NewCurrency: %v", err)
			}
			if got := f.Format(core.Money{Cents: tt.cents}); got != tt.want {
				t.Errorf("Format(%d) = %q, want %q", tt.cents, got, tt.want)
			}
		})
	}
}

func TestPlain_Format(t *testing.T) {
	if got := (Plain{}).Format(core.Money{Cents: 123450}); got != "1234.50" {
		t.Errorf("Plain.Format = %q, want 1234.50", got)
	}
}
