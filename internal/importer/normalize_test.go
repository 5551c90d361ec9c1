package importer

import (
	"testing"
	"time"

	"github.com/mbakken/labstock-backend/pkg/enums"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		raw  string
		want string // "" means nil
	}{
		{"1 234,50 kr", "1234.5"},
		{"99.90", "99.9"},
		{"kr 45", "45"},
		{"0", ""},
		{"-5", ""},
		{"abc", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := ParsePrice(tt.raw)
			if tt.want == "" {
				if got != nil {
					t.Fatalf("expected nil, got %s", got)
				}
				return
			}
			if got == nil {
				t.Fatalf("expected %s, got nil", tt.want)
			}
			if got.String() != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		raw  string
		want float64 // 0 means nil
	}{
		{"10 stk", 10},
		{"5stk/eske", 5},
		{"2,5 l", 2.5},
		{"abc", 0},
		{"0 stk", 0},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := ParseQuantity(tt.raw)
			if tt.want == 0 {
				if got != nil {
					t.Fatalf("expected nil, got %f", *got)
				}
				return
			}
			if got == nil || *got != tt.want {
				t.Fatalf("expected %f, got %v", tt.want, got)
			}
		})
	}
}

func TestParseVerifiedDate(t *testing.T) {
	got := ParseVerifiedDate("18.06.25 ILK")
	if got == nil {
		t.Fatal("expected a date")
	}
	if got.Year() != 2025 || got.Month() != time.June || got.Day() != 18 {
		t.Fatalf("expected 2025-06-18, got %v", got)
	}

	if ParseVerifiedDate("no date here") != nil {
		t.Fatal("expected nil for text without a date pattern")
	}
	if ParseVerifiedDate("45.13.25") != nil {
		t.Fatal("expected nil for impossible day/month")
	}
}

func TestParsePercent(t *testing.T) {
	got := ParsePercent("38,12 %")
	if got == nil || *got != 38.12 {
		t.Fatalf("expected 38.12, got %v", got)
	}
	if ParsePercent("150") != nil {
		t.Fatal("expected nil for out-of-range percentage")
	}
	if ParsePercent("") != nil {
		t.Fatal("expected nil for blank input")
	}
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		raw  string
		want enums.SupplierRole
	}{
		{"Reserve", enums.SupplierRoleSecondary},
		{"secondary supplier", enums.SupplierRoleSecondary},
		{"Backup", enums.SupplierRoleBackup},
		{"Main", enums.SupplierRolePrimary},
		{"", enums.SupplierRolePrimary},
		{"nonsense", enums.SupplierRolePrimary},
	}
	for _, tt := range tests {
		if got := ParseRole(tt.raw); got != tt.want {
			t.Fatalf("ParseRole(%q) = %s, want %s", tt.raw, got, tt.want)
		}
	}
}

func TestParseInitials(t *testing.T) {
	got := ParseInitials("18.06.25 ILK")
	if got == nil || *got != "ILK" {
		t.Fatalf("expected ILK, got %v", got)
	}
	if ParseInitials("18.06.25") != nil {
		t.Fatal("expected nil when no trailing initials")
	}
	if ParseInitials("18.06.25 X") != nil {
		t.Fatal("expected nil for a single trailing letter")
	}
}

func TestGenerateRefCode(t *testing.T) {
	code := GenerateRefCode("Micro-biology & Serology")
	if len(code) != 13 { // 8 + "-" + 4
		t.Fatalf("expected 13-char code, got %q", code)
	}
	if code[:8] != "MICROBIO" {
		t.Fatalf("expected MICROBIO prefix, got %q", code)
	}

	other := GenerateRefCode("Micro-biology & Serology")
	if code == other {
		t.Fatalf("expected distinct suffixes, got %q twice", code)
	}
}

func TestGenerateItemCode(t *testing.T) {
	mfr := "Merck KGaA"
	code := GenerateItemCode("Ethanol 96%", &mfr)
	if code[:6] != "ETHANO" {
		t.Fatalf("expected ETHANO prefix, got %q", code)
	}
	if code[6:9] != "MER" {
		t.Fatalf("expected MER manufacturer fragment, got %q", code)
	}

	plain := GenerateItemCode("Jar", nil)
	if plain[:3] != "JAR" {
		t.Fatalf("expected JAR prefix, got %q", plain)
	}
}
