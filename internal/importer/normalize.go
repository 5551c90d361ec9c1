package importer

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mbakken/labstock-backend/pkg/enums"
)

// Normalizers convert raw cell text into typed values. They return nil for
// malformed input instead of failing, so a bad cell degrades to an absent
// value rather than a row error.

var (
	quantityRe = regexp.MustCompile(`(\d+(?:[.,]\d+)?)`)
	dateRe     = regexp.MustCompile(`(\d{1,2})\.(\d{1,2})\.(\d{2})\b`)
	initialsRe = regexp.MustCompile(`([A-ZÆØÅ]{2,4})$`)
)

// ParsePrice extracts a decimal amount from text like "1 234,50 kr".
// Returns nil when the value is unparseable or not positive.
func ParsePrice(raw string) *decimal.Decimal {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || r == ',' || r == '.' || r == '-' {
			return r
		}
		return -1
	}, raw)
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	if cleaned == "" {
		return nil
	}

	value, err := decimal.NewFromString(cleaned)
	if err != nil || !value.IsPositive() {
		return nil
	}
	return &value
}

// ParseQuantity extracts the first numeric token from text like "5stk/eske",
// ignoring trailing unit text. Returns nil when absent or not positive.
func ParseQuantity(raw string) *float64 {
	match := quantityRe.FindStringSubmatch(raw)
	if match == nil {
		return nil
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(match[1], ",", "."), 64)
	if err != nil || value <= 0 {
		return nil
	}
	return &value
}

// ParseVerifiedDate matches a dd.mm.yy pattern anywhere in a signature-style
// string such as "18.06.25 ILK". Two-digit years are read as 2000s.
func ParseVerifiedDate(raw string) *time.Time {
	match := dateRe.FindStringSubmatch(raw)
	if match == nil {
		return nil
	}
	day, _ := strconv.Atoi(match[1])
	month, _ := strconv.Atoi(match[2])
	year, _ := strconv.Atoi(match[3])
	if day < 1 || day > 31 || month < 1 || month > 12 {
		return nil
	}
	date := time.Date(2000+year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return &date
}

// ParsePercent parses a percentage like "38,12 %". Valid only in [0,100].
func ParsePercent(raw string) *float64 {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || r == ',' || r == '.' || r == '-' {
			return r
		}
		return -1
	}, raw)
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	if cleaned == "" {
		return nil
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || value < 0 || value > 100 {
		return nil
	}
	return &value
}

// ParseRole maps free-text role descriptions onto the role enum. Blank or
// unrecognized input defaults to primary.
func ParseRole(raw string) enums.SupplierRole {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(lowered, "backup"):
		return enums.SupplierRoleBackup
	case strings.Contains(lowered, "secondary"), strings.Contains(lowered, "reserve"):
		return enums.SupplierRoleSecondary
	default:
		return enums.SupplierRolePrimary
	}
}

// ParseInitials extracts 2-4 trailing uppercase letters from a
// signature-style string. Returns nil when absent.
func ParseInitials(raw string) *string {
	match := initialsRe.FindStringSubmatch(strings.TrimSpace(raw))
	if match == nil {
		return nil
	}
	return &match[1]
}

// GenerateRefCode builds a candidate unique code for an auto-created
// reference entity: alphanumeric-stripped uppercase name truncated to 8
// characters plus a uuid fragment. Callers verify uniqueness and retry.
func GenerateRefCode(name string) string {
	base := alnumUpper(name, 8)
	if base == "" {
		base = "REF"
	}
	return base + "-" + uuidFragment(4)
}

// GenerateItemCode builds a default item identifier from the name and an
// optional manufacturer fragment. Used only when the row carries no
// external identifier.
func GenerateItemCode(name string, manufacturer *string) string {
	code := alnumUpper(name, 6)
	if code == "" {
		code = "ITEM"
	}
	if manufacturer != nil {
		code += alnumUpper(*manufacturer, 3)
	}
	return code + "-" + uuidFragment(4)
}

func alnumUpper(raw string, max int) string {
	var b strings.Builder
	for _, r := range raw {
		if b.Len() >= max {
			break
		}
		if r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func uuidFragment(n int) string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:n])
}
