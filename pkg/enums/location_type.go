package enums

import "fmt"

// LocationType classifies a storage location.
type LocationType string

const (
	LocationTypeGeneral   LocationType = "general"
	LocationTypeCold      LocationType = "cold"
	LocationTypeFreezer   LocationType = "freezer"
	LocationTypeFlammable LocationType = "flammable"
	LocationTypeHazmat    LocationType = "hazmat"
)

var validLocationTypes = []LocationType{
	LocationTypeGeneral,
	LocationTypeCold,
	LocationTypeFreezer,
	LocationTypeFlammable,
	LocationTypeHazmat,
}

// String implements fmt.Stringer.
func (l LocationType) String() string {
	return string(l)
}

// IsValid reports whether the value is a known LocationType.
func (l LocationType) IsValid() bool {
	for _, candidate := range validLocationTypes {
		if candidate == l {
			return true
		}
	}
	return false
}

// ParseLocationType converts raw input into a LocationType.
func ParseLocationType(value string) (LocationType, error) {
	for _, candidate := range validLocationTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid location type %q", value)
}
