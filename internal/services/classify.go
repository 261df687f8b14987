package services

import "strings"

// Category selects the decorative effect shown for a loaded report.
type Category string

const (
	CategorySunny   Category = "sunny"
	CategoryNight   Category = "night"
	CategoryRainy   Category = "rainy"
	CategorySnowy   Category = "snowy"
	CategoryCold    Category = "cold"
	CategoryCloudy  Category = "cloudy"
	CategoryDefault Category = "default"
)

// coldBelow is the temperature (°C) under which non-precipitation codes
// classify as cold.
const coldBelow = 10

// IsNight reports whether an icon code is a night variant ("01n", "10n", ...).
func IsNight(iconCode string) bool {
	return strings.HasSuffix(iconCode, "n")
}

// Classify maps a provider icon code and temperature to a Category.
// The checks run in order; cold wins over the cloudy codes.
func Classify(iconCode string, temperature float64) Category {
	switch {
	case strings.HasPrefix(iconCode, "01"):
		if IsNight(iconCode) {
			return CategoryNight
		}
		return CategorySunny
	case hasAnyPrefix(iconCode, "09", "10"):
		return CategoryRainy
	case strings.HasPrefix(iconCode, "13"):
		return CategorySnowy
	case temperature < coldBelow:
		return CategoryCold
	case hasAnyPrefix(iconCode, "02", "03", "04"):
		return CategoryCloudy
	default:
		return CategoryDefault
	}
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
