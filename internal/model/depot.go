package model

import "strconv"

// Depots fixed depot list, in selector order
var Depots = []string{
	"KNL",
	"NDYL",
	"ATP",
	"CTR-I",
	"CTR-II",
	"CTR-III",
	"CDP-I",
	"PDTR",
	"NLR-I",
	"NLR-II",
	"PKM-I",
	"PKM-II",
	"VZA-I",
	"VZA-II",
	"VZA-III",
	"GNT-I",
	"GNT-II",
	"GNT-III",
	"EG-I",
	"EG-II",
	"EG-III",
	"WG-I",
	"WG-II",
	"WG-III",
	"VSKP-I",
	"VSKP-II",
	"VSKP-III",
	"VZM",
	"SKLM",
}

// DefaultProducts default product labels, one per product slot
var DefaultProducts = []string{
	"MC VSOP",
	"MCB",
	"SSW",
	"KWB",
	"DSPG",
	"MC RUM",
	"GSW",
	"GSB",
}

// IsDepot reports whether name is one of the configured depots.
func IsDepot(name string) bool {
	for _, d := range Depots {
		if d == name {
			return true
		}
	}
	return false
}

// DefaultProductNames returns the default labels for n product slots.
// Slots past the fixed labels are named "Product {i}".
func DefaultProductNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = PlaceholderProductName(i)
		if i < len(DefaultProducts) {
			names[i] = DefaultProducts[i]
		}
	}
	return names
}

// PlaceholderProductName name used for an unnamed product slot (0-based index)
func PlaceholderProductName(i int) string {
	return "Product " + strconv.Itoa(i+1)
}
