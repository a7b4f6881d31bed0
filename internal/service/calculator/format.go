package calculator

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatWhole renders a value rounded to whole units with digit grouping ("12,345").
func FormatWhole(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return message.NewPrinter(language.English).Sprintf("%d", int64(math.Round(v)))
}
