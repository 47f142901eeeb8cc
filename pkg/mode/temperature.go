package mode

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// FormatTemperature renders a battery temperature in degrees Celsius with
// at most one fraction digit, using the locale's number formatting. Returns
// nil when the temperature is unknown.
func FormatTemperature(celsius *float64, tag language.Tag) *string {
	if celsius == nil {
		return nil
	}
	p := message.NewPrinter(tag)
	out := p.Sprintf("%v°C", number.Decimal(*celsius, number.MaxFractionDigits(1)))
	return &out
}
