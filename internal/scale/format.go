package scale

import (
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// TickFormat returns a formatter for ticks spaced step apart: thousands are
// grouped with commas and the number of decimals is just enough to tell
// adjacent ticks apart.
func TickFormat(step float64) func(float64) string {
	prec := precisionFixed(step)
	return func(v float64) string {
		if math.IsNaN(v) {
			return "NaN"
		}
		s := printer.Sprintf("%.*f", prec, v)
		if strings.HasPrefix(s, "-") {
			if strings.Trim(s[1:], "0.,") == "" {
				return s[1:]
			}
			s = "−" + s[1:]
		}
		return s
	}
}

func precisionFixed(step float64) int {
	step = math.Abs(step)
	if step == 0 || math.IsNaN(step) || math.IsInf(step, 0) {
		return 0
	}
	return max(0, -int(math.Floor(math.Log10(step))))
}
