package fmt

import (
	"fmt"
	"strings"
)

// SprintFloat formats value with at most decimal digits, trimming trailing zeros.
func SprintFloat(value float64, decimal uint) string {
	var floatStr string
	if decimal > 0 {
		floatFormat := fmt.Sprintf("%%.%df", decimal)
		floatStr = fmt.Sprintf(floatFormat, value)
		floatStr = strings.TrimRight(strings.TrimRight(floatStr, "0"), ".")
	} else {
		floatStr = fmt.Sprintf("%.0f", value)
	}
	if floatStr == "-0" {
		return "0"
	}
	return floatStr
}

// SprintFixed formats value with exactly decimal digits. Negative zero is printed without sign.
func SprintFixed(value float64, decimal uint) string {
	floatStr := fmt.Sprintf(fmt.Sprintf("%%.%df", decimal), value)
	if strings.Trim(floatStr, "-0.") == "" {
		return strings.TrimPrefix(floatStr, "-")
	}
	return floatStr
}
