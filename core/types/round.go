package types

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// RoundFloat rounds the binary value of x to places digits. Quoted figures
// are float64 products rounded this way, so a decimal tie such as 7222.215
// goes whichever side its float lands on (7222.21 here).
func RoundFloat(x float64, places int) decimal.Decimal {
	return decimal.RequireFromString(strconv.FormatFloat(x, 'f', places, 64))
}
