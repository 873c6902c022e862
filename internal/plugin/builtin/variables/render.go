// Copyright 2024 Humanitec
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package variables

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// floatToString renders a variable's value the way `var` does: an integer
// value prints without a decimal point, otherwise at full precision with
// trailing zeros trimmed.
func floatToString(f float64) string {
	return decimal.NewFromFloat(f).String()
}

func toHex(f float64) string {
	return fmt.Sprintf("%x", int64(decimal.NewFromFloat(f).Round(0).IntPart()))
}

func toHexUpper(f float64) string {
	return strings.ToUpper(toHex(f))
}

var romanTable = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// toRoman renders f (rounded to the nearest integer) as a lowercase roman
// numeral. Values less than 1 render as "n" (nulla), matching there being
// no roman numeral for zero or negative quantities.
func toRoman(f float64) string {
	n := int(decimal.NewFromFloat(f).Round(0).IntPart())
	if n <= 0 {
		return "n"
	}
	var sb strings.Builder
	for _, entry := range romanTable {
		for n >= entry.value {
			sb.WriteString(entry.symbol)
			n -= entry.value
		}
	}
	return strings.ToLower(sb.String())
}

func toRomanUpper(f float64) string {
	return strings.ToUpper(toRoman(f))
}
