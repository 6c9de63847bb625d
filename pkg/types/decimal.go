// Copyright 2024-2026 Arclight Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package types

import (
	"fmt"

	decimal "github.com/govalues/decimal"
)

// DecimalLiteralType parses a numeric literal's exact text and returns the
// narrowest DECIMAL(width,scale) LType that represents it without loss,
// backed by the same govalues/decimal the teacher casts numeric columns
// through (pkg/compute/function_cast.go's dec.ParseExact/dec.NewFromInt64).
// A literal like "19.99" becomes DECIMAL(4,2) rather than an imprecise
// float64, since float64 cannot round-trip most decimal fractions exactly.
func DecimalLiteralType(text string) (LType, error) {
	d, err := decimal.Parse(text)
	if err != nil {
		return LType{}, err
	}
	return LType{Id: Decimal, Width: d.Prec(), Scale: d.Scale()}, nil
}

// FitsDecimalColumn reports whether literal's text can be represented
// exactly at col's scale, the conformance check INSERT applies to every
// literal default/explicit value targeting a DECIMAL column: a value with
// more fractional digits than the column's scale allows is rejected rather
// than silently truncated.
func FitsDecimalColumn(col LType, literal string) error {
	d, err := decimal.ParseExact(literal, col.Scale)
	if err != nil {
		return err
	}
	if d.Trim(col.Scale).Scale() > col.Scale {
		return fmt.Errorf("%s has more than %d fractional digits", literal, col.Scale)
	}
	return nil
}
