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

// Package types holds the column/literal type identity the transformer
// needs to reason about nullability, default-value typing and select-list
// casts. It is deliberately a small fraction of a full physical type system
// (vectors, compute kernels, storage encodings are out of scope here).
package types

import "fmt"

type TypeId int

const (
	Invalid TypeId = iota
	Boolean
	Integer
	BigInt
	Decimal
	Double
	Varchar
	Date
	Timestamp
	Interval
	Null
)

func (t TypeId) String() string {
	switch t {
	case Boolean:
		return "BOOLEAN"
	case Integer:
		return "INTEGER"
	case BigInt:
		return "BIGINT"
	case Decimal:
		return "DECIMAL"
	case Double:
		return "DOUBLE"
	case Varchar:
		return "VARCHAR"
	case Date:
		return "DATE"
	case Timestamp:
		return "TIMESTAMP"
	case Interval:
		return "INTERVAL"
	case Null:
		return "NULL"
	default:
		return "INVALID"
	}
}

// LType is a column or expression's logical type: an identity plus the
// width/scale pair decimal columns need.
type LType struct {
	Id    TypeId
	Width int
	Scale int
}

func (lt LType) String() string {
	if lt.Id == Decimal {
		return fmt.Sprintf("DECIMAL(%d,%d)", lt.Width, lt.Scale)
	}
	return lt.Id.String()
}

func BooleanType() LType    { return LType{Id: Boolean} }
func IntegerType() LType    { return LType{Id: Integer} }
func BigIntType() LType     { return LType{Id: BigInt} }
func VarcharType() LType    { return LType{Id: Varchar} }
func DoubleType() LType     { return LType{Id: Double} }
func DateType() LType       { return LType{Id: Date} }
func TimestampType() LType  { return LType{Id: Timestamp} }
func IntervalType() LType   { return LType{Id: Interval} }
func NullType() LType       { return LType{Id: Null} }
func DecimalType(w, s int) LType {
	return LType{Id: Decimal, Width: w, Scale: s}
}
