// Package types implements the tagged value model and DataType enumeration
// that every backend and operator in columndb consumes (spec §3, §4.3).
package types

import (
	"fmt"
	"strings"
)

// DataType is the closed enumeration of value kinds a Column can hold.
type DataType int

const (
	Int32 DataType = iota
	Int64
	Float32
	Float64
	Boolean
	String
	Timestamp
	Vector
	Custom
	Exception
)

func (t DataType) String() string {
	switch t {
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Boolean:
		return "boolean"
	case String:
		return "string"
	case Timestamp:
		return "timestamp"
	case Vector:
		return "vector"
	case Custom:
		return "custom"
	case Exception:
		return "exception"
	default:
		return fmt.Sprintf("datatype(%d)", int(t))
	}
}

// FixedWidth reports whether values of this type occupy a fixed number of
// bytes in a Column buffer. String is the only variable-width scalar type
// (it stores an arena offset+length pair, which is itself fixed-width, but
// the backing bytes live in the table's string arena).
func (t DataType) FixedWidth() bool {
	switch t {
	case Custom, Exception:
		return false
	default:
		return true
	}
}

// ParseSQLTypeName maps the external SQL type-name aliases from spec §6
// to a DataType. Matching is case-insensitive. This is the narrow surface
// the (out-of-scope) SQL front-end parser and the sqlfront DDL adapter rely
// on; it does not attempt to parse a full type expression (widths,
// precision, etc. are the caller's concern).
func ParseSQLTypeName(name string) (DataType, bool) {
	switch strings.ToUpper(name) {
	case "INT", "INTEGER":
		return Int32, true
	case "BIGINT":
		return Int64, true
	case "FLOAT":
		return Float32, true
	case "DOUBLE", "REAL":
		return Float64, true
	case "BOOL", "BOOLEAN":
		return Boolean, true
	case "TEXT", "VARCHAR", "STRING":
		return String, true
	case "TIMESTAMP", "DATETIME":
		return Timestamp, true
	default:
		return 0, false
	}
}
