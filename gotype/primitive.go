package gotype

import "github.com/erraggy/oasfixture/schema"

// Primitive is one row of the fixed primitive type table.
type Primitive struct {
	// GoType is the Go type name, e.g. "int64" or "time.Time".
	GoType string
	// Suffix names the client helpers for the type: Ptr<Suffix>, Nullable<Suffix>.
	Suffix string
}

// PrimitiveFor returns the table entry for a primitive kind and format.
// Unknown formats fall back to the kind's default; non-primitive kinds return false.
func PrimitiveFor(kind schema.Kind, format string) (Primitive, bool) {
	switch kind {
	case schema.KindInteger:
		return integerFormatToGoType(format), true
	case schema.KindNumber:
		return numberFormatToGoType(format), true
	case schema.KindString:
		return stringFormatToGoType(format), true
	case schema.KindBoolean:
		return Primitive{GoType: "bool", Suffix: "Bool"}, true
	default:
		return Primitive{}, false
	}
}

// stringFormatToGoType maps OpenAPI string formats to Go types.
func stringFormatToGoType(format string) Primitive {
	switch format {
	case schema.FormatDate, schema.FormatDateTime:
		return Primitive{GoType: "time.Time", Suffix: "Time"}
	case schema.FormatBinary:
		return Primitive{GoType: "*os.File", Suffix: "File"}
	default:
		return Primitive{GoType: "string", Suffix: "String"}
	}
}

// integerFormatToGoType maps OpenAPI integer formats to Go types.
func integerFormatToGoType(format string) Primitive {
	if format == schema.FormatInt64 {
		return Primitive{GoType: "int64", Suffix: "Int64"}
	}
	return Primitive{GoType: "int32", Suffix: "Int32"}
}

// numberFormatToGoType maps OpenAPI number formats to Go types.
func numberFormatToGoType(format string) Primitive {
	if format == schema.FormatFloat {
		return Primitive{GoType: "float32", Suffix: "Float32"}
	}
	return Primitive{GoType: "float64", Suffix: "Float64"}
}
