package schema

// Kind is the closed set of schema shapes the engine understands.
type Kind int

const (
	// KindInvalid marks a missing or unrecognized type. Mapping it is a SchemaError.
	KindInvalid Kind = iota
	// KindAny is the "any schema matches" case, e.g. additionalProperties: true or {}.
	KindAny
	KindString
	KindNumber
	KindInteger
	KindBoolean
	KindArray
	KindObject
	// KindOneOf groups alternatives from oneOf or anyOf.
	KindOneOf
)

// String returns the OpenAPI spelling of the kind.
func (k Kind) String() string {
	switch k {
	case KindAny:
		return "any"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindInteger:
		return "integer"
	case KindBoolean:
		return "boolean"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindOneOf:
		return "oneOf"
	default:
		return "invalid"
	}
}

// ParseKind maps an OpenAPI type name to a Kind. Unknown names map to KindInvalid.
func ParseKind(s string) Kind {
	switch s {
	case "string":
		return KindString
	case "number":
		return KindNumber
	case "integer":
		return KindInteger
	case "boolean":
		return KindBoolean
	case "array":
		return KindArray
	case "object":
		return KindObject
	default:
		return KindInvalid
	}
}

// IsPrimitive reports whether the kind is a scalar type.
func (k Kind) IsPrimitive() bool {
	switch k {
	case KindString, KindNumber, KindInteger, KindBoolean:
		return true
	default:
		return false
	}
}

// Format values with special meaning for type mapping and rendering.
// Any other format string is carried through and treated as no refinement.
const (
	FormatDate     = "date"
	FormatDateTime = "date-time"
	FormatEmail    = "email"
	FormatBinary   = "binary"
	FormatInt32    = "int32"
	FormatInt64    = "int64"
	FormatFloat    = "float"
	FormatDouble   = "double"
)

// Category groups schemas the way generated resource code splits attributes
// from nested blocks.
type Category int

const (
	CategoryPrimitive Category = iota
	CategoryPrimitiveArray
	CategoryNonPrimitiveArray
	CategoryNonPrimitiveObject
)

// String returns the snake_case category name.
func (c Category) String() string {
	switch c {
	case CategoryPrimitive:
		return "primitive"
	case CategoryPrimitiveArray:
		return "primitive_array"
	case CategoryNonPrimitiveArray:
		return "non_primitive_array"
	default:
		return "non_primitive_obj"
	}
}
