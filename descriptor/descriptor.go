// Package descriptor models the structural shape of a type that opted in to
// derivation: its name, and either an ordered field list (product types) or
// an ordered variant list (sum types). Descriptors are built by the go/ast
// front end in this package and consumed by the derive engine; they exist
// only for the duration of one generation pass.
package descriptor

import (
	"fmt"
	"go/token"
)

// Kind says whether a descriptor is a product or a sum type.
type Kind int

const (
	KindStruct Kind = iota
	KindEnum
)

func (k Kind) String() string {
	switch k {
	case KindStruct:
		return "struct"
	case KindEnum:
		return "enum"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// EnumStyle says how enum variants are constructed in source.
type EnumStyle int

const (
	// EnumConst variants are package-level constants of the enum type.
	EnumConst EnumStyle = iota
	// EnumSealed variants are struct types implementing a sealed interface.
	EnumSealed
)

// TypeDescriptor is the shape of one marked type.
type TypeDescriptor struct {
	Name  string
	Kind  Kind
	Style EnumStyle // meaningful for KindEnum only

	// TypeParams holds type parameter names for generic types, in
	// declaration order. Each one becomes a generator-function argument of
	// the emitted Random function.
	TypeParams []string

	// Fields is the field list for KindStruct, in declaration order.
	// Empty means a unit struct.
	Fields []FieldDescriptor

	// Variants is the variant list for KindEnum, in declaration order.
	// Must be non-empty; see Validate.
	Variants []VariantDescriptor

	// Pos locates the marked type declaration for diagnostics.
	Pos token.Position
}

// FieldDescriptor is one field of a struct or variant payload. A field is
// bound by name or, for tuple-style shapes, by position.
type FieldDescriptor struct {
	Name  string // empty means positional
	Index int
	Type  TypeRef
}

// Positional reports whether the field is bound by position rather than name.
func (f FieldDescriptor) Positional() bool {
	return f.Name == ""
}

// VariantDescriptor is one alternative shape of a sum type. An empty field
// list is a unit variant.
type VariantDescriptor struct {
	Name   string
	Fields []FieldDescriptor
}

// Unit reports whether the variant carries no payload.
func (v VariantDescriptor) Unit() bool {
	return len(v.Fields) == 0
}

// Validate rejects structurally invalid descriptors. The only invalid shape
// is an enum with zero variants: it has no constructible value, so deriving
// a generator for it must fail at generation time, not at run time.
func (d *TypeDescriptor) Validate() error {
	if d.Kind == KindEnum && len(d.Variants) == 0 {
		return &Error{
			Pos:  d.Pos,
			Type: d.Name,
			Msg:  "enum has no variants, so no value can be constructed",
		}
	}
	return nil
}

// Error is a descriptor problem tied to a source position. The front end and
// the derive engine both report through it so the CLI can print compiler-style
// diagnostics.
type Error struct {
	Pos  token.Position
	Type string
	Msg  string
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s: %s", e.Pos, e.Type, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Msg)
}
