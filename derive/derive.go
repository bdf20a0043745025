// Package derive turns type descriptors into generation procedures: small
// expression trees describing how to build a random value of the type from
// a stream of rng draws. The trees are rendered to Go source by EmitFile.
package derive

import (
	"fmt"
	"strings"

	"github.com/shipq/randgen/descriptor"
)

// Procedure is the generation recipe for one type. It becomes one emitted
// Random function.
type Procedure struct {
	TypeName   string
	TypeParams []string
	Body       Expr
}

// Expr is a node of a generation procedure.
type Expr interface {
	isExpr()
}

// Draw is a primitive draw through the rng package: rng.<Fn>(r).
type Draw struct {
	Fn string
}

// Call delegates to the Random function of another type in the same
// package: Random<TypeName>(r).
type Call struct {
	TypeName string
}

// GenParam calls the generator argument bound to a type parameter.
type GenParam struct {
	Name string // "genA" for type parameter A
}

// Ptr generates a pointer through rng.PtrOf: nil half the time, otherwise
// a pointer to a generated element.
type Ptr struct {
	ElemType string
	Elem     Expr
}

// Slice generates a bounded-length slice through rng.SliceOf.
type Slice struct {
	ElemType string
	Elem     Expr
}

// Map generates a bounded-size map through rng.MapOf.
type Map struct {
	KeyType  string
	Key      Expr
	ElemType string
	Elem     Expr
}

// Array fills a fixed-length array element by element.
type Array struct {
	Len      int
	ElemType string
	Elem     Expr
}

// Composite constructs a struct value. Elems are in field declaration
// order; when every element has a key the literal is keyed, otherwise
// positional.
type Composite struct {
	TypeName string
	Elems    []FieldInit
}

// FieldInit is one element of a composite literal.
type FieldInit struct {
	Key   string // empty in a positional literal
	Value Expr
}

// Keyed reports whether every element can be bound by key.
func (c Composite) Keyed() bool {
	for _, e := range c.Elems {
		if e.Key == "" {
			return false
		}
	}
	return true
}

// Name references a declared constant, for const-style enum variants.
type Name struct {
	Ident string
}

// Select draws one index uniformly from [0, Count) and evaluates the arm
// at that index. Exactly one index draw, however many arms.
type Select struct {
	Count int
	Arms  []Expr
}

func (Draw) isExpr()      {}
func (Call) isExpr()      {}
func (GenParam) isExpr()  {}
func (Ptr) isExpr()       {}
func (Slice) isExpr()     {}
func (Map) isExpr()       {}
func (Array) isExpr()     {}
func (Composite) isExpr() {}
func (Name) isExpr()      {}
func (Select) isExpr()    {}

// drawFns maps named types with built-in draw strategies to their rng
// function.
var drawFns = map[string]string{
	"bool":          "Bool",
	"int":           "Int",
	"int8":          "Int8",
	"int16":         "Int16",
	"int32":         "Int32",
	"int64":         "Int64",
	"uint":          "Uint",
	"uint8":         "Uint8",
	"byte":          "Uint8",
	"uint16":        "Uint16",
	"uint32":        "Uint32",
	"uint64":        "Uint64",
	"uintptr":       "Uintptr",
	"float32":       "Float32",
	"float64":       "Float64",
	"string":        "String",
	"rune":          "Rune",
	"time.Duration": "Duration",
}

// Derive builds the generation procedure for one descriptor.
//
// Structs generate every field in declaration order. Enums draw one uniform
// variant index and generate the chosen variant; an enum with a single
// variant skips the draw entirely. Field types delegate by convention:
// a named type T in the same package is generated by calling RandomT.
func Derive(d *descriptor.TypeDescriptor) (*Procedure, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	p := &Procedure{
		TypeName:   d.Name,
		TypeParams: append([]string(nil), d.TypeParams...),
	}

	eng := &engine{desc: d}

	switch d.Kind {
	case descriptor.KindStruct:
		body, err := eng.composite(instantiated(d), d.Fields)
		if err != nil {
			return nil, err
		}
		p.Body = body

	case descriptor.KindEnum:
		arms := make([]Expr, len(d.Variants))
		for i, v := range d.Variants {
			arm, err := eng.variant(v)
			if err != nil {
				return nil, err
			}
			arms[i] = arm
		}
		if len(arms) == 1 {
			p.Body = arms[0]
		} else {
			p.Body = Select{Count: len(arms), Arms: arms}
		}

	default:
		return nil, &descriptor.Error{
			Pos:  d.Pos,
			Type: d.Name,
			Msg:  fmt.Sprintf("unknown descriptor kind %v", d.Kind),
		}
	}

	return p, nil
}

// instantiated returns the literal type name, with type arguments for
// generic types: "Pair[A, B]".
func instantiated(d *descriptor.TypeDescriptor) string {
	if len(d.TypeParams) == 0 {
		return d.Name
	}
	return d.Name + "[" + strings.Join(d.TypeParams, ", ") + "]"
}

type engine struct {
	desc *descriptor.TypeDescriptor
}

func (e *engine) variant(v descriptor.VariantDescriptor) (Expr, error) {
	if e.desc.Style == descriptor.EnumConst {
		return Name{Ident: v.Name}, nil
	}
	return e.composite(v.Name, v.Fields)
}

func (e *engine) composite(typeName string, fields []descriptor.FieldDescriptor) (Expr, error) {
	elems := make([]FieldInit, len(fields))
	for i, f := range fields {
		val, err := e.resolve(f.Type)
		if err != nil {
			return nil, err
		}
		key := f.Name
		if key == "" {
			// Embedded fields are addressable by the base name of
			// their type.
			key = embeddedKey(f.Type)
		}
		elems[i] = FieldInit{Key: key, Value: val}
	}
	return Composite{TypeName: typeName, Elems: elems}, nil
}

// embeddedKey returns the literal key of an unnamed field, or "" when the
// field can only be bound positionally.
func embeddedKey(ref descriptor.TypeRef) string {
	switch ref.Kind {
	case descriptor.RefNamed:
		if i := strings.LastIndex(ref.Name, "."); i >= 0 {
			return ref.Name[i+1:]
		}
		return ref.Name
	case descriptor.RefPointer:
		return embeddedKey(*ref.Elem)
	default:
		return ""
	}
}

// resolve maps a field type to the expression that generates it.
func (e *engine) resolve(ref descriptor.TypeRef) (Expr, error) {
	switch ref.Kind {
	case descriptor.RefNamed:
		if fn, ok := drawFns[ref.Name]; ok {
			return Draw{Fn: fn}, nil
		}
		for _, p := range e.desc.TypeParams {
			if ref.Name == p {
				return GenParam{Name: "gen" + p}, nil
			}
		}
		if strings.Contains(ref.Name, ".") {
			return nil, e.unsupported(ref)
		}
		return Call{TypeName: ref.Name}, nil

	case descriptor.RefPointer:
		elem, err := e.resolve(*ref.Elem)
		if err != nil {
			return nil, err
		}
		return Ptr{ElemType: ref.Elem.String(), Elem: elem}, nil

	case descriptor.RefSlice:
		elem, err := e.resolve(*ref.Elem)
		if err != nil {
			return nil, err
		}
		return Slice{ElemType: ref.Elem.String(), Elem: elem}, nil

	case descriptor.RefArray:
		elem, err := e.resolve(*ref.Elem)
		if err != nil {
			return nil, err
		}
		return Array{Len: ref.Len, ElemType: ref.Elem.String(), Elem: elem}, nil

	case descriptor.RefMap:
		key, err := e.resolve(*ref.Key)
		if err != nil {
			return nil, err
		}
		elem, err := e.resolve(*ref.Elem)
		if err != nil {
			return nil, err
		}
		return Map{
			KeyType:  ref.Key.String(),
			Key:      key,
			ElemType: ref.Elem.String(),
			Elem:     elem,
		}, nil

	default:
		return nil, e.unsupported(ref)
	}
}

func (e *engine) unsupported(ref descriptor.TypeRef) error {
	return &descriptor.Error{
		Pos:  e.desc.Pos,
		Type: e.desc.Name,
		Msg:  fmt.Sprintf("field type %s has no generation strategy", ref.String()),
	}
}
