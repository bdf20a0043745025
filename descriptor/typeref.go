package descriptor

import (
	"fmt"
	"strings"
)

// RefKind discriminates the shapes of a field type reference.
type RefKind int

const (
	RefNamed RefKind = iota
	RefPointer
	RefSlice
	RefArray
	RefMap
)

// TypeRef is a structural reference to a field's type. Named types keep
// their (possibly package-qualified) spelling; composite shapes nest.
type TypeRef struct {
	Kind RefKind
	Name string   // RefNamed: "int64", "Point", "time.Duration"
	Len  int      // RefArray: fixed length
	Key  *TypeRef // RefMap
	Elem *TypeRef // RefPointer, RefSlice, RefArray, RefMap
}

// Named builds a reference to a named type.
func Named(name string) TypeRef {
	return TypeRef{Kind: RefNamed, Name: name}
}

// PointerTo builds a *elem reference.
func PointerTo(elem TypeRef) TypeRef {
	return TypeRef{Kind: RefPointer, Elem: &elem}
}

// SliceOf builds a []elem reference.
func SliceOf(elem TypeRef) TypeRef {
	return TypeRef{Kind: RefSlice, Elem: &elem}
}

// ArrayOf builds an [n]elem reference.
func ArrayOf(n int, elem TypeRef) TypeRef {
	return TypeRef{Kind: RefArray, Len: n, Elem: &elem}
}

// MapOf builds a map[key]elem reference.
func MapOf(key, elem TypeRef) TypeRef {
	return TypeRef{Kind: RefMap, Key: &key, Elem: &elem}
}

// String reconstructs the Go spelling of the reference.
func (t TypeRef) String() string {
	var b strings.Builder
	t.write(&b)
	return b.String()
}

func (t TypeRef) write(b *strings.Builder) {
	switch t.Kind {
	case RefNamed:
		b.WriteString(t.Name)
	case RefPointer:
		b.WriteByte('*')
		t.Elem.write(b)
	case RefSlice:
		b.WriteString("[]")
		t.Elem.write(b)
	case RefArray:
		fmt.Fprintf(b, "[%d]", t.Len)
		t.Elem.write(b)
	case RefMap:
		b.WriteString("map[")
		t.Key.write(b)
		b.WriteByte(']')
		t.Elem.write(b)
	default:
		fmt.Fprintf(b, "RefKind(%d)", int(t.Kind))
	}
}
