package descriptor

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Directive marks a type declaration for derivation. It must appear as its
// own line in the doc comment of the type:
//
//	//randgen:derive
//	type Point struct {
//		X, Y int64
//	}
const Directive = "//randgen:derive"

// IgnoreFile reports whether a file name should be excluded from extraction.
// Test files and previously generated files never contribute descriptors.
func IgnoreFile(name string) bool {
	if !strings.HasSuffix(name, ".go") {
		return true
	}
	if strings.HasSuffix(name, "_test.go") {
		return true
	}
	return strings.HasPrefix(name, "zz_generated")
}

// ExtractDir parses the Go files of one package directory and returns
// descriptors for every marked type, in declaration order.
func ExtractDir(dir string) ([]*TypeDescriptor, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read package directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || IgnoreFile(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	fset := token.NewFileSet()
	var files []*ast.File
	for _, name := range names {
		f, err := parser.ParseFile(fset, filepath.Join(dir, name), nil, parser.ParseComments|parser.SkipObjectResolution)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		files = append(files, f)
	}

	return Extract(fset, files)
}

// Extract walks already parsed files of one package and builds descriptors
// for every marked type. Files must have been parsed with comments, since
// the marker lives in doc comments.
func Extract(fset *token.FileSet, files []*ast.File) ([]*TypeDescriptor, error) {
	x := &extractor{fset: fset, files: files}
	x.indexPackage()

	var descs []*TypeDescriptor
	for _, m := range x.marked {
		d, err := x.describe(m)
		if err != nil {
			return nil, err
		}
		if err := d.Validate(); err != nil {
			return nil, err
		}
		descs = append(descs, d)
	}
	return descs, nil
}

type markedType struct {
	spec *ast.TypeSpec
}

type structDecl struct {
	name string
	typ  *ast.StructType
}

type extractor struct {
	fset  *token.FileSet
	files []*ast.File

	marked  []markedType
	structs []structDecl
	// methods maps receiver type name to the set of its value-receiver
	// method names. Pointer receivers are deliberately absent: a sealed
	// interface variant must satisfy the interface by value, because the
	// generated switch arm constructs a plain composite literal.
	methods map[string]map[string]bool
}

// indexPackage gathers everything the per-type passes need: marked type
// specs in declaration order, all struct declarations, and value-receiver
// method sets.
func (x *extractor) indexPackage() {
	x.methods = make(map[string]map[string]bool)

	for _, f := range x.files {
		for _, decl := range f.Decls {
			switch d := decl.(type) {
			case *ast.GenDecl:
				if d.Tok != token.TYPE {
					continue
				}
				for _, spec := range d.Specs {
					ts, ok := spec.(*ast.TypeSpec)
					if !ok {
						continue
					}
					if st, ok := ts.Type.(*ast.StructType); ok {
						x.structs = append(x.structs, structDecl{name: ts.Name.Name, typ: st})
					}
					if hasDirective(ts.Doc) || (len(d.Specs) == 1 && hasDirective(d.Doc)) {
						x.marked = append(x.marked, markedType{spec: ts})
					}
				}
			case *ast.FuncDecl:
				recv := valueReceiver(d)
				if recv == "" {
					continue
				}
				if x.methods[recv] == nil {
					x.methods[recv] = make(map[string]bool)
				}
				x.methods[recv][d.Name.Name] = true
			}
		}
	}
}

// hasDirective scans the raw comment list. Directive comments are stripped
// by CommentGroup.Text, so the rendered text cannot be used here.
func hasDirective(doc *ast.CommentGroup) bool {
	if doc == nil {
		return false
	}
	for _, c := range doc.List {
		if strings.TrimSpace(c.Text) == Directive {
			return true
		}
	}
	return false
}

// valueReceiver returns the receiver type name of a value-receiver method,
// or "" for functions and pointer-receiver methods.
func valueReceiver(d *ast.FuncDecl) string {
	if d.Recv == nil || len(d.Recv.List) != 1 {
		return ""
	}
	if id, ok := d.Recv.List[0].Type.(*ast.Ident); ok {
		return id.Name
	}
	return ""
}

func (x *extractor) describe(m markedType) (*TypeDescriptor, error) {
	ts := m.spec
	d := &TypeDescriptor{
		Name: ts.Name.Name,
		Pos:  x.fset.Position(ts.Pos()),
	}
	if ts.TypeParams != nil {
		for _, field := range ts.TypeParams.List {
			for _, name := range field.Names {
				d.TypeParams = append(d.TypeParams, name.Name)
			}
		}
	}

	switch t := ts.Type.(type) {
	case *ast.StructType:
		d.Kind = KindStruct
		fields, err := x.fieldList(d.Name, t.Fields)
		if err != nil {
			return nil, err
		}
		d.Fields = fields

	case *ast.InterfaceType:
		d.Kind = KindEnum
		d.Style = EnumSealed
		if err := x.sealedVariants(d, t); err != nil {
			return nil, err
		}

	default:
		// A marked named type like "type Color int" is an enum whose
		// variants are the package consts declared with that type.
		d.Kind = KindEnum
		d.Style = EnumConst
		x.constVariants(d)
	}

	return d, nil
}

// fieldList flattens one AST field list into descriptors. Embedded fields
// have no name and become positional.
func (x *extractor) fieldList(typeName string, fl *ast.FieldList) ([]FieldDescriptor, error) {
	if fl == nil {
		return nil, nil
	}
	var out []FieldDescriptor
	for _, field := range fl.List {
		ref, err := x.typeRef(typeName, field.Type)
		if err != nil {
			return nil, err
		}
		if len(field.Names) == 0 {
			out = append(out, FieldDescriptor{Index: len(out), Type: ref})
			continue
		}
		for _, name := range field.Names {
			if name.Name == "_" {
				continue
			}
			out = append(out, FieldDescriptor{Name: name.Name, Index: len(out), Type: ref})
		}
	}
	return out, nil
}

// sealedVariants fills an enum descriptor from a sealed interface: the
// variants are the package's struct types carrying the interface's
// unexported marker method, in declaration order.
func (x *extractor) sealedVariants(d *TypeDescriptor, iface *ast.InterfaceType) error {
	marker := ""
	for _, m := range iface.Methods.List {
		if len(m.Names) == 0 {
			continue // embedded interface
		}
		name := m.Names[0].Name
		if !token.IsExported(name) {
			marker = name
			break
		}
	}
	if marker == "" {
		return &Error{
			Pos:  d.Pos,
			Type: d.Name,
			Msg:  "sealed interface needs an unexported marker method",
		}
	}

	for _, s := range x.structs {
		if !x.methods[s.name][marker] {
			continue
		}
		fields, err := x.fieldList(s.name, s.typ.Fields)
		if err != nil {
			return err
		}
		d.Variants = append(d.Variants, VariantDescriptor{Name: s.name, Fields: fields})
	}
	return nil
}

// constVariants fills an enum descriptor from the const blocks of the
// package: every const declared with the enum's type is a unit variant.
// Specs without a type or values inherit the previous spec, which is how
// iota blocks carry the type down.
func (x *extractor) constVariants(d *TypeDescriptor) {
	for _, f := range x.files {
		for _, decl := range f.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.CONST {
				continue
			}
			carry := false
			for _, spec := range gd.Specs {
				vs, ok := spec.(*ast.ValueSpec)
				if !ok {
					continue
				}
				switch {
				case vs.Type != nil:
					id, isIdent := vs.Type.(*ast.Ident)
					carry = isIdent && id.Name == d.Name
				case len(vs.Values) > 0:
					carry = false
				}
				if !carry {
					continue
				}
				for _, name := range vs.Names {
					if name.Name == "_" {
						continue
					}
					d.Variants = append(d.Variants, VariantDescriptor{Name: name.Name})
				}
			}
		}
	}
}

// typeRef converts a field type expression into a TypeRef. Shapes with no
// generation strategy (funcs, channels, anonymous structs) are rejected
// with a positioned error.
func (x *extractor) typeRef(typeName string, expr ast.Expr) (TypeRef, error) {
	switch e := expr.(type) {
	case *ast.Ident:
		return Named(e.Name), nil

	case *ast.SelectorExpr:
		if id, ok := e.X.(*ast.Ident); ok {
			return Named(id.Name + "." + e.Sel.Name), nil
		}

	case *ast.StarExpr:
		elem, err := x.typeRef(typeName, e.X)
		if err != nil {
			return TypeRef{}, err
		}
		return PointerTo(elem), nil

	case *ast.ArrayType:
		elem, err := x.typeRef(typeName, e.Elt)
		if err != nil {
			return TypeRef{}, err
		}
		if e.Len == nil {
			return SliceOf(elem), nil
		}
		if lit, ok := e.Len.(*ast.BasicLit); ok && lit.Kind == token.INT {
			n, err := strconv.Atoi(lit.Value)
			if err == nil {
				return ArrayOf(n, elem), nil
			}
		}

	case *ast.MapType:
		key, err := x.typeRef(typeName, e.Key)
		if err != nil {
			return TypeRef{}, err
		}
		elem, err := x.typeRef(typeName, e.Value)
		if err != nil {
			return TypeRef{}, err
		}
		return MapOf(key, elem), nil
	}

	return TypeRef{}, &Error{
		Pos:  x.fset.Position(expr.Pos()),
		Type: typeName,
		Msg:  fmt.Sprintf("field type %s has no generation strategy", types.ExprString(expr)),
	}
}
