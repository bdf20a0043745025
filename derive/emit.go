package derive

import (
	"bytes"
	"fmt"
	"go/format"
	"path"
	"strings"
)

// Header is the first line of every emitted file. Tooling recognizes the
// standard "Code generated" form and skips such files.
const Header = "// Code generated by randgen. DO NOT EDIT."

// DefaultRNGImport is the import path of the draw helpers the emitted code
// calls into.
const DefaultRNGImport = "github.com/shipq/randgen/rng"

// EmitFile renders the procedures of one package into a single generated
// file. The result is gofmt-formatted; a formatting failure means the
// emitter produced invalid Go and is reported as an internal error.
func EmitFile(pkgName, rngImport string, procs []*Procedure) ([]byte, error) {
	if rngImport == "" {
		rngImport = DefaultRNGImport
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s\n\npackage %s\n\n", Header, pkgName)

	rngLine := fmt.Sprintf("%q", rngImport)
	if path.Base(rngImport) != "rng" {
		rngLine = fmt.Sprintf("rng %q", rngImport)
	}

	if extras := extraImports(procs); len(extras) > 0 {
		buf.WriteString("import (\n")
		for _, imp := range extras {
			fmt.Fprintf(&buf, "%q\n", imp)
		}
		fmt.Fprintf(&buf, "\n%s\n)\n\n", rngLine)
	} else {
		fmt.Fprintf(&buf, "import %s\n\n", rngLine)
	}

	for i, p := range procs {
		if i > 0 {
			buf.WriteString("\n")
		}
		emitFunc(&buf, p)
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("internal error: generated code for package %s does not parse: %w", pkgName, err)
	}
	return src, nil
}

// extraImports collects imports needed by the type names the file spells
// out in closures and array fills. The engine admits exactly one qualified
// named type (time.Duration), so the scan stays this simple.
func extraImports(procs []*Procedure) []string {
	needsTime := false
	for _, p := range procs {
		walkTypeNames(p.Body, func(t string) {
			if strings.Contains(t, "time.") {
				needsTime = true
			}
		})
	}
	if needsTime {
		return []string{"time"}
	}
	return nil
}

// walkTypeNames visits the element types the rendering actually spells:
// array fills always, combinator arguments only when writeGenArg would wrap
// them in a closure. Point-free arguments never spell a type, and counting
// them would emit an unused import.
func walkTypeNames(e Expr, fn func(string)) {
	switch v := e.(type) {
	case Ptr:
		if spellsClosure(v.Elem) {
			fn(v.ElemType)
		}
		walkTypeNames(v.Elem, fn)
	case Slice:
		if spellsClosure(v.Elem) {
			fn(v.ElemType)
		}
		walkTypeNames(v.Elem, fn)
	case Map:
		if spellsClosure(v.Key) {
			fn(v.KeyType)
		}
		if spellsClosure(v.Elem) {
			fn(v.ElemType)
		}
		walkTypeNames(v.Key, fn)
		walkTypeNames(v.Elem, fn)
	case Array:
		fn(v.ElemType)
		walkTypeNames(v.Elem, fn)
	case Composite:
		for _, elem := range v.Elems {
			walkTypeNames(elem.Value, fn)
		}
	case Select:
		for _, arm := range v.Arms {
			walkTypeNames(arm, fn)
		}
	}
}

// spellsClosure reports whether writeGenArg renders e as a typed closure
// rather than a point-free function reference.
func spellsClosure(e Expr) bool {
	switch e.(type) {
	case Draw, Call, GenParam:
		return false
	default:
		return true
	}
}

// emitFunc renders one Random function. Indentation is left rough here;
// format.Source normalizes the whole file at the end.
func emitFunc(buf *bytes.Buffer, p *Procedure) {
	fmt.Fprintf(buf, "// Random%s returns a pseudo-random %s built from draws on r.\n", p.TypeName, p.TypeName)
	buf.WriteString(signature(p))
	buf.WriteString(" {\n")

	if sel, ok := p.Body.(Select); ok {
		fmt.Fprintf(buf, "switch rng.Uint64n(r, %d) {\n", sel.Count)
		for i, arm := range sel.Arms {
			if i == len(sel.Arms)-1 {
				buf.WriteString("default:\n")
			} else {
				fmt.Fprintf(buf, "case %d:\n", i)
			}
			buf.WriteString("return ")
			writeExpr(buf, arm)
			buf.WriteString("\n")
		}
		buf.WriteString("}\n")
	} else {
		buf.WriteString("return ")
		writeExpr(buf, p.Body)
		buf.WriteString("\n")
	}

	buf.WriteString("}\n")
}

func signature(p *Procedure) string {
	var b strings.Builder
	b.WriteString("func Random")
	b.WriteString(p.TypeName)
	if len(p.TypeParams) > 0 {
		b.WriteString("[")
		b.WriteString(strings.Join(p.TypeParams, ", "))
		b.WriteString(" any]")
	}
	b.WriteString("(r rng.Source")
	for _, tp := range p.TypeParams {
		fmt.Fprintf(&b, ", gen%s func(rng.Source) %s", tp, tp)
	}
	b.WriteString(") ")
	b.WriteString(p.TypeName)
	if len(p.TypeParams) > 0 {
		b.WriteString("[")
		b.WriteString(strings.Join(p.TypeParams, ", "))
		b.WriteString("]")
	}
	return b.String()
}

func writeExpr(buf *bytes.Buffer, e Expr) {
	switch v := e.(type) {
	case Draw:
		fmt.Fprintf(buf, "rng.%s(r)", v.Fn)

	case Call:
		fmt.Fprintf(buf, "Random%s(r)", v.TypeName)

	case GenParam:
		fmt.Fprintf(buf, "%s(r)", v.Name)

	case Ptr:
		buf.WriteString("rng.PtrOf(r, ")
		writeGenArg(buf, v.ElemType, v.Elem)
		buf.WriteString(")")

	case Slice:
		buf.WriteString("rng.SliceOf(r, ")
		writeGenArg(buf, v.ElemType, v.Elem)
		buf.WriteString(")")

	case Map:
		buf.WriteString("rng.MapOf(r, ")
		writeGenArg(buf, v.KeyType, v.Key)
		buf.WriteString(", ")
		writeGenArg(buf, v.ElemType, v.Elem)
		buf.WriteString(")")

	case Array:
		fmt.Fprintf(buf, "func() [%d]%s {\nvar out [%d]%s\nfor i := range out {\nout[i] = ", v.Len, v.ElemType, v.Len, v.ElemType)
		writeExpr(buf, v.Elem)
		buf.WriteString("\n}\nreturn out\n}()")

	case Composite:
		buf.WriteString(v.TypeName)
		if len(v.Elems) == 0 {
			buf.WriteString("{}")
			return
		}
		if v.Keyed() {
			buf.WriteString("{\n")
			for _, elem := range v.Elems {
				buf.WriteString(elem.Key)
				buf.WriteString(": ")
				writeExpr(buf, elem.Value)
				buf.WriteString(",\n")
			}
			buf.WriteString("}")
			return
		}
		buf.WriteString("{")
		for i, elem := range v.Elems {
			if i > 0 {
				buf.WriteString(", ")
			}
			writeExpr(buf, elem.Value)
		}
		buf.WriteString("}")

	case Name:
		buf.WriteString(v.Ident)

	case Select:
		// Selects only appear as a whole function body; emitFunc
		// handles them. Reaching this is an engine bug.
		panic("derive: select node in expression position")

	default:
		panic(fmt.Sprintf("derive: unknown expression node %T", e))
	}
}

// writeGenArg renders a generator argument for an rng combinator. Draws,
// delegated calls and type parameter generators are already functions of
// the right shape and are passed point-free; anything else is wrapped in
// a closure.
func writeGenArg(buf *bytes.Buffer, elemType string, e Expr) {
	switch v := e.(type) {
	case Draw:
		fmt.Fprintf(buf, "rng.%s", v.Fn)
	case Call:
		fmt.Fprintf(buf, "Random%s", v.TypeName)
	case GenParam:
		buf.WriteString(v.Name)
	default:
		fmt.Fprintf(buf, "func(r rng.Source) %s {\nreturn ", elemType)
		writeExpr(buf, e)
		buf.WriteString("\n}")
	}
}
