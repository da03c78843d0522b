// Package astutil renders DST type expressions back to Go source.
package astutil

import (
	"fmt"
	"strings"

	"github.com/dave/dst"
)

// Qualifier rewrites a bare identifier in a type expression, e.g. to prefix
// it with a package name when the rendered code lives in another package.
type Qualifier func(ident string) string

// IsBuiltinType reports whether name is a predeclared Go type.
func IsBuiltinType(name string) bool {
	switch name {
	case "any", "bool", "byte", "comparable", "complex64", "complex128", "error",
		"float32", "float64", "int", "int8", "int16", "int32", "int64",
		"rune", "string", "uint", "uint8", "uint16", "uint32", "uint64", "uintptr":
		return true
	default:
		return false
	}
}

// PackageQualifiers collects the package names a type expression refers to,
// e.g. "time" for time.Duration.
func PackageQualifiers(expr dst.Expr) []string {
	var names []string

	dst.Inspect(expr, func(node dst.Node) bool {
		sel, ok := node.(*dst.SelectorExpr)
		if !ok {
			return true
		}

		if ident, ok := sel.X.(*dst.Ident); ok {
			names = append(names, ident.Name)
		}

		return false
	})

	return names
}

// StringifyExpr converts a DST expression to its string representation.
func StringifyExpr(expr dst.Expr) string {
	return QualifyExpr(expr, nil)
}

// QualifyExpr is StringifyExpr with every bare non-builtin identifier passed
// through qualify. A nil qualify leaves identifiers as they are.
//
//nolint:cyclop,funlen // Type-switch dispatcher handling all DST expression types; complexity is inherent
func QualifyExpr(expr dst.Expr, qualify Qualifier) string {
	if expr == nil {
		return ""
	}

	render := func(inner dst.Expr) string { return QualifyExpr(inner, qualify) }

	switch typedExpr := expr.(type) {
	case *dst.Ident:
		if qualify == nil || IsBuiltinType(typedExpr.Name) {
			return typedExpr.Name
		}

		return qualify(typedExpr.Name)
	case *dst.BasicLit:
		return typedExpr.Value
	case *dst.SelectorExpr:
		// the package name is not a type; leave it alone.
		return StringifyExpr(typedExpr.X) + "." + typedExpr.Sel.Name
	case *dst.StarExpr:
		return "*" + render(typedExpr.X)
	case *dst.ArrayType:
		if typedExpr.Len != nil {
			return "[" + StringifyExpr(typedExpr.Len) + "]" + render(typedExpr.Elt)
		}

		return "[]" + render(typedExpr.Elt)
	case *dst.MapType:
		return "map[" + render(typedExpr.Key) + "]" + render(typedExpr.Value)
	case *dst.ChanType:
		switch typedExpr.Dir {
		case dst.SEND:
			return "chan<- " + render(typedExpr.Value)
		case dst.RECV:
			return "<-chan " + render(typedExpr.Value)
		default:
			return "chan " + render(typedExpr.Value)
		}
	case *dst.InterfaceType:
		if typedExpr.Methods == nil || len(typedExpr.Methods.List) == 0 {
			return "interface{}"
		}

		return "interface{ " + strings.Join(fieldTypes(typedExpr.Methods.List, render), "; ") + " }"
	case *dst.StructType:
		return stringifyStructType(typedExpr, render)
	case *dst.FuncType:
		return "func" + stringifySignature(typedExpr, render)
	case *dst.Ellipsis:
		return "..." + render(typedExpr.Elt)
	case *dst.IndexExpr:
		return render(typedExpr.X) + "[" + render(typedExpr.Index) + "]"
	case *dst.IndexListExpr:
		indices := make([]string, len(typedExpr.Indices))
		for i, idx := range typedExpr.Indices {
			indices[i] = render(idx)
		}

		return render(typedExpr.X) + "[" + strings.Join(indices, ", ") + "]"
	case *dst.ParenExpr:
		return "(" + render(typedExpr.X) + ")"
	default:
		return fmt.Sprintf("%T", expr)
	}
}

// ExpandFieldListTypes expands a field list into individual type strings.
// For fields with multiple names (e.g., "a, b int"), outputs the type once per name.
// For unnamed fields, outputs the type once.
func ExpandFieldListTypes(fields []*dst.Field, typeFormatter func(dst.Expr) string) []string {
	var parts []string

	for _, f := range fields {
		typeStr := typeFormatter(f.Type)

		count := len(f.Names)
		if count == 0 {
			count = 1
		}

		for range count {
			parts = append(parts, typeStr)
		}
	}

	return parts
}

// fieldTypes renders interface methods and embeds.
func fieldTypes(fields []*dst.Field, render func(dst.Expr) string) []string {
	parts := make([]string, 0, len(fields))

	for _, method := range fields {
		funcType, ok := method.Type.(*dst.FuncType)
		if !ok || len(method.Names) == 0 {
			parts = append(parts, render(method.Type))
			continue
		}

		parts = append(parts, method.Names[0].Name+stringifySignature(funcType, render))
	}

	return parts
}

// stringifySignature renders a function type's parameters and results,
// without the func keyword.
func stringifySignature(funcType *dst.FuncType, render func(dst.Expr) string) string {
	var buf strings.Builder

	buf.WriteString("(")

	if funcType.Params != nil {
		buf.WriteString(strings.Join(ExpandFieldListTypes(funcType.Params.List, render), ", "))
	}

	buf.WriteString(")")

	if funcType.Results == nil {
		return buf.String()
	}

	resultParts := ExpandFieldListTypes(funcType.Results.List, render)

	switch len(resultParts) {
	case 0:
	case 1:
		buf.WriteString(" " + resultParts[0])
	default:
		buf.WriteString(" (" + strings.Join(resultParts, ", ") + ")")
	}

	return buf.String()
}

// stringifyStructType converts a DST StructType to its string representation,
// preserving all field information including names, types, and tags.
func stringifyStructType(structType *dst.StructType, render func(dst.Expr) string) string {
	if structType.Fields == nil || len(structType.Fields.List) == 0 {
		return "struct{}"
	}

	fields := make([]string, 0, len(structType.Fields.List))

	for _, field := range structType.Fields.List {
		var fieldStr strings.Builder

		if len(field.Names) > 0 {
			nameStrs := make([]string, len(field.Names))
			for i, name := range field.Names {
				nameStrs[i] = name.Name
			}

			fieldStr.WriteString(strings.Join(nameStrs, ", "))
			fieldStr.WriteString(" ")
		}

		fieldStr.WriteString(render(field.Type))

		if field.Tag != nil {
			fieldStr.WriteString(" ")
			fieldStr.WriteString(field.Tag.Value)
		}

		fields = append(fields, fieldStr.String())
	}

	return fmt.Sprintf("struct{ %s }", strings.Join(fields, "; "))
}
