// Package detect finds the functions a checkgen run generates checked
// wrappers for.
package detect

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/dave/dst"
)

// Func is a top-level function selected for generation.
type Func struct {
	Name     string
	Params   []Param
	Results  []dst.Expr
	Variadic bool
	// Imports maps the package names visible in the declaring file to their
	// import paths.
	Imports map[string]string
}

// Param is one parameter of a selected function. Unnamed and blank
// parameters are named argN.
type Param struct {
	Name string
	Type dst.Expr // element type for a variadic parameter
}

// Exported variables.
var (
	ErrBadPattern = errors.New("bad function pattern")
	ErrNoMatch    = errors.New("no functions match")
)

// Funcs returns the top-level, non-generic functions in files whose names
// match pattern, a doublestar glob such as "Multiply" or "Parse*", sorted by
// name. Methods, init, and main are never selected.
func Funcs(files []*dst.File, pattern string) ([]Func, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("%w: %q", ErrBadPattern, pattern)
	}

	var found []Func

	for _, file := range files {
		imports := fileImports(file)

		for _, decl := range file.Decls {
			funcDecl, ok := decl.(*dst.FuncDecl)
			if !ok || !selectable(funcDecl) {
				continue
			}

			matched, err := doublestar.Match(pattern, funcDecl.Name.Name)
			if err != nil {
				return nil, fmt.Errorf("%w: %q: %w", ErrBadPattern, pattern, err)
			}

			if matched {
				found = append(found, newFunc(funcDecl, imports))
			}
		}
	}

	if len(found) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoMatch, pattern)
	}

	slices.SortFunc(found, func(a, b Func) int { return strings.Compare(a.Name, b.Name) })

	return found, nil
}

// ImportName returns the name a package is referred to by when imported
// without an explicit name. It follows the usual conventions: a trailing
// major version element or gopkg.in version suffix is skipped, and a "go-"
// prefix is dropped.
func ImportName(importPath string) string {
	elems := strings.Split(importPath, "/")

	name := elems[len(elems)-1]
	if len(elems) > 1 && majorVersion.MatchString(name) {
		name = elems[len(elems)-2]
	}

	name = gopkgVersion.ReplaceAllString(name, "")
	name = strings.TrimPrefix(name, "go-")
	name = strings.TrimSuffix(name, ".go")

	return strings.NewReplacer("-", "", ".", "").Replace(name)
}

// unexported variables.
var (
	gopkgVersion = regexp.MustCompile(`\.v[0-9]+$`)
	majorVersion = regexp.MustCompile(`^v[0-9]+$`)
)

func fileImports(file *dst.File) map[string]string {
	imports := make(map[string]string, len(file.Imports))

	for _, spec := range file.Imports {
		importPath, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}

		name := ImportName(importPath)
		if spec.Name != nil {
			name = spec.Name.Name
		}

		imports[name] = importPath
	}

	return imports
}

func newFunc(decl *dst.FuncDecl, imports map[string]string) Func {
	fn := Func{Name: decl.Name.Name, Imports: imports}

	for _, field := range decl.Type.Params.List {
		fieldType := field.Type
		if ellipsis, ok := fieldType.(*dst.Ellipsis); ok {
			fn.Variadic = true
			fieldType = ellipsis.Elt
		}

		if len(field.Names) == 0 {
			fn.Params = append(fn.Params, Param{Name: fmt.Sprintf("arg%d", len(fn.Params)), Type: fieldType})
			continue
		}

		for _, name := range field.Names {
			paramName := name.Name
			if paramName == "_" {
				paramName = fmt.Sprintf("arg%d", len(fn.Params))
			}

			fn.Params = append(fn.Params, Param{Name: paramName, Type: fieldType})
		}
	}

	if decl.Type.Results != nil {
		for _, field := range decl.Type.Results.List {
			count := max(len(field.Names), 1)
			for range count {
				fn.Results = append(fn.Results, field.Type)
			}
		}
	}

	return fn
}

func selectable(decl *dst.FuncDecl) bool {
	if decl.Recv != nil || decl.Type.TypeParams != nil {
		return false
	}

	return decl.Name.Name != "init" && decl.Name.Name != "main" && decl.Name.Name != "_"
}
