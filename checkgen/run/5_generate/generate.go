// Package generate renders typed checked-call wrappers for detected functions.
package generate

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"go/token"
	"slices"
	"strconv"
	"strings"
	"text/template"
	"unicode"

	astutil "github.com/toejough/typeguard/checkgen/run/0_util"
	detect "github.com/toejough/typeguard/checkgen/run/3_detect"
)

// Options controls what Code generates.
type Options struct {
	// PkgName is the package clause of the generated file.
	PkgName string
	// SourcePkg is the name of the package declaring the functions.
	SourcePkg string
	// SourcePath is the import path of the declaring package. Set it only when
	// PkgName is a different package, e.g. an external test package; the
	// generated code then refers to the functions through an import.
	SourcePath string
	// Prefix is prepended to each function name to name its typed wrapper.
	Prefix string
	// Coerce adds typeguard.WithCoercion to every wrapped function.
	Coerce bool
}

// Exported variables.
var (
	ErrEmptyPrefix = errors.New("prefix must not be empty")
	ErrUnexported  = errors.New("cannot refer to an unexported identifier from another package")
)

// Code returns formatted Go source declaring, for each function, a package
// level checked function and a typed wrapper that calls it:
//
//	var checkedMultiplyFunc = typeguard.MustWrap(Multiply, ...)
//
//	func CheckedMultiply(args ...any) (r0 int, err error)
func Code(funcs []detect.Func, opts Options) (string, error) {
	if opts.Prefix == "" {
		return "", ErrEmptyPrefix
	}

	data := fileData{PkgName: opts.PkgName, Coerce: opts.Coerce}
	imports := map[string]string{typeguardPath: ""}

	external := opts.SourcePath != ""
	if external {
		imports[opts.SourcePath] = importAlias(opts.SourcePath, opts.SourcePkg)
	}

	for _, fn := range funcs {
		if external && !token.IsExported(fn.Name) {
			return "", fmt.Errorf("%w: %s", ErrUnexported, fn.Name)
		}

		fnData, err := newFuncData(fn, opts, imports)
		if err != nil {
			return "", err
		}

		data.Funcs = append(data.Funcs, fnData)
	}

	data.Imports = importLines(imports)

	var buf bytes.Buffer

	err := fileTmpl.Execute(&buf, data)
	if err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return "", fmt.Errorf("failed to format generated code: %w\n%s", err, buf.String())
	}

	return string(formatted), nil
}

// WrapperName returns the name of the typed wrapper generated for name.
func WrapperName(prefix, name string) string {
	return prefix + upperFirst(name)
}

// unexported constants.
const (
	typeguardPath = "github.com/toejough/typeguard"
	fileTemplate = `// Code generated by checkgen. DO NOT EDIT.

package {{.PkgName}}

import (
{{- range .Imports}}
	{{.}}
{{- end}}
)
{{range .Funcs}}
var {{.VarName}} = typeguard.MustWrap({{.Target}},
	typeguard.WithName({{printf "%q" .QualifiedName}}),
{{- if .Names}}
	typeguard.Named({{.Names}}),
{{- end}}
{{- if $.Coerce}}
	typeguard.WithCoercion(),
{{- end}}
)

// {{.WrapperName}} calls {{.Target}} once args have been checked against its
// declared parameter types, and checks its results before returning them.
func {{.WrapperName}}(args ...any) ({{.ResultDecls}}) {
	{{.Assign}} {{.VarName}}.Call(args...)
	if err != nil {
		return {{.ReturnNames}}
	}
{{range .Values}}
	{{.Name}}, _ = results[{{.Index}}].({{.Type}})
{{- end}}
{{- if .ReturnsErr}}

	err, _ = results[{{.ErrIndex}}].(error)
{{- end}}

	return {{.ReturnNames}}
}
{{end}}`
)

// unexported variables.
var (
	fileTmpl = template.Must(template.New("file").Parse(fileTemplate))
)

type fileData struct {
	PkgName string
	Imports []string
	Funcs   []funcData
	Coerce  bool
}

type funcData struct {
	Assign        string
	VarName       string
	WrapperName   string
	Target        string
	QualifiedName string
	Names         string
	ResultDecls   string
	ReturnNames   string
	Values        []valueData
	ReturnsErr    bool
	ErrIndex      int
}

type valueData struct {
	Name  string
	Index int
	Type  string
}

// importAlias returns the alias an import needs, or "" if its default name
// already is name.
func importAlias(importPath, name string) string {
	if detect.ImportName(importPath) == name {
		return ""
	}

	return name
}

func importLines(imports map[string]string) []string {
	paths := make([]string, 0, len(imports))
	for importPath := range imports {
		paths = append(paths, importPath)
	}

	slices.Sort(paths)

	lines := make([]string, len(paths))

	for i, importPath := range paths {
		lines[i] = strconv.Quote(importPath)
		if alias := imports[importPath]; alias != "" {
			lines[i] = alias + " " + lines[i]
		}
	}

	return lines
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}

	runes := []rune(s)
	runes[0] = unicode.ToLower(runes[0])

	return string(runes)
}

func newFuncData(fn detect.Func, opts Options, imports map[string]string) (funcData, error) {
	var (
		qualify    astutil.Qualifier
		unexported []string
	)

	target := fn.Name
	if opts.SourcePath != "" {
		target = opts.SourcePkg + "." + fn.Name
		qualify = func(ident string) string {
			if !token.IsExported(ident) {
				unexported = append(unexported, ident)
			}

			return opts.SourcePkg + "." + ident
		}
	}

	names := make([]string, len(fn.Params))
	for i, param := range fn.Params {
		names[i] = strconv.Quote(param.Name)
	}

	data := funcData{
		VarName:       lowerFirst(opts.Prefix) + upperFirst(fn.Name) + "Func",
		WrapperName:   WrapperName(opts.Prefix, fn.Name),
		Target:        target,
		QualifiedName: opts.SourcePkg + "." + fn.Name,
		Names:         strings.Join(names, ", "),
	}

	results := fn.Results
	if len(results) > 0 && astutil.StringifyExpr(results[len(results)-1]) == "error" {
		data.ReturnsErr = true
		data.ErrIndex = len(results) - 1
		results = results[:len(results)-1]
	}

	decls := make([]string, 0, len(results)+1)
	returns := make([]string, 0, len(results)+1)

	for index, result := range results {
		for _, pkgName := range astutil.PackageQualifiers(result) {
			if importPath, ok := fn.Imports[pkgName]; ok {
				imports[importPath] = importAlias(importPath, pkgName)
			}
		}

		value := valueData{Name: fmt.Sprintf("r%d", index), Index: index, Type: astutil.QualifyExpr(result, qualify)}

		data.Values = append(data.Values, value)
		decls = append(decls, value.Name+" "+value.Type)
		returns = append(returns, value.Name)
	}

	if len(unexported) > 0 {
		return funcData{}, fmt.Errorf("%w: %s returns %s", ErrUnexported, fn.Name, unexported[0])
	}

	data.Assign = "results, err :="
	if len(data.Values) == 0 && !data.ReturnsErr {
		data.Assign = "_, err ="
	}

	data.ResultDecls = strings.Join(append(decls, "err error"), ", ")
	data.ReturnNames = strings.Join(append(returns, "err"), ", ")

	return data, nil
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}

	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])

	return string(runes)
}
