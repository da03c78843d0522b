// Package load resolves a package pattern to its name and import path, and parses its
// source files into DST.
package load

import (
	"errors"
	"fmt"
	"go/token"
	"strings"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
	"golang.org/x/tools/go/packages"
)

// Package is a parsed Go package.
type Package struct {
	Name    string // package clause name, e.g. "calc"
	PkgPath string // import path, e.g. "example.com/calc"
	Files   []*dst.File
}

// Exported variables.
var (
	ErrNoPackagesFound = errors.New("no packages found")
)

// PackageDST resolves pattern (a directory like "." or "./calc", or an import
// path) with go/packages and parses its non-test .go files into DST.
func PackageDST(pattern string) (Package, error) {
	cfg := &packages.Config{Mode: packages.NeedName | packages.NeedFiles}

	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return Package{}, fmt.Errorf("failed to load package %q: %w", pattern, err)
	}

	if len(pkgs) == 0 {
		return Package{}, fmt.Errorf("%w: %q", ErrNoPackagesFound, pattern)
	}

	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		return Package{}, fmt.Errorf("failed to load package %q: %v", pattern, pkg.Errors[0])
	}

	if len(pkg.GoFiles) == 0 {
		return Package{}, fmt.Errorf("%w: no .go files for %q", ErrNoPackagesFound, pattern)
	}

	files, err := ParseFiles(pkg.GoFiles, nil)
	if err != nil {
		return Package{}, err
	}

	return Package{
		Name:    pkg.Name,
		PkgPath: pkg.PkgPath,
		Files:   files,
	}, nil
}

// ParseFiles parses the named files into DST. When read is nil the files are
// read from disk; otherwise read supplies their contents. Test files are
// skipped.
func ParseFiles(names []string, read func(name string) ([]byte, error)) ([]*dst.File, error) {
	dec := decorator.NewDecorator(token.NewFileSet())

	files := make([]*dst.File, 0, len(names))

	for _, name := range names {
		if strings.HasSuffix(name, "_test.go") {
			continue
		}

		var src any

		if read != nil {
			data, err := read(name)
			if err != nil {
				return nil, fmt.Errorf("failed to read %s: %w", name, err)
			}

			src = data
		}

		file, err := dec.ParseFile(name, src, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}

		files = append(files, file)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no non-test .go files among %d file(s)", ErrNoPackagesFound, len(names))
	}

	return files, nil
}
