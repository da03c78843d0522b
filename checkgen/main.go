// checkgen generates typed checked-call wrappers for Go functions.
// To use it, install it with `go install github.com/toejough/typeguard/checkgen@latest`
// and add a `//go:generate checkgen <Func>` comment next to the functions to wrap. For each
// matching function it generates a package-level typeguard.Func that knows the real parameter
// names, and a typed `Checked<Func>(args ...any)` wrapper that validates args before the call.
// The wrappers are placed in generated_<prefix>_<file>.go, in the package running go generate.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/toejough/typeguard/checkgen/run"
	load "github.com/toejough/typeguard/checkgen/run/2_load"
)

// main is the entry point of the checkgen tool.
func main() {
	if os.Args == nil {
		return
	}

	err := run.Run(os.Args, os.Getenv, &realFileSystem{}, &realPackageLoader{}, color.Output)
	if err != nil {
		_, _ = color.New(color.FgRed).Fprintf(color.Error, "Error: %v\n", err)
		os.Exit(1)
	}
}

// realFileSystem implements FileSystem using os package.
type realFileSystem struct{}

// ReadFile reads the file named by name and returns the contents.
func (fs *realFileSystem) ReadFile(name string) ([]byte, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", name, err)
	}

	return data, nil
}

// WriteFile writes data to the file named by name.
func (fs *realFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	err := os.WriteFile(name, data, perm)
	if err != nil {
		return fmt.Errorf("failed to write file %s: %w", name, err)
	}

	return nil
}

// realPackageLoader implements PackageLoader using go/packages and DST parsing.
type realPackageLoader struct{}

// Load resolves pattern and parses the package's non-test files.
func (pl *realPackageLoader) Load(pattern string) (load.Package, error) {
	return load.PackageDST(pattern)
}
