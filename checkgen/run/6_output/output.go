// Package output writes generated code, or reports how it differs from what
// is already on disk.
package output

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/akedrou/textdiff"
	"github.com/fatih/color"
	"github.com/toejough/go-reorder"
)

// FileSystem reads and writes generated files.
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm os.FileMode) error
}

// Diff prints a unified diff between the file on disk and code, without
// writing anything. A missing file diffs as empty.
func Diff(code string, filename string, fileSys FileSystem, out io.Writer) error {
	existing, err := fileSys.ReadFile(filename)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error reading %s: %w", filename, err)
	}

	diff := textdiff.Unified(filename, filename, string(existing), Reorder(code, filename, out))
	if diff == "" {
		_, _ = color.New(color.FgGreen).Fprintf(out, "%s is up to date.\n", filename)
		return nil
	}

	added, removed := color.New(color.FgGreen), color.New(color.FgRed)

	for line := range strings.Lines(diff) {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			_, _ = fmt.Fprint(out, line)
		case strings.HasPrefix(line, "+"):
			_, _ = added.Fprint(out, line)
		case strings.HasPrefix(line, "-"):
			_, _ = removed.Fprint(out, line)
		default:
			_, _ = fmt.Fprint(out, line)
		}
	}

	return nil
}

// FileName returns the name of the file generated for the wrappers named with
// prefix, from the file carrying the go:generate directive. The result is a
// test file when either that file or its package is.
func FileName(prefix string, goFile string, pkgName string) string {
	base := strings.TrimSuffix(goFile, ".go")
	if base == "" {
		base = pkgName
	}

	isTest := strings.HasSuffix(base, "_test") || strings.HasSuffix(pkgName, "_test")
	base = strings.TrimSuffix(base, "_test")

	name := "generated_" + strings.ToLower(prefix) + "_" + base
	if isTest {
		name += "_test"
	}

	return name + ".go"
}

// Reorder orders declarations according to project conventions. If that
// fails, it warns on out and returns code unchanged.
func Reorder(code string, filename string, out io.Writer) string {
	reordered, err := reorder.Source(code)
	if err != nil {
		_, _ = color.New(color.FgYellow).Fprintf(out, "Warning: failed to reorder %s: %v\n", filename, err)

		return code
	}

	return reordered
}

// WriteGeneratedCode reorders code and writes it to filename.
func WriteGeneratedCode(code string, filename string, fileSys FileSystem, out io.Writer) error {
	const generatedFilePermissions = 0o600

	err := fileSys.WriteFile(filename, []byte(Reorder(code, filename, out)), generatedFilePermissions)
	if err != nil {
		return fmt.Errorf("error writing %s: %w", filename, err)
	}

	_, _ = color.New(color.FgGreen).Fprintf(out, "%s written successfully.\n", filename)

	return nil
}
