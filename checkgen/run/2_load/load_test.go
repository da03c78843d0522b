package load_test

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/dave/dst"
	. "github.com/onsi/gomega"

	load "github.com/toejough/typeguard/checkgen/run/2_load"
)

func TestPackageDST(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	pkg, err := load.PackageDST("./testdata/calc")

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(pkg.Name).To(Equal("calc"))
	g.Expect(pkg.PkgPath).To(HaveSuffix("checkgen/run/2_load/testdata/calc"))
	g.Expect(pkg.Files).To(HaveLen(1), "test files are not parsed")
}

func TestParseFiles_FromReader(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	sources := map[string]string{
		"calc.go":      "package calc\n\nfunc Add(x, y int) int { return x + y }\n",
		"calc_test.go": "package calc\n",
	}

	read := func(name string) ([]byte, error) {
		src, ok := sources[name]
		if !ok {
			return nil, fs.ErrNotExist
		}

		return []byte(src), nil
	}

	files, err := load.ParseFiles([]string{"calc.go", "calc_test.go"}, read)

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(files).To(HaveLen(1))
	g.Expect(files[0].Name.Name).To(Equal("calc"))
	g.Expect(files[0].Decls[0]).To(BeAssignableToTypeOf(&dst.FuncDecl{}))
}

func TestParseFiles_Errors(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	read := func(name string) ([]byte, error) {
		if name == "missing.go" {
			return nil, fs.ErrNotExist
		}

		return []byte("package broken\n\nfunc {"), nil
	}

	_, err := load.ParseFiles([]string{"missing.go"}, read)
	g.Expect(errors.Is(err, fs.ErrNotExist)).To(BeTrue())

	_, err = load.ParseFiles([]string{"broken.go"}, read)
	g.Expect(err).To(MatchError(ContainSubstring("failed to parse broken.go")))

	_, err = load.ParseFiles([]string{"only_test.go"}, read)
	g.Expect(err).To(MatchError(load.ErrNoPackagesFound))
}
