package output_test

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"sync"
	"testing"

	. "github.com/onsi/gomega"

	output "github.com/toejough/typeguard/checkgen/run/6_output"
)

const generatedCode = `// Code generated by checkgen. DO NOT EDIT.

package calc

import (
	"github.com/toejough/typeguard"
)

func CheckedMultiply(args ...any) (r0 int, err error) {
	results, err := checkedMultiplyFunc.Call(args...)
	if err != nil {
		return r0, err
	}

	r0, _ = results[0].(int)

	return r0, err
}

var checkedMultiplyFunc = typeguard.MustWrap(Multiply,
	typeguard.WithName("calc.Multiply"),
	typeguard.Named("x", "y"),
)
`

func TestFileName(t *testing.T) {
	t.Parallel()

	cases := []struct {
		prefix, goFile, pkgName, want string
	}{
		{"Checked", "calc.go", "calc", "generated_checked_calc.go"},
		{"Checked", "calc_test.go", "calc", "generated_checked_calc_test.go"},
		{"Checked", "calc_test.go", "calc_test", "generated_checked_calc_test.go"},
		{"Must", "", "calc", "generated_must_calc.go"},
		{"Checked", "", "calc_test", "generated_checked_calc_test.go"},
	}

	for _, tc := range cases {
		t.Run(tc.want, func(t *testing.T) {
			t.Parallel()
			g := NewWithT(t)

			g.Expect(output.FileName(tc.prefix, tc.goFile, tc.pkgName)).To(Equal(tc.want))
		})
	}
}

func TestWriteGeneratedCode(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fileSys := newMemFS()

	var out bytes.Buffer

	err := output.WriteGeneratedCode(generatedCode, "generated_checked_calc.go", fileSys, &out)

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(out.String()).To(ContainSubstring("generated_checked_calc.go written successfully."))

	written := fileSys.contents("generated_checked_calc.go")
	g.Expect(written).To(ContainSubstring("var checkedMultiplyFunc = typeguard.MustWrap(Multiply,"))
	g.Expect(written).To(ContainSubstring("func CheckedMultiply(args ...any) (r0 int, err error)"))
}

func TestWriteGeneratedCode_WriteFails(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fileSys := newMemFS()
	fileSys.writeErr = errors.New("disk full")

	var out bytes.Buffer

	err := output.WriteGeneratedCode(generatedCode, "generated_checked_calc.go", fileSys, &out)

	g.Expect(err).To(MatchError(ContainSubstring("error writing generated_checked_calc.go: disk full")))
}

func TestReorder_FallsBackOnInvalidCode(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	var out bytes.Buffer

	got := output.Reorder("package calc\n\nfunc {", "broken.go", &out)

	g.Expect(got).To(Equal("package calc\n\nfunc {"))
	g.Expect(out.String()).To(ContainSubstring("Warning: failed to reorder broken.go"))
}

func TestDiff_NewFile(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	var out bytes.Buffer

	err := output.Diff(generatedCode, "generated_checked_calc.go", newMemFS(), &out)

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(out.String()).To(ContainSubstring("+++ generated_checked_calc.go"))
	g.Expect(out.String()).To(ContainSubstring("+func CheckedMultiply(args ...any) (r0 int, err error) {"))
}

func TestDiff_UpToDate(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fileSys := newMemFS()

	var out bytes.Buffer

	g.Expect(output.WriteGeneratedCode(generatedCode, "generated_checked_calc.go", fileSys, &out)).To(Succeed())

	out.Reset()

	err := output.Diff(generatedCode, "generated_checked_calc.go", fileSys, &out)

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(out.String()).To(ContainSubstring("generated_checked_calc.go is up to date."))
	g.Expect(fileSys.writes).To(Equal(1), "diff never writes")
}

func TestDiff_Changed(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fileSys := newMemFS()
	fileSys.files["generated_checked_calc.go"] = []byte("package calc\n")

	var out bytes.Buffer

	err := output.Diff(generatedCode, "generated_checked_calc.go", fileSys, &out)

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(out.String()).To(ContainSubstring("--- generated_checked_calc.go"))
	g.Expect(out.String()).To(ContainSubstring("+// Code generated by checkgen. DO NOT EDIT."))
	g.Expect(fileSys.writes).To(BeZero())
}

func TestDiff_ReadFails(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fileSys := newMemFS()
	fileSys.readErr = fs.ErrPermission

	err := output.Diff(generatedCode, "generated_checked_calc.go", fileSys, &bytes.Buffer{})

	g.Expect(err).To(MatchError(fs.ErrPermission))
}

type memFS struct {
	mu       sync.Mutex
	files    map[string][]byte
	writes   int
	readErr  error
	writeErr error
}

func (m *memFS) ReadFile(name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.readErr != nil {
		return nil, m.readErr
	}

	data, ok := m.files[name]
	if !ok {
		return nil, fs.ErrNotExist
	}

	return data, nil
}

func (m *memFS) WriteFile(name string, data []byte, _ os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.writeErr != nil {
		return m.writeErr
	}

	m.files[name] = data
	m.writes++

	return nil
}

func (m *memFS) contents(name string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return string(m.files[name])
}

func newMemFS() *memFS {
	return &memFS{files: make(map[string][]byte)}
}
