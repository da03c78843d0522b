package astutil_test

import (
	"testing"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
	. "github.com/onsi/gomega"

	astutil "github.com/toejough/typeguard/checkgen/run/0_util"
)

func TestStringifyExpr(t *testing.T) {
	t.Parallel()

	cases := []string{
		"int",
		"*time.Duration",
		"[]string",
		"[4]byte",
		"map[string][]int",
		"chan int",
		"<-chan error",
		"chan<- struct{}",
		"func(int, string) (bool, error)",
		"func()",
		"interface{}",
		"interface{ String() string }",
		"struct{ Name string `json:\"name\"`; Age int }",
		"Pair[int, string]",
		"Box[int]",
	}

	for _, src := range cases {
		t.Run(src, func(t *testing.T) {
			t.Parallel()
			g := NewWithT(t)

			g.Expect(astutil.StringifyExpr(parseType(t, src))).To(Equal(src))
		})
	}
}

func TestQualifyExpr(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	qualify := func(ident string) string { return "calc." + ident }

	g.Expect(astutil.QualifyExpr(parseType(t, "map[Key][]*Point"), qualify)).To(Equal("map[calc.Key][]*calc.Point"))
	g.Expect(astutil.QualifyExpr(parseType(t, "func(Point) error"), qualify)).To(Equal("func(calc.Point) error"))
	g.Expect(astutil.QualifyExpr(parseType(t, "time.Duration"), qualify)).To(Equal("time.Duration"))
	g.Expect(astutil.QualifyExpr(parseType(t, "struct{ P Point }"), qualify)).To(Equal("struct{ P calc.Point }"))
}

func TestPackageQualifiers(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(astutil.PackageQualifiers(parseType(t, "map[string]time.Duration"))).To(Equal([]string{"time"}))
	g.Expect(astutil.PackageQualifiers(parseType(t, "func(io.Reader) (*bytes.Buffer, error)"))).
		To(ConsistOf("io", "bytes"))
	g.Expect(astutil.PackageQualifiers(parseType(t, "[]int"))).To(BeEmpty())
}

func TestIsBuiltinType(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(astutil.IsBuiltinType("error")).To(BeTrue())
	g.Expect(astutil.IsBuiltinType("any")).To(BeTrue())
	g.Expect(astutil.IsBuiltinType("Point")).To(BeFalse())
}

func parseType(t *testing.T, src string) dst.Expr {
	t.Helper()

	file, err := decorator.Parse("package p\n\nvar _ " + src + "\n")
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}

	gen, _ := file.Decls[0].(*dst.GenDecl)
	spec, _ := gen.Specs[0].(*dst.ValueSpec)

	return spec.Type
}
