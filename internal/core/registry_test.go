package core_test

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	. "github.com/onsi/gomega"
	"pgregory.net/rapid"

	"github.com/toejough/typeguard/internal/core"
)

func TestRegistry_CallDispatchesByName(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	registry := core.NewRegistry()
	g.Expect(registry.Register("multiply", multiply, core.Named("x", "y"))).To(Succeed())

	results, err := registry.Call("multiply", 3, 4)

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(results).To(Equal([]any{12}))

	_, err = registry.Call("multiply", "hello", 3)

	var mismatch *core.TypeMismatchError

	g.Expect(errors.As(err, &mismatch)).To(BeTrue())
	g.Expect(mismatch.Func).To(Equal("multiply"), "the registered name is used in errors")
	g.Expect(mismatch.Param).To(Equal("x"))
}

func TestRegistry_DuplicateName(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	registry := core.NewRegistry()
	g.Expect(registry.Register("multiply", multiply)).To(Succeed())
	g.Expect(registry.Register("multiply", multiply)).To(MatchError(core.ErrDuplicateFunc))
}

func TestRegistry_InvalidFunction(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	registry := core.NewRegistry()

	err := registry.Register("nope", 42)

	g.Expect(err).To(MatchError(core.ErrNotFunc))
	g.Expect(err.Error()).To(ContainSubstring(`registering "nope"`))
	g.Expect(registry.Names()).To(BeEmpty())
}

func TestRegistry_OptionsApplyToEveryFunction(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	registry := core.NewRegistry(core.WithCoercion())
	g.Expect(registry.Register("multiply", multiply)).To(Succeed())

	results, err := registry.Call("multiply", json.Number("6"), 7.0)

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(results).To(Equal([]any{42}))
}

func TestRegistry_UnknownFunction(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	registry := core.NewRegistry()

	_, err := registry.Call("divide", 1, 2)

	g.Expect(err).To(MatchError(core.ErrUnknownFunc))

	_, ok := registry.Lookup("divide")
	g.Expect(ok).To(BeFalse())
}

func TestRegistry_NamesSorted(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	registry := core.NewRegistry()
	g.Expect(registry.Register("b", multiply)).To(Succeed())
	g.Expect(registry.Register("a", multiply)).To(Succeed())
	g.Expect(registry.Register("c", multiply)).To(Succeed())

	g.Expect(registry.Names()).To(Equal([]string{"a", "b", "c"}))
}

// TestRegistry_ConcurrentAccess_Rapid uses property-based testing to verify
// concurrent registration and calls with randomized access patterns.
func TestRegistry_ConcurrentAccess_Rapid(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		numGoroutines := rapid.IntRange(2, 50).Draw(rt, "numGoroutines")
		registry := core.NewRegistry()

		if err := registry.Register("multiply", multiply); err != nil {
			rt.Fatalf("register: %v", err)
		}

		errs := make([]error, numGoroutines)

		var wg sync.WaitGroup
		wg.Add(numGoroutines)

		for i := range numGoroutines {
			go func(idx int) {
				defer wg.Done()

				if idx%2 == 0 {
					_, errs[idx] = registry.Call("multiply", idx, 2)
					return
				}

				errs[idx] = registry.Register("multiply", multiply)
			}(i)
		}

		wg.Wait()

		for i, err := range errs {
			if i%2 == 0 && err != nil {
				rt.Fatalf("call %d failed: %v", i, err)
			}

			if i%2 == 1 && !errors.Is(err, core.ErrDuplicateFunc) {
				rt.Fatalf("register %d: expected duplicate error, got %v", i, err)
			}
		}
	})
}
