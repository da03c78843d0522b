// Package calc is a fixture for package loading.
package calc

// Multiply returns x times y.
func Multiply(x, y int) int {
	return x * y
}
