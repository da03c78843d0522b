// Package calc is a small arithmetic package whose functions are called
// through checkgen-generated checked wrappers in its tests.
package calc

import (
	"errors"
	"strings"
)

// Point is a position on a plane.
type Point struct {
	X, Y float64
}

// Exported variables.
var (
	ErrDivideByZero = errors.New("divide by zero")
)

// Divide returns x divided by y.
func Divide(x, y int) (int, error) {
	if y == 0 {
		return 0, ErrDivideByZero
	}

	return x / y, nil
}

// Join joins parts with sep.
func Join(sep string, parts ...string) string {
	return strings.Join(parts, sep)
}

// Multiply returns x times y.
func Multiply(x, y int) int {
	return x * y
}

// Scale multiplies both coordinates of p by factor.
func Scale(p Point, factor float64) Point {
	return Point{X: p.X * factor, Y: p.Y * factor}
}
