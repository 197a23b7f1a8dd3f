package bipoly

import (
	"errors"
	"fmt"
)

var (
	// ErrConstruction reports a malformed grid: a size that is not a power
	// of two, or a coefficient slice whose length does not match the grid.
	ErrConstruction = errors.New("bipoly: invalid polynomial shape")

	// ErrDomain reports a violated division precondition.
	ErrDomain = errors.New("bipoly: division precondition violated")

	// ErrBounds reports a coefficient index beyond the allocated capacity.
	ErrBounds = errors.New("bipoly: index out of bounds")

	// ErrNotDivisible is returned by DivByVanishing when the numerator does
	// not vanish on the product of the two root-of-unity domains.
	ErrNotDivisible = fmt.Errorf("%w: numerator is not divisible by the vanishing polynomials", ErrDomain)
)
