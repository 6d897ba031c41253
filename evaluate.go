package fractal

// bailoutSquared is the squared escape radius; an orbit escapes once |z| reaches 4.
const bailoutSquared = 16.0

// Evaluate iterates z = z*z + (x+iy) starting from zero and returns the number of
// iterations performed before |z| reached the bailout radius, or maxIter if it never did.
// It has no side effects and is safe for concurrent use.
func Evaluate(x, y float64, maxIter int) int {
	c := complex(x, y)
	var z complex128
	iter := 0
	for real(z)*real(z)+imag(z)*imag(z) < bailoutSquared && iter < maxIter {
		z = z*z + c
		iter++
	}
	return iter
}
