package basex

import "math"

var log256 = math.Log(256)

// MaxEncodedLen returns the capacity of the digit buffer used to encode n
// significant bytes in the given base: ceil(n*log(256)/log(base)) + 1.
//
// The extra digit absorbs float64 rounding of the ratio. The rounding error
// of n*ratio stays below one for any n under 2^48, far beyond any slice that
// fits in memory.
func MaxEncodedLen(n, base int) int {
	if n <= 0 {
		return 0
	}
	ratio := log256 / math.Log(float64(base))
	return int(math.Ceil(float64(n)*ratio)) + 1
}

// MaxDecodedLen returns the capacity of the byte buffer used to decode n
// significant symbols of the given base: ceil(n*log(base)/log(256)) + 1.
func MaxDecodedLen(n, base int) int {
	if n <= 0 {
		return 0
	}
	ratio := math.Log(float64(base)) / log256
	return int(math.Ceil(float64(n)*ratio)) + 1
}
