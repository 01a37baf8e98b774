package utils

import (
	"github.com/JamsawColPH/esp8266ndn/std/types/optional"
)

// Version of esp8266ndn, set at link time.
var Version string = "unknown"

// ConvertNonce converts a big-endian nonce field into a number.
func ConvertNonce(nonce []byte) (ret optional.Optional[uint32]) {
	x := uint32(0)
	for _, b := range nonce {
		x = (x << 8) | uint32(b)
	}
	ret.Set(x)
	return ret
}

// If is the ternary operator (eager evaluation)
func If[T any](cond bool, t, f T) T {
	if cond {
		return t
	}
	return f
}
