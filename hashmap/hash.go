package hashmap

import (
	"unsafe"

	"github.com/spaolacci/murmur3"
)

// StringHash hashes s with 64-bit murmur3. The byte view over the string
// is constructed without copying; murmur3 does not retain it.
func StringHash(s string) uint64 {
	if len(s) == 0 {
		return murmur3.Sum64(nil)
	}
	return murmur3.Sum64(unsafe.Slice(unsafe.StringData(s), len(s)))
}

// StringEqual is byte equality on string keys.
func StringEqual(a, b string) bool {
	return a == b
}
