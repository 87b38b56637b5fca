package crypto

import (
	"crypto/rand"
	"fmt"
)

// ReadRand fills buf from the system entropy source. Key material must never
// be generated from a degraded source, so any short read or grossly skewed
// output aborts instead of returning weak bytes.
func ReadRand(buf []byte) {
	if len(buf) == 0 {
		panic(buf)
	}
	n, err := rand.Read(buf)
	if err != nil || len(buf) != n {
		panic(err)
	}
	// The skew check needs enough samples to mean anything; in a short
	// buffer a repeated byte is expected, not evidence of a broken source.
	if len(buf) < 24 {
		return
	}
	set := make(map[byte]int)
	for _, b := range buf {
		set[b] += 1
	}
	for k, v := range set {
		if v < len(buf)/3 {
			continue
		}
		panic(fmt.Errorf("entropy not enough %d %d", k, v))
	}
}
