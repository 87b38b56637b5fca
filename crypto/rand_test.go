package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadRand(t *testing.T) {
	assert := assert.New(t)

	a := make([]byte, 32)
	b := make([]byte, 32)
	ReadRand(a)
	ReadRand(b)
	assert.NotEqual(a, b)

	// short buffers like nonces and tags are below the skew threshold and
	// must never trip it
	for _, n := range []int{1, 4, 8, 16, 23} {
		for i := 0; i < 64; i++ {
			ReadRand(make([]byte, n))
		}
	}
}
