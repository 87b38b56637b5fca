package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitialize(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	err := os.WriteFile(path, []byte(`
[scanner]
curve = "ed25519"
workers = 16

[storage]
value-log-gc = true

[rpc]
port = 9000
`), 0644)
	assert.Nil(err)

	custom, err := Initialize(path)
	assert.Nil(err)
	assert.Equal("ed25519", custom.Scanner.Curve)
	assert.Equal(16, custom.Scanner.Workers)
	assert.Equal(int64(1<<20), custom.Scanner.CacheSize)
	assert.True(custom.Storage.ValueLogGC)
	assert.Equal(9000, custom.RPC.Port)

	_, err = Initialize(filepath.Join(t.TempDir(), "missing.toml"))
	assert.NotNil(err)
}

func TestDefault(t *testing.T) {
	assert := assert.New(t)

	custom := Default()
	assert.Equal("secp256k1", custom.Scanner.Curve)
	assert.Equal(4, custom.Scanner.Workers)
	assert.Equal(8239, custom.RPC.Port)
	assert.False(custom.Storage.ValueLogGC)
}
