package config

import (
	"os"

	"github.com/pelletier/go-toml"
)

const (
	Debug        = true
	BuildVersion = "v0.3.1-BUILD_VERSION"
)

type Custom struct {
	Scanner struct {
		Curve     string `toml:"curve"`
		Workers   int    `toml:"workers"`
		CacheSize int64  `toml:"cache-size"`
	} `toml:"scanner"`
	Storage struct {
		ValueLogGC bool `toml:"value-log-gc"`
	} `toml:"storage"`
	RPC struct {
		Port    int  `toml:"port"`
		Runtime bool `toml:"runtime"`
	} `toml:"rpc"`
}

func Initialize(file string) (*Custom, error) {
	f, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	var config Custom
	err = toml.Unmarshal(f, &config)
	if err != nil {
		return nil, err
	}
	fillDefaults(&config)
	return &config, nil
}

// Default is the configuration used when no file is given.
func Default() *Custom {
	var config Custom
	fillDefaults(&config)
	return &config
}

func fillDefaults(config *Custom) {
	if config.Scanner.Curve == "" {
		config.Scanner.Curve = "secp256k1"
	}
	if config.Scanner.Workers == 0 {
		config.Scanner.Workers = 4
	}
	if config.Scanner.CacheSize == 0 {
		config.Scanner.CacheSize = 1 << 20
	}
	if config.RPC.Port == 0 {
		config.RPC.Port = 8239
	}
}
