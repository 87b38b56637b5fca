package main

import (
	"fmt"
	"os"

	"github.com/sipprotocol/sip/config"
	_ "github.com/sipprotocol/sip/crypto/ed25519"
	_ "github.com/sipprotocol/sip/crypto/secp256k1"
	"github.com/sipprotocol/sip/logger"
	"github.com/urfave/cli/v2"
)

func main() {
	app := cli.NewApp()
	app.Name = "sip"
	app.Usage = "Stealth addresses, hidden amounts and auditable disclosure for public chains."
	app.Version = config.BuildVersion
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "curve",
			Aliases: []string{"c"},
			Value:   "secp256k1",
			Usage:   "the elliptic curve, secp256k1 or ed25519",
		},
	}
	app.EnableBashCompletion = true
	app.Commands = []*cli.Command{
		{
			Name:    "daemon",
			Aliases: []string{"d"},
			Usage:   "Start the announcement relay daemon",
			Action:  daemonCmd,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "dir",
					Aliases: []string{"d"},
					Usage:   "the data directory",
				},
				&cli.IntFlag{
					Name:    "log",
					Aliases: []string{"l"},
					Value:   logger.INFO,
					Usage:   "the log level",
				},
				&cli.StringFlag{
					Name:  "filter",
					Usage: "the RE2 regex pattern to filter log",
				},
			},
		},
		{
			Name:   "createmetaaddress",
			Usage:  "Create a new stealth meta address",
			Action: createMetaAddressCmd,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "chain",
					Value: "ethereum",
					Usage: "the chain identifier",
				},
				&cli.StringFlag{
					Name:  "label",
					Usage: "an optional human readable label",
				},
				&cli.StringFlag{
					Name:  "seed",
					Usage: "the deterministic seed `HEX` instead of random keys",
				},
			},
		},
		{
			Name:   "decodemetaaddress",
			Usage:  "Decode a meta address as public spend key and public view key",
			Action: decodeMetaAddressCmd,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "address",
					Aliases: []string{"a"},
					Usage:   "the sip: meta address",
				},
			},
		},
		{
			Name:   "derivestealth",
			Usage:  "Derive a fresh one-time stealth address for a recipient",
			Action: deriveStealthCmd,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "address",
					Aliases: []string{"a"},
					Usage:   "the recipient sip: meta address",
				},
			},
		},
		{
			Name:   "checkstealth",
			Usage:  "Check whether an announcement belongs to the given keys",
			Action: checkStealthCmd,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "announcement",
					Usage: "the announcement `HEX`, address || viewTag || ephemeral",
				},
				&cli.StringFlag{
					Name:  "spend",
					Usage: "the private spend key `HEX`",
				},
				&cli.StringFlag{
					Name:  "view",
					Usage: "the private view key `HEX`",
				},
			},
		},
		{
			Name:   "recoverkey",
			Usage:  "Recover the one-time private key for an owned announcement",
			Action: recoverKeyCmd,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "announcement",
					Usage: "the announcement `HEX`, address || viewTag || ephemeral",
				},
				&cli.StringFlag{
					Name:  "spend",
					Usage: "the private spend key `HEX`",
				},
				&cli.StringFlag{
					Name:  "view",
					Usage: "the private view key `HEX`",
				},
			},
		},
		{
			Name:   "commit",
			Usage:  "Commit to an amount with a fresh blinding factor",
			Action: commitCmd,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "amount",
					Usage: "the decimal amount to commit",
				},
			},
		},
		{
			Name:   "verifycommit",
			Usage:  "Verify a commitment opening",
			Action: verifyCommitCmd,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "commitment",
					Usage: "the commitment `HEX`",
				},
				&cli.StringFlag{
					Name:  "amount",
					Usage: "the claimed decimal amount",
				},
				&cli.StringFlag{
					Name:  "blinding",
					Usage: "the blinding factor `HEX`",
				},
			},
		},
		{
			Name:   "createviewingkey",
			Usage:  "Create a master viewing key and its derived keys",
			Action: createViewingKeyCmd,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "label",
					Usage: "an optional human readable label",
				},
			},
		},
		{
			Name:   "encrypt",
			Usage:  "Encrypt a memo under a viewing key",
			Action: encryptCmd,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "key",
					Usage: "the viewing private key `HEX`",
				},
				&cli.StringFlag{
					Name:  "memo",
					Usage: "the plaintext memo",
				},
			},
		},
		{
			Name:   "decrypt",
			Usage:  "Decrypt a memo with a viewing key",
			Action: decryptCmd,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "key",
					Usage: "the viewing private key `HEX`",
				},
				&cli.StringFlag{
					Name:  "payload",
					Usage: "the encrypted payload `HEX`, nonce || ciphertext",
				},
			},
		},
		{
			Name:   "scan",
			Usage:  "Scan a file of announcements against the given keys",
			Action: scanCmd,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "file",
					Usage: "the JSON announcements file",
				},
				&cli.StringFlag{
					Name:  "spend",
					Usage: "the private spend key `HEX`",
				},
				&cli.StringFlag{
					Name:  "view",
					Usage: "the private view key `HEX`",
				},
				&cli.IntFlag{
					Name:  "workers",
					Usage: "the scan parallelism, default all CPUs",
				},
			},
		},
		{
			Name:   "decodeintent",
			Usage:  "Decode a 270 byte intent record as JSON",
			Action: decodeIntentCmd,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "raw",
					Usage: "the hex encoded intent record",
				},
			},
		},
	}
	err := app.Run(os.Args)
	if err != nil {
		fmt.Println(err)
	}
}
