package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/sipprotocol/sip/common"
	"github.com/sipprotocol/sip/config"
	"github.com/sipprotocol/sip/crypto"
	"github.com/sipprotocol/sip/logger"
	"github.com/sipprotocol/sip/pedersen"
	"github.com/sipprotocol/sip/rpc"
	"github.com/sipprotocol/sip/stealth"
	"github.com/sipprotocol/sip/storage"
	"github.com/sipprotocol/sip/viewing"
	"github.com/urfave/cli/v2"
)

func daemonCmd(c *cli.Context) error {
	runtime.GOMAXPROCS(runtime.NumCPU())

	logger.SetLevel(c.Int("log"))
	err := logger.SetFilter(c.String("filter"))
	if err != nil {
		return err
	}

	custom, err := config.Initialize(c.String("dir") + "/config.toml")
	if os.IsNotExist(err) {
		custom = config.Default()
	} else if err != nil {
		return err
	}

	store, err := storage.NewBadgerStore(custom, c.String("dir"))
	if err != nil {
		return err
	}
	defer store.Close()

	logger.Printf("sip daemon %s rpc :%d\n", config.BuildVersion, custom.RPC.Port)
	return rpc.StartHTTP(store, custom.RPC.Port)
}

func createMetaAddressCmd(c *cli.Context) error {
	curve, err := crypto.CurveByName(c.String("curve"))
	if err != nil {
		return err
	}

	var meta *stealth.MetaAddress
	var spend, view crypto.PrivateKey
	if s := c.String("seed"); s != "" {
		seed, err := crypto.DecodeHex(s)
		if err != nil {
			return err
		}
		meta, spend, view, err = stealth.NewMetaAddressFromSeed(curve, c.String("chain"), seed)
		if err != nil {
			return err
		}
	} else {
		meta, spend, view = stealth.GenerateMetaAddress(curve, c.String("chain"))
	}
	meta.Label = c.String("label")

	fmt.Printf("address:\t%s\n", meta.String())
	fmt.Printf("compact:\t%s\n", meta.Compact())
	fmt.Printf("spend key:\t%s\n", spend.String())
	fmt.Printf("view key:\t%s\n", view.String())
	return nil
}

func decodeMetaAddressCmd(c *cli.Context) error {
	meta, err := stealth.MetaAddressFromString(c.String("address"))
	if err != nil {
		return err
	}
	fmt.Printf("chain:\t%s\n", meta.Chain)
	if meta.Label != "" {
		fmt.Printf("label:\t%s\n", meta.Label)
	}
	fmt.Printf("curve:\t%s\n", meta.PublicSpendKey.Curve().Name())
	fmt.Printf("public spend key:\t%s\n", meta.PublicSpendKey.String())
	fmt.Printf("public view key:\t%s\n", meta.PublicViewKey.String())
	return nil
}

func deriveStealthCmd(c *cli.Context) error {
	meta, err := stealth.MetaAddressFromString(c.String("address"))
	if err != nil {
		return err
	}
	announcement, _ := stealth.GenerateStealthAddress(meta)
	fmt.Printf("stealth address:\t%s\n", announcement.Address.String())
	fmt.Printf("ephemeral key:\t%s\n", crypto.EncodeHex(announcement.EphemeralPublicKey))
	fmt.Printf("view tag:\t%d\n", announcement.ViewTag)
	fmt.Printf("announcement:\t%s\n", crypto.EncodeHex(announcement.Marshal()))
	return nil
}

func checkStealthCmd(c *cli.Context) error {
	announcement, spend, view, err := readAnnouncementKeys(c)
	if err != nil {
		return err
	}
	fmt.Printf("match:\t%t\n", stealth.CheckStealthAddress(announcement, spend, view))
	return nil
}

func recoverKeyCmd(c *cli.Context) error {
	announcement, spend, view, err := readAnnouncementKeys(c)
	if err != nil {
		return err
	}
	recovery, err := stealth.DeriveStealthPrivateKey(announcement, spend, view)
	if err != nil {
		return err
	}
	fmt.Printf("stealth address:\t%s\n", recovery.Address.String())
	fmt.Printf("private key:\t%s\n", recovery.PrivateKey.String())
	return nil
}

func readAnnouncementKeys(c *cli.Context) (*stealth.Announcement, crypto.PrivateKey, crypto.PrivateKey, error) {
	curve, err := crypto.CurveByName(c.String("curve"))
	if err != nil {
		return nil, nil, nil, err
	}
	raw, err := crypto.DecodeHex(c.String("announcement"))
	if err != nil {
		return nil, nil, nil, err
	}
	announcement, err := stealth.UnmarshalAnnouncement(raw)
	if err != nil {
		return nil, nil, nil, err
	}
	spend, err := readPrivateKey(curve, c.String("spend"))
	if err != nil {
		return nil, nil, nil, err
	}
	view, err := readPrivateKey(curve, c.String("view"))
	if err != nil {
		return nil, nil, nil, err
	}
	return announcement, spend, view, nil
}

func readPrivateKey(c crypto.Curve, s string) (crypto.PrivateKey, error) {
	key, err := crypto.KeyFromString(s)
	if err != nil {
		return nil, err
	}
	return c.PrivateKeyFromKey(key)
}

func commitCmd(c *cli.Context) error {
	curve, err := crypto.CurveByName(c.String("curve"))
	if err != nil {
		return err
	}
	amount := common.NewIntegerFromString(c.String("amount"))
	commitment, blinding := pedersen.Commit(curve, amount.Uint64())
	fmt.Printf("commitment:\t%s\n", commitment.String())
	fmt.Printf("blinding:\t%s\n", blinding.String())
	return nil
}

func verifyCommitCmd(c *cli.Context) error {
	curve, err := crypto.CurveByName(c.String("curve"))
	if err != nil {
		return err
	}
	raw, err := crypto.DecodeHex(c.String("commitment"))
	if err != nil {
		return err
	}
	commitment, err := pedersen.CommitmentFromBytes(curve, raw)
	if err != nil {
		return err
	}
	blinding, err := readPrivateKey(curve, c.String("blinding"))
	if err != nil {
		return err
	}
	amount := common.NewIntegerFromString(c.String("amount"))
	fmt.Printf("valid:\t%t\n", pedersen.VerifyOpening(commitment, amount.Uint64(), blinding))
	return nil
}

func createViewingKeyCmd(c *cli.Context) error {
	curve, err := crypto.CurveByName(c.String("curve"))
	if err != nil {
		return err
	}
	master := viewing.GenerateKey(curve, c.String("label"))
	incoming, err := viewing.DeriveIncomingKey(master)
	if err != nil {
		return err
	}
	outgoing, err := viewing.DeriveOutgoingKey(master)
	if err != nil {
		return err
	}
	fmt.Printf("master key:\t%s\n", master.PrivateKey.String())
	fmt.Printf("master key hash:\t%s\n", master.Hash().String())
	fmt.Printf("incoming key:\t%s\n", incoming.PrivateKey.String())
	fmt.Printf("outgoing key:\t%s\n", outgoing.PrivateKey.String())
	return nil
}

func encryptCmd(c *cli.Context) error {
	key, err := readViewingKey(c)
	if err != nil {
		return err
	}
	payload, err := viewing.Encrypt(key, []byte(c.String("memo")))
	if err != nil {
		return err
	}
	fmt.Printf("payload:\t%s\n", crypto.EncodeHex(payload.Marshal()))
	return nil
}

func decryptCmd(c *cli.Context) error {
	key, err := readViewingKey(c)
	if err != nil {
		return err
	}
	raw, err := crypto.DecodeHex(c.String("payload"))
	if err != nil {
		return err
	}
	payload, err := viewing.UnmarshalEncryptedPayload(raw)
	if err != nil {
		return err
	}
	memo, err := viewing.Decrypt(key, payload)
	if err != nil {
		return err
	}
	fmt.Printf("memo:\t%s\n", memo)
	return nil
}

func readViewingKey(c *cli.Context) (*viewing.Key, error) {
	curve, err := crypto.CurveByName(c.String("curve"))
	if err != nil {
		return nil, err
	}
	priv, err := readPrivateKey(curve, c.String("key"))
	if err != nil {
		return nil, err
	}
	return &viewing.Key{
		Type:       viewing.KeyTypeFull,
		PrivateKey: priv,
		PublicKey:  priv.Public(),
		CreatedAt:  time.Now(),
	}, nil
}

func scanCmd(c *cli.Context) error {
	curve, err := crypto.CurveByName(c.String("curve"))
	if err != nil {
		return err
	}
	raw, err := os.ReadFile(c.String("file"))
	if err != nil {
		return err
	}
	var batch []*stealth.Announcement
	err = json.Unmarshal(raw, &batch)
	if err != nil {
		return err
	}
	spend, err := readPrivateKey(curve, c.String("spend"))
	if err != nil {
		return err
	}
	view, err := readPrivateKey(curve, c.String("view"))
	if err != nil {
		return err
	}

	scanner := stealth.NewScanner(spend, view, c.Int("workers"))
	matches, err := scanner.ScanBatch(context.Background(), batch, true)
	if err != nil {
		return err
	}
	for _, m := range matches {
		fmt.Printf("%d\t%s\t%s\n", m.Index, m.Announcement.Address.String(), m.Recovery.PrivateKey.String())
	}
	fmt.Printf("matched %d of %d\n", len(matches), len(batch))
	return nil
}

func decodeIntentCmd(c *cli.Context) error {
	raw, err := crypto.DecodeHex(c.String("raw"))
	if err != nil {
		return err
	}
	intent, err := common.UnmarshalIntent(raw)
	if err != nil {
		return err
	}
	data, err := json.Marshal(map[string]any{
		"version":            intent.Version,
		"privacyLevel":       intent.PrivacyLevel.String(),
		"senderCommitment":   crypto.EncodeHex(intent.SenderCommitment[:]),
		"stealthAddress":     intent.StealthAddress.String(),
		"ephemeralPublicKey": crypto.EncodeHex(intent.EphemeralPublicKey[:]),
		"viewTag":            intent.ViewTag,
		"amountCommitment":   crypto.EncodeHex(intent.AmountCommitment[:]),
		"viewingKeyHash":     intent.ViewingKeyHash.String(),
		"timestamp":          intent.Timestamp,
		"nonce":              crypto.EncodeHex(intent.Nonce[:]),
		"signature":          intent.Signature.String(),
	})
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
