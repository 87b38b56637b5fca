package rpc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sipprotocol/sip/config"
	"github.com/sipprotocol/sip/crypto"
	"github.com/sipprotocol/sip/crypto/secp256k1"
	"github.com/sipprotocol/sip/pedersen"
	"github.com/sipprotocol/sip/stealth"
	"github.com/sipprotocol/sip/storage"
	"github.com/stretchr/testify/assert"
)

func testServer(t *testing.T) *httptest.Server {
	store, err := storage.NewBadgerStore(config.Default(), t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	server := httptest.NewServer(NewRouter(store))
	t.Cleanup(server.Close)
	return server
}

func call(t *testing.T, server *httptest.Server, method string, params ...any) map[string]any {
	body, err := json.Marshal(Call{Method: method, Params: params})
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(server.URL, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var result map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	return result
}

func TestGetInfo(t *testing.T) {
	assert := assert.New(t)
	server := testServer(t)

	info := call(t, server, "getinfo")
	assert.Equal(config.BuildVersion, info["version"])
	assert.Equal(true, info["empty"])

	unknown := call(t, server, "nosuchmethod")
	assert.Contains(unknown["error"], "unknown method")
}

func TestAnnouncementFlow(t *testing.T) {
	assert := assert.New(t)
	server := testServer(t)
	c := secp256k1.Curve()

	meta, _, _ := stealth.GenerateMetaAddress(c, "ethereum")
	announcement, _ := stealth.GenerateStealthAddress(meta)

	result := call(t, server, "submitannouncement",
		announcement.Address.String(),
		crypto.EncodeHex(announcement.EphemeralPublicKey),
		fmt.Sprint(announcement.ViewTag))
	assert.Nil(result["error"])
	assert.Equal(float64(0), result["sequence"])

	resp, err := http.Post(server.URL, "application/json", bytes.NewReader([]byte(
		`{"method":"listannouncements","params":["0","10"]}`)))
	assert.Nil(err)
	defer resp.Body.Close()
	var listed []map[string]any
	assert.Nil(json.NewDecoder(resp.Body).Decode(&listed))
	assert.Len(listed, 1)
	assert.Equal(announcement.Address.String(), listed[0]["address"])
}

func TestVerifyCommitment(t *testing.T) {
	assert := assert.New(t)
	server := testServer(t)
	c := secp256k1.Curve()

	commitment, blinding := pedersen.Commit(c, 150)
	result := call(t, server, "verifycommitment",
		c.Name(), commitment.String(), "150", blinding.String())
	assert.Equal(true, result["valid"])

	result = call(t, server, "verifycommitment",
		c.Name(), commitment.String(), "151", blinding.String())
	assert.Equal(false, result["valid"])
}

func TestDeriveStealthAddress(t *testing.T) {
	assert := assert.New(t)
	server := testServer(t)
	c := secp256k1.Curve()

	meta, spend, view := stealth.GenerateMetaAddress(c, "ethereum")
	result := call(t, server, "derivestealthaddress", meta.String())
	assert.Nil(result["error"])

	address, err := crypto.HashFromString(fmt.Sprint(result["address"]))
	assert.Nil(err)
	ephemeral, err := crypto.DecodeHex(fmt.Sprint(result["ephemeral"]))
	assert.Nil(err)
	tag := byte(result["viewTag"].(float64))

	assert.True(stealth.CheckStealthAddress(&stealth.Announcement{
		Address:            address,
		EphemeralPublicKey: ephemeral,
		ViewTag:            tag,
	}, spend, view))
}
