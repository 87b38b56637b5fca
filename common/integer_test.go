package common

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInteger(t *testing.T) {
	assert := assert.New(t)

	a := NewIntegerFromString("1.5")
	b := NewIntegerFromString("0.5")
	assert.Equal("2.00000000", a.Add(b).String())
	assert.Equal("1.00000000", a.Sub(b).String())
	assert.Equal(1, a.Cmp(b))
	assert.Equal(0, a.Cmp(NewIntegerFromString("1.5")))

	assert.Equal(NewInteger(2).String(), a.Add(b).String())
	assert.Equal(uint64(150000000), a.Uint64())
	assert.Equal("0.00000001", NewIntegerFromString("0.00000001").String())

	assert.Panics(func() { NewIntegerFromString("-1") })
	assert.Panics(func() { NewIntegerFromString("0") })
	assert.Panics(func() { b.Sub(a) })
}

func TestIntegerJSON(t *testing.T) {
	assert := assert.New(t)

	a := NewIntegerFromString("123.456")
	data, err := json.Marshal(a)
	assert.Nil(err)
	assert.Equal(`"123.45600000"`, string(data))

	var back Integer
	assert.Nil(json.Unmarshal(data, &back))
	assert.Equal(0, a.Cmp(back))
}
