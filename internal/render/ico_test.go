package render

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeICO(t *testing.T) {
	data, err := encodeICO([]icoImage{
		{size: 16, png: []byte("aaaa")},
		{size: 256, png: []byte("bbbbbb")},
	})
	require.NoError(t, err)

	le := binary.LittleEndian
	assert.Equal(t, uint16(0), le.Uint16(data[0:]))
	assert.Equal(t, uint16(1), le.Uint16(data[2:]), "icon type")
	assert.Equal(t, uint16(2), le.Uint16(data[4:]), "image count")

	first, second := data[6:22], data[22:38]
	assert.Equal(t, byte(16), first[0])
	assert.Equal(t, byte(0), second[0], "256 is stored as 0")
	assert.Equal(t, uint16(32), le.Uint16(first[6:]), "bit count")
	assert.Equal(t, uint32(4), le.Uint32(first[8:]))
	assert.Equal(t, uint32(38), le.Uint32(first[12:]))
	assert.Equal(t, uint32(42), le.Uint32(second[12:]))

	assert.Equal(t, "aaaabbbbbb", string(data[38:]))
}

func TestEncodeICOEmpty(t *testing.T) {
	_, err := encodeICO(nil)
	assert.Error(t, err)
}
