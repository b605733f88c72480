package render

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

type icoImage struct {
	size int
	png  []byte
}

// encodeICO packs PNG images into a Windows icon container. Sizes of 256 and
// above are written as 0 in the directory as the format requires.
func encodeICO(images []icoImage) ([]byte, error) {
	if len(images) == 0 {
		return nil, fmt.Errorf("ico: no images")
	}

	const headerSize, entrySize = 6, 16
	var buf bytes.Buffer

	header := struct {
		Reserved uint16
		Type     uint16
		Count    uint16
	}{0, 1, uint16(len(images))} // #nosec G115 -- a handful of sizes
	if err := binary.Write(&buf, binary.LittleEndian, header); err != nil {
		return nil, err
	}

	offset := uint32(headerSize + entrySize*len(images)) // #nosec G115
	for _, img := range images {
		dim := uint8(0)
		if img.size < 256 {
			dim = uint8(img.size) // #nosec G115 -- checked above
		}
		entry := struct {
			Width, Height   uint8
			Colors, Reserved uint8
			Planes, BitCount uint16
			Size, Offset     uint32
		}{dim, dim, 0, 0, 1, 32, uint32(len(img.png)), offset} // #nosec G115
		if err := binary.Write(&buf, binary.LittleEndian, entry); err != nil {
			return nil, err
		}
		offset += uint32(len(img.png)) // #nosec G115
	}
	for _, img := range images {
		buf.Write(img.png)
	}
	return buf.Bytes(), nil
}
