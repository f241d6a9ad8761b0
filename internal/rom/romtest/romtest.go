// SPDX-License-Identifier: MPL-2.0

// Package romtest synthesizes minimal ROM images for tests.
package romtest

import (
	"bytes"
	"encoding/binary"
)

func field(s string, n int) []byte {
	b := bytes.Repeat([]byte{' '}, n)
	copy(b, s)
	return b
}

// SNES returns a 128 KiB LoROM image titled title with 8 KiB of SRAM.
// When smc is set a 512-byte copier header precedes the image.
func SNES(title string, smc bool) []byte {
	const romExp = 7
	img := make([]byte, (1<<romExp)*1024)
	h := img[0x7FB0 : 0x7FB0+48]
	copy(h[0:2], "01")
	copy(h[2:6], "TEST")
	copy(h[16:37], field(title, 21))
	h[37] = 0x20
	h[38] = 0x02
	h[39] = romExp
	h[40] = 3
	h[41] = 0x01
	h[42] = 0x33
	binary.LittleEndian.PutUint16(h[44:46], 0xEDCB)
	binary.LittleEndian.PutUint16(h[46:48], 0x1234)
	if smc {
		img = append(make([]byte, 512), img...)
	}
	return img
}

// MegaDrive returns a 1 KiB image with an overseas title and "JUE" regions.
func MegaDrive(title string) []byte {
	img := make([]byte, 0x400)
	h := img[0x100:0x200]
	copy(h[0x00:0x10], field("SEGA GENESIS", 16))
	copy(h[0x10:0x20], field("(C)TEST 1994.MAR", 16))
	copy(h[0x20:0x50], field(title, 48))
	copy(h[0x50:0x80], field(title, 48))
	copy(h[0x80:0x8E], "GM T-12345 -01")
	copy(h[0x90:0xA0], field("J", 16))
	copy(h[0xF0:0xF3], "JUE")
	return img
}

// NDS returns a DS-only image header padded to 512 bytes.
func NDS(title string) []byte {
	img := make([]byte, 0x200)
	copy(img[0x00:0x0C], title)
	copy(img[0x0C:0x10], "ATST")
	copy(img[0x10:0x12], "01")
	return img
}
