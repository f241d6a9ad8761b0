// SPDX-License-Identifier: MPL-2.0

package rom

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

const (
	// smcHeaderSize is the copier header some dumps carry in front of the image.
	smcHeaderSize = 512

	snesLoROMHeader = 0x7FB0
	snesHiROMHeader = 0xFFB0
	snesHeaderSize  = 48

	// largest rom_size exponent whose size still fits comfortably in int64
	snesMaxSizeExp = 24
)

var (
	snesMapModes = map[byte]string{
		0x20: "2.68MHz LoROM",
		0x21: "2.68MHz HiROM",
		0x23: "SA-1",
		0x25: "2.68MHz ExHiROM",
		0x30: "3.58MHz LoROM",
		0x31: "3.58MHz HiROM",
		0x35: "3.58MHz ExHiROM",
	}

	snesCartridgeTypes = map[byte]string{
		0x00: "ROM only",
		0x01: "ROM and RAM",
		0x02: "ROM, RAM and battery",
		0x33: "ROM and SA-1",
		0x34: "ROM, SA-1 and RAM",
		0x35: "ROM, SA-1, RAM and battery",
	}

	snesDestinations = map[byte]string{
		0x00: "Japan",
		0x01: "North America",
		0x02: "Europe",
		0x03: "Nordic",
		0x04: "Finland",
		0x05: "Denmark",
		0x06: "France",
		0x07: "Netherlands",
		0x08: "Spain",
		0x09: "Germany",
		0x0A: "Italy",
		0x0B: "China",
		0x0C: "Indonesia",
		0x0D: "Korea",
		0x0F: "Canada",
		0x10: "Brazil",
		0x11: "Australia",
	}
)

// SNES is a decoded Super Nintendo cartridge header.
type SNES struct {
	Title         string      `json:"title" yaml:"title"`
	MapMode       string      `json:"map_mode" yaml:"map_mode"`
	CartridgeType string      `json:"cartridge_type" yaml:"cartridge_type"`
	TargetMarket  string      `json:"target_market" yaml:"target_market"`
	MakerCode     string      `json:"maker_code" yaml:"maker_code"`
	GameCode      string      `json:"game_code" yaml:"game_code"`
	Version       uint8       `json:"version" yaml:"version"`
	HasSMCHeader  bool        `json:"has_smc_header" yaml:"has_smc_header"`
	ROMSize       StorageSize `json:"rom_size" yaml:"rom_size"`
	SRAMSize      StorageSize `json:"sram_size" yaml:"sram_size"`
	Checksum      uint16      `json:"checksum" yaml:"checksum"`
	ChecksumValid bool        `json:"checksum_valid" yaml:"checksum_valid"`
}

// Platform implements Info.
func (*SNES) Platform() Platform { return PlatformSNES }

// ParseSNES decodes the internal header of a SNES image of the given size.
// The LoROM location is tried before HiROM; the first header whose fixed
// bytes are zero and whose declared ROM size matches the image wins.
func ParseSNES(r io.ReaderAt, size int64) (*SNES, error) {
	var offset int64
	switch rem := size % 1024; rem {
	case 0:
	case smcHeaderSize:
		offset = smcHeaderSize
	default:
		return nil, &InvalidSizeError{Size: size, Remainder: rem}
	}
	imageSize := size - offset

	for _, at := range []int64{snesLoROMHeader, snesHiROMHeader} {
		if offset+at+snesHeaderSize > size {
			continue
		}
		raw, err := readAt(r, PlatformSNES, offset+at, snesHeaderSize)
		if err != nil {
			return nil, err
		}
		h, ok := decodeSNESHeader(raw, imageSize)
		if ok {
			h.HasSMCHeader = offset != 0
			return h, nil
		}
	}
	return nil, &InvalidHeaderError{
		Platform: PlatformSNES,
		Reason:   fmt.Sprintf("no LoROM or HiROM header matches an image of %d bytes", imageSize),
	}
}

// decodeSNESHeader interprets the 48 bytes starting at $xFB0.
func decodeSNESHeader(b []byte, imageSize int64) (*SNES, bool) {
	if !bytes.Equal(b[6:13], make([]byte, 7)) {
		return nil, false
	}
	romExp := b[39]
	if romExp > snesMaxSizeExp || int64(1)<<romExp*1024 != imageSize {
		return nil, false
	}

	h := &SNES{
		MakerCode:     ascii(b[0:2]),
		GameCode:      ascii(b[2:6]),
		Title:         eucJP(b[16:37]),
		MapMode:       lookup(snesMapModes, b[37]),
		CartridgeType: lookup(snesCartridgeTypes, b[38]),
		ROMSize:       kilobytes(uint64(1) << romExp),
		TargetMarket:  lookup(snesDestinations, b[41]),
		Version:       b[43],
		Checksum:      binary.LittleEndian.Uint16(b[46:48]),
	}
	if sram := b[40]; sram != 0 && sram <= snesMaxSizeExp {
		h.SRAMSize = kilobytes(uint64(1) << sram)
	}
	complement := binary.LittleEndian.Uint16(b[44:46])
	h.ChecksumValid = h.Checksum^complement == 0xFFFF
	return h, true
}
