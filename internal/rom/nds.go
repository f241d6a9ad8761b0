// SPDX-License-Identifier: MPL-2.0

package rom

import (
	"io"
)

const (
	ndsHeaderSize = 0x20
	// ndsMaxCapacityExp bounds the device capacity exponent (128 KiB << n).
	ndsMaxCapacityExp = 15
)

// NDS is a decoded Nintendo DS cartridge header.
type NDS struct {
	SoftwareTitle    string      `json:"software_title" yaml:"software_title"`
	GameCode         string      `json:"game_code" yaml:"game_code"`
	MakerCode        string      `json:"maker_code" yaml:"maker_code"`
	SupportedDevices []string    `json:"supported_devices" yaml:"supported_devices"`
	Capacity         StorageSize `json:"capacity" yaml:"capacity"`
	Version          uint8       `json:"version" yaml:"version"`
}

// Platform implements Info.
func (*NDS) Platform() Platform { return PlatformNDS }

// ParseNDS decodes the first bytes of a Nintendo DS image.
func ParseNDS(r io.ReaderAt, size int64) (*NDS, error) {
	if size < ndsHeaderSize {
		return nil, &InvalidHeaderError{Platform: PlatformNDS, Reason: "image ends before the header"}
	}
	b, err := readAt(r, PlatformNDS, 0, ndsHeaderSize)
	if err != nil {
		return nil, err
	}

	h := &NDS{
		SoftwareTitle:    ascii(b[0x00:0x0C]),
		GameCode:         ascii(b[0x0C:0x10]),
		MakerCode:        ascii(b[0x10:0x12]),
		SupportedDevices: unitDevices(b[0x12]),
		Version:          b[0x1E],
	}
	if exp := b[0x14]; exp <= ndsMaxCapacityExp {
		h.Capacity = kilobytes(128 << exp)
	}
	return h, nil
}

func unitDevices(unit byte) []string {
	switch unit {
	case 0x03:
		return []string{"DSi"}
	case 0x02:
		return []string{"DS", "DSi"}
	default:
		return []string{"DS"}
	}
}
