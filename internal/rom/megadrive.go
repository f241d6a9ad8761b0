// SPDX-License-Identifier: MPL-2.0

package rom

import (
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	mdHeaderOffset = 0x100
	mdHeaderSize   = 0x100
)

var (
	mdSoftwareTypes = map[string]string{
		"GM": "Game",
		"AI": "Aid",
		"OS": "Boot ROM (TMSS)",
		"BR": "Boot ROM (Sega CD)",
	}

	mdDevices = map[rune]string{
		'J': "3-button controller",
		'6': "6-button controller",
		'0': "Master System controller",
		'A': "Analog joystick",
		'4': "Multitap",
		'G': "Lightgun",
		'L': "Activator",
		'M': "Mouse",
		'B': "Trackball",
		'T': "Tablet",
		'V': "Paddle",
		'K': "Keyboard",
		'R': "RS-232 (Serial)",
		'P': "Printer",
		'C': "CD-ROM (Sega CD)",
		'F': "Floppy drive",
		'D': "Download",
	}

	mdMonths = []string{"JAN", "FEB", "MAR", "APR", "MAY", "JUN", "JUL", "AUG", "SEP", "OCT", "NOV", "DEC"}
)

type (
	// MegaDrive is a decoded Sega Mega Drive / Genesis header.
	MegaDrive struct {
		SystemType       string      `json:"system_type" yaml:"system_type"`
		Publisher        string      `json:"publisher" yaml:"publisher"`
		ReleaseDate      ReleaseDate `json:"release_date" yaml:"release_date"`
		SoftwareTitle    Titles      `json:"software_title" yaml:"software_title"`
		SoftwareType     string      `json:"software_type" yaml:"software_type"`
		SerialNumber     string      `json:"serial_number" yaml:"serial_number"`
		Revision         string      `json:"revision" yaml:"revision"`
		Checksum         uint16      `json:"checksum" yaml:"checksum"`
		SupportedDevices []string    `json:"supported_devices" yaml:"supported_devices"`
		SupportedRegions []string    `json:"supported_regions" yaml:"supported_regions"`
	}

	// Titles holds the Japanese and international names.
	Titles struct {
		Domestic string `json:"domestic" yaml:"domestic"`
		Overseas string `json:"overseas" yaml:"overseas"`
	}

	// ReleaseDate is the copyright year and month. Month is 1-12, or 0 when
	// the header does not name one.
	ReleaseDate struct {
		Year  int `json:"year" yaml:"year"`
		Month int `json:"month" yaml:"month"`
	}
)

// Platform implements Info.
func (*MegaDrive) Platform() Platform { return PlatformMegaDrive }

// ParseMegaDrive decodes the header at $100 of a Mega Drive image.
func ParseMegaDrive(r io.ReaderAt, size int64) (*MegaDrive, error) {
	if size < mdHeaderOffset+mdHeaderSize {
		return nil, &InvalidHeaderError{
			Platform: PlatformMegaDrive,
			Reason:   fmt.Sprintf("image of %d bytes ends before the header", size),
		}
	}
	b, err := readAt(r, PlatformMegaDrive, mdHeaderOffset, mdHeaderSize)
	if err != nil {
		return nil, err
	}

	// offsets below are relative to $100
	h := &MegaDrive{
		SystemType: shiftJIS(b[0x00:0x10]),
		Publisher:  shiftJIS(b[0x13:0x17]),
		ReleaseDate: ReleaseDate{
			Year:  parseYear(b[0x18:0x1C]),
			Month: parseMonth(b[0x1D:0x20]),
		},
		SoftwareTitle: Titles{
			Domestic: shiftJIS(b[0x20:0x50]),
			Overseas: shiftJIS(b[0x50:0x80]),
		},
		SoftwareType:     softwareType(b[0x80:0x82]),
		SerialNumber:     shiftJIS(b[0x83:0x8B]),
		Revision:         shiftJIS(b[0x8C:0x8E]),
		Checksum:         binary.BigEndian.Uint16(b[0x8E:0x90]),
		SupportedDevices: devices(b[0x90:0xA0]),
		SupportedRegions: regions(b[0xF0:0xF3]),
	}
	if !strings.Contains(h.SystemType, "SEGA") {
		return nil, &InvalidHeaderError{
			Platform: PlatformMegaDrive,
			Reason:   fmt.Sprintf("system type %q does not name SEGA", h.SystemType),
		}
	}
	return h, nil
}

func parseYear(b []byte) int {
	y, err := strconv.Atoi(strings.TrimSpace(string(b)))
	if err != nil {
		return 0
	}
	return y
}

func parseMonth(b []byte) int {
	m := strings.ToUpper(strings.TrimSpace(string(b)))
	for i, name := range mdMonths {
		if m == name {
			return i + 1
		}
	}
	return 0
}

func softwareType(b []byte) string {
	code := string(b)
	if s, ok := mdSoftwareTypes[code]; ok {
		return s
	}
	return fmt.Sprintf("Unknown %q", code)
}

// devices expands the I/O support string; unknown codes are skipped.
func devices(b []byte) []string {
	out := []string{}
	for _, c := range strings.TrimRight(string(b), " \x00") {
		if d, ok := mdDevices[c]; ok {
			out = append(out, d)
		}
	}
	return out
}

// regions decodes both region formats: the early "JUE" letters and the
// later single hex digit bitmask. A lone "E" followed by padding is Europe
// in either format.
func regions(b []byte) []string {
	s := string(b)
	if s == "E  " {
		return []string{"Europe"}
	}
	out := []string{}
	if mask, err := strconv.ParseUint(s[:1], 16, 8); err == nil {
		for _, r := range []struct {
			bit  uint64
			name string
		}{{1, "Japan"}, {4, "Americas"}, {8, "Europe"}} {
			if mask&r.bit != 0 {
				out = append(out, r.name)
			}
		}
		return out
	}
	for _, c := range []struct {
		code byte
		name string
	}{{'J', "Japan"}, {'U', "Americas"}, {'E', "Europe"}} {
		if strings.IndexByte(s, c.code) >= 0 {
			out = append(out, c.name)
		}
	}
	return out
}
