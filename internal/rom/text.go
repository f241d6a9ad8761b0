// SPDX-License-Identifier: MPL-2.0

package rom

import (
	"regexp"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
)

var runsOfSpace = regexp.MustCompile(`\s{2,}`)

// decodeField decodes a fixed-width header field and drops trailing padding.
// Undecodable bytes become U+FFFD rather than failing the whole header.
func decodeField(enc encoding.Encoding, b []byte) string {
	s, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		s = b
	}
	return strings.TrimRight(string(s), " \x00")
}

// eucJP decodes SNES titles.
func eucJP(b []byte) string { return decodeField(japanese.EUCJP, b) }

// shiftJIS decodes Mega Drive fields and collapses internal padding, which
// some headers use to center their titles.
func shiftJIS(b []byte) string {
	return runsOfSpace.ReplaceAllString(decodeField(japanese.ShiftJIS, b), " ")
}

// ascii trims a NUL- or space-padded ASCII field.
func ascii(b []byte) string {
	return strings.Trim(string(b), " \x00")
}
