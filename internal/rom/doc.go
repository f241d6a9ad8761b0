// SPDX-License-Identifier: MPL-2.0

// Package rom reads cartridge headers of Super Nintendo, Mega Drive and
// Nintendo DS ROM images and describes them in a serializable form.
//
// Only the header is read; image files are accessed through io.ReaderAt so
// large NDS images are never loaded into memory.
package rom
