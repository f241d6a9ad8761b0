// SPDX-License-Identifier: MPL-2.0

// Command romboss prints the cartridge header of SNES, Mega Drive and
// Nintendo DS ROM images as JSON or YAML.
package main
