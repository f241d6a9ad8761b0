// SPDX-License-Identifier: MPL-2.0

package rom

// StorageSize expresses a memory size in the units cartridge documentation uses.
type StorageSize struct {
	Bytes     uint64 `json:"bytes" yaml:"bytes"`
	Kilobytes uint64 `json:"kilobytes" yaml:"kilobytes"`
	Kilobits  uint64 `json:"kilobits" yaml:"kilobits"`
}

func kilobytes(kb uint64) StorageSize {
	return StorageSize{Bytes: kb * 1024, Kilobytes: kb, Kilobits: kb * 8}
}
