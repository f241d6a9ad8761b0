// SPDX-License-Identifier: MPL-2.0

// Package cueutil compiles a CUE document against an embedded schema
// definition and decodes the unified value, reporting failures with
// JSON-path style locations such as "targets[2].family".
//
//	//go:embed rombuild_schema.cue
//	var schema []byte
//
//	res, err := cueutil.ParseAndDecode[map[string]any](schema, data, "#Config",
//	    cueutil.WithFilename(path), cueutil.WithConcrete(false))
package cueutil
