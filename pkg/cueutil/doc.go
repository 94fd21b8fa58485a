// SPDX-License-Identifier: MPL-2.0

// Package cueutil validates user-supplied CUE documents against an embedded
// schema and decodes them into Go values.
//
//	//go:embed runconfigs_schema.cue
//	var schema []byte
//
//	result, err := cueutil.ParseAndDecode[fileData](schema, data, "#RunConfigs",
//	    cueutil.WithFilename(path))
//
// Errors carry the file name and a JSON-style path to the offending value,
// e.g. "runconfigs.cue: configurations[1].entry_point: incomplete value string".
package cueutil
