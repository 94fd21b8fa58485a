// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from the --config path when given, otherwise from
// config.cue in ConfigDir (XDG on Linux, ~/Library/Application Support on macOS,
// %APPDATA% on Windows), otherwise from ./config.cue, otherwise defaults apply.
// Every key can be overridden with a RUNWITH_* environment variable, nested keys
// joined by underscores (RUNWITH_UI_VERBOSE).
//
// Files are validated against the embedded CUE schema (config_schema.cue).
package config
