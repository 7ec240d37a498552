// Package config loads runtime configuration for the gymctl CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the membership HTTP API
//	-t int      request timeout (seconds)
//	-f string   local session database file
//
// # JSON schema
//
//	{
//	  "server_endpoint_addr": "http://localhost:8085",
//	  "request_timeout": "10s",
//	  "session_file": "gymctl.db"
//	}
package config
