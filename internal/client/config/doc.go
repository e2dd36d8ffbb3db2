// Package config loads runtime configuration for the jwtdash client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   backend base URL (default http://127.0.0.1:8080/)
//	-d string   database path (default jwtdash.db)
//	-t int      request timeout in seconds (default 10)
//	-v          verbose logging
//
// # JSON schema
//
// Durations accept "5s" style strings or integer nanoseconds:
//
//	{
//	  "server_base_url": "http://127.0.0.1:8080/",
//	  "database_path": "jwtdash.db",
//	  "request_timeout": "10s",
//	  "verbose": false
//	}
package config
