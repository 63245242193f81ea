// Package config loads runtime configuration for the rpgkeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Environment variables (RPGKEEPER_ADDR, RPGKEEPER_SESSION_DB,
//     RPGKEEPER_TOKEN, RPGKEEPER_REQUEST_TIMEOUT).
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   address:port of the backend gRPC endpoint
//	-s string   path of the local session database
//	-t string   access token to use instead of the stored one
//	-i int      online status check interval (seconds)
//	-r int      per-request timeout (seconds)
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "3s" or
// integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "session_db": "rpgkeeper_session.db",
//	  "online_check_interval": "3s",
//	  "request_timeout": "5s"
//	}
package config
