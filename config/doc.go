// Package config provides configuration loading and validation for nasus.
//
// The package handles YAML configuration files, environment variables, and CLI flags
// with automatic merging and validation using go-playground/validator.
//
// # Configuration Precedence
//
// Values are loaded in this order (later sources override earlier ones):
//
//  1. Default values
//  2. Configuration file(s) - multiple files merged left-to-right
//  3. Environment variables (NASUS_ prefix)
//  4. CLI flags
//
// # Usage
//
//	cfg, err := config.Load([]string{"config.yaml"}, cmd.Flags())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Store in context for subcommands
//	ctx = config.WithContext(ctx, cfg)
//
//	// Retrieve later
//	cfg, err = config.FromContext(ctx)
//
// # Environment Variables
//
// All config keys map to environment variables with NASUS_ prefix:
//   - server.port → NASUS_SERVER_PORT
//   - files.dir → NASUS_FILES_DIR
//   - auth.user → NASUS_AUTH_USER
//
// # Configuration Structure
//
// The Config struct contains:
//   - Server: bind address and port
//   - Files: served directory and its listing, symlink, hidden-file,
//     exclusion, cache and compression policy
//   - CORS: cross-origin policy (origin, methods, allowed headers)
//   - Auth: basic-authentication credential and realm
//   - Metrics: optional Prometheus listener address
//   - Log: logging level and format
//
// # Validation
//
// Configuration is validated using struct tags:
//   - Port must be 1-65535
//   - Served directory and realm must be set
//   - Log level must be debug, info, warn, or error
//   - Log format must be text or json
package config
