// Package config handles loading and parsing bookstore-ui configuration files.
//
// # Overview
//
// This package reads a small TOML file to discover where the bookstore API
// lives, how many rows a catalog page holds, how often the catalog refreshes,
// and where log files go. Environment variables override the file so the same
// config can serve several machines.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/bookstore-ui/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//  5. Apply BOOKSTORE_* environment variables on top of whatever was read
//
// # Default Values
//
//   - Config file: ~/.config/bookstore-ui/config.toml
//   - API endpoint: 127.0.0.1:8017
//   - Page size: 5 rows
//   - Refresh: disabled (0 seconds)
//   - Log directory: ~/.local/share/bookstore-ui/logs
//   - Log level: info
//
// # Configuration Fields
//
//   - APIBind: HTTP API endpoint (host:port) for the book store
//   - PageSize: rows per catalog page
//   - RefreshSeconds: interval between automatic catalog reloads, 0 disables
//   - LogDir: directory receiving the application log file
//   - LogLevel: zap level name (debug, info, warn, error)
//
// # TOML Format
//
// Example config.toml:
//
//	api_bind = "127.0.0.1:8017"
//	page_size = 5
//	refresh_seconds = 30
//	log_dir = "~/.local/share/bookstore-ui/logs"
//	log_level = "info"
//
// All fields are optional. Tilde expansion is performed automatically.
//
// # Environment Overrides
//
// Every field has an environment twin that wins over the file:
//
//	BOOKSTORE_API_BIND
//	BOOKSTORE_PAGE_SIZE
//	BOOKSTORE_REFRESH_SECONDS
//	BOOKSTORE_LOG_DIR
//	BOOKSTORE_LOG_LEVEL
//
// # Path Expansion
//
// The package handles several path formats:
//
//   - Absolute paths: Used as-is ("/var/log/bookstore-ui")
//   - Tilde paths: Expanded to home directory ("~/.config/bookstore-ui")
//   - Relative paths: Converted to absolute based on current directory
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors
//   - Malformed environment values (e.g., a non-numeric page size)
//
// Missing config files are NOT an error - defaults are used instead, so the
// UI works out-of-the-box against a store on localhost.
//
// # Usage Example
//
//	// Use default config path
//	cfg, err := config.Load("")
//	if err != nil {
//		log.Fatalf("failed to load config: %v", err)
//	}
//
//	// Use explicit config path
//	cfg, err := config.Load("/etc/bookstore-ui/config.toml")
//	if err != nil {
//		log.Fatalf("failed to load config: %v", err)
//	}
//
//	// Access configuration
//	client, err := bookapi.NewClient(cfg.APIBind)
//	logPath := cfg.LogPath()
//
// # Design Philosophy
//
// The config package is read-only and stateless - it loads configuration
// once at startup and returns an immutable Config struct. No global state
// or singleton patterns are used.
//
// # Testing Considerations
//
// When testing code that uses this package:
//   - Provide explicit config paths to avoid dependency on user's home directory
//   - Use Config struct directly rather than Load() for unit tests
package config
