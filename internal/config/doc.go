// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.sknext/sknext.toml or OS-specific config directory)
// 3. Project config file (sknext.toml or .sknext.toml in the working
// directory), or the file named by --config
// 4. Environment variables (SKNEXT_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.sknext/sknext.toml (preferred)
// - Windows: %APPDATA%\sknext\sknext.toml
// - macOS: ~/Library/Application Support/sknext/sknext.toml
// - Linux/BSD: $XDG_CONFIG_HOME/sknext/sknext.toml or ~/.config/sknext/sknext.toml
package config
