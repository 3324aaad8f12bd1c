// Package config loads and validates the TOML configuration shared by the
// msglogd daemon and the msglog CLI. Both binaries must resolve the same
// socket path, so all path defaults live here.
package config
