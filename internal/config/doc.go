// Package config loads and validates the enable-fn configuration file.
//
// The configuration is a TOML file (default: /etc/enable-fn/enable-fn.conf)
// and is entirely optional: every field has a built-in default matching a
// stock Debian/Ubuntu system, and a present file only overrides the fields
// it names. Validation runs through go-playground/validator with custom
// tags for fnmode values and absolute paths.
package config
