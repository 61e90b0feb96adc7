// Package config defines the bootstrap tool's settings and provides helpers
// to load, validate and save them in YAML format.
//
// All fields have defaults, so the tool runs without a settings file at all.
// The panel application's environment (.env) is a separate concern handled
// by the envfile package.
package config
