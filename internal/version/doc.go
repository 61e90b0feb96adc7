// Package version exposes the panel-bootstrap build metadata.
//
// Version, Commit, and BuildTime are injected via Go ldflags and default to
// sensible values for local builds. Short and Full render the version
// string for CLI output.
package version
