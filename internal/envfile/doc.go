// Package envfile owns the panel's .env configuration file.
//
// Ensure materializes a fixed default template on first run and is a strict
// no-op when the file already exists. LoadSettings reads the file into an
// immutable Settings value using the same defaults the panel application
// applies, so the tool and the panel agree on effective configuration.
package envfile
