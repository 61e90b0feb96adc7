// Package bootstrap orchestrates the developer-environment setup sequence:
// pip install, default .env materialization, panel launch. Strictly
// sequential; the first error aborts the remaining steps.
package bootstrap
