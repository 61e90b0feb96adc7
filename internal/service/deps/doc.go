// Package deps installs the panel's Python dependencies through pip.
//
// A missing dependency manifest is fatal and is detected before any
// subprocess is started, so a broken checkout never reaches the launch step.
package deps
