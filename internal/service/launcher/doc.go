// Package launcher starts the panel application as a detached background
// process with its combined output redirected to a truncated log file.
//
// The default mode is fire-and-forget: the process is released right after
// start and its exit code is never observed. The optional supervised mode
// (Options.Wait) keeps the process attached until it answers HTTP on its
// bind address, surfacing early exits instead of silence. Status and Stop
// operate on the pid file recorded at launch.
package launcher
