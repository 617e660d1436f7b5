// Package log provides simple leveled logging for enable-fn.
//
// Messages carry a color-coded severity prefix ([DBG], [INF], [WRN], [ERR]).
// Colors are only emitted when stdout is a terminal. Errors always go to
// stderr; everything else goes to stdout unless SetForceStdErr is used.
// Debug messages are suppressed unless verbose mode is enabled with
// SetVerbose(true).
package log
