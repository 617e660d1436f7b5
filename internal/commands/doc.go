// Package commands implements the enable-fn CLI actions.
//
// Each action is a Runner with its own flag set, created by a Create*
// function and driven by main: the interactive menu (default), the
// temporary and permanent fixes, undo, dry-run, status and the backup
// listing. Mutating actions are gated behind a confirmation prompt and a
// root check; the privilege error maps to process exit code 2.
package commands
