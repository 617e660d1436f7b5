// Package fnmode implements the system-facing operations behind enable-fn:
// reading and writing the hid_apple fnmode sysfs parameter, loading the
// kernel module, idempotent editing of the modprobe.d options line, and
// rebuilding the initramfs so the persistent setting survives early boot.
//
// All external commands run through the CommandRunner interface so tests
// can substitute a mock.
package fnmode
