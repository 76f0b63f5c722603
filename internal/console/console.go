// internal/console/console.go
// Package console prepares the hosting terminal for the emoji-heavy tool
// output.
package console

// ForceUTF8 switches the console output code page to UTF-8 on Windows. On
// every other platform it is a no-op.
func ForceUTF8() {
	forceUTF8()
}
