//go:build windows

package console

import "golang.org/x/sys/windows"

var (
	kernel32           = windows.NewLazySystemDLL("kernel32.dll")
	setConsoleOutputCP = kernel32.NewProc("SetConsoleOutputCP")
)

// forceUTF8 sets the output code page to UTF-8. Failure leaves the code page
// unchanged.
func forceUTF8() {
	_, _, _ = setConsoleOutputCP.Call(uintptr(windows.CP_UTF8))
}
