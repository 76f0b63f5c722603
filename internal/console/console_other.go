//go:build !windows

package console

func forceUTF8() {}
