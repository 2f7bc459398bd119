//go:build !windows

package main

func findMainHwnd() uintptr { return 0 }

func focusWindow(hwnd uintptr) {}
