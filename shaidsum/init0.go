//go:build windows

package main

import (
	. "golang.org/x/sys/windows"
	"os"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

/* Consoles that cannot render ANSI codes get none. */
func init() {
	for _, f := range [2]*os.File{os.Stdout, os.Stderr} {
		h, mode := Handle(f.Fd()), uint32(0)
		if err := GetConsoleMode(h, &mode); err != nil {
			pNoCodesDefault = true
			break
		}
		if mode&ENABLE_VIRTUAL_TERMINAL_PROCESSING != 0 {
			continue
		}
		if err := SetConsoleMode(h, mode|ENABLE_VIRTUAL_TERMINAL_PROCESSING); err != nil {
			pNoCodesDefault = true
			break
		}
	}
	pNoCodes = pNoCodesDefault
}
