package main

import (
	. "github.com/spf13/pflag"
	"os"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

var pConfig, pDB, pMetrics = "", "", ""
var pLength, pIDs, pCount, pNoCodesDefault = uint(0), uint(0), uint64(0), false
var pHelp, pBase64, pCheck, pHyphenate, pNoCodes, pQuiet, pStrict, pString, pTime, pDebug bool
var yell, purp, und, zero = "\033[33m", "\033[35m", "\033[4m", "\033[0m"

/* init1 runs after init0, which may already have disabled codes on Windows. */
func init() {
	for _, arg := range os.Args[1:] {
		switch arg {
		case "--no-codes=false":
			pNoCodes = false
		case "--quiet", "--quiet=true":
			pNoCodes, pQuiet = true, true
		case "--no-codes", "--no-codes=true":
			pNoCodes = true
		}
	}
	if pNoCodes {
		yell, purp, und, zero = "", "", "", ""
	}

	BoolVarP(&pHelp, "help", "h", false,
		purp+"print this help menu"+zero+n)

	BoolVarP(&pBase64, "base64", "b", false,
		purp+"render digests in base64"+zero+" (default hex)")

	BoolVarP(&pCheck, "check", "c", false,
		purp+"generate identifiers and report any repeats"+zero)

	StringVar(&pConfig, "config", "",
		purp+"read settings from a config file; SHAIDSUM_* environment"+zero+
			n+purp+"variables are always read"+zero)

	Uint64VarP(&pCount, "count", "n", 0,
		purp+"identifiers to generate with --check"+zero+" (0 runs until interrupted)")

	StringVar(&pDB, "db", "",
		purp+"remember identifiers seen by --check in a bbolt file"+zero)

	BoolVar(&pDebug, "debug", false, "")
	CommandLine.MarkHidden("debug")

	BoolVarP(&pHyphenate, "hyphenate", "H", false,
		purp+"render 128-bit digests grouped 8-4-4-4-12"+zero+" (implies -l 128)")

	UintVarP(&pIDs, "ids", "u", 0,
		purp+"print this many fresh identifiers"+zero)

	UintVarP(&pLength, "length", "l", 160,
		purp+"set output digest length in bits, 128 or 160"+zero)

	StringVar(&pMetrics, "metrics", "",
		purp+"serve Prometheus metrics on this address during --check"+zero)

	Bool("no-codes", pNoCodesDefault,
		purp+"print to console w/o formatting codes or simplified"+zero+
			n+purp+"filepaths"+zero)

	Bool("quiet", false,
		purp+"suppress non-breaking errors and print ONLY digests"+zero+
			n+"(enables --no-codes)")

	BoolVar(&pStrict, "strict", false,
		purp+"cause shaidsum to panic on any error"+zero)

	BoolVarP(&pString, "string", "s", false,
		purp+"process arguments instead as UTF-8 strings to be hashed"+zero)

	BoolVarP(&pTime, "time", "t", false,
		purp+"print time taken to read and hash each message"+zero)

	/* Order flags alphabetically except for help, which is hoisted to the top. */
	CommandLine.SortFlags = false
	Parse()
}
