package main

import (
	"context"
	"encoding/base64"
	"errors"
	. "fmt"
	"github.com/p7r0x7/shaid"
	"github.com/p7r0x7/shaid/internal/config"
	"github.com/p7r0x7/shaid/internal/dupcheck"
	"github.com/p7r0x7/shaid/internal/seen"
	"github.com/p7r0x7/vainpath"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	. "github.com/spf13/pflag"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/pprof"
	"strings"
	"time"
	"unicode/utf8"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

const n = "\n"
const success, failure, invalid = 0, 1, 2

var cfg *config.Config
var warnings = 0

func main() { os.Exit(program()) }

// help prints a usage menu. To consistently correctly render this menu in most terminal windows,
// its content should be no wider than 80 columns.
func help() {
	origin, err := os.Executable()
	if err != nil {
		origin = "shaidsum" /* Default binary name */
	} else {
		origin = filepath.Base(origin)
	}
	name := vainpath.Trim(origin, "…", 12)
	spaces := strings.Repeat(" ", utf8.RuneCountInString(name)+3)
	Fprint(os.Stderr, yell, "Running SHA-1 digests and the identifiers made from them.", zero, n+n+
		"Usage:"+n+
		"  ", name, " [-h]"+n,
		spaces, "[-bHt] [-l <uint>] [--quiet|no-codes] [--strict] -|PATH..."+n,
		spaces, "[-bHt] [-l <uint>] [--quiet|no-codes] [--strict] -s STRING..."+n,
		spaces, "[-u <uint>] [-c [-n <uint>] [--db PATH] [--metrics ADDR]]"+n+n+
			"Options:"+n)
	PrintDefaults()
	name = vainpath.Trim(origin, "…", 15)
	Fprint(os.Stderr, n+"Order of arguments placed after `", name, "` does not matter unless `--` is"+
		n+"specified, signaling the end of parsed flags. Long-form flag equivalents are"+n+
		"above. `-` is treated as a reference to ", os.Stdin.Name(), " on this platform."+n+
		"Digests of messages that are not a multiple of 64 bytes long are zero-padded"+n+
		"and do not match sha1sum."+n)
}

// This program is a command-line interface for shaid: It hashes files and strings, prints fresh
// identifiers, and hunts for repeated identifiers.
func program() int {
	if pDebug {
		cf, err := os.Create("cpu.prof")
		if err != nil {
			panic(err)
		}
		_ = pprof.StartCPUProfile(cf)
		defer pprof.StopCPUProfile()
	}

	var err error
	if cfg, err = config.Load(pConfig, CommandLine); err != nil {
		Fprint(os.Stderr, purp, err, zero, n)
		return invalid
	}
	cfg.Strict = cfg.Strict || pDebug
	if cfg.NoCodes {
		yell, purp, und, zero = "", "", "", ""
	}
	if cfg.Hyphenate {
		cfg.Length = 128
	}

	if pHelp || NArg() == 0 && cfg.IDs == 0 && !cfg.Check {
		help()
		return success
	}

	for i := cfg.IDs; i > 0; i-- {
		Println(shaid.NewID())
	}
	if cfg.Check {
		if err := check(); err != nil {
			warn(err)
		}
	}

	for _, target := range Args() {
		start, delta, d := time.Now(), "", shaid.New()

		if cfg.String {
			d.WriteString(target)
		} else if target == "-" || target == os.Stdin.Name() {
			if _, err := io.Copy(d, os.Stdin); err != nil {
				warn(err)
				continue
			}
			go os.Stdin.Close() /* STDIN should not be reused. */
		} else {
			if file, err := os.Open(target); err != nil {
				warn(err)
				continue
			} else {
				_, err = io.Copy(d, file)
				go file.Close()
				if err != nil {
					warn(err)
					continue
				}
			}
		}

		if cfg.Time {
			t := time.Since(start)
			if t.Microseconds() > 99 {
				t = t.Truncate(10 * time.Microsecond)
			}
			delta = " (" + t.String() + ")"
		}

		if !cfg.Quiet {
			Print(yell)
		}
		Print(render(d))

		if cfg.Quiet {
			os.Stdout.WriteString(n)
		} else if cfg.String {
			Print(zero, `  "`, target, `"`, zero, delta, n)
		} else if cfg.NoCodes {
			Print(`  `, filepath.Clean(target), delta, n)
		} else {
			Print(zero, `  `, und, vainpath.Simplify(target), zero, delta, n)
		}
	}

	if !cfg.Quiet {
		if warnings == 1 {
			Fprint(os.Stderr, "1 ", purp, "target failed or is otherwise inaccessible.", zero, n)
		} else if warnings > 1 {
			Fprint(os.Stderr, warnings, " ", purp, "targets failed or are otherwise inaccessible.", zero, n)
		}
	}
	if warnings > 0 {
		return failure
	}
	return success
}

func render(d *shaid.Digest) string {
	switch {
	case cfg.Base64:
		return base64.StdEncoding.EncodeToString(d.Sum(nil)[:cfg.Length/8])
	case cfg.Hyphenate:
		return d.Identifier()
	case cfg.Length == 128:
		return d.Hex128()
	default:
		return d.Hex()
	}
}

// check runs the duplicate hunt until it has generated --count identifiers or is interrupted.
func check() error {
	var set seen.Set = seen.NewMemory()
	if cfg.DB != "" {
		b, err := seen.OpenBolt(cfg.DB)
		if err != nil {
			return err
		}
		set = b
	}
	defer set.Close()

	reg := prometheus.NewRegistry()
	checker, err := dupcheck.New(shaid.NewID, set, reg)
	if err != nil {
		return err
	}
	checker.OnDuplicate(func(id string) {
		Fprint(os.Stderr, purp, "Duplicate found! ", zero, yell, id, zero, n)
	})

	if cfg.Metrics != "" {
		srv := &http.Server{Addr: cfg.Metrics, Handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{})}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				Fprint(os.Stderr, purp, "metrics: ", err, zero, n)
			}
		}()
		defer srv.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	start := time.Now()
	report, err := checker.Run(ctx, cfg.Count)
	if err != nil {
		return err
	}

	if !cfg.Quiet {
		total, _ := set.Len()
		Fprint(os.Stderr, report.Generated, " ", purp, "identifiers generated in ", zero,
			time.Since(start).Truncate(time.Millisecond), ", ", len(report.Duplicates), " ", purp,
			"repeated", zero, ", ", total, " ", purp, "remembered.", zero, n)
	}
	if len(report.Duplicates) > 0 {
		return Errorf("%d duplicate identifiers", len(report.Duplicates))
	}
	return nil
}

func warn(err ...interface{}) {
	if cfg == nil || cfg.Strict {
		panic(err)
	}
	warnings++
}
