//go:build !amd64

package shaid

import "time"

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

/* gotsc only reads the counter on amd64; elsewhere the wall clock stands in. */
func ticks() uint64 { return uint64(time.Now().UnixNano()) }
