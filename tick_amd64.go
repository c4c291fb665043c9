package shaid

import "github.com/dterei/gotsc"

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// ticks reads the time-stamp counter.
func ticks() uint64 { return gotsc.BenchStart() }
