// Package dupcheck generates identifiers in a loop and reports any that repeat.
package dupcheck

import (
	"context"
	"fmt"
	"github.com/p7r0x7/shaid/internal/seen"
	"github.com/prometheus/client_golang/prometheus"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

type Report struct {
	Generated  uint64
	Duplicates []string
}

type Checker struct {
	next  func() string
	set   seen.Set
	onDup func(id string)

	generated  prometheus.Counter
	duplicates prometheus.Counter
}

// New returns a Checker that draws from next and remembers identifiers in set. Its counters
// are registered with reg when reg is non-nil.
func New(next func() string, set seen.Set, reg prometheus.Registerer) (*Checker, error) {
	c := &Checker{
		next: next,
		set:  set,
		generated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "shaid_identifiers_generated_total",
			Help: "Identifiers generated by the duplicate check.",
		}),
		duplicates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "shaid_identifiers_duplicate_total",
			Help: "Identifiers the duplicate check had already seen.",
		}),
	}
	if reg != nil {
		for _, col := range []prometheus.Collector{c.generated, c.duplicates} {
			if err := reg.Register(col); err != nil {
				return nil, fmt.Errorf("registering metrics: %w", err)
			}
		}
	}
	return c, nil
}

// OnDuplicate sets a function called with each repeated identifier as it is found.
func (c *Checker) OnDuplicate(fn func(id string)) { c.onDup = fn }

// Run generates n identifiers, or runs until ctx is done when n is 0. Cancellation is not an
// error: the report covers whatever was generated.
func (c *Checker) Run(ctx context.Context, n uint64) (Report, error) {
	var r Report
	for n == 0 || r.Generated < n {
		select {
		case <-ctx.Done():
			return r, nil
		default:
		}

		id := c.next()
		r.Generated++
		c.generated.Inc()
		dup, err := c.set.Add(id)
		if err != nil {
			return r, err
		}
		if dup {
			c.duplicates.Inc()
			r.Duplicates = append(r.Duplicates, id)
			if c.onDup != nil {
				c.onDup(id)
			}
		}
	}
	return r, nil
}
