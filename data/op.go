// Copyright 2026 the dc-badwires authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

package data

import (
	"context"
	"log"
)

// RunContext carries the per-run paths the chain stages operate on.
type RunContext struct {
	// Input is the local path of the run's histogram file.
	Input string
	// RunDir is the run-owned output directory (<base>/<run number>).
	RunDir string
}

// Op is one stage of the per-run chain. Stages run sequentially; a failing
// stage aborts the rest of the chain for that run only.
type Op interface {
	GetDescription() string
	Run(ctx context.Context, rc *RunContext) error
}

// OpFunc adapts a plain function to an Op.
type OpFunc struct {
	Description string
	Func        func(ctx context.Context, rc *RunContext) error
}

func (o OpFunc) GetDescription() string { return o.Description }

func (o OpFunc) Run(ctx context.Context, rc *RunContext) error { return o.Func(ctx, rc) }

// OpArray chains stages over one run.
type OpArray []Op

// Run executes the stages in order, stopping at the first failure.
func (ops OpArray) Run(ctx context.Context, rc *RunContext) error {
	for i, o := range ops {
		log.Printf("run %s: stage %d) %s", rc.Input, i, o.GetDescription())
		if err := o.Run(ctx, rc); err != nil {
			return err
		}
	}
	return nil
}
