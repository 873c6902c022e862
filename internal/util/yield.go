// Copyright 2024 Humanitec
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package util

import "context"

// Budget tracks how many suspension points have passed since the last
// cancellation check, and checks ctx at a bounded interval instead of on
// every iteration. This replaces the cooperative-yield model the pipeline
// was originally built around: a goroutine doesn't need to hand control
// back voluntarily, it just needs to notice ctx was cancelled often enough
// that a cancel is observed promptly.
type Budget struct {
	ctx     context.Context
	every   int
	counter int
}

// NewBudget creates a Budget that checks ctx.Done() once every `every`
// calls to Tick. A non-positive every checks on every call.
func NewBudget(ctx context.Context, every int) *Budget {
	if every <= 0 {
		every = 1
	}
	return &Budget{ctx: ctx, every: every}
}

// Tick should be called at each suspension point (a loop iteration, a
// resource load, a before-plugin-hook call). It returns ctx.Err() once
// the context has been cancelled; otherwise nil.
func (b *Budget) Tick() error {
	b.counter++
	if b.counter < b.every {
		return nil
	}
	b.counter = 0
	select {
	case <-b.ctx.Done():
		return b.ctx.Err()
	default:
		return nil
	}
}
