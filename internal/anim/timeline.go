/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package anim is a small declarative animation scheduler. Animations carry a
// start delay, a duration, an easing curve and callbacks; delayed tasks carry a
// due time and can be cancelled. Nothing runs on its own: the host calls
// Timeline.Tick once per frame and every callback runs synchronously inside
// that call, on the caller's goroutine.
package anim

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// ID identifies an animation or task on its timeline.
type ID uint64

// Spec describes an animation to schedule.
type Spec struct {
	Delay    time.Duration
	Duration time.Duration
	Easing   EasingFunc // defaults to Linear

	// OnStart runs once, on the first tick at or after the delay has elapsed.
	OnStart func()
	// Update receives eased progress; the final call always receives exactly 1.
	Update func(progress float64)
	// OnComplete runs after the final Update. It does not run when cancelled.
	OnComplete func()
}

// Animation is a scheduled Spec.
type Animation struct {
	id        ID
	seq       uint64
	start     time.Time
	spec      Spec
	started   bool
	done      atomic.Bool
	cancelled atomic.Bool
}

func (a *Animation) ID() ID { return a.id }

// Cancel stops the animation; no further callbacks run.
func (a *Animation) Cancel() {
	if a != nil {
		a.cancelled.Store(true)
	}
}

func (a *Animation) Cancelled() bool { return a.cancelled.Load() }

// Done reports whether the animation ran to completion.
func (a *Animation) Done() bool { return a.done.Load() }

// End is the time the animation reaches its final value.
func (a *Animation) End() time.Time { return a.start.Add(a.spec.Duration) }

// Task is a cancellable delayed callback.
type Task struct {
	id        ID
	seq       uint64
	due       time.Time
	fn        func()
	fired     atomic.Bool
	cancelled atomic.Bool
}

func (t *Task) ID() ID { return t.id }

// Cancel prevents the task from firing. Cancelling a fired task is a no-op.
func (t *Task) Cancel() {
	if t != nil {
		t.cancelled.Store(true)
	}
}

// Pending reports whether the task will still fire.
func (t *Task) Pending() bool {
	return t != nil && !t.fired.Load() && !t.cancelled.Load()
}

func (t *Task) Due() time.Time { return t.due }

// Timeline owns the running animations and pending tasks.
type Timeline struct {
	mu     sync.Mutex
	clock  Clock
	nextID ID
	seq    uint64
	anims  []*Animation
	tasks  []*Task

	onActiveChange func(active bool)
}

// NewTimeline creates a timeline reading time from clock. A nil clock uses
// the wall clock.
func NewTimeline(clock Clock) *Timeline {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Timeline{clock: clock}
}

// Now returns the timeline clock's current time.
func (tl *Timeline) Now() time.Time { return tl.clock.Now() }

// OnActiveChange registers fn to be told when the timeline goes from idle to
// busy and back. Hosts use it to start and stop their frame driver.
func (tl *Timeline) OnActiveChange(fn func(active bool)) {
	tl.mu.Lock()
	tl.onActiveChange = fn
	tl.mu.Unlock()
}

// Animate schedules spec. Its delay counts from now.
func (tl *Timeline) Animate(spec Spec) *Animation {
	if spec.Easing == nil {
		spec.Easing = Linear
	}
	if spec.Delay < 0 {
		spec.Delay = 0
	}
	if spec.Duration < 0 {
		spec.Duration = 0
	}
	now := tl.clock.Now()
	tl.mu.Lock()
	wasIdle := tl.idleLocked()
	tl.nextID++
	tl.seq++
	a := &Animation{id: tl.nextID, seq: tl.seq, start: now.Add(spec.Delay), spec: spec}
	tl.anims = append(tl.anims, a)
	cb := tl.onActiveChange
	tl.mu.Unlock()
	if wasIdle && cb != nil {
		cb(true)
	}
	return a
}

// After schedules fn to run on the first tick at or after now+d.
func (tl *Timeline) After(d time.Duration, fn func()) *Task {
	if d < 0 {
		d = 0
	}
	now := tl.clock.Now()
	tl.mu.Lock()
	wasIdle := tl.idleLocked()
	tl.nextID++
	tl.seq++
	t := &Task{id: tl.nextID, seq: tl.seq, due: now.Add(d), fn: fn}
	tl.tasks = append(tl.tasks, t)
	cb := tl.onActiveChange
	tl.mu.Unlock()
	if wasIdle && cb != nil {
		cb(true)
	}
	return t
}

// Active reports whether anything is still scheduled.
func (tl *Timeline) Active() bool {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	return !tl.idleLocked()
}

// Count returns the number of scheduled animations and tasks.
func (tl *Timeline) Count() (animations, tasks int) {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	return len(tl.anims), len(tl.tasks)
}

func (tl *Timeline) idleLocked() bool { return len(tl.anims) == 0 && len(tl.tasks) == 0 }

// finishing is a completion or task callback ordered by the instant it
// logically happens.
type finishing struct {
	at  time.Time
	seq uint64
	fn  func()
}

type frame struct {
	anim     *Animation
	starting bool
	progress float64
}

// Tick advances every animation to now and fires due tasks. Starts and
// progress updates run first, in scheduling order; completions and tasks then
// run in the order of the instant they fall due. Callbacks may schedule new
// work; it is picked up by the next tick. Returns true while work remains.
func (tl *Timeline) Tick(now time.Time) bool {
	tl.mu.Lock()
	var frames []frame
	var finishes []finishing
	keep := tl.anims[:0]
	for _, a := range tl.anims {
		if a.cancelled.Load() {
			continue
		}
		if now.Before(a.start) {
			keep = append(keep, a)
			continue
		}
		f := frame{anim: a, starting: !a.started}
		a.started = true
		elapsed := now.Sub(a.start)
		if a.spec.Duration <= 0 || elapsed >= a.spec.Duration {
			f.progress = 1
			a.done.Store(true)
			if a.spec.OnComplete != nil {
				anim := a
				finishes = append(finishes, finishing{at: a.End(), seq: a.seq, fn: func() {
					if !anim.cancelled.Load() {
						anim.spec.OnComplete()
					}
				}})
			}
		} else {
			f.progress = a.spec.Easing(float64(elapsed) / float64(a.spec.Duration))
			keep = append(keep, a)
		}
		frames = append(frames, f)
	}
	clear(tl.anims[len(keep):])
	tl.anims = keep

	keepTasks := tl.tasks[:0]
	for _, t := range tl.tasks {
		if t.cancelled.Load() {
			continue
		}
		if now.Before(t.due) {
			keepTasks = append(keepTasks, t)
			continue
		}
		task := t
		finishes = append(finishes, finishing{at: t.due, seq: t.seq, fn: func() {
			if task.cancelled.Load() {
				return
			}
			task.fired.Store(true)
			task.fn()
		}})
	}
	clear(tl.tasks[len(keepTasks):])
	tl.tasks = keepTasks
	hadWork := len(frames) > 0 || len(finishes) > 0
	cb := tl.onActiveChange
	tl.mu.Unlock()

	for _, f := range frames {
		// an earlier callback in this tick may have cancelled it
		if f.anim.cancelled.Load() {
			continue
		}
		if f.starting && f.anim.spec.OnStart != nil {
			f.anim.spec.OnStart()
		}
		if f.anim.spec.Update != nil {
			f.anim.spec.Update(f.progress)
		}
	}
	sort.SliceStable(finishes, func(i, j int) bool {
		if !finishes[i].at.Equal(finishes[j].at) {
			return finishes[i].at.Before(finishes[j].at)
		}
		return finishes[i].seq < finishes[j].seq
	})
	for _, f := range finishes {
		f.fn()
	}

	active := tl.Active()
	if hadWork && !active && cb != nil {
		cb(false)
	}
	return active
}
