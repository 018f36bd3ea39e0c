// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package confirm gates every destructive dashboard action behind an
// explicit confirm/cancel step. One workflow instance is shared across all
// three deletable resource kinds; at most one delete intent exists at a
// time, and no delete executes outside the Executing state.
package confirm

import (
	"context"
	"fmt"
	"sync"
)

// Kind identifies which resource a delete intent targets.
type Kind string

const (
	KindProgram    Kind = "program"
	KindContact    Kind = "contact"
	KindNewsletter Kind = "newsletter"
)

// State is the workflow position.
type State int

const (
	// Idle: no delete intent exists.
	Idle State = iota
	// PendingConfirm: an intent is recorded, awaiting confirm or cancel.
	// Entering this state performs no side effect.
	PendingConfirm
	// Executing: the confirmed delete is being dispatched.
	Executing
)

// Intent is one recorded delete request.
type Intent struct {
	Kind        Kind
	ID          string
	DisplayName string
}

// Deleter executes the actual deletion for one resource kind.
type Deleter func(ctx context.Context, id string) error

// Workflow is the confirm/cancel state machine. Safe for concurrent use;
// a second delete request while one is pending or executing is rejected.
type Workflow struct {
	mu       sync.Mutex
	state    State
	intent   Intent
	deleters map[Kind]Deleter
}

// New creates a workflow dispatching to the given per-kind deleters.
func New(deleters map[Kind]Deleter) *Workflow {
	return &Workflow{deleters: deleters}
}

// Request records a delete intent and moves Idle → PendingConfirm.
// It performs no side effect. Returns an error if another intent is
// already pending or executing.
func (w *Workflow) Request(kind Kind, id, displayName string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != Idle {
		return fmt.Errorf("a delete is already pending")
	}
	if _, ok := w.deleters[kind]; !ok {
		return fmt.Errorf("no deleter for kind %q", kind)
	}

	w.state = PendingConfirm
	w.intent = Intent{Kind: kind, ID: id, DisplayName: displayName}
	return nil
}

// Pending returns the recorded intent while one awaits confirmation.
func (w *Workflow) Pending() (Intent, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != PendingConfirm {
		return Intent{}, false
	}
	return w.intent, true
}

// State returns the current workflow state.
func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Cancel clears a pending intent with no side effect. Canceling an idle
// workflow is a no-op; an executing delete cannot be canceled.
func (w *Workflow) Cancel() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state == PendingConfirm {
		w.state = Idle
		w.intent = Intent{}
	}
}

// Confirm moves PendingConfirm → Executing, dispatches the intent's
// deleter, and returns to Idle regardless of outcome. The deleter's error,
// if any, is returned for the caller to surface as resource-scoped state.
func (w *Workflow) Confirm(ctx context.Context) error {
	w.mu.Lock()
	if w.state != PendingConfirm {
		w.mu.Unlock()
		return fmt.Errorf("nothing to confirm")
	}
	w.state = Executing
	intent := w.intent
	deleter := w.deleters[intent.Kind]
	w.mu.Unlock()

	err := deleter(ctx, intent.ID)

	w.mu.Lock()
	w.state = Idle
	w.intent = Intent{}
	w.mu.Unlock()

	return err
}
