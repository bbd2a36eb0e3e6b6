// Package undo records compensating steps for in-memory writes so a failed
// unit of work can revert exactly what it changed.
package undo

import "sync"

// Log collects undo steps in the order their writes happened.
type Log struct {
	mu    sync.Mutex
	steps []func()
}

// Record appends the step reverting the latest write.
func (l *Log) Record(step func()) {
	if l == nil || step == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.steps = append(l.steps, step)
}

// Rollback runs the recorded steps newest first and clears the log.
func (l *Log) Rollback() {
	if l == nil {
		return
	}
	l.mu.Lock()
	steps := l.steps
	l.steps = nil
	l.mu.Unlock()
	for i := len(steps) - 1; i >= 0; i-- {
		steps[i]()
	}
}

// Len reports how many steps are pending.
func (l *Log) Len() int {
	if l == nil {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.steps)
}
