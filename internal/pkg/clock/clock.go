// Package clock abstracts wall time so order timestamps are testable.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

type system struct{}

func NewSystem() Clock { return system{} }

func (system) Now() time.Time { return time.Now().UTC() }

type fixed struct{ t time.Time }

// NewFixed returns a Clock that always reports t.
func NewFixed(t time.Time) Clock { return fixed{t: t.UTC()} }

func (f fixed) Now() time.Time { return f.t }
