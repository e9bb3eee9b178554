package order

import (
	"errors"
	"fmt"
	"strings"

	"storefront/internal/pkg/errs"
)

var ErrIllegalTransition = errors.New("illegal status transition")

// Status is the fulfillment state of an order.
//
//	Pending ──> Confirmed ──> Preparing ──> OutForDelivery ──> Delivered
//	   │            │             │
//	   └────────────┴─────────────┴──> Cancelled
//
// Delivered and Cancelled are terminal.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota
	Pending
	Confirmed
	Preparing
	OutForDelivery
	Delivered
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "unknown",
		Pending:        "pending",
		Confirmed:      "confirmed",
		Preparing:      "preparing",
		OutForDelivery: "out_for_delivery",
		Delivered:      "delivered",
		Cancelled:      "cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:        "pending",
		Confirmed:      "confirmed",
		Preparing:      "preparing",
		OutForDelivery: "out_for_delivery",
		Delivered:      "delivered",
		Cancelled:      "cancelled",
	}
}

// getForwardSteps is the fulfillment chain; each state may only advance one step.
func getForwardSteps() map[Status]Status {
	return map[Status]Status{
		Pending:        Confirmed,
		Confirmed:      Preparing,
		Preparing:      OutForDelivery,
		OutForDelivery: Delivered,
	}
}

// Statuses lists every valid status in fulfillment order.
func Statuses() []Status {
	return []Status{Pending, Confirmed, Preparing, OutForDelivery, Delivered, Cancelled}
}

// ParseStatus maps a wire name onto a Status.
func ParseStatus(s string) (Status, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for status, str := range getValidStatusStrings() {
		if str == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// IsCancellable reports whether s may move to Cancelled.
func (s Status) IsCancellable() bool {
	return s == Pending || s == Confirmed || s == Preparing
}

// Transition decides whether an order in current may move to requested.
// It is total over valid statuses: the result is either requested or an error
// wrapping ErrIllegalTransition. Same-state requests are illegal.
func Transition(current, requested Status) (Status, error) {
	if err := errors.Join(current.Validate(), requested.Validate()); err != nil {
		return Unknown, err
	}

	if requested == Cancelled && current.IsCancellable() {
		return Cancelled, nil
	}

	if next, ok := getForwardSteps()[current]; ok && next == requested {
		return requested, nil
	}

	return Unknown, errs.NewConflictErrorWithCause(
		"status",
		fmt.Sprintf("%s -> %s", current, requested),
		ErrIllegalTransition,
	)
}
