// Package order holds the Order aggregate and its fulfillment state machine.
//
// An order is created Pending with immutable line snapshots, customer data,
// delivery fee and total. Afterwards only its status moves, and only along
// the graph encoded by Transition:
//
//	pending -> confirmed -> preparing -> out_for_delivery -> delivered
//	pending | confirmed | preparing -> cancelled
//
// The aggregate records DomainEvents (OrderPlaced, OrderStatusChanged) that
// the persistence layer writes to the outbox on commit.
package order
