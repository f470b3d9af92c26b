// Package order contains the Order aggregate: a single consignment assigned
// to at most one delivery at a time. The aggregate enforces the order status
// lifecycle and the invariant that an order without an owning delivery is
// always in the unrouted status.
package order
