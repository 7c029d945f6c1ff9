// Package services contains domain services that coordinate behavior not
// belonging to a single aggregate.
//
// OrderLockRegistry provides the per-order mutual-exclusion domain used by
// the transition and delete use cases: every status change and deletion of
// an order happens under that order's handle, which is what makes the
// read-validate-write sequence of a transition indivisible with respect to
// other callers touching the same order.
package services
