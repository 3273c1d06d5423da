// Package billing holds the plan gate: per-plan row ceilings on the
// user-owned tables that free accounts may only fill up to a fixed count.
//
// The gate is evaluated before an insert and never after, so a rejected
// request leaves no partial write behind.
package billing
