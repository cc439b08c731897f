// Package period computes calendar-month billing periods.
//
// The ledger bills on calendar months only; anniversary-based and rolling
// windows are not supported. Periods are pure values derived from a wall
// clock passed in by the caller, which keeps rollover behavior testable.
package period
