// Package paja provides the administrative-justice vocabulary under
// the Promotion of Administrative Justice Act.
//
// The vocabulary covers two questions: whether conduct amounts to
// administrative action at all (the threshold test), and whether an
// administrative action is lawful (authorized, procedurally fair,
// reasonable, and challenged within the 180-day window).
package paja
