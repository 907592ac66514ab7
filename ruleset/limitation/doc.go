// Package limitation provides the section 36 limitation-clause
// vocabulary.
//
// A limitation of a right is justified only when it is imposed by a law
// of general application, pursues an important purpose, and survives
// proportionality review. Proportionality itself is a nested composite
// of suitability, necessity, and proportionality in the narrow sense,
// so a justification trace shows exactly which stage of the analysis a
// limitation failed at.
package limitation
