// Package popia provides the data-protection vocabulary under the
// Protection of Personal Information Act.
//
// Lawful processing requires all eight conditions of chapter 3 to be
// met, while a processing justification needs only one of the section
// 11 grounds. The two composites exercise both conjunction and
// disjunction over the same fact.
package popia
