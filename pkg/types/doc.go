// Package types defines the Shelter and PetTable interfaces, the Pet entity,
// the pets table schema contract, and the standard error values for the
// shelter storage system.
//
// The schema constants in this package are the single authoritative
// definition of the pets table. Backends derive their DDL and projections
// from them.
package types
