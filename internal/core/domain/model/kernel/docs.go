// Package kernel contains shared value objects used across all domain
// aggregates: UUID identity and Zipcode postal areas. Types in this package
// are immutable, validate themselves, and carry no behavior specific to any
// single aggregate.
package kernel
