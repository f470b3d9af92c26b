// Package kernel contains shared value objects used across the domain model:
// identifiers and monetary amounts. Value objects are immutable, validate
// themselves on construction, and are safe for concurrent use.
package kernel
