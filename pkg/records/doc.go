// Package records defines the concrete object families of a drawing: the
// header, symbol tables and their records, block records, dictionaries and
// their entries, and entities. Every type registers its runtime class name
// and blank factory with the types registry.
package records
