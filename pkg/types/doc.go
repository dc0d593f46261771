// Package types defines the store contract for the drafts query layer:
// handles, open modes, the Object interface every persisted record satisfies,
// the Store and Transaction capabilities a backend supplies, the class
// registry, configuration, and the standard sentinel errors.
package types
