// Package query turns the handles of a drawing store into typed, lazily
// resolved sequences and container views.
//
// Every view and sequence shares a Scope, which binds them to one
// transaction supplied by the session. Nothing is cached: each pass over a
// sequence re-reads the container and re-resolves every member through
// the transaction, so a pass after a mutation observes it.
//
//	scope := query.NewScope(store.Begin)
//	layers := query.Layers.View(scope)
//	h, err := layers.Add(records.NewLayer("walls"))
//	for layer, err := range layers.All() {
//		...
//	}
package query
