// Package app provides the application service layer.
//
// Orchestrates the catalog use cases: list activities, sign up, unregister.
// Sits between HTTP handlers and the catalog store. Depends on the
// domain.CatalogStore interface, not on a concrete store.
package app
