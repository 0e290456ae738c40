// Package catalog provides the in-memory activity catalog.
//
// The store is seeded at construction and lives for the process lifetime. It
// never persists. Serialization is chosen with a LockMode: one lock for the
// whole catalog, one lock per activity, or none at all.
package catalog
