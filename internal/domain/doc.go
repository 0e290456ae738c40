// Package domain defines the activity catalog types, the store contract and
// the sentinel errors shared by the service and its adapters.
package domain
