// Package migrations registers the schema migrations. cmd/bookstore
// imports it for its init() side effects.
package migrations
