// Package model exposes the type representation rendered by language
// targets: a Module of named declarations with typed fields. The structures
// live in internal/model; this package re-exports them for consumers.
package model
