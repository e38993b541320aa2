// Package memory provides thread-safe, in-memory implementations of the domain repositories.
// Every read returns copies so callers never alias stored records.
package memory
