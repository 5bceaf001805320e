// Package dberr defines the error-kind taxonomy shared by every columndb
// component. Call sites wrap one of these sentinels with fmt.Errorf's %w
// verb and callers compare with errors.Is, the same sentinel-plus-wrap
// idiom used throughout the pack for storage errors.
package dberr

import "errors"

var (
	// NotFound indicates a requested key, row, or file does not exist.
	NotFound = errors.New("not found")
	// OutOfRange indicates a row or column index outside its valid bounds.
	OutOfRange = errors.New("out of range")
	// TypeMismatch indicates a value's DataType does not match its column.
	TypeMismatch = errors.New("type mismatch")
	// ArityMismatch indicates a row's value count does not match the schema.
	ArityMismatch = errors.New("arity mismatch")
	// Integrity indicates a validation or verification failure (row-count
	// mismatch on migration, hash-chain tamper, etc).
	Integrity = errors.New("integrity violation")
	// Unsupported indicates an operation this backend does not offer.
	Unsupported = errors.New("unsupported operation")
	// InvalidInput indicates malformed SQL, a URL, or a type name.
	InvalidInput = errors.New("invalid input")
	// NotImplemented is a reserved path (e.g. non-MATCH Cypher verbs).
	NotImplemented = errors.New("not implemented")
	// Cancelled indicates a caller-requested cancellation took effect.
	Cancelled = errors.New("cancelled")
	// Io indicates a checkpoint or file I/O failure.
	Io = errors.New("io error")
	// Crypto indicates a hashing failure.
	Crypto = errors.New("crypto error")
	// AlreadyExists indicates a duplicate insert, type, or secret.
	AlreadyExists = errors.New("already exists")
)
