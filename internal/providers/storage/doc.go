// Package storage provides the key-value capability used to persist desktop
// state between sessions.
//
// Two drivers exist: an in-memory store for tests and ephemeral servers, and
// a file store that keeps one JSON blob per key. The file store overwrites
// blobs atomically (natefinch/atomic) and serializes writers sharing a root
// with an advisory lock file (gofrs/flock).
//
// Values are opaque bytes. GetJSON and SetJSON encode with sonic.
//
// Failures are never fatal to callers above this package: consumers log and
// fall back to defaults.
package storage
