// Package dberr defines the error taxonomy shared by every layer of the
// storage engine. Components wrap one of these sentinels with fmt.Errorf's
// %w verb so callers can branch on kind with errors.Is while the message
// still carries block/transaction-specific context.
package dberr

import "errors"

var (
	// ErrIO marks a file/disk failure. Fatal to the affected transaction.
	ErrIO = errors.New("io failure")

	// ErrBufferAbort marks a buffer pool pin that could not be satisfied
	// within the configured wait timeout.
	ErrBufferAbort = errors.New("buffer abort: no buffer available")

	// ErrLockAbort marks a lock request that timed out.
	ErrLockAbort = errors.New("lock abort: timed out waiting for lock")

	// ErrBadSyntax marks a SQL parse failure.
	ErrBadSyntax = errors.New("bad syntax")

	// ErrSchema marks an unknown table/field or a catalog type mismatch.
	ErrSchema = errors.New("schema error")

	// ErrInvalidValue marks a value that cannot be stored as requested,
	// e.g. a string that overflows its reserved field length.
	ErrInvalidValue = errors.New("invalid value")

	// ErrProgrammer marks a violated API contract, e.g. a record larger
	// than one block. Not recoverable by retrying.
	ErrProgrammer = errors.New("programmer error")
)
