// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dashboardstore

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks. Every error returned by the
// store wraps exactly one of these inside an [*Error].
var (
	// ErrNotFound means a category or widget ID did not match.
	ErrNotFound = errors.New("not found")

	// ErrEmptyName means a widget name was empty after trimming
	// whitespace.
	ErrEmptyName = errors.New("widget name is required")

	// ErrEmptyType means a widget type was empty.
	ErrEmptyType = errors.New("widget type is required")

	// ErrDuplicateID means seed data reused a category or widget ID.
	ErrDuplicateID = errors.New("duplicate id")

	// ErrInvalidSeed means seed data failed schema validation.
	ErrInvalidSeed = errors.New("invalid seed")

	// ErrIDExhausted means the ID generator kept producing IDs that
	// are already in use.
	ErrIDExhausted = errors.New("could not generate a unique widget id")
)

// ErrorCategory classifies store errors so callers (the viewer's form,
// the CLI) can decide how to surface them without matching message
// text.
type ErrorCategory string

const (
	// CategoryValidation means the caller supplied bad input. The form
	// stays open and shows the message inline.
	CategoryValidation ErrorCategory = "validation"

	// CategoryNotFound means a referenced category or widget does not
	// exist. Retrying with the same IDs will not help.
	CategoryNotFound ErrorCategory = "not_found"

	// CategoryInternal means the store could not complete an otherwise
	// valid request.
	CategoryInternal ErrorCategory = "internal"
)

// Error is a categorized store error wrapping the underlying cause.
type Error struct {
	Category ErrorCategory
	Err      error
}

func (e *Error) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error so errors.Is reaches the
// sentinels.
func (e *Error) Unwrap() error { return e.Err }

func validation(format string, args ...any) *Error {
	return &Error{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

func notFound(format string, args ...any) *Error {
	return &Error{Category: CategoryNotFound, Err: fmt.Errorf(format, args...)}
}

func internal(format string, args ...any) *Error {
	return &Error{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}

// CategoryOf returns the category of a store error, or "" when err is
// nil or did not come from the store.
func CategoryOf(err error) ErrorCategory {
	var storeError *Error
	if errors.As(err, &storeError) {
		return storeError.Category
	}
	return ""
}
