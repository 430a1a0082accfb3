// Copyright (c) Sentia. All rights reserved.
// Licensed under the MIT License.

package azdeploy

import (
	"errors"
	"fmt"
)

var _ error = (*ErrPropertyMustNotBeEmpty)(nil)
var _ error = (*InvalidSelectionError)(nil)
var _ error = (*DuplicateNamespaceError)(nil)
var _ error = (*ValidationError)(nil)
var _ error = (*PolicyUpsertError)(nil)

// ErrNoSubscriptions is returned when the signed-in account has no
// subscriptions to select from.
var ErrNoSubscriptions = errors.New("no subscriptions available for the signed-in account")

// ErrPropertyMustNotBeEmpty is an error type that indicates a required
// configuration property is empty.
type ErrPropertyMustNotBeEmpty struct {
	PropertyName string
}

// Error implements the error interface for type ErrPropertyMustNotBeEmpty.
func (e *ErrPropertyMustNotBeEmpty) Error() string {
	return fmt.Sprintf("property '%s' must not be empty", e.PropertyName)
}

// NewErrPropertyMustNotBeEmpty creates a new ErrPropertyMustNotBeEmpty error.
func NewErrPropertyMustNotBeEmpty(propertyName string) error {
	return &ErrPropertyMustNotBeEmpty{PropertyName: propertyName}
}

// InvalidSelectionError indicates a subscription chooser returned an index
// outside [0, Count).
type InvalidSelectionError struct {
	Index int
	Count int
}

// Error implements the error interface for type InvalidSelectionError.
func (e *InvalidSelectionError) Error() string {
	return fmt.Sprintf("subscription selection %d out of range, must be between 0 and %d", e.Index, e.Count-1)
}

// DuplicateNamespaceError indicates the same provider namespace was supplied
// more than once to the allowed-resource-type collector.
type DuplicateNamespaceError struct {
	Namespace string
}

// Error implements the error interface for type DuplicateNamespaceError.
func (e *DuplicateNamespaceError) Error() string {
	return fmt.Sprintf("provider namespace '%s' supplied more than once", e.Namespace)
}

// ValidationError is returned when the template validation pass fails.
// The provider's error detail is carried verbatim; the real deployment is
// never attempted after one of these.
type ValidationError struct {
	Code    string
	Message string
	err     error
}

// Error implements the error interface for type ValidationError.
func (e *ValidationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("template validation failed: %v", e.err)
	}
	return fmt.Sprintf("template validation failed: %s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying provider error, if any.
func (e *ValidationError) Unwrap() error {
	return e.err
}

// PolicyUpsertError is returned when a policy definition could not be created
// or updated. It is distinct from "not found": a missing definition is a
// normal create path, not an error. An upsert error is non-fatal to the run;
// the policy assignment step is skipped instead.
type PolicyUpsertError struct {
	Name string
	err  error
}

// Error implements the error interface for type PolicyUpsertError.
func (e *PolicyUpsertError) Error() string {
	return fmt.Sprintf("policy definition '%s' upsert failed: %v", e.Name, e.err)
}

// Unwrap returns the underlying provider error.
func (e *PolicyUpsertError) Unwrap() error {
	return e.err
}
