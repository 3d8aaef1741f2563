package services

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a DomainError so the transport layer can map it to a
// response status without parsing messages.
type ErrorKind string

const (
	// KindValidation marks malformed or out-of-range input.
	KindValidation ErrorKind = "validation"
	// KindConflict marks duplicate titles, category names or votes.
	KindConflict ErrorKind = "conflict"
	// KindNotFound marks a referenced entity that does not exist.
	KindNotFound ErrorKind = "not_found"
	// KindForbidden marks a caller who is not allowed to perform the call.
	KindForbidden ErrorKind = "forbidden"
)

// Failure codes returned by the governance service.
const (
	CodeInvalidName        = "INVALID_NAME"
	CodeInvalidEmail       = "INVALID_EMAIL"
	CodeEmptyName          = "EMPTY_NAME"
	CodeDuplicateCategory  = "DUPLICATE_CATEGORY"
	CodeInvalidTitle       = "INVALID_TITLE"
	CodeInvalidDescription = "INVALID_DESCRIPTION"
	CodeUnknownUser        = "UNKNOWN_USER"
	CodeDuplicateTitle     = "DUPLICATE_TITLE"
	CodeUnknownCategory    = "UNKNOWN_CATEGORY"
	CodeUnknownProposal    = "UNKNOWN_PROPOSAL"
	CodeProposalNotOpen    = "PROPOSAL_NOT_OPEN"
	CodeInvalidChoice      = "INVALID_CHOICE"
	CodeDuplicateVote      = "DUPLICATE_VOTE"
	CodeAlreadyClosed      = "ALREADY_CLOSED"
	CodeNotCreator         = "NOT_CREATOR"
	CodeEmptyComment       = "EMPTY_COMMENT"
	CodeNotFound           = "NOT_FOUND"
)

// DomainError is the single failure shape returned by the governance
// service: a machine-checkable kind and code plus a human-readable message.
// A failed use case never leaves a partial write behind.
type DomainError struct {
	Kind    ErrorKind `json:"kind"`
	Code    string    `json:"code"`
	Message string    `json:"message"`
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	return e.Message
}

func newDomainError(kind ErrorKind, code, format string, args ...interface{}) *DomainError {
	return &DomainError{
		Kind:    kind,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// AsDomainError unwraps err into a *DomainError, if it is one.
func AsDomainError(err error) (*DomainError, bool) {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr, true
	}
	return nil, false
}

// HasCode reports whether err is a DomainError carrying the given code.
func HasCode(err error, code string) bool {
	domainErr, ok := AsDomainError(err)
	return ok && domainErr.Code == code
}
