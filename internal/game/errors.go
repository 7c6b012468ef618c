package game

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindNotFound            Kind = "not_found"
	KindForbidden           Kind = "forbidden"
	KindRoomClosed          Kind = "room_closed"
	KindStaleSubmission     Kind = "stale_submission"
	KindDuplicateSubmission Kind = "duplicate_submission"
	KindValidation          Kind = "validation"
	KindInternal            Kind = "internal"
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	ErrQuizNotFound        = &Error{Kind: KindNotFound, Message: "quiz not found"}
	ErrRoomNotFound        = &Error{Kind: KindNotFound, Message: "room not found"}
	ErrPlayerNotFound      = &Error{Kind: KindNotFound, Message: "player not in room"}
	ErrRoomClosed          = &Error{Kind: KindRoomClosed, Message: "room is closed"}
	ErrForbidden           = &Error{Kind: KindForbidden, Message: "only the host may do that"}
	ErrStaleSubmission     = &Error{Kind: KindStaleSubmission, Message: "question is no longer accepting answers"}
	ErrDuplicateSubmission = &Error{Kind: KindDuplicateSubmission, Message: "answer already submitted for this question"}
)

func NewValidationError(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the error kind surfaced to clients in error events.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
