package core

import (
	"errors"

	"github.com/M4rkoza7/aces/internal/codec"
	"github.com/M4rkoza7/aces/internal/session"
	"github.com/M4rkoza7/aces/internal/table"
)

// UserMessage provides user-friendly error information with a stable code
// that can be quoted when reporting problems.
type UserMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
}

var defaultMessage = UserMessage{
	Code:    "GEN001",
	Message: "An unexpected error occurred",
	Action:  "Check the server log for details",
}

// MapError converts a technical error to a user-friendly message.
//
// Codes:
//
//	FMT001 - malformed table data
//	FMT002 - unsupported table version
//	TBL001 - duplicate key
//	TBL002 - record not found
//	TBL003 - last skin removal refused
//	SES001 - draft validation failed
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var verr *session.ValidationError
	switch {
	case errors.Is(err, codec.ErrUnsupportedVersion):
		return UserMessage{
			Code:    "FMT002",
			Message: "The table file uses a version this tool does not support",
			Action:  "Re-export the table with a matching tool version",
		}
	case errors.Is(err, codec.ErrFormat):
		return UserMessage{
			Code:    "FMT001",
			Message: "The table file is malformed or not a recognized table",
			Action:  "Check that the input is an asset pair or a JSON table dump",
		}
	case errors.Is(err, table.ErrDuplicateKey):
		return UserMessage{
			Code:    "TBL001",
			Message: "A plane with this ID already exists",
			Action:  "Pick a different PlaneStringID, or edit the existing plane",
		}
	case errors.Is(err, table.ErrNotFound):
		return UserMessage{
			Code:    "TBL002",
			Message: "The requested record does not exist",
			Action:  "Refresh the plane list and try again",
		}
	case errors.Is(err, table.ErrLastSkin):
		return UserMessage{
			Code:    "TBL003",
			Message: "A plane must keep at least one skin",
			Action:  "Add a replacement skin before removing this one",
		}
	case errors.As(err, &verr):
		return UserMessage{
			Code:    "SES001",
			Message: verr.Error(),
			Action:  "Fill in the missing fields and commit again",
		}
	}
	return defaultMessage
}
