package service

import (
	"errors"
	"net/http"
)

// Sentinel errors returned by repositories
var (
	// ErrDuplicateKey is returned when an insert violates a uniqueness constraint
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrVersionConflict is returned when an optimistic update finds a newer version
	ErrVersionConflict = errors.New("record was modified concurrently")
)

// ErrorKind classifies domain failures
type ErrorKind string

const (
	ErrorKindValidation        ErrorKind = "validation"
	ErrorKindNotFound          ErrorKind = "not_found"
	ErrorKindConflict          ErrorKind = "conflict"
	ErrorKindInsufficientFunds ErrorKind = "insufficient_funds"
	ErrorKindInternal          ErrorKind = "internal"
)

// User facing messages
const (
	MsgInvalidInput              = "Please, provide correct input data"
	MsgMissingTournamentID       = "Wrong input data. No tournament ID was given."
	MsgTournamentExists          = "There is tournament created with such id. Please choose another one."
	MsgTournamentNotFound        = "Tournament wasn't found"
	MsgTournamentResultsNotFound = "There is no such tournament created with such id"
	MsgTournamentNotOpened       = "Tournament is not opened for registration"
	MsgNoOpenedTournament        = "No opened tournament was found. Probably this tournament was finished or canceled"
	MsgNotEnoughPlayers          = "Not enough players were found in this tournament. Maybe you want to cancel this tournament instead."
	MsgPlayersMissingPrize       = "Some players were not found, and didn't receive a prize"
	MsgPlayerExists              = "Player with such username already exists. Please choose another one."
	MsgPlayerNotFound            = "Player wasn't found"
	MsgNoSuchPlayer              = "No such player was found"
	MsgNoPlayerWithID            = "No player was found with such id"
	MsgNotEnoughToTake           = "Not enough points to take. Player with ID %s has only %s"
	MsgAlreadyRegistered         = "Player is already registered in this game"
	MsgTwoTournamentLimit        = "Player can consist in two games at the same time only. Please wait for other games to be finished."
	MsgNotEnoughToEnter          = "Not enough points to enter. Maybe you want to ask someone to lend you some points?"
	MsgBackerLowBalance          = "One of the backers has not enough point to support your bet. Please choose another one"
	MsgBackersNotFound           = "Some of requested backers were not found"
	MsgInvalidBackers            = "Backers must be distinct players other than the one joining"
	MsgNegativeBalance           = "Something wrong with your amount of points. Please refer to developers"
	MsgConcurrentUpdate          = "Points were changed by another request. Please try again."
	MsgInternal                  = "Internal server error"
)

// Error is a domain failure carrying a user facing message and an HTTP status code
type Error struct {
	Kind    ErrorKind
	Message string
	Code    int
}

func (e *Error) Error() string {
	return e.Message
}

// WithCode returns a copy of the error reporting a different status code
func (e *Error) WithCode(code int) *Error {
	return &Error{Kind: e.Kind, Message: e.Message, Code: code}
}

// NewValidationError creates an error for malformed or missing input
func NewValidationError(message string) *Error {
	return &Error{Kind: ErrorKindValidation, Message: message, Code: http.StatusUnprocessableEntity}
}

// NewNotFoundError creates an error for an absent entity or an unmet guard
func NewNotFoundError(message string) *Error {
	return &Error{Kind: ErrorKindNotFound, Message: message, Code: http.StatusNotFound}
}

// NewConflictError creates an error for duplicates and lost races
func NewConflictError(message string) *Error {
	return &Error{Kind: ErrorKindConflict, Message: message, Code: http.StatusConflict}
}

// NewInsufficientFundsError creates an error for balances that cannot cover an amount
func NewInsufficientFundsError(message string) *Error {
	return &Error{Kind: ErrorKindInsufficientFunds, Message: message, Code: http.StatusBadRequest}
}

// AsError extracts a domain error from the chain
func AsError(err error) (*Error, bool) {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr, true
	}
	return nil, false
}

// IsKind checks whether err carries a domain error of the given kind
func IsKind(err error, kind ErrorKind) bool {
	domainErr, ok := AsError(err)
	return ok && domainErr.Kind == kind
}
