package registry

import "golang.org/x/xerrors"

var (
	ErrValidation          = xerrors.New("validation failed")
	ErrDuplicateParty      = xerrors.New("party already has a nominee for this role")
	ErrDuplicateIdentifier = xerrors.New("identifier is already registered")
	ErrNoPresident         = xerrors.New("no president candidate found from this party")
	ErrNotFound            = xerrors.New("voter not found")
	ErrAlreadyVoted        = xerrors.New("voter has already voted")
	ErrIneligible          = xerrors.New("voter is not eligible to vote")
	ErrUnknownParty        = xerrors.New("no candidate from this party")
)

// ErrMissingField is a validation failure caused by an empty name,
// identifier or party rather than by the age or citizenship rule.
var ErrMissingField = xerrors.Errorf("required field is empty: %w", ErrValidation)
