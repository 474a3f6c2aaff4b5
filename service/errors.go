package service

import (
	"fmt"

	"golang.org/x/xerrors"

	"election-admin/registry"
)

var ErrInvalidVote = xerrors.New("invalid vote")

// InvalidVoteMessage is what the console shows for every rejected vote,
// whatever the cause.
const InvalidVoteMessage = "Invalid voter ID or voter has already voted or no candidate from this party!"

// InvalidVoteError matches ErrInvalidVote with errors.Is and unwraps to the
// precise cause (registry.ErrNotFound, registry.ErrAlreadyVoted,
// registry.ErrIneligible or registry.ErrUnknownParty).
type InvalidVoteError struct {
	VoterID string
	Party   string
	Cause   error
}

func (e *InvalidVoteError) Error() string {
	return fmt.Sprintf("invalid vote by %q for %q: %v", e.VoterID, e.Party, e.Cause)
}

func (e *InvalidVoteError) Unwrap() error { return e.Cause }

func (e *InvalidVoteError) Is(target error) bool { return target == ErrInvalidVote }

// Reason is a short metrics label for the cause.
func (e *InvalidVoteError) Reason() string {
	switch {
	case xerrors.Is(e.Cause, registry.ErrNotFound):
		return "not_found"
	case xerrors.Is(e.Cause, registry.ErrAlreadyVoted):
		return "already_voted"
	case xerrors.Is(e.Cause, registry.ErrIneligible):
		return "ineligible"
	case xerrors.Is(e.Cause, registry.ErrUnknownParty):
		return "unknown_party"
	default:
		return "other"
	}
}
