package registry

import (
	"golang.org/x/xerrors"

	"election-admin/models"
)

// VoterRegistry keeps voters in registration order.
//
// VoterRegistry is not safe for concurrent use.
type VoterRegistry struct {
	voters map[string]*models.Voter
	order  []string
}

func NewVoterRegistry() *VoterRegistry {
	return &VoterRegistry{
		voters: make(map[string]*models.Voter),
	}
}

func (r *VoterRegistry) RegisterVoter(identity models.Identity) error {
	if err := checkRequired(identity); err != nil {
		return err
	}
	if err := identity.CheckVoter(); err != nil {
		return xerrors.Errorf("%v: %w", err, ErrValidation)
	}
	if _, found := r.voters[identity.ID]; found {
		return xerrors.Errorf("voter %q: %w", identity.ID, ErrDuplicateIdentifier)
	}

	r.voters[identity.ID] = models.NewVoter(identity)
	r.order = append(r.order, identity.ID)

	return nil
}

// CheckEligible reports why the voter could not vote right now, without
// changing anything.
func (r *VoterRegistry) CheckEligible(id string) error {
	_, err := r.eligible(id)
	return err
}

func (r *VoterRegistry) MarkVoted(id string) error {
	voter, err := r.eligible(id)
	if err != nil {
		return err
	}

	voter.MarkVoted()
	return nil
}

func (r *VoterRegistry) eligible(id string) (*models.Voter, error) {
	voter, found := r.voters[id]
	if !found {
		return nil, xerrors.Errorf("voter %q: %w", id, ErrNotFound)
	}
	if voter.HasVoted() {
		return nil, xerrors.Errorf("voter %q: %w", id, ErrAlreadyVoted)
	}
	if !voter.Eligible() {
		return nil, xerrors.Errorf("voter %q: %w", id, ErrIneligible)
	}
	return voter, nil
}

// ResetAll clears the voting status of every voter and returns how many had
// voted.
func (r *VoterRegistry) ResetAll() int {
	var reset int
	for _, voter := range r.voters {
		if voter.HasVoted() {
			reset++
		}
		voter.ResetVotingStatus()
	}
	return reset
}

func (r *VoterRegistry) ClearAll() []models.VoterView {
	views := r.ListAll()

	r.voters = make(map[string]*models.Voter)
	r.order = nil

	return views
}

func (r *VoterRegistry) ListAll() []models.VoterView {
	views := make([]models.VoterView, 0, len(r.order))
	for _, id := range r.order {
		views = append(views, r.voters[id].View())
	}
	return views
}

func (r *VoterRegistry) Voter(id string) (models.VoterView, bool) {
	voter, found := r.voters[id]
	if !found {
		return models.VoterView{}, false
	}
	return voter.View(), true
}

func (r *VoterRegistry) Len() int {
	return len(r.voters)
}
