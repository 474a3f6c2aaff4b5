package registry

import (
	"sort"
	"strings"

	"golang.org/x/xerrors"

	"election-admin/models"
)

// CandidateRegistry owns every presidential and vice-presidential
// candidate. The president of a party is the source of truth for the
// party's vote count; the vice president's count is only ever copied from
// it.
//
// CandidateRegistry is not safe for concurrent use.
type CandidateRegistry struct {
	presidents     map[string]*models.Candidate // by identifier
	vicePresidents map[string]*models.Candidate // by identifier
	nominated      map[string]*models.Candidate // president by party
	vpByParty      map[string]*models.Candidate
}

func NewCandidateRegistry() *CandidateRegistry {
	return &CandidateRegistry{
		presidents:     make(map[string]*models.Candidate),
		vicePresidents: make(map[string]*models.Candidate),
		nominated:      make(map[string]*models.Candidate),
		vpByParty:      make(map[string]*models.Candidate),
	}
}

func (r *CandidateRegistry) RegisterPresident(identity models.Identity, party string) error {
	if err := checkCandidate(identity, party); err != nil {
		return err
	}
	if _, found := r.nominated[party]; found {
		return xerrors.Errorf("party %q: %w", party, ErrDuplicateParty)
	}
	if _, found := r.presidents[identity.ID]; found {
		return xerrors.Errorf("president %q: %w", identity.ID, ErrDuplicateIdentifier)
	}

	president := models.NewCandidate(identity, party, models.RolePresident)
	if vp, found := r.vpByParty[party]; found {
		president.SyncVoteCount(vp.VoteCount())
	}

	r.presidents[identity.ID] = president
	r.nominated[party] = president

	return nil
}

func (r *CandidateRegistry) RegisterVicePresident(identity models.Identity, party string) error {
	if err := checkCandidate(identity, party); err != nil {
		return err
	}

	president, found := r.nominated[party]
	if !found {
		return xerrors.Errorf("party %q: %w", party, ErrNoPresident)
	}
	if _, found := r.vicePresidents[identity.ID]; found {
		return xerrors.Errorf("vice president %q: %w", identity.ID, ErrDuplicateIdentifier)
	}
	if _, found := r.vpByParty[party]; found {
		return xerrors.Errorf("party %q: %w", party, ErrDuplicateParty)
	}

	vp := models.NewCandidate(identity, party, models.RoleVicePresident)
	vp.SyncVoteCount(president.VoteCount())

	r.vicePresidents[identity.ID] = vp
	r.vpByParty[party] = vp

	return nil
}

// CastVoteForParty counts one vote for the party's president and copies the
// new count to the party's vice president. It reports whether the party has
// a president.
func (r *CandidateRegistry) CastVoteForParty(party string) bool {
	president, found := r.nominated[party]
	if !found {
		return false
	}

	count := president.Increment()
	r.syncTicket(party, count)

	return true
}

// RetractVoteForParty takes back one vote counted by CastVoteForParty. It
// reports whether a vote was taken back.
func (r *CandidateRegistry) RetractVoteForParty(party string) bool {
	president, found := r.nominated[party]
	if !found || president.VoteCount() < 1 {
		return false
	}

	count := president.VoteCount() - 1
	president.SyncVoteCount(count)
	r.syncTicket(party, count)

	return true
}

func (r *CandidateRegistry) syncTicket(party string, count int) {
	if vp, found := r.vpByParty[party]; found {
		vp.SyncVoteCount(count)
	}
}

func (r *CandidateRegistry) ResetVotes() {
	for _, c := range r.presidents {
		c.SyncVoteCount(0)
	}
	for _, c := range r.vicePresidents {
		c.SyncVoteCount(0)
	}
}

// ClearAll removes every candidate and returns what was registered before.
func (r *CandidateRegistry) ClearAll() models.CandidateSnapshot {
	snapshot := r.Snapshot()

	r.presidents = make(map[string]*models.Candidate)
	r.vicePresidents = make(map[string]*models.Candidate)
	r.nominated = make(map[string]*models.Candidate)
	r.vpByParty = make(map[string]*models.Candidate)

	return snapshot
}

// Snapshot lists presidents and vice presidents in identifier order and the
// tickets in party order.
func (r *CandidateRegistry) Snapshot() models.CandidateSnapshot {
	snapshot := models.CandidateSnapshot{
		Presidents:     viewsByID(r.presidents),
		VicePresidents: viewsByID(r.vicePresidents),
	}

	parties := make(map[string]struct{}, len(r.nominated)+len(r.vpByParty))
	for party := range r.nominated {
		parties[party] = struct{}{}
	}
	for party := range r.vpByParty {
		parties[party] = struct{}{}
	}

	names := make([]string, 0, len(parties))
	for party := range parties {
		names = append(names, party)
	}
	sort.Strings(names)

	snapshot.Tickets = make([]models.Ticket, 0, len(names))
	for _, party := range names {
		ticket := models.Ticket{Party: party}
		if p, found := r.nominated[party]; found {
			v := p.View()
			ticket.President = &v
		}
		if vp, found := r.vpByParty[party]; found {
			v := vp.View()
			ticket.VicePresident = &v
		}
		snapshot.Tickets = append(snapshot.Tickets, ticket)
	}

	return snapshot
}

func (r *CandidateRegistry) President(party string) (models.CandidateView, bool) {
	c, found := r.nominated[party]
	if !found {
		return models.CandidateView{}, false
	}
	return c.View(), true
}

func (r *CandidateRegistry) VicePresident(party string) (models.CandidateView, bool) {
	c, found := r.vpByParty[party]
	if !found {
		return models.CandidateView{}, false
	}
	return c.View(), true
}

func (r *CandidateRegistry) Len() int {
	return len(r.presidents) + len(r.vicePresidents)
}

func checkCandidate(identity models.Identity, party string) error {
	if err := checkRequired(identity); err != nil {
		return err
	}
	if strings.TrimSpace(party) == "" {
		return xerrors.Errorf("party: %w", ErrMissingField)
	}
	if err := identity.CheckCandidate(); err != nil {
		return xerrors.Errorf("%v: %w", err, ErrValidation)
	}
	return nil
}

func checkRequired(identity models.Identity) error {
	switch {
	case strings.TrimSpace(identity.Name) == "":
		return xerrors.Errorf("name: %w", ErrMissingField)
	case strings.TrimSpace(identity.ID) == "":
		return xerrors.Errorf("identifier: %w", ErrMissingField)
	default:
		return nil
	}
}

func viewsByID(candidates map[string]*models.Candidate) []models.CandidateView {
	views := make([]models.CandidateView, 0, len(candidates))
	for _, c := range candidates {
		views = append(views, c.View())
	}
	sort.Slice(views, func(i, j int) bool {
		return views[i].ID < views[j].ID
	})
	return views
}
