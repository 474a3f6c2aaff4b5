package service

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
	"golang.org/x/xerrors"

	"election-admin/encryption"
	"election-admin/models"
	"election-admin/registry"
)

type testElectionService struct {
	suite.Suite
	es *ElectionService
}

func (t *testElectionService) SetupTest() {
	t.es = NewElectionService(encryption.NewCryptoServiceWithCost(4), nil, zerolog.Nop())
}

func person(name, id string, age int) models.Identity {
	return models.Identity{Name: name, Age: age, Citizenship: models.NaturalBorn, ID: id}
}

// setupRedTicket registers Alice and Bob for "Red" and the voter Carl.
func (t *testElectionService) setupRedTicket() {
	t.NoError(t.es.RegisterPresident(person("Alice", "P1", 40), "Red"))
	t.NoError(t.es.RegisterVicePresident(person("Bob", "V1", 36), "Red"))
	t.NoError(t.es.RegisterVoter(person("Carl", "C1", 20)))
}

func (t *testElectionService) counts() (int, int) {
	presidents, vicePresidents := t.es.ListCandidates()
	t.Len(presidents, 1)
	t.Len(vicePresidents, 1)
	return presidents[0].VoteCount, vicePresidents[0].VoteCount
}

func (t *testElectionService) hasVoted(id string) bool {
	for _, v := range t.es.ListVoters() {
		if v.ID == id {
			return v.HasVoted
		}
	}
	t.Failf("voter not listed", "id=%s", id)
	return false
}

func (t *testElectionService) TestCastVote() {
	t.setupRedTicket()

	p, vp := t.counts()
	t.Equal(0, p)
	t.Equal(0, vp)

	receipt, err := t.es.CastVote("C1", "Red")
	t.NoError(err)
	t.Equal("Red", receipt.Party)

	p, vp = t.counts()
	t.Equal(1, p)
	t.Equal(1, vp)
	t.True(t.hasVoted("C1"))
	t.Equal(1, t.es.TotalVotes())
}

func (t *testElectionService) TestReceipt() {
	t.setupRedTicket()

	receipt, err := t.es.CastVote("C1", "Red")
	t.NoError(err)

	t.Len(receipt.Digest, 66)
	t.Equal("0x", receipt.Digest[:2])
	t.Equal(t.es.cryptoService.ReceiptDigest("C1", "Red", receipt.ID.String()), receipt.Digest)
}

func (t *testElectionService) TestNoDoubleVoting() {
	t.setupRedTicket()

	_, err := t.es.CastVote("C1", "Red")
	t.NoError(err)

	receipt, err := t.es.CastVote("C1", "Red")
	t.Nil(receipt)
	t.True(xerrors.Is(err, ErrInvalidVote), "%v", err)
	t.True(xerrors.Is(err, registry.ErrAlreadyVoted), "%v", err)

	p, vp := t.counts()
	t.Equal(1, p)
	t.Equal(1, vp)
}

func (t *testElectionService) TestFailedVotesChangeNothing() {
	t.setupRedTicket()
	t.NoError(t.es.RegisterVoter(person("Dana", "C2", 30)))
	_, err := t.es.CastVote("C2", "Red")
	t.NoError(err)

	cases := []struct {
		voter string
		party string
		cause error
	}{
		{"nobody", "Red", registry.ErrNotFound},
		{"C2", "Red", registry.ErrAlreadyVoted},
		{"C1", "Blue", registry.ErrUnknownParty},
		{"C1", "", registry.ErrUnknownParty},
	}

	for _, c := range cases {
		_, err := t.es.CastVote(c.voter, c.party)
		t.True(xerrors.Is(err, ErrInvalidVote), "%+v: %v", c, err)
		t.True(xerrors.Is(err, c.cause), "%+v: %v", c, err)

		var ive *InvalidVoteError
		t.True(xerrors.As(err, &ive))
		t.Equal(c.voter, ive.VoterID)

		p, vp := t.counts()
		t.Equal(1, p)
		t.Equal(1, vp)
		t.False(t.hasVoted("C1"), "%+v", c)
		t.True(t.hasVoted("C2"))
	}

	// the voter whose party was unknown keeps the vote
	_, err = t.es.CastVote("C1", "Red")
	t.NoError(err)
}

// plantedVoters wraps the real registry and fails chosen voters on
// eligibility or marking.
type plantedVoters struct {
	*registry.VoterRegistry
	ineligible map[string]bool
	markFails  map[string]bool
}

func (v *plantedVoters) CheckEligible(id string) error {
	if v.ineligible[id] {
		return xerrors.Errorf("voter %q: %w", id, registry.ErrIneligible)
	}
	return v.VoterRegistry.CheckEligible(id)
}

func (v *plantedVoters) MarkVoted(id string) error {
	if v.markFails[id] {
		return xerrors.Errorf("voter %q: %w", id, registry.ErrIneligible)
	}
	return v.VoterRegistry.MarkVoted(id)
}

func (t *testElectionService) plantVoters() *plantedVoters {
	planted := &plantedVoters{
		VoterRegistry: registry.NewVoterRegistry(),
		ineligible:    map[string]bool{},
		markFails:     map[string]bool{},
	}
	t.es.voters = planted
	return planted
}

func (t *testElectionService) TestIneligibleVoteChangesNothing() {
	planted := t.plantVoters()
	t.setupRedTicket()
	_, err := t.es.CastVote("C1", "Red")
	t.NoError(err)

	t.NoError(t.es.RegisterVoter(person("Kid", "K1", 20)))
	planted.ineligible["K1"] = true

	receipt, err := t.es.CastVote("K1", "Red")
	t.Nil(receipt)
	t.True(xerrors.Is(err, ErrInvalidVote), "%v", err)
	t.True(xerrors.Is(err, registry.ErrIneligible), "%v", err)

	p, vp := t.counts()
	t.Equal(1, p)
	t.Equal(1, vp)
	t.False(t.hasVoted("K1"))
	t.Equal(float64(1), testutil.ToFloat64(t.es.Metrics().VotesRejected.WithLabelValues("ineligible")))
}

func (t *testElectionService) TestFailedMarkTakesVoteBack() {
	planted := t.plantVoters()
	t.setupRedTicket()
	planted.markFails["C1"] = true

	receipt, err := t.es.CastVote("C1", "Red")
	t.Nil(receipt)
	t.True(xerrors.Is(err, ErrInvalidVote), "%v", err)

	p, vp := t.counts()
	t.Equal(0, p)
	t.Equal(0, vp)
	t.False(t.hasVoted("C1"))
	t.Equal(float64(0), testutil.ToFloat64(t.es.Metrics().VotesCast))

	delete(planted.markFails, "C1")
	_, err = t.es.CastVote("C1", "Red")
	t.NoError(err)

	p, vp = t.counts()
	t.Equal(1, p)
	t.Equal(1, vp)
}

func (t *testElectionService) TestDuplicatePresident() {
	t.setupRedTicket()

	err := t.es.RegisterPresident(person("Eve", "P2", 50), "Red")
	t.True(xerrors.Is(err, registry.ErrDuplicateParty), "%v", err)

	presidents, _ := t.es.ListCandidates()
	t.Len(presidents, 1)
}

func (t *testElectionService) TestClearVotes() {
	t.setupRedTicket()
	_, err := t.es.CastVote("C1", "Red")
	t.NoError(err)

	summary := t.es.ClearVotes()
	t.Equal(VotesCleared{Presidents: 1, VicePresidents: 1, Discarded: 1}, summary)

	p, vp := t.counts()
	t.Equal(0, p)
	t.Equal(0, vp)
	t.True(t.hasVoted("C1"))

	_, err = t.es.CastVote("C1", "Red")
	t.True(xerrors.Is(err, registry.ErrAlreadyVoted))
}

func (t *testElectionService) TestClearVotersKeepsCounts() {
	t.setupRedTicket()
	_, err := t.es.CastVote("C1", "Red")
	t.NoError(err)

	removed := t.es.ClearVoters()
	t.Len(removed, 1)
	t.True(removed[0].HasVoted)
	t.Empty(t.es.ListVoters())

	p, vp := t.counts()
	t.Equal(1, p)
	t.Equal(1, vp)
}

func (t *testElectionService) TestClearCandidatesKeepsVoters() {
	t.setupRedTicket()
	_, err := t.es.CastVote("C1", "Red")
	t.NoError(err)

	removed := t.es.ClearCandidates()
	t.Equal(2, removed.Len())

	presidents, vicePresidents := t.es.ListCandidates()
	t.Empty(presidents)
	t.Empty(vicePresidents)
	t.True(t.hasVoted("C1"))
	t.Equal(1, t.es.VoterStatistics().VotedCount)
}

func (t *testElectionService) TestResetVoters() {
	t.setupRedTicket()
	_, err := t.es.CastVote("C1", "Red")
	t.NoError(err)

	t.Equal(1, t.es.ResetVoters())
	t.False(t.hasVoted("C1"))

	_, err = t.es.CastVote("C1", "Red")
	t.NoError(err)

	p, vp := t.counts()
	t.Equal(2, p)
	t.Equal(2, vp)
}

func (t *testElectionService) TestTallyReport() {
	t.NoError(t.es.RegisterPresident(person("Zed", "P9", 40), "Blue"))
	t.setupRedTicket()
	_, err := t.es.CastVote("C1", "Blue")
	t.NoError(err)

	report := t.es.TallyReport()
	t.Len(report.Presidents, 2)
	t.Equal("P1", report.Presidents[0].ID)
	t.Equal(0, report.Presidents[0].VoteCount)
	t.Equal("P9", report.Presidents[1].ID)
	t.Equal(1, report.Presidents[1].VoteCount)
	t.Len(report.VicePresidents, 1)

	tickets := t.es.Tickets()
	t.Len(tickets, 2)
	t.False(tickets[0].Paired())
}

func (t *testElectionService) TestMetrics() {
	t.setupRedTicket()
	_ = t.es.RegisterVoter(person("Kid", "K1", 17))
	_, _ = t.es.CastVote("C1", "Red")
	_, _ = t.es.CastVote("C1", "Red")
	_, _ = t.es.CastVote("nobody", "Red")
	t.es.ClearVotes()

	m := t.es.Metrics()
	t.Equal(float64(1), testutil.ToFloat64(m.Registrations.WithLabelValues(kindPresident)))
	t.Equal(float64(1), testutil.ToFloat64(m.Registrations.WithLabelValues(kindVoter)))
	t.Equal(float64(1), testutil.ToFloat64(m.RegistrationsRejected.WithLabelValues(kindVoter)))
	t.Equal(float64(1), testutil.ToFloat64(m.VotesCast))
	t.Equal(float64(1), testutil.ToFloat64(m.VotesRejected.WithLabelValues("already_voted")))
	t.Equal(float64(1), testutil.ToFloat64(m.VotesRejected.WithLabelValues("not_found")))
	t.Equal(float64(1), testutil.ToFloat64(m.Clears.WithLabelValues("votes")))

	families, err := m.Gather()
	t.NoError(err)
	t.NotEmpty(families)

	// another service does not share counters
	other := NewElectionService(encryption.NewCryptoServiceWithCost(4), nil, zerolog.Nop())
	t.Equal(float64(0), testutil.ToFloat64(other.Metrics().VotesCast))
}

func (t *testElectionService) TestInvalidVoteErrorReason() {
	cases := map[error]string{
		registry.ErrNotFound:     "not_found",
		registry.ErrAlreadyVoted: "already_voted",
		registry.ErrIneligible:   "ineligible",
		registry.ErrUnknownParty: "unknown_party",
		xerrors.New("x"):         "other",
	}
	for cause, reason := range cases {
		err := &InvalidVoteError{Cause: xerrors.Errorf("wrapped: %w", cause)}
		t.Equal(reason, err.Reason())
		t.True(xerrors.Is(err, ErrInvalidVote))
	}
}

func TestElectionService(t *testing.T) {
	suite.Run(t, new(testElectionService))
}
