package service

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/xerrors"

	"election-admin/encryption"
	"election-admin/models"
	"election-admin/registry"
)

const (
	kindPresident     = "president"
	kindVicePresident = "vice_president"
	kindVoter         = "voter"
)

// voterStore is the part of registry.VoterRegistry used by the service.
type voterStore interface {
	RegisterVoter(models.Identity) error
	CheckEligible(id string) error
	MarkVoted(id string) error
	ResetAll() int
	ClearAll() []models.VoterView
	ListAll() []models.VoterView
	Len() int
}

// ElectionService is the single entry point used by the console. It owns
// the candidate and voter registries; casting a vote spans both.
//
// ElectionService is not safe for concurrent use.
type ElectionService struct {
	candidates    *registry.CandidateRegistry
	voters        voterStore
	cryptoService *encryption.CryptoService
	metrics       *Metrics
	logger        zerolog.Logger
}

type VoteReceipt struct {
	ID     uuid.UUID
	Party  string
	Digest string
}

type VotesCleared struct {
	Presidents     int
	VicePresidents int
	Discarded      int // votes held by presidents before the clear
}

type VoterStatistics struct {
	RegisteredCount int
	VotedCount      int
}

func NewElectionService(cryptoService *encryption.CryptoService, metrics *Metrics, logger zerolog.Logger) *ElectionService {
	if metrics == nil {
		metrics = NewMetrics()
	}

	return &ElectionService{
		candidates:    registry.NewCandidateRegistry(),
		voters:        registry.NewVoterRegistry(),
		cryptoService: cryptoService,
		metrics:       metrics,
		logger:        logger.With().Str("module", "election").Logger(),
	}
}

func (es *ElectionService) Metrics() *Metrics {
	return es.metrics
}

// Registration Methods
func (es *ElectionService) RegisterPresident(identity models.Identity, party string) error {
	err := es.candidates.RegisterPresident(identity, party)
	es.recordRegistration(kindPresident, identity.ID, party, err)
	return err
}

func (es *ElectionService) RegisterVicePresident(identity models.Identity, party string) error {
	err := es.candidates.RegisterVicePresident(identity, party)
	es.recordRegistration(kindVicePresident, identity.ID, party, err)
	return err
}

func (es *ElectionService) RegisterVoter(identity models.Identity) error {
	err := es.voters.RegisterVoter(identity)
	es.recordRegistration(kindVoter, identity.ID, "", err)
	return err
}

func (es *ElectionService) recordRegistration(kind, id, party string, err error) {
	if err != nil {
		es.metrics.RegistrationsRejected.WithLabelValues(kind).Inc()
		es.logger.Info().Err(err).Str("kind", kind).Str("id", id).Str("party", party).Msg("registration rejected")
		return
	}

	es.metrics.Registrations.WithLabelValues(kind).Inc()
	es.logger.Debug().Str("kind", kind).Str("id", id).Str("party", party).Msg("registered")
}

// CastVote counts one vote of voterID for the president of party and the
// party's vice president. The voter is marked as voted only when the vote
// was counted; every rejection leaves all counts and flags unchanged and is
// returned as *InvalidVoteError.
func (es *ElectionService) CastVote(voterID, party string) (*VoteReceipt, error) {
	if err := es.voters.CheckEligible(voterID); err != nil {
		return nil, es.rejectVote(voterID, party, err)
	}

	if !es.candidates.CastVoteForParty(party) {
		return nil, es.rejectVote(voterID, party, xerrors.Errorf("party %q: %w", party, registry.ErrUnknownParty))
	}

	if err := es.voters.MarkVoted(voterID); err != nil {
		es.candidates.RetractVoteForParty(party)
		es.logger.Error().Err(err).Str("voter", voterID).Str("party", party).Msg("failed to mark voter; vote taken back")

		return nil, es.rejectVote(voterID, party, err)
	}

	id := uuid.New()
	receipt := &VoteReceipt{
		ID:     id,
		Party:  party,
		Digest: es.cryptoService.ReceiptDigest(voterID, party, id.String()),
	}

	es.metrics.VotesCast.Inc()
	es.logger.Debug().Str("voter", voterID).Str("party", party).Str("receipt", id.String()).Msg("vote counted")

	return receipt, nil
}

func (es *ElectionService) rejectVote(voterID, party string, cause error) error {
	err := &InvalidVoteError{VoterID: voterID, Party: party, Cause: cause}

	es.metrics.VotesRejected.WithLabelValues(err.Reason()).Inc()
	es.logger.Info().Str("voter", voterID).Str("party", party).Str("cause", err.Reason()).Msg("vote rejected")

	return err
}

// Reporting Methods
func (es *ElectionService) ListVoters() []models.VoterView {
	return es.voters.ListAll()
}

// ListCandidates returns presidents and vice presidents in identifier
// order.
func (es *ElectionService) ListCandidates() ([]models.CandidateView, []models.CandidateView) {
	snapshot := es.candidates.Snapshot()
	return snapshot.Presidents, snapshot.VicePresidents
}

func (es *ElectionService) Tickets() []models.Ticket {
	return es.candidates.Snapshot().Tickets
}

func (es *ElectionService) VoterStatistics() VoterStatistics {
	stats := VoterStatistics{RegisteredCount: es.voters.Len()}
	for _, v := range es.voters.ListAll() {
		if v.HasVoted {
			stats.VotedCount++
		}
	}
	return stats
}

// Reset Methods
func (es *ElectionService) ClearVotes() VotesCleared {
	snapshot := es.candidates.Snapshot()
	summary := VotesCleared{
		Presidents:     len(snapshot.Presidents),
		VicePresidents: len(snapshot.VicePresidents),
	}
	for _, p := range snapshot.Presidents {
		summary.Discarded += p.VoteCount
	}

	es.candidates.ResetVotes()

	es.metrics.Clears.WithLabelValues("votes").Inc()
	es.logger.Info().Int("discarded", summary.Discarded).Msg("votes cleared")

	return summary
}

func (es *ElectionService) ClearCandidates() models.CandidateSnapshot {
	removed := es.candidates.ClearAll()

	es.metrics.Clears.WithLabelValues("candidates").Inc()
	es.logger.Info().Int("removed", removed.Len()).Msg("candidates cleared")

	return removed
}

func (es *ElectionService) ClearVoters() []models.VoterView {
	removed := es.voters.ClearAll()

	es.metrics.Clears.WithLabelValues("voters").Inc()
	es.logger.Info().Int("removed", len(removed)).Msg("voters cleared")

	return removed
}

// ResetVoters lets every registered voter vote again. Candidate counts are
// not touched.
func (es *ElectionService) ResetVoters() int {
	reset := es.voters.ResetAll()

	es.metrics.Clears.WithLabelValues("voter_status").Inc()
	es.logger.Info().Int("reset", reset).Msg("voter status reset")

	return reset
}
