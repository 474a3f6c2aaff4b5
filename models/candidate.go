package models

import "fmt"

type Role string

const (
	RolePresident     Role = "President"
	RoleVicePresident Role = "Vice President"
)

// Candidate is owned by the candidate registry. Its vote count is only
// changed through Increment (presidents) and SyncVoteCount (ticket sync).
type Candidate struct {
	identity  Identity
	party     string
	role      Role
	voteCount int
}

func NewCandidate(identity Identity, party string, role Role) *Candidate {
	return &Candidate{
		identity: identity,
		party:    party,
		role:     role,
	}
}

func (c *Candidate) ID() string     { return c.identity.ID }
func (c *Candidate) Party() string  { return c.party }
func (c *Candidate) Role() Role     { return c.role }
func (c *Candidate) VoteCount() int { return c.voteCount }

func (c *Candidate) Increment() int {
	c.voteCount++
	return c.voteCount
}

func (c *Candidate) SyncVoteCount(count int) {
	c.voteCount = count
}

func (c *Candidate) View() CandidateView {
	return CandidateView{
		Identity:  c.identity,
		Party:     c.party,
		Role:      c.role,
		VoteCount: c.voteCount,
	}
}

func (c *Candidate) Describe() string {
	return c.View().Describe()
}

type CandidateView struct {
	Identity
	Party     string
	Role      Role
	VoteCount int
}

func (c CandidateView) Describe() string {
	return fmt.Sprintf("Name: %s, Age: %d, Party: %s, Role: %s", c.Name, c.Age, c.Party, c.Role)
}

// ResultLine is the line shown by the results screen.
func (c CandidateView) ResultLine() string {
	return fmt.Sprintf("Name: %s, Party: %s, Role: %s, Votes: %d", c.Name, c.Party, c.Role, c.VoteCount)
}

// Ticket pairs the candidates of one party. Either side may be nil.
type Ticket struct {
	Party         string
	President     *CandidateView
	VicePresident *CandidateView
}

func (t Ticket) Paired() bool {
	return t.President != nil && t.VicePresident != nil
}

type CandidateSnapshot struct {
	Presidents     []CandidateView
	VicePresidents []CandidateView
	Tickets        []Ticket
}

func (s CandidateSnapshot) Len() int {
	return len(s.Presidents) + len(s.VicePresidents)
}

// TallyReport is consumed by the results exporter.
type TallyReport struct {
	Presidents     []CandidateView
	VicePresidents []CandidateView
}
