package models

import "fmt"

type Voter struct {
	identity Identity
	hasVoted bool
}

func NewVoter(identity Identity) *Voter {
	return &Voter{identity: identity}
}

func (v *Voter) ID() string { return v.identity.ID }

func (v *Voter) Eligible() bool {
	return v.identity.Age >= MinVoterAge
}

func (v *Voter) HasVoted() bool { return v.hasVoted }

func (v *Voter) MarkVoted() { v.hasVoted = true }

func (v *Voter) ResetVotingStatus() { v.hasVoted = false }

func (v *Voter) View() VoterView {
	return VoterView{Identity: v.identity, HasVoted: v.hasVoted}
}

func (v *Voter) Describe() string {
	return v.View().Describe()
}

// VoterView is a read-only copy of a registered voter.
type VoterView struct {
	Identity
	HasVoted bool
}

func (v VoterView) Describe() string {
	return fmt.Sprintf("Voter Name: %s, Voter ID: %s, Age: %d", v.Name, v.ID, v.Age)
}
