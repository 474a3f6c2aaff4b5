package models

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type testIdentity struct {
	suite.Suite
}

func (t *testIdentity) identity(age int, citizenship Citizenship) Identity {
	return Identity{Name: "Alice", Age: age, Citizenship: citizenship, ID: "P1"}
}

func (t *testIdentity) TestCandidateAgeBoundary() {
	t.NoError(t.identity(35, NaturalBorn).CheckCandidate())
	t.Error(t.identity(34, NaturalBorn).CheckCandidate())
}

func (t *testIdentity) TestCandidateNaturalized() {
	for _, age := range []int{35, 50, 90} {
		t.Error(t.identity(age, Naturalized).CheckCandidate(), "age %d", age)
	}
}

func (t *testIdentity) TestVoterAgeBoundary() {
	t.NoError(t.identity(18, NaturalBorn).CheckVoter())
	t.NoError(t.identity(18, Naturalized).CheckVoter())
	t.Error(t.identity(17, NaturalBorn).CheckVoter())
}

func (t *testIdentity) TestMissingFields() {
	t.Error(Identity{Age: 40, ID: "P1"}.Validate())
	t.Error(Identity{Name: "Alice", Age: 40}.Validate())
	t.Error(Identity{Name: "Alice", Age: -1, ID: "P1"}.Validate())
	t.Error(Identity{Name: "Alice", Age: 40, ID: "P1", Citizenship: Citizenship(7)}.Validate())
}

func (t *testIdentity) TestParseCitizenship() {
	cases := map[string]Citizenship{
		"0":            NaturalBorn,
		" 1 ":          Naturalized,
		"Natural-Born": NaturalBorn,
		"naturalized":  Naturalized,
	}
	for in, expected := range cases {
		c, err := ParseCitizenship(in)
		t.NoError(err, in)
		t.Equal(expected, c, in)
	}

	for _, in := range []string{"2", "-1", "alien", ""} {
		_, err := ParseCitizenship(in)
		t.Error(err, in)
	}
}

func (t *testIdentity) TestDescribe() {
	voter := NewVoter(Identity{Name: "Carl", Age: 20, ID: "C1"})
	candidate := NewCandidate(Identity{Name: "Alice", Age: 40, ID: "P1"}, "Red", RolePresident)
	candidate.Increment()

	describers := []Describer{voter, candidate}
	t.Equal("Voter Name: Carl, Voter ID: C1, Age: 20", describers[0].Describe())
	t.Equal("Name: Alice, Age: 40, Party: Red, Role: President", describers[1].Describe())
	t.Equal("Name: Alice, Party: Red, Role: President, Votes: 1", candidate.View().ResultLine())
}

func (t *testIdentity) TestVoterStatus() {
	voter := NewVoter(Identity{Name: "Carl", Age: 20, ID: "C1"})
	t.False(voter.HasVoted())
	t.True(voter.Eligible())

	voter.MarkVoted()
	t.True(voter.View().HasVoted)

	voter.ResetVotingStatus()
	t.False(voter.HasVoted())
}

func TestIdentity(t *testing.T) {
	suite.Run(t, new(testIdentity))
}
