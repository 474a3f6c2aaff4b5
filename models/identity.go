package models

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/xerrors"
)

const (
	MinVoterAge     = 18
	MinCandidateAge = 35
)

type Citizenship int

const (
	NaturalBorn Citizenship = iota
	Naturalized
)

func (c Citizenship) String() string {
	switch c {
	case NaturalBorn:
		return "Natural-Born"
	case Naturalized:
		return "Naturalized"
	default:
		return fmt.Sprintf("Citizenship(%d)", int(c))
	}
}

func (c Citizenship) IsValid() bool {
	return c == NaturalBorn || c == Naturalized
}

// ParseCitizenship accepts the console codes ("0" natural-born, "1"
// naturalized) as well as the spelled-out names.
func ParseCitizenship(s string) (Citizenship, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "natural-born", "naturalborn", "natural":
		return NaturalBorn, nil
	case "naturalized":
		return Naturalized, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil || !Citizenship(n).IsValid() {
		return 0, xerrors.Errorf("unknown citizenship %q", s)
	}

	return Citizenship(n), nil
}

// Identity holds the attributes shared by voters and candidates.
type Identity struct {
	Name        string
	Age         int
	Citizenship Citizenship
	ID          string
}

func (i Identity) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return xerrors.New("name is required")
	}
	if strings.TrimSpace(i.ID) == "" {
		return xerrors.New("identifier is required")
	}
	if i.Age < 0 {
		return xerrors.Errorf("age must not be negative, got %d", i.Age)
	}
	if !i.Citizenship.IsValid() {
		return xerrors.Errorf("invalid citizenship %d", int(i.Citizenship))
	}
	return nil
}

// CheckVoter validates the identity against the voter eligibility rule.
func (i Identity) CheckVoter() error {
	if err := i.Validate(); err != nil {
		return err
	}
	if i.Age < MinVoterAge {
		return xerrors.Errorf("voter must be at least %d years old (got %d)", MinVoterAge, i.Age)
	}
	return nil
}

// CheckCandidate validates the identity against the candidate rule: at
// least 35 years old and a natural-born citizen.
func (i Identity) CheckCandidate() error {
	if err := i.Validate(); err != nil {
		return err
	}
	if i.Age < MinCandidateAge {
		return xerrors.Errorf("candidate must be at least %d years old (got %d)", MinCandidateAge, i.Age)
	}
	if i.Citizenship != NaturalBorn {
		return xerrors.Errorf("candidate must be a natural-born citizen (got %s)", i.Citizenship)
	}
	return nil
}

// Describer is implemented by every registered person.
type Describer interface {
	Describe() string
}
