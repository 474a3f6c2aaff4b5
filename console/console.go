// Package console implements the interactive admin menu of the election
// tool. It reads one answer per line and reports every failed operation
// without ending the session.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/xerrors"

	"election-admin/admin"
	"election-admin/models"
	"election-admin/registry"
	"election-admin/service"
	"election-admin/storage"
)

const (
	choiceRegisterPresident     = 1
	choiceRegisterVicePresident = 2
	choiceRegisterVoter         = 3
	choiceVote                  = 4
	choiceViewVoters            = 5
	choiceCandidateDetails      = 6
	choiceDisplayResults        = 7
	choiceSaveResults           = 8
	choiceClearVotes            = 9
	choiceClearCandidates       = 10
	choiceClearVoters           = 12
	choiceExit                  = 13
	choiceResetVoters           = 14
	choiceChangePassword        = 15
	choiceStatistics            = 16
)

const menu = `
Admin Menu:
1. Register President
2. Register Vice President
3. Register Voter
4. Vote
5. View Voter List
6. Check Candidate Details
7. Display Results
8. Save Results to File
9. Clear All Votes
10. Clear All Candidates
12. Clear All Voters
13. Exit
14. Reset Voter Status
15. Change Password
16. Show Statistics
`

type Options struct {
	In          io.Reader
	Out         io.Writer
	Service     *service.ElectionService
	Auth        *admin.Authenticator
	Exporter    *storage.ResultsWriter
	ResultsPath string
	// Prompt prints the menu and the input prompts. It is set when stdin is
	// a terminal.
	Prompt bool
	Logger zerolog.Logger
}

type Console struct {
	in          *bufio.Scanner
	out         io.Writer
	service     *service.ElectionService
	auth        *admin.Authenticator
	exporter    *storage.ResultsWriter
	resultsPath string
	prompt      bool
	session     *admin.Session
	logger      zerolog.Logger
}

func New(opts Options) *Console {
	return &Console{
		in:          bufio.NewScanner(opts.In),
		out:         opts.Out,
		service:     opts.Service,
		auth:        opts.Auth,
		exporter:    opts.Exporter,
		resultsPath: opts.ResultsPath,
		prompt:      opts.Prompt,
		logger:      opts.Logger.With().Str("module", "console").Logger(),
	}
}

// Run asks for the admin credentials and then serves the menu until the
// admin exits or the input ends. A failed login returns
// admin.ErrInvalidCredentials.
func (c *Console) Run() error {
	username, ok := c.ask("Enter Admin Username: ")
	if !ok {
		return io.ErrUnexpectedEOF
	}
	password, ok := c.ask("Enter Admin Password: ")
	if !ok {
		return io.ErrUnexpectedEOF
	}

	session, err := c.auth.Login(username, password)
	if err != nil {
		c.println("Invalid credentials!")
		return err
	}
	c.session = session
	defer c.session.End()

	for c.session.IsActive() {
		if c.prompt {
			fmt.Fprint(c.out, menu)
		}

		answer, ok := c.ask("Enter choice: ")
		if !ok {
			return nil
		}

		choice, err := strconv.Atoi(answer)
		if err != nil {
			c.println("Invalid choice! Try again.")
			continue
		}

		c.dispatch(choice)
	}

	return nil
}

func (c *Console) dispatch(choice int) {
	switch choice {
	case choiceRegisterPresident:
		c.registerCandidate(models.RolePresident)
	case choiceRegisterVicePresident:
		c.registerCandidate(models.RoleVicePresident)
	case choiceRegisterVoter:
		c.registerVoter()
	case choiceVote:
		c.vote()
	case choiceViewVoters:
		c.viewVoters()
	case choiceCandidateDetails:
		c.candidateDetails()
	case choiceDisplayResults:
		c.displayResults()
	case choiceSaveResults:
		c.saveResults()
	case choiceClearVotes:
		summary := c.service.ClearVotes()
		c.printf("Votes cleared! (%d votes discarded)\n", summary.Discarded)
	case choiceClearCandidates:
		removed := c.service.ClearCandidates()
		c.printf("Candidates cleared! (%d removed)\n", removed.Len())
	case choiceClearVoters:
		removed := c.service.ClearVoters()
		c.printf("Voters cleared! (%d removed)\n", len(removed))
	case choiceExit:
		c.session.End()
	case choiceResetVoters:
		n := c.service.ResetVoters()
		c.printf("Voter status reset for %d voters.\n", n)
	case choiceChangePassword:
		c.changePassword()
	case choiceStatistics:
		c.statistics()
	default:
		c.println("Invalid choice! Try again.")
	}
}

// registration holds the raw answers of one registration. Every answer is
// read before any is parsed, so a bad field never leaves answers behind to
// be taken as menu choices.
type registration struct {
	name        string
	age         string
	citizenship string
	id          string
	party       string
}

func (c *Console) readRegistration(who string, withParty bool) (registration, bool) {
	var r registration

	fields := []struct {
		prompt string
		answer *string
	}{
		{"name", &r.name},
		{"age", &r.age},
		{"citizenship (0 for Natural-Born, 1 for Naturalized)", &r.citizenship},
		{"voter ID", &r.id},
	}
	if withParty {
		fields = append(fields, struct {
			prompt string
			answer *string
		}{"political party", &r.party})
	}

	for _, f := range fields {
		answer, ok := c.ask(fmt.Sprintf("Enter %s %s: ", who, f.prompt))
		if !ok {
			return r, false
		}
		*f.answer = answer
	}

	return r, true
}

func (c *Console) parseIdentity(r registration) (models.Identity, bool) {
	age, err := strconv.Atoi(r.age)
	if err != nil {
		c.printf("Invalid age: %q\n", r.age)
		return models.Identity{}, false
	}
	citizenship, err := models.ParseCitizenship(r.citizenship)
	if err != nil {
		c.printf("Invalid citizenship: %q\n", r.citizenship)
		return models.Identity{}, false
	}

	return models.Identity{
		Name:        r.name,
		Age:         age,
		Citizenship: citizenship,
		ID:          r.id,
	}, true
}

func (c *Console) registerCandidate(role models.Role) {
	r, ok := c.readRegistration(string(role)+"'s", true)
	if !ok {
		return
	}
	identity, ok := c.parseIdentity(r)
	if !ok {
		return
	}

	var err error
	if role == models.RolePresident {
		err = c.service.RegisterPresident(identity, r.party)
	} else {
		err = c.service.RegisterVicePresident(identity, r.party)
	}

	switch {
	case err == nil:
		c.printf("%s %s from %s registered successfully!\n", role, identity.Name, r.party)
	case xerrors.Is(err, registry.ErrMissingField):
		c.println("Invalid candidate. Name, voter ID and political party are required.")
	case xerrors.Is(err, registry.ErrValidation):
		c.println("Invalid candidate. Must be at least 35 years old and a natural-born citizen.")
	case xerrors.Is(err, registry.ErrDuplicateParty):
		c.printf("%s from this party is already nominated!\n", role)
	case xerrors.Is(err, registry.ErrDuplicateIdentifier):
		c.printf("%s with this voter ID is already registered!\n", role)
	case xerrors.Is(err, registry.ErrNoPresident):
		c.println("No President candidate found from this party!")
	default:
		c.printf("Error: %v\n", err)
	}
}

func (c *Console) registerVoter() {
	r, ok := c.readRegistration("voter's", false)
	if !ok {
		return
	}
	identity, ok := c.parseIdentity(r)
	if !ok {
		return
	}

	err := c.service.RegisterVoter(identity)
	switch {
	case err == nil:
		c.printf("Voter %s registered successfully!\n", identity.Name)
	case xerrors.Is(err, registry.ErrMissingField):
		c.println("Invalid voter. Name and voter ID are required.")
	case xerrors.Is(err, registry.ErrValidation):
		c.println("Invalid voter. Must be at least 18 years old.")
	case xerrors.Is(err, registry.ErrDuplicateIdentifier):
		c.println("Voter with this voter ID is already registered!")
	default:
		c.printf("Error: %v\n", err)
	}
}

func (c *Console) vote() {
	voterID, ok := c.ask("Enter Voter ID: ")
	if !ok {
		return
	}
	party, ok := c.ask("Enter Candidate's Political Party: ")
	if !ok {
		return
	}

	receipt, err := c.service.CastVote(voterID, party)
	if err != nil {
		if !xerrors.Is(err, service.ErrInvalidVote) {
			c.printf("Error: %v\n", err)
			return
		}
		c.println(service.InvalidVoteMessage)
		return
	}

	c.println("Vote cast successfully!")
	c.printf("Receipt: %s %s\n", receipt.ID, receipt.Digest)
}

func (c *Console) viewVoters() {
	voters := c.service.ListVoters()
	if len(voters) == 0 {
		c.println("No voters registered.")
		return
	}
	for _, v := range voters {
		c.println(v.Describe())
	}
}

func (c *Console) candidateDetails() {
	presidents, vicePresidents := c.service.ListCandidates()

	c.println("Presidential Candidates:")
	for _, p := range presidents {
		c.println(p.Describe())
	}

	c.println("\nVice Presidential Candidates:")
	for _, vp := range vicePresidents {
		c.println(vp.Describe())
	}
}

func (c *Console) displayResults() {
	report := c.service.TallyReport()

	c.println("Presidential Candidates:")
	for _, p := range report.Presidents {
		c.println(p.ResultLine())
	}

	c.println("\nVice Presidential Candidates:")
	for _, vp := range report.VicePresidents {
		c.println(vp.ResultLine())
	}
}

func (c *Console) saveResults() {
	result, err := c.exporter.Export(c.resultsPath, c.service.TallyReport())
	if err != nil {
		c.logger.Error().Err(err).Str("path", c.resultsPath).Msg("failed to save results")
		c.printf("Failed to save results: %v\n", err)
		return
	}

	c.logger.Debug().Str("path", result.Path).Int("bytes", result.Bytes).Str("digest", result.Digest).Msg("results saved")
	c.printf("Results saved to %s\n", result.Path)
}

func (c *Console) changePassword() {
	password, ok := c.ask("Enter new password: ")
	if !ok {
		return
	}

	if err := c.auth.ChangePassword(c.session, password); err != nil {
		c.printf("Failed to change password: %v\n", err)
		return
	}
	c.println("Password changed successfully!")
}

func (c *Console) statistics() {
	c.printf("Logged in as %s since %s\n", c.session.Username(), c.session.StartTime().Format(time.RFC3339))

	stats := c.service.VoterStatistics()
	c.printf("Registered voters: %d, Voted: %d, Total votes: %d\n",
		stats.RegisteredCount, stats.VotedCount, c.service.TotalVotes())

	families, err := c.service.Metrics().Gather()
	if err != nil {
		c.printf("Failed to gather metrics: %v\n", err)
		return
	}

	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			c.printf("%s{%s} %v\n", mf.GetName(), strings.Join(labels, ","), m.GetCounter().GetValue())
		}
	}
}

func (c *Console) ask(prompt string) (string, bool) {
	if c.prompt {
		fmt.Fprint(c.out, prompt)
	}
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}

func (c *Console) printf(format string, a ...interface{}) {
	fmt.Fprintf(c.out, format, a...)
}
