package visibility

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	id "talentnet/pkg/domain"
)

// EvaluateSuite covers the redaction precedence rules.
//
// Justification: Evaluate is pure and is the single place every surface gets
// its redaction from, so each rule and its boundaries are pinned here.
type EvaluateSuite struct {
	suite.Suite
	candidate *TargetProfile
	employer  Viewer
}

func TestEvaluateSuite(t *testing.T) {
	suite.Run(t, new(EvaluateSuite))
}

func (s *EvaluateSuite) SetupTest() {
	s.candidate = &TargetProfile{
		ID:          uuid.New(),
		UserID:      id.UserID(uuid.New()),
		FirstName:   "Jordan",
		LastName:    "Avery",
		Email:       "jordan@example.com",
		PhoneNumber: "+15550100",
		Role:        id.RoleProfessional,
	}
	s.employer = Viewer{ID: id.UserID(uuid.New()), Role: id.RoleEmployer}
}

func (s *EvaluateSuite) access(v Viewer, has bool) NetworkAccessFact {
	return NetworkAccessFact{EmployerID: v.ID, HasNetworkAccess: has}
}

func (s *EvaluateSuite) applied(v Viewer, has bool) RelationshipFact {
	return RelationshipFact{EmployerID: v.ID, CandidateID: s.candidate.UserID, HasApplied: has}
}

func (s *EvaluateSuite) assertFull(d RedactionDecision) {
	s.True(d.RedactContact, "contact")
	s.True(d.RedactMedia, "media")
	s.True(d.AnonymizeName, "name")
	s.NotEmpty(d.InitialsMode)
}

// =============================================================================
// Owner and admin
// =============================================================================

func (s *EvaluateSuite) TestOwnerSeesEverything() {
	s.candidate.IsAnonymous = true
	for _, role := range []id.Role{id.RoleProfessional, id.RoleEmployer, id.RoleAgency, id.RoleAdmin, id.RoleAnonymous} {
		owner := Viewer{ID: s.candidate.UserID, Role: role}.For(s.candidate)
		s.Require().True(owner.IsOwnerOfTarget)

		for _, access := range []bool{true, false} {
			for _, applied := range []bool{true, false} {
				d := Evaluate(owner, s.candidate, s.access(owner, access), s.applied(owner, applied))
				s.True(d.RedactsNothing(), "role %s access %v applied %v", role, access, applied)
				s.Equal(RuleOwner, d.Rule)
				s.Empty(d.InitialsMode)
			}
		}
	}
}

func (s *EvaluateSuite) TestAdminSeesRealNamesOfAnonymousProfiles() {
	s.candidate.IsAnonymous = true
	admin := Viewer{ID: id.UserID(uuid.New()), Role: id.RoleAdmin}.For(s.candidate)

	d := Evaluate(admin, s.candidate, NetworkAccessFact{}, RelationshipFact{})
	s.True(d.RedactsNothing())
	s.Equal(RuleAdmin, d.Rule)
}

func (s *EvaluateSuite) TestAdminRoleWithoutIdentityIsAnonymous() {
	d := Evaluate(Viewer{Role: id.RoleAdmin}, s.candidate, NetworkAccessFact{}, RelationshipFact{})
	s.assertFull(d)
	s.Equal(RuleAnonymous, d.Rule)
}

// =============================================================================
// Professionals
// =============================================================================

func (s *EvaluateSuite) TestProfessionalAlwaysFullyRedacted() {
	peer := Viewer{ID: id.UserID(uuid.New()), Role: id.RoleProfessional}.For(s.candidate)
	for _, anonymous := range []bool{true, false} {
		s.candidate.IsAnonymous = anonymous
		for _, access := range []bool{true, false} {
			for _, applied := range []bool{true, false} {
				d := Evaluate(peer, s.candidate, s.access(peer, access), s.applied(peer, applied))
				s.assertFull(d)
				s.Equal(RuleProfessional, d.Rule)
			}
		}
	}
}

// =============================================================================
// Employers and agencies
// =============================================================================

func (s *EvaluateSuite) TestNetworkAccessWithApplicationLiftsRedaction() {
	s.candidate.IsAnonymous = true
	for _, role := range []id.Role{id.RoleEmployer, id.RoleAgency} {
		v := Viewer{ID: s.employer.ID, Role: role}.For(s.candidate)
		d := Evaluate(v, s.candidate, s.access(v, true), s.applied(v, true))
		s.True(d.RedactsNothing(), string(role))
		s.Equal(RuleNetworkApplied, d.Rule)
	}
}

func (s *EvaluateSuite) TestNetworkAccessWithoutApplication() {
	s.Run("visible name when candidate is not anonymous", func() {
		s.candidate.IsAnonymous = false
		d := Evaluate(s.employer, s.candidate, s.access(s.employer, true), s.applied(s.employer, false))
		s.True(d.RedactContact)
		s.True(d.RedactMedia)
		s.False(d.AnonymizeName)
		s.Empty(d.InitialsMode)
		s.Equal(RuleNetworkBrowse, d.Rule)
	})

	s.Run("anonymized name when candidate chose anonymity", func() {
		s.candidate.IsAnonymous = true
		d := Evaluate(s.employer, s.candidate, s.access(s.employer, true), s.applied(s.employer, false))
		s.assertFull(d)
		s.Equal(InitialsNameInitials, d.InitialsMode)
		s.Equal(RuleNetworkBrowse, d.Rule)
	})
}

func (s *EvaluateSuite) TestNoNetworkAccessIsFullRedaction() {
	for _, applied := range []bool{true, false} {
		d := Evaluate(s.employer, s.candidate, s.access(s.employer, false), s.applied(s.employer, applied))
		s.assertFull(d)
		s.Equal(RuleNoNetworkAccess, d.Rule)
	}
}

func (s *EvaluateSuite) TestFactsForAnotherViewerAreIgnored() {
	other := id.UserID(uuid.New())

	s.Run("access fact of another employer", func() {
		d := Evaluate(s.employer, s.candidate,
			NetworkAccessFact{EmployerID: other, HasNetworkAccess: true},
			s.applied(s.employer, true))
		s.assertFull(d)
	})

	s.Run("relationship with another candidate", func() {
		d := Evaluate(s.employer, s.candidate,
			s.access(s.employer, true),
			RelationshipFact{EmployerID: s.employer.ID, CandidateID: other, HasApplied: true})
		s.True(d.RedactContact)
		s.Equal(RuleNetworkBrowse, d.Rule)
	})
}

// =============================================================================
// Anonymous viewers
// =============================================================================

func (s *EvaluateSuite) TestAnonymousViewerFullyRedacted() {
	v := NewViewer(id.UserID{}, id.RoleEmployer, id.SessionID{})
	s.Equal(id.RoleAnonymous, v.Role)

	d := Evaluate(v.For(s.candidate), s.candidate, NetworkAccessFact{HasNetworkAccess: true}, RelationshipFact{HasApplied: true})
	s.assertFull(d)
	s.Equal(RuleAnonymous, d.Rule)
}

func (s *EvaluateSuite) TestUnknownRoleFullyRedacted() {
	v := Viewer{ID: id.UserID(uuid.New()), Role: id.Role("SUPERUSER")}
	d := Evaluate(v, s.candidate, s.access(v, true), s.applied(v, true))
	s.assertFull(d)
}

func (s *EvaluateSuite) TestNilTargetFullyRedacted() {
	d := Evaluate(s.employer, nil, s.access(s.employer, true), s.applied(s.employer, true))
	s.assertFull(d)
	s.Equal(InitialsAnonymous, d.InitialsMode)
}

// =============================================================================
// Determinism
// =============================================================================

func (s *EvaluateSuite) TestDeterministic() {
	viewers := []Viewer{
		s.employer,
		{ID: id.UserID(uuid.New()), Role: id.RoleAgency},
		{ID: id.UserID(uuid.New()), Role: id.RoleProfessional},
		{ID: id.UserID(uuid.New()), Role: id.RoleAdmin},
		{Role: id.RoleAnonymous},
	}
	for _, v := range viewers {
		for _, anonymous := range []bool{true, false} {
			s.candidate.IsAnonymous = anonymous
			a := Evaluate(v, s.candidate, s.access(v, true), s.applied(v, false))
			b := Evaluate(v, s.candidate, s.access(v, true), s.applied(v, false))
			s.Equal(a, b)
		}
	}
}
