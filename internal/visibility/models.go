package visibility

import (
	"time"

	"github.com/google/uuid"

	id "talentnet/pkg/domain"
)

// Viewer is the identity a request resolves against. It is built once per
// request from the session and never mutated afterwards.
type Viewer struct {
	ID              id.UserID
	Role            id.Role
	SessionID       id.SessionID
	IsOwnerOfTarget bool
}

// NewViewer builds a viewer from session facts. A missing user ID always
// yields an anonymous viewer, whatever role was claimed.
func NewViewer(userID id.UserID, role id.Role, sessionID id.SessionID) Viewer {
	if userID.IsNil() || !role.IsValid() {
		return Viewer{Role: id.RoleAnonymous}
	}
	return Viewer{ID: userID, Role: role, SessionID: sessionID}
}

// IsAnonymous reports whether the viewer has no signed-in identity.
func (v Viewer) IsAnonymous() bool {
	return v.ID.IsNil() || v.Role == id.RoleAnonymous
}

// For returns a copy of v with ownership resolved against the target.
func (v Viewer) For(target *TargetProfile) Viewer {
	v.IsOwnerOfTarget = target != nil && !v.ID.IsNil() && v.ID == target.UserID
	return v
}

// Experience is one entry of a candidate's work history.
type Experience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate,omitempty"`
	Current     bool   `json:"current"`
	Description string `json:"description,omitempty"`
}

// TargetProfile is the canonical candidate profile together with the owning
// user's identity fields. Empty strings stand for absent optional values.
type TargetProfile struct {
	ID       uuid.UUID
	UserID   id.UserID
	Slug     string
	Approved bool

	FirstName        string
	LastName         string
	Email            string
	PhoneNumber      string
	Image            string
	ResumeURL        string
	AdditionalPhotos []string
	MediaURLs        []string
	CustomInitials   string
	IsAnonymous      bool
	Role             id.Role
	UserCreatedAt    time.Time

	Bio               string
	Title             string
	Skills            []string
	Experience        []Experience
	Certifications    []string
	Location          string
	Availability      string
	ProfileViews      int64
	WorkLocations     []string
	OpenToRelocation  bool
	YearsOfExperience int
	PayRangeMin       *int
	PayRangeMax       *int
	PayType           string
	OpenToWork        bool
}

// NetworkAccessFact says whether an employer or agency currently holds a
// network-access entitlement.
type NetworkAccessFact struct {
	EmployerID       id.UserID
	HasNetworkAccess bool
}

// RelationshipFact says whether a job application links the candidate to any
// job owned by the employer.
type RelationshipFact struct {
	EmployerID  id.UserID
	CandidateID id.UserID
	HasApplied  bool
}

// InitialsMode selects how an anonymized name is rendered.
type InitialsMode string

const (
	InitialsCustom2      InitialsMode = "custom-2"
	InitialsCustom3      InitialsMode = "custom-3"
	InitialsNameInitials InitialsMode = "name-initials"
	InitialsSingleLetter InitialsMode = "single-letter"
	InitialsAnonymous    InitialsMode = "anonymous"
)

// Rule names the precedence rule that produced a decision.
type Rule string

const (
	RuleOwner           Rule = "owner"
	RuleAdmin           Rule = "admin"
	RuleProfessional    Rule = "professional"
	RuleNetworkApplied  Rule = "network_applied"
	RuleNetworkBrowse   Rule = "network_browse"
	RuleNoNetworkAccess Rule = "no_network_access"
	RuleAnonymous       Rule = "anonymous"
)

// RedactionDecision is recomputed on every request and never persisted.
// InitialsMode is empty unless AnonymizeName is set.
type RedactionDecision struct {
	RedactContact bool
	RedactMedia   bool
	AnonymizeName bool
	InitialsMode  InitialsMode
	Rule          Rule
}

// RedactsNothing reports whether the decision leaves every field visible.
func (d RedactionDecision) RedactsNothing() bool {
	return !d.RedactContact && !d.RedactMedia && !d.AnonymizeName
}

// ViewEvent is one counted profile view. ViewerID is nil for anonymous viewers;
// ViewerKey is the idempotency key for both kinds.
type ViewEvent struct {
	ID           uuid.UUID
	TargetUserID id.UserID
	ViewerID     *id.UserID
	ViewerKey    string
	OccurredAt   time.Time
}

// Conversation links a candidate and an employer in direct messaging.
type Conversation struct {
	ID            id.ConversationID
	CandidateID   id.UserID
	EmployerID    id.UserID
	Subject       string
	LastMessageAt time.Time
	CreatedAt     time.Time
}

// HasParticipant reports whether userID is one side of the conversation.
func (c *Conversation) HasParticipant(userID id.UserID) bool {
	return !userID.IsNil() && (c.CandidateID == userID || c.EmployerID == userID)
}
