package domain

import (
	"database/sql/driver"
	"strings"

	"github.com/google/uuid"

	dErrors "talentnet/pkg/domain-errors"
)

// Typed identifiers. Each wraps a UUID so a conversation ID can never be passed
// where a user ID is expected.
type (
	UserID         uuid.UUID
	SessionID      uuid.UUID
	ConversationID uuid.UUID
)

func (id UserID) String() string         { return uuid.UUID(id).String() }
func (id SessionID) String() string      { return uuid.UUID(id).String() }
func (id ConversationID) String() string { return uuid.UUID(id).String() }

func (id UserID) IsNil() bool         { return uuid.UUID(id) == uuid.Nil }
func (id SessionID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }
func (id ConversationID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// UserID and ConversationID cross JSON and SQL boundaries in their canonical
// string form.

func (id UserID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *UserID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

func (id UserID) Value() (driver.Value, error) { return id.String(), nil }

func (id *UserID) Scan(src any) error { return (*uuid.UUID)(id).Scan(src) }

func (id ConversationID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *ConversationID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

func (id ConversationID) Value() (driver.Value, error) { return id.String(), nil }

func (id *ConversationID) Scan(src any) error { return (*uuid.UUID)(id).Scan(src) }

// maxIDLength bounds input before handing it to the UUID parser.
const maxIDLength = 64

// ParseUserID parses a user ID at a trust boundary.
// Errors: CodeInvalidInput for empty, malformed, or nil UUIDs.
func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID(s, "user ID")
	return UserID(u), err
}

// ParseSessionID parses a session ID at a trust boundary.
func ParseSessionID(s string) (SessionID, error) {
	u, err := parseUUID(s, "session ID")
	return SessionID(u), err
}

// ParseConversationID parses a conversation ID at a trust boundary.
func ParseConversationID(s string) (ConversationID, error) {
	u, err := parseUUID(s, "conversation ID")
	return ConversationID(u), err
}

func parseUUID(s, label string) (uuid.UUID, error) {
	if strings.TrimSpace(s) == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be empty")
	}
	if len(s) > maxIDLength {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" is too long")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+label)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be nil")
	}
	return u, nil
}
