package visibility

import (
	"time"

	"github.com/google/uuid"

	id "talentnet/pkg/domain"
)

// RedactedProfile is the outward-facing profile representation shared by
// every surface. Slices are never nil so the JSON form is stable.
type RedactedProfile struct {
	ID                uuid.UUID    `json:"id"`
	Bio               string       `json:"bio"`
	Title             string       `json:"title"`
	Skills            []string     `json:"skills"`
	Experience        []Experience `json:"experience"`
	Certifications    []string     `json:"certifications"`
	Location          string       `json:"location"`
	Availability      string       `json:"availability"`
	ResumeURL         *string      `json:"resumeUrl"`
	ProfileViews      int64        `json:"profileViews"`
	WorkLocations     []string     `json:"workLocations"`
	OpenToRelocation  bool         `json:"openToRelocation"`
	YearsOfExperience int          `json:"yearsOfExperience"`
	PayRangeMin       *int         `json:"payRangeMin"`
	PayRangeMax       *int         `json:"payRangeMax"`
	PayType           string       `json:"payType"`
	AdditionalPhotos  []string     `json:"additionalPhotos"`
	MediaURLs         []string     `json:"mediaUrls"`
	OpenToWork        bool         `json:"openToWork"`
	User              RedactedUser `json:"user"`
}

type RedactedUser struct {
	ID             id.UserID `json:"id"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Image          *string   `json:"image"`
	Role           id.Role   `json:"role"`
	CreatedAt      time.Time `json:"createdAt"`
	Email          string    `json:"email"`
	PhoneNumber    *string   `json:"phoneNumber"`
	IsAnonymous    bool      `json:"isAnonymous"`
	CustomInitials *string   `json:"customInitials"`
}

// AuthorDisplay is the name shown next to a message-board post.
type AuthorDisplay struct {
	UserID      id.UserID `json:"user_id"`
	DisplayName string    `json:"display_name"`
	IsAnonymous bool      `json:"is_anonymous"`
}

// ConversationView is a conversation as one of its participants sees it. The
// candidate is nil when they have no professional profile.
type ConversationView struct {
	ID            id.ConversationID `json:"id"`
	Subject       string            `json:"subject"`
	EmployerID    id.UserID         `json:"employerId"`
	Candidate     *RedactedProfile  `json:"candidate"`
	LastMessageAt time.Time         `json:"lastMessageAt"`
	CreatedAt     time.Time         `json:"createdAt"`
}
