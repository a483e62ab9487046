package visibility

import (
	"slices"
	"strings"
)

// Materialize applies decision to target and returns the outward-facing DTO.
// It copies every slice so the result never aliases the profile.
func Materialize(target *TargetProfile, decision RedactionDecision) RedactedProfile {
	out := RedactedProfile{
		ID:                target.ID,
		Bio:               target.Bio,
		Title:             target.Title,
		Skills:            cloneStrings(target.Skills),
		Experience:        cloneExperience(target.Experience),
		Certifications:    cloneStrings(target.Certifications),
		Location:          target.Location,
		Availability:      target.Availability,
		ProfileViews:      target.ProfileViews,
		WorkLocations:     cloneStrings(target.WorkLocations),
		OpenToRelocation:  target.OpenToRelocation,
		YearsOfExperience: target.YearsOfExperience,
		PayRangeMin:       cloneInt(target.PayRangeMin),
		PayRangeMax:       cloneInt(target.PayRangeMax),
		PayType:           target.PayType,
		AdditionalPhotos:  []string{},
		MediaURLs:         []string{},
		OpenToWork:        target.OpenToWork,
		User: RedactedUser{
			ID:             target.UserID,
			FirstName:      target.FirstName,
			LastName:       target.LastName,
			Role:           target.Role,
			CreatedAt:      target.UserCreatedAt,
			IsAnonymous:    decision.AnonymizeName,
			CustomInitials: optional(NormalizeCustomInitials(target.CustomInitials)),
		},
	}

	if decision.AnonymizeName {
		out.User.FirstName = ResolveDisplay(target.FirstName, target.LastName, target.CustomInitials, decision.InitialsMode)
		out.User.LastName = ""
	}

	if !decision.RedactContact {
		out.User.Email = target.Email
		out.User.PhoneNumber = optional(target.PhoneNumber)
	}

	if !decision.RedactMedia {
		out.User.Image = optional(target.Image)
		out.ResumeURL = optional(target.ResumeURL)
		out.AdditionalPhotos = cloneStrings(target.AdditionalPhotos)
		out.MediaURLs = cloneStrings(target.MediaURLs)
	}

	return out
}

// DisplayName is the single name string a surface shows for target under
// decision.
func DisplayName(target *TargetProfile, decision RedactionDecision) AuthorDisplay {
	display := AuthorDisplay{UserID: target.UserID, IsAnonymous: decision.AnonymizeName}
	if decision.AnonymizeName {
		display.DisplayName = ResolveDisplay(target.FirstName, target.LastName, target.CustomInitials, decision.InitialsMode)
		return display
	}
	display.DisplayName = joinName(target.FirstName, target.LastName)
	if display.DisplayName == "" {
		display.DisplayName = anonymousDisplayName
	}
	return display
}

func joinName(first, last string) string {
	first, last = strings.TrimSpace(first), strings.TrimSpace(last)
	switch {
	case first == "":
		return last
	case last == "":
		return first
	default:
		return first + " " + last
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return []string{}
	}
	return slices.Clone(in)
}

func cloneExperience(in []Experience) []Experience {
	if len(in) == 0 {
		return []Experience{}
	}
	return slices.Clone(in)
}
