package visibility

import (
	"strings"
	"unicode"
)

const (
	anonymousDisplayName = "Anonymous Professional"
	singleLetterSuffix   = " Anonymous"
)

// SelectInitialsMode picks how an anonymized name renders. Custom initials win
// when they are alphabetic and at least two letters long; otherwise the mode is
// derived from which name parts are present.
func SelectInitialsMode(firstName, lastName, customInitials string) InitialsMode {
	if letters, ok := customLetters(customInitials); ok {
		switch {
		case len(letters) >= 3:
			return InitialsCustom3
		case len(letters) == 2:
			return InitialsCustom2
		}
	}
	first, last := initialOf(firstName), initialOf(lastName)
	switch {
	case first != 0 && last != 0:
		return InitialsNameInitials
	case first != 0:
		return InitialsSingleLetter
	default:
		return InitialsAnonymous
	}
}

// ResolveDisplay renders the display string for mode. A custom mode whose
// initials fail validation degrades to the name-based chain, as does a
// name-based mode whose name parts are missing.
func ResolveDisplay(firstName, lastName, customInitials string, mode InitialsMode) string {
	switch mode {
	case InitialsCustom3:
		if letters, ok := customLetters(customInitials); ok && len(letters) >= 3 {
			return dotted(letters[:3])
		}
	case InitialsCustom2:
		if letters, ok := customLetters(customInitials); ok && len(letters) >= 2 {
			return dotted(letters[:2])
		}
	case InitialsAnonymous:
		return anonymousDisplayName
	case InitialsSingleLetter:
		if first := initialOf(firstName); first != 0 {
			return string(first) + "." + singleLetterSuffix
		}
		return anonymousDisplayName
	}
	return fromNames(firstName, lastName)
}

func fromNames(firstName, lastName string) string {
	first, last := initialOf(firstName), initialOf(lastName)
	switch {
	case first != 0 && last != 0:
		return dotted([]rune{first, last})
	case first != 0:
		return string(first) + "." + singleLetterSuffix
	default:
		return anonymousDisplayName
	}
}

// NormalizeCustomInitials returns the upper-cased initials when they are
// usable, or "" otherwise.
func NormalizeCustomInitials(customInitials string) string {
	letters, ok := customLetters(customInitials)
	if !ok {
		return ""
	}
	return string(letters)
}

func customLetters(customInitials string) ([]rune, bool) {
	trimmed := strings.TrimSpace(customInitials)
	if trimmed == "" {
		return nil, false
	}
	letters := make([]rune, 0, len(trimmed))
	for _, r := range trimmed {
		if !unicode.IsLetter(r) {
			return nil, false
		}
		letters = append(letters, unicode.ToUpper(r))
	}
	return letters, true
}

// initialOf returns the first letter of name upper-cased, or 0 when the name
// carries no letter.
func initialOf(name string) rune {
	for _, r := range strings.TrimSpace(name) {
		if unicode.IsLetter(r) {
			return unicode.ToUpper(r)
		}
	}
	return 0
}

func dotted(letters []rune) string {
	var b strings.Builder
	for _, r := range letters {
		b.WriteRune(r)
		b.WriteByte('.')
	}
	return b.String()
}
