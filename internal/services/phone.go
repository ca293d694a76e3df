package services

import (
	"regexp"
	"strings"

	"github.com/iclaudiumihaila/pe-foc-de-lemne-sub004/domain"
)

var e164Pattern = regexp.MustCompile(`^\+[1-9][0-9]{7,14}$`)

// NormalizePhone converts a phone number to E.164. Separator characters are
// stripped and common Romanian dialing forms are expanded: a national
// "07xxxxxxxx" number becomes "+407xxxxxxxx" and an international "00" or
// bare "40" prefix becomes "+40". Anything that does not normalize to a
// valid E.164 number fails with ErrInvalidPhone.
func NormalizePhone(phone string) (string, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '.', '(', ')':
			return -1
		}
		return r
	}, phone)

	switch {
	case strings.HasPrefix(cleaned, "+"):
		// Already international.
	case strings.HasPrefix(cleaned, "00"):
		cleaned = "+" + cleaned[2:]
	case strings.HasPrefix(cleaned, "07") && len(cleaned) == 10:
		cleaned = "+4" + cleaned
	case strings.HasPrefix(cleaned, "40") && len(cleaned) == 11:
		cleaned = "+" + cleaned
	default:
		return "", domain.ErrInvalidPhone
	}

	if !e164Pattern.MatchString(cleaned) {
		return "", domain.ErrInvalidPhone
	}

	return cleaned, nil
}
