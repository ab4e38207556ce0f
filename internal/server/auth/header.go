package auth

import (
	"strings"
	"unicode"

	"github.com/dmitrijs2005/notekeeper/internal/common"
)

// ExtractToken pulls the bearer token out of an Authorization header value.
// A nil header means the header was absent. The scheme is matched without
// regard to case.
func ExtractToken(header *string) (string, error) {
	if header == nil {
		return "", ErrMissingHeader
	}

	value := strings.TrimSpace(*header)

	scheme, rest := value, ""
	if i := strings.IndexFunc(value, unicode.IsSpace); i >= 0 {
		scheme, rest = value[:i], value[i:]
	}

	if !strings.EqualFold(scheme, common.BearerScheme) {
		return "", ErrMalformedScheme
	}

	token := strings.TrimSpace(rest)
	if token == "" {
		return "", ErrEmptyToken
	}
	return token, nil
}
