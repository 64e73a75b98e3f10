package common

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
)

// GetPlatformParam extracts and decodes the platform URL parameter.
// A platform is a host name: it must not be empty and may only contain
// letters, digits, dots, dashes and a port separator.
func GetPlatformParam(r *http.Request, paramName string) (string, error) {
	decoded, err := url.PathUnescape(chi.URLParam(r, paramName))
	if err != nil {
		return "", fmt.Errorf("invalid URL encoding in %s", paramName)
	}

	if strings.TrimSpace(decoded) == "" {
		return "", fmt.Errorf("%s cannot be empty", paramName)
	}

	for _, c := range decoded {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '.', c == '-', c == ':':
		default:
			return "", fmt.Errorf("%s contains invalid character %q", paramName, c)
		}
	}

	return strings.ToLower(decoded), nil
}
