package payload

import (
	"encoding/json"
	"strings"

	"github.com/01moynul/baaje-storefront/internal/apperr"
)

// DecodeList parses a JSON array of strings as sent in form fields such as
// tags or existingImages. An empty value is the empty list. The stored form
// is produced by models.StringList.
func DecodeList(field, raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return []string{}, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, apperr.Validation("%s must be a JSON array of strings", field)
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}
