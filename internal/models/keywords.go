package models

import (
	"database/sql/driver"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// Keywords is a list of auto-classification keywords stored as a JSON text
// column so the sqlite schema stays flat.
type Keywords []string

func (k Keywords) Value() (driver.Value, error) {
	if len(k) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(k)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal keywords")
	}
	return string(data), nil
}

func (k *Keywords) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*k = nil
		return nil
	case string:
		return errors.Wrap(json.Unmarshal([]byte(v), k), "failed to scan keywords")
	case []byte:
		return errors.Wrap(json.Unmarshal(v, k), "failed to scan keywords")
	default:
		return errors.Errorf("unsupported keywords column type %T", src)
	}
}

// Match reports whether any keyword is contained in the given note text.
func (k Keywords) Match(note string) bool {
	for _, kw := range k {
		if kw == "" {
			continue
		}
		if strings.Contains(strings.ToLower(note), strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
