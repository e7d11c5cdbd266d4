package repository

import (
	"encoding/json"
	"time"

	"github.com/alexanderramin/clientdesk/internal/domain"
)

// timestampLayout is fixed width so stored timestamps sort as text.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// encodeDocument marshals an entity for storage, mapping failures to IO errors.
func encodeDocument(op string, v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", domain.IOFailure(op, err)
	}
	return string(data), nil
}

// decodeDocument unmarshals a stored entity; a corrupt document is an IO error.
func decodeDocument[T any](op string, doc string) (*T, error) {
	var v T
	if err := json.Unmarshal([]byte(doc), &v); err != nil {
		return nil, domain.IOFailure(op, err)
	}
	return &v, nil
}

// nextVersion returns the version a successful update will store.
func nextVersion(current int64) int64 {
	if current < 1 {
		return 1
	}
	return current + 1
}
