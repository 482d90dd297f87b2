package common

import (
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// ParseUUID converts a textual UUID into its pgtype form.
func ParseUUID(value string) (pgtype.UUID, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return pgtype.UUID{}, err
	}
	return pgtype.UUID{Bytes: parsed, Valid: true}, nil
}

// UUIDString renders a pgtype.UUID or returns an empty string when invalid.
func UUIDString(id pgtype.UUID) string {
	if !id.Valid {
		return ""
	}
	return uuid.UUID(id.Bytes).String()
}

// NullableUUIDString returns nil for an invalid UUID.
func NullableUUIDString(id pgtype.UUID) *string {
	if !id.Valid {
		return nil
	}
	s := UUIDString(id)
	return &s
}

// OptionalUUID parses value when present. Blank or nil input yields an invalid (NULL) UUID.
func OptionalUUID(value *string) (pgtype.UUID, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return pgtype.UUID{}, nil
	}
	return ParseUUID(*value)
}

// Text wraps value as a NULL-able text column; blank strings become NULL.
func Text(value string) pgtype.Text {
	value = strings.TrimSpace(value)
	if value == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: value, Valid: true}
}

// NullableText unwraps a text column into a pointer.
func NullableText(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	s := t.String
	return &s
}
