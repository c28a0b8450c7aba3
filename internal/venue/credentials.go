package venue

import "privateer/internal/domain"

// Credential field names as exchanges document them.
const (
	FieldAPIKey   = "apiKey"
	FieldSecret   = "secret"
	FieldUID      = "uid"
	FieldPassword = "password"
)

// Credentials are opaque venue API secrets. They are passed through to the
// venue client unmodified and never derived from or retained beyond the call
// that received them.
type Credentials struct {
	APIKey   string
	Secret   string
	UID      string
	Password string
}

// Validate checks that every field the venue requires is present. All absent
// fields are reported together in a single MissingCredentialsError.
func (c Credentials) Validate(required ...string) error {
	var missing []string
	for _, field := range required {
		var value string
		switch field {
		case FieldAPIKey:
			value = c.APIKey
		case FieldSecret:
			value = c.Secret
		case FieldUID:
			value = c.UID
		case FieldPassword:
			value = c.Password
		}
		if value == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return &domain.MissingCredentialsError{Fields: missing}
	}
	return nil
}
