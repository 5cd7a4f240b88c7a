package config

// SecretStringValue replaces secrets in marshaled output.
const SecretStringValue = "<secret>"

// SecretString is a string that never shows up in dumps or logs.
type SecretString string

// MarshalYAML masks the value.
func (s SecretString) MarshalYAML() (any, error) {
	if len(s) == 0 {
		return nil, nil
	}
	return SecretStringValue, nil
}

// String masks the value.
func (s SecretString) String() string {
	if len(s) == 0 {
		return ""
	}
	return SecretStringValue
}

// Bytes returns the actual secret.
func (s SecretString) Bytes() []byte { return []byte(s) }
