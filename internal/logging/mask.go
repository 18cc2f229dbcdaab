package logging

import "strings"

const (
	// MaskChar is the character used for masking.
	MaskChar = "*"
	// DefaultMaskLength is how many mask characters to show.
	DefaultMaskLength = 3
)

// SensitiveFields contains field names that should be masked. The API key is
// the only secret this application handles, but the usual aliases are
// covered so a renamed attribute cannot leak it.
var SensitiveFields = map[string]bool{
	"token":         true,
	"secret":        true,
	"password":      true,
	"key":           true,
	"api_key":       true,
	"apikey":        true,
	"auth":          true,
	"authorization": true,
	"credential":    true,
	"credentials":   true,
}

// MaskValue masks a sensitive value completely.
func MaskValue(value string) string {
	if value == "" {
		return ""
	}
	return strings.Repeat(MaskChar, min(len(value), 8))
}

// MaskPartial masks a value but shows the first few characters.
func MaskPartial(value string, showChars int) string {
	if len(value) <= showChars {
		return strings.Repeat(MaskChar, len(value))
	}
	return value[:showChars] + strings.Repeat(MaskChar, DefaultMaskLength)
}

// IsSensitiveField checks if a field name indicates sensitive data.
func IsSensitiveField(fieldName string) bool {
	lower := strings.ToLower(fieldName)
	if SensitiveFields[lower] {
		return true
	}
	for keyword := range SensitiveFields {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// MaskArgs masks sensitive values in a slice of logging arguments.
// Arguments are expected in key-value pairs: key1, value1, key2, value2, ...
func MaskArgs(args []any) []any {
	if len(args) < 2 {
		return args
	}

	result := make([]any, len(args))
	copy(result, args)

	for i := 0; i < len(result)-1; i += 2 {
		key, ok := result[i].(string)
		if !ok {
			continue
		}

		if IsSensitiveField(key) {
			if strVal, ok := result[i+1].(string); ok {
				result[i+1] = MaskValue(strVal)
			} else {
				result[i+1] = strings.Repeat(MaskChar, 8)
			}
		}
	}

	return result
}
