package observability

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"sync/atomic"
)

// PIILevel controls how user supplied text is written to logs and spans
type PIILevel string

const (
	// PIILevelNone redacts queries entirely
	PIILevelNone PIILevel = "none"
	// PIILevelHashed hashes PII found inside queries
	PIILevelHashed PIILevel = "hashed"
	// PIILevelFull logs queries verbatim
	PIILevelFull PIILevel = "full"
)

var (
	emailPattern      = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phonePattern      = regexp.MustCompile(`\b\d{3}[-.\s]?\d{3}[-.\s]?\d{4}\b`)
	ssnPattern        = regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)
	creditCardPattern = regexp.MustCompile(`\b\d{4}[- ]?\d{4}[- ]?\d{4}[- ]?\d{4}\b`)
	ipv4Pattern       = regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`)
)

// Sanitizer scrubs search queries before they reach telemetry
type Sanitizer struct {
	level PIILevel
	salt  string
}

// NewSanitizer creates a sanitizer. Unknown levels behave like PIILevelHashed.
func NewSanitizer(level PIILevel, salt string) *Sanitizer {
	switch PIILevel(strings.ToLower(string(level))) {
	case PIILevelNone, PIILevelFull:
		level = PIILevel(strings.ToLower(string(level)))
	default:
		level = PIILevelHashed
	}
	return &Sanitizer{level: level, salt: salt}
}

// Level returns the effective PII level
func (s *Sanitizer) Level() PIILevel {
	return s.level
}

// Query sanitizes a search query according to the configured level
func (s *Sanitizer) Query(input string) string {
	switch s.level {
	case PIILevelNone:
		if input == "" {
			return ""
		}
		return "[REDACTED]"
	case PIILevelFull:
		return input
	default:
		return s.hashPII(input)
	}
}

// ID sanitizes an opaque caller identifier such as a consumer ID
func (s *Sanitizer) ID(id string) string {
	if id == "" {
		return ""
	}
	switch s.level {
	case PIILevelNone:
		return "[REDACTED]"
	case PIILevelFull:
		return id
	default:
		return s.hash(id)
	}
}

func (s *Sanitizer) hashPII(input string) string {
	result := emailPattern.ReplaceAllStringFunc(input, func(match string) string {
		return fmt.Sprintf("[EMAIL:%s]", s.hash(match))
	})
	result = ssnPattern.ReplaceAllString(result, "[SSN:REDACTED]")
	result = creditCardPattern.ReplaceAllString(result, "[CC:REDACTED]")
	result = phonePattern.ReplaceAllStringFunc(result, func(match string) string {
		return fmt.Sprintf("[PHONE:%s]", s.hash(match))
	})
	result = ipv4Pattern.ReplaceAllStringFunc(result, func(match string) string {
		return fmt.Sprintf("[IP:%s]", s.hash(match))
	})
	return result
}

// hash returns the first 8 hex chars of a salted SHA-256
func (s *Sanitizer) hash(data string) string {
	sum := sha256.Sum256([]byte(data + s.salt))
	return hex.EncodeToString(sum[:])[:8]
}

var defaultSanitizer atomic.Pointer[Sanitizer]

func init() {
	defaultSanitizer.Store(NewSanitizer(PIILevelHashed, TracerName))
}

// SetDefaultSanitizer replaces the process wide sanitizer
func SetDefaultSanitizer(s *Sanitizer) {
	if s != nil {
		defaultSanitizer.Store(s)
	}
}

// SanitizeQuery scrubs a query with the process wide sanitizer
func SanitizeQuery(query string) string {
	return defaultSanitizer.Load().Query(query)
}

// SanitizeID scrubs an identifier with the process wide sanitizer
func SanitizeID(id string) string {
	return defaultSanitizer.Load().ID(id)
}
