package match

import (
	"fmt"
	"strings"
)

// Flags tune a match. They combine with |.
type Flags uint

const (
	// GenerateEmptyArgs adds every declared variable that did not match,
	// with a count of 0 and the option's default value if it has one.
	GenerateEmptyArgs Flags = 1 << iota
	// ResolveUnambiguousPrefixes lets "--verb" stand for "--verbose" when
	// no other long option starts with "--verb".
	ResolveUnambiguousPrefixes

	DefaultFlags Flags = 0
)

func (f Flags) String() string {
	var parts []string
	if f&GenerateEmptyArgs != 0 {
		parts = append(parts, "GenerateEmptyArgs")
	}
	if f&ResolveUnambiguousPrefixes != 0 {
		parts = append(parts, "ResolveUnambiguousPrefixes")
	}
	if len(parts) == 0 {
		return "DefaultFlags"
	}
	return strings.Join(parts, "|")
}

// Status classifies one argv token.
type Status int

const (
	// StatusInvalid means the token does not fit the grammar.
	StatusInvalid Status = iota
	// StatusValid means the token was matched.
	StatusValid
	// StatusValidPrefix means the token was not matched but could become
	// valid if completed, e.g. "--verb" for "--verbose".
	StatusValidPrefix
)

var statusNames = map[Status]string{
	StatusInvalid:     "invalid",
	StatusValid:       "valid",
	StatusValidPrefix: "valid_prefix",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
