package match

import (
	"strings"
	"unicode/utf8"

	"github.com/dhamidi/docopt/usage"
)

type unitKind int

const (
	// unitValue is a positional-like token.
	unitValue unitKind = iota
	// unitOption is one resolved option occurrence.
	unitOption
	// unitUnknown is an option-like token that resolves to no option.
	unitUnknown
	// unitIncomplete is a value-taking option at the end of argv.
	unitIncomplete
)

// unit is the smallest piece of argv a pattern can consume. A bundle like
// -abc yields one unit per letter; --file NAME yields one unit covering two
// tokens.
type unit struct {
	kind     unitKind
	text     string
	option   int
	value    string
	hasValue bool
	tokens   []int
	// prefixOf holds the options a long-option token is a strict prefix of.
	prefixOf []int
}

func splitArgv(reg *usage.Registry, argv []string, flags Flags) []unit {
	var units []unit
	dashes := false
	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		switch {
		case dashes || arg == "-" || !strings.HasPrefix(arg, "-"):
			units = append(units, unit{kind: unitValue, text: arg, tokens: []int{i}})
		case arg == "--":
			dashes = true
			units = append(units, unit{kind: unitValue, text: arg, tokens: []int{i}})
		case strings.HasPrefix(arg, "--"):
			var u unit
			u, i = splitLong(reg, argv, i, flags)
			units = append(units, u)
		default:
			var us []unit
			us, i = splitShort(reg, argv, i)
			units = append(units, us...)
		}
	}
	return units
}

func resolveLong(reg *usage.Registry, name string, flags Flags) (*usage.OptionSpec, []*usage.OptionSpec) {
	if spec, ok := reg.Lookup(name); ok {
		return spec, nil
	}
	candidates := reg.LongPrefixMatches(name)
	if flags&ResolveUnambiguousPrefixes != 0 && len(candidates) == 1 {
		return candidates[0], nil
	}
	return nil, candidates
}

func splitLong(reg *usage.Registry, argv []string, i int, flags Flags) (unit, int) {
	arg := argv[i]
	name, value, hasEq := strings.Cut(arg, "=")
	u := unit{text: arg, tokens: []int{i}}

	spec, candidates := resolveLong(reg, name, flags)
	if spec == nil {
		u.kind = unitUnknown
		// An ambiguous prefix is left unresolved rather than guessed, and
		// only counts as a completion hint when prefixes are not resolved.
		if !hasEq && flags&ResolveUnambiguousPrefixes == 0 {
			for _, c := range candidates {
				u.prefixOf = append(u.prefixOf, c.ID)
			}
		}
		return u, i
	}

	u.kind, u.option = unitOption, spec.ID
	switch {
	case spec.Arity == usage.Flag && hasEq:
		u.kind = unitUnknown
	case spec.Arity == usage.TakesValue && hasEq:
		u.value, u.hasValue = value, true
	case spec.Arity == usage.TakesValue && i+1 < len(argv):
		i++
		u.value, u.hasValue = argv[i], true
		u.tokens = append(u.tokens, i)
	case spec.Arity == usage.TakesValue:
		u.kind = unitIncomplete
	}
	return u, i
}

func splitShort(reg *usage.Registry, argv []string, i int) ([]unit, int) {
	arg := argv[i]
	var out []unit
	letters := arg[1:]
	for j := 0; j < len(letters); {
		ch, size := utf8.DecodeRuneInString(letters[j:])
		alias := "-" + string(ch)
		j += size

		spec, ok := reg.Lookup(alias)
		if !ok {
			out = append(out, unit{kind: unitUnknown, text: alias, tokens: []int{i}})
			continue
		}
		u := unit{kind: unitOption, text: alias, option: spec.ID, tokens: []int{i}}
		if spec.Arity == usage.TakesValue {
			switch {
			case j < len(letters):
				u.value, u.hasValue = letters[j:], true
			case i+1 < len(argv):
				u.value, u.hasValue = argv[i+1], true
				u.tokens = append(u.tokens, i+1)
				out = append(out, u)
				return out, i + 1
			default:
				u.kind = unitIncomplete
			}
			out = append(out, u)
			return out, i
		}
		out = append(out, u)
	}
	return out, i
}
