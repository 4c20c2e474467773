package usage

import (
	"fmt"
	"sort"
	"strings"
)

// Arity says whether an option takes a value argument.
type Arity int

const (
	Flag Arity = iota
	TakesValue
)

func (a Arity) String() string {
	if a == TakesValue {
		return "value"
	}
	return "flag"
}

// OptionSpec is one declared option. Short and Long include their dashes.
type OptionSpec struct {
	ID          int
	Short       string
	Long        string
	Arity       Arity
	Default     string
	HasDefault  bool
	Description string
	Range       Range
}

// Name is the variable name an option binds to: the long alias if any,
// otherwise the short one.
func (o *OptionSpec) Name() string {
	if o.Long != "" {
		return o.Long
	}
	return o.Short
}

// Aliases returns the declared spellings, short first.
func (o *OptionSpec) Aliases() []string {
	var out []string
	if o.Short != "" {
		out = append(out, o.Short)
	}
	if o.Long != "" {
		out = append(out, o.Long)
	}
	return out
}

// Registry maps every option alias to its spec.
type Registry struct {
	specs   []*OptionSpec
	byAlias map[string]int
}

func NewRegistry() *Registry {
	return &Registry{byAlias: make(map[string]int)}
}

func (r *Registry) Len() int {
	return len(r.specs)
}

func (r *Registry) Spec(id int) *OptionSpec {
	return r.specs[id]
}

// Specs returns the specs in declaration order.
func (r *Registry) Specs() []*OptionSpec {
	return append([]*OptionSpec(nil), r.specs...)
}

func (r *Registry) Lookup(alias string) (*OptionSpec, bool) {
	id, ok := r.byAlias[alias]
	if !ok {
		return nil, false
	}
	return r.specs[id], true
}

// LongPrefixMatches returns the specs whose long alias has prefix as a
// strict prefix, in declaration order.
func (r *Registry) LongPrefixMatches(prefix string) []*OptionSpec {
	var out []*OptionSpec
	for _, spec := range r.specs {
		if spec.Long != "" && len(spec.Long) > len(prefix) && strings.HasPrefix(spec.Long, prefix) {
			out = append(out, spec)
		}
	}
	return out
}

// Aliases returns every registered alias, sorted.
func (r *Registry) Aliases() []string {
	out := make([]string, 0, len(r.byAlias))
	for alias := range r.byAlias {
		out = append(out, alias)
	}
	sort.Strings(out)
	return out
}

func (r *Registry) add(spec OptionSpec) *OptionSpec {
	spec.ID = len(r.specs)
	s := &spec
	r.specs = append(r.specs, s)
	for _, alias := range s.Aliases() {
		r.byAlias[alias] = s.ID
	}
	return s
}

// declare registers a declaration, merging it into an earlier spec that
// shares an alias. A conflicting arity is reported and the earlier one kept.
func (r *Registry) declare(decl OptionSpec) *Error {
	var target *OptionSpec
	for _, alias := range decl.Aliases() {
		if spec, ok := r.Lookup(alias); ok {
			target = spec
			break
		}
	}
	if target == nil {
		r.add(decl)
		return nil
	}

	var err *Error
	if target.Arity != decl.Arity {
		err = &Error{
			Range: decl.Range,
			Text: fmt.Sprintf("option %s redeclared as %s, previously declared as %s",
				strings.Join(decl.Aliases(), ", "), decl.Arity, target.Arity),
		}
	}
	if decl.Short != "" {
		r.attach(target, decl.Short, &target.Short, decl)
	}
	if decl.Long != "" {
		r.attach(target, decl.Long, &target.Long, decl)
	}
	if !target.HasDefault && decl.HasDefault {
		target.Default, target.HasDefault = decl.Default, true
	}
	if target.Description == "" {
		target.Description = decl.Description
	}
	return err
}

func (r *Registry) attach(target *OptionSpec, alias string, slot *string, decl OptionSpec) {
	if _, ok := r.byAlias[alias]; ok {
		return
	}
	if *slot == "" {
		*slot = alias
		r.byAlias[alias] = target.ID
		return
	}
	single := OptionSpec{
		Arity:       target.Arity,
		Description: decl.Description,
		Default:     decl.Default,
		HasDefault:  decl.HasDefault,
		Range:       decl.Range,
	}
	if strings.HasPrefix(alias, "--") {
		single.Long = alias
	} else {
		single.Short = alias
	}
	r.add(single)
}

// optionLine is the token run of one physical line inside an options section.
type optionLine struct {
	tokens []Token
	// text runs from the line's first token to the end of the line.
	text  string
	start int
}

// buildRegistry parses option description lines:
//
//	-s, --speed=<kn>  Speed in knots [default: 10].
func buildRegistry(src string, lines []optionLine) (*Registry, []Error) {
	reg := NewRegistry()
	var errs []Error

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if len(line.tokens) == 0 || !line.tokens[0].IsOption() {
			continue
		}
		decl, descStart, lineErrs := parseOptionFlags(src, line)
		errs = append(errs, lineErrs...)

		var desc []string
		if descStart >= 0 {
			desc = append(desc, strings.TrimSpace(src[descStart:line.start+len(line.text)]))
		}
		for i+1 < len(lines) {
			next := lines[i+1]
			if len(next.tokens) == 0 || next.tokens[0].IsOption() {
				break
			}
			desc = append(desc, strings.TrimSpace(next.text))
			i++
		}
		decl.Description = strings.TrimSpace(strings.Join(desc, " "))
		decl.Default, decl.HasDefault = findDefault(decl.Description)

		if decl.Short == "" && decl.Long == "" {
			continue
		}
		if err := reg.declare(decl); err != nil {
			errs = append(errs, *err)
		}
	}
	return reg, errs
}

// parseOptionFlags reads the leading flags of an option line. It returns the
// declaration and the offset where the description starts (-1 if none).
func parseOptionFlags(src string, line optionLine) (OptionSpec, int, []Error) {
	var decl OptionSpec
	var errs []Error
	toks := line.tokens
	decl.Range = Range{Start: line.start, Length: len(strings.TrimRight(line.text, " \t\r"))}

	i := 0
	for i < len(toks) {
		tok := toks[i]
		if i > 0 && wideGap(src, toks[i-1], tok) {
			break
		}
		if !tok.IsOption() {
			break
		}
		i++
		switch tok.Kind {
		case TokenShortOption:
			if len(tok.Literal) != 2 {
				errs = append(errs, Error{Range: tok.Range, Text: fmt.Sprintf("short option %s must be a single character", tok.Literal)})
				continue
			}
			if decl.Short != "" {
				errs = append(errs, Error{Range: tok.Range, Text: fmt.Sprintf("more than one short alias: %s and %s", decl.Short, tok.Literal)})
				continue
			}
			decl.Short = tok.Literal
		case TokenLongOption:
			if decl.Long != "" {
				errs = append(errs, Error{Range: tok.Range, Text: fmt.Sprintf("more than one long alias: %s and %s", decl.Long, tok.Literal)})
				continue
			}
			decl.Long = tok.Literal
		}

		if i < len(toks) && toks[i].Kind == TokenEquals {
			i++
			if i < len(toks) && !wideGap(src, toks[i-1], toks[i]) && toks[i].Kind == TokenWord {
				i++
			}
			decl.Arity = TakesValue
		} else if i < len(toks) && toks[i].IsPlaceholder() && !wideGap(src, toks[i-1], toks[i]) {
			i++
			decl.Arity = TakesValue
		}
		if i < len(toks) && toks[i].Kind == TokenComma && !wideGap(src, toks[i-1], toks[i]) {
			i++
		}
	}

	if i >= len(toks) {
		return decl, -1, errs
	}
	return decl, toks[i].Range.Start, errs
}

// wideGap reports whether two tokens are separated by two or more spaces or
// a tab, which ends the flag part of an option line.
func wideGap(src string, a, b Token) bool {
	end, err := a.Range.End()
	if err != nil || end > b.Range.Start {
		return false
	}
	gap := src[end:b.Range.Start]
	return strings.Contains(gap, "\t") || strings.Contains(gap, "  ")
}

// findDefault extracts VALUE from "[default: VALUE]", case-insensitively.
func findDefault(desc string) (string, bool) {
	const marker = "[default:"
	for i := 0; i+len(marker) <= len(desc); i++ {
		if desc[i] != '[' || !strings.EqualFold(desc[i:i+len(marker)], marker) {
			continue
		}
		rest := desc[i+len(marker):]
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return "", false
		}
		return strings.TrimLeft(rest[:end], " "), true
	}
	return "", false
}
