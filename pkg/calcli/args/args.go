// Package args tokenizes a raw argument list into a command name, positional
// arguments and an option map. The grammar is deliberately lenient: parsing
// never fails, unknown options are carried through untouched, and handlers
// ignore options they do not read.
package args

import "strconv"

// aliases maps single-letter option keys to their canonical long names.
// Canonicalization happens once at parse time so handlers never need to
// check both spellings.
var aliases = map[string]string{
	"c": "calendar",
	"d": "days",
	"f": "full",
	"j": "json",
	"m": "max",
	"q": "query",
	"s": "summary",
	"t": "title",
	"v": "verbose",
	"y": "yes",
}

// flagValue marks an option that was given without a value (--flag).
const flagValue = "true"

// Parsed is the result of tokenizing argv. It is built once per invocation
// and never mutated afterwards.
type Parsed struct {
	Command    string
	Positional []string
	options    map[string]string
}

// Parse tokenizes argv. The first non-option token becomes the command,
// later non-option tokens are positional. Options accept "--key value",
// "--key=value", "--flag" and "-k value"; a value that itself looks like a
// flag is never consumed, the option becomes boolean true instead.
func Parse(argv []string) *Parsed {
	p := &Parsed{options: make(map[string]string)}

	for i := 0; i < len(argv); i++ {
		tok := argv[i]

		// A bare "-" is the conventional stdin marker, not an option.
		if len(tok) == 0 || tok[0] != '-' || tok == "-" {
			if p.Command == "" && len(p.Positional) == 0 {
				p.Command = tok
			} else {
				p.Positional = append(p.Positional, tok)
			}
			continue
		}

		var key string
		if len(tok) >= 2 && tok[1] == '-' {
			key = tok[2:]
		} else {
			key = tok[1:]
		}
		if key == "" {
			continue
		}

		value := flagValue
		if eq := indexByte(key, '='); eq >= 0 {
			key, value = key[:eq], key[eq+1:]
		} else if i+1 < len(argv) && (len(argv[i+1]) == 0 || argv[i+1][0] != '-') {
			value = argv[i+1]
			i++
		}

		if canonical, ok := aliases[key]; ok {
			key = canonical
		}
		p.options[key] = value
	}

	return p
}

func indexByte(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}

// String returns the option's value, or "" when unset.
func (p *Parsed) String(key string) string {
	return p.options[key]
}

// Has reports whether the option was given at all.
func (p *Parsed) Has(key string) bool {
	_, ok := p.options[key]
	return ok
}

// Bool reports whether the option was given and is not explicitly "false".
func (p *Parsed) Bool(key string) bool {
	v, ok := p.options[key]
	return ok && v != "false"
}

// Int returns the option parsed as an integer, or def when unset or
// unparseable.
func (p *Parsed) Int(key string, def int) int {
	v, ok := p.options[key]
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
