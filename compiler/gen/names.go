package gen

import (
	"go/token"
	"strings"
	"sync"
	"unicode"

	"github.com/go-openapi/inflect"
)

var (
	acronymsMu sync.RWMutex
	acronyms   = map[string]struct{}{
		"ACL":   {},
		"API":   {},
		"ASCII": {},
		"CPU":   {},
		"CSS":   {},
		"DNS":   {},
		"EOF":   {},
		"GUID":  {},
		"HTML":  {},
		"HTTP":  {},
		"HTTPS": {},
		"ID":    {},
		"IP":    {},
		"JSON":  {},
		"LHS":   {},
		"QPS":   {},
		"RAM":   {},
		"RHS":   {},
		"RPC":   {},
		"SLA":   {},
		"SMTP":  {},
		"SQL":   {},
		"SSH":   {},
		"TCP":   {},
		"TLS":   {},
		"TTL":   {},
		"UDP":   {},
		"UI":    {},
		"UID":   {},
		"URI":   {},
		"URL":   {},
		"UTF8":  {},
		"UUID":  {},
		"VM":    {},
		"XML":   {},
		"XMPP":  {},
		"XSRF":  {},
		"XSS":   {},
	}
)

// AddAcronym adds a word that pascal renders in upper case.
func AddAcronym(word string) {
	acronymsMu.Lock()
	acronyms[strings.ToUpper(word)] = struct{}{}
	acronymsMu.Unlock()
}

func isAcronym(word string) bool {
	acronymsMu.RLock()
	_, ok := acronyms[strings.ToUpper(word)]
	acronymsMu.RUnlock()
	return ok
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || unicode.IsSpace(r)
}

// words splits a camelCase, PascalCase or snake_case identifier.
func words(s string) []string {
	return strings.FieldsFunc(inflect.Underscore(s), isSeparator)
}

// pascal converts an identifier to an exported Go name.
//
//	user_info => UserInfo
//	full_name => FullName
//	user_id   => UserID
//	publisherId => PublisherID
func pascal(s string) string {
	var b strings.Builder
	for _, w := range words(s) {
		if isAcronym(w) {
			b.WriteString(strings.ToUpper(w))
		} else {
			b.WriteString(inflect.Capitalize(w))
		}
	}
	return b.String()
}

// camel converts an identifier to an unexported Go name.
//
//	user_info => userInfo
//	user_id   => userID
func camel(s string) string {
	ws := words(s)
	if len(ws) == 0 {
		return ""
	}
	first := strings.ToLower(ws[0])
	rest := pascal(strings.Join(ws[1:], "_"))
	return first + rest
}

// snake converts an identifier to snake_case.
//
//	Username => username
//	FullName => full_name
func snake(s string) string {
	return strings.Join(words(s), "_")
}

// plural returns the snake-cased plural of a name, used for table names.
//
//	Book        => books
//	BookCategory => book_categories
func plural(s string) string {
	return inflect.Pluralize(snake(s))
}

// upperFirst upper-cases the first letter of s and leaves the rest untouched.
func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// paramName returns a parameter name that doesn't collide with Go keywords
// or predeclared identifiers used by the generated code.
func paramName(name string) string {
	if token.Lookup(name).IsKeyword() || reserved[name] {
		return "_" + name
	}
	return name
}

// reserved are identifiers the generated methods use themselves.
var reserved = map[string]bool{
	"s":   true,
	"sql": true,
}

// Pascal is the exported form of pascal, used by the renderer.
func Pascal(s string) string { return pascal(s) }

// Snake is the exported form of snake, used by the renderer and loader.
func Snake(s string) string { return snake(s) }

// Plural is the exported form of plural, used by the loader.
func Plural(s string) string { return plural(s) }
