package dart

import (
	"fmt"
	"regexp"
	"strings"

	"langgen-go/packages/generator/src/util"
)

var (
	singleQuoteEscapeRe = regexp.MustCompile("'|\\\\|\n|\r|\u2028|\u2029|\\$")
	legalIdentifierRe   = regexp.MustCompile(`^[A-Za-z_$][0-9A-Za-z_$]*$`)
)

// ReservedWordSuffix is appended to a section key that collides with a
// reserved word before the key is turned into a type name.
const ReservedWordSuffix = "Section"

// ReservedWords holds the Dart keywords, keyed lower-case.
var ReservedWords = map[string]bool{
	"abstract": true, "as": true, "assert": true, "async": true,
	"await": true, "base": true, "break": true, "case": true,
	"catch": true, "class": true, "const": true, "continue": true,
	"covariant": true, "default": true, "deferred": true, "do": true,
	"dynamic": true, "else": true, "enum": true, "export": true,
	"extends": true, "extension": true, "external": true, "factory": true,
	"false": true, "final": true, "finally": true, "for": true,
	"function": true, "get": true, "hide": true, "if": true,
	"implements": true, "import": true, "in": true, "interface": true,
	"is": true, "late": true, "library": true, "mixin": true,
	"new": true, "null": true, "of": true, "on": true,
	"operator": true, "part": true, "required": true, "rethrow": true,
	"return": true, "sealed": true, "set": true, "show": true,
	"static": true, "super": true, "switch": true, "sync": true,
	"this": true, "throw": true, "true": true, "try": true,
	"type": true, "typedef": true, "var": true, "void": true,
	"when": true, "while": true, "with": true, "yield": true,
}

// InvalidIdentifierError reports input that cannot become a legal Dart
// identifier.
type InvalidIdentifierError struct {
	Ident  string
	Reason string
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("invalid Dart identifier %q: %s", e.Ident, e.Reason)
}

// EscapeError reports a value that could not be made safely embeddable in a
// Dart string literal. It is defensive; the escape rules cover every rune the
// generator embeds.
type EscapeError struct {
	Value string
}

func (e *EscapeError) Error() string {
	return fmt.Sprintf("value cannot be embedded in a Dart string literal: %q", e.Value)
}

// SectionTypeName derives the class name for a section key. A key that
// case-insensitively matches a reserved word gets ReservedWordSuffix appended
// before the first rune is capitalized, so the result never collides with a
// Dart keyword. The derivation is deterministic. Characters that are illegal
// in an identifier are not coerced; they surface as an InvalidIdentifierError.
func SectionTypeName(key string, reserved map[string]bool) (string, error) {
	if key == "" {
		return "", &InvalidIdentifierError{Ident: key, Reason: "empty section key"}
	}
	name := key
	if reserved[strings.ToLower(key)] {
		name += ReservedWordSuffix
	}
	name = util.Capitalize(name)
	if !legalIdentifierRe.MatchString(name) {
		return "", &InvalidIdentifierError{Ident: name, Reason: "contains characters illegal in a Dart identifier"}
	}
	return name, nil
}

// FieldName derives the instance field name for a generated type name.
func FieldName(typeName string) string {
	return util.Uncapitalize(typeName)
}

// MemberName validates a translation key as a Dart getter name.
func MemberName(key string) (string, error) {
	if key == "" {
		return "", &InvalidIdentifierError{Ident: key, Reason: "empty translation key"}
	}
	if !legalIdentifierRe.MatchString(key) {
		return "", &InvalidIdentifierError{Ident: key, Reason: "contains characters illegal in a Dart identifier"}
	}
	if ReservedWords[strings.ToLower(key)] {
		return "", &InvalidIdentifierError{Ident: key, Reason: "collides with a Dart reserved word"}
	}
	return key, nil
}

// EscapeString escapes raw for embedding inside a single-quoted Dart string
// literal. The replacement runs in one pass, so backslashes introduced by the
// escaping are never re-escaped. Covered runes: backslash, single quote,
// dollar (interpolation trigger), newline, carriage return and the Unicode
// LS/PS line separators.
func EscapeString(raw string) string {
	return singleQuoteEscapeRe.ReplaceAllStringFunc(raw, func(match string) string {
		switch match {
		case "\n":
			return `\n`
		case "\r":
			return `\r`
		case "\u2028":
			return `\u{2028}`
		case "\u2029":
			return `\u{2029}`
		default:
			return `\` + match
		}
	})
}

// StringLiteral returns raw as a complete single-quoted Dart string literal.
func StringLiteral(raw string) string {
	return "'" + EscapeString(raw) + "'"
}

// SafeStringLiteral returns raw as a single-quoted Dart string literal after
// verifying that Dart's own literal rules parse it back to raw exactly.
func SafeStringLiteral(raw string) (string, error) {
	literal := StringLiteral(raw)
	parsed, err := ParseStringLiteral(literal)
	if err != nil || parsed != raw {
		return "", &EscapeError{Value: raw}
	}
	return literal, nil
}

// RawStringLiteral returns raw as a Dart raw triple-quoted string literal,
// or ok=false when the content cannot be represented that way: a raw string
// cannot contain the closing quote run, must not end in a quote, drops a
// whitespace-only first line directly after the opening quotes, and carriage
// returns and the LS/PS separators are left to the escaped form.
func RawStringLiteral(raw string) (literal string, ok bool) {
	if strings.Contains(raw, "'''") ||
		strings.HasSuffix(raw, "'") ||
		strings.ContainsAny(raw, "\r\u2028\u2029") {
		return "", false
	}
	// Dart discards the first line of a multiline string when it holds only
	// whitespace before the newline, so those payloads would not survive.
	if i := strings.IndexByte(raw, '\n'); i >= 0 && strings.Trim(raw[:i], " \t") == "" {
		return "", false
	}
	return "r'''" + raw + "'''", true
}

// ParseStringLiteral decodes a single-quoted Dart string literal back into
// its value, honoring the escape sequences EscapeString emits. Tests use it
// to check the round-trip law; SafeStringLiteral uses it as a final guard.
func ParseStringLiteral(literal string) (string, error) {
	if len(literal) < 2 || !strings.HasPrefix(literal, "'") || !strings.HasSuffix(literal, "'") {
		return "", fmt.Errorf("not a single-quoted literal: %q", literal)
	}
	body := literal[1 : len(literal)-1]
	var sb strings.Builder
	for i := 0; i < len(body); {
		c := body[i]
		if c == '\'' || c == '\n' || c == '\r' || c == '$' {
			return "", fmt.Errorf("unescaped %q at offset %d", c, i)
		}
		if c != '\\' {
			sb.WriteByte(c)
			i++
			continue
		}
		if i+1 >= len(body) {
			return "", fmt.Errorf("dangling backslash at offset %d", i)
		}
		switch body[i+1] {
		case 'n':
			sb.WriteByte('\n')
			i += 2
		case 'r':
			sb.WriteByte('\r')
			i += 2
		case '\\', '\'', '$':
			sb.WriteByte(body[i+1])
			i += 2
		case 'u':
			if i+2 >= len(body) || body[i+2] != '{' {
				return "", fmt.Errorf("malformed unicode escape at offset %d", i)
			}
			end := strings.IndexByte(body[i+3:], '}')
			if end < 0 {
				return "", fmt.Errorf("unterminated unicode escape at offset %d", i)
			}
			var code rune
			if _, err := fmt.Sscanf(body[i+3:i+3+end], "%x", &code); err != nil {
				return "", fmt.Errorf("malformed unicode escape at offset %d", i)
			}
			sb.WriteRune(code)
			i += 3 + end + 1
		default:
			return "", fmt.Errorf("unknown escape %q at offset %d", body[i+1], i)
		}
	}
	return sb.String(), nil
}
