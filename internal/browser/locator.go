package browser

import (
	"fmt"
	"strings"
)

// LocatorKind selects how a Locator is matched
type LocatorKind int

// Locator kinds
const (
	KindCSS LocatorKind = iota
	KindRole
	KindText
)

// Locator is a deferred query for an element
type Locator struct {
	Kind     LocatorKind
	Selector string
	Role     string
	Name     string
	Text     string
}

// ByCSS matches elements with a CSS selector
func ByCSS(selector string) Locator {
	return Locator{Kind: KindCSS, Selector: selector}
}

// ByRole matches elements by accessible role and accessible name
func ByRole(role, name string) Locator {
	return Locator{Kind: KindRole, Role: role, Name: name}
}

// ByText matches elements by visible text (case-insensitive substring)
func ByText(text string) Locator {
	return Locator{Kind: KindText, Text: text}
}

// ByID matches the element with the given id attribute
func ByID(id string) Locator {
	return ByCSS("[id=" + cssString(id) + "]")
}

func (l Locator) String() string {
	switch l.Kind {
	case KindRole:
		return fmt.Sprintf("role=%s[name=%q]", l.Role, l.Name)
	case KindText:
		return fmt.Sprintf("text=%q", l.Text)
	default:
		return l.Selector
	}
}

// roleSelectors lists the CSS that carries an implicit ARIA role
var roleSelectors = map[string]string{
	"button":   `button, [role="button"], input[type="button"], input[type="submit"], input[type="reset"]`,
	"dialog":   `dialog, [role="dialog"]`,
	"link":     `a[href], [role="link"]`,
	"heading":  `h1, h2, h3, h4, h5, h6, [role="heading"]`,
	"textbox":  `input:not([type]), input[type="text"], textarea, [role="textbox"]`,
	"checkbox": `input[type="checkbox"], [role="checkbox"]`,
}

// roleCSS returns the CSS used by drivers without native role queries
func roleCSS(role string) string {
	if css, ok := roleSelectors[role]; ok {
		return css
	}
	return fmt.Sprintf("[role=%q]", role)
}

// cssString quotes s as a CSS string token. Control characters become hex
// escapes terminated by a space; quotes and backslashes are backslash-escaped.
func cssString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch {
		case r == 0:
			b.WriteRune('\uFFFD')
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, `\%x `, r)
		case r == '"' || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// textXPath matches elements owning a text node that contains text, ignoring case
func textXPath(text string) string {
	const upper = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	const lower = "abcdefghijklmnopqrstuvwxyz"
	return fmt.Sprintf(
		`//body//*[not(self::script or self::style)][text()[contains(translate(normalize-space(.), %q, %q), %s)]]`,
		upper, lower, xpathLiteral(strings.ToLower(text)),
	)
}

// xpathLiteral quotes s as an XPath 1.0 string literal
func xpathLiteral(s string) string {
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	parts := strings.Split(s, `"`)
	quoted := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			quoted = append(quoted, `'"'`)
		}
		quoted = append(quoted, `"`+p+`"`)
	}
	return "concat(" + strings.Join(quoted, ", ") + ")"
}
