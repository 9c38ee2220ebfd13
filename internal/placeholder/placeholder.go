// Package placeholder performs literal, non-recursive substitution of named
// placeholders in template text. Templates are never executed: user-supplied
// content passes through plain string replacement only, so it cannot reach a
// templating engine capable of running code.
package placeholder

import "strings"

// Names is the canonical placeholder set. Every rendering path (certificate
// body, email subject, email body, previews) draws from this set.
var Names = []string{
	"Recipient_Name",
	"Event_Title",
	"Org_Name",
	"state",
	"event_type",
	"issue_date",
	"issuer_name",
	"unique_id",
}

// spellings returns every supported spelling of a placeholder. All four are
// honored for backward compatibility with existing templates.
func spellings(name string) []string {
	return []string{
		"{{" + name + "}}",
		"{{ " + name + " }}",
		"{{$" + name + "}}",
		"{{ $" + name + " }}",
	}
}

// Apply replaces every occurrence of each supported spelling of each key in
// values. Keys absent from values are left untouched. When escape is true
// the substituted values are HTML-entity escaped before insertion; this is
// the hard security contract for HTML destinations. Plain-text destinations
// (the email subject line) pass escape=false and receive values verbatim.
func Apply(content string, values map[string]string, escape bool) string {
	for key, value := range values {
		if escape {
			value = EscapeHTML(value)
		}
		for _, spelling := range spellings(key) {
			content = strings.ReplaceAll(content, spelling, value)
		}
	}
	return content
}

// ApplyLegacy behaves like Apply but additionally honors the single-brace
// {name} form used by older certificate templates.
func ApplyLegacy(content string, values map[string]string, escape bool) string {
	content = Apply(content, values, escape)
	for key, value := range values {
		if escape {
			value = EscapeHTML(value)
		}
		content = strings.ReplaceAll(content, "{"+key+"}", value)
	}
	return content
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// EscapeHTML escapes ampersands, angle brackets, and both quote characters.
// Quote escaping is required so attacker-controlled recipient data cannot
// break out of attribute contexts.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// SampleValues are the fixed illustrative values used by preview endpoints.
// Previews have no persistence side effects.
func SampleValues(issueDate string) map[string]string {
	return map[string]string{
		"Recipient_Name": "John Doe",
		"Event_Title":    "Certificate Award Ceremony",
		"Org_Name":       "GDG on Campus",
		"state":          "New York",
		"event_type":     "Workshop",
		"issue_date":     issueDate,
		"issuer_name":    "Jane Smith",
		"unique_id":      "123e4567-e89b-12d3-a456-426614174000",
	}
}
