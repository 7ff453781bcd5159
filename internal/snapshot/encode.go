// Package snapshot converts the department aggregate to and from its XML document form.
package snapshot

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spec-kit/employee-service/internal/domain"
)

const (
	xmlHeader   = `<?xml version="1.0" encoding="UTF-8"?>`
	indentOuter = "    "
	indentInner = "        "
	indentDeep  = "            "
)

// Options controls how text values are written.
type Options struct {
	// EscapeText writes reserved markup characters and carriage returns as references.
	// When false, values are written verbatim, matching documents produced by earlier releases.
	EscapeText bool
}

// DefaultOptions escapes text values.
var DefaultOptions = Options{EscapeText: true}

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
	"\r", "&#xD;",
)

// CheckText reports a value that an escaped document could not carry: invalid UTF-8 or a
// character outside the XML Char production. Tab, LF and CR are allowed.
// Verbatim encoding accepts any value.
func (o Options) CheckText(value string) error {
	if !o.EscapeText {
		return nil
	}
	if !utf8.ValidString(value) {
		return fmt.Errorf("invalid UTF-8 in %q", value)
	}
	for i, r := range value {
		if !isXMLChar(r) {
			return fmt.Errorf("character U+%04X at byte %d is not allowed in XML", r, i)
		}
	}
	return nil
}

func isXMLChar(r rune) bool {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= utf8.MaxRune:
		return true
	}
	return false
}

// Encode renders the full aggregate as a snapshot document.
func Encode(list *domain.DepartmentList, opts Options) []byte {
	w := writer{escape: opts.EscapeText}

	w.raw(xmlHeader)
	w.raw(indentOuter + "<departmentListModel>")
	w.field(indentInner, "id", list.ID)

	for _, dept := range list.Departments {
		w.raw(indentOuter + "<departmentModel>")
		w.field(indentInner, "id", dept.ID)
		w.field(indentInner, "name", dept.Name)
		w.raw(indentInner + "<employeeListModel>")
		w.field(indentDeep, "id", dept.Employees.ID)

		for _, e := range dept.Employees.Employees {
			w.raw(indentInner + "<employeeModel>")
			w.field(indentDeep, "id", e.ID)
			w.field(indentDeep, "name", e.Name)
			w.raw(indentInner + "</employeeModel>")
		}

		w.raw(indentInner + "</employeeListModel>")
		w.raw(indentOuter + "</departmentModel>")
	}
	w.raw(indentOuter + "</departmentListModel>")

	return []byte(w.b.String())
}

type writer struct {
	b      strings.Builder
	escape bool
}

func (w *writer) raw(s string) {
	w.b.WriteString(s)
}

func (w *writer) field(indent, tag, value string) {
	if w.escape {
		value = textEscaper.Replace(value)
	}
	w.b.WriteString(indent)
	w.b.WriteString("<" + tag + ">")
	w.b.WriteString(value)
	w.b.WriteString("</" + tag + ">")
}
