// Package collections declares the five parish content tables as
// recordsync collections: their forms, defaults, validation rules and the
// mapping between forms and rows.
package collections

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/parroquia/contentadmin/internal/paragraph"
	"github.com/parroquia/contentadmin/internal/recordsync"
)

// LocalLayout is the minute-precision local date-time format used by form inputs.
const LocalLayout = "2006-01-02T15:04"

const listLayout = "2006-01-02 15:04"

// displayLocation is the zone dates are entered and shown in.
var displayLocation = time.Local

var leadingInt = regexp.MustCompile(`^\s*([+-]?\d+)`)

func messagesFor(title, plural, noun, createdVerb string) recordsync.Messages {
	capNoun := strings.ToUpper(noun[:1]) + noun[1:]
	return recordsync.Messages{
		Title:       title,
		LoadError:   "Error al cargar " + plural,
		SaveError:   "Error al guardar la " + noun,
		DeleteError: "No se pudo eliminar la " + noun,
		Created:     capNoun + " " + createdVerb + " con exito",
		Updated:     capNoun + " actualizada con exito",
		Deleted:     capNoun + " eliminada con exito",
		Confirm:     "Esta accion eliminara la " + noun + ". Continuar?",
	}
}

// optional trims s and maps an empty result to nil.
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func orDash(p *string) string {
	if p == nil || *p == "" {
		return "-"
	}
	return *p
}

func yesNo(b bool) string {
	if b {
		return "Si"
	}
	return "No"
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func trim(s string) string {
	return strings.TrimSpace(s)
}

func formatListTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.In(displayLocation).Format(listLayout)
}

// parseLeadingInt reads the integer at the start of s, ignoring anything
// after it, so "3 (tercera)" gives 3.
func parseLeadingInt(s string) (int, bool) {
	m := leadingInt.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(m[1], "+"))
	if err != nil {
		return 0, false
	}
	return n, true
}

// sequence decodes an array body column. A NULL column decodes to no paragraphs.
func sequence(v []string) []string {
	return paragraph.FromStoredSequence(v)
}

func join(parts ...string) string {
	return strings.Join(parts, " | ")
}
