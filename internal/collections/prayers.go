package collections

import (
	"time"

	"github.com/parroquia/contentadmin/internal/models"
	"github.com/parroquia/contentadmin/internal/paragraph"
	"github.com/parroquia/contentadmin/internal/recordsync"
)

// PrayerForm is the editable part of a prayer.
type PrayerForm struct {
	Title  string
	Source string
}

// Prayers describes the franciscan_prayers table. The body is stored as
// one text column.
func Prayers() recordsync.Collection[PrayerForm, models.Prayer] {
	return recordsync.Collection[PrayerForm, models.Prayer]{
		Name:     "oraciones",
		Messages: messagesFor("Oraciones", "oraciones", "oracion", "publicada"),
		Order:    []recordsync.OrderBy{{Column: "created_at", Desc: true}},
		Body:     recordsync.BodyText,
		Fields: []recordsync.Field[PrayerForm]{
			recordsync.TextField("titulo", "Titulo", func(f *PrayerForm) *string { return &f.Title }),
			recordsync.TextField("fuente", "Fuente", func(f *PrayerForm) *string { return &f.Source }),
		},
		NewForm: func(time.Time) PrayerForm { return PrayerForm{} },
		Validate: func(f PrayerForm, body []string) error {
			if blank(f.Title) || len(body) == 0 {
				return recordsync.Invalid("Falta el titulo o el contenido")
			}
			return nil
		},
		Payload: func(f PrayerForm, body []string, _ time.Time) (models.Prayer, error) {
			return models.Prayer{
				Title:  trim(f.Title),
				Body:   paragraph.New(body...).StoredString(),
				Source: optional(f.Source),
			}, nil
		},
		Edit: func(r models.Prayer) (PrayerForm, []string) {
			return PrayerForm{Title: r.Title, Source: deref(r.Source)}, paragraph.FromStoredString(r.Body)
		},
		ID: func(r models.Prayer) string { return r.ID },
		Summary: func(r models.Prayer) string {
			if r.Source != nil {
				return join(r.Title, "Fuente: "+*r.Source, formatListTime(r.CreatedAt))
			}
			return join(r.Title, formatListTime(r.CreatedAt))
		},
	}
}
