package collections

import (
	"time"

	"github.com/parroquia/contentadmin/internal/models"
	"github.com/parroquia/contentadmin/internal/recordsync"
)

// ReflectionForm is the editable part of a reflection.
type ReflectionForm struct {
	Title    string
	Subtitle string
	Author   string
}

// Reflections describes the reflexiones table. The reflection date is
// stamped on every save.
func Reflections() recordsync.Collection[ReflectionForm, models.Reflection] {
	return recordsync.Collection[ReflectionForm, models.Reflection]{
		Name:     "reflexiones",
		Messages: messagesFor("Reflexiones", "reflexiones", "reflexion", "publicada"),
		Order:    []recordsync.OrderBy{{Column: "fecha", Desc: true}},
		Body:     recordsync.BodySequence,
		Fields: []recordsync.Field[ReflectionForm]{
			recordsync.TextField("titulo", "Titulo", func(f *ReflectionForm) *string { return &f.Title }),
			recordsync.TextField("subtitulo", "Subtitulo", func(f *ReflectionForm) *string { return &f.Subtitle }),
			recordsync.TextField("autor", "Autor", func(f *ReflectionForm) *string { return &f.Author }),
		},
		NewForm: func(time.Time) ReflectionForm { return ReflectionForm{} },
		Validate: func(f ReflectionForm, body []string) error {
			if blank(f.Title) || blank(f.Subtitle) || blank(f.Author) || len(body) == 0 {
				return recordsync.Invalid("Falta titulo, subtitulo, autor o contenido")
			}
			return nil
		},
		Payload: func(f ReflectionForm, body []string, now time.Time) (models.Reflection, error) {
			return models.Reflection{
				Title:    trim(f.Title),
				Subtitle: trim(f.Subtitle),
				Author:   trim(f.Author),
				Content:  body,
				Date:     now,
			}, nil
		},
		Edit: func(r models.Reflection) (ReflectionForm, []string) {
			return ReflectionForm{Title: r.Title, Subtitle: r.Subtitle, Author: r.Author}, sequence(r.Content)
		},
		ID: func(r models.Reflection) string { return r.ID },
		Summary: func(r models.Reflection) string {
			return join(r.Title, r.Subtitle, "Autor: "+r.Author, formatListTime(r.Date))
		},
	}
}
