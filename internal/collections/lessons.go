package collections

import (
	"strconv"
	"strings"
	"time"

	"github.com/parroquia/contentadmin/internal/models"
	"github.com/parroquia/contentadmin/internal/recordsync"
)

// LessonForm is the editable part of a catechism lesson. Order is kept as
// typed and parsed on submit.
type LessonForm struct {
	Title         string
	Subtitle      string
	Level         string
	Topic         string
	Summary       string
	BibleCitation string
	Order         string
	Active        bool
}

// Lessons describes the lecciones_catecismo table.
func Lessons() recordsync.Collection[LessonForm, models.Lesson] {
	return recordsync.Collection[LessonForm, models.Lesson]{
		Name:     "lecciones",
		Messages: messagesFor("Lecciones de catecismo", "lecciones", "leccion", "creada"),
		Order: []recordsync.OrderBy{
			{Column: "orden"},
			{Column: "created_at", Desc: true},
		},
		Body: recordsync.BodySequence,
		Fields: []recordsync.Field[LessonForm]{
			recordsync.TextField("titulo", "Titulo", func(f *LessonForm) *string { return &f.Title }),
			recordsync.TextField("subtitulo", "Subtitulo", func(f *LessonForm) *string { return &f.Subtitle }),
			levelField(),
			recordsync.TextField("tema", "Tema", func(f *LessonForm) *string { return &f.Topic }),
			recordsync.TextField("resumen", "Resumen", func(f *LessonForm) *string { return &f.Summary }),
			recordsync.TextField("cita_biblica", "Cita biblica", func(f *LessonForm) *string { return &f.BibleCitation }),
			recordsync.TextField("orden", "Orden", func(f *LessonForm) *string { return &f.Order }),
			recordsync.BoolField("activo", "Activo", func(f *LessonForm) *bool { return &f.Active }),
		},
		NewForm: func(time.Time) LessonForm {
			return LessonForm{Order: "1", Active: true}
		},
		Validate: func(f LessonForm, body []string) error {
			if blank(f.Title) || len(body) == 0 || f.Level == "" {
				return recordsync.Invalid("Falta el titulo, nivel o contenido")
			}
			if _, ok := models.ParseLevel(f.Level); !ok {
				return recordsync.Invalid("Nivel invalido")
			}
			if _, ok := parseLeadingInt(f.Order); !ok {
				return recordsync.Invalid("El campo orden debe ser un numero entero")
			}
			return nil
		},
		Payload: func(f LessonForm, body []string, now time.Time) (models.Lesson, error) {
			level, ok := models.ParseLevel(f.Level)
			if !ok {
				return models.Lesson{}, recordsync.Invalid("Nivel invalido")
			}
			order, ok := parseLeadingInt(f.Order)
			if !ok {
				return models.Lesson{}, recordsync.Invalid("El campo orden debe ser un numero entero")
			}
			return models.Lesson{
				Title:         trim(f.Title),
				Subtitle:      optional(f.Subtitle),
				Level:         level,
				Topic:         optional(f.Topic),
				Content:       body,
				Summary:       optional(f.Summary),
				BibleCitation: optional(f.BibleCitation),
				Order:         order,
				Active:        f.Active,
				UpdatedAt:     now,
			}, nil
		},
		Edit: func(r models.Lesson) (LessonForm, []string) {
			return LessonForm{
				Title:         r.Title,
				Subtitle:      deref(r.Subtitle),
				Level:         string(r.Level),
				Topic:         deref(r.Topic),
				Summary:       deref(r.Summary),
				BibleCitation: deref(r.BibleCitation),
				Order:         strconv.Itoa(r.Order),
				Active:        r.Active,
			}, sequence(r.Content)
		},
		ID: func(r models.Lesson) string { return r.ID },
		Summary: func(r models.Lesson) string {
			level := string(r.Level)
			if level == "" {
				level = "-"
			}
			return join("Orden "+strconv.Itoa(r.Order), r.Title, "Nivel: "+level,
				"Tema: "+orDash(r.Topic), "Activo: "+yesNo(r.Active))
		},
	}
}

func levelField() recordsync.Field[LessonForm] {
	names := make([]string, 0, len(models.Levels))
	for _, l := range models.Levels {
		names = append(names, string(l))
	}
	f := recordsync.TextField("nivel", "Nivel ("+strings.Join(names, ", ")+")", func(f *LessonForm) *string { return &f.Level })
	f.Set = func(form *LessonForm, value string) error {
		if l, ok := models.ParseLevel(value); ok {
			form.Level = string(l)
			return nil
		}
		form.Level = strings.TrimSpace(value)
		return nil
	}
	return f
}
