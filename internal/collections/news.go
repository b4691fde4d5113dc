package collections

import (
	"time"

	"github.com/parroquia/contentadmin/internal/filex"
	"github.com/parroquia/contentadmin/internal/models"
	"github.com/parroquia/contentadmin/internal/recordsync"
)

const (
	// DefaultNewsBucket is used when no bucket is configured.
	DefaultNewsBucket = "noticias"
	newsFolder        = "noticias"
)

// loadAttachment is a test seam for filex.Load.
var loadAttachment = func(path string) (*recordsync.Attachment, error) {
	f, err := filex.Load(path)
	if err != nil {
		return nil, err
	}
	return &recordsync.Attachment{Name: f.Name, ContentType: f.ContentType, Data: f.Data}, nil
}

// NewsForm is the editable part of a news item. ImagePath names a local
// file to upload; ImageURL is kept when no file is picked. PublishAt uses
// LocalLayout.
type NewsForm struct {
	Title     string
	Subtitle  string
	Author    string
	Summary   string
	ImageURL  string
	ImagePath string
	Featured  bool
	Active    bool
	PublishAt string
}

// News describes the noticias_parroquia table. Images are uploaded to
// bucket before the row is saved.
func News(bucket string) recordsync.Collection[NewsForm, models.NewsItem] {
	if bucket == "" {
		bucket = DefaultNewsBucket
	}
	return recordsync.Collection[NewsForm, models.NewsItem]{
		Name:     "noticias",
		Messages: messagesFor("Noticias parroquiales", "noticias", "noticia", "creada"),
		Order: []recordsync.OrderBy{
			{Column: "fecha_publicacion", Desc: true},
			{Column: "created_at", Desc: true},
		},
		Body: recordsync.BodySequence,
		Fields: []recordsync.Field[NewsForm]{
			recordsync.TextField("titulo", "Titulo", func(f *NewsForm) *string { return &f.Title }),
			recordsync.TextField("subtitulo", "Subtitulo", func(f *NewsForm) *string { return &f.Subtitle }),
			recordsync.TextField("autor", "Autor", func(f *NewsForm) *string { return &f.Author }),
			recordsync.TextField("resumen", "Resumen", func(f *NewsForm) *string { return &f.Summary }),
			recordsync.TextField("imagen_url", "URL de imagen", func(f *NewsForm) *string { return &f.ImageURL }),
			recordsync.TextField("imagen", "Archivo de imagen", func(f *NewsForm) *string { return &f.ImagePath }),
			recordsync.BoolField("destacada", "Destacada", func(f *NewsForm) *bool { return &f.Featured }),
			recordsync.BoolField("activo", "Activo", func(f *NewsForm) *bool { return &f.Active }),
			recordsync.TextField("fecha_publicacion", "Fecha de publicacion (AAAA-MM-DDTHH:MM)", func(f *NewsForm) *string { return &f.PublishAt }),
		},
		NewForm: func(now time.Time) NewsForm {
			return NewsForm{Active: true, PublishAt: toLocalValue(now)}
		},
		Validate: func(f NewsForm, body []string) error {
			if blank(f.Title) || len(body) == 0 {
				return recordsync.Invalid("Falta el titulo o el contenido")
			}
			return nil
		},
		Payload: func(f NewsForm, body []string, now time.Time) (models.NewsItem, error) {
			publishedAt := now
			if !blank(f.PublishAt) {
				t, err := time.ParseInLocation(LocalLayout, trim(f.PublishAt), displayLocation)
				if err != nil {
					return models.NewsItem{}, recordsync.Invalid("La fecha de publicacion no es valida")
				}
				publishedAt = t
			}
			return models.NewsItem{
				Title:       trim(f.Title),
				Subtitle:    optional(f.Subtitle),
				Author:      optional(f.Author),
				Content:     body,
				Summary:     optional(f.Summary),
				ImageURL:    optional(f.ImageURL),
				Featured:    f.Featured,
				Active:      f.Active,
				PublishedAt: publishedAt,
				UpdatedAt:   now,
			}, nil
		},
		Edit: func(r models.NewsItem) (NewsForm, []string) {
			return NewsForm{
				Title:     r.Title,
				Subtitle:  deref(r.Subtitle),
				Author:    deref(r.Author),
				Summary:   deref(r.Summary),
				ImageURL:  deref(r.ImageURL),
				Featured:  r.Featured,
				Active:    r.Active,
				PublishAt: toLocalValue(r.PublishedAt),
			}, sequence(r.Content)
		},
		ID: func(r models.NewsItem) string { return r.ID },
		Summary: func(r models.NewsItem) string {
			s := join(r.Title, "Autor: "+orDash(r.Author), "Destacada: "+yesNo(r.Featured),
				"Activo: "+yesNo(r.Active), formatListTime(r.PublishedAt))
			if r.ImageURL != nil && *r.ImageURL != "" {
				s = join(s, "Imagen: "+*r.ImageURL)
			}
			return s
		},
		Upload: &recordsync.UploadStep[NewsForm]{
			Bucket: bucket,
			Folder: newsFolder,
			File: func(f NewsForm) (*recordsync.Attachment, error) {
				path := trim(f.ImagePath)
				if path == "" {
					return nil, nil
				}
				a, err := loadAttachment(path)
				if err != nil {
					return nil, recordsync.Invalid("No se pudo leer el archivo " + path)
				}
				return a, nil
			},
			SetURL: func(f *NewsForm, url string) { f.ImageURL = url },
		},
	}
}

// toLocalValue renders t for a date-time input. A zero time renders empty.
func toLocalValue(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(displayLocation).Format(LocalLayout)
}
