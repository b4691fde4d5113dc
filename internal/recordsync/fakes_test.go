package recordsync

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
)

var fixedNow = time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)

type noteForm struct {
	Title     string
	Source    string
	ImageURL  string
	ImagePath string
}

type note struct {
	ID       string
	Title    string
	Body     string
	Source   *string
	ImageURL string
}

type updateCall struct {
	ID  string
	Row note
}

type fakeStore struct {
	mu sync.Mutex

	rows      []note
	listErr   error
	createErr error
	updateErr error
	deleteErr error

	// hold, when set, makes writes wait until it is closed or the context ends.
	hold    chan struct{}
	entered chan struct{}

	listCalls int
	lastOrder []OrderBy
	created   []note
	updated   []updateCall
	deleted   []string
}

func (s *fakeStore) List(ctx context.Context, order []OrderBy) ([]note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	s.lastOrder = order
	if s.listErr != nil {
		return nil, s.listErr
	}
	return append([]note(nil), s.rows...), nil
}

func (s *fakeStore) wait(ctx context.Context) error {
	if s.hold == nil {
		return nil
	}
	if s.entered != nil {
		close(s.entered)
	}
	select {
	case <-s.hold:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *fakeStore) Create(ctx context.Context, row note) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created = append(s.created, row)
	return s.createErr
}

func (s *fakeStore) Update(ctx context.Context, id string, row note) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updated = append(s.updated, updateCall{ID: id, Row: row})
	return s.updateErr
}

func (s *fakeStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, id)
	return s.deleteErr
}

func (s *fakeStore) writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.created) + len(s.updated) + len(s.deleted)
}

type fakeBlob struct {
	err      error
	uploads  []string
	types    []string
	buckets  []string
	payloads [][]byte
}

func (b *fakeBlob) Upload(ctx context.Context, bucket, path string, data []byte, contentType string) error {
	b.uploads = append(b.uploads, path)
	b.types = append(b.types, contentType)
	b.buckets = append(b.buckets, bucket)
	b.payloads = append(b.payloads, data)
	return b.err
}

func (b *fakeBlob) PublicURL(bucket, path string) string {
	return "https://cdn.test/" + bucket + "/" + path
}

type fakePresence struct{ up bool }

func (p fakePresence) Available() bool { return p.up }

func noteCollection() Collection[noteForm, note] {
	return Collection[noteForm, note]{
		Name: "notas",
		Messages: Messages{
			Title:       "Notas",
			LoadError:   "Error al cargar notas",
			SaveError:   "Error al guardar la nota",
			DeleteError: "No se pudo eliminar la nota",
			Created:     "Nota creada con exito",
			Updated:     "Nota actualizada con exito",
			Deleted:     "Nota eliminada con exito",
			Confirm:     "Esta accion eliminara la nota. Continuar?",
		},
		Order: []OrderBy{{Column: "created_at", Desc: true}},
		Body:  BodyText,
		Fields: []Field[noteForm]{
			TextField("titulo", "Titulo", func(f *noteForm) *string { return &f.Title }),
			TextField("fuente", "Fuente", func(f *noteForm) *string { return &f.Source }),
		},
		NewForm: func(time.Time) noteForm { return noteForm{Source: "Tradicion"} },
		Validate: func(f noteForm, body []string) error {
			if strings.TrimSpace(f.Title) == "" || len(body) == 0 {
				return Invalid("Falta el titulo o el contenido")
			}
			return nil
		},
		Payload: func(f noteForm, body []string, now time.Time) (note, error) {
			n := note{Title: strings.TrimSpace(f.Title), Body: strings.Join(body, "\n\n"), ImageURL: f.ImageURL}
			if s := strings.TrimSpace(f.Source); s != "" {
				n.Source = &s
			}
			return n, nil
		},
		Edit: func(r note) (noteForm, []string) {
			f := noteForm{Title: r.Title, ImageURL: r.ImageURL}
			if r.Source != nil {
				f.Source = *r.Source
			}
			return f, strings.Split(r.Body, "\n\n")
		},
		ID:      func(r note) string { return r.ID },
		Summary: func(r note) string { return r.Title },
	}
}

func withImageUpload(col Collection[noteForm, note], files map[string]*Attachment) Collection[noteForm, note] {
	col.Upload = &UploadStep[noteForm]{
		Bucket: "noticias",
		Folder: "noticias",
		File: func(f noteForm) (*Attachment, error) {
			if f.ImagePath == "" {
				return nil, nil
			}
			a, ok := files[f.ImagePath]
			if !ok {
				return nil, Invalid("No se pudo leer el archivo")
			}
			return a, nil
		},
		SetURL: func(f *noteForm, url string) { f.ImageURL = url },
	}
	return col
}

var errBoom = errors.New("boom")
