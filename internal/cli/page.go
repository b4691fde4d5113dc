package cli

import (
	"context"
	"database/sql"

	"github.com/parroquia/contentadmin/internal/collections"
	"github.com/parroquia/contentadmin/internal/paragraph"
	"github.com/parroquia/contentadmin/internal/recordsync"
	"github.com/parroquia/contentadmin/internal/repositories/rows"
)

// Page is the surface of one content page. *recordsync.Controller
// satisfies it for every collection.
type Page interface {
	Name() string
	Title() string
	State() recordsync.State
	Status() (recordsync.Status, bool)
	Editing() string
	Fields() []recordsync.FieldView
	SetField(name, value string) error
	Paragraphs() *paragraph.List
	Rows() []recordsync.RowView
	Load(ctx context.Context) error
	Submit(ctx context.Context) error
	Delete(ctx context.Context, id string, confirm func(prompt string) bool) error
	Select(id string) error
	Cancel()
}

// BuildPages returns the five content pages backed by db, in menu order.
func BuildPages(db *sql.DB, opts recordsync.Options, bucket string) []Page {
	return []Page{
		recordsync.New(collections.Prayers(), rows.NewPostgresStore(db, rows.Prayers()), opts),
		recordsync.New(collections.Reflections(), rows.NewPostgresStore(db, rows.Reflections()), opts),
		recordsync.New(collections.Parishes(), rows.NewPostgresStore(db, rows.Parishes()), opts),
		recordsync.New(collections.Lessons(), rows.NewPostgresStore(db, rows.Lessons()), opts),
		recordsync.New(collections.News(bucket), rows.NewPostgresStore(db, rows.News()), opts),
	}
}
