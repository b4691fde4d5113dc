package recordsync

import (
	"context"
	"strings"
	"time"
)

// NotConfiguredMessage is shown when the database is not configured or does not answer.
const NotConfiguredMessage = "Configura DATABASE_DSN o revisa la conexion con la base de datos"

// OrderBy is one sort key of a list query.
type OrderBy struct {
	Column string
	Desc   bool
}

// Store is the structured-row storage for one table.
type Store[R any] interface {
	List(ctx context.Context, order []OrderBy) ([]R, error)
	Create(ctx context.Context, row R) error
	Update(ctx context.Context, id string, row R) error
	Delete(ctx context.Context, id string) error
}

// BlobStore keeps uploaded files and hands out their public URLs.
type BlobStore interface {
	Upload(ctx context.Context, bucket, path string, data []byte, contentType string) error
	PublicURL(bucket, path string) string
}

// Presence reports whether the remote store is configured and reachable.
type Presence interface {
	Available() bool
}

// BodyKind says how a collection stores its paragraphs.
type BodyKind int

const (
	// BodyNone means the collection has no paragraph body.
	BodyNone BodyKind = iota
	// BodyText stores paragraphs joined by blank lines in a text column.
	BodyText
	// BodySequence stores paragraphs in an array column.
	BodySequence
)

// Messages are the operator-facing texts of one collection.
type Messages struct {
	Title       string
	LoadError   string
	SaveError   string
	DeleteError string
	Created     string
	Updated     string
	Deleted     string
	Confirm     string
}

// Field binds one form input to a form struct.
type Field[F any] struct {
	Name  string
	Label string
	Get   func(form *F) string
	Set   func(form *F, value string) error
}

// TextField binds a string field of the form.
func TextField[F any](name, label string, ref func(form *F) *string) Field[F] {
	return Field[F]{
		Name:  name,
		Label: label,
		Get:   func(form *F) string { return *ref(form) },
		Set: func(form *F, value string) error {
			*ref(form) = value
			return nil
		},
	}
}

// BoolField binds a yes/no field of the form. It accepts si/no, s/n,
// true/false, yes/no and 1/0.
func BoolField[F any](name, label string, ref func(form *F) *bool) Field[F] {
	return Field[F]{
		Name:  name,
		Label: label,
		Get: func(form *F) string {
			if *ref(form) {
				return "si"
			}
			return "no"
		},
		Set: func(form *F, value string) error {
			b, ok := ParseYesNo(value)
			if !ok {
				return Invalid("El campo " + strings.ToLower(label) + " debe ser si o no")
			}
			*ref(form) = b
			return nil
		},
	}
}

// ParseYesNo reads an operator answer to a yes/no question.
func ParseYesNo(s string) (value bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "si", "sí", "s", "y", "yes", "true", "1":
		return true, true
	case "no", "n", "false", "0":
		return false, true
	}
	return false, false
}

// Attachment is a local file picked for upload.
type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
}

// UploadStep uploads the form attachment before the row payload is built.
type UploadStep[F any] struct {
	Bucket string
	Folder string
	// File returns the attachment to upload, or nil when there is none.
	File func(form F) (*Attachment, error)
	// SetURL stores the public URL of the uploaded file in the form.
	SetURL func(form *F, url string)
}

// Collection describes one content table and how its form maps onto rows.
type Collection[F any, R any] struct {
	Name     string
	Messages Messages
	Order    []OrderBy
	Body     BodyKind
	Fields   []Field[F]

	// NewForm returns a form holding the default values.
	NewForm func(now time.Time) F
	// Validate checks the form before any remote call. It returns a *ValidationError.
	Validate func(form F, body []string) error
	// Payload builds the row sent to the store.
	Payload func(form F, body []string, now time.Time) (R, error)
	// Edit copies a stored row back into a form and its paragraphs.
	Edit func(row R) (F, []string)
	// ID returns the identity of a stored row.
	ID func(row R) string
	// Summary renders a row as one line of the list.
	Summary func(row R) string

	Upload *UploadStep[F]
}
