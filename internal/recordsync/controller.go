// Package recordsync keeps one content table in sync with an editing session:
// it lists rows, creates or updates a row from the current form, deletes
// rows after confirmation and reports the outcome as a short-lived status.
package recordsync

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/parroquia/contentadmin/internal/logging"
	"github.com/parroquia/contentadmin/internal/paragraph"
)

// InvalidImageMessage is shown when the attachment is not an image.
const InvalidImageMessage = "El archivo seleccionado no es una imagen valida"

// NotFoundMessage is shown when the selected row is not in the list.
const NotFoundMessage = "No se encontro el registro"

// State is the lifecycle state of a Controller.
type State int

const (
	Idle State = iota
	Loading
	Loaded
	Submitting
	Error
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Submitting:
		return "submitting"
	case Error:
		return "error"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// FieldView is a form field as shown to the operator.
type FieldView struct {
	Name  string
	Label string
	Value string
}

// RowView is a stored row as shown in the list.
type RowView struct {
	ID      string
	Summary string
}

// Options carries the collaborators shared by every controller.
type Options struct {
	Presence  Presence
	Blob      BlobStore
	Logger    logging.Logger
	StatusTTL time.Duration
	Timeout   time.Duration
	Clock     func() time.Time
}

type alwaysAvailable struct{}

func (alwaysAvailable) Available() bool { return true }

var newOpID = uuid.NewString

var newToken = func() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// Controller drives one collection. Submit and Delete are exclusive: a call
// made while another one is running returns ErrBusy.
type Controller[F any, R any] struct {
	col      Collection[F, R]
	store    Store[R]
	presence Presence
	blob     BlobStore
	logger   logging.Logger
	timeout  time.Duration
	now      func() time.Time
	status   *statusBoard

	mu     sync.Mutex
	state  State
	stable State
	busy   bool
	rows   []R
	form   F
	body   *paragraph.List
	target string
}

// New builds a controller for col backed by store.
func New[F any, R any](col Collection[F, R], store Store[R], opts Options) *Controller[F, R] {
	c := &Controller[F, R]{
		col:      col,
		store:    store,
		presence: opts.Presence,
		blob:     opts.Blob,
		logger:   opts.Logger,
		timeout:  opts.Timeout,
		now:      opts.Clock,
		status:   newStatusBoard(opts.StatusTTL),
		body:     paragraph.New(),
	}
	if c.presence == nil {
		c.presence = alwaysAvailable{}
	}
	if c.logger == nil {
		c.logger = logging.Discard()
	}
	if c.now == nil {
		c.now = time.Now
	}
	c.resetLocked()
	return c
}

func (c *Controller[F, R]) Name() string  { return c.col.Name }
func (c *Controller[F, R]) Title() string { return c.col.Messages.Title }

func (c *Controller[F, R]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Status returns the current status message, if one has not expired yet.
func (c *Controller[F, R]) Status() (Status, bool) {
	return c.status.get()
}

// Editing returns the id of the row being edited, or "" in create mode.
func (c *Controller[F, R]) Editing() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

// Form returns a copy of the current form.
func (c *Controller[F, R]) Form() F {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

// Fields returns the form fields with their current values.
func (c *Controller[F, R]) Fields() []FieldView {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]FieldView, 0, len(c.col.Fields))
	for _, f := range c.col.Fields {
		out = append(out, FieldView{Name: f.Name, Label: f.Label, Value: f.Get(&c.form)})
	}
	return out
}

// SetField assigns value to the named form field.
func (c *Controller[F, R]) SetField(name, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, f := range c.col.Fields {
		if f.Name == name {
			return f.Set(&c.form, value)
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownField, name)
}

// Paragraphs returns the body being edited, or nil when the collection has no body.
func (c *Controller[F, R]) Paragraphs() *paragraph.List {
	if c.col.Body == BodyNone {
		return nil
	}
	return c.body
}

// Records returns the rows of the last successful list.
func (c *Controller[F, R]) Records() []R {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]R(nil), c.rows...)
}

// Rows returns the loaded rows rendered for the list view.
func (c *Controller[F, R]) Rows() []RowView {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]RowView, 0, len(c.rows))
	for _, r := range c.rows {
		out = append(out, RowView{ID: c.col.ID(r), Summary: c.col.Summary(r)})
	}
	return out
}

// Load fetches the rows of the collection in its declared order.
func (c *Controller[F, R]) Load(ctx context.Context) error {
	log := c.opLogger()
	if !c.presence.Available() {
		c.mu.Lock()
		c.rows = nil
		c.state, c.stable = Error, Error
		c.mu.Unlock()
		return c.fail(ctx, log, "list", ErrNotConfigured, NotConfiguredMessage)
	}
	return c.load(ctx, log)
}

func (c *Controller[F, R]) load(ctx context.Context, log logging.Logger) error {
	c.setState(Loading)

	var rows []R
	err := c.call(ctx, "list", func(ctx context.Context) error {
		var err error
		rows, err = c.store.List(ctx, c.col.Order)
		return err
	})

	c.mu.Lock()
	if err != nil {
		c.rows = nil
		c.state, c.stable = Error, Error
		c.mu.Unlock()
		return c.fail(ctx, log, "list", err, c.col.Messages.LoadError)
	}
	c.rows = rows
	c.state, c.stable = Loaded, Loaded
	c.mu.Unlock()

	log.Debug(ctx, "rows loaded", "count", len(rows))
	return nil
}

// Submit creates a row from the form, or updates the row being edited.
// The form is left untouched when anything fails.
func (c *Controller[F, R]) Submit(ctx context.Context) error {
	if !c.acquire() {
		return ErrBusy
	}
	defer c.release()

	log := c.opLogger()
	if !c.presence.Available() {
		return c.fail(ctx, log, "submit", ErrNotConfigured, NotConfiguredMessage)
	}

	c.mu.Lock()
	form := c.form
	body := c.body.Items()
	target := c.target
	c.mu.Unlock()

	if err := c.col.Validate(form, body); err != nil {
		return c.fail(ctx, log, "validate", err, messageOf(err))
	}

	c.setState(Submitting)

	if step := c.col.Upload; step != nil {
		if err := c.upload(ctx, log, step, &form); err != nil {
			return err
		}
	}

	row, err := c.col.Payload(form, body, c.now())
	if err != nil {
		return c.fail(ctx, log, "payload", err, messageOf(err))
	}

	op := "create"
	if target != "" {
		op = "update"
	}
	err = c.call(ctx, op, func(ctx context.Context) error {
		if target == "" {
			return c.store.Create(ctx, row)
		}
		return c.store.Update(ctx, target, row)
	})
	if err != nil {
		return c.fail(ctx, log, op, err, c.col.Messages.SaveError)
	}

	c.mu.Lock()
	c.resetLocked()
	c.mu.Unlock()

	if target == "" {
		c.status.set(StatusSuccess, c.col.Messages.Created)
	} else {
		c.status.set(StatusSuccess, c.col.Messages.Updated)
	}
	log.Info(ctx, "record saved", "op", op, "id", target)

	_ = c.load(ctx, log)
	return nil
}

// Delete removes the row id once confirm approves the collection prompt.
func (c *Controller[F, R]) Delete(ctx context.Context, id string, confirm func(prompt string) bool) error {
	if !c.acquire() {
		return ErrBusy
	}
	defer c.release()

	log := c.opLogger()
	if !c.presence.Available() {
		return c.fail(ctx, log, "delete", ErrNotConfigured, NotConfiguredMessage)
	}
	if confirm == nil || !confirm(c.col.Messages.Confirm) {
		log.Info(ctx, "deletion declined", "id", id)
		return ErrDeclined
	}

	c.setState(Submitting)

	err := c.call(ctx, "delete", func(ctx context.Context) error {
		return c.store.Delete(ctx, id)
	})
	if err != nil {
		return c.fail(ctx, log, "delete", err, c.col.Messages.DeleteError)
	}

	c.mu.Lock()
	if c.target == id {
		c.resetLocked()
	}
	c.mu.Unlock()

	c.status.set(StatusSuccess, c.col.Messages.Deleted)
	log.Info(ctx, "record deleted", "id", id)

	_ = c.load(ctx, log)
	return nil
}

// Select copies the loaded row id into the form and makes it the update target.
func (c *Controller[F, R]) Select(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.busy {
		return ErrBusy
	}
	for _, r := range c.rows {
		if c.col.ID(r) != id {
			continue
		}
		form, body := c.col.Edit(r)
		c.form = form
		c.body.Replace(body)
		c.target = id
		return nil
	}
	c.status.set(StatusError, NotFoundMessage)
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Cancel drops the form and leaves edit mode.
func (c *Controller[F, R]) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
}

func (c *Controller[F, R]) upload(ctx context.Context, log logging.Logger, step *UploadStep[F], form *F) error {
	file, err := step.File(*form)
	if err != nil {
		return c.fail(ctx, log, "upload", err, messageOf(err))
	}
	if file == nil {
		return nil
	}
	if !strings.HasPrefix(file.ContentType, "image/") {
		return c.fail(ctx, log, "upload", Invalid(InvalidImageMessage), InvalidImageMessage)
	}

	failed := fmt.Sprintf("No se pudo subir la imagen al bucket %q", step.Bucket)
	if c.blob == nil {
		return c.fail(ctx, log, "upload", ErrNotConfigured, failed)
	}

	path := ObjectPath(step.Folder, file.Name, c.now())
	err = c.call(ctx, "upload", func(ctx context.Context) error {
		return c.blob.Upload(ctx, step.Bucket, path, file.Data, file.ContentType)
	})
	if err != nil {
		return c.fail(ctx, log, "upload", err, failed)
	}

	step.SetURL(form, c.blob.PublicURL(step.Bucket, path))
	log.Info(ctx, "attachment uploaded", "bucket", step.Bucket, "path", path)
	return nil
}

// ObjectPath builds a collision-resistant object key for an uploaded file:
// {folder}/{unix millis}-{token}.{extension}. The extension comes from the
// file name and defaults to jpg.
func ObjectPath(folder, fileName string, now time.Time) string {
	ext := "jpg"
	if i := strings.LastIndex(fileName, "."); i >= 0 && i < len(fileName)-1 {
		ext = strings.ToLower(fileName[i+1:])
	}
	return fmt.Sprintf("%s/%d-%s.%s", folder, now.UnixMilli(), newToken(), ext)
}

func (c *Controller[F, R]) call(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	if err := fn(ctx); err != nil {
		return newRemoteError(ctx, op, err)
	}
	return nil
}

func (c *Controller[F, R]) fail(ctx context.Context, log logging.Logger, op string, err error, msg string) error {
	if errors.Is(err, ErrValidation) {
		log.Warn(ctx, "validation failed", "op", op, "error", err)
	} else {
		log.Error(ctx, "operation failed", "op", op, "error", err)
	}
	c.status.set(StatusError, msg)
	return err
}

func (c *Controller[F, R]) opLogger() logging.Logger {
	return c.logger.With("collection", c.col.Name, "op_id", newOpID())
}

func (c *Controller[F, R]) acquire() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return false
	}
	c.busy = true
	return true
}

func (c *Controller[F, R]) release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = false
	if c.state == Submitting {
		c.state = c.stable
	}
}

func (c *Controller[F, R]) setState(s State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = s
}

func (c *Controller[F, R]) resetLocked() {
	c.form = c.col.NewForm(c.now())
	c.body.Reset()
	c.target = ""
}

func messageOf(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return err.Error()
}
