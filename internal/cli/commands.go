package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/parroquia/contentadmin/internal/paragraph"
	"github.com/parroquia/contentadmin/internal/recordsync"
)

var (
	errNoPage      = errors.New("no page selected")
	errUnknownPage = errors.New("unknown page")
	errAborted     = errors.New("editing aborted")
)

func (a *App) Pages() error {
	for i, p := range a.pages {
		mark := " "
		if p == a.current {
			mark = "*"
		}
		fmt.Fprintf(a.out, "%s %d. %-12s %s\n", mark, i+1, p.Name(), p.Title())
	}
	return nil
}

// Use opens the page called name, or the page at that 1-based position,
// and lists its rows.
func (a *App) Use(ctx context.Context, name string) error {
	p := a.findPage(name)
	if p == nil {
		fmt.Fprintln(a.out, "Pagina desconocida:", name)
		return fmt.Errorf("%w: %s", errUnknownPage, name)
	}
	a.current = p
	return a.List(ctx)
}

func (a *App) findPage(name string) Page {
	for _, p := range a.pages {
		if strings.EqualFold(p.Name(), name) {
			return p
		}
	}
	if n, err := strconv.Atoi(name); err == nil && n >= 1 && n <= len(a.pages) {
		return a.pages[n-1]
	}
	return nil
}

func (a *App) page() (Page, error) {
	if a.current == nil {
		fmt.Fprintln(a.out, "Primero elige una pagina: use <pagina> (ver 'pages')")
		return nil, errNoPage
	}
	return a.current, nil
}

// List reloads the current page and prints its rows.
func (a *App) List(ctx context.Context) error {
	p, err := a.page()
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "== %s ==\n", p.Title())
	fmt.Fprintln(a.out, "Cargando...")
	err = p.Load(ctx)
	a.render(p)
	return err
}

func (a *App) render(p Page) {
	rows := p.Rows()
	switch {
	case p.State() == recordsync.Loading:
		fmt.Fprintln(a.out, "Cargando...")
	case p.State() == recordsync.Error:
	case len(rows) == 0:
		fmt.Fprintln(a.out, "No hay registros.")
	default:
		for i, r := range rows {
			fmt.Fprintf(a.out, "%3d. %s\n     id: %s\n", i+1, r.Summary, r.ID)
		}
	}
	a.printStatus(p)
}

func (a *App) printStatus(p Page) {
	st, ok := p.Status()
	if !ok {
		return
	}
	tag := "ok"
	if st.Kind == recordsync.StatusError {
		tag = "error"
	}
	fmt.Fprintf(a.out, "[%s] %s\n", tag, st.Text)
}

// resolve maps a list position to its row id. Anything else is taken as an id.
func (a *App) resolve(p Page, ref string) string {
	rows := p.Rows()
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(rows) {
		return rows[n-1].ID
	}
	return ref
}

// New starts a blank form on the current page.
func (a *App) New(ctx context.Context) error {
	p, err := a.page()
	if err != nil {
		return err
	}
	p.Cancel()
	fmt.Fprintln(a.out, "Nuevo registro")
	return a.compose(ctx, p)
}

// Edit loads row ref into the form.
func (a *App) Edit(ctx context.Context, ref string) error {
	p, err := a.page()
	if err != nil {
		return err
	}
	id := a.resolve(p, ref)
	if err := p.Select(id); err != nil {
		a.reportError(p, err)
		return err
	}
	fmt.Fprintln(a.out, "Editando registro", id)
	return a.compose(ctx, p)
}

// Resume reopens the current form as it was left, e.g. after a failed save.
func (a *App) Resume(ctx context.Context) error {
	p, err := a.page()
	if err != nil {
		return err
	}
	return a.compose(ctx, p)
}

// compose prompts every field, runs the paragraph editor when the page has
// a body, then submits. An empty answer keeps the shown value and "-"
// clears it.
func (a *App) compose(ctx context.Context, p Page) error {
	for _, f := range p.Fields() {
		for {
			label := f.Label
			if f.Value != "" {
				label += " [" + f.Value + "]"
			}
			v, err := GetSimpleText(a.reader, label, a.prompts)
			if err != nil {
				fmt.Fprintln(a.out, "Entrada terminada; el formulario se conserva.")
				return err
			}
			if v == "" {
				break
			}
			if v == "-" {
				v = ""
			}
			if err := p.SetField(f.Name, v); err != nil {
				fmt.Fprintln(a.out, messageOf(err))
				continue
			}
			break
		}
	}

	if body := p.Paragraphs(); body != nil {
		submit, err := a.editParagraphs(body)
		if err != nil {
			fmt.Fprintln(a.out, "Entrada terminada; el formulario se conserva.")
			return err
		}
		if !submit {
			p.Cancel()
			fmt.Fprintln(a.out, "Edicion descartada.")
			return errAborted
		}
	}

	err := p.Submit(ctx)
	if err != nil {
		a.reportError(p, err)
		if !errors.Is(err, recordsync.ErrBusy) {
			fmt.Fprintln(a.out, "El formulario se conserva; usa 'resume' para corregirlo.")
		}
		return err
	}
	a.render(p)
	return nil
}

// Delete removes row ref after a yes/no confirmation.
func (a *App) Delete(ctx context.Context, ref string) error {
	p, err := a.page()
	if err != nil {
		return err
	}
	id := a.resolve(p, ref)
	err = p.Delete(ctx, id, func(prompt string) bool {
		return Confirm(a.reader, prompt, a.prompts)
	})
	if err != nil {
		a.reportError(p, err)
		return err
	}
	a.render(p)
	return nil
}

func (a *App) Cancel() error {
	p, err := a.page()
	if err != nil {
		return err
	}
	p.Cancel()
	fmt.Fprintln(a.out, "Edicion descartada.")
	return nil
}

func (a *App) Status() error {
	p, err := a.page()
	if err != nil {
		return err
	}
	if _, ok := p.Status(); !ok {
		fmt.Fprintln(a.out, "Sin mensajes.")
		return nil
	}
	a.printStatus(p)
	return nil
}

// reportError prints the page status, or a local message for errors that
// do not set one.
func (a *App) reportError(p Page, err error) {
	switch {
	case errors.Is(err, recordsync.ErrDeclined):
		fmt.Fprintln(a.out, "Eliminacion cancelada.")
	case errors.Is(err, recordsync.ErrBusy):
		fmt.Fprintln(a.out, "Hay una operacion en curso.")
	default:
		a.printStatus(p)
	}
}

func messageOf(err error) string {
	var ve *recordsync.ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	switch {
	case errors.Is(err, recordsync.ErrUnknownField):
		return "Campo desconocido"
	case errors.Is(err, paragraph.ErrIndexOutOfRange):
		return "No existe ese parrafo"
	}
	return err.Error()
}
