package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/parroquia/contentadmin/internal/paragraph"
)

const paragraphHelp = `Parrafos: a <texto> agrega | a (sin texto) agrega varias lineas | e <n> edita | d <n> borra | l lista | ok guarda | cancel descarta`

// editParagraphs runs the paragraph editor on body. It returns true when
// the operator chose to save and false when they discarded the edit.
func (a *App) editParagraphs(body *paragraph.List) (bool, error) {
	fmt.Fprintln(a.prompts, paragraphHelp)
	a.printParagraphs(body)

	for {
		line, err := GetSimpleText(a.reader, "parrafos", a.prompts)
		if err != nil {
			return false, err
		}
		cmd, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)

		switch cmd {
		case "":
			continue

		case "a":
			text := rest
			if text == "" {
				text, err = GetMultiline(a.reader, "Texto del parrafo", a.prompts)
				if err != nil {
					return false, err
				}
			}
			body.SetPending(text)
			body.AppendPending()

		case "e":
			n, ok := a.paragraphIndex(body, rest)
			if !ok {
				continue
			}
			text, err := GetSimpleText(a.reader, fmt.Sprintf("Parrafo %d [%s]", n+1, body.Items()[n]), a.prompts)
			if err != nil {
				return false, err
			}
			if text == "" {
				continue
			}
			_ = body.Update(n, text)

		case "d":
			n, ok := a.paragraphIndex(body, rest)
			if !ok {
				continue
			}
			_ = body.RemoveAt(n)

		case "l":
			a.printParagraphs(body)

		case "ok":
			return true, nil

		case "cancel":
			return false, nil

		default:
			fmt.Fprintln(a.out, paragraphHelp)
		}
	}
}

// paragraphIndex parses a 1-based paragraph number into an index of body.
func (a *App) paragraphIndex(body *paragraph.List, s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil {
		fmt.Fprintln(a.out, "Indica el numero del parrafo")
		return 0, false
	}
	if n < 1 || n > body.Len() {
		fmt.Fprintln(a.out, messageOf(fmt.Errorf("%w: %d", paragraph.ErrIndexOutOfRange, n)))
		return 0, false
	}
	return n - 1, true
}

func (a *App) printParagraphs(body *paragraph.List) {
	items := body.Items()
	if len(items) == 0 {
		fmt.Fprintln(a.out, "(sin parrafos)")
		return
	}
	for i, p := range items {
		fmt.Fprintf(a.out, "%2d. %s\n", i+1, p)
	}
}
