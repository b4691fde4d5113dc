package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App satisfies
// it; tests use a stub.
type execIface interface {
	Pages() error
	Use(ctx context.Context, name string) error
	List(ctx context.Context) error
	New(ctx context.Context) error
	Edit(ctx context.Context, ref string) error
	Resume(ctx context.Context) error
	Delete(ctx context.Context, ref string) error
	Cancel() error
	Status() error
}

const helpText = `Comandos:
  pages              lista las paginas
  use <pagina>       abre una pagina y carga sus registros
  list | l           vuelve a cargar y muestra los registros
  new                crea un registro
  edit <n|id>        edita un registro
  resume             vuelve al formulario tras un error al guardar
  delete <n|id>      elimina un registro (pide confirmacion)
  cancel             descarta la edicion en curso
  status             muestra el ultimo mensaje
  exit | quit        salir`

// runREPL reads commands from reader until EOF, "exit" or "quit" and
// dispatches them to a. promptFn renders the prompt; an empty prompt is not
// printed. Handler errors are reported by the handlers themselves.
func runREPL(ctx context.Context, a execIface, promptFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		if p := promptFn(); p != "" {
			printlnFn(p)
		}

		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			printlnFn(helpText)

		case "pages":
			_ = a.Pages()

		case "use":
			if len(args) == 0 {
				printlnFn("Uso: use <pagina>")
				continue
			}
			_ = a.Use(ctx, args[0])

		case "l", "list":
			_ = a.List(ctx)

		case "new":
			_ = a.New(ctx)

		case "edit":
			if len(args) == 0 {
				printlnFn("Uso: edit <n|id>")
				continue
			}
			_ = a.Edit(ctx, args[0])

		case "resume":
			_ = a.Resume(ctx)

		case "delete":
			if len(args) == 0 {
				printlnFn("Uso: delete <n|id>")
				continue
			}
			_ = a.Delete(ctx, args[0])

		case "cancel":
			_ = a.Cancel()

		case "status":
			_ = a.Status()

		case "exit", "quit":
			printlnFn("Hasta luego.")
			return

		default:
			printlnFn("Comando desconocido:", cmd)
		}

		if err != nil {
			return
		}
	}
}
