// Package cli is the interactive admin console for the parish content pages.
//
// The operator picks a page (oraciones, reflexiones, parroquias, lecciones,
// noticias), lists its rows and creates, edits or deletes them. Fields are
// prompted one by one; pages with a body continue into a paragraph editor.
// Every page is a recordsync.Controller bound to a PostgreSQL table.
//
// The REPL is started via App.Run(ctx), which blocks until the operator
// quits. See App, runREPL and editParagraphs for details.
package cli
