package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("  Paz y bien \n"), "Titulo", &out)
	if err != nil || got != "Paz y bien" {
		t.Fatalf("got %q, err=%v", got, err)
	}
	assert.Equal(t, "Titulo\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Titulo", &out)
	if err != nil || got != "lastline" {
		t.Fatalf("got %q, err=%v", got, err)
	}

	_, err = GetSimpleText(rdr(""), "Titulo", &out)
	if err == nil {
		t.Fatal("expected EOF error on empty input")
	}
}

func TestGetMultiline(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "stops on empty line", input: "a\nb\n\nc\n", want: "a\nb"},
		{name: "windows newlines", input: "a\r\nb\r\n\r\n", want: "a\nb"},
		{name: "eof without newline", input: "a\nb", want: "a\nb"},
		{name: "immediate empty line", input: "\n", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := GetMultiline(rdr(tt.input), "Texto", &out)
			if err != nil {
				t.Fatal(err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"s\n", true},
		{"Si\n", true},
		{"yes\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"tal vez\n", false},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		assert.Equal(t, tt.want, Confirm(rdr(tt.input), "Continuar?", &out), "input %q", tt.input)
		assert.Contains(t, out.String(), "Continuar? (s/N)")
	}
}
