// Package models holds the rows of the parish content tables.
package models

import (
	"encoding/json"
	"strings"
	"time"
)

// Prayer is a row of franciscan_prayers. Body holds the paragraphs joined by blank lines.
type Prayer struct {
	ID        string
	Title     string
	Body      string
	Source    *string
	CreatedAt time.Time
}

// Reflection is a row of reflexiones.
type Reflection struct {
	ID       string
	Title    string
	Subtitle string
	Author   string
	Content  []string
	Date     time.Time
}

// Parish is a row of parroquia_franciscana. Schedule and Community are free-form JSON.
type Parish struct {
	ID        string
	Name      string
	Address   *string
	District  *string
	City      string
	Schedule  json.RawMessage
	Community json.RawMessage
	Phone     *string
	Note      *string
	Active    bool
	CreatedAt time.Time
}

// Level is the catechism group a lesson belongs to.
type Level string

const (
	LevelConfirmation Level = "Confirmacion"
	LevelBaptism      Level = "Bautismo"
	LevelAdults       Level = "Adultos"
)

// Levels lists the accepted lesson levels.
var Levels = []Level{LevelConfirmation, LevelBaptism, LevelAdults}

// Lesson is a row of lecciones_catecismo.
type Lesson struct {
	ID            string
	Title         string
	Subtitle      *string
	Level         Level
	Topic         *string
	Content       []string
	Summary       *string
	BibleCitation *string
	Order         int
	Active        bool
	UpdatedAt     time.Time
	CreatedAt     time.Time
}

// NewsItem is a row of noticias_parroquia.
type NewsItem struct {
	ID          string
	Title       string
	Subtitle    *string
	Author      *string
	Content     []string
	Summary     *string
	ImageURL    *string
	Featured    bool
	Active      bool
	PublishedAt time.Time
	UpdatedAt   time.Time
	CreatedAt   time.Time
}

// ParseLevel matches s against the accepted levels, ignoring case and the
// accent of "Confirmación".
func ParseLevel(s string) (Level, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, "ó", "o")
	for _, l := range Levels {
		if strings.ToLower(string(l)) == key {
			return l, true
		}
	}
	return "", false
}
