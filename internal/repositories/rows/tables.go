package rows

import (
	"database/sql"
	"encoding/json"

	"github.com/lib/pq"
	"github.com/parroquia/contentadmin/internal/models"
)

// Prayers binds models.Prayer to franciscan_prayers.
func Prayers() Table[models.Prayer] {
	return Table[models.Prayer]{
		Name:    "franciscan_prayers",
		Columns: []string{"id", "title", "body", "source", "created_at"},
		Writes:  []string{"title", "body", "source"},
		Values: func(r models.Prayer) []any {
			return []any{r.Title, r.Body, r.Source}
		},
		Scan: func(sc Scanner) (models.Prayer, error) {
			var (
				r         models.Prayer
				body      sql.NullString
				createdAt sql.NullTime
			)
			if err := sc.Scan(&r.ID, &r.Title, &body, &r.Source, &createdAt); err != nil {
				return models.Prayer{}, err
			}
			r.Body = body.String
			r.CreatedAt = createdAt.Time
			return r, nil
		},
	}
}

// Reflections binds models.Reflection to reflexiones.
func Reflections() Table[models.Reflection] {
	return Table[models.Reflection]{
		Name:    "reflexiones",
		Columns: []string{"id", "titulo", "subtitulo", "autor", "contenido", "fecha"},
		Writes:  []string{"titulo", "subtitulo", "autor", "contenido", "fecha"},
		Values: func(r models.Reflection) []any {
			return []any{r.Title, r.Subtitle, r.Author, pq.StringArray(r.Content), r.Date}
		},
		Scan: func(sc Scanner) (models.Reflection, error) {
			var (
				r        models.Reflection
				subtitle sql.NullString
				author   sql.NullString
				content  pq.StringArray
				date     sql.NullTime
			)
			if err := sc.Scan(&r.ID, &r.Title, &subtitle, &author, &content, &date); err != nil {
				return models.Reflection{}, err
			}
			r.Subtitle = subtitle.String
			r.Author = author.String
			r.Content = content
			r.Date = date.Time
			return r, nil
		},
	}
}

// Parishes binds models.Parish to parroquia_franciscana. The schedule and
// community columns are jsonb.
func Parishes() Table[models.Parish] {
	return Table[models.Parish]{
		Name: "parroquia_franciscana",
		Columns: []string{"id", "nombre", "direccion", "distrito", "ciudad", "horarios",
			"comunidad", "telefono", "observacion", "activo", "created_at"},
		Writes: []string{"nombre", "direccion", "distrito", "ciudad", "horarios",
			"comunidad", "telefono", "observacion", "activo"},
		Values: func(r models.Parish) []any {
			return []any{r.Name, r.Address, r.District, r.City, jsonArg(r.Schedule),
				jsonArg(r.Community), r.Phone, r.Note, r.Active}
		},
		Scan: func(sc Scanner) (models.Parish, error) {
			var (
				r         models.Parish
				city      sql.NullString
				schedule  []byte
				community []byte
				active    sql.NullBool
				createdAt sql.NullTime
			)
			err := sc.Scan(&r.ID, &r.Name, &r.Address, &r.District, &city, &schedule,
				&community, &r.Phone, &r.Note, &active, &createdAt)
			if err != nil {
				return models.Parish{}, err
			}
			r.City = city.String
			r.Schedule = json.RawMessage(schedule)
			r.Community = json.RawMessage(community)
			r.Active = active.Bool
			r.CreatedAt = createdAt.Time
			return r, nil
		},
	}
}

// Lessons binds models.Lesson to lecciones_catecismo. A NULL orden reads as 1.
func Lessons() Table[models.Lesson] {
	return Table[models.Lesson]{
		Name: "lecciones_catecismo",
		Columns: []string{"id", "titulo", "subtitulo", "nivel", "tema", "contenido", "resumen",
			"cita_biblica", "orden", "activo", "updated_at", "created_at"},
		Writes: []string{"titulo", "subtitulo", "nivel", "tema", "contenido", "resumen",
			"cita_biblica", "orden", "activo", "updated_at"},
		Values: func(r models.Lesson) []any {
			return []any{r.Title, r.Subtitle, string(r.Level), r.Topic, pq.StringArray(r.Content),
				r.Summary, r.BibleCitation, r.Order, r.Active, r.UpdatedAt}
		},
		Scan: func(sc Scanner) (models.Lesson, error) {
			var (
				r         models.Lesson
				level     sql.NullString
				content   pq.StringArray
				order     sql.NullInt64
				active    sql.NullBool
				updatedAt sql.NullTime
				createdAt sql.NullTime
			)
			err := sc.Scan(&r.ID, &r.Title, &r.Subtitle, &level, &r.Topic, &content, &r.Summary,
				&r.BibleCitation, &order, &active, &updatedAt, &createdAt)
			if err != nil {
				return models.Lesson{}, err
			}
			r.Level = models.Level(level.String)
			r.Content = content
			r.Order = 1
			if order.Valid {
				r.Order = int(order.Int64)
			}
			r.Active = active.Bool
			r.UpdatedAt = updatedAt.Time
			r.CreatedAt = createdAt.Time
			return r, nil
		},
	}
}

// News binds models.NewsItem to noticias_parroquia.
func News() Table[models.NewsItem] {
	return Table[models.NewsItem]{
		Name: "noticias_parroquia",
		Columns: []string{"id", "titulo", "subtitulo", "autor", "contenido", "resumen", "imagen_url",
			"destacada", "activo", "fecha_publicacion", "updated_at", "created_at"},
		Writes: []string{"titulo", "subtitulo", "autor", "contenido", "resumen", "imagen_url",
			"destacada", "activo", "fecha_publicacion", "updated_at"},
		Values: func(r models.NewsItem) []any {
			return []any{r.Title, r.Subtitle, r.Author, pq.StringArray(r.Content), r.Summary,
				r.ImageURL, r.Featured, r.Active, r.PublishedAt, r.UpdatedAt}
		},
		Scan: func(sc Scanner) (models.NewsItem, error) {
			var (
				r           models.NewsItem
				content     pq.StringArray
				featured    sql.NullBool
				active      sql.NullBool
				publishedAt sql.NullTime
				updatedAt   sql.NullTime
				createdAt   sql.NullTime
			)
			err := sc.Scan(&r.ID, &r.Title, &r.Subtitle, &r.Author, &content, &r.Summary, &r.ImageURL,
				&featured, &active, &publishedAt, &updatedAt, &createdAt)
			if err != nil {
				return models.NewsItem{}, err
			}
			r.Content = content
			r.Featured = featured.Bool
			r.Active = active.Bool
			r.PublishedAt = publishedAt.Time
			r.UpdatedAt = updatedAt.Time
			r.CreatedAt = createdAt.Time
			return r, nil
		},
	}
}

// jsonArg passes a JSON document as text so the driver can cast it to jsonb.
func jsonArg(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}
