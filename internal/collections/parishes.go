package collections

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/parroquia/contentadmin/internal/models"
	"github.com/parroquia/contentadmin/internal/recordsync"
)

const (
	DefaultCity          = "Lima"
	DefaultScheduleJSON  = `{"misa": ["08:00", "19:00"]}`
	DefaultCommunityJSON = `{"responsable": ""}`
)

// ParishForm is the editable part of a parish. Schedule and Community hold
// JSON text as typed by the operator.
type ParishForm struct {
	Name      string
	Address   string
	District  string
	City      string
	Schedule  string
	Community string
	Phone     string
	Note      string
	Active    bool
}

// Parishes describes the parroquia_franciscana table. It has no paragraph body.
func Parishes() recordsync.Collection[ParishForm, models.Parish] {
	return recordsync.Collection[ParishForm, models.Parish]{
		Name:     "parroquias",
		Messages: messagesFor("Parroquias", "parroquias", "parroquia", "publicada"),
		Order:    []recordsync.OrderBy{{Column: "created_at", Desc: true}},
		Body:     recordsync.BodyNone,
		Fields: []recordsync.Field[ParishForm]{
			recordsync.TextField("nombre", "Nombre", func(f *ParishForm) *string { return &f.Name }),
			recordsync.TextField("direccion", "Direccion", func(f *ParishForm) *string { return &f.Address }),
			recordsync.TextField("distrito", "Distrito", func(f *ParishForm) *string { return &f.District }),
			recordsync.TextField("ciudad", "Ciudad", func(f *ParishForm) *string { return &f.City }),
			recordsync.TextField("horarios", "Horarios (JSON)", func(f *ParishForm) *string { return &f.Schedule }),
			recordsync.TextField("comunidad", "Comunidad (JSON)", func(f *ParishForm) *string { return &f.Community }),
			recordsync.TextField("telefono", "Telefono", func(f *ParishForm) *string { return &f.Phone }),
			recordsync.TextField("observacion", "Observacion", func(f *ParishForm) *string { return &f.Note }),
			recordsync.BoolField("activo", "Activo", func(f *ParishForm) *bool { return &f.Active }),
		},
		NewForm: func(time.Time) ParishForm {
			return ParishForm{
				City:      DefaultCity,
				Schedule:  DefaultScheduleJSON,
				Community: DefaultCommunityJSON,
				Active:    true,
			}
		},
		Validate: func(f ParishForm, _ []string) error {
			if blank(f.Name) {
				return recordsync.Invalid("El nombre es obligatorio")
			}
			if !json.Valid([]byte(f.Schedule)) || !json.Valid([]byte(f.Community)) {
				return recordsync.Invalid("Horarios o comunidad no tienen JSON valido")
			}
			return nil
		},
		Payload: func(f ParishForm, _ []string, _ time.Time) (models.Parish, error) {
			schedule, err := compactJSON(f.Schedule)
			if err != nil {
				return models.Parish{}, recordsync.Invalid("Horarios o comunidad no tienen JSON valido")
			}
			community, err := compactJSON(f.Community)
			if err != nil {
				return models.Parish{}, recordsync.Invalid("Horarios o comunidad no tienen JSON valido")
			}
			city := trim(f.City)
			if city == "" {
				city = DefaultCity
			}
			return models.Parish{
				Name:      trim(f.Name),
				Address:   optional(f.Address),
				District:  optional(f.District),
				City:      city,
				Schedule:  schedule,
				Community: community,
				Phone:     optional(f.Phone),
				Note:      optional(f.Note),
				Active:    f.Active,
			}, nil
		},
		Edit: func(r models.Parish) (ParishForm, []string) {
			city := r.City
			if city == "" {
				city = DefaultCity
			}
			return ParishForm{
				Name:      r.Name,
				Address:   deref(r.Address),
				District:  deref(r.District),
				City:      city,
				Schedule:  prettyJSON(r.Schedule),
				Community: prettyJSON(r.Community),
				Phone:     deref(r.Phone),
				Note:      deref(r.Note),
				Active:    r.Active,
			}, nil
		},
		ID: func(r models.Parish) string { return r.ID },
		Summary: func(r models.Parish) string {
			address := "Sin direccion"
			if r.Address != nil && *r.Address != "" {
				address = *r.Address
			}
			return join(r.Name, address, orDash(r.District)+" / "+orDash(&r.City),
				"Telefono: "+orDash(r.Phone), "Activo: "+yesNo(r.Active))
		},
	}
}

func compactJSON(s string) (json.RawMessage, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(s)); err != nil {
		return nil, err
	}
	return json.RawMessage(buf.Bytes()), nil
}

// prettyJSON renders a stored JSON value with two-space indentation. A
// missing value renders as an empty object.
func prettyJSON(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "{}"
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, trimmed, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}
