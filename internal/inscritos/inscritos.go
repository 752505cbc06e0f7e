// Package inscritos defines the participant records managed by the admin
// screen and the rules derived from them (age, document completeness,
// status filters). It has no external dependencies and never performs I/O.
package inscritos

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// ID is an opaque record identifier. The remote API may send it as a JSON
// number or string; it is always carried as text.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// Text is an optional free-text field. Numbers are kept as their literal
// text; null, booleans and structured values decode as "".
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0:
		*t = ""
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
	case data[0] == '-' || (data[0] >= '0' && data[0] <= '9'):
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*t = Text(n.String())
	default:
		*t = ""
	}
	return nil
}

// TeamName is the display name of a participant's team. On the wire the
// team arrives as a plain string, as an object exposing "nombre" (or
// "name"), or as null; decoding always yields a plain string.
type TeamName string

func (t *TeamName) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*t = ""
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = TeamName(s)
	case data[0] == '{':
		var obj struct {
			Nombre *string `json:"nombre"`
			Name   *string `json:"name"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		switch {
		case obj.Nombre != nil:
			*t = TeamName(*obj.Nombre)
		case obj.Name != nil:
			*t = TeamName(*obj.Name)
		default:
			*t = ""
		}
	default:
		// Numbers, booleans and arrays carry no display name.
		*t = ""
	}
	return nil
}

// Participant is one registration ("inscrito") as returned by the remote API.
// Document references are storage paths; an empty string means absent.
type Participant struct {
	ID              ID       `json:"id"`
	Nombre          string   `json:"nombre"`
	Apellido        string   `json:"apellido"`
	CI              Text     `json:"ci"`
	Dorsal          *int     `json:"dorsal"`
	CategoriaID     ID       `json:"categoria_id"`
	EquipoID        ID       `json:"equipo_id,omitempty"`
	Equipo          TeamName `json:"equipo"`
	Comunidad       Text     `json:"comunidad"`
	FechaNacimiento string   `json:"fecha_nacimiento"`
	ComprobanteURL  string   `json:"comprobante_url"`
	CIFrenteURL     string   `json:"ci_frente_url"`
	CIReversoURL    string   `json:"ci_reverso_url"`
	AutorizacionURL string   `json:"autorizacion_url"`
}

// FullName is the given name followed by the family name.
func (p Participant) FullName() string {
	return strings.TrimSpace(p.Nombre + " " + p.Apellido)
}

// HasBib reports whether a race number has been assigned.
func (p Participant) HasBib() bool { return p.Dorsal != nil }

// BibText is the bib number in decimal, or "" when pending.
func (p Participant) BibText() string {
	if p.Dorsal == nil {
		return ""
	}
	return strconv.Itoa(*p.Dorsal)
}

func (p Participant) HasPaymentProof() bool { return p.ComprobanteURL != "" }

// HasIDPhotos reports whether both sides of the ID document were uploaded.
func (p Participant) HasIDPhotos() bool {
	return p.CIFrenteURL != "" && p.CIReversoURL != ""
}

func (p Participant) HasAuthorization() bool { return p.AutorizacionURL != "" }

// Category partitions participants; it drives which list is fetched.
type Category struct {
	ID     ID     `json:"id"`
	Nombre string `json:"nombre"`
}

// Team is an entry of the team catalogue used by the edit form.
type Team struct {
	ID     ID     `json:"id"`
	Nombre string `json:"nombre"`
}
