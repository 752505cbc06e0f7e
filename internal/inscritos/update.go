package inscritos

import "strings"

// Update carries the editable fields of a participant as submitted by the
// edit form. Every field is sent; a nil Dorsal unassigns the bib and a nil
// EquipoID clears the team.
type Update struct {
	Nombre          string `json:"nombre"`
	Apellido        string `json:"apellido"`
	CI              string `json:"ci"`
	Dorsal          *int   `json:"dorsal"`
	CategoriaID     ID     `json:"categoria_id"`
	EquipoID        *ID    `json:"equipo_id"`
	Comunidad       string `json:"comunidad"`
	FechaNacimiento string `json:"fecha_nacimiento"`
}

// Normalize trims the text fields and returns a message describing the first
// invalid field, or "" when the update can be sent.
func (u *Update) Normalize() string {
	u.Nombre = strings.TrimSpace(u.Nombre)
	u.Apellido = strings.TrimSpace(u.Apellido)
	u.CI = strings.TrimSpace(u.CI)
	u.CategoriaID = ID(strings.TrimSpace(string(u.CategoriaID)))
	u.Comunidad = strings.TrimSpace(u.Comunidad)
	u.FechaNacimiento = strings.TrimSpace(u.FechaNacimiento)
	if u.EquipoID != nil && strings.TrimSpace(string(*u.EquipoID)) == "" {
		u.EquipoID = nil
	}

	switch {
	case u.Nombre == "":
		return "nombre is required"
	case u.Apellido == "":
		return "apellido is required"
	case u.CI == "":
		return "ci is required"
	case u.CategoriaID == "":
		return "categoria_id is required"
	case u.Dorsal != nil && *u.Dorsal <= 0:
		return "dorsal must be a positive number"
	}
	if u.FechaNacimiento != "" {
		if _, ok := ParseBirthDate(u.FechaNacimiento); !ok {
			return "fecha_nacimiento is not a valid date"
		}
	}
	return ""
}
