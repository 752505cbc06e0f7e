package inscritos

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParticipantDecoding(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantID   ID
		wantTeam TeamName
		wantBib  string
	}{
		{
			name:     "team as string",
			body:     `{"id": 12, "nombre": "Ana", "dorsal": 5, "equipo": "Los Andes"}`,
			wantID:   "12",
			wantTeam: "Los Andes",
			wantBib:  "5",
		},
		{
			name:     "team as object",
			body:     `{"id": "b7e1", "equipo": {"id": 3, "nombre": "Cóndores"}}`,
			wantID:   "b7e1",
			wantTeam: "Cóndores",
		},
		{
			name:     "team object with name key",
			body:     `{"id": 1, "equipo": {"name": "Pumas"}}`,
			wantID:   "1",
			wantTeam: "Pumas",
		},
		{
			name:   "team null and bib null",
			body:   `{"id": 2, "equipo": null, "dorsal": null, "comunidad": null}`,
			wantID: "2",
		},
		{
			name:   "team object without name",
			body:   `{"id": 3, "equipo": {"id": 4}}`,
			wantID: "3",
		},
		{
			name:   "team as number",
			body:   `{"id": 4, "equipo": 17}`,
			wantID: "4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Participant
			require.NoError(t, json.Unmarshal([]byte(tt.body), &p))
			assert.Equal(t, tt.wantID, p.ID)
			assert.Equal(t, tt.wantTeam, p.Equipo)
			assert.Equal(t, tt.wantBib, p.BibText())
		})
	}
}

func TestParticipantTextFields(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		wantCI        Text
		wantComunidad Text
	}{
		{"strings", `{"ci": "4455667 LP", "comunidad": "Achocalla"}`, "4455667 LP", "Achocalla"},
		{"numeric ci", `{"ci": 1234567, "comunidad": null}`, "1234567", ""},
		{"absent", `{"id": 1}`, "", ""},
		{"unexpected kinds", `{"ci": true, "comunidad": {"nombre": "x"}}`, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Participant
			require.NoError(t, json.Unmarshal([]byte(tt.body), &p))
			assert.Equal(t, tt.wantCI, p.CI)
			assert.Equal(t, tt.wantComunidad, p.Comunidad)
		})
	}
}

func TestParticipantListWithNumericCI(t *testing.T) {
	body := `[
		{"id": 1, "nombre": "Ana", "ci": "111"},
		{"id": 2, "nombre": "Beto", "ci": 1234567, "comunidad": 12}
	]`

	var ps []Participant
	require.NoError(t, json.Unmarshal([]byte(body), &ps))
	require.Len(t, ps, 2)
	assert.Equal(t, Text("1234567"), ps[1].CI)
	assert.Equal(t, Text("12"), ps[1].Comunidad)
}

func TestFullName(t *testing.T) {
	assert.Equal(t, "Ana Lopez", Participant{Nombre: "Ana", Apellido: "Lopez"}.FullName())
	assert.Equal(t, "Ana", Participant{Nombre: "Ana"}.FullName())
	assert.Equal(t, "", Participant{}.FullName())
}

func TestUpdateNormalize(t *testing.T) {
	valid := func() Update {
		return Update{Nombre: " Ana ", Apellido: "Lopez", CI: "123", CategoriaID: "4"}
	}

	u := valid()
	assert.Empty(t, u.Normalize())
	assert.Equal(t, "Ana", u.Nombre)

	blankTeam := ID(" ")
	u = valid()
	u.EquipoID = &blankTeam
	assert.Empty(t, u.Normalize())
	assert.Nil(t, u.EquipoID)

	cases := map[string]func(*Update){
		"nombre is required":                   func(u *Update) { u.Nombre = "  " },
		"apellido is required":                 func(u *Update) { u.Apellido = "" },
		"ci is required":                       func(u *Update) { u.CI = "" },
		"categoria_id is required":             func(u *Update) { u.CategoriaID = "" },
		"dorsal must be a positive number":     func(u *Update) { u.Dorsal = bib(0) },
		"fecha_nacimiento is not a valid date": func(u *Update) { u.FechaNacimiento = "ayer" },
	}
	for want, mutate := range cases {
		u := valid()
		mutate(&u)
		assert.Equal(t, want, u.Normalize())
	}
}
