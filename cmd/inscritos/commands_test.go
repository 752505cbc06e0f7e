package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Coshio12/gestionar-carrera/internal/inscritos"
)

type stubSource struct {
	cats []inscritos.Category
	ps   []inscritos.Participant
	err  error
}

func (s stubSource) ListCategories(context.Context) ([]inscritos.Category, error) {
	return s.cats, s.err
}

func (s stubSource) ListParticipants(context.Context, inscritos.ID) ([]inscritos.Participant, error) {
	return s.ps, s.err
}

func runCLI(t *testing.T, src stubSource, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out, func() (source, int, error) { return src, 2, nil })
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func bib(n int) *int { return &n }

func TestListCommand(t *testing.T) {
	src := stubSource{ps: []inscritos.Participant{
		{ID: "1", Nombre: "Ana", Apellido: "Quispe", CI: "111", Dorsal: bib(4)},
		{ID: "2", Nombre: "Beto", Apellido: "Mamani", CI: "222"},
		{ID: "3", Nombre: "Carla", Apellido: "Choque", CI: "333", Dorsal: bib(9)},
	}}

	out, err := runCLI(t, src, "list", "--categoria", "10k")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Contains(t, lines[0], "DORSAL")
	assert.Contains(t, lines[1], "Beto Mamani", "no-bib participant comes first")
	assert.Contains(t, lines[1], "bib_pending")
	assert.Contains(t, lines[2], "Ana Quispe")
	assert.Contains(t, out, "page 1/2, 3 of 3 participants")
	assert.NotContains(t, out, "Carla")

	out, err = runCLI(t, src, "list", "-c", "10k", "--page", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Carla Choque")
	assert.Contains(t, out, "page 2/2")
}

func TestListCommandFilters(t *testing.T) {
	src := stubSource{ps: []inscritos.Participant{
		{ID: "1", Nombre: "Ana", Apellido: "Quispe", CI: "111", Dorsal: bib(4)},
		{ID: "2", Nombre: "Beto", Apellido: "Mamani", CI: "222"},
	}}

	out, err := runCLI(t, src, "list", "-c", "10k", "--status", "bib_pending")
	require.NoError(t, err)
	assert.Contains(t, out, "Beto Mamani")
	assert.NotContains(t, out, "Ana Quispe")
	assert.Contains(t, out, "1 of 2 participants")

	out, err = runCLI(t, src, "list", "-c", "10k", "-q", "quis")
	require.NoError(t, err)
	assert.Contains(t, out, "Ana Quispe")
	assert.NotContains(t, out, "Beto")
}

func TestListCommandErrors(t *testing.T) {
	_, err := runCLI(t, stubSource{}, "list")
	assert.ErrorContains(t, err, "--categoria is required")

	_, err = runCLI(t, stubSource{}, "list", "-c", "10k", "--status", "paid")
	assert.ErrorContains(t, err, "unknown status")

	_, err = runCLI(t, stubSource{err: errors.New("boom")}, "list", "-c", "10k")
	assert.ErrorContains(t, err, "boom")
}

func TestCategoriesCommand(t *testing.T) {
	src := stubSource{cats: []inscritos.Category{{ID: "10k", Nombre: "10 K"}, {ID: "21k", Nombre: "Media maratón"}}}

	out, err := runCLI(t, src, "categorias")
	require.NoError(t, err)
	assert.Contains(t, out, "10k")
	assert.Contains(t, out, "Media maratón")
}
