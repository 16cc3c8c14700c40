package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleAwards = `PREMIOS_RONDA_INICIAL
PREMIO: Mejor bateador
GANADOR: Ana Pérez
EQUIPO: Tigres
Estadísticas: .520 AVG, 3 HR

PREMIO: Lanzador destacado
GANADOR: Luna

SECTION: ALL_THE_SHOW_TEAM
C - Rojas
// comentario
SS - Sol
x

JUEGO 16
PREMIO: MVP
GANADOR: Mar
EQUIPO: Leones
PREMIO: MVP
GANADOR: Cris
`

func TestParseAwards(t *testing.T) {
	got := ParseAwards(sampleAwards)

	require.Len(t, got, 4)
	assert.Equal(t, AwardEntry{
		Category:    CategoryInitialRound,
		Title:       TitleBestBatter,
		PlayerName:  "Ana Pérez",
		TeamName:    "Tigres",
		Description: ".520 AVG, 3 HR",
	}, got[0])

	assert.Equal(t, TitleBestPitcher, got[1].Title)
	assert.Equal(t, "Luna", got[1].PlayerName)
	assert.Equal(t, "N/A", got[1].TeamName)
	assert.Equal(t, "Sin descripción", got[1].Description)

	assert.Equal(t, TitleAllStarTeam, got[2].Title)
	assert.Equal(t, "C - Rojas\nSS - Sol", got[2].Description)

	assert.Equal(t, CategoryFinal, got[3].Category)
	assert.Equal(t, TitleMVP, got[3].Title)
	assert.Equal(t, "Cris", got[3].PlayerName, "the later award replaces the earlier one")
	assert.Equal(t, "N/A", got[3].TeamName)
}

func TestParseAwards_Ignored(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "empty", text: "\n\n"},
		{name: "unknown award", text: "PREMIO: Mejor fildeador\nGANADOR: Ana"},
		{name: "team award without members", text: "EQUIPO IDEAL\nPREMIO: otro"},
		{name: "label without PREMIO prefix", text: "Mejor bateador\nGANADOR: Ana"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, ParseAwards(tt.text))
		})
	}
}
