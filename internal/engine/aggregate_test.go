package engine

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInningsToOuts(t *testing.T) {
	tests := []struct {
		ip   float64
		outs int
	}{
		{0, 0},
		{0.1, 1},
		{0.2, 2},
		{1, 3},
		{1.2, 5},
		{2.1, 7},
		{7, 21},
		{-1, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.outs, InningsToOuts(tt.ip), "ip %v", tt.ip)
	}
}

func TestOutsToInnings(t *testing.T) {
	assert.InDelta(t, 0.0, OutsToInnings(0), 1e-9)
	assert.InDelta(t, 0.2, OutsToInnings(2), 1e-9)
	assert.InDelta(t, 1.1, OutsToInnings(4), 1e-9)
	assert.InDelta(t, 7.0, OutsToInnings(21), 1e-9)
}

func TestOutsRoundTrip(t *testing.T) {
	faker := gofakeit.New(3)
	for i := 0; i < 500; i++ {
		outs := faker.Number(0, 300)
		require.Equal(t, outs, InningsToOuts(OutsToInnings(outs)))
	}
}

func statTeams() []Team {
	return []Team{
		{ID: 1, Name: "Tigres", Players: []Player{
			{ID: 11, Number: 7, Name: "Ana", TeamID: 1},
			{ID: 12, Number: 9, Name: "Bea", TeamID: 1},
		}},
		{ID: 2, Name: "Leones", Players: []Player{
			{ID: 21, Number: 4, Name: "Cris", TeamID: 2},
		}},
	}
}

func TestAggregateStats(t *testing.T) {
	t.Run("seeds every roster player", func(t *testing.T) {
		got := AggregateStats(nil, statTeams())

		require.Len(t, got, 3)
		assert.Equal(t, 0, got[12].Batting.GamesPlayed)
		assert.Equal(t, "Tigres", got[12].TeamName)
		assert.Equal(t, "Cris", got[21].Player.Name)
	})

	t.Run("merges innings pitched by outs", func(t *testing.T) {
		games := []Game{
			{ID: 1, Team1ID: 1, Team2ID: 2, Score1: "3", Score2: "1", PitchingStats: []PitchingStat{
				{PlayerID: 11, GameID: 1, InningsPitched: 1.2, StrikeOuts: 2, EarnedRuns: 1, Wins: 1},
			}},
			{ID: 2, Team1ID: 2, Team2ID: 1, Score1: "0", Score2: "5", PitchingStats: []PitchingStat{
				{PlayerID: 11, GameID: 2, InningsPitched: 0.2, StrikeOuts: 1, Saves: 1},
			}},
		}

		got := AggregateStats(games, statTeams())

		p := got[11].Pitching
		assert.Equal(t, 7, p.Outs)
		assert.InDelta(t, 2.1, p.InningsPitched, 1e-9)
		assert.NotEqual(t, 1.4, p.InningsPitched)
		assert.Equal(t, 2, p.GamesPlayed)
		assert.Equal(t, 3, p.StrikeOuts)
		assert.Equal(t, 1, p.EarnedRuns)
		assert.Equal(t, 1, p.Wins)
		assert.Equal(t, 1, p.Saves)
	})

	t.Run("sums batting and counts rows", func(t *testing.T) {
		games := []Game{
			{ID: 1, Team1ID: 1, Team2ID: 2, Score1: "3", Score2: "1", BattingStats: []BattingStat{
				{PlayerID: 12, GameID: 1, PlateAppearances: 4, AtBats: 3, Hits: 2, HomeRuns: 1, Walks: 1, RBI: 2},
				{PlayerID: 21, GameID: 1, PlateAppearances: 3, AtBats: 3},
			}},
			{ID: 2, Team1ID: 1, Team2ID: 2, Score1: "2", Score2: "6", BattingStats: []BattingStat{
				{PlayerID: 12, GameID: 2, PlateAppearances: 3, AtBats: 2, Hits: 1, SacrificeFlies: 1, Doubles: 1},
			}},
		}

		got := AggregateStats(games, statTeams())

		b := got[12].Batting
		assert.Equal(t, BattingTotals{
			GamesPlayed:      2,
			PlateAppearances: 7,
			AtBats:           5,
			Hits:             3,
			Doubles:          1,
			HomeRuns:         1,
			RBI:              2,
			Walks:            1,
			SacrificeFlies:   1,
		}, b)
		assert.Equal(t, 1, got[21].Batting.GamesPlayed)
		assert.Equal(t, 0, got[11].Batting.GamesPlayed)
	})

	t.Run("skips incomplete games and unknown players", func(t *testing.T) {
		games := []Game{
			{ID: 1, Team1ID: 1, Team2ID: 2, Score1: "3", Score2: "", BattingStats: []BattingStat{
				{PlayerID: 12, GameID: 1, PlateAppearances: 4, AtBats: 4, Hits: 4},
			}},
			{ID: 2, Team1ID: 1, Team2ID: 2, Score1: "3", Score2: "2", BattingStats: []BattingStat{
				{PlayerID: 99, GameID: 2, PlateAppearances: 4},
			}},
		}

		got := AggregateStats(games, statTeams())

		assert.Len(t, got, 3)
		assert.Equal(t, BattingTotals{}, got[12].Batting)
	})
}

func TestTeamGamesPlayed(t *testing.T) {
	games := []Game{
		{ID: 1, Team1ID: 1, Team2ID: 2, Score1: "3", Score2: "1"},
		{ID: 2, Team1ID: 2, Team2ID: 1, Score1: "3", Score2: ""},
		{ID: 3, Team1ID: 2, Team2ID: 3, Score1: "0", Score2: "1"},
	}

	got := TeamGamesPlayed(games, statTeams())

	assert.Equal(t, map[int64]int{1: 1, 2: 2}, got)
}

func TestTeamGamesPlayed_Preliminary(t *testing.T) {
	games := []Game{
		{ID: 1, Team1ID: 1, Team2ID: 2, Score1: "3", Score2: "1"},
		{ID: 16, Team1ID: 1, Team2ID: 2, Score1: "4", Score2: "2", IsChampionship: true,
			BattingStats: []BattingStat{{PlayerID: 11, GameID: 16, PlateAppearances: 4, AtBats: 4, Hits: 4}}},
	}

	prelim := Preliminary(games)
	require.Len(t, prelim, 1)
	assert.Equal(t, int64(1), prelim[0].ID)

	assert.Equal(t, map[int64]int{1: 2, 2: 2}, TeamGamesPlayed(games, statTeams()))
	assert.Equal(t, map[int64]int{1: 1, 2: 1}, TeamGamesPlayed(prelim, statTeams()))
	assert.Equal(t, 4, AggregateStats(games, statTeams())[11].Batting.Hits)
	assert.Zero(t, AggregateStats(prelim, statTeams())[11].Batting.Hits, "championship rows are dropped")
}
