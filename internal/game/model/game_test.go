package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/festy23/softball_scoreboard/internal/engine"
)

func TestInnings_ValueScan(t *testing.T) {
	in := Innings{{"1", "0"}, {"X", ""}}

	v, err := in.Value()
	require.NoError(t, err)
	assert.Equal(t, `[["1","0"],["X",""]]`, v)

	var out Innings
	require.NoError(t, out.Scan([]byte(v.(string))))
	assert.Equal(t, in, out)

	t.Run("nil encodes empty list", func(t *testing.T) {
		v, err := Innings(nil).Value()
		require.NoError(t, err)
		assert.Equal(t, "[]", v)
	})

	t.Run("numbers and nulls", func(t *testing.T) {
		var got Innings
		require.NoError(t, got.Scan(`[[1,null],[0,2]]`))
		assert.Equal(t, Innings{{"1", ""}, {"0", "2"}}, got)
	})

	t.Run("null column", func(t *testing.T) {
		var got Innings
		require.NoError(t, got.Scan(nil))
		assert.Empty(t, got)
	})

	t.Run("unsupported type", func(t *testing.T) {
		var got Innings
		assert.Error(t, got.Scan(42))
	})
}

func TestGame_Conversion(t *testing.T) {
	g := engine.Game{ID: 4, Team1ID: 2, Score1: "5", Innings: engine.Innings{{"5", ""}}, Day: "Domingo"}

	row := NewGame(g)

	assert.Nil(t, row.Team2ID)
	require.NotNil(t, row.Team1ID)
	assert.Equal(t, int64(2), *row.Team1ID)
	assert.Equal(t, g, row.ToEngine())
	assert.Equal(t, "games", Game{}.TableName())
}
