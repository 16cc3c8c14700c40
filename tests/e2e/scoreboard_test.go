//go:build e2e
// +build e2e

package e2e

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/suite"

	"github.com/festy23/softball_scoreboard/internal/engine"
	gameModel "github.com/festy23/softball_scoreboard/internal/game/model"
	"github.com/festy23/softball_scoreboard/internal/notify"
	statsModel "github.com/festy23/softball_scoreboard/internal/statistics/model"
)

const boxScoreGame1 = `GAME_ID: 1
VISITOR: Tigres
LOCAL: Leones
VISITOR_INNINGS: 1,0,2,0,0,1,0
LOCAL_INNINGS: 0,0,1,0,0,0,x
VISITOR_RHE: 4,8,1
LOCAL_RHE: 1,5,2

SECTION: VISITOR_BATTING
7, ROJAS, ANA, 4,4,1,2,1,0,0,1,0,0,0,0,1,0
9, SOL, BEA, 3,3,0,1,0,0,1,2,0,0,0,0,0,1
12, NADIE, 3,3,0,0,0,0,0,0,0,0,0,0,0,0

SECTION: LOCAL_BATTING
4, LUNA, 3,2,1,1,0,0,0,0,1,0,0,0,1,0

SECTION: VISITOR_PITCHING
9, SOL, 7,5,1,1,1,6,0,1,0,0

SECTION: LOCAL_PITCHING
4, LUNA, 6.2,8,4,3,2,2,1,0,1,0
`

const awardsDoc = `PREMIOS_RONDA_INICIAL
PREMIO: Mejor bateador
GANADOR: Ana Rojas
EQUIPO: Tigres

JUEGO 16
PREMIO: MVP
GANADOR: Cris Luna
EQUIPO: Leones
`

type ScoreboardTestSuite struct {
	E2ETestSuite
}

func TestScoreboard(t *testing.T) {
	suite.Run(t, new(ScoreboardTestSuite))
}

func cellPath(gameID, inning, team int) string {
	return fmt.Sprintf("/games/%d/innings/%d/%d", gameID, inning, team)
}

func (s *ScoreboardTestSuite) game(id int) engine.Game {
	var resp struct {
		Game engine.Game `json:"game"`
	}
	s.get(fmt.Sprintf("/games/%d", id), &resp)
	return resp.Game
}

func (s *ScoreboardTestSuite) standings() statsModel.StandingsResponse {
	var resp statsModel.StandingsResponse
	s.get("/statistics/standings", &resp)
	return resp
}

func (s *ScoreboardTestSuite) score(id int, score1, score2 string) {
	s.write(http.MethodPatch, fmt.Sprintf("/games/%d", id),
		map[string]string{"score1": score1, "score2": score2}, http.StatusOK)
}

func (s *ScoreboardTestSuite) TestSeededTournament() {
	var teams struct {
		Teams []engine.Team `json:"teams"`
	}
	s.get("/teams", &teams)
	s.Require().Len(teams.Teams, 3)
	s.Equal("Tigres", teams.Teams[0].Name)

	var games gameModel.GameListResponse
	s.get("/games", &games)
	s.Require().Len(games.Games, 4)
	for _, g := range games.Games {
		s.Len(g.Innings, 7)
	}

	var champ gameModel.ChampionshipResponse
	s.get("/championship", &champ)
	s.Require().NotNil(champ.Game)
	s.Equal(int64(16), champ.Game.ID)
	s.Empty(champ.Champion)
}

func (s *ScoreboardTestSuite) TestCellEditsPersistAcrossRestart() {
	s.setCell(1, 0, 0, "3")
	s.setCell(1, 0, 1, "1")
	s.setCell(1, 1, 1, "X")

	g := s.game(1)
	s.Equal("3", g.Score1)
	s.Equal("1", g.Score2)
	s.Equal("X", g.Innings[1][1])

	data := s.write(http.MethodPost, "/games/flush", nil, http.StatusOK)
	var flushed gameModel.FlushResponse
	s.Require().NoError(json.Unmarshal(data, &flushed))
	s.Empty(flushed.Errors)

	s.restart()

	g = s.game(1)
	s.Equal("3", g.Score1)
	s.Equal("1", g.Score2)
	s.Equal([2]string{"3", "1"}, g.Innings[0])
	s.Equal("X", g.Innings[1][1])
}

func (s *ScoreboardTestSuite) TestDebouncedSaveReachesDatabase() {
	s.setCell(2, 0, 0, "5")

	s.Eventually(func() bool {
		var score string
		err := s.db.Raw("SELECT score1 FROM games WHERE id = ?", 2).Scan(&score).Error
		return err == nil && score == "5"
	}, 5*time.Second, 50*time.Millisecond)
}

func (s *ScoreboardTestSuite) TestTieBlocksStandings() {
	s.score(1, "4", "4")

	resp := s.standings()
	s.False(resp.Rankable)
	s.Empty(resp.Standings)

	s.score(1, "5", "4")

	resp = s.standings()
	s.True(resp.Rankable)
	s.Require().Len(resp.Standings, 3)
	s.Equal("Tigres", resp.Standings[0].TeamName)
	s.Equal("1.000", resp.Standings[0].PctText)
}

func (s *ScoreboardTestSuite) TestChampionshipFlow() {
	s.score(1, "2", "1")
	s.score(2, "3", "0")
	s.score(3, "0", "5")

	resp := s.standings()
	s.Require().Len(resp.Standings, 3)
	s.Equal("Tigres", resp.Standings[0].TeamName)
	s.Equal("Leones", resp.Standings[1].TeamName)

	var champ gameModel.ChampionshipResponse
	s.get("/championship", &champ)
	s.Require().NotNil(champ.Game)
	leones, tigres := resp.Standings[1].TeamID, resp.Standings[0].TeamID
	s.Equal(leones, champ.Game.Team1ID, "runner-up is the visitor")
	s.Equal(tigres, champ.Game.Team2ID, "leader is home")
	s.Empty(champ.Champion)

	s.score(16, "1", "6")

	s.get("/championship", &champ)
	s.Equal("Tigres", champ.Champion)
	s.False(champ.InProgress)
	s.Equal("Tigres", s.standings().Champion)

	s.write(http.MethodPost, "/tournament/reset", nil, http.StatusNoContent)

	s.get("/championship", &champ)
	s.Empty(champ.Champion)
	for _, id := range []int{1, 2, 3, 16} {
		g := s.game(id)
		s.Empty(g.Score1, "game %d", id)
		s.Empty(g.Score2, "game %d", id)
	}
}

func (s *ScoreboardTestSuite) TestBoxScoreImportFeedsLeaders() {
	data := s.write(http.MethodPost, "/games/1/import", map[string]string{"text": boxScoreGame1}, http.StatusOK)

	var imported gameModel.ImportBoxScoreResponse
	s.Require().NoError(json.Unmarshal(data, &imported))
	s.Equal("4", imported.Game.Score1)
	s.Equal("1", imported.Game.Score2)
	s.Equal("8", imported.Game.Hits1)
	s.Equal(3, imported.Batting)
	s.Equal(2, imported.Pitching)
	s.Require().Len(imported.Unmatched, 1)
	s.Contains(imported.Unmatched[0], "12")

	var leaders statsModel.LeadersResponse
	s.get("/statistics/leaders", &leaders)
	s.Require().NotEmpty(leaders.Batting)
	s.Equal("Ana Rojas", leaders.Batting[0].Name)
	s.InDelta(0.5, leaders.Batting[0].Avg, 1e-9)
	s.Require().NotEmpty(leaders.Pitching)
	s.Equal("Bea Sol", leaders.Pitching[0].Name)

	code, body := s.do(http.MethodGet, "/statistics/export.xlsx", nil, false)
	s.Equal(http.StatusOK, code)
	s.True(strings.HasPrefix(string(body), "PK"))

	code, _ = s.do(http.MethodPost, "/games/2/import", map[string]string{"text": boxScoreGame1}, true)
	s.Equal(http.StatusBadRequest, code)
}

func (s *ScoreboardTestSuite) TestAwardsImport() {
	s.write(http.MethodPost, "/awards/import", map[string]string{"text": awardsDoc}, http.StatusOK)
	s.write(http.MethodPost, "/awards/import", map[string]string{"text": awardsDoc}, http.StatusOK)

	var resp struct {
		Awards []struct {
			Category   string `json:"category"`
			Title      string `json:"title"`
			PlayerName string `json:"player_name"`
		} `json:"awards"`
	}
	s.get("/awards", &resp)
	// The seeded MVP is overwritten instead of duplicated.
	s.Require().Len(resp.Awards, 2)
	names := []string{resp.Awards[0].PlayerName, resp.Awards[1].PlayerName}
	s.ElementsMatch([]string{"Ana Rojas", "Cris Luna"}, names)

	s.write(http.MethodDelete, "/awards", nil, http.StatusNoContent)
	s.get("/awards", &resp)
	s.Empty(resp.Awards)
}

func (s *ScoreboardTestSuite) TestLiveViewerSeesEdits() {
	url := "ws" + strings.TrimPrefix(s.server.URL, "http") + "/live?game=1"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	s.Require().NoError(err)
	defer conn.Close()

	read := func() notify.Event {
		s.Require().NoError(conn.SetReadDeadline(time.Now().Add(5 * time.Second)))
		var e notify.Event
		s.Require().NoError(conn.ReadJSON(&e))
		return e
	}

	s.Equal(notify.SnapshotSent, read().Type)

	s.setCell(2, 0, 0, "1")
	s.setCell(1, 0, 0, "2")

	e := read()
	for e.Type != notify.GameUpdated {
		e = read()
	}
	s.Equal(int64(1), e.GameID, "game 2 edits are filtered out")
}

func (s *ScoreboardTestSuite) TestWriteErrors() {
	code, body := s.do(http.MethodPut, cellPath(1, 0, 0), map[string]string{"value": "1"}, false)
	s.Equal(http.StatusUnauthorized, code)
	s.Equal("UNAUTHORIZED", s.errorCode(body))

	code, body = s.do(http.MethodPut, cellPath(1, 0, 0), map[string]string{"value": "-2"}, true)
	s.Equal(http.StatusBadRequest, code)
	s.NotEmpty(s.errorCode(body))

	code, body = s.do(http.MethodPut, cellPath(99, 0, 0), map[string]string{"value": "1"}, true)
	s.Equal(http.StatusNotFound, code)
	s.Equal("NOT_FOUND", s.errorCode(body))

	code, _ = s.do(http.MethodPut, cellPath(1, 0, 2), map[string]string{"value": "1"}, true)
	s.Equal(http.StatusBadRequest, code)

	code, _ = s.do(http.MethodPost, "/games/16/import", map[string]string{"text": boxScoreGame1}, true)
	s.Equal(http.StatusBadRequest, code, "text names game 1")
}
