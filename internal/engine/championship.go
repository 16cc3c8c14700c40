package engine

// ChampionshipResolution is the outcome of reconciling the championship game
// with the current standings. Reassigned is set when Game's teams changed and
// must be saved. WinnerID is zero while there is no champion. Announce is set
// when the champion differs from the previously announced one.
type ChampionshipResolution struct {
	Game       Game
	Reassigned bool
	WinnerID   int64
	WinnerName string
	Announce   bool
}

// HasWinner reports whether a champion has been decided.
func (r ChampionshipResolution) HasWinner() bool {
	return r.WinnerID != 0
}

// ResolveChampionship pairs the top two teams in the championship game,
// visitor second place and home first place, and detects the champion.
//
// previousChampion is the name last announced; Announce is only set when a
// new, different champion emerges and the winner is on the roster.
func ResolveChampionship(standings []Standing, champ Game, teams []Team, previousChampion string) ChampionshipResolution {
	res := ChampionshipResolution{Game: champ.Clone()}

	if len(standings) >= 2 {
		second, first := standings[1].TeamID, standings[0].TeamID
		if res.Game.Team1ID != second || res.Game.Team2ID != first {
			res.Game.Team1ID = second
			res.Game.Team2ID = first
			res.Reassigned = true
		}
	}

	winner := ChampionshipWinner(res.Game)
	if winner == 0 {
		return res
	}
	res.WinnerID = winner
	for _, t := range teams {
		if t.ID == winner {
			res.WinnerName = t.Name
			break
		}
	}
	res.Announce = res.WinnerName != "" && res.WinnerName != previousChampion
	return res
}

// ChampionshipWinner returns the id of the team that won g, or zero while the
// game is unfinished, tied or in progress.
func ChampionshipWinner(g Game) int64 {
	if !g.Completed() || g.Team1ID == 0 || g.Team2ID == 0 {
		return 0
	}
	s1, s2 := ParseNumber(g.Score1), ParseNumber(g.Score2)
	if s1 == s2 {
		return 0
	}
	if InProgress(g) {
		return 0
	}
	if s1 > s2 {
		return g.Team1ID
	}
	return g.Team2ID
}

// InProgress reports whether the home half of the last inning is still open
// on a regulation-length grid that already has data in it.
func InProgress(g Game) bool {
	n := len(g.Innings)
	if n < RegulationInnings || !g.Innings.HasData() {
		return false
	}
	return g.Innings[n-1][1] == ""
}
