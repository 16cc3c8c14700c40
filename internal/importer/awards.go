package importer

import (
	"strings"
)

// Award categories.
const (
	CategoryInitialRound = "ronda_inicial"
	CategoryFinal        = "partido_final"
)

// Canonical award titles.
const (
	TitleBestBatter  = "MEJOR BATEADOR DEL TORNEO"
	TitleBestPitcher = "LANZADOR DESTACADO"
	TitleMVP         = "JUGADOR MVP"
	TitleAllStarTeam = "ALL THE SHOW TEAM"
)

// AwardEntry is one award read from an awards document.
type AwardEntry struct {
	Category    string
	Title       string
	PlayerName  string
	TeamName    string
	Description string
}

// ParseAwards reads an awards document.
//
// PREMIOS_RONDA_INICIAL and PREMIOS_PARTIDO_FINAL (or JUEGO 16) lines switch
// the category. "PREMIO: ..." lines naming BATEADOR, LANZADOR or MVP open an
// individual award filled from GANADOR:, EQUIPO: and ESTADÍSTICAS: lines.
// An ALL_THE_SHOW_TEAM or EQUIPO IDEAL line opens the team award, whose
// following lines are its members. Later awards with the same category and
// title replace earlier ones.
func ParseAwards(text string) []AwardEntry {
	lines := nonEmptyLines(text)
	category := CategoryInitialRound

	var order []string
	byKey := map[string]AwardEntry{}
	add := func(a AwardEntry) {
		key := a.Category + "|" + a.Title
		if _, ok := byKey[key]; !ok {
			order = append(order, key)
		}
		byKey[key] = a
	}

	for i := 0; i < len(lines); i++ {
		upper := strings.ToUpper(lines[i])

		switch {
		case strings.Contains(upper, "PREMIOS_PARTIDO_FINAL") || strings.Contains(upper, "JUEGO 16"):
			category = CategoryFinal
			continue
		case strings.Contains(upper, "PREMIOS_RONDA_INICIAL"):
			category = CategoryInitialRound
			continue
		}

		if strings.Contains(upper, "ALL_THE_SHOW_TEAM") || strings.Contains(upper, "EQUIPO IDEAL") {
			end := awardEnd(lines, i+1)
			var members []string
			for _, l := range lines[i+1 : end] {
				if !strings.HasPrefix(l, "//") && len(l) > 2 {
					members = append(members, l)
				}
			}
			if len(members) > 0 {
				add(AwardEntry{
					Category:    category,
					Title:       TitleAllStarTeam,
					PlayerName:  "EQUIPO IDEAL",
					TeamName:    "SELECCIÓN DEL TORNEO",
					Description: strings.Join(members, "\n"),
				})
				i = end - 1
			}
			continue
		}

		if !strings.HasPrefix(upper, "PREMIO:") {
			continue
		}
		var title string
		switch {
		case strings.Contains(upper, "BATEADOR"):
			title = TitleBestBatter
		case strings.Contains(upper, "LANZADOR"):
			title = TitleBestPitcher
		case strings.Contains(upper, "MVP"):
			title = TitleMVP
		default:
			continue
		}

		a := AwardEntry{Category: category, Title: title}
		end := awardEnd(lines, i+1)
		for _, l := range lines[i+1 : end] {
			if v, ok := cutLabel(l, "GANADOR:"); ok {
				a.PlayerName = v
			} else if v, ok := cutLabel(l, "EQUIPO:"); ok {
				a.TeamName = v
			} else if v, ok := cutLabel(l, "ESTADÍSTICAS:"); ok {
				a.Description = v
			} else if v, ok := cutLabel(l, "ESTADISTICAS:"); ok {
				a.Description = v
			}
		}
		a.PlayerName = orDefault(a.PlayerName, "Por Determinar")
		a.TeamName = orDefault(a.TeamName, "N/A")
		a.Description = orDefault(a.Description, "Sin descripción")
		add(a)
		i = end - 1
	}

	out := make([]AwardEntry, 0, len(order))
	for _, key := range order {
		out = append(out, byKey[key])
	}
	return out
}

func nonEmptyLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var out []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// awardEnd returns the index of the next SECTION:, PREMIO: or category
// line at or after from, or len(lines).
func awardEnd(lines []string, from int) int {
	for j := from; j < len(lines); j++ {
		upper := strings.ToUpper(lines[j])
		if strings.HasPrefix(upper, "SECTION:") || strings.HasPrefix(upper, "PREMIO:") || categoryLine(upper) {
			return j
		}
	}
	return len(lines)
}

func categoryLine(upper string) bool {
	return strings.Contains(upper, "PREMIOS_") || strings.Contains(upper, "JUEGO 16")
}

func cutLabel(line, label string) (string, bool) {
	if len(line) < len(label) || !strings.EqualFold(line[:len(label)], label) {
		return "", false
	}
	return strings.TrimSpace(line[len(label):]), true
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
