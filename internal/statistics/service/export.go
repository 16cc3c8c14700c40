package service

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/festy23/softball_scoreboard/internal/statistics/model"
)

// Workbook sheet names.
const (
	SheetStandings = "Standings"
	SheetBatting   = "Batting"
	SheetPitching  = "Pitching"
)

func renderWorkbook(st model.StandingsResponse, lb model.LeadersResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetStandings); err != nil {
		return nil, err
	}
	for _, name := range []string{SheetBatting, SheetPitching} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	standings := [][]interface{}{{"POS", "TEAM", "W", "L", "RS", "RA", "PCT", "GB"}}
	for _, r := range st.Standings {
		standings = append(standings, []interface{}{r.Pos, r.TeamName, r.W, r.L, r.RS, r.RA, r.PctText, r.GB})
	}
	if !st.Rankable {
		standings = append(standings, []interface{}{"", "Standings are blocked by a tied game"})
	}

	batting := [][]interface{}{{"#", "PLAYER", "TEAM", "G", "PA", "AB", "H", "BB+HBP", "SH+SF", "HR", "RBI", "R", "AVG"}}
	for _, l := range lb.Batting {
		batting = append(batting, []interface{}{
			l.Number, l.Name, l.TeamName, l.GamesPlayed, l.PlateAppearances, l.AtBats, l.Hits,
			l.WalksHBP, l.Sacrifices, l.HomeRuns, l.RBI, l.Runs, strconv.FormatFloat(l.Avg, 'f', 3, 64),
		})
	}

	pitching := [][]interface{}{{"#", "PLAYER", "TEAM", "G", "IP", "H", "ER", "BB", "SO", "W", "L", "S", "ERA"}}
	for _, l := range lb.Pitching {
		pitching = append(pitching, []interface{}{
			l.Number, l.Name, l.TeamName, l.GamesPlayed, strconv.FormatFloat(l.InningsPitched, 'f', 1, 64),
			l.Hits, l.EarnedRuns, l.Walks, l.StrikeOuts, l.Wins, l.Losses, l.Saves,
			strconv.FormatFloat(l.ERA, 'f', 2, 64),
		})
	}

	for sheet, rows := range map[string][][]interface{}{
		SheetStandings: standings,
		SheetBatting:   batting,
		SheetPitching:  pitching,
	} {
		if err := writeRows(f, sheet, rows); err != nil {
			return nil, fmt.Errorf("writing sheet %s: %w", sheet, err)
		}
		if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheet, "B", "C", 22); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		row := row
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
