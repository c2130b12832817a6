// Package sheet converts raw session score sheets into the tabular game format.
//
// A raw sheet looks like
//
//	2026-01-01
//	Team 1, Pts, Team 2, Pts
//	Nik/Chan, 21, Bhavin/Ravi, 15
//
// Line 1 is the session date and line 2 is a header that is skipped.
package sheet

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"ScoreSync/internal/model"
)

// ErrTooShort the sheet has no date or no header line
var ErrTooShort = errors.New("sheet is missing its date or header line")

// BadRow a raw line that could not be converted
type BadRow struct {
	Line   int      `json:"line"`
	Cells  []string `json:"cells"`
	Reason string   `json:"reason"`
}

// ConvertReport what Convert wrote and skipped
type ConvertReport struct {
	Date    string   `json:"date"`
	Games   int      `json:"games"`
	BadRows []BadRow `json:"bad_rows"`
}

// Convert reads a raw sheet from r and writes the game table to w. Bad rows are
// reported, not written; GameNo counts good rows only.
func Convert(r io.Reader, w io.Writer) (ConvertReport, error) {
	var report ConvertReport

	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, strings.TrimSpace(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return report, fmt.Errorf("read sheet: %w", err)
	}
	if len(lines) < 2 {
		return report, ErrTooShort
	}
	report.Date = strings.TrimPrefix(lines[0], "\ufeff")

	cw := csv.NewWriter(w)
	if err := cw.Write(model.GameColumns); err != nil {
		return report, fmt.Errorf("write header: %w", err)
	}
	for i, line := range lines[2:] {
		if line == "" {
			continue
		}
		lineNo := i + 3
		cells := splitCells(line)
		row, reason := convertRow(cells)
		if reason != "" {
			report.BadRows = append(report.BadRows, BadRow{Line: lineNo, Cells: cells, Reason: reason})
			continue
		}
		report.Games++
		record := append([]string{report.Date, strconv.Itoa(report.Games)}, row...)
		if err := cw.Write(record); err != nil {
			return report, fmt.Errorf("write line %d: %w", lineNo, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return report, fmt.Errorf("flush sheet: %w", err)
	}
	return report, nil
}

func splitCells(line string) []string {
	cells := strings.Split(line, ",")
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells
}

// convertRow A/B, ptsAB, X/Y, ptsXY -> A, B, ptsAB, X, Y, ptsXY
func convertRow(cells []string) ([]string, string) {
	if len(cells) != 4 {
		return nil, fmt.Sprintf("expected 4 cells, got %d", len(cells))
	}
	a, b, ok := splitPair(cells[0])
	if !ok {
		return nil, fmt.Sprintf("pair %q is not A/B", cells[0])
	}
	x, y, ok := splitPair(cells[2])
	if !ok {
		return nil, fmt.Sprintf("pair %q is not X/Y", cells[2])
	}
	// same range the game loader accepts
	for _, pts := range []string{cells[1], cells[3]} {
		if _, err := strconv.ParseUint(pts, 10, 8); err != nil {
			return nil, fmt.Sprintf("points %q are not a number in 0..255", pts)
		}
	}
	return []string{a, b, cells[1], x, y, cells[3]}, ""
}

func splitPair(cell string) (string, string, bool) {
	if strings.Count(cell, "/") != 1 {
		return "", "", false
	}
	first, second, _ := strings.Cut(cell, "/")
	return strings.TrimSpace(first), strings.TrimSpace(second), true
}
