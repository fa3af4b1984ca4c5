package dto

import "time"

type AddIdeaInput struct {
	Title  string
	Memo   string
	Impact int
	Cost   int
}

type ListInput struct {
	// All skips the zone filter.
	All bool
}

type IdeaOutput struct {
	ID        string
	Title     string
	Memo      string
	Impact    int
	Cost      int
	Score     int
	Zone      string
	ZoneLabel string
	CreatedAt time.Time
}

type FilterOutput struct {
	Zone    string
	Label   string
	Enabled bool
}

type ExportOutput struct {
	Payload []byte
	Items   int
}

type ImportInput struct {
	Payload []byte
}

type ImportOutput struct {
	Items        int
	Repaired     int
	Title        string
	TitleChanged bool
}

// MatrixOutput places idea titles on the impact x cost grid.
// Cells[impact-1][cost-1] holds the titles in display order.
type MatrixOutput struct {
	Title string
	Cells [5][5][]MatrixCell
}

type MatrixCell struct {
	Title string
	Zone  string
	Score int
}
