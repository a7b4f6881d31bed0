package model

import (
	"strconv"
	"time"
)

// State persisted blob: product configuration plus every depot's records
type State struct {
	Products []string                 `json:"products"`
	Data     map[string][]DepotRecord `json:"data"`
}

// NewState empty state with the default product labels
func NewState() *State {
	return &State{
		Products: DefaultProductNames(len(DefaultProducts)),
		Data:     make(map[string][]DepotRecord),
	}
}

// Document per-depot export/import file
type Document struct {
	Depot    string        `json:"depot"`
	Products []string      `json:"products"`
	Rows     []DepotRecord `json:"rows"`
}

// Period report month and year
type Period struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// Label e.g. "October 2026"
func (p Period) Label() string {
	return p.Month.String() + " " + strconv.Itoa(p.Year)
}

// Selection last-selected depot and report period
type Selection struct {
	Depot  string `json:"depot"`
	Period Period `json:"period"`
}

// Submission one entry-form submit
type Submission struct {
	Syndicate string         `json:"syndicate"`
	ShopIDs   []string       `json:"shopIds"`
	Products  []ProductEntry `json:"products"`
}
