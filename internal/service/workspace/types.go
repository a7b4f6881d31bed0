package workspace

import (
	"time"

	"github.com/GSKumar1109/claimsreporter/internal/model"
	"github.com/GSKumar1109/claimsreporter/internal/service/calculator"
)

// KV persistence boundary: the state blob plus the selection keys
type KV interface {
	LoadState() ([]byte, error)
	SaveState(blob []byte) error
	LastDepot() (string, error)
	SetLastDepot(depot string) error
	SelectedPeriod() (year int, month time.Month)
	SetSelectedPeriod(year int, month time.Month) error
}

// Options manager settings
type Options struct {
	// BackupDir receives a copy of the stored blob before it is rewritten on load; empty disables backups.
	BackupDir string
	// Now clock, defaults to time.Now
	Now func() time.Time
}

// ImportResult outcome of a document import
type ImportResult struct {
	Depot    string   `json:"depot"`
	Imported int      `json:"imported"`
	Products []string `json:"products"`
}

// DepotView everything needed to render or export one depot's table
type DepotView struct {
	Depot    string              `json:"depot"`
	Period   model.Period        `json:"period"`
	Products []string            `json:"products"`
	Records  []model.DepotRecord `json:"records"`
	Report   calculator.Report   `json:"report"`
}
