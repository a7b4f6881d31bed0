package workspace

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"github.com/GSKumar1109/claimsreporter/internal/model"
	"github.com/GSKumar1109/claimsreporter/internal/service/calculator"
	"github.com/GSKumar1109/claimsreporter/internal/service/consolidate"
	"github.com/GSKumar1109/claimsreporter/internal/service/store"
)

const (
	yearsBack    = 5
	yearsForward = 2
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Manager owns the load/save boundary. Each use case runs read-modify-write
// under one lock and persists before returning, so handlers never interleave.
type Manager struct {
	kv        KV
	store     *store.MemoryStore
	backupDir string
	now       func() time.Time

	mu sync.Mutex
}

func NewManager(kv KV, mem *store.MemoryStore, opts Options) (*Manager, error) {
	if kv == nil {
		return nil, errors.New("kv store is required")
	}
	if mem == nil {
		mem = store.NewMemoryStore()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Manager{
		kv:        kv,
		store:     mem,
		backupDir: opts.BackupDir,
		now:       now,
	}, nil
}

// Load reads the persisted blob into memory.
// A corrupt blob is logged and treated as no prior state. Stored depots are
// re-consolidated and written back.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	blob, err := m.kv.LoadState()
	if err != nil {
		log.Printf("load state failed, starting empty: %v", err)
		m.store.Restore(model.NewState())
		return nil
	}
	if blob == nil {
		m.store.Restore(model.NewState())
		return nil
	}

	state, hasData, err := decodeState(blob)
	if err != nil {
		log.Printf("stored state is corrupt, starting empty: %v", err)
		m.store.Restore(model.NewState())
		return nil
	}

	m.store.Restore(state)
	if !hasData {
		return nil
	}

	if m.backupDir != "" {
		name := fmt.Sprintf("state-%s.json", m.now().Format("20060102-150405"))
		if err := writeBytesAtomic(filepath.Join(m.backupDir, name), blob); err != nil {
			log.Printf("backup before rewrite failed: %v", err)
		}
	}
	return m.saveLocked()
}

// SaveNow persists the current store.
func (m *Manager) SaveNow() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveLocked()
}

func (m *Manager) saveLocked() error {
	blob, err := json.Marshal(m.store.Snapshot())
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := m.kv.SaveState(blob); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

// mutate applies fn and persists; on any failure the previous state is restored.
func (m *Manager) mutate(fn func() error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	before := m.store.Snapshot()
	if err := fn(); err != nil {
		m.store.Restore(before)
		return err
	}
	if err := m.saveLocked(); err != nil {
		m.store.Restore(before)
		return err
	}
	return nil
}

// Products current product names
func (m *Manager) Products() []string {
	return m.store.Products()
}

// Records a depot's records
func (m *Manager) Records(depot string) ([]model.DepotRecord, error) {
	if !model.IsDepot(depot) {
		return nil, model.ErrUnknownDepot
	}
	return m.store.Records(depot), nil
}

// Submit upserts an entry-form submission.
func (m *Manager) Submit(depot string, sub model.Submission) (model.DepotRecord, error) {
	var rec model.DepotRecord
	err := m.mutate(func() error {
		var err error
		rec, err = m.store.Upsert(depot, sub)
		return err
	})
	return rec, err
}

// DeleteRecord removes one record.
func (m *Manager) DeleteRecord(depot, id string) error {
	if !model.IsDepot(depot) {
		return model.ErrUnknownDepot
	}
	return m.mutate(func() error {
		return m.store.Delete(depot, id)
	})
}

// ClearDepot removes every record of one depot.
func (m *Manager) ClearDepot(depot string) error {
	if !model.IsDepot(depot) {
		return model.ErrUnknownDepot
	}
	return m.mutate(func() error {
		m.store.ClearDepot(depot)
		return nil
	})
}

// AddProduct appends a product slot.
func (m *Manager) AddProduct() ([]string, error) {
	var names []string
	err := m.mutate(func() error {
		names = m.store.AddProduct()
		return nil
	})
	return names, err
}

// RemoveProduct drops the last product slot.
func (m *Manager) RemoveProduct() ([]string, error) {
	var names []string
	err := m.mutate(func() error {
		var err error
		names, err = m.store.RemoveProduct()
		return err
	})
	return names, err
}

// RenameProducts saves edited product names.
func (m *Manager) RenameProducts(names []string) ([]string, error) {
	var out []string
	err := m.mutate(func() error {
		out = m.store.RenameProducts(names)
		return nil
	})
	return out, err
}

// ResetProductNames restores default product labels.
func (m *Manager) ResetProductNames() ([]string, error) {
	var out []string
	err := m.mutate(func() error {
		out = m.store.ResetProductNames()
		return nil
	})
	return out, err
}

// Report aggregated totals of one depot
func (m *Manager) Report(depot string) (calculator.Report, error) {
	if !model.IsDepot(depot) {
		return calculator.Report{}, model.ErrUnknownDepot
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return calculator.Aggregate(m.store.Records(depot), m.store.ProductCount()), nil
}

// View depot table for the selected period. Records and report come from one read.
// Exports require at least one record; pass requireRows for them.
func (m *Manager) View(depot string, requireRows bool) (DepotView, error) {
	if !model.IsDepot(depot) {
		return DepotView{}, model.ErrUnknownDepot
	}
	sel := m.Selection()

	m.mu.Lock()
	defer m.mu.Unlock()

	records := m.store.Records(depot)
	if requireRows && len(records) == 0 {
		return DepotView{}, model.ErrEmptyDepot
	}
	products := m.store.Products()
	return DepotView{
		Depot:    depot,
		Period:   sel.Period,
		Products: products,
		Records:  records,
		Report:   calculator.Aggregate(records, len(products)),
	}, nil
}

// Selection last-selected depot and period, with defaults for anything unset.
func (m *Manager) Selection() model.Selection {
	now := m.now()
	sel := model.Selection{
		Depot:  model.Depots[0],
		Period: model.Period{Year: now.Year(), Month: now.Month()},
	}

	if depot, err := m.kv.LastDepot(); err != nil {
		log.Printf("read last depot failed: %v", err)
	} else if model.IsDepot(depot) {
		sel.Depot = depot
	}

	year, month := m.kv.SelectedPeriod()
	if month >= time.January && month <= time.December {
		sel.Period.Month = month
	}
	if year > 0 {
		sel.Period.Year = year
	}
	return sel
}

// SelectDepot remembers the selected depot.
func (m *Manager) SelectDepot(depot string) error {
	if !model.IsDepot(depot) {
		return model.ErrUnknownDepot
	}
	return m.kv.SetLastDepot(depot)
}

// SelectPeriod remembers the report month and year.
func (m *Manager) SelectPeriod(year int, month time.Month) error {
	if err := m.ValidatePeriod(year, month); err != nil {
		return err
	}
	return m.kv.SetSelectedPeriod(year, month)
}

// ValidatePeriod month 1-12, year within YearOptions
func (m *Manager) ValidatePeriod(year int, month time.Month) error {
	if month < time.January || month > time.December {
		return model.ErrInvalidPeriod
	}
	years := m.YearOptions()
	if year < years[0] || year > years[len(years)-1] {
		return model.ErrInvalidPeriod
	}
	return nil
}

// UpdateSelection validates the depot and period, then stores both.
// Nothing is written when either is invalid.
func (m *Manager) UpdateSelection(sel model.Selection) error {
	if !model.IsDepot(sel.Depot) {
		return model.ErrUnknownDepot
	}
	if err := m.ValidatePeriod(sel.Period.Year, sel.Period.Month); err != nil {
		return err
	}
	if err := m.kv.SetLastDepot(sel.Depot); err != nil {
		return err
	}
	return m.kv.SetSelectedPeriod(sel.Period.Year, sel.Period.Month)
}

// YearOptions selectable years: five back, two forward
func (m *Manager) YearOptions() []int {
	thisYear := m.now().Year()
	years := make([]int, 0, yearsBack+yearsForward+1)
	for y := thisYear - yearsBack; y <= thisYear+yearsForward; y++ {
		years = append(years, y)
	}
	return years
}

// ExportDocument per-depot snapshot {depot, products, rows}
func (m *Manager) ExportDocument(depot string) (model.Document, error) {
	if !model.IsDepot(depot) {
		return model.Document{}, model.ErrUnknownDepot
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return model.Document{
		Depot:    depot,
		Products: m.store.Products(),
		Rows:     m.store.Records(depot),
	}, nil
}

// ExportFileName document file name, whitespace runs replaced by "_"
func ExportFileName(depot string) string {
	return whitespaceRun.ReplaceAllString(depot, "_") + ".json"
}

// ImportDocument replaces a depot's records with a consolidated copy of the document rows.
// A non-array rows field rejects the whole document and leaves the store untouched.
// A non-empty products array replaces the product configuration.
func (m *Manager) ImportDocument(depot string, data []byte) (ImportResult, error) {
	if !model.IsDepot(depot) {
		return ImportResult{}, model.ErrUnknownDepot
	}

	var doc struct {
		Products json.RawMessage `json:"products"`
		Rows     json.RawMessage `json:"rows"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return ImportResult{}, fmt.Errorf("%w: %v", model.ErrInvalidDocument, err)
	}
	rows, err := consolidate.DecodeRows(doc.Rows)
	if err != nil {
		return ImportResult{}, fmt.Errorf("%w: %v", model.ErrInvalidDocument, err)
	}
	names, hasNames := decodeProductNames(doc.Products)

	var result ImportResult
	err = m.mutate(func() error {
		if hasNames {
			if err := m.store.SetProducts(names); err != nil {
				return err
			}
		}
		products := m.store.Products()
		records := consolidate.ConsolidateRaw(rows, len(products))
		m.store.ReplaceDepot(depot, records)

		result = ImportResult{Depot: depot, Imported: len(records), Products: products}
		return nil
	})
	if err != nil {
		return ImportResult{}, err
	}
	return result, nil
}

// decodeState tolerant decode of the stored blob.
// hasData reports whether the blob carried a data section.
func decodeState(blob []byte) (*model.State, bool, error) {
	var raw struct {
		Products json.RawMessage            `json:"products"`
		Data     map[string]json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(blob, &raw); err != nil {
		return nil, false, err
	}

	state := model.NewState()
	if names, ok := decodeProductNames(raw.Products); ok {
		state.Products = names
	}
	for depot, rowsJSON := range raw.Data {
		rows, err := consolidate.DecodeRows(rowsJSON)
		if err != nil {
			log.Printf("depot %s: stored rows unreadable, dropping: %v", depot, err)
			state.Data[depot] = []model.DepotRecord{}
			continue
		}
		state.Data[depot] = consolidate.ConsolidateRaw(rows, len(state.Products))
	}
	return state, raw.Data != nil, nil
}

// decodeProductNames accepts a non-empty JSON array of names.
func decodeProductNames(data json.RawMessage) ([]string, bool) {
	if len(data) == 0 {
		return nil, false
	}
	var items []any
	if err := json.Unmarshal(data, &items); err != nil || len(items) == 0 {
		return nil, false
	}
	names := make([]string, len(items))
	for i, item := range items {
		switch v := item.(type) {
		case string:
			names[i] = v
		case nil:
			names[i] = model.PlaceholderProductName(i)
		default:
			names[i] = fmt.Sprint(v)
		}
	}
	return names, true
}
