package store

import (
	"strconv"
	"strings"
	"sync"

	"github.com/GSKumar1109/claimsreporter/internal/model"
	"github.com/GSKumar1109/claimsreporter/internal/service/consolidate"
)

// MemoryStore in-memory depot store: product configuration plus per-depot records
type MemoryStore struct {
	products []string
	data     map[string][]model.DepotRecord
	mu       sync.RWMutex
}

// NewMemoryStore empty store with the default product labels
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{}
	s.Restore(model.NewState())
	return s
}

// Products current product names
func (s *MemoryStore) Products() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.products...)
}

// ProductCount number of configured product slots
func (s *MemoryStore) ProductCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

// SetProducts replaces the product configuration and resizes every record to match.
func (s *MemoryStore) SetProducts(names []string) error {
	if len(names) == 0 {
		return model.ErrLastProduct
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setProductsLocked(names)
	return nil
}

// AddProduct appends a product slot named P{n}.
func (s *MemoryStore) AddProduct() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.products) + 1
	next := append(append([]string(nil), s.products...), "P"+strconv.Itoa(n))
	s.setProductsLocked(next)
	return append([]string(nil), s.products...)
}

// RemoveProduct drops the last product slot; the last remaining one cannot be removed.
func (s *MemoryStore) RemoveProduct() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.products) <= 1 {
		return nil, model.ErrLastProduct
	}
	s.setProductsLocked(s.products[:len(s.products)-1])
	return append([]string(nil), s.products...), nil
}

// RenameProducts applies edited names slot by slot; blank names fall back to "Product {i}".
// The product count is unchanged.
func (s *MemoryStore) RenameProducts(names []string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]string, len(s.products))
	for i := range next {
		name := ""
		if i < len(names) {
			name = strings.TrimSpace(names[i])
		}
		if name == "" {
			name = model.PlaceholderProductName(i)
		}
		next[i] = name
	}
	s.products = next
	return append([]string(nil), s.products...)
}

// ResetProductNames restores default labels for the current product count.
func (s *MemoryStore) ResetProductNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = model.DefaultProductNames(len(s.products))
	return append([]string(nil), s.products...)
}

// Records copy of a depot's records, sorted by syndicate
func (s *MemoryStore) Records(depot string) []model.DepotRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.CloneRecords(s.data[depot])
}

// Upsert applies an entry-form submission.
// An existing syndicate keeps its id, gains the new shop IDs and takes the new products.
func (s *MemoryStore) Upsert(depot string, sub model.Submission) (model.DepotRecord, error) {
	if !model.IsDepot(depot) {
		return model.DepotRecord{}, model.ErrUnknownDepot
	}
	syndicate := strings.TrimSpace(sub.Syndicate)
	if syndicate == "" {
		return model.DepotRecord{}, model.ErrEmptySyndicate
	}
	shops := consolidate.ParseShopIDs(strings.Join(sub.ShopIDs, ","))
	if len(shops) == 0 {
		return model.DepotRecord{}, model.ErrNoShopIDs
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	count := len(s.products)
	products := sanitizeEntries(model.ResizeProducts(sub.Products, count))

	records := model.CloneRecords(s.data[depot])
	found := false
	for i := range records {
		if records[i].Syndicate != syndicate {
			continue
		}
		records[i].ShopIDs = consolidate.UnionShopIDs(records[i].ShopIDs, shops)
		records[i].Products = products
		found = true
		break
	}
	if !found {
		records = append(records, model.DepotRecord{
			Syndicate: syndicate,
			ShopIDs:   shops,
			Products:  products,
		})
	}

	records = consolidate.ConsolidateRecords(records, count)
	s.data[depot] = records

	for _, r := range records {
		if r.Syndicate == syndicate {
			return r.Clone(), nil
		}
	}
	return model.DepotRecord{}, model.ErrRecordNotFound
}

// Delete removes one record by id.
func (s *MemoryStore) Delete(depot, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.data[depot]
	for i, r := range records {
		if r.ID != id {
			continue
		}
		next := make([]model.DepotRecord, 0, len(records)-1)
		next = append(next, records[:i]...)
		next = append(next, records[i+1:]...)
		s.data[depot] = next
		return nil
	}
	return model.ErrRecordNotFound
}

// ClearDepot empties one depot.
func (s *MemoryStore) ClearDepot(depot string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[depot] = []model.DepotRecord{}
}

// ReplaceDepot swaps a depot's records for an already consolidated list.
func (s *MemoryStore) ReplaceDepot(depot string, records []model.DepotRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[depot] = model.CloneRecords(records)
}

// Count number of records in a depot
func (s *MemoryStore) Count(depot string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data[depot])
}

// Snapshot deep copy of the whole store for persistence
func (s *MemoryStore) Snapshot() *model.State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := &model.State{
		Products: append([]string(nil), s.products...),
		Data:     make(map[string][]model.DepotRecord, len(s.data)),
	}
	for depot, records := range s.data {
		state.Data[depot] = model.CloneRecords(records)
	}
	return state
}

// Restore replaces the whole store.
func (s *MemoryStore) Restore(state *model.State) {
	if state == nil {
		state = model.NewState()
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = append([]string(nil), state.Products...)
	if len(s.products) == 0 {
		s.products = model.DefaultProductNames(len(model.DefaultProducts))
	}
	s.data = make(map[string][]model.DepotRecord, len(state.Data))
	for depot, records := range state.Data {
		s.data[depot] = model.CloneRecords(records)
	}
}

func (s *MemoryStore) setProductsLocked(names []string) {
	s.products = append([]string(nil), names...)
	for depot, records := range s.data {
		resized := make([]model.DepotRecord, len(records))
		for i, r := range records {
			r = r.Clone()
			r.Products = model.ResizeProducts(r.Products, len(names))
			resized[i] = r
		}
		s.data[depot] = resized
	}
}

func sanitizeEntries(entries []model.ProductEntry) []model.ProductEntry {
	for i, p := range entries {
		if !(p.Cases > 0) {
			entries[i].Cases = 0
		}
		if !(p.Rate > 0) {
			entries[i].Rate = 0
		}
	}
	return entries
}
