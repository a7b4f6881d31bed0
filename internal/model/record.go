package model

// ProductEntry cases and rate for one product slot
type ProductEntry struct {
	Cases float64 `json:"cases"`
	Rate  float64 `json:"rate"`
}

// Amount cases × rate, always derived
func (p ProductEntry) Amount() float64 {
	return p.Cases * p.Rate
}

// DepotRecord one syndicate row within a depot
type DepotRecord struct {
	ID        string         `json:"id"`
	Syndicate string         `json:"syndicate"`
	ShopIDs   []string       `json:"shopIds"`
	Products  []ProductEntry `json:"products"`
}

// Clone returns a deep copy so callers never share slices with the store.
func (r DepotRecord) Clone() DepotRecord {
	out := r
	out.ShopIDs = append(make([]string, 0, len(r.ShopIDs)), r.ShopIDs...)
	out.Products = append(make([]ProductEntry, 0, len(r.Products)), r.Products...)
	return out
}

// ProductsTotal sum of cases × rate over all slots
func ProductsTotal(entries []ProductEntry) float64 {
	total := 0.0
	for _, p := range entries {
		total += p.Amount()
	}
	return total
}

// ResizeProducts returns a copy of entries truncated or zero-padded to n slots.
func ResizeProducts(entries []ProductEntry, n int) []ProductEntry {
	if n < 0 {
		n = 0
	}
	out := make([]ProductEntry, n)
	copy(out, entries)
	return out
}

// CloneRecords deep-copies a record list.
func CloneRecords(records []DepotRecord) []DepotRecord {
	out := make([]DepotRecord, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}
