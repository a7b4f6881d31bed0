package store

import (
	"errors"
	"time"
)

// Storage keys. The blob key and its ":lastDepot" companion are versioned;
// the month/year keys are not.
const (
	StateKey         = "depotSalesManager.v1"
	LastDepotKey     = StateKey + ":lastDepot"
	SelectedMonthKey = "selectedMonth"
	SelectedYearKey  = "selectedYear"
)

// LoadState raw state blob; nil without error when nothing was saved yet.
func (s *Store) LoadState() ([]byte, error) {
	value, err := s.Get(StateKey)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(value), nil
}

// SaveState writes the state blob.
func (s *Store) SaveState(blob []byte) error {
	return s.Set(StateKey, string(blob))
}

// LastDepot last selected depot, "" when unset.
func (s *Store) LastDepot() (string, error) {
	depot, err := s.Get(LastDepotKey)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	return depot, err
}

// SetLastDepot remembers the selected depot.
func (s *Store) SetLastDepot(depot string) error {
	return s.Set(LastDepotKey, depot)
}

// SelectedPeriod last selected year and month; zeros when unset or unreadable.
func (s *Store) SelectedPeriod() (year int, month time.Month) {
	if y, err := s.GetInt(SelectedYearKey); err == nil {
		year = y
	}
	if m, err := s.GetInt(SelectedMonthKey); err == nil {
		month = time.Month(m)
	}
	return year, month
}

// SetSelectedPeriod remembers the report month and year.
func (s *Store) SetSelectedPeriod(year int, month time.Month) error {
	if err := s.SetInt(SelectedYearKey, year); err != nil {
		return err
	}
	return s.SetInt(SelectedMonthKey, int(month))
}
