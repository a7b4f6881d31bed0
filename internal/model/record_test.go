package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestCloneKeepsEmptyListsNonNil(t *testing.T) {
	rec := DepotRecord{ID: "1", Syndicate: "Alpha"}

	for name, r := range map[string]DepotRecord{
		"clone":         rec.Clone(),
		"clone records": CloneRecords([]DepotRecord{rec})[0],
	} {
		if r.ShopIDs == nil || r.Products == nil {
			t.Fatalf("%s: nil slice after copy: %+v", name, r)
		}
		data, err := json.Marshal(r)
		if err != nil {
			t.Fatalf("%s: marshal: %v", name, err)
		}
		if !strings.Contains(string(data), `"shopIds":[]`) {
			t.Fatalf("%s: got %s", name, data)
		}
	}
}
