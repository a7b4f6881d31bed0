package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GSKumar1109/claimsreporter/internal/service/store"
	"github.com/GSKumar1109/claimsreporter/internal/service/workspace"
	sqlitestore "github.com/GSKumar1109/claimsreporter/internal/store"
)

type testEnv struct {
	router *gin.Engine
	kv     *sqlitestore.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	kv, err := sqlitestore.New(filepath.Join(dir, "claimsreporter.db"))
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })

	ws, err := workspace.NewManager(kv, store.NewMemoryStore(), workspace.Options{
		Now: func() time.Time { return time.Date(2026, time.October, 16, 9, 0, 0, 0, time.UTC) },
	})
	if err != nil {
		t.Fatalf("init manager: %v", err)
	}
	if err := ws.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}

	h := NewHandler(ws, Options{
		CompanyName: "SRIVEN ENTERPRISES",
		ReportTitle: "Claim Report From",
		ExportDir:   filepath.Join(dir, "exports"),
	})
	r := gin.New()
	h.RegisterRoutes(r.Group("/api"))
	return &testEnv{router: r, kv: kv}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch v := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(v))
	default:
		b, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v body=%s", err, w.Body.String())
	}
	return out
}

func (e *testEnv) submit(t *testing.T, depot, syndicate, shops string, cases, rate float64) {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/depots/"+depot+"/records", map[string]any{
		"syndicate": syndicate,
		"shopIds":   shops,
		"products":  []map[string]float64{{"cases": cases, "rate": rate}},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("submit status=%d body=%s", w.Code, w.Body.String())
	}
}

func TestSubmitAndReport(t *testing.T) {
	env := newTestEnv(t)
	env.submit(t, "KNL", "Alpha", "S1, S2", 10, 100)
	env.submit(t, "KNL", "Alpha", "S2, S3", 4, 50)

	w := env.do(t, http.MethodGet, "/api/depots/KNL/report", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	resp := decode[ReportResponse](t, w)
	if len(resp.Records) != 1 {
		t.Fatalf("records=%d, want 1", len(resp.Records))
	}
	if got := strings.Join(resp.Records[0].ShopIDs, ","); got != "S1,S2,S3" {
		t.Fatalf("shopIds=%s", got)
	}
	if resp.Report.Depot.Amount != 200 || resp.Report.Depot.Cases != 4 {
		t.Fatalf("depot totals=%+v, want products replaced", resp.Report.Depot)
	}
	if len(resp.Products) != 8 || len(resp.Records[0].Products) != 8 {
		t.Fatalf("product vector not padded: %d", len(resp.Records[0].Products))
	}
	if resp.Title != "Claim Report From — KNL for October 2026" {
		t.Fatalf("title=%q", resp.Title)
	}
}

func TestSubmitRejectsMissingShopIDs(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodPost, "/api/depots/KNL/records", map[string]any{
		"syndicate": "Alpha",
		"shopIds":   " , ",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "at least one shop ID") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestUnknownDepotIs404(t *testing.T) {
	env := newTestEnv(t)
	for _, path := range []string{"/api/depots/NOWHERE/report", "/api/depots/NOWHERE/export.json"} {
		if w := env.do(t, http.MethodGet, path, nil); w.Code != http.StatusNotFound {
			t.Fatalf("%s status=%d, want 404", path, w.Code)
		}
	}
}

func TestDeleteAndClear(t *testing.T) {
	env := newTestEnv(t)
	env.submit(t, "KNL", "Alpha", "S1", 1, 1)
	env.submit(t, "KNL", "Beta", "S2", 1, 1)

	resp := decode[ReportResponse](t, env.do(t, http.MethodGet, "/api/depots/KNL/report", nil))
	id := resp.Records[0].ID

	if w := env.do(t, http.MethodDelete, "/api/depots/KNL/records/"+id, nil); w.Code != http.StatusNoContent {
		t.Fatalf("delete status=%d", w.Code)
	}
	if w := env.do(t, http.MethodDelete, "/api/depots/KNL/records/"+id, nil); w.Code != http.StatusNotFound {
		t.Fatalf("second delete status=%d, want 404", w.Code)
	}
	if w := env.do(t, http.MethodDelete, "/api/depots/KNL/records", nil); w.Code != http.StatusNoContent {
		t.Fatalf("clear status=%d", w.Code)
	}
	resp = decode[ReportResponse](t, env.do(t, http.MethodGet, "/api/depots/KNL/report", nil))
	if len(resp.Records) != 0 {
		t.Fatalf("records=%d after clear", len(resp.Records))
	}
}

func TestInvalidImportLeavesStateUntouched(t *testing.T) {
	env := newTestEnv(t)
	env.submit(t, "KNL", "Alpha", "S1", 1, 10)

	before, err := env.kv.LoadState()
	if err != nil {
		t.Fatalf("load state: %v", err)
	}

	w := env.do(t, http.MethodPost, "/api/depots/KNL/import", `{"depot":"KNL","rows":"bad"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400 body=%s", w.Code, w.Body.String())
	}

	after, err := env.kv.LoadState()
	if err != nil {
		t.Fatalf("load state: %v", err)
	}
	if !bytes.Equal(before, after) {
		t.Fatalf("persisted state changed by a rejected import")
	}
	resp := decode[ReportResponse](t, env.do(t, http.MethodGet, "/api/depots/KNL/report", nil))
	if len(resp.Records) != 1 || resp.Records[0].Syndicate != "Alpha" {
		t.Fatalf("records changed: %+v", resp.Records)
	}
}

func TestImportMultipartConsolidates(t *testing.T) {
	env := newTestEnv(t)

	doc := `{"depot":"ATP","products":["A","B"],"rows":[
		{"syndicate":"Zeta","shopId":"S9","products":[{"cases":"3","rate":2}]},
		{"syndicate":" Zeta ","shopIds":["S8"],"products":[{"cases":1,"rate":1}]},
		{"syndicate":"","shopIds":["S7"]}
	]}`
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "ATP.json")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	_, _ = fw.Write([]byte(doc))
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/depots/ATP/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	result := decode[workspace.ImportResult](t, w)
	if result.Imported != 1 || len(result.Products) != 2 {
		t.Fatalf("unexpected result: %+v", result)
	}

	exported := env.do(t, http.MethodGet, "/api/depots/ATP/export.json", nil)
	if cd := exported.Header().Get("Content-Disposition"); !strings.Contains(cd, "ATP.json") {
		t.Fatalf("content-disposition=%q", cd)
	}
	var got struct {
		Products []string `json:"products"`
		Rows     []struct {
			Syndicate string   `json:"syndicate"`
			ShopIDs   []string `json:"shopIds"`
			Products  []struct {
				Cases float64 `json:"cases"`
			} `json:"products"`
		} `json:"rows"`
	}
	if err := json.Unmarshal(exported.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal export: %v", err)
	}
	if len(got.Rows) != 1 || got.Rows[0].Syndicate != "Zeta" {
		t.Fatalf("rows=%+v", got.Rows)
	}
	// first row total 6 beats 1, so its products survive
	if got.Rows[0].Products[0].Cases != 3 || len(got.Rows[0].Products) != 2 {
		t.Fatalf("products=%+v", got.Rows[0].Products)
	}
	if strings.Join(got.Rows[0].ShopIDs, ",") != "S9,S8" {
		t.Fatalf("shopIds=%v", got.Rows[0].ShopIDs)
	}
}

func TestExportXLSXDownloadOnce(t *testing.T) {
	env := newTestEnv(t)

	if w := env.do(t, http.MethodPost, "/api/depots/KNL/export.xlsx", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("empty depot status=%d, want 400", w.Code)
	}

	env.submit(t, "KNL", "Alpha", "S1", 2, 50)
	w := env.do(t, http.MethodPost, "/api/depots/KNL/export.xlsx", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	resp := decode[map[string]string](t, w)
	if resp["fileName"] != "KNL_data.xlsx" {
		t.Fatalf("fileName=%q", resp["fileName"])
	}

	dl := env.do(t, http.MethodGet, resp["downloadUrl"], nil)
	if dl.Code != http.StatusOK {
		t.Fatalf("download status=%d", dl.Code)
	}
	if ct := dl.Header().Get("Content-Type"); ct != xlsxContentType {
		t.Fatalf("content-type=%q", ct)
	}
	if dl.Body.Len() == 0 {
		t.Fatalf("empty workbook")
	}
	if again := env.do(t, http.MethodGet, resp["downloadUrl"], nil); again.Code != http.StatusNotFound {
		t.Fatalf("second download status=%d, want 404", again.Code)
	}
}

func TestExportCSV(t *testing.T) {
	env := newTestEnv(t)
	env.submit(t, "KNL", "Alpha", "S1", 2, 50)

	w := env.do(t, http.MethodGet, "/api/depots/KNL/export.csv", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	// header + 8 products
	if len(lines) != 9 {
		t.Fatalf("lines=%d, want 9", len(lines))
	}
	if !strings.HasPrefix(lines[1], "Alpha,S1,MC VSOP,2,50,100") {
		t.Fatalf("first line=%q", lines[1])
	}
}

func TestProductsLifecycle(t *testing.T) {
	env := newTestEnv(t)

	type productsResp struct {
		Products []string `json:"products"`
	}
	added := decode[productsResp](t, env.do(t, http.MethodPost, "/api/products", nil))
	if len(added.Products) != 9 || added.Products[8] != "P9" {
		t.Fatalf("after add: %v", added.Products)
	}

	renamed := decode[productsResp](t, env.do(t, http.MethodPut, "/api/products", map[string]any{
		"products": []string{"X", "", "Z"},
	}))
	if len(renamed.Products) != 9 || renamed.Products[0] != "X" || renamed.Products[1] != "Product 2" {
		t.Fatalf("after rename: %v", renamed.Products)
	}

	reset := decode[productsResp](t, env.do(t, http.MethodPost, "/api/products/reset", nil))
	if reset.Products[0] != "MC VSOP" || reset.Products[8] != "Product 9" {
		t.Fatalf("after reset: %v", reset.Products)
	}

	for i := 0; i < 8; i++ {
		if w := env.do(t, http.MethodDelete, "/api/products/last", nil); w.Code != http.StatusOK {
			t.Fatalf("remove %d status=%d", i, w.Code)
		}
	}
	if w := env.do(t, http.MethodDelete, "/api/products/last", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("removing the last product status=%d, want 400", w.Code)
	}
}

func TestFormTotals(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodPost, "/api/form/totals", map[string]any{
		"products": []map[string]float64{{"cases": 1000, "rate": 12.5}, {"cases": 200, "rate": 10}},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var resp struct {
		Display map[string]string `json:"display"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Display["amount"] != "14,500" || resp.Display["cases"] != "1,200" || resp.Display["perCase"] != "12" {
		t.Fatalf("display=%v", resp.Display)
	}
}

func TestSelection(t *testing.T) {
	env := newTestEnv(t)

	if w := env.do(t, http.MethodPost, "/api/selection", map[string]any{"month": 13}); w.Code != http.StatusBadRequest {
		t.Fatalf("bad month status=%d, want 400", w.Code)
	}
	if w := env.do(t, http.MethodPost, "/api/selection", map[string]any{"depot": "ATP", "year": 2025, "month": 3}); w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}

	meta := decode[MetaResponse](t, env.do(t, http.MethodGet, "/api/meta", nil))
	if meta.Selection.Depot != "ATP" || meta.Selection.Period.Year != 2025 || meta.Selection.Period.Month != time.March {
		t.Fatalf("selection=%+v", meta.Selection)
	}
	if len(meta.Depots) != 29 || meta.CompanyName != "SRIVEN ENTERPRISES" {
		t.Fatalf("meta=%+v", meta)
	}
	if meta.YearOptions[0] != 2021 || meta.YearOptions[len(meta.YearOptions)-1] != 2028 {
		t.Fatalf("yearOptions=%v", meta.YearOptions)
	}
}

func TestShoplessRowEncodesEmptyShopList(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/depots/KNL/import",
		`{"rows":[{"syndicate":"Gamma","products":[{"cases":1,"rate":2}]}]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("import status=%d body=%s", w.Code, w.Body.String())
	}

	report := env.do(t, http.MethodGet, "/api/depots/KNL/report", nil)
	if strings.Contains(report.Body.String(), `"shopIds":null`) {
		t.Fatalf("report carries null shopIds: %s", report.Body.String())
	}
	if n := strings.Count(report.Body.String(), `"shopIds":[]`); n < 2 {
		t.Fatalf("want empty shopIds in records and report rows, got %d: %s", n, report.Body.String())
	}

	exported := env.do(t, http.MethodGet, "/api/depots/KNL/export.json", nil)
	var doc struct {
		Rows []map[string]any `json:"rows"`
	}
	if err := json.Unmarshal(exported.Body.Bytes(), &doc); err != nil {
		t.Fatalf("unmarshal export: %v", err)
	}
	if len(doc.Rows) != 1 {
		t.Fatalf("rows=%d", len(doc.Rows))
	}
	if shops, ok := doc.Rows[0]["shopIds"].([]any); !ok || len(shops) != 0 {
		t.Fatalf("export shopIds=%#v, want []", doc.Rows[0]["shopIds"])
	}

	blob, err := env.kv.LoadState()
	if err != nil {
		t.Fatalf("load state: %v", err)
	}
	if bytes.Contains(blob, []byte(`"shopIds":null`)) {
		t.Fatalf("persisted blob carries null shopIds: %s", blob)
	}
}

func TestRejectedSelectionStoresNothing(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/selection", map[string]any{"depot": "ATP", "month": 13})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400", w.Code)
	}
	sel := decode[map[string]any](t, env.do(t, http.MethodGet, "/api/selection", nil))
	if sel["depot"] != "KNL" {
		t.Fatalf("depot=%v, want unchanged KNL", sel["depot"])
	}

	if w := env.do(t, http.MethodPost, "/api/selection", map[string]any{"depot": "NOWHERE", "month": 2}); w.Code != http.StatusNotFound {
		t.Fatalf("unknown depot status=%d, want 404", w.Code)
	}
	sel = decode[map[string]any](t, env.do(t, http.MethodGet, "/api/selection", nil))
	period, _ := sel["period"].(map[string]any)
	if period["month"] != float64(10) {
		t.Fatalf("month=%v, want unchanged 10", period["month"])
	}
}
