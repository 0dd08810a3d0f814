package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bytedance/sonic"

	"github.com/arremate/leilao-finder/pkg/source"
	"github.com/arremate/leilao-finder/pkg/tracking"
	"github.com/arremate/leilao-finder/pkg/types"
)

type stubSource struct {
	items []types.Item
	fail  bool
}

func (s *stubSource) ListItems(_ context.Context, _ types.ContentType) ([]types.Item, error) {
	if s.fail {
		return nil, source.ErrUnavailable
	}
	return s.items, nil
}

func (s *stubSource) GetOptionsForCategory(category string, contentType types.ContentType) []string {
	return types.TypeOptionsFor(category, contentType)
}

func sampleVehicles(n int) []types.Item {
	items := make([]types.Item, n)
	for i := range items {
		items[i] = types.Item{
			Id:          types.ItemId(i + 1),
			Title:       "Veículo de teste",
			CurrentBid:  float64((i + 1) * 10000),
			Format:      types.DefaultFormat,
			Origin:      types.DefaultOrigin,
			Place:       types.DefaultPlace,
			VehicleInfo: &types.VehicleInfo{Type: "Sedã", Brand: "toyota", Model: "corolla", Year: 2015},
		}
	}
	return items
}

func doSearch(t *testing.T, ws *WebServer, target string) (*httptest.ResponseRecorder, SearchResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	ws.Handler().ServeHTTP(rec, req)
	var resp SearchResponse
	if rec.Code == http.StatusOK || rec.Code == http.StatusBadGateway {
		if err := sonic.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("response did not decode: %v", err)
		}
	}
	return rec, resp
}

func TestSearchDefaults(t *testing.T) {
	ws := NewWebServer(&stubSource{items: sampleVehicles(5)}, nil, nil)
	rec, resp := doSearch(t, ws, "/api/items?content=vehicle")

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d", rec.Code)
	}
	if len(resp.Items) != 5 {
		t.Fatalf("expected all 5 items, got %d", len(resp.Items))
	}
	if resp.Page != 1 || resp.TotalPages != 1 {
		t.Errorf("unexpected paging: page %d of %d", resp.Page, resp.TotalPages)
	}
	if resp.ActiveFilters != 0 {
		t.Errorf("default state should count 0 active filters, got %d", resp.ActiveFilters)
	}
	if resp.CanonicalQuery != "" {
		t.Errorf("default state should encode an empty query, got %q", resp.CanonicalQuery)
	}
}

func TestSearchAppliesQueryFilters(t *testing.T) {
	items := sampleVehicles(5)
	items[4].VehicleInfo.Brand = "honda"
	ws := NewWebServer(&stubSource{items: items}, nil, nil)

	rec, resp := doSearch(t, ws, "/api/items?content=vehicle&brand=toyota&sort=price-desc")
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d", rec.Code)
	}
	if len(resp.Items) != 4 {
		t.Fatalf("expected 4 toyotas, got %d", len(resp.Items))
	}
	if resp.Items[0].CurrentBid != 40000 {
		t.Errorf("expected highest bid first, got %.0f", resp.Items[0].CurrentBid)
	}
	if resp.ActiveFilters != 1 {
		t.Errorf("expected 1 active filter, got %d", resp.ActiveFilters)
	}
	if !strings.Contains(resp.CanonicalQuery, "brand=toyota") {
		t.Errorf("canonical query should carry the brand, got %q", resp.CanonicalQuery)
	}
	if !strings.Contains(resp.CanonicalQuery, "sort=price-desc") {
		t.Errorf("canonical query should carry the sort, got %q", resp.CanonicalQuery)
	}
}

func TestSearchOutOfRangePageSnapsBack(t *testing.T) {
	ws := NewWebServer(&stubSource{items: sampleVehicles(5)}, nil, nil)
	rec, resp := doSearch(t, ws, "/api/items?content=vehicle&page=99")

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d", rec.Code)
	}
	if resp.Page != 1 {
		t.Fatalf("expected page snapped to 1, got %d", resp.Page)
	}
	if strings.Contains(resp.CanonicalQuery, "page=") {
		t.Errorf("canonical query should not keep the bad page, got %q", resp.CanonicalQuery)
	}
}

func TestSearchPostBody(t *testing.T) {
	ws := NewWebServer(&stubSource{items: sampleVehicles(5)}, nil, nil)

	body := `{"filters":{"contentType":"vehicle","brand":"toyota"},"sort":"price-asc","page":1,"pageSize":2}`
	req := httptest.NewRequest(http.MethodPost, "/api/items", strings.NewReader(body))
	rec := httptest.NewRecorder()
	ws.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d: %s", rec.Code, rec.Body.String())
	}
	var resp SearchResponse
	if err := sonic.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response did not decode: %v", err)
	}
	if len(resp.Items) != 2 {
		t.Fatalf("expected a page of 2, got %d", len(resp.Items))
	}
	if resp.Items[0].CurrentBid != 10000 {
		t.Errorf("expected lowest bid first, got %.0f", resp.Items[0].CurrentBid)
	}
	if resp.TotalPages != 3 {
		t.Errorf("expected 3 pages of 2 over 5 items, got %d", resp.TotalPages)
	}
}

func TestSearchSourceFailure(t *testing.T) {
	ws := NewWebServer(&stubSource{fail: true}, nil, nil)
	rec, resp := doSearch(t, ws, "/api/items?content=vehicle")

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("got status %d", rec.Code)
	}
	if resp.Error == "" {
		t.Error("expected the load error message in the payload")
	}
	if len(resp.Items) != 0 {
		t.Errorf("failed load should carry no items, got %d", len(resp.Items))
	}
}

func TestSearchSetsSessionCookie(t *testing.T) {
	ws := NewWebServer(&stubSource{items: sampleVehicles(1)}, nil, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/items", nil)
	rec := httptest.NewRecorder()
	ws.Handler().ServeHTTP(rec, req)

	found := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == "sid" && c.Value != "" {
			found = true
		}
	}
	if !found {
		t.Error("expected a session cookie on the first visit")
	}
}

func TestFacetsVehicle(t *testing.T) {
	ws := NewWebServer(&stubSource{}, nil, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/facets?content=vehicle&category=Carros&brand=toyota", nil)
	rec := httptest.NewRecorder()
	ws.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d", rec.Code)
	}
	var resp FacetsResponse
	if err := sonic.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response did not decode: %v", err)
	}
	if resp.ContentType != types.ContentVehicle {
		t.Errorf("got content type %q", resp.ContentType)
	}
	if len(resp.Brands) == 0 || len(resp.Models) == 0 || len(resp.Colors) == 0 {
		t.Error("vehicle facets should list brands, models and colors")
	}
	if _, ok := resp.Bounds[string(types.FacetYear)]; !ok {
		t.Error("vehicle facets should carry the year bounds")
	}
}

func TestFacetsPropertyDefaults(t *testing.T) {
	ws := NewWebServer(&stubSource{}, nil, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/facets", nil)
	rec := httptest.NewRecorder()
	ws.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d", rec.Code)
	}
	var resp FacetsResponse
	if err := sonic.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response did not decode: %v", err)
	}
	if resp.ContentType != types.ContentProperty {
		t.Errorf("missing content should default to property, got %q", resp.ContentType)
	}
	if len(resp.Brands) != 0 {
		t.Error("property facets should not list vehicle brands")
	}
	if _, ok := resp.Bounds[string(types.FacetUsefulArea)]; !ok {
		t.Error("property facets should carry the useful area bounds")
	}
}

type recordingTracking struct {
	tracking.NoopTracking
	sessions  int
	searches  int
	changes   int
	lastPage  int
	lastFacet types.FacetKey
}

func (r *recordingTracking) TrackSession(_, _ string) {
	r.sessions++
}

func (r *recordingTracking) TrackSearch(_ string, _ *types.FilterState, _ types.SortOption, page, _ int) {
	r.searches++
	r.lastPage = page
}

func (r *recordingTracking) TrackFilterChange(_ string, facet types.FacetKey, _ int) {
	r.changes++
	r.lastFacet = facet
}

func TestSearchTracksTelemetry(t *testing.T) {
	trk := &recordingTracking{}
	ws := NewWebServer(&stubSource{items: sampleVehicles(5)}, trk, nil)

	doSearch(t, ws, "/api/items?content=vehicle")
	if trk.sessions != 1 {
		t.Fatalf("first visit should track a session, got %d", trk.sessions)
	}
	if trk.searches != 1 {
		t.Fatalf("expected 1 tracked search, got %d", trk.searches)
	}
	if trk.lastPage != 1 {
		t.Errorf("tracked page should be 1, got %d", trk.lastPage)
	}

	doSearch(t, ws, "/api/items?content=vehicle&brand=toyota&changed=brand")
	if trk.changes != 1 {
		t.Fatalf("expected 1 tracked filter change, got %d", trk.changes)
	}
	if trk.lastFacet != types.FacetBrand {
		t.Errorf("tracked facet should be brand, got %q", trk.lastFacet)
	}
}
