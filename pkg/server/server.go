package server

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/arremate/leilao-finder/pkg/common"
	"github.com/arremate/leilao-finder/pkg/results"
	"github.com/arremate/leilao-finder/pkg/source"
	"github.com/arremate/leilao-finder/pkg/store"
	"github.com/arremate/leilao-finder/pkg/tracking"
	"github.com/arremate/leilao-finder/pkg/types"
	"github.com/arremate/leilao-finder/pkg/urlsync"
)

var (
	noSearches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leilao_searches_total",
		Help: "The total number of processed item searches",
	})
	noFacetLoads = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leilao_facets_total",
		Help: "The total number of facet vocabulary loads",
	})
	noPageResets = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leilao_page_resets_total",
		Help: "The total number of out of range pages snapped back to the first page",
	})
)

// WebServer answers the browsing API. Every request builds its own filter
// store and result controller from the decoded request, so handlers stay
// stateless and concurrent requests never share mutable filter state.
type WebServer struct {
	Source   source.Source
	Tracking tracking.Tracking
	PageSize int
	Log      *slog.Logger
}

func NewWebServer(src source.Source, trk tracking.Tracking, log *slog.Logger) *WebServer {
	if trk == nil {
		trk = tracking.NoopTracking{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &WebServer{
		Source:   src,
		Tracking: trk,
		PageSize: results.DefaultPageSize,
		Log:      log,
	}
}

// SearchResponse pairs the result window with the applied state and the
// canonical query string, which is what a client writes to the address bar.
type SearchResponse struct {
	results.Snapshot
	Filters        types.FilterState `json:"filters"`
	Sort           types.SortOption  `json:"sort"`
	Page           int               `json:"page"`
	ActiveFilters  int               `json:"activeFilters"`
	CanonicalQuery string            `json:"canonicalQuery"`
}

// FacetsResponse lists the vocabularies the filter panel renders. Types and
// models narrow to the requested category and brand.
type FacetsResponse struct {
	ContentType types.ContentType            `json:"contentType"`
	Categories  []string                     `json:"categories"`
	Types       []string                     `json:"types"`
	Brands      []string                     `json:"brands,omitempty"`
	Models      []string                     `json:"models,omitempty"`
	Colors      []string                     `json:"colors,omitempty"`
	Formats     []string                     `json:"formats"`
	Origins     []string                     `json:"origins"`
	Places      []string                     `json:"places"`
	Bounds      map[string]types.RangeBounds `json:"bounds"`
}

func (ws *WebServer) Search(w http.ResponseWriter, r *http.Request, sessionId string) error {
	go noSearches.Inc()
	sr, err := GetSearchRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return err
	}

	pageSize := ws.PageSize
	if sr.PageSize > 0 {
		pageSize = sr.PageSize
	}

	filterStore := store.New(sr.Filters.ContentType, ws.Log)
	filterStore.SetFilters(sr.Filters)

	ctrl := results.NewController(filterStore, ws.Source, pageSize, ws.Log)
	page := sr.Page
	ctrl.PageReset = func(snapped int) {
		go noPageResets.Inc()
		page = snapped
	}
	ctrl.Start(r.Context())
	defer ctrl.Stop()
	ctrl.SetSort(r.Context(), sr.Sort)
	if sr.Page > 1 {
		ctrl.SetPage(r.Context(), sr.Page, 0)
	}

	snapshot := ctrl.Snapshot()
	state := filterStore.Filters()
	if snapshot.Error != "" {
		w.Header().Set("Access-Control-Allow-Origin", r.Header.Get("Origin"))
		return common.WriteJson(w, http.StatusBadGateway, SearchResponse{
			Snapshot: snapshot,
			Filters:  state,
			Sort:     sr.Sort,
			Page:     snapshot.CurrentPage,
		})
	}

	if !common.HasSession(r) {
		ws.Tracking.TrackSession(sessionId, r.UserAgent())
	}
	ws.Tracking.TrackSearch(sessionId, &state, sr.Sort, page, snapshot.Statistics.Total)
	if changed := r.URL.Query().Get("changed"); changed != "" {
		// Clients append the facet they just touched so filter interaction
		// can be attributed without a second round trip.
		ws.Tracking.TrackFilterChange(sessionId, types.FacetKey(changed), filterStore.ActiveFilters())
	}

	w.Header().Set("Access-Control-Allow-Origin", r.Header.Get("Origin"))
	w.Header().Set("Cache-Control", "public, stale-while-revalidate=120")
	return common.WriteJson(w, http.StatusOK, SearchResponse{
		Snapshot:       snapshot,
		Filters:        state,
		Sort:           sr.Sort,
		Page:           snapshot.CurrentPage,
		ActiveFilters:  filterStore.ActiveFilters(),
		CanonicalQuery: urlsync.EncodeQuery(&state, sr.Sort, snapshot.CurrentPage).Encode(),
	})
}

func (ws *WebServer) Facets(w http.ResponseWriter, r *http.Request, sessionId string) error {
	go noFacetLoads.Inc()
	query := r.URL.Query()
	contentType := types.ContentType(query.Get("content"))
	if !contentType.Valid() {
		contentType = types.ContentProperty
	}
	category := query.Get("category")
	if category == "" {
		category = types.DefaultCategory
	}

	resp := FacetsResponse{
		ContentType: contentType,
		Categories:  types.CategoriesFor(contentType),
		Types:       ws.Source.GetOptionsForCategory(category, contentType),
		Formats:     types.FormatOptions,
		Origins:     types.OriginOptions,
		Places:      types.PlaceOptions,
		Bounds: map[string]types.RangeBounds{
			string(types.FacetPrice): types.PriceBounds,
		},
	}
	switch contentType {
	case types.ContentVehicle:
		resp.Brands = types.VehicleBrands
		resp.Colors = types.VehicleColors
		resp.Bounds[string(types.FacetYear)] = types.YearBounds
		if brand := query.Get("brand"); brand != "" {
			resp.Models = types.ModelsFor(brand)
		}
	case types.ContentProperty:
		resp.Bounds[string(types.FacetUsefulArea)] = types.UsefulAreaBounds
	}

	w.Header().Set("Access-Control-Allow-Origin", r.Header.Get("Origin"))
	w.Header().Set("Cache-Control", "public, max-age=600")
	return common.WriteJson(w, http.StatusOK, resp)
}

// Handler wires the public routes.
func (ws *WebServer) Handler() *http.ServeMux {
	srv := http.NewServeMux()

	srv.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	srv.HandleFunc("/api/items", common.JsonHandler(ws.Search))
	srv.HandleFunc("/api/facets", common.JsonHandler(ws.Facets))
	srv.Handle("/metrics", promhttp.Handler())

	return srv
}
