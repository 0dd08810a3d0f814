package server

import (
	"io"
	"net/http"
	"net/url"

	"github.com/bytedance/sonic"

	"github.com/arremate/leilao-finder/pkg/types"
	"github.com/arremate/leilao-finder/pkg/urlsync"
)

// SearchRequest is the decoded browse request: the full filter state plus
// sort and pagination. GET requests carry it in the query string using the
// URL synchronizer's parameter contract, POST requests as a JSON body.
type SearchRequest struct {
	Filters  types.FilterState `json:"filters"`
	Sort     types.SortOption  `json:"sort"`
	Page     int               `json:"page"`
	PageSize int               `json:"pageSize"`
}

func requestFromQuery(query url.Values) *SearchRequest {
	contentType := types.ContentType(query.Get("content"))
	if !contentType.Valid() {
		contentType = types.ContentProperty
	}
	state, sort, page := urlsync.DecodeQuery(query, contentType)
	return &SearchRequest{
		Filters: state,
		Sort:    sort,
		Page:    page,
	}
}

func requestFromBody(r *http.Request) (*SearchRequest, error) {
	sr := &SearchRequest{}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	if err := sonic.Unmarshal(body, sr); err != nil {
		return nil, err
	}
	if !sr.Filters.ContentType.Valid() {
		sr.Filters.ContentType = types.ContentProperty
	}
	if sort, ok := types.ParseSortOption(string(sr.Sort)); ok {
		sr.Sort = sort
	} else {
		sr.Sort = types.DefaultSort
	}
	if sr.Page < 1 {
		sr.Page = 1
	}
	return sr, nil
}

// GetSearchRequest resolves the request for either method.
func GetSearchRequest(r *http.Request) (*SearchRequest, error) {
	if r.Method == http.MethodGet {
		return requestFromQuery(r.URL.Query()), nil
	}
	return requestFromBody(r)
}
