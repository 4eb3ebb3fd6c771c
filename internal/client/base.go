package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gophercloud/gophercloud/v2"
	"github.com/gophercloud/gophercloud/v2/pagination"
)

// okCodes is accepted by every call; the supplier API answers 200 for writes too.
var okCodes = []int{http.StatusOK, http.StatusCreated, http.StatusAccepted, http.StatusNoContent}

// Endpoint describes how to reach the supplier API.
type Endpoint struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// NewServiceClient creates a ServiceClient rooted at the API base URL. The
// bearer token, when set, is attached to every request.
func NewServiceClient(ep Endpoint) *gophercloud.ServiceClient {
	provider := &gophercloud.ProviderClient{
		IdentityEndpoint: ep.BaseURL,
	}
	provider.HTTPClient.Timeout = ep.Timeout
	sc := &gophercloud.ServiceClient{
		ProviderClient: provider,
		Endpoint:       gophercloud.NormalizeURL(ep.BaseURL),
	}
	SetToken(sc, ep.Token)
	return sc
}

// SetToken replaces the bearer token used by sc. An empty token removes it.
func SetToken(sc *gophercloud.ServiceClient, token string) {
	if token == "" {
		delete(sc.MoreHeaders, "Authorization")
		return
	}
	if sc.MoreHeaders == nil {
		sc.MoreHeaders = map[string]string{}
	}
	sc.MoreHeaders["Authorization"] = "Bearer " + token
}

// requestOpts returns fresh options carrying a request id.
func requestOpts() *gophercloud.RequestOpts {
	return &gophercloud.RequestOpts{
		OkCodes:     okCodes,
		MoreHeaders: map[string]string{"X-Request-ID": uuid.NewString()},
	}
}

// withCacheBuster appends the _t timestamp the API uses to defeat caches on GET.
func withCacheBuster(rawURL string, q url.Values) string {
	if q == nil {
		q = url.Values{}
	}
	q.Set("_t", strconv.FormatInt(time.Now().UnixMilli(), 10))
	return rawURL + "?" + q.Encode()
}

func getJSON(ctx context.Context, sc *gophercloud.ServiceClient, u string, q url.Values, out any) error {
	_, err := sc.Get(ctx, withCacheBuster(u, q), out, requestOpts())
	return translateErr(err)
}

func postJSON(ctx context.Context, sc *gophercloud.ServiceClient, u string, body, out any) error {
	_, err := sc.Post(ctx, u, body, out, requestOpts())
	return translateErr(err)
}

func putJSON(ctx context.Context, sc *gophercloud.ServiceClient, u string, body, out any) error {
	_, err := sc.Put(ctx, u, body, out, requestOpts())
	return translateErr(err)
}

func patchJSON(ctx context.Context, sc *gophercloud.ServiceClient, u string, body, out any) error {
	_, err := sc.Patch(ctx, u, body, out, requestOpts())
	return translateErr(err)
}

func deleteResource(ctx context.Context, sc *gophercloud.ServiceClient, u string) error {
	_, err := sc.Delete(ctx, u, requestOpts())
	return translateErr(err)
}

// ListParams are the query parameters of the paginated list endpoints.
type ListParams struct {
	Page      int
	Limit     int
	Search    string
	SortBy    string
	SortOrder string
}

func (p ListParams) values() url.Values {
	q := url.Values{}
	page, limit := p.Page, p.Limit
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 50
	}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.SortBy != "" {
		q.Set("sortBy", p.SortBy)
	}
	if p.SortOrder != "" {
		q.Set("sortOrder", p.SortOrder)
	}
	return q
}

// numberedPage is one page of a {data,total,page,limit} list response.
type numberedPage struct {
	pagination.PageResult
}

type pageMeta struct {
	Total int               `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
	Data  []json.RawMessage `json:"data"`
}

func (p numberedPage) meta() (pageMeta, error) {
	var m pageMeta
	err := p.ExtractInto(&m)
	return m, err
}

// IsEmpty reports whether the page holds no records.
func (p numberedPage) IsEmpty() (bool, error) {
	m, err := p.meta()
	if err != nil {
		return false, err
	}
	return len(m.Data) == 0, nil
}

// NextPageURL returns the URL of the following page, or "" on the last one.
func (p numberedPage) NextPageURL() (string, error) {
	m, err := p.meta()
	if err != nil {
		return "", err
	}
	if m.Limit <= 0 || len(m.Data) < m.Limit || m.Page*m.Limit >= m.Total {
		return "", nil
	}
	next := p.PageResult.URL
	q := next.Query()
	q.Set("page", strconv.Itoa(m.Page+1))
	q.Set("_t", strconv.FormatInt(time.Now().UnixMilli(), 10))
	next.RawQuery = q.Encode()
	return next.String(), nil
}

// GetBody returns the decoded response body.
func (p numberedPage) GetBody() any { return p.Body }

// listAll walks every page of a list endpoint.
func listAll[T any](ctx context.Context, sc *gophercloud.ServiceClient, u string, params ListParams) ([]T, error) {
	pager := pagination.NewPager(sc, withCacheBuster(u, params.values()), func(r pagination.PageResult) pagination.Page {
		return numberedPage{r}
	})
	pager.Headers = map[string]string{"X-Request-ID": uuid.NewString()}
	var out []T
	err := pager.EachPage(ctx, func(_ context.Context, page pagination.Page) (bool, error) {
		var body struct {
			Data []T `json:"data"`
		}
		if err := page.(numberedPage).ExtractInto(&body); err != nil {
			return false, err
		}
		out = append(out, body.Data...)
		return true, nil
	})
	if err != nil {
		return nil, translateErr(err)
	}
	return out, nil
}
