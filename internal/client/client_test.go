package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/gophercloud/gophercloud/v2"
	"github.com/stretchr/testify/require"
)

// newTestClient returns a ServiceClient pointing to a test server served by h.
func newTestClient(t *testing.T, h http.Handler) *gophercloud.ServiceClient {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return NewServiceClient(Endpoint{BaseURL: ts.URL, Token: "tok", Timeout: 5 * time.Second})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// request records what a handler saw so tests can assert after the call.
type request struct {
	method, auth, requestID, cacheBuster, search string
}

func record(r *http.Request) request {
	q := r.URL.Query()
	return request{
		method:      r.Method,
		auth:        r.Header.Get("Authorization"),
		requestID:   r.Header.Get("X-Request-ID"),
		cacheBuster: q.Get("_t"),
		search:      q.Get("search"),
	}
}

func TestListUsersWalksPages(t *testing.T) {
	var seen []string
	var reqs []request
	mux := http.NewServeMux()
	mux.HandleFunc("/api/users", func(w http.ResponseWriter, r *http.Request) {
		reqs = append(reqs, record(r))
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		seen = append(seen, r.URL.Query().Get("page"))
		data := []User{{ID: "u" + strconv.Itoa(page*2-1)}, {ID: "u" + strconv.Itoa(page*2)}}
		if page == 3 {
			data = data[:1]
		}
		writeJSON(w, http.StatusOK, map[string]any{"data": data, "total": 5, "page": page, "limit": 2})
	})
	uc := NewUsersClient(newTestClient(t, mux))

	users, err := uc.ListUsers(context.Background(), ListParams{Limit: 2, Search: "a"})
	require.NoError(t, err)
	require.Equal(t, []string{"1", "2", "3"}, seen)
	require.Len(t, users, 5)
	require.Equal(t, "u5", users[4].ID)
	for _, r := range reqs {
		require.Equal(t, "Bearer tok", r.auth)
		require.NotEmpty(t, r.requestID)
		require.NotEmpty(t, r.cacheBuster)
		require.Equal(t, "a", r.search)
	}
}

func TestListVendorsSendsRequestID(t *testing.T) {
	var reqs []request
	mux := http.NewServeMux()
	mux.HandleFunc("/api/vendors", func(w http.ResponseWriter, r *http.Request) {
		reqs = append(reqs, record(r))
		writeJSON(w, http.StatusOK, map[string]any{"data": []Vendor{{ID: "v1"}}, "total": 1, "page": 1, "limit": 50})
	})
	vc := NewVendorsClient(newTestClient(t, mux))
	_, err := vc.ListVendors(context.Background(), ListParams{})
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	require.NotEmpty(t, reqs[0].requestID)
}

func TestListStopsOnEmptyPage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/vendors", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"data": []Vendor{}, "total": 0, "page": 1, "limit": 50})
	})
	vc := NewVendorsClient(newTestClient(t, mux))
	vendors, err := vc.ListVendors(context.Background(), ListParams{})
	require.NoError(t, err)
	require.Empty(t, vendors)
}

func TestUnauthorizedIsSessionExpired(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/bookings/b1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "jwt expired"})
	})
	bc := NewBookingsClient(newTestClient(t, mux))
	_, err := bc.GetBooking(context.Background(), "b1")
	require.ErrorIs(t, err, ErrSessionExpired)
}

func TestValidationErrorsAreJoined(t *testing.T) {
	mux := http.NewServeMux()
	var method string
	mux.HandleFunc("/api/users/u1", func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"message": "invalid",
			"errors": map[string][]string{
				"name":  {"name is required"},
				"email": {"email is invalid", "email is taken"},
			},
		})
	})
	uc := NewUsersClient(newTestClient(t, mux))
	_, err := uc.UpdateUser(context.Background(), "u1", UpdateUserOpts{Email: "x"})
	require.Equal(t, http.MethodPut, method)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	require.Equal(t, "email is invalid, email is taken, name is required", apiErr.Message)
}

func TestServerErrorMessage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/vendors/v1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "database down"})
	})
	mux.HandleFunc("/api/vendors/v2", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "oops", http.StatusBadGateway)
	})
	vc := NewVendorsClient(newTestClient(t, mux))

	err := vc.DeleteVendor(context.Background(), "v1")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "database down", apiErr.Message)

	err = vc.DeleteVendor(context.Background(), "v2")
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "server error: 502", apiErr.Message)
}

func TestNetworkError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()
	uc := NewUsersClient(NewServiceClient(Endpoint{BaseURL: url, Timeout: time.Second}))
	_, err := uc.GetUser(context.Background(), "u1")
	require.ErrorIs(t, err, ErrNetwork)
}

func TestBulkUpdateBookingStatus(t *testing.T) {
	var got struct {
		IDs    []string `json:"ids"`
		Status string   `json:"status"`
	}
	var method string
	var decodeErr error
	mux := http.NewServeMux()
	mux.HandleFunc("/api/bookings/bulk-update-status", func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		decodeErr = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusNoContent)
	})
	bc := NewBookingsClient(newTestClient(t, mux))
	err := bc.BulkUpdateBookingStatus(context.Background(), []string{"b1", "b2"}, BookingConfirmed)
	require.NoError(t, err)
	require.Equal(t, http.MethodPost, method)
	require.NoError(t, decodeErr)
	require.Equal(t, []string{"b1", "b2"}, got.IDs)
	require.Equal(t, "confirmed", got.Status)

	require.NoError(t, bc.BulkUpdateBookingStatus(context.Background(), nil, BookingConfirmed))
}

func TestCatalogEndpoints(t *testing.T) {
	var embed string
	mux := http.NewServeMux()
	mux.HandleFunc("/supplier/event-types", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"data": map[string]any{
			"event_types": []EventType{{ID: "e1", Name: "Wedding"}},
		}})
	})
	mux.HandleFunc("/supplier/supplier-services", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			embed = r.URL.Query().Get("embed")
			writeJSON(w, http.StatusOK, map[string]any{"data": []SupplierService{{
				ID: "s1", ServiceID: "3", Prices: []ServicePrice{{Price: 20, Type: 4}},
			}}})
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		}
	})
	cc := NewCatalogClient(newTestClient(t, mux))

	types, err := cc.ListEventTypes(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Wedding", types[0].Name)

	services, err := cc.ListSupplierServices(context.Background())
	require.NoError(t, err)
	require.Equal(t, "prices", embed)
	require.Equal(t, "Catering", ServiceTypeLabels[services[0].ServiceID])
	require.Equal(t, "Per Person", PriceTypeLabels[services[0].Prices[0].Type])

	require.NoError(t, cc.DeleteSupplierServices(context.Background()))
}

func TestLoginInstallsToken(t *testing.T) {
	var loginAuth string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		loginAuth = r.Header.Get("Authorization")
		writeJSON(w, http.StatusOK, map[string]any{
			"status": true,
			"data":   map[string]any{"token": "fresh", "user": AuthUser{ID: "1", Email: "a@b.c"}},
		})
	})
	mux.HandleFunc("/api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer fresh" {
			writeJSON(w, http.StatusUnauthorized, nil)
			return
		}
		writeJSON(w, http.StatusOK, AuthUser{ID: "1", Email: "a@b.c"})
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()
	sc := NewServiceClient(Endpoint{BaseURL: ts.URL})
	ac := NewAuthClient(sc)

	_, err := ac.Me(context.Background())
	require.True(t, errors.Is(err, ErrSessionExpired))

	sess, err := ac.Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	require.Equal(t, "fresh", sess.Token)
	require.Empty(t, loginAuth)

	me, err := ac.Me(context.Background())
	require.NoError(t, err)
	require.Equal(t, "a@b.c", me.Email)
}

func TestTokenCache(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c := &TokenCache{Dir: filepath.Join(t.TempDir(), "cache"), now: func() time.Time { return now }}
	api := "http://localhost:3001"

	_, ok := c.Load(api)
	require.False(t, ok)

	require.NoError(t, c.Save(api, "a@b.c", "tok", time.Time{}))
	tok, ok := c.Load(api)
	require.True(t, ok)
	require.Equal(t, "tok", tok)

	_, ok = c.Load("http://other:3001")
	require.False(t, ok, "tokens are keyed by host")

	require.NoError(t, c.Save(api, "a@b.c", "tok", now.Add(4*time.Minute)))
	_, ok = c.Load(api)
	require.False(t, ok, "tokens inside the expiry margin are ignored")

	require.NoError(t, c.Save(api, "a@b.c", "tok", now.Add(time.Hour)))
	c.Clear(api)
	_, ok = c.Load(api)
	require.False(t, ok)
}

func TestServiceClientsShareLogin(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"data": map[string]any{"token": "shared"}})
	})
	var auth string
	mux.HandleFunc("/api/users/u1", func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		writeJSON(w, http.StatusOK, User{ID: "u1", Name: "Ada"})
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	clients := NewServiceClients(Endpoint{BaseURL: ts.URL, Timeout: 5 * time.Second})
	_, err := clients.Auth.Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)

	u, err := clients.Users.GetUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Equal(t, "Ada", u.Name)
	require.Equal(t, "Bearer shared", auth)
}

func TestBusinessProfile(t *testing.T) {
	var sent map[string]any
	var decodeErr error
	mux := http.NewServeMux()
	mux.HandleFunc("/supplier/profile/get-business-info", func(w http.ResponseWriter, r *http.Request) {
		str := func(s string) *string { return &s }
		writeJSON(w, http.StatusOK, map[string]any{"data": map[string]any{"business_info": []BusinessInfoItem{
			{Key: "cancellation_policy", Value: str("48h notice")},
			{Key: "minimum_lead_time_days", Value: str("3")},
			{Key: "minimum_order_value_aed", Value: str("1500.5")},
			{Key: "social_media_profiles", Value: str(`{"instagram":"@bloom"}`)},
			{Key: "bank_details", Value: nil},
			{Key: "unknown", Value: str("x")},
		}}})
	})
	mux.HandleFunc("/supplier/profile/update-business-info", func(w http.ResponseWriter, r *http.Request) {
		decodeErr = json.NewDecoder(r.Body).Decode(&sent)
		writeJSON(w, http.StatusOK, map[string]any{"message": "ok"})
	})
	pc := NewProfileClient(newTestClient(t, mux))

	p, err := pc.GetBusinessProfile(context.Background())
	require.NoError(t, err)
	require.Equal(t, "48h notice", p.CancellationPolicy)
	require.Equal(t, 3, p.MinimumLeadTimeDays)
	require.Equal(t, 1500.5, p.MinimumOrderValueAED)
	require.Equal(t, "@bloom", p.SocialMediaProfiles.Instagram)
	require.Empty(t, p.BankDetails)

	p.RepeatRate = "60%"
	require.NoError(t, pc.UpdateBusinessProfile(context.Background(), p))
	require.NoError(t, decodeErr)
	require.Equal(t, "60%", sent["repeat_rate"])
	require.Equal(t, float64(3), sent["minimum_lead_time_days"])
	require.Equal(t, map[string]any{"instagram": "@bloom"}, sent["social_media_profiles"])
}

func TestDashboardAnalytics(t *testing.T) {
	var queries []url.Values
	mux := http.NewServeMux()
	mux.HandleFunc("/api/analytics/dashboard", func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, r.URL.Query())
		if r.URL.Query().Get("startDate") != "" {
			writeJSON(w, http.StatusOK, map[string]any{"data": Analytics{TotalUsers: 7}})
			return
		}
		writeJSON(w, http.StatusOK, Analytics{TotalUsers: 42, TopEvents: []TopEvent{{Title: "Gala", Bookings: 9}}})
	})
	ac := NewAnalyticsClient(newTestClient(t, mux))

	all, err := ac.DashboardAnalytics(context.Background(), DateRange{})
	require.NoError(t, err)
	require.Equal(t, 42, all.TotalUsers)
	require.Equal(t, "Gala", all.TopEvents[0].Title)

	end := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	week, err := ac.DashboardAnalytics(context.Background(), DateRange{Start: end.AddDate(0, 0, -7), End: end})
	require.NoError(t, err)
	require.Equal(t, 7, week.TotalUsers)

	require.Len(t, queries, 2)
	require.Empty(t, queries[0].Get("startDate"))
	require.Equal(t, "2026-02-22T10:00:00.000Z", queries[1].Get("startDate"))
	require.Equal(t, "2026-03-01T10:00:00.000Z", queries[1].Get("endDate"))
}

func TestResetAndChangePassword(t *testing.T) {
	bodies := map[string]map[string]string{}
	mux := http.NewServeMux()
	for _, path := range []string{"/api/auth/reset-password", "/api/auth/change-password"} {
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			var b map[string]string
			_ = json.NewDecoder(r.Body).Decode(&b)
			bodies[r.URL.Path] = b
			w.WriteHeader(http.StatusNoContent)
		})
	}
	ac := NewAuthClient(newTestClient(t, mux))
	req := PasswordChange{Current: "old-secret", New: "new-secret", Confirm: "new-secret"}

	require.NoError(t, ac.ResetPassword(context.Background(), req))
	require.Equal(t, map[string]string{
		"current_password":      "old-secret",
		"password":              "new-secret",
		"password_confirmation": "new-secret",
	}, bodies["/api/auth/reset-password"])

	require.NoError(t, ac.ChangePassword(context.Background(), req))
	require.Equal(t, "new-secret", bodies["/api/auth/change-password"]["newPassword"])

	err := ac.ResetPassword(context.Background(), PasswordChange{Current: "x", New: "short", Confirm: "short"})
	require.ErrorContains(t, err, "at least 8 characters")
	err = ac.ResetPassword(context.Background(), PasswordChange{Current: "x", New: "longenough", Confirm: "different"})
	require.ErrorContains(t, err, "passwords must match")
	require.Len(t, bodies, 2)
}
