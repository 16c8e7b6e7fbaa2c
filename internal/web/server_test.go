package web

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supplyline-web/server/internal/cart"
	"github.com/supplyline-web/server/internal/catalog"
	"github.com/supplyline-web/server/internal/chat"
	"github.com/supplyline-web/server/internal/company"
	"github.com/supplyline-web/server/internal/core"
	"github.com/supplyline-web/server/internal/feedback"
	"github.com/supplyline-web/server/internal/order"
	"github.com/supplyline-web/server/internal/session"
	"github.com/supplyline-web/server/internal/upstream"
	"github.com/supplyline-web/server/internal/users"
)

// fakeCommander is an in-memory stand-in for the session store's redis
// commands.
type fakeCommander struct {
	data map[string]string
}

func newFakeCommander() *fakeCommander {
	return &fakeCommander{data: make(map[string]string)}
}

func (f *fakeCommander) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeCommander) Get(ctx context.Context, key string) *redis.StringCmd {
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeCommander) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		delete(f.data, k)
		n++
	}
	return redis.NewIntResult(n, nil)
}

func (f *fakeCommander) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	_, ok := f.data[key]
	return redis.NewBoolResult(ok, nil)
}

// gateway spins up the full router against a stub marketplace API.
func gateway(t *testing.T, marketplace http.HandlerFunc) *httptest.Server {
	t.Helper()

	stub := httptest.NewServer(marketplace)
	t.Cleanup(stub.Close)

	api := upstream.New(upstream.Config{BaseURL: stub.URL, Timeout: 2})
	carts := cart.NewStore()

	srv := NewServer(Deps{
		Env:       core.Testing,
		Sessions:  session.NewStore(newFakeCommander(), time.Hour),
		Carts:     carts,
		Catalog:   catalog.NewService(api),
		Orders:    order.NewService(api, carts),
		Companies: company.NewService(api),
		Feedback:  feedback.NewService(api),
		Users:     users.NewService(api),
		Hub:       chat.NewHub(nil),
		History:   chat.NewHistoryService(api, nil),
	})

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func client(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func postJSON(t *testing.T, c *http.Client, url string, body any) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := c.Post(url, "application/json", bytes.NewReader(b))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// login stubs cover the marketplace auth endpoint for one canned user.
func loginStub(role string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/users/login" {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprintf(w, `{"token":"tok-1","user":{"_id":"u-1","name":"Priya","role":%q}}`, role)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}
}

func TestGuardedViewWithoutSessionRedirectsToLogin(t *testing.T) {
	ts := gateway(t, loginStub("Consumer"))

	resp, err := http.Get(ts.URL + "/consumerdashboard")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var body map[string]string
	decode(t, resp, &body)
	assert.Equal(t, "/login", body["redirect"])
}

func TestGuardedViewWithWrongRoleIsForbidden(t *testing.T) {
	ts := gateway(t, loginStub("Consumer"))
	c := client(t)

	resp := postJSON(t, c, ts.URL+"/login", users.Credentials{Email: "priya@example.com", Password: "secret1", Role: "Consumer"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// A Consumer never reaches the Business dashboard.
	got, err := c.Get(ts.URL + "/buyerdashboard")
	require.NoError(t, err)
	defer got.Body.Close()
	assert.Equal(t, http.StatusForbidden, got.StatusCode)
}

func TestLoginThenDashboard(t *testing.T) {
	ts := gateway(t, loginStub("Consumer"))
	c := client(t)

	resp := postJSON(t, c, ts.URL+"/login", users.Credentials{Email: "priya@example.com", Password: "secret1", Role: "Consumer"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var login map[string]string
	decode(t, resp, &login)
	assert.Equal(t, "/consumerdashboard", login["redirect"])

	got, err := c.Get(ts.URL + "/consumerdashboard")
	require.NoError(t, err)
	defer got.Body.Close()
	require.Equal(t, http.StatusOK, got.StatusCode)

	var dash map[string]string
	decode(t, got, &dash)
	assert.Equal(t, "Priya", dash["name"])
	assert.Equal(t, "Consumer", dash["role"])
}

func TestCompanyListSearchFilters(t *testing.T) {
	ts := gateway(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/companies/approved", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"_id":"1","name":"Acme"},{"_id":"2","name":"Acme Sub"},{"_id":"3","name":"Zenith"}]`))
	})

	resp, err := http.Get(ts.URL + "/companylist?search=acme")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body struct {
		Companies []catalog.Company `json:"companies"`
	}
	decode(t, resp, &body)
	require.Len(t, body.Companies, 2)
	assert.Equal(t, "Acme", body.Companies[0].Name)
	assert.Equal(t, "Acme Sub", body.Companies[1].Name)
}

func TestCartToOrderPipeline(t *testing.T) {
	var placed order.Submission
	ts := gateway(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/users/login":
			loginStub("Consumer")(w, r)
		case r.URL.Path == "/api/orders" && r.Method == http.MethodPost:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&placed))
			w.WriteHeader(http.StatusCreated)
		case r.URL.Path == "/api/orders" && r.Method == http.MethodGet:
			assert.Equal(t, "Priya", r.URL.Query().Get("buyerName"))
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode([]order.Order{{
				ID: "o-1", BuyerName: "Priya", Status: order.StatusPending,
				TotalAmount: placed.TotalAmount, CreatedAt: time.Now(),
			}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	c := client(t)

	resp := postJSON(t, c, ts.URL+"/login", users.Credentials{Email: "priya@example.com", Password: "secret1", Role: "Consumer"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	a := catalog.Product{ID: "a", Name: "A", Price: decimal.NewFromInt(100)}
	b := catalog.Product{ID: "b", Name: "B", Price: decimal.NewFromInt(50)}
	postJSON(t, c, ts.URL+"/cart/items", a)
	postJSON(t, c, ts.URL+"/cart/items", a)
	postJSON(t, c, ts.URL+"/cart/items", b)

	resp = postJSON(t, c, ts.URL+"/orders", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	assert.True(t, placed.TotalAmount.Equal(decimal.NewFromInt(250)), "submitted totalAmount must be 250, got %s", placed.TotalAmount)
	assert.Equal(t, order.StatusPending, placed.Status)
	assert.Equal(t, "Priya", placed.BuyerName)

	// The cart is discarded after a placed order.
	got, err := c.Get(ts.URL + "/cart")
	require.NoError(t, err)
	defer got.Body.Close()
	var cartBody struct {
		Items []cart.Line `json:"items"`
	}
	decode(t, got, &cartBody)
	assert.Empty(t, cartBody.Items)

	// The consumer's order list shows the Pending order with the same total.
	list, err := c.Get(ts.URL + "/consumer-orders")
	require.NoError(t, err)
	defer list.Body.Close()
	var orders struct {
		Orders []order.Order `json:"orders"`
	}
	decode(t, list, &orders)
	require.Len(t, orders.Orders, 1)
	assert.Equal(t, order.StatusPending, orders.Orders[0].Status)
	assert.True(t, orders.Orders[0].TotalAmount.Equal(decimal.NewFromInt(250)))
}

func TestOrderSubmitEmptyCartRejected(t *testing.T) {
	ts := gateway(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no marketplace call expected for an empty cart")
	})
	c := client(t)

	resp := postJSON(t, c, ts.URL+"/orders", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestOrderStatusRejectsUnknownTarget(t *testing.T) {
	ts := gateway(t, loginStub("Business"))
	c := client(t)

	resp := postJSON(t, c, ts.URL+"/login", users.Credentials{Email: "arun@example.com", Password: "secret1", Role: "Business"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	b, _ := json.Marshal(map[string]string{"status": "Teleported"})
	req, err := http.NewRequest(http.MethodPut, ts.URL+"/orders/o-1/status", bytes.NewReader(b))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	got, err := c.Do(req)
	require.NoError(t, err)
	defer got.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, got.StatusCode)
}

func TestFailedStatusUpdateSurfacesBanner(t *testing.T) {
	ts := gateway(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/users/login" {
			loginStub("Business")(w, r)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	})
	c := client(t)

	resp := postJSON(t, c, ts.URL+"/login", users.Credentials{Email: "arun@example.com", Password: "secret1", Role: "Business"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	b, _ := json.Marshal(map[string]string{"status": "Shipped"})
	req, err := http.NewRequest(http.MethodPut, ts.URL+"/orders/o-1/status", bytes.NewReader(b))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	got, err := c.Do(req)
	require.NoError(t, err)
	defer got.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, got.StatusCode)
	var body map[string]string
	decode(t, got, &body)
	assert.NotEmpty(t, body["error"])
}

func TestLogoutClearsSessionAndCart(t *testing.T) {
	ts := gateway(t, loginStub("Consumer"))
	c := client(t)

	resp := postJSON(t, c, ts.URL+"/login", users.Credentials{Email: "priya@example.com", Password: "secret1", Role: "Consumer"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	postJSON(t, c, ts.URL+"/cart/items", catalog.Product{ID: "a", Name: "A", Price: decimal.NewFromInt(100)})

	resp = postJSON(t, c, ts.URL+"/logout", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	got, err := c.Get(ts.URL + "/consumerdashboard")
	require.NoError(t, err)
	defer got.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, got.StatusCode)
}
