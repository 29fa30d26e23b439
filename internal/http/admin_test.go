package httpserver

import (
	"net/http"
	"net/url"
	"testing"
)

func TestAdminStats(t *testing.T) {
	srv := buildTestServer(t)

	owner := registerUser(t, srv, "Olga Owner", "olga@example.com", "secret-pass", "STORE")
	registerUser(t, srv, "Sam Shopper", "sam@example.com", "secret-pass", "USER")
	ownerToken := loginUser(t, srv, "olga@example.com", "secret-pass")
	userToken := loginUser(t, srv, "sam@example.com", "secret-pass")

	store := createStore(t, srv, ownerToken, "Corner Shop", owner.ID)
	rec := doJSON(t, srv, http.MethodPost, "/ratings", userToken, map[string]interface{}{
		"store_id": store.ID, "rating": 5,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("submit rating: status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, srv, http.MethodGet, "/admin/stats", userToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("stats status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var stats adminStatsResponse
	decodeBody(t, rec, &stats)
	if stats.TotalUsers != 2 || stats.TotalStores != 1 || stats.TotalRatings != 1 {
		t.Fatalf("stats = %+v, want 2 users, 1 store, 1 rating", stats)
	}
}

func TestAdminListUsers(t *testing.T) {
	srv := buildTestServer(t)

	owner := registerUser(t, srv, "Olga Owner", "olga@example.com", "secret-pass", "STORE")
	registerUser(t, srv, "Sam Shopper", "sam@example.com", "secret-pass", "USER")
	ownerToken := loginUser(t, srv, "olga@example.com", "secret-pass")
	userToken := loginUser(t, srv, "sam@example.com", "secret-pass")

	store := createStore(t, srv, ownerToken, "Corner Shop", owner.ID)
	for _, pair := range []struct {
		token string
		value int
	}{{userToken, 3}, {ownerToken, 4}} {
		rec := doJSON(t, srv, http.MethodPost, "/ratings", pair.token, map[string]interface{}{
			"store_id": store.ID, "rating": pair.value,
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("submit rating: status = %d, body = %s", rec.Code, rec.Body.String())
		}
	}

	rec := doJSON(t, srv, http.MethodGet, "/admin/users?role=STORE", userToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list users status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var users []adminUserResponse
	decodeBody(t, rec, &users)
	if len(users) != 1 {
		t.Fatalf("STORE users count = %d, want 1", len(users))
	}
	if users[0].Email != "olga@example.com" {
		t.Fatalf("STORE user = %+v", users[0])
	}
	if users[0].AvgRating == nil || *users[0].AvgRating != 3.5 {
		t.Fatalf("avg_rating = %v, want 3.5", users[0].AvgRating)
	}

	rec = doJSON(t, srv, http.MethodGet, "/admin/users?role=USER", userToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list users status = %d, body = %s", rec.Code, rec.Body.String())
	}
	users = nil
	decodeBody(t, rec, &users)
	if len(users) != 1 {
		t.Fatalf("USER users count = %d, want 1", len(users))
	}
	if users[0].AvgRating != nil {
		t.Fatalf("USER row carries avg_rating = %v, want absent", *users[0].AvgRating)
	}

	rec = doJSON(t, srv, http.MethodGet, "/admin/users?name=olga", userToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("name filter status = %d, body = %s", rec.Code, rec.Body.String())
	}
	users = nil
	decodeBody(t, rec, &users)
	if len(users) != 1 || users[0].Name != "Olga Owner" {
		t.Fatalf("name filter rows = %+v", users)
	}

	rec = doJSON(t, srv, http.MethodGet, "/admin/users?role=WIZARD", userToken, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid role status = %d, want 400", rec.Code)
	}
}

func TestAdminCreateStoreValidation(t *testing.T) {
	srv := buildTestServer(t)
	owner := registerUser(t, srv, "Olga Owner", "olga@example.com", "secret-pass", "STORE")
	token := loginUser(t, srv, "olga@example.com", "secret-pass")

	rec := doJSON(t, srv, http.MethodPost, "/admin/stores", token, map[string]string{
		"name": "No Owner Shop", "email": "shop@stores.test", "address": "2 Market Square",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing owner status = %d, want 400, body = %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, srv, http.MethodPost, "/admin/stores", token, map[string]string{
		"name":     "Orphan Shop",
		"email":    "orphan@stores.test",
		"address":  "2 Market Square",
		"owner_id": "b7a3f9d0-0000-0000-0000-000000000000",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown owner status = %d, want 400, body = %s", rec.Code, rec.Body.String())
	}

	store := createStore(t, srv, token, "Corner Shop", owner.ID)
	if store.OwnerID != owner.ID || store.AverageRating != 0 {
		t.Fatalf("created store = %+v", store)
	}
}

func TestAdminCreateUser(t *testing.T) {
	srv := buildTestServer(t)
	registerUser(t, srv, "Olga Owner", "olga@example.com", "secret-pass", "STORE")
	token := loginUser(t, srv, "olga@example.com", "secret-pass")

	rec := doJSON(t, srv, http.MethodPost, "/admin/users", token, map[string]string{
		"name":     "Alan Admin",
		"email":    "alan@example.com",
		"password": "secret-pass",
		"address":  "10 Civic Plaza",
		"role":     "ADMIN",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create user status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var created userResponse
	decodeBody(t, rec, &created)
	if created.Role != "ADMIN" || created.Email != "alan@example.com" {
		t.Fatalf("created user = %+v", created)
	}

	loginUser(t, srv, "alan@example.com", "secret-pass")

	rec = doJSON(t, srv, http.MethodPost, "/admin/users", token, map[string]string{
		"name":     "Dup Admin",
		"email":    "alan@example.com",
		"password": "secret-pass",
		"role":     "ADMIN",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate email status = %d, want 400", rec.Code)
	}
}

func TestBuildUserFilters(t *testing.T) {
	filters, err := buildUserFilters(url.Values{})
	if err != nil {
		t.Fatalf("empty query: %v", err)
	}
	if filters.Name != nil || filters.Email != nil || filters.Address != nil || filters.Role != nil {
		t.Fatalf("empty query produced filters %+v", filters)
	}

	filters, err = buildUserFilters(url.Values{
		"name":    {"  olga "},
		"email":   {"olga@example.com"},
		"address": {"market"},
		"role":    {"STORE"},
	})
	if err != nil {
		t.Fatalf("full query: %v", err)
	}
	if filters.Name == nil || *filters.Name != "olga" {
		t.Fatalf("name filter = %v, want trimmed olga", filters.Name)
	}
	if filters.Role == nil || string(*filters.Role) != "STORE" {
		t.Fatalf("role filter = %v", filters.Role)
	}

	// Blank values fall away rather than matching nothing.
	filters, err = buildUserFilters(url.Values{"name": {"   "}})
	if err != nil {
		t.Fatalf("blank name: %v", err)
	}
	if filters.Name != nil {
		t.Fatalf("blank name produced filter %q", *filters.Name)
	}

	if _, err := buildUserFilters(url.Values{"role": {"WIZARD"}}); err == nil {
		t.Fatalf("invalid role accepted")
	}
}

func FuzzBuildUserFilters(f *testing.F) {
	seeds := []string{
		"name=olga&role=STORE",
		"role=wizard",
		"email=%zz",
		"",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, raw string) {
		values, err := url.ParseQuery(raw)
		if err != nil {
			return
		}
		_, _ = buildUserFilters(values)
	})
}
