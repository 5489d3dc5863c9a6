package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/artillio/boutique-api/internal/auth"
	"github.com/artillio/boutique-api/internal/db"
	"github.com/artillio/boutique-api/internal/models"
)

func setupRouter(t *testing.T) (http.Handler, *gorm.DB, *auth.TokenManager) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	tokens := auth.NewTokenManager("test-secret-at-least-32-bytes-long!!", "ArtillioBoutique", "ArtillioBoutiqueApp")
	return New(conn, tokens, zap.NewNop().Sugar()), conn, tokens
}

func request(t *testing.T, router http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoints(t *testing.T) {
	router, _, _ := setupRouter(t)
	for _, path := range []string{"/health", "/healthz"} {
		if w := request(t, router, http.MethodGet, path, "", ""); w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d", path, w.Code)
		}
	}
}

func TestPublicReadsNeedNoToken(t *testing.T) {
	router, _, _ := setupRouter(t)
	for _, path := range []string{"/api/clients", "/api/produits"} {
		if w := request(t, router, http.MethodGet, path, "", ""); w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d", path, w.Code)
		}
	}
}

func TestCommandesRequireAuth(t *testing.T) {
	router, _, _ := setupRouter(t)

	if w := request(t, router, http.MethodGet, "/api/commandes", "", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("no token: expected 401 got %d", w.Code)
	}
	if w := request(t, router, http.MethodGet, "/api/commandes", "not.a.token", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: expected 401 got %d", w.Code)
	}
}

func TestRoleGating(t *testing.T) {
	router, _, tokens := setupRouter(t)

	issue := func(role string) string {
		token, err := tokens.Issue(1, "user@artillio.com", role)
		if err != nil {
			t.Fatalf("issue token: %v", err)
		}
		return token
	}

	cases := []struct {
		name   string
		method string
		path   string
		role   string
		want   int
	}{
		{"viewer reads commandes", http.MethodGet, "/api/commandes", models.RoleViewer, http.StatusOK},
		{"viewer cannot create commande", http.MethodPost, "/api/commandes", models.RoleViewer, http.StatusForbidden},
		{"clients manager cannot create commande", http.MethodPost, "/api/commandes", models.RoleGestionnaireClients, http.StatusForbidden},
		{"commandes manager cannot create produit", http.MethodPost, "/api/produits", models.RoleGestionnaireCommandes, http.StatusForbidden},
		{"viewer cannot delete client", http.MethodDelete, "/api/clients/1", models.RoleViewer, http.StatusForbidden},
	}
	for _, tc := range cases {
		w := request(t, router, tc.method, tc.path, issue(tc.role), `{}`)
		if w.Code != tc.want {
			t.Fatalf("%s: expected %d got %d body=%s", tc.name, tc.want, w.Code, w.Body.String())
		}
		if tc.want == http.StatusForbidden && !strings.Contains(w.Body.String(), "acces_refuse") {
			t.Fatalf("%s: expected acces_refuse body=%s", tc.name, w.Body.String())
		}
	}
}

func TestAdminCreatesClientEndToEnd(t *testing.T) {
	router, conn, _ := setupRouter(t)

	hash, err := auth.HashPassword("Artillio2001.")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := models.User{Nom: "Admin", Prenom: "Root", Email: "admin@artillio.com", PasswordHash: hash, Role: models.RoleAdmin, IsActive: true}
	if err := conn.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	w := request(t, router, http.MethodPost, "/api/auth/login", "", `{"email":"admin@artillio.com","password":"Artillio2001."}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	var res struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode login: %v", err)
	}

	body := `{"nom":"Doe","prenom":"Jane","email":"jane@example.com"}`
	w = request(t, router, http.MethodPost, "/api/clients", res.Token, body)
	if w.Code != http.StatusCreated {
		t.Fatalf("create client: expected 201 got %d body=%s", w.Code, w.Body.String())
	}

	var count int64
	conn.Model(&models.Client{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 client persisted, got %d", count)
	}
}

func TestUnknownRouteIsJSON(t *testing.T) {
	router, _, _ := setupRouter(t)
	w := request(t, router, http.MethodGet, "/api/nexistepas", "", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "introuvable") {
		t.Fatalf("expected JSON error body, got %s", w.Body.String())
	}
}
