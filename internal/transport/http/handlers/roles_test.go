package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/onmind/role-service/internal/core/domain"
	"github.com/onmind/role-service/internal/repository"
	"github.com/onmind/role-service/internal/usecase"
)

type memoryRoleRepo struct {
	mu     sync.Mutex
	roles  map[int64]domain.Role
	nextID int64
}

func newMemoryRoleRepo() *memoryRoleRepo {
	return &memoryRoleRepo{roles: make(map[int64]domain.Role), nextID: 1}
}

func (r *memoryRoleRepo) Create(ctx context.Context, role *domain.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.roles {
		if existing.Name == role.Name {
			return repository.ErrDuplicate
		}
	}

	role.ID = r.nextID
	r.nextID++
	r.roles[role.ID] = *role
	return nil
}

func (r *memoryRoleRepo) Update(ctx context.Context, role domain.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.roles[role.ID]; !ok {
		return repository.ErrNotFound
	}
	r.roles[role.ID] = role
	return nil
}

func (r *memoryRoleRepo) GetByID(ctx context.Context, id int64) (*domain.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	role, ok := r.roles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &role, nil
}

func (r *memoryRoleRepo) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, role := range r.roles {
		if role.Name == name {
			copied := role
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memoryRoleRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	_, err := r.GetByName(ctx, name)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (r *memoryRoleRepo) List(ctx context.Context) ([]domain.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Role, 0, len(r.roles))
	for _, role := range r.roles {
		out = append(out, role)
	}
	return out, nil
}

func (r *memoryRoleRepo) SearchByName(ctx context.Context, pattern string) ([]domain.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	needle := strings.ToLower(pattern)
	out := make([]domain.Role, 0)
	for _, role := range r.roles {
		if strings.Contains(strings.ToLower(role.Name), needle) {
			out = append(out, role)
		}
	}
	return out, nil
}

func (r *memoryRoleRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.roles, id)
	return nil
}

func (r *memoryRoleRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return int64(len(r.roles)), nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *memoryRoleRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := newMemoryRoleRepo()
	service := usecase.NewRoleService(repo, nil)
	handler := NewRoleHandler(service)

	r := gin.New()
	api := r.Group("/api/v1")
	api.POST("/roles", handler.CreateRole)
	api.GET("/roles", handler.ListRoles)
	api.GET("/roles/search", handler.SearchRoles)
	api.GET("/roles/:id", handler.GetRoleByID)

	return r, repo
}

func performRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestCreateRoleReturnsCreatedPayload(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := performRequest(router, http.MethodPost, "/api/v1/roles", `{"name":"  admin  role "}`)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	var payload RolePayload
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}

	if payload.ID != 1 {
		t.Fatalf("expected id 1, got %d", payload.ID)
	}

	if payload.Name != "admin role" {
		t.Fatalf("expected normalized name %q, got %q", "admin role", payload.Name)
	}

	if payload.CreatedAt.IsZero() {
		t.Fatal("expected created_at to be set")
	}
}

func TestCreateRoleDuplicateReturnsConflict(t *testing.T) {
	router, _ := newTestRouter(t)

	if rr := performRequest(router, http.MethodPost, "/api/v1/roles", `{"name":"admin"}`); rr.Code != http.StatusCreated {
		t.Fatalf("seed create failed with %d", rr.Code)
	}

	rr := performRequest(router, http.MethodPost, "/api/v1/roles", `{"name":"admin"}`)

	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rr.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}

	if resp.Code != CodeDuplicateRole {
		t.Fatalf("expected code %s, got %s", CodeDuplicateRole, resp.Code)
	}

	if resp.Status != http.StatusConflict {
		t.Fatalf("expected status field 409, got %d", resp.Status)
	}
}

func TestCreateRoleInvalidNameReturnsBadRequest(t *testing.T) {
	router, _ := newTestRouter(t)

	cases := map[string]string{
		"reserved":     `{"name":"system"}`,
		"prefix":       `{"name":"sys_backup"}`,
		"too short":    `{"name":"a"}`,
		"bad chars":    `{"name":"admin!"}`,
		"missing name": `{}`,
		"blank name":   `{"name":"   "}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rr := performRequest(router, http.MethodPost, "/api/v1/roles", body)

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rr.Code, rr.Body.String())
			}

			var resp ErrorResponse
			if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}

			if resp.Code != CodeInvalidRequest {
				t.Fatalf("expected code %s, got %s", CodeInvalidRequest, resp.Code)
			}
		})
	}
}

func TestCreateRoleOverlongNameRejectedByBinding(t *testing.T) {
	router, _ := newTestRouter(t)

	longName := strings.Repeat("a", 101)
	rr := performRequest(router, http.MethodPost, "/api/v1/roles", `{"name":"`+longName+`"}`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestListRolesEmptyReturnsEmptyArray(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := performRequest(router, http.MethodGet, "/api/v1/roles", "")

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	if body := strings.TrimSpace(rr.Body.String()); body != "[]" {
		t.Fatalf("expected empty array, got %q", body)
	}
}

func TestGetRoleByID(t *testing.T) {
	router, repo := newTestRouter(t)

	seeded := domain.Role{Name: "admin", CreatedAt: time.Now().UTC()}
	if err := repo.Create(context.Background(), &seeded); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	rr := performRequest(router, http.MethodGet, "/api/v1/roles/1", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var payload RolePayload
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}

	if payload.Name != "admin" {
		t.Fatalf("expected name admin, got %q", payload.Name)
	}
}

func TestGetRoleByIDNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := performRequest(router, http.MethodGet, "/api/v1/roles/42", "")

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}

	if resp.Code != CodeRoleNotFound {
		t.Fatalf("expected code %s, got %s", CodeRoleNotFound, resp.Code)
	}
}

func TestGetRoleByIDNonNumeric(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := performRequest(router, http.MethodGet, "/api/v1/roles/abc", "")

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestSearchRoles(t *testing.T) {
	router, repo := newTestRouter(t)

	for _, name := range []string{"admin", "administrator", "viewer"} {
		role := domain.Role{Name: name, CreatedAt: time.Now().UTC()}
		if err := repo.Create(context.Background(), &role); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	rr := performRequest(router, http.MethodGet, "/api/v1/roles/search?name=ADMIN", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var payloads []RolePayload
	if err := json.Unmarshal(rr.Body.Bytes(), &payloads); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}

	if len(payloads) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(payloads))
	}
}

func TestSearchRolesBlankPattern(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, path := range []string{"/api/v1/roles/search", "/api/v1/roles/search?name=%20%20"} {
		rr := performRequest(router, http.MethodGet, path, "")

		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %s, got %d", path, rr.Code)
		}

		var resp ErrorResponse
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}

		if resp.Code != CodeInvalidRequest {
			t.Fatalf("expected code %s, got %s", CodeInvalidRequest, resp.Code)
		}
	}
}
