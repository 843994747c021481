package item

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"orderdesk/internal/domain"
	"orderdesk/internal/dto"
)

type mockRepository struct {
	Repository
	FindByNameFunc func(ctx context.Context, name string) (*domain.Item, error)
	CreateFunc     func(ctx context.Context, i domain.Item) (int64, error)
}

func (m *mockRepository) FindByName(ctx context.Context, name string) (*domain.Item, error) {
	return m.FindByNameFunc(ctx, name)
}

func (m *mockRepository) Create(ctx context.Context, i domain.Item) (int64, error) {
	return m.CreateFunc(ctx, i)
}

func newTestRouter(repo Repository) http.Handler {
	c := NewController(repo, zap.NewNop())
	r := chi.NewRouter()
	r.Get("/items", c.List)
	r.Post("/items", c.Create)
	return r
}

func TestController_List_ByName(t *testing.T) {
	repo := &mockRepository{
		FindByNameFunc: func(ctx context.Context, name string) (*domain.Item, error) {
			if name == "Widget" {
				return &domain.Item{ID: 1, Name: "Widget", Price: decimal.RequireFromString("9.99")}, nil
			}
			return nil, nil
		},
	}
	h := newTestRouter(repo)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items?name=Widget", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []dto.ItemResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.True(t, decimal.RequireFromString("9.99").Equal(resp[0].Price))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items?name=Nope", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestController_Create_NegativePrice(t *testing.T) {
	repo := &mockRepository{
		CreateFunc: func(ctx context.Context, i domain.Item) (int64, error) {
			return 0, i.Validate()
		},
	}

	rec := httptest.NewRecorder()
	newTestRouter(repo).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(`{"name":"Refund","price":-1}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "price must not be negative")
}
