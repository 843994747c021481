package repository

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"orderdesk/internal/domain"
	apperrors "orderdesk/internal/errors"
	"orderdesk/internal/infrastructure/database"
	"orderdesk/internal/testutil"
	"orderdesk/internal/txn"
)

func newTestRepository(t *testing.T) (*SQLItemRepository, *database.Provider) {
	t.Helper()
	p := testutil.SetupSQLiteDB(t)
	coordinator := txn.NewCoordinator(p, zap.NewNop(), 5*time.Second, 3)
	return NewSQLItemRepository(p, coordinator), p
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Unit Tests

func TestNewSQLItemRepository(t *testing.T) {
	p := &database.Provider{}
	repo := NewSQLItemRepository(p, nil)

	assert.NotNil(t, repo)
	assert.Equal(t, p, repo.provider)
}

// Integration Tests

func TestItemRepository_Create_And_FindByID(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, domain.Item{Name: "Widget", Price: price("9.99")})
	require.NoError(t, err)

	item, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, id, item.ID)
	assert.Equal(t, "Widget", item.Name)
	assert.True(t, price("9.99").Equal(item.Price), "got %s", item.Price)
}

func TestItemRepository_Create_NegativePrice(t *testing.T) {
	repo, p := newTestRepository(t)

	_, err := repo.Create(context.Background(), domain.Item{Name: "Refund", Price: price("-0.01")})

	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
	assert.Equal(t, 0, testutil.Count(t, p, "item", ""))
}

func TestItemRepository_FindByID_Absent(t *testing.T) {
	repo, _ := newTestRepository(t)

	item, err := repo.FindByID(context.Background(), 12345)

	assert.NoError(t, err)
	assert.Nil(t, item)
}

func TestItemRepository_FindByName(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, domain.Item{Name: "Widget", Price: price("9.99")})
	require.NoError(t, err)

	item, err := repo.FindByName(ctx, "Widget")
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, "Widget", item.Name)

	item, err = repo.FindByName(ctx, "Widg")
	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestItemRepository_FindByIDs(t *testing.T) {
	repo, p := newTestRepository(t)
	ctx := context.Background()

	a := testutil.MustExec(t, p, `INSERT INTO item (name, price) VALUES ('A', 1)`)
	b := testutil.MustExec(t, p, `INSERT INTO item (name, price) VALUES ('B', 2.5)`)
	testutil.MustExec(t, p, `INSERT INTO item (name, price) VALUES ('C', 3)`)

	items, err := repo.FindByIDs(ctx, []int64{b, a, b, 999})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, a, items[0].ID)
	assert.Equal(t, b, items[1].ID)
	assert.True(t, price("2.5").Equal(items[1].Price))

	items, err = repo.FindByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Nil(t, items)
}

func TestItemRepository_FindByIDs_ManyIDs(t *testing.T) {
	repo, p := newTestRepository(t)
	seeded := testutil.SeedItems(t, p, 1201)

	ids := slices.Clone(seeded)
	slices.Reverse(ids)
	ids = append(ids, seeded[0], seeded[600], 999999)

	items, err := repo.FindByIDs(context.Background(), ids)
	require.NoError(t, err)
	require.Len(t, items, len(seeded))
	for i, item := range items {
		assert.Equal(t, seeded[i], item.ID)
	}
}

func TestItemRepository_FindAll(t *testing.T) {
	repo, p := newTestRepository(t)

	testutil.MustExec(t, p, `INSERT INTO item (name, price) VALUES ('A', 1), ('B', 2)`)

	items, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "A", items[0].Name)
	assert.Equal(t, "B", items[1].Name)
}

func TestItemRepository_Update(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, domain.Item{Name: "Widget", Price: price("9.99")})
	require.NoError(t, err)

	n, err := repo.Update(ctx, id, domain.Item{Name: "Gadget", Price: price("12.50")})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	item, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Gadget", item.Name)
	assert.True(t, price("12.5").Equal(item.Price))

	n, err = repo.Update(ctx, 999, domain.Item{Name: "Ghost", Price: price("1")})
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestItemRepository_Delete_RemovesOnlyItsLinks(t *testing.T) {
	repo, p := newTestRepository(t)
	ctx := context.Background()

	customer := testutil.MustExec(t, p, `INSERT INTO customer (name) VALUES ('Ann')`)
	widget := testutil.MustExec(t, p, `INSERT INTO item (name, price) VALUES ('Widget', 9.99)`)
	gadget := testutil.MustExec(t, p, `INSERT INTO item (name, price) VALUES ('Gadget', 5)`)

	var orders []int64
	for i := 0; i < 3; i++ {
		o := testutil.MustExec(t, p, `INSERT INTO orders (total_price, date, customer_id) VALUES (14.99, '2024-10-01', ?)`, customer)
		testutil.MustExec(t, p, `INSERT INTO order_item (order_id, item_id) VALUES (?, ?), (?, ?)`, o, widget, o, gadget)
		orders = append(orders, o)
	}

	n, err := repo.Delete(ctx, widget)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	assert.Equal(t, 0, testutil.Count(t, p, "order_item", "item_id = ?", widget))
	assert.Equal(t, 3, testutil.Count(t, p, "order_item", "item_id = ?", gadget))
	assert.Equal(t, len(orders), testutil.Count(t, p, "orders", ""))

	item, err := repo.FindByID(ctx, widget)
	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestItemRepository_Search_WildcardsAreLiteral(t *testing.T) {
	repo, p := newTestRepository(t)

	testutil.MustExec(t, p, `INSERT INTO item (name, price) VALUES ('Widget', 1), ('Half_price widget', 2)`)

	items, err := repo.Search(context.Background(), "_", domain.SortAscending)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Half_price widget", items[0].Name)
}

func TestItemRepository_Search(t *testing.T) {
	repo, p := newTestRepository(t)

	testutil.MustExec(t, p, `INSERT INTO item (name, price) VALUES ('Blue widget', 1), ('Widget', 2), ('Gadget', 3)`)

	items, err := repo.Search(context.Background(), "widget", domain.SortDescending)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Widget", items[0].Name)
	assert.Equal(t, "Blue widget", items[1].Name)
}
