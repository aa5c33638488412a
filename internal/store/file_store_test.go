package store_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestNewFile(t *testing.T) {
	_, err := store.NewFile("", nil)
	require.EqualError(t, err, "dir is empty")

	s, err := store.NewFile(filepath.Join(t.TempDir(), "nested", "data"), nil)
	require.NoError(t, err)
	require.NotNil(t, s)
}

func TestLoadAbsent(t *testing.T) {
	s := newStore(t)

	var items []domain.CartItem
	assert.False(t, s.Load("cart", &items))
	assert.Empty(t, items)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newStore(t)

	items := []domain.CartItem{randomItem(), randomItem()}
	s.Save("cart", items)

	var loaded []domain.CartItem
	require.True(t, s.Load("cart", &loaded))
	assert.Empty(t, cmp.Diff(items, loaded))
}

func TestSaveOverwrites(t *testing.T) {
	s := newStore(t)

	s.Save("cart", []domain.CartItem{randomItem(), randomItem()})

	latest := []domain.CartItem{randomItem()}
	s.Save("cart", latest)

	var loaded []domain.CartItem
	require.True(t, s.Load("cart", &loaded))
	assert.Empty(t, cmp.Diff(latest, loaded))
}

func TestLoadCorruptRecordCleared(t *testing.T) {
	dir := t.TempDir()
	s, err := store.NewFile(dir, zaptest.NewLogger(t))
	require.NoError(t, err)

	path := filepath.Join(dir, "cart.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	var items []domain.CartItem
	assert.False(t, s.Load("cart", &items))

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "corrupt record should be removed")
}

func TestLoadInvalidRecordCleared(t *testing.T) {
	dir := t.TempDir()
	s, err := store.NewFile(dir, zaptest.NewLogger(t))
	require.NoError(t, err)

	// well-formed JSON, but the identity misses its required fields
	path := filepath.Join(dir, "customer_session.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"Ana"}`), 0o644))

	var ident domain.Identity
	assert.False(t, s.Load("customer_session", &ident))

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "invalid record should be removed")
}

func TestDelete(t *testing.T) {
	s := newStore(t)

	s.Save("cart", []domain.CartItem{randomItem()})
	s.Delete("cart")

	var items []domain.CartItem
	assert.False(t, s.Load("cart", &items))

	// deleting an absent key is fine
	s.Delete("cart")
}

func TestKeysStayInsideDir(t *testing.T) {
	dir := t.TempDir()
	s, err := store.NewFile(dir, zaptest.NewLogger(t))
	require.NoError(t, err)

	s.Save("../escape/../key", []domain.CartItem{randomItem()})

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.False(t, strings.ContainsAny(entries[0].Name(), `/\`))
}

func newStore(t *testing.T) *store.FileStore {
	t.Helper()

	s, err := store.NewFile(t.TempDir(), zaptest.NewLogger(t))
	require.NoError(t, err)
	return s
}

func randomItem() domain.CartItem {
	return domain.CartItem{
		ProductID:    uuid.NewString(),
		Title:        gofakeit.ProductName(),
		PriceDisplay: "$" + gofakeit.Numerify("#.###.###"),
		PriceNumeric: int64(gofakeit.Number(10_000, 5_000_000)),
		ImageURL:     gofakeit.URL(),
		Quantity:     gofakeit.Number(1, 5),
	}
}
