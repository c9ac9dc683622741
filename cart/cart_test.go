package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/webark/webark/kv"
)

func newCart(t *testing.T, store kv.Storage) *Cart {
	t.Helper()
	c, err := New(store, WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	return c
}

func TestAddTwiceIncrementsQuantity(t *testing.T) {
	c := newCart(t, kv.NewMemory())
	x := Item{ID: "x", Name: "Logo pack", Price: 10}

	require.NoError(t, c.Add(x))
	require.NoError(t, c.Add(x))

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 2, c.TotalItems())
	assert.InDelta(t, 20.0, c.TotalPrice(), 1e-9)
}

func TestAddIgnoresIncomingQuantity(t *testing.T) {
	c := newCart(t, kv.NewMemory())
	require.NoError(t, c.Add(Item{ID: "a", Price: 5, Quantity: 7}))
	assert.Equal(t, 1, c.TotalItems())
}

func TestSetQuantityAndRemove(t *testing.T) {
	c := newCart(t, kv.NewMemory())
	require.NoError(t, c.Add(Item{ID: "a", Price: 2.5}))
	require.NoError(t, c.Add(Item{ID: "b", Price: 4}))

	require.NoError(t, c.SetQuantity("a", 4))
	assert.Equal(t, 5, c.TotalItems())
	assert.InDelta(t, 14.0, c.TotalPrice(), 1e-9)

	require.NoError(t, c.SetQuantity("b", 0))
	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].ID)

	require.NoError(t, c.Remove("a"))
	assert.Empty(t, c.Items())
	require.NoError(t, c.Remove("missing"))
}

func TestClear(t *testing.T) {
	store := kv.NewMemory()
	c := newCart(t, store)
	require.NoError(t, c.Add(Item{ID: "a", Price: 1}))
	require.NoError(t, c.Clear())

	assert.Zero(t, c.TotalItems())
	raw, found, _ := store.Get(Key)
	assert.True(t, found)
	assert.JSONEq(t, `[]`, raw)
}

func TestPersistsAcrossInstances(t *testing.T) {
	store := kv.NewMemory()
	c := newCart(t, store)
	require.NoError(t, c.Add(Item{ID: "a", Name: "A", Price: 3, Image: "/a.jpg"}))
	require.NoError(t, c.Add(Item{ID: "a"}))

	raw, _, _ := store.Get(Key)
	assert.JSONEq(t, `[{"id":"a","name":"A","price":3,"quantity":2,"image":"/a.jpg"}]`, raw)

	again := newCart(t, store)
	assert.Equal(t, c.Items(), again.Items())
}

func TestMalformedDataIsDiscarded(t *testing.T) {
	store := kv.NewMemory()
	require.NoError(t, store.Set(Key, "{not json"))

	c := newCart(t, store)
	assert.Empty(t, c.Items())
	_, found, _ := store.Get(Key)
	assert.False(t, found)
}

func TestItemsIsACopy(t *testing.T) {
	c := newCart(t, kv.NewMemory())
	require.NoError(t, c.Add(Item{ID: "a", Price: 1}))
	items := c.Items()
	items[0].Quantity = 99
	assert.Equal(t, 1, c.TotalItems())
}
