package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_ReplaceProducts(t *testing.T) {
	store := NewStore()
	store.ReplaceProducts([]Product{{ID: 1, Name: "Hex Bolt"}})

	t.Run("later fetch fully replaces earlier one", func(t *testing.T) {
		store.ReplaceProducts([]Product{{ID: 2, Name: "Wing Nut"}, {ID: 3, Name: "Washer"}})

		assert.Equal(t, 2, store.Len())
		_, ok := store.Product(1)
		assert.False(t, ok, "old product must be gone after replacement")
	})

	t.Run("lookup by id", func(t *testing.T) {
		p, ok := store.Product(3)
		require.True(t, ok)
		assert.Equal(t, "Washer", p.Name)
	})

	t.Run("accessor returns a copy", func(t *testing.T) {
		list := store.Products()
		list[0].Name = "mutated"

		p, ok := store.Product(2)
		require.True(t, ok)
		assert.Equal(t, "Wing Nut", p.Name)
	})
}

func TestStore_ReplaceCategories(t *testing.T) {
	store := NewStore()
	store.ReplaceCategories(
		[]MainCategory{{ID: 1, Name: "Fasteners"}},
		[]SubCategory{{ID: 10, Name: "Bolts", MainCategory: 1}},
	)

	require.Len(t, store.MainCategories(), 1)
	require.Len(t, store.SubCategories(), 1)
	assert.Equal(t, int64(1), store.SubCategories()[0].MainCategory)
}
