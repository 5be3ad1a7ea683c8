package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/customer-care/internal/api/dto"
)

func TestNewPageMeta(t *testing.T) {
	t.Run("middle page", func(t *testing.T) {
		meta := dto.NewPageMeta("/tickets", 2, 10, 10, 35)

		assert.Equal(t, 2, meta.CurrentPage)
		assert.Equal(t, 4, meta.LastPage)
		assert.Equal(t, 35, meta.Total)
		require.NotNil(t, meta.From)
		require.NotNil(t, meta.To)
		assert.Equal(t, 11, *meta.From)
		assert.Equal(t, 20, *meta.To)
	})

	t.Run("short final page", func(t *testing.T) {
		meta := dto.NewPageMeta("/tickets", 4, 10, 5, 35)

		require.NotNil(t, meta.From)
		require.NotNil(t, meta.To)
		assert.Equal(t, 31, *meta.From)
		assert.Equal(t, 35, *meta.To)
	})

	t.Run("empty result set keeps last_page at one", func(t *testing.T) {
		meta := dto.NewPageMeta("/tickets", 1, 10, 0, 0)

		assert.Equal(t, 1, meta.LastPage)
		assert.Nil(t, meta.From)
		assert.Nil(t, meta.To)
	})

	t.Run("last_page is ceiling of total over per_page", func(t *testing.T) {
		assert.Equal(t, 1, dto.NewPageMeta("/tickets", 1, 10, 10, 10).LastPage)
		assert.Equal(t, 2, dto.NewPageMeta("/tickets", 1, 10, 10, 11).LastPage)
		assert.Equal(t, 7, dto.NewPageMeta("/tickets", 1, 3, 3, 20).LastPage)
	})
}

func TestNewPageLinks(t *testing.T) {
	t.Run("first page has no prev", func(t *testing.T) {
		links := dto.NewPageLinks("/tickets", 1, 10, 35)

		assert.Equal(t, "/tickets?page=1&per_page=10", links.First)
		assert.Equal(t, "/tickets?page=4&per_page=10", links.Last)
		assert.Nil(t, links.Prev)
		require.NotNil(t, links.Next)
		assert.Equal(t, "/tickets?page=2&per_page=10", *links.Next)
	})

	t.Run("last page has no next", func(t *testing.T) {
		links := dto.NewPageLinks("/tickets", 4, 10, 35)

		require.NotNil(t, links.Prev)
		assert.Equal(t, "/tickets?page=3&per_page=10", *links.Prev)
		assert.Nil(t, links.Next)
	})

	t.Run("single page has neither", func(t *testing.T) {
		links := dto.NewPageLinks("/tickets", 1, 10, 3)

		assert.Nil(t, links.Prev)
		assert.Nil(t, links.Next)
	})
}
