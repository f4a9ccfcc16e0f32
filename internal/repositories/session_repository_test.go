package repositories

import (
	"testing"
	"time"

	"habesha-bites/models"
	"habesha-bites/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *logger.Logger {
	return logger.New(logger.Config{Level: logger.LevelError, Format: "text", Output: "stderr"})
}

func cartOf(pairs ...models.CartItem) *models.Cart {
	cart := models.NewCart()
	for _, p := range pairs {
		cart.Set(p.Name, p.Quantity)
	}
	return cart
}

func TestSessionRepository_Merge(t *testing.T) {
	repo := NewSessionRepository(time.Hour, newTestLogger())

	t.Run("first merge adopts the candidate", func(t *testing.T) {
		cart := repo.Merge("s1", cartOf(models.CartItem{Name: "Doro Wat", Quantity: 1}))
		assert.Equal(t, []models.CartItem{{Name: "Doro Wat", Quantity: 1}}, cart.Items())
	})

	t.Run("later merges add quantities", func(t *testing.T) {
		repo.Merge("s2", cartOf(models.CartItem{Name: "Kitfo", Quantity: 2}))
		cart := repo.Merge("s2", cartOf(
			models.CartItem{Name: "Kitfo", Quantity: 3},
			models.CartItem{Name: "Tibs", Quantity: 1},
		))

		assert.Equal(t, []models.CartItem{
			{Name: "Kitfo", Quantity: 5},
			{Name: "Tibs", Quantity: 1},
		}, cart.Items())
	})

	t.Run("returned cart is a snapshot", func(t *testing.T) {
		cart := repo.Merge("s3", cartOf(models.CartItem{Name: "Gomen", Quantity: 1}))
		cart.Add("Gomen", 10)

		stored, ok := repo.Get("s3")
		require.True(t, ok)
		assert.Equal(t, []models.CartItem{{Name: "Gomen", Quantity: 1}}, stored.Items())
	})
}

func TestSessionRepository_RemoveItems(t *testing.T) {
	repo := NewSessionRepository(time.Hour, newTestLogger())

	t.Run("no session", func(t *testing.T) {
		_, _, found := repo.RemoveItems("nope", []string{"Kitfo"})
		assert.False(t, found)
	})

	t.Run("removes matching lines case-insensitively", func(t *testing.T) {
		repo.Merge("s1", cartOf(
			models.CartItem{Name: "Doro Wat", Quantity: 2},
			models.CartItem{Name: "Kitfo", Quantity: 1},
		))

		removed, remaining, found := repo.RemoveItems("s1", []string{"doro wat", "Firfir"})
		require.True(t, found)
		assert.Equal(t, []string{"Doro Wat"}, removed)
		assert.Equal(t, []models.CartItem{{Name: "Kitfo", Quantity: 1}}, remaining.Items())
	})
}

func TestSessionRepository_DeleteAndCount(t *testing.T) {
	repo := NewSessionRepository(time.Hour, newTestLogger())

	repo.Merge("s1", cartOf(models.CartItem{Name: "Tibs", Quantity: 1}))
	repo.Merge("s2", cartOf(models.CartItem{Name: "Kitfo", Quantity: 1}))
	assert.Equal(t, 2, repo.Count())

	repo.Delete("s1")
	assert.Equal(t, 1, repo.Count())

	_, ok := repo.Get("s1")
	assert.False(t, ok)
}

func TestSessionRepository_Expiry(t *testing.T) {
	repo := NewSessionRepository(10*time.Millisecond, newTestLogger())
	repo.Merge("s1", cartOf(models.CartItem{Name: "Tibs", Quantity: 1}))

	time.Sleep(20 * time.Millisecond)

	_, ok := repo.Get("s1")
	assert.False(t, ok)
}
