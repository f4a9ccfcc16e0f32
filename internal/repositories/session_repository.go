package repositories

import (
	"sync"
	"time"

	"habesha-bites/models"
	"habesha-bites/pkg/logger"

	"github.com/patrickmn/go-cache"
)

// SessionRepositoryInterface is the in-memory store of in-progress carts,
// keyed by conversation session id. Mutating operations serialize so two
// requests on the same session cannot lose each other's updates.
type SessionRepositoryInterface interface {
	Get(sessionID string) (*models.Cart, bool)
	Merge(sessionID string, candidate *models.Cart) *models.Cart
	RemoveItems(sessionID string, names []string) (removed []string, remaining *models.Cart, found bool)
	Delete(sessionID string)
	Count() int
}

// SessionRepository keeps carts in an expiring cache so abandoned sessions
// do not accumulate forever.
type SessionRepository struct {
	cache  *cache.Cache
	mutex  sync.Mutex
	logger *logger.Logger
}

// NewSessionRepository creates a session store whose entries expire after ttl
// of inactivity. Expired entries are purged every ten minutes.
func NewSessionRepository(ttl time.Duration, log *logger.Logger) *SessionRepository {
	return &SessionRepository{
		cache:  cache.New(ttl, 10*time.Minute),
		logger: log.WithComponent("session_repository"),
	}
}

// Get returns a snapshot of the session's cart, if one exists.
func (r *SessionRepository) Get(sessionID string) (*models.Cart, bool) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	cart, ok := r.lookup(sessionID)
	if !ok {
		return nil, false
	}
	return cart.Clone(), true
}

// Merge folds the candidate cart into the session's existing cart, adding
// quantities per name, and returns a snapshot of the result. A session with
// no cart yet adopts the candidate as-is. The entry's expiry is refreshed.
func (r *SessionRepository) Merge(sessionID string, candidate *models.Cart) *models.Cart {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	current, ok := r.lookup(sessionID)
	if !ok {
		current = models.NewCart()
	}
	for _, item := range candidate.Items() {
		current.Add(item.Name, item.Quantity)
	}
	r.cache.Set(sessionID, current, cache.DefaultExpiration)

	r.logger.Debug("Merged items into cart", "session_id", sessionID, "cart_size", current.Len())
	return current.Clone()
}

// RemoveItems deletes whole cart lines matching the given names
// case-insensitively. It reports which stored names were actually removed and
// a snapshot of what remains. found is false when the session has no cart.
func (r *SessionRepository) RemoveItems(sessionID string, names []string) ([]string, *models.Cart, bool) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	current, ok := r.lookup(sessionID)
	if !ok {
		return nil, nil, false
	}

	removed := make([]string, 0, len(names))
	for _, name := range names {
		if stored, ok := current.Remove(name); ok {
			removed = append(removed, stored)
		}
	}
	r.cache.Set(sessionID, current, cache.DefaultExpiration)

	r.logger.Debug("Removed items from cart",
		"session_id", sessionID,
		"removed", len(removed),
		"remaining", current.Len())
	return removed, current.Clone(), true
}

// Delete drops the session's cart entirely.
func (r *SessionRepository) Delete(sessionID string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.cache.Delete(sessionID)
	r.logger.Debug("Deleted session cart", "session_id", sessionID)
}

// Count returns the number of live sessions, including not-yet-purged
// expired entries.
func (r *SessionRepository) Count() int {
	return r.cache.ItemCount()
}

func (r *SessionRepository) lookup(sessionID string) (*models.Cart, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*models.Cart), true
	}
	return nil, false
}
