package app

import (
	"context"
	"math"
	"time"

	"oldbaku_hotel/internal/domain"
)

const roomsCacheKey = "rooms:all"

// Field limits applied on owner edits.
const (
	maxTitleLen       = 120
	maxDescriptionLen = 500
	maxImageLen       = 400
)

// CatalogService is a read-mostly view over the rooms collection with a
// cache-aside layer. A nil cache disables caching.
type CatalogService struct {
	store    domain.Store
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewCatalogService(s domain.Store, c domain.Cache, ttl time.Duration) *CatalogService {
	return &CatalogService{store: s, cache: c, cacheTTL: ttl}
}

func (s *CatalogService) ListRooms(ctx context.Context) ([]domain.Room, error) {
	if s.cache != nil {
		var rooms []domain.Room
		if ok, _ := s.cache.Get(ctx, roomsCacheKey, &rooms); ok {
			return rooms, nil
		}
	}
	rooms, err := s.store.ListRooms(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, roomsCacheKey, rooms, int(s.cacheTTL.Seconds()))
	}
	return rooms, nil
}

func (s *CatalogService) GetRoom(ctx context.Context, id int64) (domain.Room, error) {
	rooms, err := s.ListRooms(ctx)
	if err != nil {
		return domain.Room{}, err
	}
	for _, r := range rooms {
		if r.ID == id {
			return r, nil
		}
	}
	return domain.Room{}, domain.ErrNotFound
}

// UpdateRoom applies a whitelisted partial patch and persists the whole
// catalog. Unknown patch fields were already dropped on decode; fields
// that fail their rule (negative price) are ignored, not an error.
func (s *CatalogService) UpdateRoom(ctx context.Context, id int64, patch domain.RoomPatch) (domain.Room, error) {
	// Go straight to the store: an edit must not act on a cached snapshot.
	rooms, err := s.store.ListRooms(ctx)
	if err != nil {
		return domain.Room{}, err
	}
	idx := -1
	for i := range rooms {
		if rooms[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return domain.Room{}, domain.ErrNotFound
	}

	applyPatch(&rooms[idx], patch)

	if err := s.store.SaveRooms(ctx, rooms); err != nil {
		return domain.Room{}, err
	}
	if s.cache != nil {
		_ = s.cache.Del(ctx, roomsCacheKey)
	}
	return rooms[idx], nil
}

func applyPatch(room *domain.Room, patch domain.RoomPatch) {
	if ru, ok := patch.Title["ru"]; ok && ru != "" {
		if room.Title == nil {
			room.Title = map[string]string{}
		}
		room.Title["ru"] = truncate(ru, maxTitleLen)
	}
	if ru, ok := patch.Description["ru"]; ok && ru != "" {
		// Merge: other languages stay untouched.
		if room.Description == nil {
			room.Description = map[string]string{}
		}
		room.Description["ru"] = truncate(ru, maxDescriptionLen)
	}
	if patch.Image != nil && *patch.Image != "" {
		room.Image = truncate(*patch.Image, maxImageLen)
	}
	if patch.Price != nil && *patch.Price >= 0 {
		p := int64(math.Round(*patch.Price))
		room.Price = &p
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
