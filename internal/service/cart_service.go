package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/soupclass/soup-backend/internal/config"
	"github.com/soupclass/soup-backend/internal/model"
	"github.com/soupclass/soup-backend/internal/repository"
)

// CartTTL is how long an untouched cart survives.
const CartTTL = 7 * 24 * time.Hour

// CartService keeps each user's cart as a Redis hash of ms_id → added-at (unix seconds).
type CartService struct {
	rdb    *redis.Client
	csRepo *repository.CourseScheduleRepository
	log    zerolog.Logger
}

// NewCartService creates a new CartService.
func NewCartService(rdb *redis.Client, csRepo *repository.CourseScheduleRepository, log zerolog.Logger) *CartService {
	return &CartService{
		rdb:    rdb,
		csRepo: csRepo,
		log:    log.With().Str("component", "cart_service").Logger(),
	}
}

// Get returns the cart enriched from the database. Items whose course schedule
// no longer exists are pruned.
func (s *CartService) Get(ctx context.Context, userID int) (*model.Cart, error) {
	key := config.CacheKey.CartKey(userID)
	entries, err := s.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	ids, updatedAt := parseCartEntries(entries)
	cart := &model.Cart{Items: []model.CourseScheduleDetail{}, UpdatedAt: updatedAt}
	if len(ids) == 0 {
		cart.TotalPrice = sumPrices(nil)
		return cart, nil
	}

	details, err := s.csRepo.GetDetails(ctx, ids)
	if err != nil {
		return nil, err
	}
	if stale := missingIDs(ids, details); len(stale) > 0 {
		if err := s.RemoveItems(ctx, userID, stale...); err != nil {
			s.log.Warn().Err(err).Int("user_id", userID).Msg("Failed to prune stale cart items")
		}
	}

	if details != nil {
		cart.Items = details
	}
	cart.TotalPrice = sumPrices(details)
	return cart, nil
}

// Add puts a course schedule in the cart. Re-adding is a no-op apart from the TTL refresh.
func (s *CartService) Add(ctx context.Context, userID, courseScheduleID int) error {
	if _, err := s.csRepo.GetByID(ctx, courseScheduleID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCourseScheduleNotFound
		}
		return err
	}

	key := config.CacheKey.CartKey(userID)
	pipe := s.rdb.TxPipeline()
	pipe.HSetNX(ctx, key, strconv.Itoa(courseScheduleID), time.Now().Unix())
	pipe.Expire(ctx, key, CartTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("add cart item: %w", err)
	}
	return nil
}

// RemoveItems deletes the given course schedules from the cart.
func (s *CartService) RemoveItems(ctx context.Context, userID int, courseScheduleIDs ...int) error {
	if len(courseScheduleIDs) == 0 {
		return nil
	}
	fields := make([]string, len(courseScheduleIDs))
	for i, id := range courseScheduleIDs {
		fields[i] = strconv.Itoa(id)
	}
	return s.rdb.HDel(ctx, config.CacheKey.CartKey(userID), fields...).Err()
}

// Clear empties the cart.
func (s *CartService) Clear(ctx context.Context, userID int) error {
	return s.rdb.Del(ctx, config.CacheKey.CartKey(userID)).Err()
}

// parseCartEntries returns the item IDs in the order they were added and the
// most recent add time. Malformed fields are skipped.
func parseCartEntries(entries map[string]string) ([]int, *time.Time) {
	type entry struct {
		id    int
		added int64
	}
	list := make([]entry, 0, len(entries))
	var latest int64
	for field, value := range entries {
		id, err := strconv.Atoi(field)
		if err != nil || id <= 0 {
			continue
		}
		added, _ := strconv.ParseInt(value, 10, 64)
		if added > latest {
			latest = added
		}
		list = append(list, entry{id: id, added: added})
	}

	sort.Slice(list, func(i, j int) bool {
		if list[i].added != list[j].added {
			return list[i].added < list[j].added
		}
		return list[i].id < list[j].id
	})

	ids := make([]int, len(list))
	for i, e := range list {
		ids[i] = e.id
	}
	if latest == 0 {
		return ids, nil
	}
	t := time.Unix(latest, 0).UTC()
	return ids, &t
}

// missingIDs returns the requested IDs absent from details.
func missingIDs(ids []int, details []model.CourseScheduleDetail) []int {
	found := make(map[int]bool, len(details))
	for _, d := range details {
		found[d.CourseScheduleID] = true
	}
	var missing []int
	for _, id := range ids {
		if !found[id] {
			missing = append(missing, id)
		}
	}
	return missing
}
