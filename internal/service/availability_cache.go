package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// Redis key prefix for cached per-doctor availability
	availabilityKeyPrefix = "availability:"

	// Version counter folded into every cache key. Slot reservations flip
	// a flag shared by all doctors and dates, so they bump this instead of
	// deleting keys one by one.
	availabilityVersionKey = "availability:catalog_version"

	// Availability changes on every booking, so the cache is short-lived.
	availabilityTTL = 30 * time.Second
)

// AvailabilityEntry is one bookable position in a doctor's day.
type AvailabilityEntry struct {
	SlotID    int    `json:"slot_id"`
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// AvailabilityCache is a read-through Redis cache over the availability
// computation, keyed by doctor and date. Only the appointment usecase
// invalidates entries; everything else just reads.
type AvailabilityCache struct {
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewAvailabilityCache(redisClient *redis.Client, log *logrus.Logger) *AvailabilityCache {
	return &AvailabilityCache{
		redisClient: redisClient,
		log:         log,
	}
}

// key builds the current cache key for a doctor and date. The catalog
// version prefixes the key, so a version bump orphans every older entry;
// orphans simply age out through the TTL.
func (c *AvailabilityCache) key(ctx context.Context, doctorID uuid.UUID, date string) string {
	version, err := c.redisClient.Get(ctx, availabilityVersionKey).Int64()
	if err != nil {
		version = 0
	}
	return fmt.Sprintf("%s%d:%s:%s", availabilityKeyPrefix, version, doctorID, date)
}

// Get returns the cached entries and whether the key was present. Redis
// failures are logged and treated as a miss so availability stays readable
// without the cache.
func (c *AvailabilityCache) Get(ctx context.Context, doctorID uuid.UUID, date string) ([]AvailabilityEntry, bool) {
	key := c.key(ctx, doctorID, date)
	payload, err := c.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warnf("Failed to read availability cache for doctor %s: %+v", doctorID, err)
		}
		return nil, false
	}

	var entries []AvailabilityEntry
	if err := json.Unmarshal(payload, &entries); err != nil {
		c.log.Warnf("Corrupt availability cache entry for doctor %s, dropping: %+v", doctorID, err)
		c.redisClient.Del(ctx, key)
		return nil, false
	}
	return entries, true
}

func (c *AvailabilityCache) Set(ctx context.Context, doctorID uuid.UUID, date string, entries []AvailabilityEntry) {
	payload, err := json.Marshal(entries)
	if err != nil {
		c.log.Warnf("Failed to marshal availability entries: %+v", err)
		return
	}
	if err := c.redisClient.Set(ctx, c.key(ctx, doctorID, date), payload, availabilityTTL).Err(); err != nil {
		c.log.Warnf("Failed to write availability cache for doctor %s (non-fatal): %+v", doctorID, err)
	}
}

// Invalidate drops the cached day for one doctor. Used for mutations that
// only move that doctor's own schedule (no slot reservation involved).
func (c *AvailabilityCache) Invalidate(ctx context.Context, doctorID uuid.UUID, date string) {
	if err := c.redisClient.Del(ctx, c.key(ctx, doctorID, date)).Err(); err != nil {
		c.log.Warnf("Failed to invalidate availability cache for doctor %s (non-fatal): %+v", doctorID, err)
	}
}

// InvalidateCatalog drops every cached day at once by bumping the catalog
// version. Reserving or releasing a slot changes is_available, a flag every
// doctor's availability is computed from, so per-doctor invalidation is not
// enough.
func (c *AvailabilityCache) InvalidateCatalog(ctx context.Context) {
	if err := c.redisClient.Incr(ctx, availabilityVersionKey).Err(); err != nil {
		c.log.Warnf("Failed to bump availability catalog version (non-fatal): %+v", err)
	}
}
