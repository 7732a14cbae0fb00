// internal/leads/cache_test.go
package leads

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lead-generator/internal/common/logger"
)

func newMiniredisCache(t *testing.T, ttl time.Duration) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewCache(client, ttl, logger.NewNoOpLogger()), mr
}

func TestCacheRoundTrip(t *testing.T) {
	cache, _ := newMiniredisCache(t, time.Hour)
	ctx := context.Background()

	lead := &LeadResult{
		CompanyName: strPtr("Acme Robotics"),
		Score:       intPtr(9),
		Location:    &Location{City: strPtr("Curitiba"), Country: strPtr("Brazil")},
	}

	require.NoError(t, cache.Set(ctx, "Industrial Automation", lead))

	got, err := cache.Get(ctx, "Industrial Automation")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Acme Robotics", *got.CompanyName)
	assert.Equal(t, 9, *got.Score)
	assert.Equal(t, "Curitiba", *got.Location.City)
}

func TestCacheKeyIsTopicNormalized(t *testing.T) {
	cache, mr := newMiniredisCache(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "  Industrial Automation  ", &LeadResult{CompanyName: strPtr("Acme")}))

	assert.True(t, mr.Exists("leads:result:industrial automation"))

	// Case and surrounding whitespace do not fragment the cache.
	got, err := cache.Get(ctx, "INDUSTRIAL AUTOMATION")
	require.NoError(t, err)
	require.NotNil(t, got)
}

func TestCacheMissReturnsNil(t *testing.T) {
	cache, _ := newMiniredisCache(t, time.Hour)

	got, err := cache.Get(context.Background(), "never seen")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCacheEntriesExpire(t *testing.T) {
	cache, mr := newMiniredisCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "robotics", &LeadResult{CompanyName: strPtr("Acme")}))

	mr.FastForward(2 * time.Minute)

	got, err := cache.Get(ctx, "robotics")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCacheSetUsesConfiguredTTL(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := NewCache(db, 30*time.Minute, logger.NewNoOpLogger())

	lead := &LeadResult{CompanyName: strPtr("Acme")}
	data, err := json.Marshal(lead)
	require.NoError(t, err)

	mock.ExpectSet("leads:result:robotics", data, 30*time.Minute).SetVal("OK")

	require.NoError(t, cache.Set(context.Background(), "robotics", lead))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheGetSurfacesBackendErrors(t *testing.T) {
	cache, mr := newMiniredisCache(t, time.Hour)
	mr.Close()

	_, err := cache.Get(context.Background(), "robotics")
	assert.Error(t, err)
}
