package cache

import (
	"time"

	"go.uber.org/zap"

	"github.com/FACorreiaa/tiktok-to-trip/internal/app/models"
)

// DefaultItineraryTTL is used when the manager is built with a zero TTL.
const DefaultItineraryTTL = 30 * time.Minute

// CacheManager holds the backend caches
type CacheManager struct {
	// Generated itineraries keyed by url, duration and preferences
	Itineraries *UnifiedCache[models.Itinerary]
}

func NewCacheManager(itineraryTTL time.Duration, logger *zap.Logger) *CacheManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	if itineraryTTL <= 0 {
		itineraryTTL = DefaultItineraryTTL
	}
	return &CacheManager{
		Itineraries: NewUnifiedCache[models.Itinerary](itineraryTTL, "itineraries", logger),
	}
}

// GetAllMetrics returns metrics for all caches
func (cm *CacheManager) GetAllMetrics() map[string]CacheMetrics {
	return map[string]CacheMetrics{
		"itineraries": cm.Itineraries.GetMetrics(),
	}
}

// ClearAll clears all caches
func (cm *CacheManager) ClearAll() {
	cm.Itineraries.Clear()
}
