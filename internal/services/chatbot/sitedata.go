package chatbot

import (
	"context"
	"sync"
	"time"

	"github.com/MayorChristopher/artificialfarm-sub000/internal/database"
	"github.com/MayorChristopher/artificialfarm-sub000/internal/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// defaultSiteDataTTL is how long a snapshot stays fresh.
	defaultSiteDataTTL = 5 * time.Minute
	// defaultFetchTimeout bounds each persistence read; a timeout is
	// treated the same as a fetch error.
	defaultFetchTimeout = 3 * time.Second

	maxCourses        = 10
	maxSuccessStories = 5
	maxTestimonials   = 5
)

// SiteDataSnapshot is a cached read-only copy of the reference content the
// response builders interpolate. It lives only in process memory.
type SiteDataSnapshot struct {
	Courses        []*models.Course
	SuccessStories []*models.SuccessStory
	Testimonials   []*models.Testimonial
	FetchedAt      time.Time
}

// SiteDataCache is a time-boxed cache over the site content repository.
// Stale-while-valid: a fresh snapshot is returned unchanged, an expired one
// triggers a synchronous refetch, and a failed refetch falls back to the
// previous snapshot or the built-in defaults. Callers never see an error.
type SiteDataCache struct {
	content database.SiteContentRepositoryInterface
	logger  *zap.Logger
	ttl     time.Duration
	timeout time.Duration
	now     func() time.Time

	mu       sync.Mutex
	snapshot *SiteDataSnapshot
}

// NewSiteDataCache creates a new site data cache with the default 5-minute TTL.
func NewSiteDataCache(content database.SiteContentRepositoryInterface, logger *zap.Logger) *SiteDataCache {
	return NewSiteDataCacheWithTTL(content, logger, defaultSiteDataTTL)
}

// NewSiteDataCacheWithTTL creates a site data cache with a custom TTL.
// Non-positive values fall back to the default.
func NewSiteDataCacheWithTTL(content database.SiteContentRepositoryInterface, logger *zap.Logger, ttl time.Duration) *SiteDataCache {
	if ttl <= 0 {
		ttl = defaultSiteDataTTL
	}
	return &SiteDataCache{
		content: content,
		logger:  logger,
		ttl:     ttl,
		timeout: defaultFetchTimeout,
		now:     time.Now,
	}
}

// Load returns the current snapshot, refetching when the cached one is older
// than the TTL. The three content fetches run in parallel.
func (c *SiteDataCache) Load(ctx context.Context) *SiteDataSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snapshot != nil && c.now().Sub(c.snapshot.FetchedAt) < c.ttl {
		return c.snapshot
	}

	snap, err := c.fetch(ctx)
	if err != nil {
		c.logger.Warn("site_data_fetch_failed", zap.Error(err))
		if c.snapshot != nil {
			return c.snapshot
		}
		return defaultSnapshot(c.now())
	}

	c.snapshot = snap
	return snap
}

func (c *SiteDataCache) fetch(ctx context.Context) (*SiteDataSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	snap := &SiteDataSnapshot{FetchedAt: c.now()}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		courses, err := c.content.ListCourses(gctx, maxCourses)
		if err != nil {
			return err
		}
		snap.Courses = courses
		return nil
	})
	g.Go(func() error {
		stories, err := c.content.ListSuccessStories(gctx, maxSuccessStories)
		if err != nil {
			return err
		}
		snap.SuccessStories = stories
		return nil
	})
	g.Go(func() error {
		testimonials, err := c.content.ListTestimonials(gctx, maxTestimonials)
		if err != nil {
			return err
		}
		snap.Testimonials = testimonials
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return snap, nil
}

// defaultSnapshot is the built-in fallback used when the persistence layer is
// unreachable and no previous snapshot exists. The engine must never surface
// a fetch error to the end user.
func defaultSnapshot(fetchedAt time.Time) *SiteDataSnapshot {
	return &SiteDataSnapshot{
		Courses: []*models.Course{
			{Title: "Smart Farming Fundamentals", Category: "technology", DifficultyLevel: "beginner",
				Description: "An introduction to precision agriculture, sensors and farm data."},
			{Title: "Soil Health & Crop Nutrition", Category: "agronomy", DifficultyLevel: "beginner",
				Description: "Understand soil biology, composting and fertilizer planning."},
			{Title: "IoT for Agriculture", Category: "technology", DifficultyLevel: "intermediate",
				Description: "Build and deploy sensor networks for irrigation and climate control."},
			{Title: "Agribusiness & Farm Management", Category: "business", DifficultyLevel: "intermediate",
				Description: "Plan, finance and market a modern farming operation."},
		},
		SuccessStories: []*models.SuccessStory{
			{StudentName: "Adaeze", Title: "From backyard garden to commercial greenhouse",
				Story: "After completing the IoT course, Adaeze automated her greenhouse and tripled her yield."},
			{StudentName: "Ibrahim", Title: "Smart irrigation on a family farm",
				Story: "Ibrahim cut water usage by 40 percent using what he learned in Smart Farming Fundamentals."},
		},
		Testimonials: []*models.Testimonial{
			{AuthorName: "Chiamaka", Quote: "The courses are practical and easy to follow.", Rating: 5},
			{AuthorName: "Tunde", Quote: "I went from zero tech knowledge to running my own sensors.", Rating: 5},
		},
		FetchedAt: fetchedAt,
	}
}
