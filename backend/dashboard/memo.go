package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"classroom-dashboard/backend/models"
)

// RequestCache memoizes the repeated gateway reads of one dashboard render.
// It must not outlive the request that created it: entries never expire.
// Memoized reads run under the render's context, not the caller's, so one
// view's cancelled fan-out cannot poison an entry its siblings share.
// Range and delivery queries pass straight through.
type RequestCache struct {
	Gateway

	ctx     context.Context
	mu      sync.Mutex
	entries map[string]*memoEntry
}

type memoEntry struct {
	once sync.Once
	val  any
	err  error
}

var _ Gateway = (*RequestCache)(nil)

func NewRequestCache(ctx context.Context, gw Gateway) *RequestCache {
	return &RequestCache{Gateway: gw, ctx: ctx, entries: make(map[string]*memoEntry)}
}

func memoize[T any](c *RequestCache, key string, fetch func() (T, error)) (T, error) {
	c.mu.Lock()
	entry, ok := c.entries[key]
	if !ok {
		entry = &memoEntry{}
		c.entries[key] = entry
	}
	c.mu.Unlock()

	entry.once.Do(func() {
		defer func() {
			if r := recover(); r != nil {
				entry.err = fmt.Errorf("%s: panic: %v", key, r)
			}
		}()
		entry.val, entry.err = fetch()
	})

	var zero T
	if entry.err != nil {
		return zero, entry.err
	}
	return entry.val.(T), nil
}

func (c *RequestCache) GetRosterByClassroom(_ context.Context, classroomID string) (models.Roster, error) {
	return memoize(c, "roster:"+classroomID, func() (models.Roster, error) {
		return c.Gateway.GetRosterByClassroom(c.ctx, classroomID)
	})
}

func (c *RequestCache) GetRecentMeetings(_ context.Context, classroomID string, limit int) ([]models.Meeting, error) {
	return memoize(c, fmt.Sprintf("recent-meetings:%s:%d", classroomID, limit), func() ([]models.Meeting, error) {
		return c.Gateway.GetRecentMeetings(c.ctx, classroomID, limit)
	})
}

func (c *RequestCache) GetVisibleMeetings(_ context.Context, classroomID string) ([]models.Meeting, error) {
	return memoize(c, "visible-meetings:"+classroomID, func() ([]models.Meeting, error) {
		return c.Gateway.GetVisibleMeetings(c.ctx, classroomID)
	})
}

func (c *RequestCache) GetProjectsWithSchedule(_ context.Context, classroomID string) ([]models.ScheduledProject, error) {
	return memoize(c, "scheduled-projects:"+classroomID, func() ([]models.ScheduledProject, error) {
		return c.Gateway.GetProjectsWithSchedule(c.ctx, classroomID)
	})
}

// GetEndedProjects is keyed without now: the first call of the render fixes it.
func (c *RequestCache) GetEndedProjects(_ context.Context, classroomID string, now time.Time, limit int) ([]models.ScheduledProject, error) {
	return memoize(c, fmt.Sprintf("ended-projects:%s:%d", classroomID, limit), func() ([]models.ScheduledProject, error) {
		return c.Gateway.GetEndedProjects(c.ctx, classroomID, now, limit)
	})
}
