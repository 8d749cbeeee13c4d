package views

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/dlehdeod1/newcornerkicks/internal/clubapi"
	"github.com/dlehdeod1/newcornerkicks/internal/model"
)

// RecentLimit is how many sessions the dashboard shows
const RecentLimit = 5

// DashboardSource is the slice of the API the admin dashboard reads
type DashboardSource interface {
	Stats(ctx context.Context, token string) (*model.AdminStats, error)
	Sessions(ctx context.Context) ([]model.Session, error)
	Notifications(ctx context.Context, token string) ([]model.Notification, error)
}

// Dashboard is the admin overview
type Dashboard struct {
	Stats         model.AdminStats     `json:"stats"`
	Tally         StatusTally          `json:"tally"`
	Recent        []model.Session      `json:"recent"`
	Notifications []model.Notification `json:"notifications"`
	Unread        int                  `json:"unread"`
}

// LoadDashboard fetches the three sources concurrently.
// The first failure cancels the others and is returned.
func LoadDashboard(ctx context.Context, src DashboardSource, token string) (*Dashboard, error) {
	var (
		stats         *model.AdminStats
		sessions      []model.Session
		notifications []model.Notification
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = src.Stats(ctx, token)
		return err
	})
	g.Go(func() error {
		var err error
		sessions, err = src.Sessions(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		notifications, err = src.Notifications(ctx, token)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	d := &Dashboard{
		Tally:         StatusCounts(sessions),
		Notifications: notifications,
	}
	if stats != nil {
		d.Stats = *stats
	}
	recent := SortByDateDesc(sessions)
	if len(recent) > RecentLimit {
		recent = recent[:RecentLimit]
	}
	d.Recent = recent
	for _, n := range notifications {
		if !n.Read {
			d.Unread++
		}
	}
	return d, nil
}

type apiSource struct {
	api *clubapi.API
}

// SourceFromAPI reads the dashboard from the club API
func SourceFromAPI(api *clubapi.API) DashboardSource {
	return apiSource{api: api}
}

func (s apiSource) Stats(ctx context.Context, token string) (*model.AdminStats, error) {
	return s.api.Admin.Stats(ctx, token)
}

func (s apiSource) Sessions(ctx context.Context) ([]model.Session, error) {
	return s.api.Sessions.List(ctx, clubapi.ListSessionsParams{})
}

func (s apiSource) Notifications(ctx context.Context, token string) ([]model.Notification, error) {
	return s.api.Notifications.List(ctx, token)
}
