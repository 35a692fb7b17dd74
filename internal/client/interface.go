package client

import (
	"context"
	"time"

	"github.com/mauv0809/scrim-scheduler/internal/planner"
	"github.com/mauv0809/scrim-scheduler/internal/roster"
)

// SchedulerClient defines the interface for talking to a running scheduler.
// This allows for mock implementations to be used in tests.
type SchedulerClient interface {
	Health(ctx context.Context) error
	Hours(ctx context.Context) (Hours, error)
	ListPlayers(ctx context.Context) ([]roster.Player, error)
	PlayerGrid(ctx context.Context, playerID, zone string, date time.Time) (*planner.GridResult, error)
	TeamGrid(ctx context.Context, teamID, zone string, date time.Time) (*planner.GridResult, error)
}
