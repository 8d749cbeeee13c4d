package factory

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dlehdeod1/newcornerkicks/internal/clubapi"
	"github.com/dlehdeod1/newcornerkicks/internal/model"
)

// Seeded admin credentials for local development
const (
	SeedAdminUsername = "admin"
	SeedAdminPassword = "admin1234"
)

// SeedPlayers is the roster created by Seed
var SeedPlayers = []clubapi.CreatePlayerRequest{
	{Name: "김철수", Nickname: "철수"},
	{Name: "이영희", Nickname: "영희"},
	{Name: "박민수", Nickname: "민수"},
	{Name: "최지훈", Nickname: "지훈"},
	{Name: "정우성"},
	{Name: "한소희"},
}

// Seed creates the admin account, links it to the first player and fills
// the roster
func (a *App) Seed(ctx context.Context) error {
	account, err := a.AuthService.CreateAccount(ctx, SeedAdminUsername, "admin@cornerkicks.local", SeedAdminPassword, model.RoleAdmin)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	for i, req := range SeedPlayers {
		p, err := a.PlayerService.Create(ctx, req)
		if err != nil {
			return fmt.Errorf("seed player %q: %w", req.Name, err)
		}
		if i == 0 {
			if _, err := a.PlayerService.Link(ctx, p.ID, account.User); err != nil {
				return fmt.Errorf("seed link: %w", err)
			}
		}
	}
	a.Logger.Info("seeded development data",
		zap.String("admin", SeedAdminUsername),
		zap.Int("players", len(SeedPlayers)),
	)
	return nil
}
