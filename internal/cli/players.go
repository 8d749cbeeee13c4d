package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dlehdeod1/newcornerkicks/internal/clubapi"
	"github.com/dlehdeod1/newcornerkicks/internal/model"
	"github.com/dlehdeod1/newcornerkicks/internal/views"
)

func newPlayersCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "players",
		Aliases: []string{"player"},
		Short:   "Club roster",
	}

	cmd.AddCommand(newPlayersListCmd(rt))
	cmd.AddCommand(newPlayersGetCmd(rt))
	cmd.AddCommand(newPlayersAddCmd(rt))
	cmd.AddCommand(newPlayersRateCmd(rt))

	return cmd
}

func printPlayer(w io.Writer, p *model.Player) error {
	name := p.Name
	if p.Nickname != "" {
		name += " (" + p.Nickname + ")"
	}
	_, err := fmt.Fprintf(w, "Player: %s #%d\nRating: %.1f\nGames: %d\n", name, p.ID, p.Rating, p.GamesPlayed)
	return err
}

func newPlayersListCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List players",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			players, err := rt.api.Players.List(cmd.Context())
			if err != nil {
				return err
			}
			return rt.output().PrintTable(players, views.PlayersTable(players))
		},
	}
}

func newPlayersGetCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "get <player-id>",
		Short: "Show a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("player id", args[0])
			if err != nil {
				return err
			}
			player, err := rt.api.Players.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return rt.output().Print(player, func(w io.Writer) error { return printPlayer(w, player) })
		},
	}
}

func newPlayersAddCmd(rt *runtime) *cobra.Command {
	var req clubapi.CreatePlayerRequest

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a player",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := rt.token()
			if err != nil {
				return err
			}
			player, err := rt.api.Players.Create(cmd.Context(), token, req)
			if err != nil {
				return err
			}
			return rt.output().Print(player, func(w io.Writer) error { return printPlayer(w, player) })
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "Name as written in the poll (required)")
	cmd.Flags().StringVar(&req.Nickname, "nickname", "", "Nickname")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newPlayersRateCmd(rt *runtime) *cobra.Command {
	var req clubapi.RatingRequest

	cmd := &cobra.Command{
		Use:   "rate <player-id>",
		Short: "Rate a player's performance in a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("player id", args[0])
			if err != nil {
				return err
			}
			token, err := rt.token()
			if err != nil {
				return err
			}
			player, err := rt.api.Players.Rate(cmd.Context(), token, id, req)
			if err != nil {
				return err
			}
			return rt.output().Print(player, func(w io.Writer) error { return printPlayer(w, player) })
		},
	}

	cmd.Flags().Int64Var(&req.SessionID, "session", 0, "Session the rating is for (required)")
	cmd.Flags().IntVar(&req.Score, "score", 0, "Score from 1 to 10 (required)")
	cmd.Flags().StringVar(&req.Comment, "comment", "", "Comment")
	_ = cmd.MarkFlagRequired("session")
	_ = cmd.MarkFlagRequired("score")

	return cmd
}
