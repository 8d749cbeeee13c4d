package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dlehdeod1/newcornerkicks/internal/clubapi"
	"github.com/dlehdeod1/newcornerkicks/internal/model"
	"github.com/dlehdeod1/newcornerkicks/internal/views"
)

func newMatchesCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "matches",
		Aliases: []string{"match"},
		Short:   "Matches played in a session",
	}

	cmd.AddCommand(newMatchesListCmd(rt))
	cmd.AddCommand(newMatchesGetCmd(rt))
	cmd.AddCommand(newMatchesCreateCmd(rt))
	cmd.AddCommand(newMatchesScoreCmd(rt))
	cmd.AddCommand(newMatchesEventCmd(rt))

	return cmd
}

func printMatch(w io.Writer, m *model.Match) error {
	if _, err := fmt.Fprintf(w, "Match %d (#%d, session %d)\nTeam %d %d:%d Team %d [%s]\n",
		m.MatchNo, m.ID, m.SessionID, m.TeamAID, m.ScoreA, m.ScoreB, m.TeamBID, m.Status); err != nil {
		return err
	}
	if len(m.Events) == 0 {
		return nil
	}
	t := views.NewTable("분", "종류", "선수")
	for _, e := range m.Events {
		t.AddRow(fmt.Sprint(e.Minute), string(e.Type), fmt.Sprint(e.PlayerID))
	}
	return t.Render(w)
}

func newMatchesListCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "list <session-id>",
		Short: "List a session's matches",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sessionID, err := parseID("session id", args[0])
			if err != nil {
				return err
			}
			matches, err := rt.api.Matches.ListBySession(cmd.Context(), sessionID)
			if err != nil {
				return err
			}
			return rt.output().PrintTable(matches, views.MatchesTable(matches))
		},
	}
}

func newMatchesGetCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "get <match-id>",
		Short: "Show a match with its events",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("match id", args[0])
			if err != nil {
				return err
			}
			match, err := rt.api.Matches.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return rt.output().Print(match, func(w io.Writer) error { return printMatch(w, match) })
		},
	}
}

func newMatchesCreateCmd(rt *runtime) *cobra.Command {
	var req clubapi.CreateMatchRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Schedule a match between two teams",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := rt.token()
			if err != nil {
				return err
			}
			match, err := rt.api.Matches.Create(cmd.Context(), token, req)
			if err != nil {
				return err
			}
			return rt.output().Print(match, func(w io.Writer) error { return printMatch(w, match) })
		},
	}

	cmd.Flags().Int64Var(&req.SessionID, "session", 0, "Session id (required)")
	cmd.Flags().Int64Var(&req.TeamAID, "team-a", 0, "Home team id (required)")
	cmd.Flags().Int64Var(&req.TeamBID, "team-b", 0, "Away team id (required)")
	cmd.Flags().IntVar(&req.MatchNo, "no", 0, "Match number (default: next)")
	_ = cmd.MarkFlagRequired("session")
	_ = cmd.MarkFlagRequired("team-a")
	_ = cmd.MarkFlagRequired("team-b")

	return cmd
}

func newMatchesScoreCmd(rt *runtime) *cobra.Command {
	var req clubapi.ScoreRequest

	cmd := &cobra.Command{
		Use:   "score <match-id>",
		Short: "Record a match score",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("match id", args[0])
			if err != nil {
				return err
			}
			token, err := rt.token()
			if err != nil {
				return err
			}
			match, err := rt.api.Matches.RecordScore(cmd.Context(), token, id, req)
			if err != nil {
				return err
			}
			return rt.output().Print(match, func(w io.Writer) error { return printMatch(w, match) })
		},
	}

	cmd.Flags().IntVar(&req.ScoreA, "a", 0, "Home team goals")
	cmd.Flags().IntVar(&req.ScoreB, "b", 0, "Away team goals")
	cmd.Flags().BoolVar(&req.Finished, "finished", false, "Mark the match finished")

	return cmd
}

func newMatchesEventCmd(rt *runtime) *cobra.Command {
	var (
		eventType string
		event     model.MatchEvent
	)

	cmd := &cobra.Command{
		Use:   "event <match-id>",
		Short: "Record a goal, assist or save",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("match id", args[0])
			if err != nil {
				return err
			}
			token, err := rt.token()
			if err != nil {
				return err
			}
			event.Type = model.MatchEventType(strings.ToLower(eventType))
			match, err := rt.api.Matches.AddEvent(cmd.Context(), token, id, event)
			if err != nil {
				return err
			}
			return rt.output().Print(match, func(w io.Writer) error { return printMatch(w, match) })
		},
	}

	cmd.Flags().StringVar(&eventType, "type", string(model.EventGoal), "goal, assist or save")
	cmd.Flags().Int64Var(&event.PlayerID, "player", 0, "Player id (required)")
	cmd.Flags().IntVar(&event.Minute, "minute", 0, "Minute of the match")
	_ = cmd.MarkFlagRequired("player")

	return cmd
}

func newTeamsCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "teams",
		Aliases: []string{"team"},
		Short:   "Team assignment for a session",
	}

	cmd.AddCommand(newTeamsListCmd(rt))
	cmd.AddCommand(newTeamsAssignCmd(rt))
	cmd.AddCommand(newTeamsAutoCmd(rt))

	return cmd
}

func newTeamsListCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "list <session-id>",
		Short: "List a session's teams",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sessionID, err := parseID("session id", args[0])
			if err != nil {
				return err
			}
			teams, err := rt.api.Teams.ListBySession(cmd.Context(), sessionID)
			if err != nil {
				return err
			}
			return rt.output().PrintTable(teams, views.TeamsTable(teams))
		},
	}
}

// parseTeam reads "name[@color]:id,id,..."
func parseTeam(s string) (clubapi.TeamAssignment, error) {
	head, ids, ok := strings.Cut(s, ":")
	if !ok {
		return clubapi.TeamAssignment{}, fmt.Errorf("invalid team %q, want name:id,id", s)
	}
	name, color, _ := strings.Cut(head, "@")
	playerIDs, err := parseIDList("player id", ids)
	if err != nil {
		return clubapi.TeamAssignment{}, err
	}
	return clubapi.TeamAssignment{
		Name:      strings.TrimSpace(name),
		Color:     strings.TrimSpace(color),
		PlayerIDs: playerIDs,
	}, nil
}

func newTeamsAssignCmd(rt *runtime) *cobra.Command {
	var specs []string

	cmd := &cobra.Command{
		Use:     "assign <session-id> --team name[@color]:id,id ...",
		Short:   "Replace a session's teams",
		Example: `  cornerkicks teams assign 3 --team "A@red:2,3,4" --team "B@blue:5,6,7"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sessionID, err := parseID("session id", args[0])
			if err != nil {
				return err
			}
			var req clubapi.AssignTeamsRequest
			for _, spec := range specs {
				team, err := parseTeam(spec)
				if err != nil {
					return err
				}
				req.Teams = append(req.Teams, team)
			}
			token, err := rt.token()
			if err != nil {
				return err
			}
			teams, err := rt.api.Teams.Assign(cmd.Context(), token, sessionID, req)
			if err != nil {
				return err
			}
			return rt.output().PrintTable(teams, views.TeamsTable(teams))
		},
	}

	cmd.Flags().StringArrayVar(&specs, "team", nil, "Team as name[@color]:id,id (repeatable)")
	_ = cmd.MarkFlagRequired("team")

	return cmd
}

func newTeamsAutoCmd(rt *runtime) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "auto <session-id>",
		Short: "Split the session's registered players into balanced teams",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sessionID, err := parseID("session id", args[0])
			if err != nil {
				return err
			}
			token, err := rt.token()
			if err != nil {
				return err
			}
			teams, err := rt.api.Teams.Auto(cmd.Context(), token, sessionID, count)
			if err != nil {
				return err
			}
			return rt.output().PrintTable(teams, views.TeamsTable(teams))
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 2, "Number of teams (2-4)")

	return cmd
}
