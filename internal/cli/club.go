package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dlehdeod1/newcornerkicks/internal/model"
	"github.com/dlehdeod1/newcornerkicks/internal/views"
)

func newRankingsCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rankings",
		Aliases: []string{"ranking"},
		Short:   "Season rankings and session MVP",
	}

	var year int
	season := &cobra.Command{
		Use:   "season",
		Short: "Season ranking",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := rt.api.Rankings.Season(cmd.Context(), year)
			if err != nil {
				return err
			}
			return rt.output().PrintTable(entries, views.RankingRows(entries))
		},
	}
	season.Flags().IntVar(&year, "year", 0, "Season year (default: current)")

	mvp := &cobra.Command{
		Use:   "mvp <session-id>",
		Short: "Ranking of a single session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sessionID, err := parseID("session id", args[0])
			if err != nil {
				return err
			}
			entries, err := rt.api.Rankings.MVP(cmd.Context(), sessionID)
			if err != nil {
				return err
			}
			return rt.output().PrintTable(entries, views.RankingRows(entries))
		},
	}

	cmd.AddCommand(season, mvp)
	return cmd
}

func newSettlementsCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "settlements",
		Aliases: []string{"settlement", "fees"},
		Short:   "Session fees",
	}

	bySession := &cobra.Command{
		Use:   "session <session-id>",
		Short: "Fees billed for a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sessionID, err := parseID("session id", args[0])
			if err != nil {
				return err
			}
			settlements, err := rt.api.Settlements.BySession(cmd.Context(), sessionID)
			if err != nil {
				return err
			}
			return rt.output().PrintTable(settlements, views.SettlementRows(settlements))
		},
	}

	var year int
	summary := &cobra.Command{
		Use:   "summary",
		Short: "Season totals per player",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := rt.api.Settlements.Summary(cmd.Context(), year)
			if err != nil {
				return err
			}
			return rt.output().Print(s, func(w io.Writer) error {
				if _, err := fmt.Fprintln(w, views.SummaryHeadline(*s)); err != nil {
					return err
				}
				return views.SummaryRows(*s).Render(w)
			})
		},
	}
	summary.Flags().IntVar(&year, "year", 0, "Season year (default: current)")

	pay := &cobra.Command{
		Use:   "pay <settlement-id>",
		Short: "Mark a fee as paid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("settlement id", args[0])
			if err != nil {
				return err
			}
			token, err := rt.token()
			if err != nil {
				return err
			}
			s, err := rt.api.Settlements.MarkPaid(cmd.Context(), token, id)
			if err != nil {
				return err
			}
			return rt.output().Print(s, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "%s %s 정산 완료\n", s.Name, views.FormatWon(s.Amount))
				return err
			})
		},
	}

	cmd.AddCommand(bySession, summary, pay)
	return cmd
}

func newNotificationsCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"notification", "inbox"},
		Short:   "Your notifications",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List notifications, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := rt.token()
			if err != nil {
				return err
			}
			notifications, err := rt.api.Notifications.List(cmd.Context(), token)
			if err != nil {
				return err
			}
			return rt.output().PrintTable(notifications, views.NotificationsTable(notifications))
		},
	}

	var all bool
	read := &cobra.Command{
		Use:   "read [notification-id]",
		Short: "Mark one or all notifications read",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all == (len(args) == 1) {
				return fmt.Errorf("give a notification id or --all")
			}
			token, err := rt.token()
			if err != nil {
				return err
			}
			if all {
				if err := rt.api.Notifications.MarkAllRead(cmd.Context(), token); err != nil {
					return err
				}
				return rt.output().PrintMessage("모든 알림을 읽음 처리했습니다.")
			}
			id, err := parseID("notification id", args[0])
			if err != nil {
				return err
			}
			if err := rt.api.Notifications.MarkRead(cmd.Context(), token, id); err != nil {
				return err
			}
			return rt.output().PrintMessage(fmt.Sprintf("알림 #%d 을(를) 읽음 처리했습니다.", id))
		},
	}
	read.Flags().BoolVar(&all, "all", false, "Mark every notification read")

	cmd.AddCommand(list, read, newNotificationsWatchCmd(rt))
	return cmd
}

// errWatchDone stops a watch after the requested number of notifications
var errWatchDone = errors.New("watch done")

func newNotificationsWatchCmd(rt *runtime) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print new notifications as they arrive (Ctrl-C to stop)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := rt.token()
			if err != nil {
				return err
			}
			seen := 0
			err = rt.api.Notifications.Watch(cmd.Context(), token, func(n model.Notification) error {
				line := fmt.Sprintf("[%s] %s", n.CreatedAt.Local().Format("01-02 15:04"), n.Title)
				if n.Body != "" {
					line += " - " + n.Body
				}
				if err := rt.output().PrintEvent(n, line); err != nil {
					return err
				}
				seen++
				if count > 0 && seen >= count {
					return errWatchDone
				}
				return nil
			})
			if errors.Is(err, errWatchDone) || errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 0, "Exit after this many notifications (0 = run until interrupted)")

	return cmd
}

func newAdminCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Club administration (admins only)",
	}

	dashboard := &cobra.Command{
		Use:   "dashboard",
		Short: "Stats, recent sessions and notifications at a glance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := rt.token()
			if err != nil {
				return err
			}
			d, err := views.LoadDashboard(cmd.Context(), views.SourceFromAPI(rt.api), token)
			if err != nil {
				return err
			}
			return rt.output().Print(d, func(w io.Writer) error { return printDashboard(w, d) })
		},
	}

	users := &cobra.Command{
		Use:   "users",
		Short: "List accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := rt.token()
			if err != nil {
				return err
			}
			list, err := rt.api.Admin.Users(cmd.Context(), token)
			if err != nil {
				return err
			}
			return rt.output().PrintTable(list, views.UsersTable(list))
		},
	}

	role := &cobra.Command{
		Use:   "role <user-id> <ADMIN|MEMBER>",
		Short: "Change an account's role",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseID("user id", args[0])
			if err != nil {
				return err
			}
			r := model.Role(strings.ToUpper(args[1]))
			if !r.Valid() {
				return fmt.Errorf("unknown role %q", args[1])
			}
			token, err := rt.token()
			if err != nil {
				return err
			}
			user, err := rt.api.Admin.SetRole(cmd.Context(), token, userID, r)
			if err != nil {
				return err
			}
			return rt.output().Print(user, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "%s → %s\n", user.Username, user.Role)
				return err
			})
		},
	}

	cmd.AddCommand(dashboard, users, role)
	return cmd
}

func printDashboard(w io.Writer, d *views.Dashboard) error {
	s := d.Stats
	lines := []string{
		fmt.Sprintf("회원 %d / 선수 %d / 세션 %d (모집중 %d)", s.TotalUsers, s.TotalPlayers, s.TotalSessions, s.RecruitingSessions),
		fmt.Sprintf("미정산 %d건 %s", s.UnpaidSettlements, views.FormatWon(s.OutstandingAmount)),
		fmt.Sprintf("모집중 %d / 마감 %d / 완료 %d", d.Tally.Recruiting, d.Tally.Closed, d.Tally.Completed),
		"",
		"최근 세션",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if err := views.SessionsTable(d.Recent).Render(w); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n읽지 않은 알림 %d건\n", d.Unread)
	return err
}
