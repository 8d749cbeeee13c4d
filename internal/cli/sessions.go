package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dlehdeod1/newcornerkicks/internal/clubapi"
	"github.com/dlehdeod1/newcornerkicks/internal/model"
	"github.com/dlehdeod1/newcornerkicks/internal/schedule"
	"github.com/dlehdeod1/newcornerkicks/internal/views"
	"github.com/dlehdeod1/newcornerkicks/internal/wizard"
)

func newSessionsCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sessions",
		Aliases: []string{"session"},
		Short:   "Match day sessions",
	}

	cmd.AddCommand(newSessionsListCmd(rt))
	cmd.AddCommand(newSessionsGetCmd(rt))
	cmd.AddCommand(newSessionsNewCmd(rt))
	cmd.AddCommand(newSessionsStatusCmd(rt))
	cmd.AddCommand(newSessionsDeleteCmd(rt))
	cmd.AddCommand(newSessionsAttendanceCmd(rt))
	cmd.AddCommand(newSessionsUpcomingCmd(rt))

	return cmd
}

func newSessionsListCmd(rt *runtime) *cobra.Command {
	var (
		status string
		year   int
		month  int
		query  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sessions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params := clubapi.ListSessionsParams{Status: model.SessionStatus(status), Year: year, Month: month}
			if status != "" && !params.Status.Valid() {
				return fmt.Errorf("unknown status %q", status)
			}
			sessions, err := rt.api.Sessions.List(cmd.Context(), params)
			if err != nil {
				return err
			}
			sessions = views.SortByDateDesc(views.FilterSessions(sessions, query))
			return rt.output().PrintTable(sessions, views.SessionsTable(sessions))
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by status: recruiting, closed, completed")
	cmd.Flags().IntVar(&year, "year", 0, "Filter by year")
	cmd.Flags().IntVar(&month, "month", 0, "Filter by month")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Match date or title")

	return cmd
}

// sessionDetail is a session with its stored attendance
type sessionDetail struct {
	Session    *model.Session          `json:"session"`
	Attendance []model.AttendanceEntry `json:"attendance"`
}

func newSessionsGetCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "get <session-id>",
		Short: "Show a session and its attendance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("session id", args[0])
			if err != nil {
				return err
			}
			session, err := rt.api.Sessions.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			attendance, err := rt.api.Sessions.Attendance(cmd.Context(), id)
			if err != nil {
				return err
			}
			detail := sessionDetail{Session: session, Attendance: attendance}
			return rt.output().Print(detail, func(w io.Writer) error {
				if _, err := fmt.Fprintf(w, "%s [%s]\n참석 %d명\n\n",
					views.SessionLabel(*session), session.Status.Label(), len(attendance)); err != nil {
					return err
				}
				return views.AttendanceTable(attendance).Render(w)
			})
		},
	}
}

// newSessionResult is the outcome of `sessions new`
type newSessionResult struct {
	SessionID int64              `json:"sessionId"`
	Preview   *model.ParseResult `json:"preview"`
	Saved     bool               `json:"saved"`
}

func newSessionsNewCmd(rt *runtime) *cobra.Command {
	var (
		date     string
		title    string
		text     string
		textFile string
		yes      bool
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a session from a pasted attendance poll",
		Long: `Create a session in three steps: create it for a date, classify the pasted
poll text, then save every attendee after a preview.

The date defaults to the next match day. The poll text comes from --text,
--text-file, or stdin when neither is given (stdin requires --yes).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := rt.token(); err != nil {
				return err
			}

			pollText := text
			if pollText == "" {
				path := textFile
				if path == "" {
					path = "-"
				}
				if path == "-" && !yes {
					return errors.New("--yes is required when the poll text is read from stdin")
				}
				var err error
				if pollText, err = readText(cmd.InOrStdin(), path); err != nil {
					return err
				}
			}
			if strings.TrimSpace(pollText) == "" {
				return wizard.ErrEmptyText
			}

			w := wizard.New(wizard.NewBackend(rt.api.Sessions, rt.auth.Token), wizard.Options{
				Clock:        rt.opts.Clock,
				DefaultTitle: rt.cfg.Club.Title,
				Logger:       rt.logger.Named("wizard"),
			})
			if date == "" && rt.cfg.MatchWeekday() != time.Wednesday {
				date = schedule.FormatDate(schedule.NextWeekday(rt.opts.Clock.Now(), rt.cfg.MatchWeekday()))
			}
			if date != "" {
				if err := w.SetDate(date); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("title") {
				if err := w.SetTitle(title); err != nil {
					return err
				}
			}

			ctx := cmd.Context()
			if err := w.CreateSession(ctx); err != nil {
				return err
			}
			if err := w.SetText(pollText); err != nil {
				return err
			}
			if err := w.Parse(ctx); err != nil {
				return fmt.Errorf("세션 #%d: %s", w.SessionID(), w.Err())
			}

			out := rt.output()
			result := newSessionResult{SessionID: w.SessionID(), Preview: w.Result()}
			if !out.JSON() {
				if err := printPreview(cmd.OutOrStdout(), w); err != nil {
					return err
				}
			}

			if !yes {
				ok, err := confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), "출석을 저장할까요?")
				if err != nil {
					return err
				}
				if !ok {
					_ = w.Cancel()
					if out.JSON() {
						return out.Print(result, nil)
					}
					return out.PrintMessage(fmt.Sprintf("저장하지 않았습니다. 세션 #%d 은(는) 생성된 상태입니다.", result.SessionID))
				}
			}

			if err := w.Save(ctx); err != nil {
				return fmt.Errorf("세션 #%d: %s", result.SessionID, w.Err())
			}
			result.Saved = true
			return out.Print(result, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "출석 %d명이 저장되었습니다. (세션 #%d)\n", result.Preview.TotalCount, result.SessionID)
				return err
			})
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Match date, YYYY-MM-DD (default: next match day)")
	cmd.Flags().StringVar(&title, "title", "", "Session title (default: club title)")
	cmd.Flags().StringVar(&text, "text", "", "Poll text")
	cmd.Flags().StringVarP(&textFile, "text-file", "f", "", "Read the poll text from a file, - for stdin")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Save without asking")
	cmd.MarkFlagsMutuallyExclusive("text", "text-file")

	return cmd
}

func printPreview(w io.Writer, wz *wizard.Wizard) error {
	result := wz.Result()
	if result == nil {
		return nil
	}
	if _, err := fmt.Fprintf(w, "세션 #%d %s %s\n%s\n\n", wz.SessionID(), wz.Date(), wz.Title(), views.PreviewSummary(*result)); err != nil {
		return err
	}
	if err := views.PreviewTable(*result).Render(w); err != nil {
		return err
	}
	if msg := wz.WarningMessage(); msg != "" {
		if _, err := fmt.Fprintf(w, "\n! %s\n", msg); err != nil {
			return err
		}
	}
	return nil
}

func newSessionsStatusCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "status <session-id> <recruiting|closed|completed>",
		Short: "Move a session through its lifecycle",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("session id", args[0])
			if err != nil {
				return err
			}
			status := model.SessionStatus(strings.ToLower(args[1]))
			if !status.Valid() {
				return fmt.Errorf("unknown status %q", args[1])
			}
			token, err := rt.token()
			if err != nil {
				return err
			}
			session, err := rt.api.Sessions.UpdateStatus(cmd.Context(), token, id, status)
			if err != nil {
				return err
			}
			return rt.output().Print(session, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "%s → %s\n", views.SessionLabel(*session), session.Status.Label())
				return err
			})
		},
	}
}

func newSessionsDeleteCmd(rt *runtime) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <session-id>",
		Short: "Delete a session with its attendance and matches",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("session id", args[0])
			if err != nil {
				return err
			}
			token, err := rt.token()
			if err != nil {
				return err
			}
			if !yes {
				ok, err := confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), fmt.Sprintf("세션 #%d 을(를) 삭제할까요?", id))
				if err != nil || !ok {
					return err
				}
			}
			if err := rt.api.Sessions.Delete(cmd.Context(), token, id); err != nil {
				return err
			}
			return rt.output().PrintMessage(fmt.Sprintf("세션 #%d 이(가) 삭제되었습니다.", id))
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without asking")

	return cmd
}

func newSessionsAttendanceCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "attendance <session-id>",
		Short: "List a session's saved attendance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("session id", args[0])
			if err != nil {
				return err
			}
			entries, err := rt.api.Sessions.Attendance(cmd.Context(), id)
			if err != nil {
				return err
			}
			return rt.output().PrintTable(entries, views.AttendanceTable(entries))
		},
	}
}

// matchDay is one upcoming date
type matchDay struct {
	Date string `json:"date"`
	Day  string `json:"day"`
}

func newSessionsUpcomingCmd(rt *runtime) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "upcoming",
		Short: "List the next match days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			days := schedule.Upcoming(rt.opts.Clock.Now(), rt.cfg.MatchWeekday(), count)
			out := make([]matchDay, 0, len(days))
			t := views.NewTable("날짜", "요일")
			for _, d := range days {
				md := matchDay{Date: schedule.FormatDate(d), Day: schedule.DayLabel(d)}
				out = append(out, md)
				t.AddRow(md.Date, md.Day)
			}
			return rt.output().PrintTable(out, t)
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 4, "How many match days")

	return cmd
}
