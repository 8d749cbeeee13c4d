package views

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dlehdeod1/newcornerkicks/internal/model"
)

// KindLabel is the Korean label of an attendee class
func KindLabel(k model.AttendeeKind) string {
	switch k {
	case model.AttendeePlayer:
		return "선수"
	case model.AttendeeGuest:
		return "게스트"
	default:
		return "미등록"
	}
}

// PreviewTable lists parsed attendees in the order they were pasted
func PreviewTable(result model.ParseResult) *Table {
	t := NewTable("#", "이름", "구분")
	for i, a := range result.Attendees {
		t.AddRow(strconv.Itoa(i+1), a.Name, KindLabel(a.Kind()))
	}
	return t
}

// PreviewSummary is the count line shown above the preview table
func PreviewSummary(result model.ParseResult) string {
	return fmt.Sprintf("총 %d명 (선수 %d, 게스트 %d, 미등록 %d)",
		result.TotalCount, result.PlayerCount, result.GuestCount, result.UnknownCount)
}

// AttendanceTable lists stored attendance rows
func AttendanceTable(entries []model.AttendanceEntry) *Table {
	t := NewTable("#", "이름", "구분")
	for i, e := range entries {
		kind := "선수"
		if e.IsGuest {
			kind = "게스트"
		}
		t.AddRow(strconv.Itoa(i+1), e.Name, kind)
	}
	return t
}

// RankingRows renders a ranking in server order
func RankingRows(entries []model.RankingEntry) *Table {
	t := NewTable("순위", "이름", "출석", "골", "도움", "점수")
	for _, e := range entries {
		t.AddRow(
			strconv.Itoa(e.Rank),
			e.Name,
			strconv.Itoa(e.Attendance),
			strconv.Itoa(e.Goals),
			strconv.Itoa(e.Assists),
			strconv.FormatFloat(e.Score, 'f', 1, 64),
		)
	}
	return t
}

// SettlementRows renders one session's settlements
func SettlementRows(settlements []model.Settlement) *Table {
	t := NewTable("ID", "이름", "금액", "사유", "정산")
	for _, s := range settlements {
		t.AddRow(strconv.FormatInt(s.ID, 10), s.Name, FormatWon(s.Amount), s.Reason, paidLabel(s.Paid))
	}
	return t
}

// SummaryRows renders a season summary per player
func SummaryRows(summary model.SettlementSummary) *Table {
	t := NewTable("이름", "합계", "미정산")
	for _, p := range summary.Players {
		t.AddRow(p.Name, FormatWon(p.Total), FormatWon(p.Unpaid))
	}
	return t
}

// SummaryHeadline is the totals line of a season summary
func SummaryHeadline(summary model.SettlementSummary) string {
	return fmt.Sprintf("%d년 총 %s / 정산 %s / 미정산 %s",
		summary.Year, FormatWon(summary.TotalAmount), FormatWon(summary.PaidAmount), FormatWon(summary.Outstanding))
}

func paidLabel(paid bool) string {
	if paid {
		return "완료"
	}
	return "대기"
}

// PlayersTable lists players
func PlayersTable(players []model.Player) *Table {
	t := NewTable("ID", "이름", "닉네임", "평점", "경기")
	for _, p := range players {
		t.AddRow(
			strconv.FormatInt(p.ID, 10),
			p.Name,
			p.Nickname,
			strconv.FormatFloat(p.Rating, 'f', 1, 64),
			strconv.Itoa(p.GamesPlayed),
		)
	}
	return t
}

// MatchesTable lists matches with their scores
func MatchesTable(matches []model.Match) *Table {
	t := NewTable("ID", "경기", "A", "B", "스코어", "상태")
	for _, m := range matches {
		t.AddRow(
			strconv.FormatInt(m.ID, 10),
			strconv.Itoa(m.MatchNo),
			strconv.FormatInt(m.TeamAID, 10),
			strconv.FormatInt(m.TeamBID, 10),
			fmt.Sprintf("%d:%d", m.ScoreA, m.ScoreB),
			string(m.Status),
		)
	}
	return t
}

// TeamsTable lists each team with its members
func TeamsTable(teams []model.Team) *Table {
	t := NewTable("ID", "팀", "색", "인원", "선수")
	for _, team := range teams {
		names := make([]string, 0, len(team.Members))
		for _, m := range team.Members {
			names = append(names, m.Name)
		}
		t.AddRow(strconv.FormatInt(team.ID, 10), team.Name, team.Color, strconv.Itoa(len(names)), strings.Join(names, ", "))
	}
	return t
}

// NotificationsTable lists notifications, unread first marked with *
func NotificationsTable(notifications []model.Notification) *Table {
	t := NewTable("ID", "", "제목", "내용")
	for _, n := range notifications {
		mark := "*"
		if n.Read {
			mark = ""
		}
		t.AddRow(strconv.FormatInt(n.ID, 10), mark, n.Title, n.Body)
	}
	return t
}

// UsersTable lists accounts with their roles
func UsersTable(users []model.User) *Table {
	t := NewTable("ID", "아이디", "이메일", "권한")
	for _, u := range users {
		t.AddRow(strconv.FormatInt(u.ID, 10), u.Username, u.Email, string(u.Role))
	}
	return t
}
