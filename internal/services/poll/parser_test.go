package poll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dlehdeod1/newcornerkicks/internal/model"
)

func index() *Index {
	return NewIndex([]*model.Player{
		{ID: 42, Name: "철수"},
		{ID: 43, Name: "김영수", Nickname: "Youngsoo"},
	})
}

func TestParseClassifies(t *testing.T) {
	result := Parse("철수\n영희\nTom Smith\nYoungsoo", index())

	require.Len(t, result.Attendees, 4)
	assert.Equal(t, model.AttendeePlayer, result.Attendees[0].Kind())
	assert.Equal(t, int64(42), *result.Attendees[0].PlayerID)
	assert.Equal(t, model.AttendeeUnknown, result.Attendees[1].Kind())
	assert.Equal(t, model.AttendeeGuest, result.Attendees[2].Kind())
	assert.Equal(t, int64(43), *result.Attendees[3].PlayerID)

	assert.Equal(t, 4, result.TotalCount)
	assert.Equal(t, 2, result.PlayerCount)
	assert.Equal(t, 1, result.GuestCount)
	assert.Equal(t, 1, result.UnknownCount)
}

func TestParseCountsAddUp(t *testing.T) {
	result := Parse("철수\n영희\n민호 친구\n김영수", index())
	assert.Equal(t, result.TotalCount, result.PlayerCount+result.GuestCount+result.UnknownCount)
	assert.Equal(t, len(result.Attendees), result.TotalCount)
}

func TestParseStripsPollDecoration(t *testing.T) {
	text := `[수요 풋살] 2/12 참석 투표
참석 (3명)
1. 철수 ✅
2) 영희
- 민수
• 김영수

불참 (1명)`

	result := Parse(text, index())
	names := make([]string, len(result.Attendees))
	for i, a := range result.Attendees {
		names[i] = a.Name
	}
	assert.Equal(t, []string{"철수", "영희", "민수", "김영수"}, names)
}

func TestParseExplicitGuest(t *testing.T) {
	result := Parse("민호(게스트)\n철수 (guest)", index())
	require.Len(t, result.Attendees, 2)
	assert.Equal(t, "민호", result.Attendees[0].Name)
	assert.True(t, result.Attendees[0].IsGuest)
	// the marker wins over a registered name
	assert.True(t, result.Attendees[1].IsGuest)
	assert.Nil(t, result.Attendees[1].PlayerID)
}

func TestParseDeduplicates(t *testing.T) {
	result := Parse("철수\n1. 철수\n철수 ✅", index())
	assert.Equal(t, 1, result.TotalCount)
}

func TestParseEmpty(t *testing.T) {
	result := Parse("  \n\n", index())
	assert.Equal(t, 0, result.TotalCount)
	assert.NotNil(t, result.Attendees)
}

func TestIndexFirstPlayerWins(t *testing.T) {
	idx := NewIndex([]*model.Player{{ID: 1, Name: "철수"}, {ID: 2, Name: "철수"}})
	id, ok := idx.Lookup("철수")
	assert.True(t, ok)
	assert.Equal(t, int64(1), id)

	_, ok = idx.Lookup("없음")
	assert.False(t, ok)
}
