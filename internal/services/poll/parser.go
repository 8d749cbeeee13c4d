// Package poll turns pasted group-chat poll text into classified attendees.
package poll

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dlehdeod1/newcornerkicks/internal/model"
)

var (
	// "1.", "2)", "- ", "• " and similar list prefixes
	listPrefix = regexp.MustCompile(`^(?:\d+\s*[.)]|[-*•·▪◦]+)\s*`)
	// check marks people add after their name when voting
	voteSuffix = regexp.MustCompile(`[\s✅✔☑⭕\x{FE0F}]+$`)
	// "(게스트)" or "(guest)" after a name marks a guest explicitly
	guestSuffix = regexp.MustCompile(`(?i)\s*\((?:게스트|guest|용병)\)$`)
)

// headerMarkers appear in poll titles and tallies, never in a name line
var headerMarkers = []string{"투표", "참석", "불참", "명)"}

// MemberNameLength is the rune length of a name treated as an unregistered member
const MemberNameLength = 2

// Index resolves names to players. Both the name and the nickname match.
type Index struct {
	byName map[string]int64
}

// NewIndex builds an index over players. An earlier player wins a clash.
func NewIndex(players []*model.Player) *Index {
	idx := &Index{byName: make(map[string]int64, len(players)*2)}
	for _, p := range players {
		for _, key := range []string{p.Name, p.Nickname} {
			key = strings.TrimSpace(key)
			if key == "" {
				continue
			}
			if _, taken := idx.byName[key]; !taken {
				idx.byName[key] = p.ID
			}
		}
	}
	return idx
}

// Lookup returns the player id for an exact name or nickname match
func (idx *Index) Lookup(name string) (int64, bool) {
	id, ok := idx.byName[name]
	return id, ok
}

// Parse classifies every name line of text. Each distinct name appears once,
// in the order first seen.
func Parse(text string, idx *Index) model.ParseResult {
	result := model.ParseResult{Attendees: []model.Attendee{}}
	seen := make(map[string]struct{})

	for _, line := range strings.Split(text, "\n") {
		name, guest, ok := cleanLine(line)
		if !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		attendee := classify(name, guest, idx)
		switch attendee.Kind() {
		case model.AttendeePlayer:
			result.PlayerCount++
		case model.AttendeeGuest:
			result.GuestCount++
		default:
			result.UnknownCount++
		}
		result.Attendees = append(result.Attendees, attendee)
	}

	result.TotalCount = len(result.Attendees)
	return result
}

func classify(name string, guest bool, idx *Index) model.Attendee {
	if guest {
		return model.Attendee{Name: name, IsGuest: true}
	}
	if id, ok := idx.Lookup(name); ok {
		return model.Attendee{Name: name, PlayerID: &id}
	}
	if utf8.RuneCountInString(name) == MemberNameLength {
		return model.Attendee{Name: name}
	}
	return model.Attendee{Name: name, IsGuest: true}
}

// cleanLine extracts the name from one line of poll text
func cleanLine(line string) (name string, guest bool, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", false, false
	}
	for _, marker := range headerMarkers {
		if strings.Contains(line, marker) {
			return "", false, false
		}
	}

	line = listPrefix.ReplaceAllString(line, "")
	line = voteSuffix.ReplaceAllString(line, "")
	if guestSuffix.MatchString(line) {
		guest = true
		line = guestSuffix.ReplaceAllString(line, "")
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", false, false
	}
	return line, guest, true
}
