// Package classify derives display states from raw backend data: candidate
// status classes, score tiers, job active/closed state and cleaned text lists.
package classify

import "github.com/jonathan/resume-screener/internal/types"

// Color names the palette entry a state is drawn with.
type Color string

// Palette used by the classification tables.
const (
	ColorBlue    Color = "blue"
	ColorPurple  Color = "purple"
	ColorYellow  Color = "yellow"
	ColorGreen   Color = "green"
	ColorRed     Color = "red"
	ColorGray    Color = "gray"
	ColorNeutral Color = "neutral"
)

// DisplayClass is how a candidate status is drawn.
type DisplayClass struct {
	Status types.CandidateStatus
	Color  Color
}

var statusColors = map[types.CandidateStatus]Color{
	types.StatusNew:       ColorBlue,
	types.StatusReviewed:  ColorPurple,
	types.StatusContacted: ColorYellow,
	types.StatusHired:     ColorGreen,
	types.StatusRejected:  ColorRed,
}

// StatusClass returns the display class for a raw status value. Missing and
// unrecognized statuses are drawn as New.
func StatusClass(raw types.CandidateStatus) DisplayClass {
	status := types.ParseCandidateStatus(string(raw))
	return DisplayClass{Status: status, Color: statusColors[status]}
}

// Badge is one entry of the status strip on the candidate detail view.
type Badge struct {
	Status  types.CandidateStatus
	Color   Color
	Current bool
}

// StatusBadges returns one badge per known status. The current status keeps its
// color; the others are muted.
func StatusBadges(current types.CandidateStatus) []Badge {
	active := StatusClass(current).Status
	badges := make([]Badge, 0, len(types.CandidateStatuses))
	for _, s := range types.CandidateStatuses {
		b := Badge{Status: s, Color: ColorGray}
		if s == active {
			b.Color = statusColors[s]
			b.Current = true
		}
		badges = append(badges, b)
	}
	return badges
}
