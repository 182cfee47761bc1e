// Package listing filters and orders the candidate and job collections shown
// on the list views. Everything here is pure and recomputed on every call.
package listing

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jonathan/resume-screener/internal/classify"
	"github.com/jonathan/resume-screener/internal/types"
)

// TabAll is the catch-all tab on both list views.
const TabAll = "All"

// ErrUnknownTab is returned for a tab that neither list view offers.
var ErrUnknownTab = errors.New("unknown tab")

// Result is a filtered, ordered view of a collection.
type Result[T any] struct {
	Items []T
}

// Empty reports the "no results" state.
func (r Result[T]) Empty() bool {
	return len(r.Items) == 0
}

// Len returns the number of items.
func (r Result[T]) Len() int {
	return len(r.Items)
}

// TabCount is the label and size of one filter tab.
type TabCount struct {
	Tab   string
	Count int
}

func matches(query string, fields ...string) bool {
	if query == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}

// normalizeQuery lowercases the search text. Whitespace is significant: a
// query of spaces only matches fields that contain them.
func normalizeQuery(q string) string {
	return strings.ToLower(q)
}

// CandidateQuery selects candidates by free text and status tab.
type CandidateQuery struct {
	Search string
	// Tab is TabAll (or empty) or one of the candidate statuses.
	Tab string
}

// Validate rejects a tab that is not All or a known status.
func (q CandidateQuery) Validate() error {
	_, _, err := ParseCandidateTab(q.Tab)
	return err
}

// FilterCandidates returns the candidates whose name or email contains the
// search text (case-insensitive) and whose derived status matches the tab,
// ordered by name. An unknown tab matches nothing.
func FilterCandidates(all []types.Candidate, q CandidateQuery) Result[types.Candidate] {
	search := normalizeQuery(q.Search)
	tab, allTabs, err := ParseCandidateTab(q.Tab)
	if err != nil {
		return Result[types.Candidate]{Items: []types.Candidate{}}
	}

	out := make([]types.Candidate, 0, len(all))
	for _, c := range all {
		if !allTabs && c.DerivedStatus() != tab {
			continue
		}
		if !matches(search, c.Name, c.Email) {
			continue
		}
		out = append(out, c)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return lessByName(out[i].Name, out[j].Name, out[i].ID, out[j].ID)
	})
	return Result[types.Candidate]{Items: out}
}

// ParseCandidateTab resolves a candidate tab name, ignoring case. all is true
// for TabAll and the empty tab.
func ParseCandidateTab(tab string) (status types.CandidateStatus, all bool, err error) {
	tab = strings.TrimSpace(tab)
	if tab == "" || strings.EqualFold(tab, TabAll) {
		return "", true, nil
	}
	status = types.ParseCandidateStatus(tab)
	if !status.Known() || !strings.EqualFold(tab, string(status)) {
		return "", false, fmt.Errorf("%w %q: want %s or one of %s", ErrUnknownTab, tab, TabAll, statusNames())
	}
	return status, false, nil
}

func statusNames() string {
	names := make([]string, len(types.CandidateStatuses))
	for i, s := range types.CandidateStatuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// CandidateTabCounts counts the candidates that match the search text under
// each status tab, starting with All.
func CandidateTabCounts(all []types.Candidate, search string) []TabCount {
	search = normalizeQuery(search)
	counts := make(map[types.CandidateStatus]int, len(types.CandidateStatuses))
	total := 0
	for _, c := range all {
		if !matches(search, c.Name, c.Email) {
			continue
		}
		counts[c.DerivedStatus()]++
		total++
	}

	out := []TabCount{{Tab: TabAll, Count: total}}
	for _, s := range types.CandidateStatuses {
		out = append(out, TabCount{Tab: string(s), Count: counts[s]})
	}
	return out
}

// Job tabs.
const (
	TabActive = "active"
	TabClosed = "closed"
)

// JobQuery selects jobs by title text and active/closed tab.
type JobQuery struct {
	Search string
	// Tab is TabAll (or empty), TabActive or TabClosed.
	Tab string
}

// Validate rejects a tab other than All, active or closed.
func (q JobQuery) Validate() error {
	_, _, err := ParseJobTab(q.Tab)
	return err
}

// ParseJobTab resolves a job tab name, ignoring case. all is true for TabAll
// and the empty tab.
func ParseJobTab(tab string) (state string, all bool, err error) {
	tab = strings.TrimSpace(tab)
	switch {
	case tab == "" || strings.EqualFold(tab, TabAll):
		return "", true, nil
	case strings.EqualFold(tab, TabActive):
		return TabActive, false, nil
	case strings.EqualFold(tab, TabClosed):
		return TabClosed, false, nil
	}
	return "", false, fmt.Errorf("%w %q: want %s, %s or %s", ErrUnknownTab, tab, TabAll, TabActive, TabClosed)
}

// FilterJobs returns the jobs whose title contains the search text and whose
// state at now matches the tab, ordered by title. An unknown tab matches
// nothing.
func FilterJobs(all []types.Job, q JobQuery, now time.Time) Result[types.Job] {
	search := normalizeQuery(q.Search)
	tab, allTabs, err := ParseJobTab(q.Tab)
	if err != nil {
		return Result[types.Job]{Items: []types.Job{}}
	}
	classifier := classify.At(now)

	out := make([]types.Job, 0, len(all))
	for i := range all {
		j := all[i]
		if !allTabs && string(classifier.Job(&j)) != tab {
			continue
		}
		if !matches(search, j.Title) {
			continue
		}
		out = append(out, j)
	}

	sort.SliceStable(out, func(a, b int) bool {
		return lessByName(out[a].Title, out[b].Title, out[a].ID, out[b].ID)
	})
	return Result[types.Job]{Items: out}
}

// JobTabCounts counts all, active and closed jobs at now.
func JobTabCounts(all []types.Job, now time.Time) []TabCount {
	classifier := classify.At(now)
	active := 0
	for i := range all {
		if classifier.Job(&all[i]) == classify.JobActive {
			active++
		}
	}
	return []TabCount{
		{Tab: TabAll, Count: len(all)},
		{Tab: TabActive, Count: active},
		{Tab: TabClosed, Count: len(all) - active},
	}
}

// lessByName orders case-insensitively, then by exact text, then by id so the
// order is total.
func lessByName(a, b string, idA, idB int64) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	if a != b {
		return a < b
	}
	return idA < idB
}
