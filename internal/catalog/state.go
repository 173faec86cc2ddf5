package catalog

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/aiusecase/catalog-backend/internal/domain"
)

// Sort keys accepted by the catalog view.
const (
	SortTitleAsc  = "title-asc"
	SortTitleDesc = "title-desc"
	SortTool      = "tool"
	SortAudience  = "audience"
	SortNewest    = "newest"
	SortUpdated   = "updated" // default: most recently modified first
)

// Query is the full filter/sort selection of the catalog view.
// The three filter groups AND together; values within a group OR together.
// Empty groups pass everything.
type Query struct {
	Search    string
	Audiences []string
	Tools     []string
	Sort      string
}

// IsZero reports whether no filter is active (sort alone is not a filter).
func (q Query) IsZero() bool {
	return q.Search == "" && len(q.Audiences) == 0 && len(q.Tools) == 0
}

// State is the catalog view state: the loaded records, the visible
// (filtered+sorted) projection, and the active record pointer. It is a
// value — Apply returns a new State, it never mutates in place.
type State struct {
	Records  []domain.UseCase
	Visible  []domain.UseCase
	ActiveID uuid.UUID
	Query    Query
}

// Apply filters and sorts the loaded records and resolves the active
// pointer: clearing all filters resets it to the first visible record,
// otherwise it is kept while still visible.
func Apply(s State, q Query) State {
	visible := SortRecords(Filter(s.Records, q), q.Sort)

	next := State{
		Records: s.Records,
		Visible: visible,
		Query:   q,
	}

	keep := false
	if !q.IsZero() || s.Query.IsZero() {
		for _, u := range visible {
			if u.ID == s.ActiveID {
				keep = true
				break
			}
		}
	}
	switch {
	case keep:
		next.ActiveID = s.ActiveID
	case len(visible) > 0:
		next.ActiveID = visible[0].ID
	}

	return next
}

// Select moves the active pointer. Selecting an id that is not visible is a
// no-op.
func Select(s State, id uuid.UUID) State {
	for _, u := range s.Visible {
		if u.ID == id {
			s.ActiveID = id
			return s
		}
	}
	return s
}

// Active returns the record under the active pointer, if any.
func (s State) Active() (*domain.UseCase, bool) {
	for i := range s.Visible {
		if s.Visible[i].ID == s.ActiveID {
			return &s.Visible[i], true
		}
	}
	return nil, false
}

// Filter narrows records by free-text search AND audience membership AND
// tool equality. A record passes a multi-valued group by matching any of
// its values.
func Filter(records []domain.UseCase, q Query) []domain.UseCase {
	search := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]domain.UseCase, 0, len(records))
	for _, u := range records {
		if !matchesAny(u.Audiences, q.Audiences) {
			continue
		}
		if len(q.Tools) > 0 && !contains(q.Tools, u.AITool) {
			continue
		}
		if search != "" && !matchesSearch(u, search) {
			continue
		}
		out = append(out, u)
	}
	return out
}

func matchesAny(have, want []string) bool {
	if len(want) == 0 {
		return true
	}
	for _, h := range have {
		if contains(want, h) {
			return true
		}
	}
	return false
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// matchesSearch checks a lowercased substring against title, submitter and
// all six section bodies.
func matchesSearch(u domain.UseCase, search string) bool {
	parts := []string{u.Title, u.SubmittedBy}
	for _, key := range domain.SectionOrder {
		parts = append(parts, u.Sections.Get(key))
	}
	return strings.Contains(strings.ToLower(strings.Join(parts, " \n ")), search)
}

// SortRecords returns a sorted copy. Unknown keys fall back to the default
// recency order. Comparison of titles is locale-aware; ties everywhere
// break by title ascending, so sorting is a total order and idempotent.
func SortRecords(records []domain.UseCase, key string) []domain.UseCase {
	sorted := make([]domain.UseCase, len(records))
	copy(sorted, records)

	coll := collate.New(language.English, collate.IgnoreCase)
	byTitle := func(a, b domain.UseCase) int {
		return coll.CompareString(a.Title, b.Title)
	}

	var less func(a, b domain.UseCase) bool
	switch key {
	case SortTitleAsc:
		less = func(a, b domain.UseCase) bool { return byTitle(a, b) < 0 }
	case SortTitleDesc:
		less = func(a, b domain.UseCase) bool { return byTitle(a, b) > 0 }
	case SortTool:
		less = func(a, b domain.UseCase) bool {
			if a.AITool != b.AITool {
				return a.AITool < b.AITool
			}
			return byTitle(a, b) < 0
		}
	case SortAudience:
		less = func(a, b domain.UseCase) bool {
			fa, fb := firstAudience(a), firstAudience(b)
			if fa != fb {
				return coll.CompareString(fa, fb) < 0
			}
			return byTitle(a, b) < 0
		}
	case SortNewest:
		less = func(a, b domain.UseCase) bool {
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
			return byTitle(a, b) < 0
		}
	default: // SortUpdated
		less = func(a, b domain.UseCase) bool {
			at, bt := a.SortTime(), b.SortTime()
			if !at.Equal(bt) {
				return at.After(bt)
			}
			return byTitle(a, b) < 0
		}
	}

	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	return sorted
}

func firstAudience(u domain.UseCase) string {
	if len(u.Audiences) > 0 {
		return u.Audiences[0]
	}
	return ""
}
