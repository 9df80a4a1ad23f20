package loan

import (
	"sort"
	"strings"

	"github.com/loanpath/backend/internal/model"
)

// SortField selects the column a tracker list is ordered by.
type SortField string

const (
	SortByApplicationID SortField = "application_id"
	SortByAmount        SortField = "amount"
	SortByStatus        SortField = "status"
	SortByUpdatedAt     SortField = "updated_at"
)

// FilterEntries keeps entries whose application ID or loan type contains
// the query, case-insensitively. An empty query keeps everything.
func FilterEntries(entries []model.TrackerEntry, query string) []model.TrackerEntry {
	if query == "" {
		return entries
	}
	q := strings.ToLower(query)

	filtered := make([]model.TrackerEntry, 0, len(entries))
	for _, entry := range entries {
		if strings.Contains(strings.ToLower(entry.ApplicationID), q) ||
			strings.Contains(strings.ToLower(entry.LoanType), q) {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}

// SortEntries returns a sorted copy of entries. Status sorts by
// pipeline-severity order rather than lexically, updatedAt by instant.
// The sort is stable; an unrecognized field leaves the order unchanged.
func SortEntries(entries []model.TrackerEntry, field SortField, desc bool) []model.TrackerEntry {
	sorted := make([]model.TrackerEntry, len(entries))
	copy(sorted, entries)

	var less func(a, b model.TrackerEntry) bool
	switch field {
	case SortByApplicationID:
		less = func(a, b model.TrackerEntry) bool { return a.ApplicationID < b.ApplicationID }
	case SortByAmount:
		less = func(a, b model.TrackerEntry) bool { return a.Amount.LessThan(b.Amount) }
	case SortByStatus:
		less = func(a, b model.TrackerEntry) bool { return statusRank(a.Status) < statusRank(b.Status) }
	case SortByUpdatedAt:
		less = func(a, b model.TrackerEntry) bool { return a.UpdatedAt.Before(b.UpdatedAt) }
	default:
		return sorted
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if desc {
			return less(sorted[j], sorted[i])
		}
		return less(sorted[i], sorted[j])
	})
	return sorted
}
