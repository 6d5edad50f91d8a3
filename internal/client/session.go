package client

import (
	"sort"

	"github.com/Lullucoder/EXPENSE-TRACKER-2/internal/models"
)

// SortOrder names the supported list orderings.
type SortOrder string

const (
	SortDateDesc        SortOrder = "date_desc"
	SortDateAsc         SortOrder = "date_asc"
	SortAmountDesc      SortOrder = "amount_desc"
	SortAmountAsc       SortOrder = "amount_asc"
	SortDescriptionAsc  SortOrder = "description_asc"
	SortCategoryAsc     SortOrder = "category_asc"
	DefaultSortOrder              = SortDateDesc
	AllCategories                 = "All"
)

// DateRange bounds a filter window on canonical YYYY-MM-DD strings.
// Start is inclusive, End exclusive; empty means unbounded.
type DateRange struct {
	Start string
	End   string
}

// Filters is the current selection driving the projection.
type Filters struct {
	Category string
	Search   string
	Range    DateRange
	Sort     SortOrder
}

// Session owns the in-memory record cache for the current login. It is
// replaced wholesale on load and patched element-wise on each successful
// mutation, so it never silently diverges from server state. The
// selection set backs multi-record actions (share, export) and is
// cleared whenever the displayed list is rebuilt.
type Session struct {
	Expenses []models.Expense
	Filters  Filters
	Selected map[int64]bool
}

// NewSession creates an empty session with default filters.
func NewSession() *Session {
	return &Session{
		Expenses: make([]models.Expense, 0),
		Filters:  Filters{Category: AllCategories, Sort: DefaultSortOrder},
		Selected: make(map[int64]bool),
	}
}

// ReplaceAll rebuilds the cache from a server snapshot.
func (s *Session) ReplaceAll(expenses []models.Expense) {
	s.Expenses = append(s.Expenses[:0], expenses...)
	s.clearSelection()
}

// Add appends a record the server has just persisted.
func (s *Session) Add(e models.Expense) {
	s.Expenses = append(s.Expenses, e)
	s.clearSelection()
}

// Put replaces the cached record with the same id, or appends it when
// the cache has drifted and the record is absent.
func (s *Session) Put(e models.Expense) {
	for i := range s.Expenses {
		if s.Expenses[i].ID == e.ID {
			s.Expenses[i] = e
			s.clearSelection()
			return
		}
	}
	s.Expenses = append(s.Expenses, e)
	s.clearSelection()
}

// Remove drops the record with the given id, if present.
func (s *Session) Remove(id int64) {
	for i := range s.Expenses {
		if s.Expenses[i].ID == id {
			s.Expenses = append(s.Expenses[:i], s.Expenses[i+1:]...)
			break
		}
	}
	s.clearSelection()
}

// Get returns the cached record with the given id.
func (s *Session) Get(id int64) (models.Expense, bool) {
	for _, e := range s.Expenses {
		if e.ID == id {
			return e, true
		}
	}
	return models.Expense{}, false
}

// Categories returns the distinct categories currently present in the
// cache, sorted. The filter dropdown is derived from this after every
// mutation.
func (s *Session) Categories() []string {
	seen := make(map[string]bool)
	var categories []string
	for _, e := range s.Expenses {
		if !seen[e.Category] {
			seen[e.Category] = true
			categories = append(categories, e.Category)
		}
	}
	sort.Strings(categories)
	return categories
}

// OverallTotal sums every cached record, independent of filters.
func (s *Session) OverallTotal() float64 {
	var total float64
	for _, e := range s.Expenses {
		total += e.Amount
	}
	return total
}

// SelectedExpenses returns the selected records ordered by date ascending.
func (s *Session) SelectedExpenses() []models.Expense {
	var selected []models.Expense
	for _, e := range s.Expenses {
		if s.Selected[e.ID] {
			selected = append(selected, e)
		}
	}
	sort.SliceStable(selected, func(i, j int) bool { return selected[i].Date < selected[j].Date })
	return selected
}

func (s *Session) clearSelection() {
	if len(s.Selected) > 0 {
		s.Selected = make(map[int64]bool)
	}
}
