package client

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/Lullucoder/EXPENSE-TRACKER-2/internal/models"
)

// View is the derived display state: the filtered and sorted records,
// both totals, the filter dropdown options and the chart series.
type View struct {
	Items          []models.Expense
	DisplayedTotal float64
	OverallTotal   float64
	Categories     []string
	ChartData      map[string]float64
}

// Project derives the view from the cache and the current filters. It is
// a pure function of the session; it does not mutate it.
func (s *Session) Project() View {
	items := make([]models.Expense, 0, len(s.Expenses))
	for _, e := range s.Expenses {
		if matches(e, s.Filters) {
			items = append(items, e)
		}
	}
	sortExpenses(items, s.Filters.Sort)

	var displayed float64
	chart := make(map[string]float64)
	for _, e := range items {
		displayed += e.Amount
		chart[e.Category] += e.Amount
	}

	return View{
		Items:          items,
		DisplayedTotal: displayed,
		OverallTotal:   s.OverallTotal(),
		Categories:     s.Categories(),
		ChartData:      chart,
	}
}

func matches(e models.Expense, f Filters) bool {
	if f.Category != AllCategories && e.Category != f.Category {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(e.Description), strings.ToLower(f.Search)) {
		return false
	}
	// Canonical YYYY-MM-DD strings compare chronologically.
	if f.Range.Start != "" && e.Date < f.Range.Start {
		return false
	}
	if f.Range.End != "" && e.Date >= f.Range.End {
		return false
	}
	return true
}

func sortExpenses(items []models.Expense, order SortOrder) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		switch order {
		case SortDateAsc:
			return a.Date < b.Date
		case SortAmountDesc:
			return a.Amount > b.Amount
		case SortAmountAsc:
			return a.Amount < b.Amount
		case SortDescriptionAsc:
			return strings.ToLower(a.Description) < strings.ToLower(b.Description)
		case SortCategoryAsc:
			return strings.ToLower(a.Category) < strings.ToLower(b.Category)
		default: // SortDateDesc
			if a.Date != b.Date {
				return a.Date > b.Date
			}
			return a.CreatedAt.After(b.CreatedAt)
		}
	})
}

// WriteCSV exports the projected records.
func (v View) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"ID", "Date", "Description", "Category", "Amount"}); err != nil {
		return err
	}
	for _, e := range v.Items {
		record := []string{
			strconv.FormatInt(e.ID, 10),
			e.Date,
			e.Description,
			e.Category,
			strconv.FormatFloat(e.Amount, 'f', 2, 64),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ShareText renders the selected records as a plain-text summary.
func (s *Session) ShareText(currency string) string {
	var b strings.Builder
	b.WriteString("My Expenses:\n")
	var total float64
	for _, e := range s.SelectedExpenses() {
		b.WriteString("- " + e.Date + ": " + e.Description + " (" + e.Category + ") - " +
			currency + strconv.FormatFloat(e.Amount, 'f', 2, 64) + "\n")
		total += e.Amount
	}
	b.WriteString("\nTotal Selected: " + currency + strconv.FormatFloat(total, 'f', 2, 64))
	return b.String()
}
