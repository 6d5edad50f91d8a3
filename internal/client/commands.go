package client

// Command is a user action applied to the session by Apply. Routing every
// action through one dispatch point keeps UI wiring out of the state
// rules.
type Command interface {
	isCommand()
}

// SetCategory changes the category filter ("All" clears it).
type SetCategory struct{ Category string }

// SetSearch changes the free-text description filter.
type SetSearch struct{ Term string }

// SetDateRange changes the date window filter.
type SetDateRange struct{ Range DateRange }

// SetSort changes the list ordering.
type SetSort struct{ Order SortOrder }

// ToggleSelect flips a record in or out of the multi-select set.
type ToggleSelect struct{ ID int64 }

// ClearSelection empties the multi-select set.
type ClearSelection struct{}

func (SetCategory) isCommand()    {}
func (SetSearch) isCommand()      {}
func (SetDateRange) isCommand()   {}
func (SetSort) isCommand()        {}
func (ToggleSelect) isCommand()   {}
func (ClearSelection) isCommand() {}

// Apply is the single state-update function consuming commands. Filter
// and sort changes rebuild the displayed list, which clears the
// selection; ToggleSelect is the one command that keeps it.
func (s *Session) Apply(cmd Command) {
	switch c := cmd.(type) {
	case SetCategory:
		if c.Category == "" {
			c.Category = AllCategories
		}
		s.Filters.Category = c.Category
		s.clearSelection()
	case SetSearch:
		s.Filters.Search = c.Term
		s.clearSelection()
	case SetDateRange:
		s.Filters.Range = c.Range
		s.clearSelection()
	case SetSort:
		if c.Order == "" {
			c.Order = DefaultSortOrder
		}
		s.Filters.Sort = c.Order
		s.clearSelection()
	case ToggleSelect:
		if s.Selected[c.ID] {
			delete(s.Selected, c.ID)
		} else if _, ok := s.Get(c.ID); ok {
			s.Selected[c.ID] = true
		}
	case ClearSelection:
		s.clearSelection()
	}
}
