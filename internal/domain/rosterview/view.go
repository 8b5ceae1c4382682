package rosterview

import "github.com/riskibarqy/rosterview/internal/domain/player"

// View is the displayed table: ranked rows in their current order plus the
// sort state that produced it. Methods return new values.
type View struct {
	Rows []Row
	Sort SortState
}

// NewView ranks freshly loaded records and resets ordering to the default.
func NewView(records []player.Record) View {
	state := DefaultSortState()
	return View{
		Rows: Sort(BuildRows(records), state),
		Sort: state,
	}
}

func (v View) WithSort(state SortState) View {
	state = state.Normalize()
	return View{
		Rows: Sort(v.Rows, state),
		Sort: state,
	}
}

// Resort handles a column header click without refetching.
func (v View) Resort(clickedKey string) View {
	return v.WithSort(ToggleSort(v.Sort, clickedKey))
}
