package app

import (
	"sort"
	"strings"

	"gamelog/model"
)

// SortField names the column a view is ordered by. The zero value means
// insertion order.
type SortField string

const (
	SortNone       SortField = ""
	SortTitle      SortField = model.FieldTitle
	SortStatus     SortField = model.FieldStatus
	SortNote       SortField = model.FieldNote
	SortDifficulty SortField = model.FieldDifficulty
)

// ViewState is the per-session presentation state of the active group. It is
// derived, never persisted.
type ViewState struct {
	Field SortField
	Desc  bool
	Page  int
}

// SortBy applies the toggle cycle: selecting the current field flips the
// direction, selecting another field starts ascending on the first page.
func (s *Service) SortBy(field SortField) {
	if s.view.Field == field && field != SortNone {
		s.view.Desc = !s.view.Desc
		return
	}
	s.view.Field = field
	s.view.Desc = false
	s.view.Page = 0
}

// ClearSort returns the view to insertion order.
func (s *Service) ClearSort() {
	s.view = ViewState{}
}

// View returns the current presentation state.
func (s *Service) View() ViewState {
	return s.view
}

// NextPage advances the view one page, clamped to the last page.
func (s *Service) NextPage() {
	s.view.Page = clampPage(s.view.Page+1, s.TotalPages())
}

// PrevPage moves the view one page back, clamped to the first page.
func (s *Service) PrevPage() {
	s.view.Page = clampPage(s.view.Page-1, s.TotalPages())
}

// GoToPage jumps to a zero-based page index, clamped to the valid range.
func (s *Service) GoToPage(page int) {
	s.view.Page = clampPage(page, s.TotalPages())
}

// VisibleGames returns the page of the active group currently on display,
// after sorting. The slice is a copy.
func (s *Service) VisibleGames() []model.Game {
	group, ok := s.col.ActiveGroup()
	if !ok {
		return []model.Game{}
	}
	sorted := sortGames(group.Games, s.view.Field, s.view.Desc)
	page, total := paginate(sorted, s.pageSize, s.view.Page)
	if s.view.Page >= total {
		s.view.Page = total - 1
		page, _ = paginate(sorted, s.pageSize, s.view.Page)
	}
	return page
}

// TotalPages reports how many pages the active group spans. An empty group
// still has one (empty) page.
func (s *Service) TotalPages() int {
	group, ok := s.col.ActiveGroup()
	if !ok {
		return 1
	}
	return totalPages(len(group.Games), s.pageSize)
}

// sortGames returns a sorted copy. Status and difficulty keys outside their
// enumeration rank before all defined values; notes compare purely
// numerically, with unparsable values counting as 0. The sort is stable, so
// equal keys keep their insertion order.
func sortGames(games []model.Game, field SortField, desc bool) []model.Game {
	out := make([]model.Game, len(games))
	copy(out, games)
	if field == SortNone {
		return out
	}

	less := func(a, b model.Game) bool { return false }
	switch field {
	case SortTitle:
		less = func(a, b model.Game) bool {
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		}
	case SortStatus:
		less = func(a, b model.Game) bool {
			return a.Status.Rank() < b.Status.Rank()
		}
	case SortNote:
		less = func(a, b model.Game) bool {
			return a.Note.Value() < b.Note.Value()
		}
	case SortDifficulty:
		less = func(a, b model.Game) bool {
			return a.Difficulty.Rank() < b.Difficulty.Rank()
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

// paginate slices one page out of games and reports the page count.
func paginate(games []model.Game, pageSize, page int) ([]model.Game, int) {
	total := totalPages(len(games), pageSize)
	page = clampPage(page, total)
	start := page * pageSize
	if start >= len(games) {
		return []model.Game{}, total
	}
	end := start + pageSize
	if end > len(games) {
		end = len(games)
	}
	out := make([]model.Game, end-start)
	copy(out, games[start:end])
	return out, total
}

func totalPages(n, pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	pages := (n + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

func clampPage(page, total int) int {
	if page < 0 {
		return 0
	}
	if page > total-1 {
		return total - 1
	}
	return page
}
