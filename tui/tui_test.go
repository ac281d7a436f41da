package tui

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"gamelog/app"
	"gamelog/model"
)

type memStore struct {
	docs map[string][]byte
}

func (m *memStore) Load(key string, v any) (bool, error) {
	data, ok := m.docs[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, v)
}

func (m *memStore) Save(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.docs[key] = data
	return nil
}

func newTestModel(t *testing.T) *Model {
	t.Helper()
	svc := app.NewService(&memStore{docs: map[string][]byte{}}, 10)
	if err := svc.Bootstrap(); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}
	m := NewModel(svc, "")
	m.width = 120
	m.height = 40
	return m
}

func press(m *Model, key string) {
	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	}
	m.Update(msg)
}

func TestPaneWidthsPreferNarrowLeftPanel(t *testing.T) {
	m := newTestModel(t)

	viewW := m.viewportWidth()
	left, right := m.paneWidths(viewW, 1)
	if left >= right {
		t.Fatalf("expected left panel to be narrower than right (left=%d right=%d)", left, right)
	}
	if left+right+1 != viewW {
		t.Fatalf("expected pane widths to fill available width=%d, got left=%d right=%d", viewW, left, right)
	}
}

func TestPaneWidthsSmallTerminalStillValid(t *testing.T) {
	m := newTestModel(t)
	m.width = 48

	viewW := m.viewportWidth()
	left, right := m.paneWidths(viewW, 1)
	if left < 10 || right < 12 {
		t.Fatalf("expected minimum usable pane widths, got left=%d right=%d", left, right)
	}
	if left+right+1 > viewW {
		t.Fatalf("expected panes not to exceed viewport width=%d, got left=%d right=%d", viewW, left, right)
	}
}

func TestAddGroupKeyCreatesAndActivates(t *testing.T) {
	m := newTestModel(t)

	press(m, "a")
	groups := m.svc.Groups()
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if m.svc.ActiveGroupID() != groups[1].ID {
		t.Fatalf("expected new group to be active")
	}
	if m.groupCursor != 1 {
		t.Fatalf("expected cursor on new group, got %d", m.groupCursor)
	}
}

func TestDeleteLastGroupRefusedWithStatus(t *testing.T) {
	m := newTestModel(t)

	press(m, "d")
	if m.mode != modeNormal {
		t.Fatalf("expected no confirm mode for the last group")
	}
	if !m.statusErr {
		t.Fatalf("expected error status, got %q", m.status)
	}
	if len(m.svc.Groups()) != 1 {
		t.Fatalf("expected group to survive")
	}
}

func TestDeleteGroupConfirmFlow(t *testing.T) {
	m := newTestModel(t)
	press(m, "a")

	press(m, "d")
	if m.mode != modeConfirmDeleteGroup {
		t.Fatalf("expected confirm mode, got %v", m.mode)
	}
	press(m, "y")
	if m.mode != modeNormal {
		t.Fatalf("expected confirm mode closed")
	}
	if len(m.svc.Groups()) != 1 {
		t.Fatalf("expected one group after delete, got %d", len(m.svc.Groups()))
	}
}

func TestStatusCycleThroughGamesPane(t *testing.T) {
	m := newTestModel(t)
	press(m, "tab")
	press(m, "a")

	press(m, "s")
	game, ok := m.selectedGame()
	if !ok {
		t.Fatalf("expected a selected game")
	}
	if game.Status != model.StatusPlaying {
		t.Fatalf("expected status Playing after one cycle, got %q", game.Status)
	}

	press(m, "S")
	game, _ = m.selectedGame()
	if game.Status != model.StatusNotStarted {
		t.Fatalf("expected status back to Not-Started, got %q", game.Status)
	}
}

func TestNoteSteppingClampsAtBounds(t *testing.T) {
	m := newTestModel(t)
	press(m, "tab")
	press(m, "a")

	press(m, "-")
	game, _ := m.selectedGame()
	if string(game.Note) != "0" {
		t.Fatalf("expected note clamped at 0, got %q", game.Note)
	}
	for i := 0; i < 12; i++ {
		press(m, "+")
	}
	game, _ = m.selectedGame()
	if string(game.Note) != "10" {
		t.Fatalf("expected note clamped at 10, got %q", game.Note)
	}
}

func TestSortKeysDriveViewState(t *testing.T) {
	m := newTestModel(t)
	press(m, "tab")
	press(m, "a")

	press(m, "1")
	if m.svc.View().Field != app.SortTitle || m.svc.View().Desc {
		t.Fatalf("expected ascending title sort, got %+v", m.svc.View())
	}
	press(m, "1")
	if !m.svc.View().Desc {
		t.Fatalf("expected descending title sort after toggle")
	}
	press(m, "0")
	if m.svc.View().Field != app.SortNone {
		t.Fatalf("expected sort cleared")
	}
}

func TestStepEnumIndex(t *testing.T) {
	if got := stepEnumIndex(-1, 1, 5, true); got != 0 {
		t.Fatalf("expected out-of-domain value to start at 0, got %d", got)
	}
	if got := stepEnumIndex(4, 1, 5, true); got != 0 {
		t.Fatalf("expected wrap to 0, got %d", got)
	}
	if got := stepEnumIndex(0, -1, 5, true); got != 4 {
		t.Fatalf("expected wrap to 4, got %d", got)
	}
	if got := stepEnumIndex(4, 1, 5, false); got != 4 {
		t.Fatalf("expected clamp at 4, got %d", got)
	}
	if got := stepEnumIndex(0, -1, 5, false); got != 0 {
		t.Fatalf("expected clamp at 0, got %d", got)
	}
}

func TestIsPersistWarningMatchesWrappedSentinel(t *testing.T) {
	wrapped := fmt.Errorf("%w: disk full", app.ErrNotPersisted)
	if !isPersistWarning(wrapped) {
		t.Fatalf("expected wrapped persistence sentinel to be recognized")
	}
	if isPersistWarning(errors.New("changes kept in memory but not persisted")) {
		t.Fatalf("expected unrelated error with similar text to be rejected")
	}
	if isPersistWarning(nil) {
		t.Fatalf("expected nil error to be rejected")
	}
}

func TestFieldSummaryFlagsOutOfDomainValues(t *testing.T) {
	g := model.Game{
		ID:         "x",
		Title:      "Mystery",
		Status:     model.Status("Unknown"),
		Note:       model.Note("5"),
		Difficulty: model.Difficulty("C"),
	}
	out := fieldSummary(g)
	if !strings.Contains(out, "Unknown!") {
		t.Fatalf("expected out-of-domain status flagged, got %q", out)
	}
}
