package tui

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gamelog/app"
	"gamelog/clip"
	"gamelog/model"
)

type focusPane int

const (
	focusGroups focusPane = iota
	focusGames
)

func (f focusPane) String() string {
	if f == focusGames {
		return "games"
	}
	return "groups"
}

type uiMode int

const (
	modeNormal uiMode = iota
	modeRenameGroup
	modeEditTitle
	modeConfirmDeleteGroup
	modeConfirmDeleteGame
)

type Model struct {
	svc *app.Service

	focus       focusPane
	mode        uiMode
	groupCursor int
	gameCursor  int
	input       textinput.Model

	confirmID   string
	confirmName string

	showHelp bool

	status    string
	statusErr bool

	width  int
	height int
}

func NewModel(svc *app.Service, startupStatus string) *Model {
	status := strings.TrimSpace(startupStatus)
	if status == "" {
		status = "Ready"
	}

	input := textinput.New()
	input.CharLimit = 120
	input.Prompt = ""

	m := &Model{
		svc:    svc,
		focus:  focusGroups,
		mode:   modeNormal,
		status: status,
		input:  input,
	}
	svc.SetNotifier(m)
	m.ensureSelection()
	return m
}

// CollectionChanged keeps the group cursor in range after mutations.
func (m *Model) CollectionChanged(groups []model.Group, activeID string) {
	m.groupCursor = clamp(m.groupCursor, 0, len(groups)-1)
}

// ActiveGroupChanged keeps the game cursor in range after mutations.
func (m *Model) ActiveGroupChanged(group model.Group) {
	m.ensureSelection()
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch m.mode {
		case modeRenameGroup, modeEditTitle:
			return m, m.updateInputMode(msg)
		case modeConfirmDeleteGroup, modeConfirmDeleteGame:
			m.updateConfirmMode(msg)
		default:
			if quit := m.updateNormalMode(msg); quit {
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m *Model) updateNormalMode(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "ctrl+c", "q":
		return true
	case "tab":
		if m.focus == focusGroups {
			m.focus = focusGames
		} else {
			m.focus = focusGroups
		}
		m.setStatus(fmt.Sprintf("Focus on %s", m.focus.String()), false)
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "enter":
		m.handleEnter()
	case "a":
		m.addSelected()
	case "r":
		m.startRenameGroup()
	case "e":
		m.startEditTitle()
	case "d":
		m.startDeleteConfirm()
	case "s":
		m.cycleStatus(1)
	case "S":
		m.cycleStatus(-1)
	case "+", "=":
		m.stepNote(1)
	case "-":
		m.stepNote(-1)
	case ">", ".":
		m.stepDifficulty(1)
	case "<", ",":
		m.stepDifficulty(-1)
	case "1":
		m.sortBy(app.SortTitle)
	case "2":
		m.sortBy(app.SortStatus)
	case "3":
		m.sortBy(app.SortNote)
	case "4":
		m.sortBy(app.SortDifficulty)
	case "0":
		m.svc.ClearSort()
		m.gameCursor = 0
		m.setStatus("Sort cleared (insertion order)", false)
	case "]", "right":
		m.svc.NextPage()
		m.gameCursor = 0
	case "[", "left":
		m.svc.PrevPage()
		m.gameCursor = 0
	case "y":
		m.copyActiveGroup()
	case "?":
		m.showHelp = !m.showHelp
		if m.showHelp {
			m.setStatus("Shortcuts open (press ? or Esc to close)", false)
		} else {
			m.setStatus("Shortcuts hidden", false)
		}
	case "esc":
		if m.showHelp {
			m.showHelp = false
			m.setStatus("Shortcuts hidden", false)
		}
	}

	m.ensureSelection()
	return false
}

func (m *Model) updateInputMode(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.mode = modeNormal
		m.input.Blur()
		m.setStatus("Cancelled", false)
		return nil
	case "enter":
		m.applyInput()
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) updateConfirmMode(msg tea.KeyMsg) {
	switch strings.ToLower(msg.String()) {
	case "y":
		m.confirmDelete()
	case "n", "esc", "enter":
		m.confirmID = ""
		m.confirmName = ""
		m.mode = modeNormal
		m.setStatus("Action cancelled", false)
	}
}

func (m *Model) applyInput() {
	text := strings.TrimSpace(m.input.Value())
	switch m.mode {
	case modeRenameGroup:
		if err := m.svc.RenameGroup(m.confirmID, text); err != nil {
			m.reportMutation(err, "")
			if !isPersistWarning(err) {
				return
			}
		} else {
			m.setStatus(fmt.Sprintf("Group renamed to %q", text), false)
		}
	case modeEditTitle:
		if err := m.svc.UpdateGame(m.confirmID, model.FieldTitle, text); err != nil {
			m.reportMutation(err, "")
			if !isPersistWarning(err) {
				return
			}
		} else {
			m.setStatus("Title updated", false)
		}
	}
	m.confirmID = ""
	m.mode = modeNormal
	m.input.Blur()
}

func (m *Model) moveCursor(delta int) {
	if m.focus == focusGroups {
		groups := m.svc.Groups()
		if len(groups) == 0 {
			return
		}
		m.groupCursor = clamp(m.groupCursor+delta, 0, len(groups)-1)
		return
	}
	games := m.svc.VisibleGames()
	if len(games) == 0 {
		return
	}
	m.gameCursor = clamp(m.gameCursor+delta, 0, len(games)-1)
}

func (m *Model) handleEnter() {
	if m.focus != focusGroups {
		return
	}
	groups := m.svc.Groups()
	if m.groupCursor < 0 || m.groupCursor >= len(groups) {
		return
	}
	group := groups[m.groupCursor]
	err := m.svc.ActivateGroup(group.ID)
	m.gameCursor = 0
	m.reportMutation(err, fmt.Sprintf("Active group: %s", group.Name))
}

func (m *Model) addSelected() {
	if m.focus == focusGroups {
		group, err := m.svc.AddGroup()
		m.groupCursor = len(m.svc.Groups()) - 1
		m.reportMutation(err, fmt.Sprintf("Group %q created", group.Name))
		return
	}
	game, err := m.svc.AddGame()
	if err != nil && !isPersistWarning(err) {
		m.reportMutation(err, "")
		return
	}
	m.selectGame(game.ID)
	m.reportMutation(err, fmt.Sprintf("Added %q", game.Title))
}

func (m *Model) startRenameGroup() {
	if m.focus != focusGroups {
		return
	}
	groups := m.svc.Groups()
	if m.groupCursor < 0 || m.groupCursor >= len(groups) {
		return
	}
	group := groups[m.groupCursor]
	m.confirmID = group.ID
	m.input.SetValue(group.Name)
	m.input.CursorEnd()
	m.input.Focus()
	m.mode = modeRenameGroup
	m.setStatus("Renaming group (Enter confirms, Esc cancels)", false)
}

func (m *Model) startEditTitle() {
	if m.focus != focusGames {
		return
	}
	game, ok := m.selectedGame()
	if !ok {
		return
	}
	m.confirmID = game.ID
	m.input.SetValue(game.Title)
	m.input.CursorEnd()
	m.input.Focus()
	m.mode = modeEditTitle
	m.setStatus("Editing title (Enter confirms, Esc cancels)", false)
}

func (m *Model) startDeleteConfirm() {
	if m.focus == focusGroups {
		groups := m.svc.Groups()
		if m.groupCursor < 0 || m.groupCursor >= len(groups) {
			return
		}
		if len(groups) <= 1 {
			m.setStatus("The last group cannot be deleted", true)
			return
		}
		group := groups[m.groupCursor]
		m.confirmID = group.ID
		m.confirmName = group.Name
		m.mode = modeConfirmDeleteGroup
		return
	}

	game, ok := m.selectedGame()
	if !ok {
		return
	}
	m.confirmID = game.ID
	m.confirmName = game.Title
	m.mode = modeConfirmDeleteGame
}

func (m *Model) confirmDelete() {
	var err error
	var done string
	switch m.mode {
	case modeConfirmDeleteGroup:
		err = m.svc.DeleteGroup(m.confirmID)
		done = fmt.Sprintf("Group %q deleted", m.confirmName)
	case modeConfirmDeleteGame:
		err = m.svc.DeleteGame(m.confirmID)
		done = fmt.Sprintf("%q deleted", m.confirmName)
	}
	m.confirmID = ""
	m.confirmName = ""
	m.mode = modeNormal
	m.reportMutation(err, done)
	m.ensureSelection()
}

func (m *Model) cycleStatus(delta int) {
	game, ok := m.selectedGame()
	if !ok {
		return
	}
	order := model.Statuses()
	next := stepEnumIndex(game.Status.Rank(), delta, len(order), true)
	m.updateSelected(game.ID, model.FieldStatus, string(order[next]))
}

func (m *Model) stepNote(delta int) {
	game, ok := m.selectedGame()
	if !ok {
		return
	}
	order := model.Notes()
	current := -1
	for i, n := range order {
		if n == game.Note {
			current = i
		}
	}
	next := stepEnumIndex(current, delta, len(order), false)
	m.updateSelected(game.ID, model.FieldNote, string(order[next]))
}

func (m *Model) stepDifficulty(delta int) {
	game, ok := m.selectedGame()
	if !ok {
		return
	}
	order := model.Difficulties()
	next := stepEnumIndex(game.Difficulty.Rank(), delta, len(order), false)
	m.updateSelected(game.ID, model.FieldDifficulty, string(order[next]))
}

// stepEnumIndex moves within an enumeration. Out-of-domain values (rank -1)
// start from the first element. Wrapping is used for status, clamping for the
// graded scales.
func stepEnumIndex(current, delta, size int, wrap bool) int {
	if current < 0 {
		return 0
	}
	next := current + delta
	if wrap {
		return ((next % size) + size) % size
	}
	return clamp(next, 0, size-1)
}

func (m *Model) updateSelected(id, field, value string) {
	err := m.svc.UpdateGame(id, field, value)
	m.selectGame(id)
	m.reportMutation(err, fmt.Sprintf("%s set to %s", field, value))
}

func (m *Model) sortBy(field app.SortField) {
	m.svc.SortBy(field)
	m.gameCursor = 0
	view := m.svc.View()
	direction := "ascending"
	if view.Desc {
		direction = "descending"
	}
	m.setStatus(fmt.Sprintf("Sorted by %s (%s)", field, direction), false)
}

func (m *Model) copyActiveGroup() {
	group := m.svc.ActiveGroup()
	if len(group.Games) == 0 {
		m.setStatus("Nothing to copy in this group", true)
		return
	}
	var b strings.Builder
	for _, g := range group.Games {
		fmt.Fprintf(&b, "%s\t%s\t%s\t%s\n", g.Title, g.Status, g.Note, g.Difficulty)
	}
	if err := clip.Copy(b.String()); err != nil {
		m.setStatus("Clipboard copy failed: "+err.Error(), true)
		return
	}
	m.setStatus(fmt.Sprintf("Copied %d entries from %q", len(group.Games), group.Name), false)
}

// reportMutation turns a service error into a status line. Persistence
// warnings keep the success path visible but flag that the change is only in
// memory.
func (m *Model) reportMutation(err error, success string) {
	switch {
	case err == nil:
		if success != "" {
			m.setStatus(success, false)
		}
	case isPersistWarning(err):
		m.setStatus("Saved in memory only: "+err.Error(), true)
	default:
		m.setStatus(err.Error(), true)
	}
}

func isPersistWarning(err error) bool {
	return errors.Is(err, app.ErrNotPersisted)
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

func (m *Model) ensureSelection() {
	groups := m.svc.Groups()
	m.groupCursor = clamp(m.groupCursor, 0, len(groups)-1)
	games := m.svc.VisibleGames()
	m.gameCursor = clamp(m.gameCursor, 0, len(games)-1)
}

func (m *Model) selectedGame() (model.Game, bool) {
	games := m.svc.VisibleGames()
	if len(games) == 0 {
		return model.Game{}, false
	}
	if m.gameCursor < 0 || m.gameCursor >= len(games) {
		m.gameCursor = 0
	}
	return games[m.gameCursor], true
}

func (m *Model) selectGame(id string) {
	games := m.svc.VisibleGames()
	for i, g := range games {
		if g.ID == id {
			m.gameCursor = i
			return
		}
	}
	m.gameCursor = clamp(m.gameCursor, 0, len(games)-1)
}

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "loading..."
	}

	title := lipgloss.NewStyle().Bold(true).Render("gamelog")
	view := m.svc.View()
	summary := fmt.Sprintf("focus: %s • page %d/%d", m.focus.String(), view.Page+1, m.svc.TotalPages())
	if view.Field != app.SortNone {
		arrow := "↑"
		if view.Desc {
			arrow = "↓"
		}
		summary += fmt.Sprintf(" • sort: %s%s", view.Field, arrow)
	}
	header := lipgloss.JoinHorizontal(lipgloss.Left,
		title,
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("  "+summary),
	)

	viewW := m.viewportWidth()
	const paneGap = 1
	innerPaneW := viewW - 2
	if innerPaneW < 20 {
		innerPaneW = viewW
	}

	panelH := m.height - 6
	if panelH < 8 {
		panelH = 8
	}
	innerPaneH := panelH - 2
	if innerPaneH < 6 {
		innerPaneH = 6
	}

	leftW, rightW := m.paneWidths(innerPaneW, paneGap)
	split := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderGroupsPanel(leftW, innerPaneH),
		lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Render("│"),
		m.renderGamesPanel(rightW, innerPaneH),
	)

	frameColor := lipgloss.Color("240")
	if m.mode == modeNormal {
		frameColor = lipgloss.Color("39")
	}
	panes := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(frameColor).
		Width(viewW).
		Height(panelH).
		Render(split)

	statusText := m.status
	if statusText == "" {
		statusText = "Ready"
	}
	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("70"))
	if m.statusErr {
		statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	}

	rightHint := "? shortcuts"
	if m.showHelp {
		rightHint = "Esc/? close shortcuts"
	}
	footerLine := m.renderFooter(statusText, statusStyle, rightHint)

	promptLine := ""
	switch m.mode {
	case modeRenameGroup:
		promptLine = "Rename group: " + m.input.View()
	case modeEditTitle:
		promptLine = "Edit title: " + m.input.View()
	case modeConfirmDeleteGroup:
		promptLine = fmt.Sprintf("Delete group %q and all its games? [y/N]", m.confirmName)
	case modeConfirmDeleteGame:
		promptLine = fmt.Sprintf("Delete %q? [y/N]", m.confirmName)
	}
	if promptLine != "" {
		promptLine = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Width(viewW).Render(promptLine)
	}

	if m.showHelp {
		popupW := viewW - 8
		if popupW > 96 {
			popupW = 96
		}
		if popupW < 40 {
			popupW = 40
		}
		popup := m.renderHelpOverlay(popupW)
		panes = lipgloss.Place(viewW, panelH, lipgloss.Center, lipgloss.Center, popup)
	}

	parts := []string{header, panes, footerLine}
	if promptLine != "" && !m.showHelp {
		parts = append(parts, promptLine)
	}
	return strings.Join(parts, "\n")
}

func (m *Model) viewportWidth() int {
	if m.width <= 0 {
		return 1
	}
	// One column reserved so the right border is not clipped in some
	// terminals.
	if m.width > 1 {
		return m.width - 1
	}
	return m.width
}

func (m *Model) paneWidths(total, gap int) (int, int) {
	if total <= 0 {
		return 24, 30
	}
	if gap < 0 {
		gap = 0
	}

	minLeft := 18
	minRight := 30
	if total < minLeft+minRight+gap {
		left := total / 3
		if left < 12 {
			left = 12
		}
		right := total - left - gap
		if right < 12 {
			right = 12
			left = total - right - gap
			if left < 10 {
				left = 10
			}
		}
		return left, right
	}

	left := total / 4
	if left < 20 {
		left = 20
	}
	if left > 32 {
		left = 32
	}
	right := total - left - gap
	if right < minRight {
		right = minRight
		left = total - right - gap
	}
	return left, right
}

func (m *Model) renderFooter(statusText string, statusStyle lipgloss.Style, rightHint string) string {
	left := strings.TrimSpace(statusText)
	right := strings.TrimSpace(rightHint)
	if left == "" {
		left = "Ready"
	}
	if right == "" {
		right = "? shortcuts"
	}

	leftW := utf8.RuneCountInString(left)
	rightW := utf8.RuneCountInString(right)
	width := m.viewportWidth()
	if width <= 0 {
		width = leftW + rightW + 2
	}

	if leftW+rightW+1 > width {
		maxLeft := width - rightW - 1
		if maxLeft < 8 {
			maxLeft = 8
		}
		left = truncateRunes(left, maxLeft)
		leftW = utf8.RuneCountInString(left)
	}

	padding := width - leftW - rightW
	if padding < 1 {
		padding = 1
	}

	rightStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	line := statusStyle.Render(left) + strings.Repeat(" ", padding) + rightStyle.Render(right)
	return lipgloss.NewStyle().Width(width).Render(line)
}

func (m *Model) renderHelpOverlay(width int) string {
	title := lipgloss.NewStyle().Bold(true).Render("Shortcuts")
	section := lipgloss.NewStyle().Foreground(lipgloss.Color("111")).Bold(true)
	line := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	rows := []string{
		title,
		"",
		section.Render("Global"),
		line.Render("  Tab switches focus • j/k navigate • q quits"),
		line.Render("  ? opens/closes shortcuts • Esc closes"),
		"",
		section.Render("Groups (with focus on Groups)"),
		line.Render("  a creates • r renames • d deletes • Enter activates"),
		"",
		section.Render("Games (with focus on Games)"),
		line.Render("  a adds • e edits title • d deletes • y copies group"),
		line.Render("  s/S cycles status • +/- note • >/< difficulty"),
		line.Render("  1..4 sort by title/status/note/difficulty • 0 clears"),
		line.Render("  [ and ] turn pages"),
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("244")).
		Padding(1, 2)

	return style.Width(width).Render(strings.Join(rows, "\n"))
}

func (m *Model) renderGroupsPanel(width, height int) string {
	groups := m.svc.Groups()
	activeID := m.svc.ActiveGroupID()

	lines := make([]string, 0, len(groups)+2)
	lines = append(lines, panelTitleStyled("Groups", m.focus == focusGroups))
	for i, g := range groups {
		cursor := " "
		if i == m.groupCursor {
			cursor = "▸"
		}
		marker := " "
		if g.ID == activeID {
			marker = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render("●")
		}
		line := fmt.Sprintf("%s %s %s (%d)", cursor, marker, g.Name, len(g.Games))
		if i == m.groupCursor {
			style := lipgloss.NewStyle().Bold(true)
			if m.focus == focusGroups {
				style = style.Foreground(lipgloss.Color("229"))
			}
			line = style.Render(line)
		}
		lines = append(lines, line)
	}

	return lipgloss.NewStyle().Width(width).Height(height).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderGamesPanel(width, height int) string {
	group := m.svc.ActiveGroup()
	games := m.svc.VisibleGames()

	title := fmt.Sprintf("Games — %s", group.Name)
	lines := make([]string, 0, len(games)+2)
	lines = append(lines, panelTitleStyled(title, m.focus == focusGames))

	if len(games) == 0 {
		hint := "Empty group. Press 'a' to add a game."
		if len(group.Games) > 0 {
			hint = "Nothing on this page."
		}
		lines = append(lines, lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Render(hint))
	} else {
		for i, g := range games {
			cursor := " "
			if i == m.gameCursor {
				cursor = "▸"
			}
			row := fmt.Sprintf("%s %s  %s", cursor, g.Title, fieldSummary(g))
			style := lipgloss.NewStyle()
			if i == m.gameCursor {
				style = style.Bold(true)
				if m.focus == focusGames {
					style = style.Foreground(lipgloss.Color("229"))
				}
			}
			lines = append(lines, style.Render(truncateRunes(row, width)))
		}
	}

	return lipgloss.NewStyle().Width(width).Height(height).Render(strings.Join(lines, "\n"))
}

// fieldSummary renders the enumerated fields of one row. Values outside
// their enumeration are flagged rather than hidden.
func fieldSummary(g model.Game) string {
	warn := lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	status := string(g.Status)
	if !g.Status.Valid() {
		status = warn.Render(status + "!")
	}
	note := string(g.Note)
	if !g.Note.Valid() {
		note = warn.Render(note + "!")
	}
	difficulty := string(g.Difficulty)
	if !g.Difficulty.Valid() {
		difficulty = warn.Render(difficulty + "!")
	}
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	return dim.Render("[") + status + dim.Render(" • ") +
		note + dim.Render("/10 • ") + difficulty + dim.Render("]")
}

func panelTitleStyled(title string, active bool) string {
	base := lipgloss.NewStyle().Bold(true)
	if !active {
		return base.Render(title)
	}
	text := base.Foreground(lipgloss.Color("229")).Render(title)
	marker := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")).Render("*")
	return lipgloss.JoinHorizontal(lipgloss.Left, text, " ", marker)
}

func truncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	if max <= 1 {
		return "…"
	}
	r := []rune(s)
	return string(r[:max-1]) + "…"
}

func clamp(v, min, max int) int {
	if max < min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
