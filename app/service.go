package app

import (
	"errors"
	"fmt"
	"strings"

	"gamelog/model"
	"gamelog/store"
)

var (
	ErrGroupNotFound   = errors.New("group not found")
	ErrGameNotFound    = errors.New("game not found")
	ErrInvalidName     = errors.New("name must not be empty")
	ErrLastGroup       = errors.New("cannot delete the last group")
	ErrInvalidField    = errors.New("invalid field value")
	ErrEmptyCollection = errors.New("collection has no games to export")
	ErrBadDocument     = errors.New("document does not match the expected shape")

	// ErrNotPersisted wraps storage failures. The in-memory mutation that
	// triggered the save is kept; callers surface the warning and move on.
	ErrNotPersisted = errors.New("changes kept in memory but not persisted")
)

// Notifier receives change signals after every successful mutation. All
// methods are called with copies.
type Notifier interface {
	CollectionChanged(groups []model.Group, activeID string)
	ActiveGroupChanged(group model.Group)
}

// Service holds domain rules and in-memory state. It is the sole mutator of
// the collection; the TUI and CLI call through it.
type Service struct {
	store    store.Store
	notifier Notifier
	pageSize int

	col  model.Collection
	view ViewState
}

// NewService creates a service persisting through st. pageSize values below
// one fall back to ten.
func NewService(st store.Store, pageSize int) *Service {
	if pageSize < 1 {
		pageSize = 10
	}
	return &Service{store: st, pageSize: pageSize}
}

// SetNotifier registers the change listener. A nil notifier is allowed.
func (s *Service) SetNotifier(n Notifier) {
	s.notifier = n
}

// Bootstrap loads the persisted collection and session context, healing
// whatever shape problems the documents carry. A missing or unreadable
// collection starts fresh with one default group.
func (s *Service) Bootstrap() error {
	var groups []model.Group
	found, err := s.store.Load(store.KeyCollection, &groups)
	if err != nil {
		return err
	}
	if !found || len(groups) == 0 {
		s.col = model.NewCollection()
	} else {
		s.col = model.Collection{Groups: groups}
	}

	var session model.Session
	if found, err := s.store.Load(store.KeySession, &session); err == nil && found {
		s.col.ActiveID = session.ActiveGroupID
	}
	s.col.Normalize()

	s.view = ViewState{}
	s.notifyAll()
	return nil
}

// Groups returns all groups as a copy.
func (s *Service) Groups() []model.Group {
	out := make([]model.Group, len(s.col.Groups))
	copy(out, s.col.Groups)
	return out
}

// ActiveGroup returns a copy of the group the active pointer resolves to.
func (s *Service) ActiveGroup() model.Group {
	group, ok := s.col.ActiveGroup()
	if !ok {
		return model.Group{}
	}
	return copyGroup(*group)
}

// ActiveGroupID returns the id of the active group.
func (s *Service) ActiveGroupID() string {
	return s.col.ActiveID
}

// PageSize returns the fixed page size of the view engine.
func (s *Service) PageSize() int {
	return s.pageSize
}

// ActivateGroup switches the active pointer to the given group and resets
// the view to the first page. An unknown id changes nothing.
func (s *Service) ActivateGroup(id string) error {
	if s.col.GroupIndex(id) < 0 {
		return nil
	}
	if s.col.ActiveID == id {
		return nil
	}
	s.col.ActiveID = id
	s.view = ViewState{}
	s.notifyAll()
	return s.persist()
}

// AddGroup appends a new group named after its ordinal and makes it active.
func (s *Service) AddGroup() (model.Group, error) {
	group := model.NewGroup(fmt.Sprintf("New List %d", len(s.col.Groups)+1))
	s.col.Groups = append(s.col.Groups, group)
	s.col.ActiveID = group.ID
	s.view = ViewState{}
	s.notifyAll()
	return group, s.persist()
}

// RenameGroup sets a group's name. Blank names are rejected.
func (s *Service) RenameGroup(id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidName
	}
	i := s.col.GroupIndex(id)
	if i < 0 {
		return ErrGroupNotFound
	}
	s.col.Groups[i].Name = name
	s.notifyAll()
	return s.persist()
}

// DeleteGroup removes a group and its games. The last remaining group cannot
// be deleted; deleting the active group re-anchors the pointer to the first
// remaining one.
func (s *Service) DeleteGroup(id string) error {
	if len(s.col.Groups) <= 1 {
		return ErrLastGroup
	}
	i := s.col.GroupIndex(id)
	if i < 0 {
		return ErrGroupNotFound
	}
	s.col.Groups = append(s.col.Groups[:i], s.col.Groups[i+1:]...)
	if s.col.ActiveID == id {
		s.col.ActiveID = s.col.Groups[0].ID
		s.view = ViewState{}
	}
	s.notifyAll()
	return s.persist()
}

// AddGame appends a fresh record to the active group and moves the view to
// the page it landed on.
func (s *Service) AddGame() (model.Game, error) {
	group, ok := s.col.ActiveGroup()
	if !ok {
		return model.Game{}, ErrGroupNotFound
	}
	game := model.NewGame(len(group.Games) + 1)
	group.Games = append(group.Games, game)
	s.view.Page = totalPages(len(group.Games), s.pageSize) - 1
	s.notifyActive()
	return game, s.persist()
}

// UpdateGame writes one field of a record from its string form. Out-of-domain
// values for the enumerated fields are rejected and leave the record as it
// was.
func (s *Service) UpdateGame(id, field, value string) error {
	group, ok := s.col.ActiveGroup()
	if !ok {
		return ErrGroupNotFound
	}
	for i := range group.Games {
		if group.Games[i].ID != id {
			continue
		}
		if !group.Games[i].SetField(field, value) {
			return ErrInvalidField
		}
		s.notifyActive()
		return s.persist()
	}
	return ErrGameNotFound
}

// GetGame returns a record from the active group by id.
func (s *Service) GetGame(id string) (model.Game, error) {
	group, ok := s.col.ActiveGroup()
	if !ok {
		return model.Game{}, ErrGroupNotFound
	}
	for _, g := range group.Games {
		if g.ID == id {
			return g, nil
		}
	}
	return model.Game{}, ErrGameNotFound
}

// DeleteGame removes a record from the active group, clamping the view page
// when the last page disappears.
func (s *Service) DeleteGame(id string) error {
	group, ok := s.col.ActiveGroup()
	if !ok {
		return ErrGroupNotFound
	}
	for i := range group.Games {
		if group.Games[i].ID != id {
			continue
		}
		group.Games = append(group.Games[:i], group.Games[i+1:]...)
		s.view.Page = clampPage(s.view.Page, totalPages(len(group.Games), s.pageSize))
		s.notifyActive()
		return s.persist()
	}
	return ErrGameNotFound
}

// persist writes both documents. Failures do not roll the mutation back;
// they come back wrapped in ErrNotPersisted so the front end can warn.
func (s *Service) persist() error {
	if err := s.store.Save(store.KeyCollection, s.col.Groups); err != nil {
		return fmt.Errorf("%w: %v", ErrNotPersisted, err)
	}
	session := model.Session{ActiveGroupID: s.col.ActiveID}
	if err := s.store.Save(store.KeySession, session); err != nil {
		return fmt.Errorf("%w: %v", ErrNotPersisted, err)
	}
	return nil
}

func (s *Service) notifyAll() {
	if s.notifier == nil {
		return
	}
	s.notifier.CollectionChanged(s.Groups(), s.col.ActiveID)
	s.notifyActive()
}

func (s *Service) notifyActive() {
	if s.notifier == nil {
		return
	}
	if group, ok := s.col.ActiveGroup(); ok {
		s.notifier.ActiveGroupChanged(copyGroup(*group))
	}
}

func copyGroup(g model.Group) model.Group {
	games := make([]model.Game, len(g.Games))
	copy(games, g.Games)
	g.Games = games
	return g
}
