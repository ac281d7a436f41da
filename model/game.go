package model

import (
	"fmt"

	"github.com/google/uuid"
)

// Editable field names accepted by SetField.
const (
	FieldTitle      = "title"
	FieldStatus     = "status"
	FieldNote       = "note"
	FieldDifficulty = "difficulty"
)

// Game is an individual tracked entry.
//
// The enumerated fields can only drift out of their domains through imported
// documents; SetField refuses out-of-domain writes, and imported values are
// preserved as-is until an explicit Validate pass reports them.
type Game struct {
	ID         string     `json:"id" validate:"required"`
	Title      string     `json:"title" validate:"notblank"`
	Status     Status     `json:"status" validate:"oneof=Not-Started Playing Paused Completed Abandoned"`
	Note       Note       `json:"note" validate:"oneof=0 1 2 3 4 5 6 7 8 9 10"`
	Difficulty Difficulty `json:"difficulty" validate:"oneof=F E- E E+ D- D D+ C- C C+ B- B B+ A- A A+ S S+"`
}

// NewGame returns a fresh entry with default field values. The ordinal is
// only used for the placeholder title.
func NewGame(ordinal int) Game {
	return Game{
		ID:         uuid.NewString(),
		Title:      fmt.Sprintf("New Item %d", ordinal),
		Status:     statusOrder[0],
		Note:       noteOrder[0],
		Difficulty: difficultyOrder[0],
	}
}

// GameFromRaw builds a Game from an untyped key/value bag, typically one
// element of an imported document. Missing fields fall back to the first
// enumeration value (empty string for the title); a missing id is generated.
// Present values are kept verbatim, including out-of-domain ones.
func GameFromRaw(raw map[string]any) Game {
	g := Game{
		ID:         rawString(raw, "id"),
		Title:      rawString(raw, "title"),
		Status:     Status(rawString(raw, "status")),
		Note:       Note(rawString(raw, "note")),
		Difficulty: Difficulty(rawString(raw, "difficulty")),
	}
	return g.Normalized()
}

// Normalized heals the record's shape without touching its domain: empty
// enumerated fields get the first enumeration value, an empty id gets a fresh
// one. Non-empty out-of-domain values pass through untouched.
func (g Game) Normalized() Game {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	if g.Status == "" {
		g.Status = statusOrder[0]
	}
	if g.Note == "" {
		g.Note = noteOrder[0]
	}
	if g.Difficulty == "" {
		g.Difficulty = difficultyOrder[0]
	}
	return g
}

// SetField attempts to set one editable field from its string form. The three
// enumerated fields reject values outside their domain and keep the prior
// value; the title always succeeds. Unknown field names mutate nothing.
func (g *Game) SetField(name, value string) bool {
	switch name {
	case FieldTitle:
		g.Title = value
		return true
	case FieldStatus:
		if !Status(value).Valid() {
			return false
		}
		g.Status = Status(value)
		return true
	case FieldNote:
		if !Note(value).Valid() {
			return false
		}
		g.Note = Note(value)
		return true
	case FieldDifficulty:
		if !Difficulty(value).Valid() {
			return false
		}
		g.Difficulty = Difficulty(value)
		return true
	default:
		return false
	}
}

// Field returns the string form of one editable field, or "" for unknown names.
func (g Game) Field(name string) string {
	switch name {
	case FieldTitle:
		return g.Title
	case FieldStatus:
		return string(g.Status)
	case FieldNote:
		return string(g.Note)
	case FieldDifficulty:
		return string(g.Difficulty)
	default:
		return ""
	}
}

func rawString(raw map[string]any, key string) string {
	v, ok := raw[key]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return fmt.Sprintf("%v", v)
	}
	return s
}
