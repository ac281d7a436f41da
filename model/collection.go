package model

import "github.com/google/uuid"

// DefaultGroupName names the group created at first run.
const DefaultGroupName = "Default"

// Group is a named, insertion-ordered set of games (one "tab" in the UI).
type Group struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Games []Game `json:"games"`
}

// NewGroup returns an empty group with a generated id.
func NewGroup(name string) Group {
	return Group{
		ID:    uuid.NewString(),
		Name:  name,
		Games: []Game{},
	}
}

// Collection is the authoritative session state: all groups plus the pointer
// to the group currently displayed and edited.
type Collection struct {
	Groups   []Group
	ActiveID string
}

// NewCollection bootstraps a collection holding one default group.
func NewCollection() Collection {
	g := NewGroup(DefaultGroupName)
	return Collection{
		Groups:   []Group{g},
		ActiveID: g.ID,
	}
}

// GroupIndex returns the position of the group with the given id, or -1.
func (c *Collection) GroupIndex(id string) int {
	for i := range c.Groups {
		if c.Groups[i].ID == id {
			return i
		}
	}
	return -1
}

// ActiveGroup returns the group the active pointer resolves to. The second
// return is false only for an empty collection, which the controller never
// allows to persist.
func (c *Collection) ActiveGroup() (*Group, bool) {
	if i := c.GroupIndex(c.ActiveID); i >= 0 {
		return &c.Groups[i], true
	}
	return nil, false
}

// Normalize heals a loaded collection: nil slices become empty ones, missing
// ids are generated, every game is shape-healed, and the active pointer is
// re-anchored to the first group when it no longer resolves.
func (c *Collection) Normalize() {
	if c.Groups == nil {
		c.Groups = []Group{}
	}
	for i := range c.Groups {
		if c.Groups[i].ID == "" {
			c.Groups[i].ID = uuid.NewString()
		}
		if c.Groups[i].Games == nil {
			c.Groups[i].Games = []Game{}
		}
		for j := range c.Groups[i].Games {
			c.Groups[i].Games[j] = c.Groups[i].Games[j].Normalized()
		}
	}
	if len(c.Groups) > 0 && c.GroupIndex(c.ActiveID) < 0 {
		c.ActiveID = c.Groups[0].ID
	}
}

// Session stores UI context that should survive restarts.
type Session struct {
	ActiveGroupID string `json:"activeGroupId,omitempty"`
}
