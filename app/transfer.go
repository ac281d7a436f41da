package app

import (
	"encoding/json"
	"fmt"

	"gamelog/model"
)

// ImportResult summarizes a completed import.
type ImportResult struct {
	Groups      int
	Games       int
	Diagnostics []string
}

// ExportAll serializes every group to an indented JSON document. A collection
// without a single game is refused.
func (s *Service) ExportAll() ([]byte, error) {
	games := 0
	for _, g := range s.col.Groups {
		games += len(g.Games)
	}
	if games == 0 {
		return nil, ErrEmptyCollection
	}
	return json.MarshalIndent(s.col.Groups, "", "  ")
}

// PreviewImport checks the document's shape without touching state and
// reports how many groups and games it holds. Record field values are not
// inspected here; out-of-domain values only surface as diagnostics on the
// actual import.
func (s *Service) PreviewImport(data []byte) (groups, games int, err error) {
	parsed, err := parseTransferDocument(data)
	if err != nil {
		return 0, 0, err
	}
	for _, g := range parsed {
		games += len(g.rawGames)
	}
	return len(parsed), games, nil
}

// ImportAll replaces the whole collection with the document's contents. The
// first imported group becomes active. Records are kept verbatim, including
// out-of-domain field values, which are reported in the result diagnostics.
func (s *Service) ImportAll(data []byte) (ImportResult, error) {
	parsed, err := parseTransferDocument(data)
	if err != nil {
		return ImportResult{}, err
	}

	result := ImportResult{Groups: len(parsed)}
	groups := make([]model.Group, 0, len(parsed))
	for _, pg := range parsed {
		group := model.Group{
			ID:    pg.id,
			Name:  pg.name,
			Games: make([]model.Game, 0, len(pg.rawGames)),
		}
		for _, raw := range pg.rawGames {
			game := model.GameFromRaw(raw)
			for _, p := range game.Validate() {
				result.Diagnostics = append(result.Diagnostics,
					fmt.Sprintf("%s / %s: %s", group.Name, game.Title, p))
			}
			group.Games = append(group.Games, game)
			result.Games++
		}
		groups = append(groups, group)
	}

	if len(groups) == 0 {
		// A shape-valid but empty document still leaves a usable collection.
		s.col = model.NewCollection()
	} else {
		s.col = model.Collection{Groups: groups}
	}
	s.col.Normalize()
	s.view = ViewState{}
	s.notifyAll()
	if err := s.persist(); err != nil {
		return result, err
	}
	return result, nil
}

type parsedGroup struct {
	id       string
	name     string
	rawGames []map[string]any
}

// parseTransferDocument enforces the transfer shape: a top-level array of
// group objects, each with string id and name and an array of record
// objects. Anything else is ErrBadDocument.
func parseTransferDocument(data []byte) ([]parsedGroup, error) {
	var top []map[string]any
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, ErrBadDocument
	}

	out := make([]parsedGroup, 0, len(top))
	for _, obj := range top {
		id, okID := obj["id"].(string)
		name, okName := obj["name"].(string)
		if !okID || !okName || id == "" || name == "" {
			return nil, ErrBadDocument
		}
		gamesAny, ok := obj["games"].([]any)
		if !ok {
			return nil, ErrBadDocument
		}
		pg := parsedGroup{id: id, name: name}
		for _, ga := range gamesAny {
			raw, ok := ga.(map[string]any)
			if !ok {
				return nil, ErrBadDocument
			}
			pg.rawGames = append(pg.rawGames, raw)
		}
		out = append(out, pg)
	}
	return out, nil
}
