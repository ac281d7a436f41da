package model

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestSetFieldAcceptsEveryDomainValue(t *testing.T) {
	g := NewGame(1)

	for _, s := range Statuses() {
		if !g.SetField(FieldStatus, string(s)) {
			t.Fatalf("expected status %q to be accepted", s)
		}
		if g.Status != s {
			t.Fatalf("expected status %q after set, got %q", s, g.Status)
		}
	}
	for _, n := range Notes() {
		if !g.SetField(FieldNote, string(n)) {
			t.Fatalf("expected note %q to be accepted", n)
		}
		if g.Note != n {
			t.Fatalf("expected note %q after set, got %q", n, g.Note)
		}
	}
	for _, d := range Difficulties() {
		if !g.SetField(FieldDifficulty, string(d)) {
			t.Fatalf("expected difficulty %q to be accepted", d)
		}
		if g.Difficulty != d {
			t.Fatalf("expected difficulty %q after set, got %q", d, g.Difficulty)
		}
	}
}

func TestSetFieldRejectsOutOfDomainAndKeepsPriorValue(t *testing.T) {
	g := NewGame(1)
	if !g.SetField(FieldStatus, string(StatusPlaying)) {
		t.Fatalf("valid status rejected")
	}

	cases := []struct {
		field string
		value string
	}{
		{FieldStatus, "Unknown"},
		{FieldStatus, "playing"}, // case matters
		{FieldNote, "11"},
		{FieldNote, "-1"},
		{FieldNote, "five"},
		{FieldDifficulty, "SS"},
		{FieldDifficulty, "f"},
	}
	for _, tc := range cases {
		before := g
		if g.SetField(tc.field, tc.value) {
			t.Fatalf("expected %s=%q to be rejected", tc.field, tc.value)
		}
		if !reflect.DeepEqual(before, g) {
			t.Fatalf("expected no mutation after rejected %s=%q\nbefore=%+v\nafter=%+v", tc.field, tc.value, before, g)
		}
	}
}

func TestSetFieldTitleAlwaysSucceedsEvenBlank(t *testing.T) {
	g := NewGame(1)
	if !g.SetField(FieldTitle, "   ") {
		t.Fatalf("expected blank title to be stored")
	}
	if g.Title != "   " {
		t.Fatalf("expected stored blank title, got %q", g.Title)
	}
}

func TestSetFieldUnknownNameMutatesNothing(t *testing.T) {
	g := NewGame(1)
	before := g
	if g.SetField("platform", "PC") {
		t.Fatalf("expected unknown field to be rejected")
	}
	if !reflect.DeepEqual(before, g) {
		t.Fatalf("expected no mutation for unknown field")
	}
}

func TestGameFromRawDefaultsMissingFields(t *testing.T) {
	g := GameFromRaw(map[string]any{"title": "Hollow Knight"})
	if g.ID == "" {
		t.Fatalf("expected generated id")
	}
	if g.Title != "Hollow Knight" {
		t.Fatalf("unexpected title %q", g.Title)
	}
	if g.Status != StatusNotStarted {
		t.Fatalf("expected first status, got %q", g.Status)
	}
	if g.Note != "0" {
		t.Fatalf("expected first note, got %q", g.Note)
	}
	if g.Difficulty != "F" {
		t.Fatalf("expected first difficulty, got %q", g.Difficulty)
	}
}

func TestGameFromRawPreservesOutOfDomainValues(t *testing.T) {
	g := GameFromRaw(map[string]any{
		"id":         "g1",
		"title":      "Old Save",
		"status":     "Unknown",
		"note":       "12",
		"difficulty": "Z",
	})
	if g.Status != "Unknown" || g.Note != "12" || g.Difficulty != "Z" {
		t.Fatalf("expected out-of-domain values preserved, got %+v", g)
	}
}

func TestNormalizedIsIdempotent(t *testing.T) {
	raw := map[string]any{"title": "x", "status": "Weird"}
	once := GameFromRaw(raw)
	twice := once.Normalized()
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("normalize not idempotent\nonce=%+v\ntwice=%+v", once, twice)
	}
}

func TestGameJSONRoundTrip(t *testing.T) {
	want := Game{
		ID:         "g1",
		Title:      "Celeste",
		Status:     StatusCompleted,
		Note:       "10",
		Difficulty: "A+",
	}
	data, err := json.Marshal(want)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var got Game
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("round-trip mismatch\nwant=%+v\ngot=%+v", want, got)
	}
}

func TestValidateReportsEveryOutOfDomainField(t *testing.T) {
	g := Game{
		ID:         "g1",
		Title:      "  ",
		Status:     "Unknown",
		Note:       "12",
		Difficulty: "Z",
	}
	problems := g.Validate()
	if len(problems) != 4 {
		t.Fatalf("expected 4 problems, got %d: %+v", len(problems), problems)
	}

	joined := make([]string, 0, len(problems))
	for _, p := range problems {
		joined = append(joined, p.Msg)
	}
	all := strings.Join(joined, "; ")
	for _, want := range []string{
		"title must not be blank",
		`status "Unknown" is invalid`,
		`note "12" is invalid`,
		`difficulty "Z" is invalid`,
	} {
		if !strings.Contains(all, want) {
			t.Fatalf("expected diagnostic %q in %q", want, all)
		}
	}
}

func TestValidateCleanRecordHasNoProblems(t *testing.T) {
	g := NewGame(3)
	if problems := g.Validate(); len(problems) != 0 {
		t.Fatalf("expected default record to validate, got %+v", problems)
	}
}

func TestRankOutOfDomainSortsFirst(t *testing.T) {
	if got := Status("Unknown").Rank(); got != -1 {
		t.Fatalf("expected rank -1 for unknown status, got %d", got)
	}
	if got := Difficulty("Z").Rank(); got != -1 {
		t.Fatalf("expected rank -1 for unknown difficulty, got %d", got)
	}
	if StatusNotStarted.Rank() != 0 || StatusAbandoned.Rank() != len(Statuses())-1 {
		t.Fatalf("unexpected status ranks")
	}
}

func TestNoteValueNumericWithFallback(t *testing.T) {
	if Note("10").Value() != 10 {
		t.Fatalf("expected 10")
	}
	if Note("garbage").Value() != 0 {
		t.Fatalf("expected unparsable note to count as 0")
	}
}
