package model

import "strconv"

// Status tracks how far along a game is.
type Status string

const (
	StatusNotStarted Status = "Not-Started"
	StatusPlaying    Status = "Playing"
	StatusPaused     Status = "Paused"
	StatusCompleted  Status = "Completed"
	StatusAbandoned  Status = "Abandoned"
)

// statusOrder defines the canonical ordering used by the status comparator.
var statusOrder = []Status{
	StatusNotStarted,
	StatusPlaying,
	StatusPaused,
	StatusCompleted,
	StatusAbandoned,
}

// Statuses returns all valid statuses in canonical order.
func Statuses() []Status {
	out := make([]Status, len(statusOrder))
	copy(out, statusOrder)
	return out
}

func (s Status) Valid() bool {
	return s.Rank() >= 0
}

// Rank returns the position in the canonical ordering, or -1 for values
// outside the enumeration. Out-of-domain values sort before all defined ones.
func (s Status) Rank() int {
	for i, v := range statusOrder {
		if v == s {
			return i
		}
	}
	return -1
}

// Note is a 0-10 rating kept in its string form.
type Note string

var noteOrder = []Note{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9", "10"}

// Notes returns all valid notes in ascending order.
func Notes() []Note {
	out := make([]Note, len(noteOrder))
	copy(out, noteOrder)
	return out
}

func (n Note) Valid() bool {
	for _, v := range noteOrder {
		if v == n {
			return true
		}
	}
	return false
}

// Value parses the note as an integer; unparsable notes count as 0.
func (n Note) Value() int {
	v, err := strconv.Atoi(string(n))
	if err != nil {
		return 0
	}
	return v
}

// Difficulty is a letter grade from F up to S+.
type Difficulty string

const (
	DifficultyF Difficulty = "F"
	DifficultyS Difficulty = "S+"
)

var difficultyOrder = []Difficulty{
	"F",
	"E-", "E", "E+",
	"D-", "D", "D+",
	"C-", "C", "C+",
	"B-", "B", "B+",
	"A-", "A", "A+",
	"S", "S+",
}

// Difficulties returns all valid difficulties from easiest to hardest.
func Difficulties() []Difficulty {
	out := make([]Difficulty, len(difficultyOrder))
	copy(out, difficultyOrder)
	return out
}

func (d Difficulty) Valid() bool {
	return d.Rank() >= 0
}

// Rank returns the position in the grade ladder, or -1 for values outside it.
func (d Difficulty) Rank() int {
	for i, v := range difficultyOrder {
		if v == d {
			return i
		}
	}
	return -1
}
