package entities

import (
	"strings"
	"time"
)

// DefaultCategory is assigned to questions that arrive without a category.
const DefaultCategory = "عامة"

// Difficulty levels: 1 (easy) to 3 (hard).
const (
	MinDifficulty = 1
	MaxDifficulty = 3
)

// Categories lists the category labels the bank uses.
var Categories = []string{
	"إسلاميات",
	"تاريخ",
	"جغرافيا",
	"حيوانات",
	"رياضة",
	"علوم",
	"آداب",
	"لغة",
	"عامة",
	"ألغاز",
}

// Question is a single multiple-choice question in the bank.
type Question struct {
	ID                string    // unique 20-character hex identifier
	Text              string    // question text shown to players
	Options           []string  // answer choices, correct answer first
	Category          string    // one of Categories
	Difficulty        int       // 1 (easy) to 3 (hard)
	MarkedForDeletion bool      // curation flag, never exported
	CreatedAt         time.Time // timestamp when the question entered the bank
	UpdatedAt         time.Time // timestamp of the last edit
}

// ApplyDefaults fills absent fields with their documented defaults: a blank
// category becomes DefaultCategory and an out-of-range difficulty is clamped
// into [MinDifficulty, MaxDifficulty]. Applied once at ingestion so read
// sites never need fallback logic.
func (q *Question) ApplyDefaults() {
	if strings.TrimSpace(q.Category) == "" {
		q.Category = DefaultCategory
	}
	if q.Difficulty < MinDifficulty {
		q.Difficulty = MinDifficulty
	}
	if q.Difficulty > MaxDifficulty {
		q.Difficulty = MaxDifficulty
	}
}

// KnownCategory reports whether c is one of the bank's category labels.
func KnownCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// BankStats summarizes the state of the question bank.
type BankStats struct {
	Total      int            // all questions, marked ones included
	Marked     int            // questions flagged for deletion
	ByCategory map[string]int // question count per category
}
