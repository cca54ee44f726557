package entities

import "time"

// ExportInfo is the metadata envelope of a question-bank export file.
type ExportInfo struct {
	ExportedAt     time.Time `json:"exported_at"`
	TotalQuestions int       `json:"total_questions"`
	Source         string    `json:"source"`
	Note           string    `json:"note,omitempty"`
	RemovedFields  []string  `json:"removed_fields"`
}

// ExportFile is the interchange document produced by export and accepted by
// import.
type ExportFile struct {
	ExportInfo ExportInfo       `json:"export_info"`
	Questions  []ExportQuestion `json:"questions"`
}

// ExportQuestion is the wire form of a question. Category and Difficulty are
// pointers so that stripped fields disappear from an export and absent fields
// are detectable on import.
type ExportQuestion struct {
	ID         string   `json:"id,omitempty"`
	Text       string   `json:"question_text"`
	Options    []string `json:"options"`
	Category   *string  `json:"category,omitempty"`
	Difficulty *int     `json:"difficulty,omitempty"`
}
