package models

// Ending - нарративная концовка игры. Диапазоны очков инклюзивные и
// покрывают весь интервал [0,100] без дыр.
type Ending struct {
	ID                    string  `json:"id" db:"id"`
	Title                 string  `json:"title" db:"title"`
	MinScore              int     `json:"min_score" db:"min_score"`
	MaxScore              int     `json:"max_score" db:"max_score"`
	Narrative             string  `json:"narrative" db:"narrative"`
	Outcome               string  `json:"outcome" db:"outcome"`
	TrustPenaltyNarrative *string `json:"trust_penalty_narrative,omitempty" db:"trust_penalty_narrative"`
}

// EndingResult - результат резолва концовки: сама концовка (возможно
// пониженная за низкий trust) плюс альтернативный нарратив исходной.
type EndingResult struct {
	Ending           Ending  `json:"ending"`
	TrustPenalized   bool    `json:"trust_penalized"`
	PenaltyNarrative *string `json:"penalty_narrative,omitempty"` // Нарратив штрафа ИСХОДНОЙ (до понижения) концовки
}
