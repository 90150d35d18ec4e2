package models

import (
	"time"
)

type AccessKind string

const (
	AccessKindEntry AccessKind = "entry"
	AccessKindExit  AccessKind = "exit"
)

type AccessOutcome string

const (
	AccessOutcomeApproved AccessOutcome = "approved"
	AccessOutcomeRejected AccessOutcome = "rejected"
)

type PresenceState string

const (
	PresenceNotPresent PresenceState = "not_present"
	PresencePresent    PresenceState = "present"
)

// AccessEvent é um fato imutável no histórico de entradas e saídas. O livro
// de registros só cresce: correções viram eventos compensatórios, nunca
// edições. Não há soft delete aqui de propósito.
type AccessEvent struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	// Cada decisão aprovada gera no máximo um evento; o índice único impede
	// replays da mesma decisão.
	RequestID uint `gorm:"uniqueIndex;not null" json:"request_id"`

	MilitaryID uint     `gorm:"index;not null" json:"military_id"`
	Military   Military `json:"military,omitempty"`

	Kind      AccessKind    `gorm:"not null" json:"kind"`
	Timestamp time.Time     `gorm:"index;not null" json:"timestamp"`
	Location  string        `json:"location"`
	DecidedBy uint          `json:"decided_by"`
	Outcome   AccessOutcome `gorm:"not null" json:"outcome"`
}
