package models

import (
	"time"
)

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// AccessRequest é uma solicitação de entrada ou saída aguardando a decisão
// de um operador na Central de Autorização. Nenhuma leitura de credencial
// admite alguém sozinha: sempre passa por aqui.
type AccessRequest struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	MilitaryID uint     `gorm:"index;not null" json:"military_id"`
	Military   Military `json:"military,omitempty"`

	RequestedKind AccessKind    `gorm:"not null" json:"requested_kind"`
	Timestamp     time.Time     `gorm:"not null" json:"timestamp"`
	Location      string        `json:"location"`
	Status        RequestStatus `gorm:"not null;default:'pending'" json:"status"`

	DecidedBy *uint      `json:"decided_by,omitempty"`
	DecidedAt *time.Time `json:"decided_at,omitempty"`
}

func (r *AccessRequest) IsTerminal() bool {
	return r.Status != RequestStatusPending
}
