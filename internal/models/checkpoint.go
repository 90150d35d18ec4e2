package models

import (
	"time"

	"gorm.io/gorm"
)

// Checkpoint é um ponto de controle físico (portão, guarita) de onde chegam
// as leituras de credencial. O rótulo é livre nos eventos; o cadastro aqui
// serve para o painel listar os pontos conhecidos.
type Checkpoint struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Description string `json:"description"`
	Active      bool   `gorm:"not null;default:true" json:"active"`
}
