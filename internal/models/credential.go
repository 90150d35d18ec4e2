package models

import (
	"encoding/base64"
	"time"

	"gorm.io/gorm"
)

// Credential é o código de acesso emitido uma única vez para um militar,
// junto com a imagem QR que o codifica. Nunca é alterada depois de emitida.
type Credential struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	MilitaryID uint `gorm:"uniqueIndex;not null" json:"military_id"`

	Code     string    `gorm:"uniqueIndex;not null" json:"code"`
	Image    []byte    `gorm:"type:blob;not null" json:"-"`
	IssuedAt time.Time `gorm:"not null" json:"issued_at"`
}

func (c *Credential) ImageDataURL() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(c.Image)
}
