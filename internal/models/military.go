package models

import (
	"time"

	"gorm.io/gorm"
)

type MilitaryStatus string

const (
	MilitaryStatusActive    MilitaryStatus = "active"
	MilitaryStatusOnLeave   MilitaryStatus = "on_leave"
	MilitaryStatusVacation  MilitaryStatus = "vacation"
	MilitaryStatusDetached  MilitaryStatus = "detached"
	MilitaryStatusInactive  MilitaryStatus = "inactive"
	MilitaryStatusDismissed MilitaryStatus = "dismissed"
)

// Unidades da organização. A companhia/seção de um militar precisa ser uma
// destas para emissão de credencial.
var OrganizationalUnits = []string{
	"Comando",
	"Estado-Maior",
	"1ª Companhia",
	"2ª Companhia",
	"3ª Companhia",
	"Companhia de Comando e Apoio",
	"Seção de Comunicações",
	"Seção de Saúde",
}

type Military struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	FullName string `gorm:"not null" json:"full_name"`
	Rank     string `gorm:"not null" json:"rank"`
	Function string `json:"function"`
	Unit     string `gorm:"not null" json:"unit"`

	// Document fica cifrado no banco; o valor em claro só existe em memória.
	Document          string `gorm:"-" json:"document,omitempty"`
	EncryptedDocument string `json:"-"`
	Vehicle           string `json:"vehicle,omitempty"`

	Status MilitaryStatus `gorm:"not null;default:'active'" json:"status"`

	// Foto de perfil como data URL JPEG, já comprimida no upload.
	Photo string `json:"photo,omitempty"`

	Credential *Credential `json:"credential,omitempty"`
}

func ValidUnit(unit string) bool {
	for _, u := range OrganizationalUnits {
		if u == unit {
			return true
		}
	}
	return false
}
