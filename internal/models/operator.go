package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Operator é quem usa o painel: cadastra militares, emite credenciais e
// decide solicitações na Central de Autorização.
type Operator struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Password string `gorm:"not null" json:"-"`
	FullName string `gorm:"not null" json:"full_name"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	IsAdmin  bool   `gorm:"not null;default:false" json:"is_admin"`
	Active   bool   `gorm:"not null;default:true" json:"active"`
}

func (o *Operator) BeforeSave(tx *gorm.DB) error {
	if o.Password == "" {
		return nil
	}
	// Senha já em formato bcrypt não passa pelo hash de novo.
	if _, err := bcrypt.Cost([]byte(o.Password)); err == nil {
		return nil
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(o.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	o.Password = string(hashedPassword)
	return nil
}

func (o *Operator) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(o.Password), []byte(password))
	return err == nil
}
