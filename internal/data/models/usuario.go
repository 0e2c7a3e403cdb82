package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DBUsuario representa a conta de acesso do cliente ao portal.
type DBUsuario struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key"`

	Username     string  `gorm:"type:varchar(50);uniqueIndex;not null"`
	Email        string  `gorm:"type:varchar(255);uniqueIndex;not null"`
	NomeCompleto *string `gorm:"type:varchar(100)"`
	PasswordHash string  `gorm:"type:varchar(255);not null"`
	Active       bool    `gorm:"not null;default:true"`

	// CNPJCPF da empresa titular da conta (apenas dígitos). Todos os
	// pedidos e faturas exibidos pertencem a este documento.
	CNPJCPF     string `gorm:"type:varchar(14);not null;index"`
	RazaoSocial string `gorm:"type:varchar(255);not null"`

	FailedAttempts  int        `gorm:"not null;default:0"`
	LastFailedLogin *time.Time `gorm:"type:timestamptz"`
	LastLogin       *time.Time `gorm:"type:timestamptz"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName especifica o nome da tabela para GORM.
func (DBUsuario) TableName() string {
	return "usuarios"
}

// UsuarioPublic representa os dados públicos de um usuário para a UI.
type UsuarioPublic struct {
	ID           uuid.UUID
	Username     string
	Email        string
	NomeCompleto *string
	CNPJCPF      string
	RazaoSocial  string
	LastLogin    *time.Time
}

// ToUsuarioPublic converte um DBUsuario para UsuarioPublic.
func ToUsuarioPublic(u *DBUsuario) *UsuarioPublic {
	if u == nil {
		return nil
	}
	return &UsuarioPublic{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		NomeCompleto: u.NomeCompleto,
		CNPJCPF:      u.CNPJCPF,
		RazaoSocial:  u.RazaoSocial,
		LastLogin:    u.LastLogin,
	}
}

// Credenciais é a entrada do formulário de login.
type Credenciais struct {
	Username string
	Password string
}

// CleanAndValidate normaliza e valida os campos das credenciais.
func (c *Credenciais) CleanAndValidate() error {
	c.Username = strings.ToLower(strings.TrimSpace(c.Username))
	if c.Username == "" {
		return NewValidationError("Nome de usuário é obrigatório.", map[string]string{"username": "Nome de usuário obrigatório"})
	}
	if c.Password == "" {
		return NewValidationError("Senha é obrigatória.", map[string]string{"password": "Senha obrigatória"})
	}
	return nil
}
