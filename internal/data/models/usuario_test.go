package models

import (
	"errors"
	"testing"

	appErrors "github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/core"
)

func TestCredenciaisCleanAndValidate(t *testing.T) {
	t.Run("normaliza o username", func(t *testing.T) {
		c := Credenciais{Username: "  Cliente.ACME  ", Password: "segredo"}
		if err := c.CleanAndValidate(); err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if c.Username != "cliente.acme" {
			t.Errorf("Username = %q, esperava %q", c.Username, "cliente.acme")
		}
	})

	t.Run("username vazio", func(t *testing.T) {
		c := Credenciais{Username: "   ", Password: "segredo"}
		err := c.CleanAndValidate()
		var vErr *appErrors.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("esperava ValidationError, obteve %v", err)
		}
	})

	t.Run("senha vazia", func(t *testing.T) {
		c := Credenciais{Username: "cliente", Password: ""}
		if err := c.CleanAndValidate(); err == nil {
			t.Fatal("esperava erro, obteve nil")
		}
	})
}
