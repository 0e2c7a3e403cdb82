package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	appErrors "github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/core"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/data/models"
)

// fakeUsuarioRepo é um UsuarioRepository em memória para os testes.
type fakeUsuarioRepo struct {
	usuario  *models.DBUsuario
	falhas   int
	sucessos int
}

func (f *fakeUsuarioRepo) GetByUsername(username string) (*models.DBUsuario, error) {
	if f.usuario == nil || f.usuario.Username != username {
		return nil, appErrors.ErrNotFound
	}
	u := *f.usuario
	return &u, nil
}

func (f *fakeUsuarioRepo) RegisterLoginSuccess(id uuid.UUID) error {
	f.sucessos++
	return nil
}

func (f *fakeUsuarioRepo) RegisterLoginFailure(id uuid.UUID) error {
	f.falhas++
	return nil
}

func usuarioTeste(t *testing.T, senha string) *models.DBUsuario {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("falha ao gerar hash: %v", err)
	}
	return &models.DBUsuario{
		ID:           uuid.New(),
		Username:     "cliente.acme",
		Email:        "financeiro@acme.com.br",
		PasswordHash: string(hash),
		Active:       true,
		CNPJCPF:      "11222333000181",
		RazaoSocial:  "ACME Indústria Ltda",
	}
}

func TestLoginSucesso(t *testing.T) {
	repo := &fakeUsuarioRepo{usuario: usuarioTeste(t, "senha-correta")}
	svc := NewAuthService(repo)

	user, err := svc.Login(models.Credenciais{Username: "Cliente.ACME", Password: "senha-correta"})
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if user.CNPJCPF != "11222333000181" {
		t.Errorf("CNPJCPF = %q", user.CNPJCPF)
	}
	if repo.sucessos != 1 {
		t.Errorf("sucessos registrados = %d, esperava 1", repo.sucessos)
	}
}

func TestLoginUsuarioInexistente(t *testing.T) {
	svc := NewAuthService(&fakeUsuarioRepo{})

	_, err := svc.Login(models.Credenciais{Username: "ninguem", Password: "qualquer"})
	if !errors.Is(err, appErrors.ErrInvalidCredentials) {
		t.Errorf("esperava ErrInvalidCredentials, obteve %v", err)
	}
}

func TestLoginSenhaErrada(t *testing.T) {
	repo := &fakeUsuarioRepo{usuario: usuarioTeste(t, "senha-correta")}
	svc := NewAuthService(repo)

	_, err := svc.Login(models.Credenciais{Username: "cliente.acme", Password: "senha-errada"})
	if !errors.Is(err, appErrors.ErrInvalidCredentials) {
		t.Errorf("esperava ErrInvalidCredentials, obteve %v", err)
	}
	if repo.falhas != 1 {
		t.Errorf("falhas registradas = %d, esperava 1", repo.falhas)
	}
}

func TestLoginContaInativa(t *testing.T) {
	u := usuarioTeste(t, "senha-correta")
	u.Active = false
	svc := NewAuthService(&fakeUsuarioRepo{usuario: u})

	_, err := svc.Login(models.Credenciais{Username: "cliente.acme", Password: "senha-correta"})
	if !errors.Is(err, appErrors.ErrAuthentication) {
		t.Errorf("esperava ErrAuthentication, obteve %v", err)
	}
}

func TestLoginContaBloqueada(t *testing.T) {
	u := usuarioTeste(t, "senha-correta")
	u.FailedAttempts = maxTentativasFalhas
	repo := &fakeUsuarioRepo{usuario: u}
	svc := NewAuthService(repo)

	// Nem a senha correta destrava uma conta bloqueada.
	_, err := svc.Login(models.Credenciais{Username: "cliente.acme", Password: "senha-correta"})
	if !errors.Is(err, appErrors.ErrAuthentication) {
		t.Errorf("esperava ErrAuthentication, obteve %v", err)
	}
	if repo.sucessos != 0 {
		t.Errorf("login registrado em conta bloqueada")
	}
}

func TestLoginCredenciaisVazias(t *testing.T) {
	svc := NewAuthService(&fakeUsuarioRepo{})

	_, err := svc.Login(models.Credenciais{Username: "", Password: ""})
	var vErr *appErrors.ValidationError
	if !errors.As(err, &vErr) {
		t.Errorf("esperava ValidationError, obteve %v", err)
	}
}
