package services

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	appErrors "github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/core"
	appLogger "github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/core/logger"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/data/models"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/repositories"
)

// maxTentativasFalhas bloqueia a conta após este número de senhas
// erradas consecutivas. Um login correto zera o contador.
const maxTentativasFalhas = 5

// AuthService define a interface do serviço de autenticação do portal.
type AuthService interface {
	// Login valida as credenciais e retorna o usuário autenticado.
	// Retorna ErrInvalidCredentials para usuário inexistente ou senha
	// errada (sem distinguir os casos na mensagem) e ErrAuthentication
	// para conta inativa ou bloqueada.
	Login(cred models.Credenciais) (*models.UsuarioPublic, error)
}

// authServiceImpl é a implementação de AuthService.
type authServiceImpl struct {
	repo repositories.UsuarioRepository
}

// NewAuthService cria uma nova instância de AuthService.
func NewAuthService(repo repositories.UsuarioRepository) AuthService {
	if repo == nil {
		appLogger.Fatalf("Dependências nulas fornecidas para NewAuthService")
	}
	return &authServiceImpl{repo: repo}
}

func (s *authServiceImpl) Login(cred models.Credenciais) (*models.UsuarioPublic, error) {
	if err := cred.CleanAndValidate(); err != nil {
		return nil, err
	}

	usuario, err := s.repo.GetByUsername(cred.Username)
	if err != nil {
		if errors.Is(err, appErrors.ErrNotFound) {
			appLogger.Warnf("Tentativa de login com usuário inexistente: '%s'", cred.Username)
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !usuario.Active {
		appLogger.Warnf("Tentativa de login com conta inativa: '%s'", cred.Username)
		return nil, fmt.Errorf("%w: conta desativada", appErrors.ErrAuthentication)
	}
	if usuario.FailedAttempts >= maxTentativasFalhas {
		appLogger.Warnf("Tentativa de login com conta bloqueada: '%s' (%d falhas)", cred.Username, usuario.FailedAttempts)
		return nil, fmt.Errorf("%w: conta bloqueada por excesso de tentativas", appErrors.ErrAuthentication)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(cred.Password)); err != nil {
		if regErr := s.repo.RegisterLoginFailure(usuario.ID); regErr != nil {
			appLogger.Errorf("Falha ao registrar tentativa inválida de '%s': %v", cred.Username, regErr)
		}
		appLogger.Warnf("Senha incorreta para o usuário '%s'", cred.Username)
		return nil, appErrors.ErrInvalidCredentials
	}

	if err := s.repo.RegisterLoginSuccess(usuario.ID); err != nil {
		// O login vale mesmo se o registro do horário falhar.
		appLogger.Errorf("Falha ao registrar login de '%s': %v", cred.Username, err)
	}

	appLogger.Infof("Usuário '%s' autenticado (documento %s).", usuario.Username, usuario.CNPJCPF)
	return models.ToUsuarioPublic(usuario), nil
}
