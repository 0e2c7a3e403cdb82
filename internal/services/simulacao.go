package services

import (
	"errors"
	"math/rand"
	"time"

	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/core"
)

// simuladorRede reproduz o comportamento de uma chamada de rede para
// os serviços de consulta: um atraso fixo e uma fração configurável de
// falhas. O portal é uma demonstração sem backend; a simulação existe
// para que as telas exerçam os estados de carga e de erro de verdade.
type simuladorRede struct {
	latencia  time.Duration
	taxaFalha float64
}

func novoSimuladorRede(cfg *core.Config) simuladorRede {
	return simuladorRede{
		latencia:  cfg.SimulatedLatency,
		taxaFalha: cfg.SimulatedFailureRate,
	}
}

var errRedeSimulada = errors.New("falha de rede simulada")

// chamada bloqueia pela latência configurada e sorteia uma falha.
// Deve rodar fora da thread de eventos da UI.
func (s simuladorRede) chamada() error {
	if s.latencia > 0 {
		time.Sleep(s.latencia)
	}
	if s.taxaFalha > 0 && rand.Float64() < s.taxaFalha {
		return errRedeSimulada
	}
	return nil
}
