package datatable

import (
	"sync"
	"time"
)

// Clock abstrai o disparo de timers para que o agendamento seja
// testável com um relógio falso.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer é o handle de um disparo pendente.
type Timer interface {
	Stop() bool
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Scheduler agenda recomputações com atraso e cancelamento, uma por
// chave. Agendar de novo na mesma chave cancela o disparo pendente —
// é o mecanismo de debounce da digitação de filtros: cada tecla
// reinicia o intervalo e no máximo uma avaliação fica em voo por
// controlador.
type Scheduler struct {
	mu      sync.Mutex
	clock   Clock
	pending map[string]Timer
}

// NewScheduler cria um agendador com o relógio real.
func NewScheduler() *Scheduler {
	return NewSchedulerWithClock(realClock{})
}

// NewSchedulerWithClock cria um agendador com relógio injetado (testes).
func NewSchedulerWithClock(clock Clock) *Scheduler {
	if clock == nil {
		clock = realClock{}
	}
	return &Scheduler{clock: clock, pending: make(map[string]Timer)}
}

// Schedule agenda fn para disparar após delay, cancelando qualquer
// disparo pendente da mesma chave. Com delay <= 0, fn executa
// imediatamente, de forma síncrona — limpar um filtro deve parecer
// instantâneo.
func (s *Scheduler) Schedule(key string, delay time.Duration, fn func()) {
	s.Cancel(key)
	if delay <= 0 {
		fn()
		return
	}
	s.mu.Lock()
	s.pending[key] = s.clock.AfterFunc(delay, func() {
		s.mu.Lock()
		delete(s.pending, key)
		s.mu.Unlock()
		fn()
	})
	s.mu.Unlock()
}

// Cancel descarta o disparo pendente da chave, se houver. Retorna true
// se havia algo para cancelar.
func (s *Scheduler) Cancel(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.pending[key]
	if !ok {
		return false
	}
	delete(s.pending, key)
	t.Stop()
	return true
}

// CancelAll descarta todos os disparos pendentes. Chamado no
// desmonte da view para que nenhuma avaliação rode contra uma tela
// descartada.
func (s *Scheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, t := range s.pending {
		t.Stop()
		delete(s.pending, key)
	}
}
