package datatable

import (
	"testing"
	"time"
)

// relogioFalso implementa Clock com avanço manual do tempo, para testar
// o debounce sem dormir de verdade.
type relogioFalso struct {
	agora  time.Time
	timers []*timerFalso
}

type timerFalso struct {
	quando  time.Time
	fn      func()
	parado  bool
	soltado bool
}

func novoRelogioFalso() *relogioFalso {
	return &relogioFalso{agora: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (r *relogioFalso) AfterFunc(d time.Duration, f func()) Timer {
	t := &timerFalso{quando: r.agora.Add(d), fn: f}
	r.timers = append(r.timers, t)
	return t
}

func (t *timerFalso) Stop() bool {
	if t.soltado || t.parado {
		return false
	}
	t.parado = true
	return true
}

// Avanca move o relógio e dispara, em ordem, os timers vencidos e não
// cancelados.
func (r *relogioFalso) Avanca(d time.Duration) {
	r.agora = r.agora.Add(d)
	for _, t := range r.timers {
		if t.parado || t.soltado {
			continue
		}
		if !t.quando.After(r.agora) {
			t.soltado = true
			t.fn()
		}
	}
}

func TestSchedulerFiresAfterDelay(t *testing.T) {
	clock := novoRelogioFalso()
	s := NewSchedulerWithClock(clock)

	disparos := 0
	s.Schedule("filtro", 300*time.Millisecond, func() { disparos++ })

	clock.Avanca(200 * time.Millisecond)
	if disparos != 0 {
		t.Fatal("disparou antes do intervalo vencer")
	}
	clock.Avanca(150 * time.Millisecond)
	if disparos != 1 {
		t.Fatalf("disparos = %d, esperava 1", disparos)
	}
}

func TestSchedulerDebouncesSameKey(t *testing.T) {
	clock := novoRelogioFalso()
	s := NewSchedulerWithClock(clock)

	var valores []string
	// Quatro teclas em sequência rápida: só a última deve avaliar.
	for _, texto := range []string{"j", "jo", "jos", "jose"} {
		captura := texto
		s.Schedule("filtro", 300*time.Millisecond, func() { valores = append(valores, captura) })
		clock.Avanca(100 * time.Millisecond)
	}
	if len(valores) != 0 {
		t.Fatalf("nenhum disparo deveria ter ocorrido durante a digitação, obteve %v", valores)
	}

	clock.Avanca(300 * time.Millisecond)
	if len(valores) != 1 || valores[0] != "jose" {
		t.Fatalf("esperava um único disparo com 'jose', obteve %v", valores)
	}
}

func TestSchedulerZeroDelayRunsSynchronously(t *testing.T) {
	s := NewSchedulerWithClock(novoRelogioFalso())
	executou := false
	s.Schedule("filtro", 0, func() { executou = true })
	if !executou {
		t.Error("delay zero deveria executar de forma síncrona")
	}
}

func TestSchedulerIndependentKeys(t *testing.T) {
	clock := novoRelogioFalso()
	s := NewSchedulerWithClock(clock)

	a, b := 0, 0
	s.Schedule("a", 100*time.Millisecond, func() { a++ })
	s.Schedule("b", 100*time.Millisecond, func() { b++ })
	clock.Avanca(100 * time.Millisecond)
	if a != 1 || b != 1 {
		t.Errorf("chaves independentes não deveriam se cancelar: a=%d b=%d", a, b)
	}
}

func TestSchedulerCancel(t *testing.T) {
	clock := novoRelogioFalso()
	s := NewSchedulerWithClock(clock)

	disparos := 0
	s.Schedule("filtro", 100*time.Millisecond, func() { disparos++ })
	if !s.Cancel("filtro") {
		t.Error("Cancel deveria reportar que havia disparo pendente")
	}
	if s.Cancel("filtro") {
		t.Error("segundo Cancel não deveria encontrar nada")
	}
	clock.Avanca(time.Second)
	if disparos != 0 {
		t.Error("disparo cancelado não deveria executar")
	}
}

func TestSchedulerCancelAll(t *testing.T) {
	clock := novoRelogioFalso()
	s := NewSchedulerWithClock(clock)

	disparos := 0
	s.Schedule("a", 100*time.Millisecond, func() { disparos++ })
	s.Schedule("b", 100*time.Millisecond, func() { disparos++ })
	s.CancelAll()
	clock.Avanca(time.Second)
	if disparos != 0 {
		t.Errorf("CancelAll deveria descartar todos os pendentes, disparos=%d", disparos)
	}
}
