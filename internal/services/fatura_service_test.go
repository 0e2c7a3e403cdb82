package services

import (
	"testing"
	"time"

	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/core"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/data/models"
)

// fakeFaturaRepo é um FaturaRepository em memória para os testes.
type fakeFaturaRepo struct {
	parcelas []*models.DBFaturaParcela
}

func (f *fakeFaturaRepo) GetByCNPJAndPeriod(cnpjCPF string, start, end time.Time) ([]*models.DBFaturaParcela, error) {
	var out []*models.DBFaturaParcela
	for _, p := range f.parcelas {
		if p.CNPJCPF != cnpjCPF {
			continue
		}
		if p.DataVencimento.Before(start) || p.DataVencimento.After(end) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeFaturaRepo) GetAbertas(cnpjCPF string) ([]*models.DBFaturaParcela, error) {
	var out []*models.DBFaturaParcela
	for _, p := range f.parcelas {
		if p.CNPJCPF == cnpjCPF && p.Status != string(models.FaturaPaga) && p.Status != string(models.FaturaCancelada) {
			out = append(out, p)
		}
	}
	return out, nil
}

func cfgTeste() *core.Config {
	// Sem latência nem falhas sorteadas: os testes são determinísticos.
	return &core.Config{}
}

func parcelaTeste(cnpj, doc string, venc time.Time, status models.StatusFatura) *models.DBFaturaParcela {
	return &models.DBFaturaParcela{
		NumeroDocumento: doc,
		Parcela:         1,
		TotalParcelas:   1,
		CNPJCPF:         cnpj,
		DataEmissao:     venc.AddDate(0, -1, 0),
		DataVencimento:  venc,
		Status:          string(status),
		Valor:           "100.00",
	}
}

func TestGetFaturasPorPeriodo(t *testing.T) {
	base := time.Date(2025, time.May, 15, 0, 0, 0, 0, time.UTC)
	repo := &fakeFaturaRepo{parcelas: []*models.DBFaturaParcela{
		parcelaTeste("11222333000181", "FAT-001", base, models.FaturaAberta),
		parcelaTeste("11222333000181", "FAT-002", base.AddDate(0, -6, 0), models.FaturaPaga),
		parcelaTeste("99888777000166", "FAT-003", base, models.FaturaAberta),
	}}
	svc := NewFaturaService(repo, cfgTeste())

	faturas, err := svc.GetFaturasPorPeriodo("11222333000181", base.AddDate(0, -1, 0), base.AddDate(0, 1, 0))
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if len(faturas) != 1 {
		t.Fatalf("len = %d, esperava 1", len(faturas))
	}
	if faturas[0].NumeroDocumento != "FAT-001" {
		t.Errorf("documento = %q", faturas[0].NumeroDocumento)
	}
	// O serviço devolve a projeção pública, não o registro do banco.
	if faturas[0].Status != models.FaturaAberta {
		t.Errorf("status = %q", faturas[0].Status)
	}
}

func TestGetFaturasAbertas(t *testing.T) {
	base := time.Date(2025, time.May, 15, 0, 0, 0, 0, time.UTC)
	repo := &fakeFaturaRepo{parcelas: []*models.DBFaturaParcela{
		parcelaTeste("11222333000181", "FAT-001", base, models.FaturaAberta),
		parcelaTeste("11222333000181", "FAT-002", base, models.FaturaPaga),
		parcelaTeste("11222333000181", "FAT-003", base.AddDate(0, -2, 0), models.FaturaVencida),
	}}
	svc := NewFaturaService(repo, cfgTeste())

	abertas, err := svc.GetFaturasAbertas("11222333000181")
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if len(abertas) != 2 {
		t.Fatalf("len = %d, esperava 2", len(abertas))
	}
}
