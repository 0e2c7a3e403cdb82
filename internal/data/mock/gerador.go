package mock

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/core"
	appLogger "github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/core/logger"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/data"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/data/models"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/utils"
)

// Volumes padrão da carga fictícia. Suficientes para exercitar a
// paginação com reticências nas duas densidades.
const (
	totalPedidos      = 120
	totalFaturas      = 90
	parcelasPorFatura = 3
	diasDeHistorico   = 180
	cnpjClienteDemo   = "12345678000136"
	razaoSocialDemo   = "Comercial Riograndense de Alimentos Ltda"
)

var transportadoras = []string{
	"TransSul Logística",
	"Rodonaves",
	"Expresso Gaúcho",
	"Braspress",
}

var locaisRastreio = []string{
	"Porto Alegre / RS",
	"Caxias do Sul / RS",
	"Curitiba / PR",
	"São Paulo / SP",
	"Centro de Distribuição Gravataí / RS",
}

var statusPedidoPesos = []struct {
	status models.StatusPedido
	peso   int
}{
	{models.PedidoEntregue, 50},
	{models.PedidoEmTransito, 20},
	{models.PedidoFaturado, 15},
	{models.PedidoEmSeparacao, 10},
	{models.PedidoCancelado, 5},
}

// SeedDatabase popula o banco em memória com a carga fictícia do
// portal: o usuário de demonstração e os pedidos, faturas e eventos de
// rastreio da empresa dele. Idempotente por execução: roda uma vez na
// partida, dentro de uma transação.
func SeedDatabase(db *gorm.DB, cfg *core.Config) error {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	inicio := time.Now()

	// O documento fictício precisa ter dígitos verificadores corretos
	// para que a formatação e as buscas se comportem como em produção.
	if !utils.IsValidCNPJ(cnpjClienteDemo) {
		return fmt.Errorf("%w: CNPJ fictício '%s' com dígitos verificadores inválidos", core.ErrInternal, cnpjClienteDemo)
	}

	err := data.WithTransaction(db, func(tx *gorm.DB) error {
		usuario, err := gerarUsuarioDemo(cfg)
		if err != nil {
			return err
		}
		if err := tx.Create(usuario).Error; err != nil {
			return fmt.Errorf("falha ao inserir usuário de demonstração: %w", err)
		}

		pedidos := gerarPedidos(rng)
		if err := tx.CreateInBatches(&pedidos, 200).Error; err != nil {
			return fmt.Errorf("falha ao inserir pedidos fictícios: %w", err)
		}

		eventos := gerarEventosRastreio(rng, pedidos)
		if len(eventos) > 0 {
			if err := tx.CreateInBatches(&eventos, 500).Error; err != nil {
				return fmt.Errorf("falha ao inserir eventos de rastreio: %w", err)
			}
		}

		faturas := gerarFaturas(rng)
		if err := tx.CreateInBatches(&faturas, 200).Error; err != nil {
			return fmt.Errorf("falha ao inserir faturas fictícias: %w", err)
		}
		return nil
	})
	if err != nil {
		return core.WrapErrorf(err, "falha ao popular dados fictícios")
	}

	appLogger.Infof("Dados fictícios gerados em %s: %d pedidos, %d parcelas de fatura.",
		time.Since(inicio).Round(time.Millisecond), totalPedidos, totalFaturas*parcelasPorFatura)
	return nil
}

func gerarUsuarioDemo(cfg *core.Config) (*models.DBUsuario, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("falha ao gerar hash da senha de demonstração: %w", err)
	}
	nome := "Ana Beatriz Carvalho"
	agora := time.Now()
	return &models.DBUsuario{
		ID:           uuid.New(),
		Username:     cfg.DemoUsername,
		Email:        cfg.DemoUsername + "@cliente.example.com.br",
		NomeCompleto: &nome,
		PasswordHash: string(hash),
		Active:       true,
		CNPJCPF:      cnpjClienteDemo,
		RazaoSocial:  razaoSocialDemo,
		CreatedAt:    agora,
		UpdatedAt:    agora,
	}, nil
}

// sortearStatus escolhe um status de pedido respeitando os pesos.
func sortearStatus(rng *rand.Rand) models.StatusPedido {
	total := 0
	for _, sp := range statusPedidoPesos {
		total += sp.peso
	}
	n := rng.Intn(total)
	for _, sp := range statusPedidoPesos {
		n -= sp.peso
		if n < 0 {
			return sp.status
		}
	}
	return models.PedidoEntregue
}

// gerarPedidos produz pedidos com datas espalhadas pelo histórico, em
// ordem descendente pela data (a ordem natural das tabelas do portal).
func gerarPedidos(rng *rand.Rand) []models.DBPedido {
	hoje := time.Now()
	pedidos := make([]models.DBPedido, 0, totalPedidos)
	for i := 0; i < totalPedidos; i++ {
		// Pedidos mais recentes primeiro: o deslocamento cresce com i.
		diasAtras := (i * diasDeHistorico) / totalPedidos
		dataPedido := diaUTC(hoje.AddDate(0, 0, -diasAtras))

		status := sortearStatus(rng)
		// Pedidos muito recentes ainda não saíram para entrega.
		if diasAtras < 3 && status == models.PedidoEntregue {
			status = models.PedidoEmTransito
		}

		valor := decimal.NewFromInt(int64(200 + rng.Intn(48000))).
			Add(decimal.New(int64(rng.Intn(100)), -2))

		pedido := models.DBPedido{
			Codigo:          fmt.Sprintf("%d.%03d-%d", 1000+i/100, (i*37)%1000, i%10),
			CNPJCPF:         cnpjClienteDemo,
			Cliente:         razaoSocialDemo,
			DataPedido:      dataPedido,
			Status:          string(status),
			ValorTotal:      valor.StringFixedBank(2),
			QuantidadeItens: 1 + rng.Intn(40),
		}

		if status != models.PedidoEmSeparacao && status != models.PedidoCancelado {
			transp := transportadoras[rng.Intn(len(transportadoras))]
			rastreio := fmt.Sprintf("BR%09dRS", 100000000+rng.Intn(899999999))
			pedido.Transportadora = &transp
			pedido.CodigoRastreio = &rastreio
			previsao := diaUTC(dataPedido.AddDate(0, 0, 5+rng.Intn(10)))
			pedido.PrevisaoEntrega = &previsao
		}

		pedidos = append(pedidos, pedido)
	}
	return pedidos
}

// gerarEventosRastreio monta a linha do tempo de entrega dos pedidos
// que já saíram para transporte.
func gerarEventosRastreio(rng *rand.Rand, pedidos []models.DBPedido) []models.DBEventoRastreio {
	etapas := []string{
		"Pedido faturado",
		"Coletado pela transportadora",
		"Em trânsito para o centro de distribuição",
		"Saiu para entrega",
		"Entregue ao destinatário",
	}

	eventos := make([]models.DBEventoRastreio, 0, len(pedidos)*len(etapas))
	for _, p := range pedidos {
		var concluidas int
		switch models.StatusPedido(p.Status) {
		case models.PedidoFaturado:
			concluidas = 1
		case models.PedidoEmTransito:
			concluidas = 2 + rng.Intn(2)
		case models.PedidoEntregue:
			concluidas = len(etapas)
		default:
			continue
		}

		quando := p.DataPedido.Add(18 * time.Hour)
		for e := 0; e < concluidas; e++ {
			local := locaisRastreio[rng.Intn(len(locaisRastreio))]
			eventos = append(eventos, models.DBEventoRastreio{
				PedidoID:   p.ID,
				DataEvento: quando,
				Descricao:  etapas[e],
				Local:      &local,
			})
			quando = quando.Add(time.Duration(12+rng.Intn(36)) * time.Hour)
		}
	}
	return eventos
}

// gerarFaturas produz faturas parceladas com vencimentos a 28 dias por
// parcela, marcando como vencidas as parcelas em aberto cujo prazo já
// passou.
func gerarFaturas(rng *rand.Rand) []models.DBFaturaParcela {
	hoje := diaUTC(time.Now())
	parcelas := make([]models.DBFaturaParcela, 0, totalFaturas*parcelasPorFatura)
	for i := 0; i < totalFaturas; i++ {
		diasAtras := (i * diasDeHistorico) / totalFaturas
		emissao := diaUTC(hoje.AddDate(0, 0, -diasAtras))
		numeroDoc := fmt.Sprintf("%05d-%d", 78000+i, i%10)

		valorParcela := decimal.NewFromInt(int64(150 + rng.Intn(12000))).
			Add(decimal.New(int64(rng.Intn(100)), -2))

		for p := 1; p <= parcelasPorFatura; p++ {
			vencimento := diaUTC(emissao.AddDate(0, 0, 28*p))

			var status models.StatusFatura
			var pagamento *time.Time
			switch {
			case vencimento.Before(hoje):
				// Parcela antiga: quase sempre paga, às vezes esquecida.
				if rng.Intn(100) < 90 {
					status = models.FaturaPaga
					pg := diaUTC(vencimento.AddDate(0, 0, -rng.Intn(5)))
					pagamento = &pg
				} else {
					status = models.FaturaVencida
				}
			default:
				status = models.FaturaAberta
			}

			parcelas = append(parcelas, models.DBFaturaParcela{
				NumeroDocumento: numeroDoc,
				Parcela:         p,
				TotalParcelas:   parcelasPorFatura,
				CNPJCPF:         cnpjClienteDemo,
				DataEmissao:     emissao,
				DataVencimento:  vencimento,
				DataPagamento:   pagamento,
				Status:          string(status),
				Valor:           valorParcela.StringFixedBank(2),
				LinhaDigitavel:  gerarLinhaDigitavel(rng),
				NossoNumero:     fmt.Sprintf("%011d", rng.Int63n(99999999999)),
			})
		}
	}
	return parcelas
}

// gerarLinhaDigitavel produz uma linha digitável de boleto com a
// pontuação usual (47 dígitos em 5 blocos). Os dígitos são aleatórios:
// o boleto é fictício e nunca sai do portal.
func gerarLinhaDigitavel(rng *rand.Rand) string {
	return fmt.Sprintf("%05d.%05d %05d.%06d %05d.%06d %d %014d",
		10490+rng.Intn(10), rng.Intn(100000),
		rng.Intn(100000), rng.Intn(1000000),
		rng.Intn(100000), rng.Intn(1000000),
		1+rng.Intn(9), rng.Int63n(99999999999999))
}

func diaUTC(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
