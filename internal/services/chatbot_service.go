package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/core"
	appLogger "github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/core/logger"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/data/models"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/datatable"
)

// MensagemChat é uma mensagem da conversa com o assistente virtual.
type MensagemChat struct {
	DoUsuario bool
	Texto     string
	Horario   time.Time
}

// ChatbotService define a interface do assistente virtual do portal.
// As respostas são roteadas por palavras-chave sobre os dados reais do
// cliente; não há nenhum modelo de linguagem envolvido.
type ChatbotService interface {
	// Responder produz a resposta do assistente para a mensagem do
	// usuário. Bloqueia pela latência simulada: chamar fora da thread
	// da UI.
	Responder(cnpjCPF, mensagem string) (string, error)
}

// chatbotServiceImpl é a implementação de ChatbotService.
type chatbotServiceImpl struct {
	pedidos PedidoService
	faturas FaturaService
	rede    simuladorRede
}

// NewChatbotService cria uma nova instância de ChatbotService.
func NewChatbotService(pedidos PedidoService, faturas FaturaService, cfg *core.Config) ChatbotService {
	if pedidos == nil || faturas == nil || cfg == nil {
		appLogger.Fatalf("Dependências nulas fornecidas para NewChatbotService")
	}
	return &chatbotServiceImpl{
		pedidos: pedidos,
		faturas: faturas,
		rede:    novoSimuladorRede(cfg),
	}
}

const respostaPadrao = "Desculpe, não entendi. Posso ajudar com: situação dos seus pedidos, " +
	"boletos em aberto ou segunda via de boleto. Experimente perguntar \"onde está meu pedido?\"."

func (s *chatbotServiceImpl) Responder(cnpjCPF, mensagem string) (string, error) {
	if err := s.rede.chamada(); err != nil {
		return "", core.WrapErrorf(err, "assistente indisponível no momento")
	}

	pergunta := datatable.Fold(mensagem)
	switch {
	case contemAlguma(pergunta, "pedido", "entrega", "rastre"):
		return s.responderPedidos(cnpjCPF)
	case contemAlguma(pergunta, "boleto", "fatura", "pagar", "vencimento", "segunda via"):
		return s.responderBoletos(cnpjCPF)
	case contemAlguma(pergunta, "ola", "oi", "bom dia", "boa tarde", "boa noite"):
		return "Olá! Sou o assistente virtual do portal. Posso verificar seus pedidos e boletos.", nil
	case contemAlguma(pergunta, "obrigad", "valeu"):
		return "De nada! Se precisar de mais alguma coisa, estou por aqui.", nil
	}
	return respostaPadrao, nil
}

func (s *chatbotServiceImpl) responderPedidos(cnpjCPF string) (string, error) {
	fim := time.Now()
	inicio := fim.AddDate(0, -1, 0)
	pedidos, err := s.pedidos.GetPedidosPorPeriodo(cnpjCPF, inicio, fim)
	if err != nil {
		return "", err
	}

	emAndamento := 0
	var maisRecente *models.PedidoPublic
	for _, p := range pedidos {
		switch p.Status {
		case models.PedidoEmSeparacao, models.PedidoFaturado, models.PedidoEmTransito:
			emAndamento++
			if maisRecente == nil {
				maisRecente = p
			}
		}
	}
	if emAndamento == 0 {
		return "Você não tem pedidos em andamento no último mês. Todos os pedidos recentes já foram entregues.", nil
	}
	resposta := fmt.Sprintf("Você tem %d pedido(s) em andamento.", emAndamento)
	if maisRecente != nil {
		resposta += fmt.Sprintf(" O mais recente é o %s, com status \"%s\".", maisRecente.Codigo, maisRecente.Status)
		if maisRecente.PrevisaoEntrega != nil {
			resposta += fmt.Sprintf(" Previsão de entrega: %s.", maisRecente.PrevisaoEntrega.Format("02/01/2006"))
		}
	}
	return resposta, nil
}

func (s *chatbotServiceImpl) responderBoletos(cnpjCPF string) (string, error) {
	abertas, err := s.faturas.GetFaturasAbertas(cnpjCPF)
	if err != nil {
		return "", err
	}
	if len(abertas) == 0 {
		return "Ótima notícia: você não tem boletos em aberto.", nil
	}
	proxima := abertas[0]
	return fmt.Sprintf("Você tem %d boleto(s) em aberto. O próximo vencimento é o documento %s (parcela %d/%d) em %s. "+
		"A segunda via está disponível na tela de Faturas.",
		len(abertas), proxima.NumeroDocumento, proxima.Parcela, proxima.TotalParcelas,
		proxima.DataVencimento.Format("02/01/2006")), nil
}

// contemAlguma testa a pergunta normalizada contra radicais de
// palavras-chave.
func contemAlguma(pergunta string, radicais ...string) bool {
	for _, r := range radicais {
		if strings.Contains(pergunta, r) {
			return true
		}
	}
	return false
}
