package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatusPedido enumera os estados de um pedido no portal.
type StatusPedido string

const (
	PedidoEmSeparacao StatusPedido = "Em Separação"
	PedidoFaturado    StatusPedido = "Faturado"
	PedidoEmTransito  StatusPedido = "Em Trânsito"
	PedidoEntregue    StatusPedido = "Entregue"
	PedidoCancelado   StatusPedido = "Cancelado"
)

// DBPedido representa um registro na tabela 'pedidos'.
type DBPedido struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"`

	// Codigo é o número do pedido como exibido ao cliente (ex:
	// "1000.234-5"). A busca ignora a pontuação.
	Codigo  string `gorm:"type:varchar(20);not null;uniqueIndex"`
	CNPJCPF string `gorm:"type:varchar(14);not null;index"` // Apenas dígitos
	Cliente string `gorm:"type:varchar(255);not null"`      // Razão social do destinatário

	DataPedido      time.Time  `gorm:"type:date;not null;index"`
	PrevisaoEntrega *time.Time `gorm:"type:date"`
	Status          string     `gorm:"type:varchar(30);not null"`

	// Valores monetários armazenados como string para precisão.
	// A conversão para decimal.Decimal ocorre na projeção pública.
	ValorTotal string `gorm:"type:varchar(30);not null"` // ex: "1234.56"

	QuantidadeItens int     `gorm:"not null"`
	Transportadora  *string `gorm:"type:varchar(100)"`
	CodigoRastreio  *string `gorm:"type:varchar(50);index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName especifica o nome da tabela para GORM.
func (DBPedido) TableName() string {
	return "pedidos"
}

// PedidoPublic é a projeção de um pedido para exibição na UI, com o
// valor já convertido para decimal e o CNPJ formatado.
type PedidoPublic struct {
	ID              uint64
	Codigo          string
	CNPJCPF         string // Apenas dígitos; formatação é da camada de UI
	Cliente         string
	DataPedido      time.Time
	PrevisaoEntrega *time.Time
	Status          StatusPedido
	ValorTotal      decimal.Decimal
	QuantidadeItens int
	Transportadora  *string
	CodigoRastreio  *string
}

// ToPedidoPublic converte um DBPedido para PedidoPublic. Um valor
// monetário ilegível no banco vira zero, nunca erro de tela.
func ToPedidoPublic(p *DBPedido) *PedidoPublic {
	if p == nil {
		return nil
	}
	valor, err := decimal.NewFromString(p.ValorTotal)
	if err != nil {
		valor = decimal.Zero
	}
	return &PedidoPublic{
		ID:              p.ID,
		Codigo:          p.Codigo,
		CNPJCPF:         p.CNPJCPF,
		Cliente:         p.Cliente,
		DataPedido:      p.DataPedido,
		PrevisaoEntrega: p.PrevisaoEntrega,
		Status:          StatusPedido(p.Status),
		ValorTotal:      valor,
		QuantidadeItens: p.QuantidadeItens,
		Transportadora:  p.Transportadora,
		CodigoRastreio:  p.CodigoRastreio,
	}
}

// ToPedidoPublicList converte uma lista de DBPedido.
func ToPedidoPublicList(pedidos []*DBPedido) []*PedidoPublic {
	out := make([]*PedidoPublic, len(pedidos))
	for i, p := range pedidos {
		out[i] = ToPedidoPublic(p)
	}
	return out
}

// Chaves do catálogo de filtros da tela de pedidos.
const (
	PedidoCampoCodigo = "codigo"
	PedidoCampoCNPJ   = "cnpj"
	PedidoCampoStatus = "status"
	PedidoCampoData   = "data_pedido"
)

// FilterValue implementa datatable.Filterable.
func (p *PedidoPublic) FilterValue(fieldKey string) (string, bool) {
	switch fieldKey {
	case PedidoCampoCodigo:
		return p.Codigo, true
	case PedidoCampoCNPJ:
		return p.CNPJCPF, true
	case PedidoCampoStatus:
		return string(p.Status), true
	}
	return "", false
}

// FilterDate implementa datatable.Filterable.
func (p *PedidoPublic) FilterDate(fieldKey string) (time.Time, bool) {
	if fieldKey == PedidoCampoData {
		return p.DataPedido, true
	}
	return time.Time{}, false
}
