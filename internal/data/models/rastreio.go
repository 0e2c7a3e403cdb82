package models

import "time"

// DBEventoRastreio representa um evento da linha do tempo de entrega
// de um pedido, na tabela 'eventos_rastreio'.
type DBEventoRastreio struct {
	ID       uint64 `gorm:"primaryKey;autoIncrement"`
	PedidoID uint64 `gorm:"not null;index"`

	DataEvento time.Time `gorm:"not null"`
	Descricao  string    `gorm:"type:varchar(255);not null"`
	Local      *string   `gorm:"type:varchar(100)"`

	CreatedAt time.Time
}

// TableName especifica o nome da tabela para GORM.
func (DBEventoRastreio) TableName() string {
	return "eventos_rastreio"
}

// EventoRastreioPublic é a projeção de um evento para a linha do tempo
// da tela de rastreio.
type EventoRastreioPublic struct {
	DataEvento time.Time
	Descricao  string
	Local      *string
}

// ToEventoRastreioPublicList converte os eventos de um pedido,
// preservando a ordem recebida (mais recente primeiro, como consultado
// pelo repositório).
func ToEventoRastreioPublicList(eventos []*DBEventoRastreio) []*EventoRastreioPublic {
	out := make([]*EventoRastreioPublic, len(eventos))
	for i, e := range eventos {
		out[i] = &EventoRastreioPublic{
			DataEvento: e.DataEvento,
			Descricao:  e.Descricao,
			Local:      e.Local,
		}
	}
	return out
}
