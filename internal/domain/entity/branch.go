package entity

import "time"

// Branch representa uma filial (unidade de negócio do tenant).
// É a fronteira de escopo de praticamente todas as consultas do sistema.
type Branch struct {
	ID        string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
