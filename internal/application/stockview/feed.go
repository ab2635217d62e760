// Package stockview implementa o modelo de assinatura ao vivo do estoque:
// feeds push por filial que entregam o conjunto completo atual (nunca deltas)
// e um serviço que reconstrói as visões derivadas a cada notificação.
package stockview

import (
	"context"
	"sync"

	"github.com/gestaoloja/estoque-api/internal/domain/entity"
	"github.com/gestaoloja/estoque-api/internal/domain/repository"
	"github.com/gestaoloja/estoque-api/pkg/logger"
)

// Feed expõe as assinaturas por filial. Cada Subscribe devolve o canal de
// snapshots completos e a função de cancelamento da assinatura.
type Feed interface {
	SubscribeMovements(branchID string) (<-chan []entity.StockMovement, func())
	SubscribeProducts(branchID string) (<-chan []entity.Product, func())
}

// Hub é o broadcaster por filial. Os casos de uso de escrita chamam
// PublishMovements/PublishProducts após persistir; o hub recarrega o conjunto
// completo e o entrega a cada assinante. Canais têm buffer 1 com semântica
// "último snapshot vence": assinante lento nunca bloqueia o publisher.
type Hub struct {
	movements repository.StockMovementRepository
	products  repository.ProductRepository
	log       *logger.Logger

	mu       sync.Mutex
	nextID   int
	movSubs  map[string]map[int]chan []entity.StockMovement
	prodSubs map[string]map[int]chan []entity.Product
}

// NewHub constrói o hub sobre os repositórios da filial.
func NewHub(
	movements repository.StockMovementRepository,
	products repository.ProductRepository,
	log *logger.Logger,
) *Hub {
	return &Hub{
		movements: movements,
		products:  products,
		log:       log,
		movSubs:   map[string]map[int]chan []entity.StockMovement{},
		prodSubs:  map[string]map[int]chan []entity.Product{},
	}
}

// PublishMovements recarrega as movimentações da filial e notifica os
// assinantes. Falha de leitura é registrada e engolida: o próximo push
// reentrega o estado correto (o feed se autocorrige).
func (h *Hub) PublishMovements(ctx context.Context, branchID string) {
	set, err := h.movements.ListByBranch(ctx, branchID)
	if err != nil {
		h.log.Warn().Err(err).Str("branch_id", branchID).Msg("feed de movimentações: recarga falhou")
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.movSubs[branchID] {
		select {
		case ch <- set:
		default:
			// descarta o snapshot pendente e entrega o mais novo
			select {
			case <-ch:
			default:
			}
			ch <- set
		}
	}
}

// PublishProducts recarrega os produtos ativos da filial e notifica os assinantes.
func (h *Hub) PublishProducts(ctx context.Context, branchID string) {
	set, err := h.products.ListActiveByBranch(ctx, branchID)
	if err != nil {
		h.log.Warn().Err(err).Str("branch_id", branchID).Msg("feed de produtos: recarga falhou")
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.prodSubs[branchID] {
		select {
		case ch <- set:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- set
		}
	}
}

// SubscribeMovements assina os snapshots de movimentações da filial.
func (h *Hub) SubscribeMovements(branchID string) (<-chan []entity.StockMovement, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	id := h.nextID
	ch := make(chan []entity.StockMovement, 1)
	if h.movSubs[branchID] == nil {
		h.movSubs[branchID] = map[int]chan []entity.StockMovement{}
	}
	h.movSubs[branchID][id] = ch
	return ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.movSubs[branchID], id)
	}
}

// SubscribeProducts assina os snapshots de produtos ativos da filial.
func (h *Hub) SubscribeProducts(branchID string) (<-chan []entity.Product, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	id := h.nextID
	ch := make(chan []entity.Product, 1)
	if h.prodSubs[branchID] == nil {
		h.prodSubs[branchID] = map[int]chan []entity.Product{}
	}
	h.prodSubs[branchID][id] = ch
	return ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.prodSubs[branchID], id)
	}
}
