package stockview

import (
	"context"
	"sync"

	"github.com/gestaoloja/estoque-api/internal/domain/entity"
	"github.com/gestaoloja/estoque-api/internal/domain/ledger"
	"github.com/gestaoloja/estoque-api/internal/domain/repository"
	"github.com/gestaoloja/estoque-api/pkg/logger"
)

// View é o par de visões derivadas de uma filial, reconstruído por inteiro a
// cada notificação de qualquer um dos dois feeds.
type View struct {
	Ledger []ledger.DailySummary
	Stock  []ledger.ProductWithStock
}

// Service mantém a visão ao vivo por filial. O observador de uma filial é
// criado sob demanda na primeira leitura (carga inicial síncrona) e depois
// consome os dois feeds em uma goroutine própria.
//
// Os feeds são independentes: um pode atualizar antes do outro. A visão fica
// momentaneamente defasada (produto novo com estoque zero, por exemplo) e se
// corrige no próximo push — comportamento esperado, nunca erro.
type Service struct {
	feed      Feed
	movements repository.StockMovementRepository
	products  repository.ProductRepository
	log       *logger.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.RWMutex
	views    map[string]View
	watching map[string]bool
}

// NewService constrói o serviço. Close derruba todos os observadores.
func NewService(
	feed Feed,
	movements repository.StockMovementRepository,
	products repository.ProductRepository,
	log *logger.Logger,
) *Service {
	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		feed:      feed,
		movements: movements,
		products:  products,
		log:       log,
		ctx:       ctx,
		cancel:    cancel,
		views:     map[string]View{},
		watching:  map[string]bool{},
	}
}

// View devolve a visão atual da filial, iniciando o observador na primeira
// chamada (com reconstrução síncrona a partir do snapshot completo).
func (s *Service) View(ctx context.Context, branchID string) (View, error) {
	s.mu.RLock()
	if s.watching[branchID] {
		v := s.views[branchID]
		s.mu.RUnlock()
		return v, nil
	}
	s.mu.RUnlock()
	return s.startWatch(ctx, branchID)
}

// startWatch faz a carga inicial e dispara a goroutine que acompanha os feeds.
func (s *Service) startWatch(ctx context.Context, branchID string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.watching[branchID] { // outra goroutine chegou primeiro
		return s.views[branchID], nil
	}

	movs, err := s.movements.ListByBranch(ctx, branchID)
	if err != nil {
		return View{}, err
	}
	prods, err := s.products.ListActiveByBranch(ctx, branchID)
	if err != nil {
		return View{}, err
	}
	view := rebuild(prods, movs)
	s.views[branchID] = view
	s.watching[branchID] = true

	movCh, unsubMov := s.feed.SubscribeMovements(branchID)
	prodCh, unsubProd := s.feed.SubscribeProducts(branchID)
	s.wg.Add(1)
	go s.watch(branchID, movs, prods, movCh, prodCh, unsubMov, unsubProd)

	return view, nil
}

// watch consome os dois feeds até o serviço fechar, guardando o último
// snapshot conhecido de cada um e reconstruindo a visão a cada recebimento.
func (s *Service) watch(
	branchID string,
	movs []entity.StockMovement,
	prods []entity.Product,
	movCh <-chan []entity.StockMovement,
	prodCh <-chan []entity.Product,
	unsubMov, unsubProd func(),
) {
	defer s.wg.Done()
	defer unsubMov()
	defer unsubProd()

	for {
		select {
		case <-s.ctx.Done():
			return
		case m := <-movCh:
			movs = m
		case p := <-prodCh:
			prods = p
		}
		view := rebuild(prods, movs)
		s.mu.Lock()
		s.views[branchID] = view
		s.mu.Unlock()
		s.log.Debug().Str("branch_id", branchID).
			Int("movements", len(movs)).Int("products", len(prods)).
			Msg("visão de estoque reconstruída")
	}
}

// Close cancela todos os observadores e espera o desligamento.
func (s *Service) Close() {
	s.cancel()
	s.wg.Wait()
}

// rebuild recalcula o par de visões do zero, descartando o estado derivado
// anterior por completo.
func rebuild(prods []entity.Product, movs []entity.StockMovement) View {
	return View{
		Ledger: ledger.Build(movs),
		Stock:  ledger.CurrentStock(prods, movs),
	}
}
