package stockview_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestaoloja/estoque-api/internal/application/stockview"
	"github.com/gestaoloja/estoque-api/internal/domain/entity"
	"github.com/gestaoloja/estoque-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

// memStore guarda o estado e serve tanto de repositório quanto de feed manual:
// os testes empurram snapshots completos direto nos canais.
type memStore struct {
	mu        sync.Mutex
	movements []entity.StockMovement
	products  []entity.Product

	movCh  chan []entity.StockMovement
	prodCh chan []entity.Product
}

func newMemStore() *memStore {
	return &memStore{
		movCh:  make(chan []entity.StockMovement, 1),
		prodCh: make(chan []entity.Product, 1),
	}
}

func (s *memStore) Create(_ context.Context, m *entity.StockMovement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.movements = append(s.movements, *m)
	return nil
}

func (s *memStore) GetByID(_ context.Context, id string) (*entity.StockMovement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.movements {
		if s.movements[i].ID == id {
			m := s.movements[i]
			return &m, nil
		}
	}
	return nil, nil
}

func (s *memStore) ListByBranch(_ context.Context, branchID string) ([]entity.StockMovement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.StockMovement
	for _, m := range s.movements {
		if m.BranchID == branchID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *memStore) ListActiveByBranch(_ context.Context, branchID string) ([]entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.Product
	for _, p := range s.products {
		if p.BranchID == branchID && p.Active() {
			out = append(out, p)
		}
	}
	return out, nil
}

// produtoRepo adapta memStore à interface de produtos.
type produtoRepo struct{ *memStore }

func (r produtoRepo) Create(ctx context.Context, p *entity.Product) error { return nil }
func (r produtoRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return nil, nil
}
func (r produtoRepo) GetBySKU(ctx context.Context, branchID, sku string) (*entity.Product, error) {
	return nil, nil
}
func (r produtoRepo) Update(ctx context.Context, p *entity.Product) error { return nil }
func (r produtoRepo) SoftDelete(ctx context.Context, id string) error     { return nil }

// manualFeed entrega os canais do memStore a qualquer assinante.
type manualFeed struct{ store *memStore }

func (f manualFeed) SubscribeMovements(branchID string) (<-chan []entity.StockMovement, func()) {
	return f.store.movCh, func() {}
}

func (f manualFeed) SubscribeProducts(branchID string) (<-chan []entity.Product, func()) {
	return f.store.prodCh, func() {}
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func movimento(id string, qty int64, day int) entity.StockMovement {
	return entity.StockMovement{
		ID:        id,
		BranchID:  "filial-1",
		ProductID: "prod-1",
		Type:      entity.MovementTypeEntry,
		Quantity:  decimal.NewFromInt(qty),
		Date:      time.Date(2026, 3, 1+day, 10, 0, 0, 0, time.Local),
	}
}

// esperaVisao espera a visão refletir a condição (os pushes são assíncronos).
func esperaVisao(t *testing.T, svc *stockview.Service, branchID string, cond func(stockview.View) bool) stockview.View {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		view, err := svc.View(context.Background(), branchID)
		require.NoError(t, err)
		if cond(view) {
			return view
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("a visão não convergiu dentro do prazo")
	return stockview.View{}
}

// ──────────────────────────────────────────────────────────────────────────────
// Service
// ──────────────────────────────────────────────────────────────────────────────

// A primeira leitura faz a carga inicial síncrona a partir do snapshot completo.
func TestService_CargaInicial(t *testing.T) {
	store := newMemStore()
	store.products = []entity.Product{{ID: "prod-1", BranchID: "filial-1", Name: "Café"}}
	store.movements = []entity.StockMovement{movimento("m1", 10, 0), movimento("m2", -3, 0)}

	svc := stockview.NewService(manualFeed{store}, store, produtoRepo{store}, testLogger())
	defer svc.Close()

	view, err := svc.View(context.Background(), "filial-1")
	require.NoError(t, err)

	require.Len(t, view.Stock, 1)
	assert.True(t, view.Stock[0].Stock.Equal(decimal.NewFromInt(7)))
	require.Len(t, view.Ledger, 1)
	assert.True(t, view.Ledger[0].FinalStock.Equal(decimal.NewFromInt(7)))
}

// Um push de movimentações reconstrói a visão por inteiro.
func TestService_PushReconstroiVisao(t *testing.T) {
	store := newMemStore()
	store.products = []entity.Product{{ID: "prod-1", BranchID: "filial-1", Name: "Café"}}

	svc := stockview.NewService(manualFeed{store}, store, produtoRepo{store}, testLogger())
	defer svc.Close()

	view, err := svc.View(context.Background(), "filial-1")
	require.NoError(t, err)
	assert.Empty(t, view.Ledger)

	store.movCh <- []entity.StockMovement{movimento("m1", 10, 0)}

	view = esperaVisao(t, svc, "filial-1", func(v stockview.View) bool {
		return len(v.Ledger) == 1
	})
	assert.True(t, view.Stock[0].Stock.Equal(decimal.NewFromInt(10)))
}

// Os dois feeds são independentes: um produto pode chegar antes das suas
// movimentações. A visão fica momentaneamente defasada (estoque zero) e se
// corrige quando o outro feed alcança — nunca erro.
func TestService_DefasagemEntreFeedsSeCorrige(t *testing.T) {
	store := newMemStore()

	svc := stockview.NewService(manualFeed{store}, store, produtoRepo{store}, testLogger())
	defer svc.Close()

	_, err := svc.View(context.Background(), "filial-1")
	require.NoError(t, err)

	// Só o feed de produtos atualiza: produto novo aparece com estoque zero.
	store.prodCh <- []entity.Product{{ID: "prod-1", BranchID: "filial-1", Name: "Café"}}
	view := esperaVisao(t, svc, "filial-1", func(v stockview.View) bool {
		return len(v.Stock) == 1
	})
	assert.True(t, view.Stock[0].Stock.Equal(decimal.Zero), "visão defasada relata estoque zero, não erro")

	// O feed de movimentações alcança: a visão se corrige.
	store.movCh <- []entity.StockMovement{movimento("m1", 10, 0)}
	view = esperaVisao(t, svc, "filial-1", func(v stockview.View) bool {
		return len(v.Stock) == 1 && v.Stock[0].Stock.Equal(decimal.NewFromInt(10))
	})
	require.Len(t, view.Ledger, 1)
}

// Close derruba os observadores e não trava.
func TestService_Close(t *testing.T) {
	store := newMemStore()
	svc := stockview.NewService(manualFeed{store}, store, produtoRepo{store}, testLogger())

	_, err := svc.View(context.Background(), "filial-1")
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		svc.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Close não retornou")
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Hub
// ──────────────────────────────────────────────────────────────────────────────

// O hub entrega o conjunto completo recarregado a cada Publish, e o buffer 1
// com "último vence" garante que assinante lento recebe o estado mais novo.
func TestHub_PublishEntregaConjuntoCompleto(t *testing.T) {
	store := newMemStore()
	hub := stockview.NewHub(store, produtoRepo{store}, testLogger())

	ch, unsub := hub.SubscribeMovements("filial-1")
	defer unsub()

	m1 := movimento("m1", 10, 0)
	require.NoError(t, store.Create(context.Background(), &m1))
	hub.PublishMovements(context.Background(), "filial-1")

	m2 := movimento("m2", 5, 1)
	require.NoError(t, store.Create(context.Background(), &m2))
	hub.PublishMovements(context.Background(), "filial-1")

	// Assinante lento: só o snapshot mais novo sobrevive no buffer.
	select {
	case set := <-ch:
		assert.Len(t, set, 2, "o snapshot entregue deve ser o conjunto completo mais recente")
	case <-time.After(time.Second):
		t.Fatal("nenhum snapshot entregue")
	}
}

func TestHub_UnsubscribeParaDeReceber(t *testing.T) {
	store := newMemStore()
	hub := stockview.NewHub(store, produtoRepo{store}, testLogger())

	ch, unsub := hub.SubscribeMovements("filial-1")
	unsub()

	m1 := movimento("m1", 10, 0)
	require.NoError(t, store.Create(context.Background(), &m1))
	hub.PublishMovements(context.Background(), "filial-1")

	select {
	case <-ch:
		t.Fatal("assinatura cancelada não deve receber snapshots")
	case <-time.After(50 * time.Millisecond):
	}
}
