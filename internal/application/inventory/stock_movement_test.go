package inventory

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-ledger-api/internal/domain"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/entity"
)

const (
	testProductID = int64(1)
	testActorID   = int64(42)
)

func newTestUseCase(products ...entity.Product) (*StockMovementUseCase, *memStore, *recordedMetrics) {
	store := newMemStore(products...)
	metrics := &recordedMetrics{}
	uc := NewStockMovementUseCase(store, newStoreMovementRepo(store), nil, metrics)
	return uc, store, metrics
}

func product(qty int64) entity.Product {
	return entity.Product{ID: testProductID, Name: "Tornillo 3/8", Price: decimal.NewFromInt(100), Quantity: qty, LowStockThreshold: 10}
}

// ──────────────────────────────────────────────────────────────────────────────
// Entradas
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyStockIn_SumaCantidadYRegistraHistorial(t *testing.T) {
	uc, store, metrics := newTestUseCase(product(5))

	got, err := uc.ApplyStockIn(context.Background(), StockInInput{
		ProductID:     testProductID,
		Quantity:      7,
		Supplier:      "ACME",
		PurchasePrice: decimal.RequireFromString("12.50"),
		ActorID:       testActorID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(12), got.Quantity, "debe devolver la fila posterior al update")
	assert.Equal(t, int64(12), store.quantity(testProductID))
	assert.Equal(t, 1, store.movementCount(entity.MovementKindIn))
	assert.Equal(t, 1, metrics.count(entity.MovementKindIn, OutcomeCommitted))

	mov := store.movements[0]
	assert.Equal(t, "ACME", mov.Supplier)
	assert.Equal(t, testActorID, mov.ActorID)
	assert.True(t, mov.PurchasePrice.Equal(decimal.RequireFromString("12.50")))
}

func TestApplyStockIn_ProductoInexistente_NoDejaHistorial(t *testing.T) {
	uc, store, metrics := newTestUseCase(product(5))

	_, err := uc.ApplyStockIn(context.Background(), StockInInput{
		ProductID: 99, Quantity: 3, Supplier: "ACME", PurchasePrice: decimal.NewFromInt(1), ActorID: testActorID,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 0, store.movementCount(""), "un rollback no deja filas de historial")
	assert.Equal(t, 1, metrics.count(entity.MovementKindIn, OutcomeNotFound))
}

func TestApplyStockIn_CantidadNoPositiva(t *testing.T) {
	uc, store, _ := newTestUseCase(product(5))

	for _, qty := range []int64{0, -4} {
		_, err := uc.ApplyStockIn(context.Background(), StockInInput{ProductID: testProductID, Quantity: qty})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	assert.Equal(t, int64(5), store.quantity(testProductID))
}

func TestApplyStockIn_PrecioNoPositivo(t *testing.T) {
	uc, store, _ := newTestUseCase(product(5))

	for _, price := range []decimal.Decimal{decimal.NewFromInt(-1), decimal.Zero} {
		_, err := uc.ApplyStockIn(context.Background(), StockInInput{
			ProductID: testProductID, Quantity: 1, Supplier: "ACME", PurchasePrice: price,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "precio %s", price)
	}
	assert.Equal(t, int64(5), store.quantity(testProductID))
	assert.Equal(t, 0, store.movementCount(""))
}

func TestApplyStockIn_SinProveedor(t *testing.T) {
	uc, store, _ := newTestUseCase(product(5))

	_, err := uc.ApplyStockIn(context.Background(), StockInInput{
		ProductID: testProductID, Quantity: 1, Supplier: "  ", PurchasePrice: decimal.NewFromInt(2),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, int64(5), store.quantity(testProductID))
}

// ──────────────────────────────────────────────────────────────────────────────
// Salidas
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyStockOut_RestaCantidad(t *testing.T) {
	uc, store, _ := newTestUseCase(product(10))

	got, err := uc.ApplyStockOut(context.Background(), StockOutInput{
		ProductID: testProductID, Quantity: 4, Reason: "venta mostrador", ActorID: testActorID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(6), got.Quantity)
	assert.Equal(t, 1, store.movementCount(entity.MovementKindOut))
	assert.Equal(t, "venta mostrador", store.movements[0].Reason)
}

func TestApplyStockOut_SinMotivoEsValido(t *testing.T) {
	uc, _, _ := newTestUseCase(product(10))

	_, err := uc.ApplyStockOut(context.Background(), StockOutInput{ProductID: testProductID, Quantity: 1, ActorID: testActorID})
	assert.NoError(t, err)
}

func TestApplyStockOut_StockInsuficiente_SinEfectos(t *testing.T) {
	uc, store, metrics := newTestUseCase(product(3))
	beforeQty := store.quantity(testProductID)
	beforeRows := store.movementCount("")

	_, err := uc.ApplyStockOut(context.Background(), StockOutInput{ProductID: testProductID, Quantity: 5, ActorID: testActorID})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insufficient *domain.InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, int64(3), insufficient.Available, "el error debe reportar la cantidad disponible")
	assert.Contains(t, err.Error(), "3 unidades")

	assert.Equal(t, beforeQty, store.quantity(testProductID))
	assert.Equal(t, beforeRows, store.movementCount(""))
	assert.Equal(t, 1, metrics.count(entity.MovementKindOut, OutcomeInsufficientStock))
}

func TestApplyStockOut_ProductoInexistente(t *testing.T) {
	uc, _, _ := newTestUseCase(product(3))

	_, err := uc.ApplyStockOut(context.Background(), StockOutInput{ProductID: 77, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApplyStockOut_ProductoBorrado(t *testing.T) {
	p := product(8)
	deleted := p.CreatedAt
	p.DeletedAt = &deleted
	uc, _, _ := newTestUseCase(p)

	_, err := uc.ApplyStockOut(context.Background(), StockOutInput{ProductID: testProductID, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound, "un producto con borrado lógico no admite movimientos")
}

func TestApplyStockOut_CantidadCero(t *testing.T) {
	uc, _, _ := newTestUseCase(product(3))

	_, err := uc.ApplyStockOut(context.Background(), StockOutInput{ProductID: testProductID, Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestApplyStockOut_FalloAlInsertarHistorial_Rollback(t *testing.T) {
	uc, store, metrics := newTestUseCase(product(10))
	store.failMovementCreate = errors.New("connection reset by peer")

	_, err := uc.ApplyStockOut(context.Background(), StockOutInput{ProductID: testProductID, Quantity: 2})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransactionFailure)
	assert.Equal(t, int64(10), store.quantity(testProductID), "la cantidad no cambia si falla el historial")
	assert.Equal(t, 0, store.movementCount(""))
	assert.Equal(t, 1, metrics.count(entity.MovementKindOut, OutcomeFailed))
}

func TestApplyStockOut_ContextoCancelado_NoMuta(t *testing.T) {
	uc, store, _ := newTestUseCase(product(10))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := uc.ApplyStockOut(ctx, StockOutInput{ProductID: testProductID, Quantity: 2})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, err, domain.ErrTransactionFailure)
	assert.Equal(t, int64(10), store.quantity(testProductID))
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia e invariantes
// ──────────────────────────────────────────────────────────────────────────────

// Dos salidas concurrentes de 7 sobre 10 unidades: exactamente una gana.
func TestApplyStockOut_Concurrente_SoloUnaGana(t *testing.T) {
	uc, store, _ := newTestUseCase(product(10))

	var (
		wg    sync.WaitGroup
		start = make(chan struct{})
		errs  = make([]error, 2)
	)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = uc.ApplyStockOut(context.Background(), StockOutInput{ProductID: testProductID, Quantity: 7, ActorID: int64(i + 1)})
		}(i)
	}
	close(start)
	wg.Wait()

	succeeded, insufficient := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domain.ErrInsufficientStock):
			insufficient++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, insufficient)
	assert.Equal(t, int64(3), store.quantity(testProductID))
	assert.Equal(t, 1, store.movementCount(entity.MovementKindOut))
}

func TestApplyStockOut_MuchasConcurrentes_AgotanSinNegativos(t *testing.T) {
	uc, store, _ := newTestUseCase(product(10))

	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := uc.ApplyStockOut(context.Background(), StockOutInput{ProductID: testProductID, Quantity: 1}); err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, ok)
	assert.Equal(t, int64(0), store.quantity(testProductID))
	assert.Equal(t, 10, store.movementCount(entity.MovementKindOut))
}

func TestMovimientosAleatorios_NuncaNegativo(t *testing.T) {
	uc, store, _ := newTestUseCase(product(20))
	rng := rand.New(rand.NewSource(7))

	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		qty := int64(rng.Intn(9) + 1)
		in := rng.Intn(3) == 0
		wg.Add(1)
		go func() {
			defer wg.Done()
			if in {
				_, _ = uc.ApplyStockIn(context.Background(), StockInInput{
					ProductID: testProductID, Quantity: qty, Supplier: "ACME", PurchasePrice: decimal.NewFromInt(1),
				})
				return
			}
			_, _ = uc.ApplyStockOut(context.Background(), StockOutInput{ProductID: testProductID, Quantity: qty})
		}()
	}
	wg.Wait()

	assert.GreaterOrEqual(t, store.quantity(testProductID), int64(0))

	// el saldo final coincide con el historial confirmado
	var net int64 = 20
	for _, m := range store.movements {
		if m.Kind == entity.MovementKindIn {
			net += m.Quantity
		} else {
			net -= m.Quantity
		}
	}
	assert.Equal(t, net, store.quantity(testProductID))
}

func TestEntradaYSalida_IdaYVuelta(t *testing.T) {
	uc, store, _ := newTestUseCase(product(4))

	_, err := uc.ApplyStockIn(context.Background(), StockInInput{
		ProductID: testProductID, Quantity: 9, Supplier: "ACME", PurchasePrice: decimal.RequireFromString("3.10"),
	})
	require.NoError(t, err)
	got, err := uc.ApplyStockOut(context.Background(), StockOutInput{ProductID: testProductID, Quantity: 9, Reason: "devolución"})
	require.NoError(t, err)

	assert.Equal(t, int64(4), got.Quantity)
	assert.Equal(t, 1, store.movementCount(entity.MovementKindIn))
	assert.Equal(t, 1, store.movementCount(entity.MovementKindOut))

	history, err := uc.ListProductMovements(context.Background(), testProductID, 10, 0)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, entity.MovementKindOut, history[0].Kind, "más reciente primero")
}

func TestListProductMovements_IDInvalido(t *testing.T) {
	uc, _, _ := newTestUseCase()

	_, err := uc.ListProductMovements(context.Background(), 0, 10, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
