package alert

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-ledger-api/internal/domain"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/entity"
)

// fakeAlertRepo aplica la misma regla que el índice único parcial:
// una sola alerta low_stock no leída por producto.
type fakeAlertRepo struct {
	mu       sync.Mutex
	products []*entity.Product
	alerts   []*entity.Alert
	nextID   int64

	listErr error
}

func (r *fakeAlertRepo) hasUnread(productID int64) bool {
	for _, a := range r.alerts {
		if a.ProductID == productID && a.Type == entity.AlertTypeLowStock && !a.IsRead {
			return true
		}
	}
	return false
}

func (r *fakeAlertRepo) ListLowStockCandidates(context.Context) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []*entity.Product
	for _, p := range r.products {
		if p.Quantity <= p.LowStockThreshold && !r.hasUnread(p.ID) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeAlertRepo) CreateIfNoUnread(_ context.Context, a *entity.Alert) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.hasUnread(a.ProductID) {
		return false, nil
	}
	r.nextID++
	a.ID = r.nextID
	r.alerts = append(r.alerts, a)
	return true, nil
}

func (r *fakeAlertRepo) List(context.Context) ([]*entity.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*entity.Alert(nil), r.alerts...), nil
}

func (r *fakeAlertRepo) MarkRead(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.alerts {
		if a.ID == id {
			a.IsRead = true
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAlertRepo) MarkAllRead(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, a := range r.alerts {
		if !a.IsRead {
			a.IsRead = true
			n++
		}
	}
	return n, nil
}

func (r *fakeAlertRepo) Delete(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, a := range r.alerts {
		if a.ID == id {
			r.alerts = append(r.alerts[:i], r.alerts[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type scanRecorder struct {
	created []int
	errs    int
}

func (s *scanRecorder) ObserveScan(created int, err error) {
	s.created = append(s.created, created)
	if err != nil {
		s.errs++
	}
}

func lowStockCatalog() *fakeAlertRepo {
	return &fakeAlertRepo{products: []*entity.Product{
		{ID: 1, Name: "A", Quantity: 0, LowStockThreshold: 10},
		{ID: 2, Name: "B", Quantity: 4, LowStockThreshold: 10},
		{ID: 3, Name: "C", Quantity: 8, LowStockThreshold: 10},
		{ID: 4, Name: "D", Quantity: 50, LowStockThreshold: 10},
	}}
}

func TestScan_UnaAlertaPorProductoBajo(t *testing.T) {
	repo := lowStockCatalog()
	rec := &scanRecorder{}
	uc := NewAlertUseCase(repo, nil, rec)

	created, err := uc.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, created)

	bySeverity := map[int64]string{}
	for _, a := range repo.alerts {
		bySeverity[a.ProductID] = a.Severity
	}
	assert.Equal(t, map[int64]string{
		1: entity.SeverityCritical,
		2: entity.SeverityHigh,
		3: entity.SeverityMedium,
	}, bySeverity)
	assert.Equal(t, []int{3}, rec.created)
}

func TestScan_Idempotente(t *testing.T) {
	repo := lowStockCatalog()
	uc := NewAlertUseCase(repo, nil, nil)
	ctx := context.Background()

	_, err := uc.Scan(ctx)
	require.NoError(t, err)
	created, err := uc.Scan(ctx)
	require.NoError(t, err)
	assert.Zero(t, created)
	assert.Len(t, repo.alerts, 3)
}

func TestScan_ConcurrenteSinDuplicados(t *testing.T) {
	repo := lowStockCatalog()
	uc := NewAlertUseCase(repo, nil, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = uc.Scan(context.Background())
		}()
	}
	wg.Wait()
	assert.Len(t, repo.alerts, 3)
}

func TestScan_NuevaAlertaTrasLeer(t *testing.T) {
	repo := lowStockCatalog()
	uc := NewAlertUseCase(repo, nil, nil)
	ctx := context.Background()

	_, err := uc.Scan(ctx)
	require.NoError(t, err)
	_, err = uc.MarkAllRead(ctx)
	require.NoError(t, err)

	created, err := uc.Scan(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, created)
	assert.Len(t, repo.alerts, 6)
}

func TestScan_ErrorRepositorio(t *testing.T) {
	repo := &fakeAlertRepo{listErr: errors.New("db caída")}
	rec := &scanRecorder{}
	uc := NewAlertUseCase(repo, nil, rec)

	_, err := uc.Scan(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, rec.errs)
}

func TestMarkReadYDelete_NoEncontrada(t *testing.T) {
	uc := NewAlertUseCase(&fakeAlertRepo{}, nil, nil)
	ctx := context.Background()

	err := uc.MarkRead(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	err = uc.Delete(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrAlertNotFound)
}

func TestMarkReadYDelete(t *testing.T) {
	repo := lowStockCatalog()
	uc := NewAlertUseCase(repo, nil, nil)
	ctx := context.Background()
	_, err := uc.Scan(ctx)
	require.NoError(t, err)

	require.NoError(t, uc.MarkRead(ctx, 1))
	require.NoError(t, uc.Delete(ctx, 2))

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.True(t, list[0].IsRead)
}

func TestList_VaciaNoEsNil(t *testing.T) {
	uc := NewAlertUseCase(&fakeAlertRepo{}, nil, nil)
	list, err := uc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}
