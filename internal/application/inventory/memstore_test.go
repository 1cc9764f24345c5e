package inventory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/inventory-ledger-api/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/repository"
)

// memStore TxRunner en memoria: bloqueo por fila al estilo SELECT FOR UPDATE,
// cambios en staging que solo se publican en Commit.
type memStore struct {
	mu        sync.Mutex
	products  map[int64]entity.Product
	movements []entity.StockMovement
	rowLocks  map[int64]*sync.Mutex
	nextMovID int64

	failMovementCreate error
}

func newMemStore(products ...entity.Product) *memStore {
	s := &memStore{
		products: make(map[int64]entity.Product),
		rowLocks: make(map[int64]*sync.Mutex),
	}
	for _, p := range products {
		s.products[p.ID] = p
	}
	return s
}

func (s *memStore) Run(ctx context.Context, fn func(repository.ProductRepository, repository.StockMovementRepository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tx := &memTx{store: s, staged: make(map[int64]entity.Product), held: make(map[int64]*sync.Mutex)}
	defer tx.release()

	if err := fn(&memProductRepo{tx: tx}, &memMovementRepo{tx: tx}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	tx.commit()
	return nil
}

func (s *memStore) quantity(id int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products[id].Quantity
}

func (s *memStore) movementCount(kind string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, m := range s.movements {
		if kind == "" || m.Kind == kind {
			n++
		}
	}
	return n
}

func (s *memStore) rowLock(id int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.rowLocks[id]
	if !ok {
		l = &sync.Mutex{}
		s.rowLocks[id] = l
	}
	return l
}

type memTx struct {
	store  *memStore
	staged map[int64]entity.Product
	movs   []entity.StockMovement
	held   map[int64]*sync.Mutex
}

func (tx *memTx) lock(id int64) {
	if _, ok := tx.held[id]; ok {
		return
	}
	l := tx.store.rowLock(id)
	l.Lock()
	tx.held[id] = l
}

func (tx *memTx) read(id int64) (entity.Product, bool) {
	if p, ok := tx.staged[id]; ok {
		return p, true
	}
	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()
	p, ok := tx.store.products[id]
	if ok && p.DeletedAt != nil {
		return entity.Product{}, false
	}
	return p, ok
}

func (tx *memTx) commit() {
	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()
	for id, p := range tx.staged {
		tx.store.products[id] = p
	}
	now := time.Now()
	for _, m := range tx.movs {
		tx.store.nextMovID++
		m.ID = tx.store.nextMovID
		m.CreatedAt = now
		tx.store.movements = append(tx.store.movements, m)
	}
}

func (tx *memTx) release() {
	for _, l := range tx.held {
		l.Unlock()
	}
	tx.held = nil
}

type memProductRepo struct {
	repository.ProductRepository
	tx *memTx
}

func (r *memProductRepo) GetForUpdate(_ context.Context, id int64) (*entity.Product, error) {
	r.tx.lock(id)
	p, ok := r.tx.read(id)
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *memProductRepo) IncreaseQuantity(_ context.Context, id, delta int64) (*entity.Product, error) {
	r.tx.lock(id)
	p, ok := r.tx.read(id)
	if !ok {
		return nil, nil
	}
	p.Quantity += delta
	r.tx.staged[id] = p
	return &p, nil
}

func (r *memProductRepo) DecreaseQuantity(_ context.Context, id, delta int64) (*entity.Product, error) {
	r.tx.lock(id)
	p, ok := r.tx.read(id)
	if !ok {
		return nil, nil
	}
	if p.Quantity-delta < 0 {
		// equivalente al CHECK (quantity >= 0) de la tabla
		return nil, errors.New("violates check constraint products_quantity_check")
	}
	p.Quantity -= delta
	r.tx.staged[id] = p
	return &p, nil
}

type memMovementRepo struct {
	tx *memTx
}

func (r *memMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	if r.tx.store.failMovementCreate != nil {
		return r.tx.store.failMovementCreate
	}
	r.tx.movs = append(r.tx.movs, *m)
	return nil
}

func (r *memMovementRepo) List(context.Context, string, int, int) ([]*entity.StockMovement, error) {
	return nil, nil
}

func (r *memMovementRepo) Count(context.Context, string) (int64, error) { return 0, nil }

func (r *memMovementRepo) ListByProduct(_ context.Context, productID int64, limit, offset int) ([]*entity.StockMovement, error) {
	return r.tx.store.listByProduct(productID, limit, offset), nil
}

func (s *memStore) listByProduct(productID int64, limit, offset int) []*entity.StockMovement {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.StockMovement
	for i := range s.movements {
		if s.movements[i].ProductID == productID {
			m := s.movements[i]
			out = append(out, &m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if offset >= len(out) {
		return nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out
}

// storeMovementRepo lectura del historial fuera de transacción.
type storeMovementRepo struct {
	memMovementRepo
}

func newStoreMovementRepo(s *memStore) *storeMovementRepo {
	return &storeMovementRepo{memMovementRepo{tx: &memTx{store: s}}}
}

type recordedMetrics struct {
	mu       sync.Mutex
	outcomes map[string]int
}

func (m *recordedMetrics) ObserveMovement(kind, outcome string, _ float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.outcomes == nil {
		m.outcomes = make(map[string]int)
	}
	m.outcomes[kind+"/"+outcome]++
}

func (m *recordedMetrics) count(kind, outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.outcomes[kind+"/"+outcome]
}
