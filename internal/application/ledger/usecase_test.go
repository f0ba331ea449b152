package ledger_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/activos-ti/internal/application/ledger"
	"github.com/jhoicas/activos-ti/internal/domain"
	"github.com/jhoicas/activos-ti/internal/domain/entity"
	"github.com/jhoicas/activos-ti/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// fakeStore emula la base con la misma disciplina transaccional del adaptador
// real: el TxRunner serializa las transacciones con un mutex (equivalente al
// bloqueo de fila) y restaura un snapshot si el callback falla (rollback).
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	mu        sync.Mutex
	products  map[string]*entity.Product
	types     map[string]*entity.MovementType
	movements []*entity.Movement

	failMovementCreate bool
	failQuantityUpdate bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products: make(map[string]*entity.Product),
		types:    make(map[string]*entity.MovementType),
	}
}

func (s *fakeStore) snapshot() (map[string]*entity.Product, []*entity.Movement) {
	products := make(map[string]*entity.Product, len(s.products))
	for id, p := range s.products {
		cp := *p
		products[id] = &cp
	}
	movements := make([]*entity.Movement, len(s.movements))
	copy(movements, s.movements)
	return products, movements
}

type fakeTxRunner struct{ store *fakeStore }

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	products, movements := r.store.snapshot()
	if err := fn(&fakeMovementRepo{store: r.store}, &fakeProductRepo{store: r.store}); err != nil {
		r.store.products = products
		r.store.movements = movements
		return err
	}
	return nil
}

type fakeProductRepo struct{ store *fakeStore }

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.store.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByCode(code string) (*entity.Product, error) {
	for _, p := range r.store.products {
		if p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetByIDForUpdate(id string) (*entity.Product, error) {
	// El "bloqueo de fila" lo aporta el mutex del TxRunner.
	return r.GetByID(id)
}

func (r *fakeProductRepo) UpdateQuantity(id string, quantity int64, updatedAt time.Time) error {
	if r.store.failQuantityUpdate {
		return errors.New("disco lleno")
	}
	p, ok := r.store.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Quantity = quantity
	p.UpdatedAt = updatedAt
	return nil
}

func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }

type fakeMovementRepo struct{ store *fakeStore }

func (r *fakeMovementRepo) Create(m *entity.Movement) error {
	if r.store.failMovementCreate {
		return errors.New("disco lleno")
	}
	cp := *m
	r.store.movements = append(r.store.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) GetByID(id string) (*entity.Movement, error) {
	for _, m := range r.store.movements {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.Movement, error) {
	// Orden de inserción invertido: más reciente primero, como el adaptador real.
	var list []*entity.Movement
	for i := len(r.store.movements) - 1; i >= 0; i-- {
		if r.store.movements[i].ProductID == productID {
			list = append(list, r.store.movements[i])
		}
	}
	if offset < len(list) {
		list = list[offset:]
	} else {
		list = nil
	}
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}

type fakeTypeRepo struct{ store *fakeStore }

func (r *fakeTypeRepo) GetByID(id string) (*entity.MovementType, error) {
	t, ok := r.store.types[id]
	if !ok {
		return nil, nil
	}
	return t, nil
}

func (r *fakeTypeRepo) List() ([]*entity.MovementType, error) { return nil, nil }

// ──────────────────────────────────────────────────────────────────────────────
// Setup
// ──────────────────────────────────────────────────────────────────────────────

const (
	testActorID = "00000000-0000-0000-0000-000000000001"
)

type env struct {
	store *fakeStore
	uc    *ledger.LedgerUseCase

	productID  string
	inboundID  string
	outboundID string
	relocateID string
}

func newEnv(t *testing.T, initialQty int64) *env {
	t.Helper()
	store := newFakeStore()

	e := &env{
		store:      store,
		productID:  uuid.New().String(),
		inboundID:  uuid.New().String(),
		outboundID: uuid.New().String(),
		relocateID: uuid.New().String(),
	}
	store.products[e.productID] = &entity.Product{
		ID:       e.productID,
		Code:     "COM-00001",
		Name:     "Portátil",
		State:    entity.ProductStateActive,
		Quantity: initialQty,
	}
	store.types[e.inboundID] = &entity.MovementType{
		ID: e.inboundID, Name: "Compra", Inbound: true, AffectsStock: true, Active: true,
	}
	store.types[e.outboundID] = &entity.MovementType{
		ID: e.outboundID, Name: "Baja", Inbound: false, AffectsStock: true, Active: true,
	}
	store.types[e.relocateID] = &entity.MovementType{
		ID: e.relocateID, Name: "Reubicación", Inbound: true, AffectsStock: false, Active: true,
	}

	e.uc = ledger.NewLedgerUseCase(
		&fakeTxRunner{store: store},
		&fakeTypeRepo{store: store},
		&fakeMovementRepo{store: store},
		&fakeProductRepo{store: store},
	)
	return e
}

func (e *env) apply(t *testing.T, typeID string, qty int64) (*entity.Movement, error) {
	t.Helper()
	return e.uc.ApplyMovement(context.Background(), ledger.MovementInput{
		ProductID: e.productID,
		TypeID:    typeID,
		Quantity:  qty,
		ActorID:   testActorID,
		Reason:    "test",
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// ApplyMovement
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyMovement_Inbound(t *testing.T) {
	e := newEnv(t, 10)

	mov, err := e.apply(t, e.inboundID, 5)
	require.NoError(t, err)

	assert.Equal(t, int64(10), mov.QuantityBefore, "debe registrar la cantidad previa")
	assert.Equal(t, int64(15), mov.QuantityAfter, "entrada: antes + cantidad")
	assert.Equal(t, int64(5), mov.Quantity)
	assert.NotEmpty(t, mov.ID)
	assert.Equal(t, int64(15), e.store.products[e.productID].Quantity,
		"la cantidad del producto debe igualar el quantity_after del movimiento")
}

func TestApplyMovement_Outbound(t *testing.T) {
	e := newEnv(t, 10)

	mov, err := e.apply(t, e.outboundID, 4)
	require.NoError(t, err)

	assert.Equal(t, int64(10), mov.QuantityBefore)
	assert.Equal(t, int64(6), mov.QuantityAfter, "salida: antes - cantidad")
	assert.Equal(t, int64(6), e.store.products[e.productID].Quantity)
}

func TestApplyMovement_RejectsNegativeResult(t *testing.T) {
	e := newEnv(t, 10)

	// Salida de 12 con stock 10: se rechaza y el estado queda intacto.
	_, err := e.apply(t, e.outboundID, 12)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(10), e.store.products[e.productID].Quantity, "la cantidad no debe cambiar")
	assert.Empty(t, e.store.movements, "no debe quedar ningún movimiento registrado")
}

func TestApplyMovement_InvalidQuantity(t *testing.T) {
	e := newEnv(t, 10)

	for _, qty := range []int64{0, -3} {
		_, err := e.apply(t, e.inboundID, qty)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad %d", qty)
	}
	assert.Empty(t, e.store.movements)
}

func TestApplyMovement_UnknownReferences(t *testing.T) {
	e := newEnv(t, 10)

	_, err := e.uc.ApplyMovement(context.Background(), ledger.MovementInput{
		ProductID: uuid.New().String(),
		TypeID:    e.inboundID,
		Quantity:  1,
		ActorID:   testActorID,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "producto inexistente")

	_, err = e.apply(t, uuid.New().String(), 1)
	assert.ErrorIs(t, err, domain.ErrNotFound, "tipo de movimiento inexistente")
}

func TestApplyMovement_InactiveType(t *testing.T) {
	e := newEnv(t, 10)
	e.store.types[e.inboundID].Active = false

	_, err := e.apply(t, e.inboundID, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApplyMovement_RetiredProduct(t *testing.T) {
	e := newEnv(t, 10)
	e.store.products[e.productID].State = entity.ProductStateRetired

	_, err := e.apply(t, e.inboundID, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApplyMovement_TypeWithoutStockEffect(t *testing.T) {
	e := newEnv(t, 10)

	// Una reubicación queda en el historial pero no altera la cantidad.
	mov, err := e.apply(t, e.relocateID, 3)
	require.NoError(t, err)

	assert.Equal(t, int64(10), mov.QuantityBefore)
	assert.Equal(t, int64(10), mov.QuantityAfter)
	assert.Equal(t, int64(10), e.store.products[e.productID].Quantity)
	assert.Len(t, e.store.movements, 1)
}

func TestApplyMovement_RollbackOnStorageFailure(t *testing.T) {
	e := newEnv(t, 10)

	// Falla el append del movimiento: nada queda escrito.
	e.store.failMovementCreate = true
	_, err := e.apply(t, e.inboundID, 5)
	require.Error(t, err)
	assert.Equal(t, int64(10), e.store.products[e.productID].Quantity)
	assert.Empty(t, e.store.movements)

	// Falla el update de la cantidad: el movimiento ya creado se revierte.
	e.store.failMovementCreate = false
	e.store.failQuantityUpdate = true
	_, err = e.apply(t, e.inboundID, 5)
	require.Error(t, err)
	assert.Equal(t, int64(10), e.store.products[e.productID].Quantity)
	assert.Empty(t, e.store.movements, "estado parcial no observable tras rollback")
}

// TestApplyMovement_SequenceProperty: tras una secuencia finita de
// movimientos, la cantidad final es la inicial más la suma de deltas con
// signo, y los snapshots antes/después encadenan sin huecos.
func TestApplyMovement_SequenceProperty(t *testing.T) {
	e := newEnv(t, 100)

	seq := []struct {
		typeID string
		qty    int64
	}{
		{e.inboundID, 25},
		{e.outboundID, 40},
		{e.relocateID, 7},
		{e.outboundID, 30},
		{e.inboundID, 3},
		{e.outboundID, 58},
	}
	expected := int64(100)
	for _, s := range seq {
		mov, err := e.apply(t, s.typeID, s.qty)
		require.NoError(t, err)

		assert.Equal(t, expected, mov.QuantityBefore)
		switch s.typeID {
		case e.inboundID:
			expected += s.qty
		case e.outboundID:
			expected -= s.qty
		}
		assert.Equal(t, expected, mov.QuantityAfter)
	}
	assert.Equal(t, int64(0), expected)
	assert.Equal(t, expected, e.store.products[e.productID].Quantity)
	assert.Len(t, e.store.movements, len(seq))
}

func TestApplyMovement_ConcurrentMovementsConsistent(t *testing.T) {
	e := newEnv(t, 0)

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.uc.ApplyMovement(context.Background(), ledger.MovementInput{
				ProductID: e.productID,
				TypeID:    e.inboundID,
				Quantity:  1,
				ActorID:   testActorID,
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(workers), e.store.products[e.productID].Quantity)

	// Cada movimiento encadena con el anterior: ningún update perdido.
	seen := make(map[int64]bool)
	for _, m := range e.store.movements {
		assert.Equal(t, m.QuantityBefore+1, m.QuantityAfter)
		assert.False(t, seen[m.QuantityAfter], "quantity_after duplicado: carrera")
		seen[m.QuantityAfter] = true
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// GetHistory
// ──────────────────────────────────────────────────────────────────────────────

func TestGetHistory_NewestFirstAndIdempotent(t *testing.T) {
	e := newEnv(t, 10)

	_, err := e.apply(t, e.inboundID, 5)
	require.NoError(t, err)
	_, err = e.apply(t, e.outboundID, 2)
	require.NoError(t, err)
	_, err = e.apply(t, e.inboundID, 1)
	require.NoError(t, err)

	first, err := e.uc.GetHistory(context.Background(), e.productID, 50, 0)
	require.NoError(t, err)
	require.Len(t, first, 3)

	// Más reciente primero.
	assert.Equal(t, int64(14), first[0].QuantityAfter)
	assert.Equal(t, int64(13), first[1].QuantityAfter)
	assert.Equal(t, int64(15), first[2].QuantityAfter)

	// Solo lectura: repetir la llamada devuelve la misma secuencia.
	second, err := e.uc.GetHistory(context.Background(), e.productID, 50, 0)
	require.NoError(t, err)
	require.Len(t, second, 3)
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
}

func TestGetHistory_UnknownProduct(t *testing.T) {
	e := newEnv(t, 10)

	_, err := e.uc.GetHistory(context.Background(), uuid.New().String(), 50, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
