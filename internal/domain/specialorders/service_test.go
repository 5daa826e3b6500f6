package specialorders

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bagostock/internal/core/apperror"
	"bagostock/internal/core/id"
	"bagostock/internal/core/types"
	"bagostock/internal/domain"
	"bagostock/internal/domain/catalogs/client"
	"bagostock/internal/domain/catalogs/supplier"
)

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeCatalogRepo backs a real catalog service with an in-memory name index.
type fakeCatalogRepo[T domain.Validatable] struct {
	byName map[string]T
}

func (f *fakeCatalogRepo[T]) Create(ctx context.Context, entity T) error { return nil }
func (f *fakeCatalogRepo[T]) Update(ctx context.Context, entity T) error { return nil }

func (f *fakeCatalogRepo[T]) GetByID(ctx context.Context, entityID id.ID) (T, error) {
	var zero T
	return zero, apperror.NewNotFound("entity", entityID)
}

func (f *fakeCatalogRepo[T]) GetByName(ctx context.Context, name string) (T, error) {
	if entity, ok := f.byName[name]; ok {
		return entity, nil
	}
	var zero T
	return zero, apperror.NewNotFound("entity", name)
}

func (f *fakeCatalogRepo[T]) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[T], error) {
	return domain.ListResult[T]{}, nil
}

func (f *fakeCatalogRepo[T]) Exists(ctx context.Context, entityID id.ID) (bool, error) {
	return false, nil
}

func (f *fakeCatalogRepo[T]) Delete(ctx context.Context, entityID id.ID) error { return nil }

type fakeOrderRepo struct {
	orders map[id.ID]*Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[id.ID]*Order)}
}

func (f *fakeOrderRepo) Insert(ctx context.Context, o *Order) error {
	clone := *o
	f.orders[o.ID] = &clone
	return nil
}

func (f *fakeOrderRepo) List(ctx context.Context) ([]OrderRow, error) {
	rows := make([]OrderRow, 0, len(f.orders))
	for _, o := range f.orders {
		rows = append(rows, OrderRow{Order: *o})
	}
	return rows, nil
}

func (f *fakeOrderRepo) Update(ctx context.Context, o *Order) error {
	if _, ok := f.orders[o.ID]; !ok {
		return apperror.NewNotFound("special order", o.ID)
	}
	clone := *o
	f.orders[o.ID] = &clone
	return nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, orderID id.ID, status Status, reason *string) (*Order, error) {
	o, ok := f.orders[orderID]
	if !ok {
		return nil, apperror.NewNotFound("special order", orderID)
	}
	o.Status = status
	o.CancellationReason = reason
	o.StatusChangedAt = time.Now()
	clone := *o
	return &clone, nil
}

func (f *fakeOrderRepo) GetClientPriceForUpdate(ctx context.Context, orderID id.ID) (types.Money, error) {
	o, ok := f.orders[orderID]
	if !ok {
		return types.Zero(), apperror.NewNotFound("special order", orderID)
	}
	return o.ClientPrice, nil
}

func (f *fakeOrderRepo) UpdatePayment(ctx context.Context, orderID id.ID, paid, remaining types.Money, status Status) (*Order, error) {
	o, ok := f.orders[orderID]
	if !ok {
		return nil, apperror.NewNotFound("special order", orderID)
	}
	o.AmountPaid = paid
	o.AmountRemaining = remaining
	o.Status = status
	o.StatusChangedAt = time.Now()
	clone := *o
	return &clone, nil
}

func (f *fakeOrderRepo) Delete(ctx context.Context, orderID id.ID) error {
	if _, ok := f.orders[orderID]; !ok {
		return apperror.NewNotFound("special order", orderID)
	}
	delete(f.orders, orderID)
	return nil
}

func newTestService(repo *fakeOrderRepo) *Service {
	cl := client.New("Amadou", nil)
	sup := supplier.New("TechSource", nil)

	clientRepo := &fakeCatalogRepo[*client.Client]{byName: map[string]*client.Client{cl.Name: cl}}
	supplierRepo := &fakeCatalogRepo[*supplier.Supplier]{byName: map[string]*supplier.Supplier{sup.Name: sup}}

	clients := client.NewService(clientRepo, fakeTxManager{})
	suppliers := supplier.NewService(supplierRepo, fakeTxManager{})

	return NewService(repo, clients, suppliers, fakeTxManager{})
}

func validCreate() CreateRequest {
	return CreateRequest{
		ClientName:    "Amadou",
		SupplierName:  "TechSource",
		Brand:         "iPhone",
		Model:         "15 PRO",
		Type:          "CARTON",
		SupplierPrice: types.MustMoney("800"),
		ClientPrice:   types.MustMoney("1000"),
		AmountPaid:    types.MustMoney("0"),
	}
}

func TestStatusForPayment(t *testing.T) {
	tests := []struct {
		name  string
		paid  string
		price string
		want  Status
	}{
		{"nothing paid", "0", "1000", StatusPending},
		{"partial", "400", "1000", StatusPartiallyPaid},
		{"fully paid", "1000", "1000", StatusSold},
		{"overpaid", "1200", "1000", StatusSold},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StatusForPayment(types.MustMoney(tt.paid), types.MustMoney(tt.price))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("pending order", func(t *testing.T) {
		repo := newFakeOrderRepo()
		svc := newTestService(repo)

		order, err := svc.Create(ctx, validCreate())
		require.NoError(t, err)
		assert.Equal(t, StatusPending, order.Status)
		assert.True(t, order.AmountRemaining.Equal(types.MustMoney("1000")))
		assert.Contains(t, repo.orders, order.ID)
	})

	t.Run("deposit starts partially paid", func(t *testing.T) {
		svc := newTestService(newFakeOrderRepo())
		req := validCreate()
		req.AmountPaid = types.MustMoney("300")

		order, err := svc.Create(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, StatusPartiallyPaid, order.Status)
		assert.True(t, order.AmountRemaining.Equal(types.MustMoney("700")))
	})

	t.Run("unknown client", func(t *testing.T) {
		svc := newTestService(newFakeOrderRepo())
		req := validCreate()
		req.ClientName = "nobody"
		_, err := svc.Create(ctx, req)
		assert.True(t, apperror.IsNotFound(err))
	})

	t.Run("unknown supplier", func(t *testing.T) {
		svc := newTestService(newFakeOrderRepo())
		req := validCreate()
		req.SupplierName = "nobody"
		_, err := svc.Create(ctx, req)
		assert.True(t, apperror.IsNotFound(err))
	})

	t.Run("client price must beat supplier price", func(t *testing.T) {
		svc := newTestService(newFakeOrderRepo())
		req := validCreate()
		req.ClientPrice = types.MustMoney("800")
		_, err := svc.Create(ctx, req)
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("bad type", func(t *testing.T) {
		svc := newTestService(newFakeOrderRepo())
		req := validCreate()
		req.Type = "BOX"
		_, err := svc.Create(ctx, req)
		assert.True(t, apperror.IsValidation(err))
	})
}

func TestUpdatePayment(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*Service, *fakeOrderRepo, id.ID) {
		repo := newFakeOrderRepo()
		svc := newTestService(repo)
		order, err := svc.Create(ctx, validCreate())
		require.NoError(t, err)
		return svc, repo, order.ID
	}

	t.Run("partial payment", func(t *testing.T) {
		svc, _, orderID := setup(t)
		order, err := svc.UpdatePayment(ctx, orderID, types.MustMoney("400"))
		require.NoError(t, err)
		assert.Equal(t, StatusPartiallyPaid, order.Status)
		assert.True(t, order.AmountRemaining.Equal(types.MustMoney("600")))
	})

	t.Run("full payment sells the order", func(t *testing.T) {
		svc, _, orderID := setup(t)
		order, err := svc.UpdatePayment(ctx, orderID, types.MustMoney("1000"))
		require.NoError(t, err)
		assert.Equal(t, StatusSold, order.Status)
		assert.True(t, order.AmountRemaining.IsZero())
	})

	t.Run("zero drops back to pending", func(t *testing.T) {
		svc, _, orderID := setup(t)
		_, err := svc.UpdatePayment(ctx, orderID, types.MustMoney("400"))
		require.NoError(t, err)
		order, err := svc.UpdatePayment(ctx, orderID, types.Zero())
		require.NoError(t, err)
		assert.Equal(t, StatusPending, order.Status)
	})

	t.Run("negative rejected", func(t *testing.T) {
		svc, _, orderID := setup(t)
		_, err := svc.UpdatePayment(ctx, orderID, types.MustMoney("-1"))
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("cannot exceed client price", func(t *testing.T) {
		svc, _, orderID := setup(t)
		_, err := svc.UpdatePayment(ctx, orderID, types.MustMoney("1001"))
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("unknown order", func(t *testing.T) {
		svc, _, _ := setup(t)
		_, err := svc.UpdatePayment(ctx, id.New(), types.MustMoney("100"))
		assert.True(t, apperror.IsNotFound(err))
	})
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	repo := newFakeOrderRepo()
	svc := newTestService(repo)

	order, err := svc.Create(ctx, validCreate())
	require.NoError(t, err)

	reason := "client no longer wants the phone"
	updated, err := svc.UpdateStatus(ctx, order.ID, StatusCancelled, &reason)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, updated.Status)
	require.NotNil(t, updated.CancellationReason)
	assert.Equal(t, reason, *updated.CancellationReason)

	_, err = svc.UpdateStatus(ctx, order.ID, "", nil)
	assert.True(t, apperror.IsValidation(err))
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	repo := newFakeOrderRepo()
	svc := newTestService(repo)

	order, err := svc.Create(ctx, validCreate())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, order.ID))
	assert.True(t, apperror.IsNotFound(svc.Delete(ctx, order.ID)))
}
