package products

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bagostock/internal/core/apperror"
	"bagostock/internal/core/id"
	"bagostock/internal/core/types"
)

// fakeTxManager runs every callback inline. Savepoint semantics collapse to
// plain calls, which is enough for validation-path tests.
type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) RunNested(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRepo struct {
	units      map[id.ID]*Unit
	insertErr  error
	salesUnits map[id.ID]bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		units:      make(map[id.ID]*Unit),
		salesUnits: make(map[id.ID]bool),
	}
}

func (f *fakeRepo) key(u *Unit) string {
	sig := u.Signature()
	storage, quality := "", ""
	if sig.Storage != nil {
		storage = *sig.Storage
	}
	if sig.CartonQuality != nil {
		quality = *sig.CartonQuality
	}
	return fmt.Sprintf("%s|%s|%s|%s|%s|%s", sig.Brand, sig.Model, storage, sig.Type, quality, u.IMEI)
}

func (f *fakeRepo) Insert(ctx context.Context, u *Unit) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	for _, existing := range f.units {
		if f.key(existing) == f.key(u) {
			return apperror.NewDuplicate("unit", "imei", u.IMEI)
		}
	}
	clone := *u
	f.units[u.ID] = &clone
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, unitID id.ID) (*UnitRow, error) {
	u, ok := f.units[unitID]
	if !ok {
		return nil, apperror.NewNotFound("unit", unitID)
	}
	return &UnitRow{Unit: *u}, nil
}

func (f *fakeRepo) List(ctx context.Context) ([]UnitRow, error) {
	rows := make([]UnitRow, 0, len(f.units))
	for _, u := range f.units {
		rows = append(rows, UnitRow{Unit: *u})
	}
	return rows, nil
}

func (f *fakeRepo) Update(ctx context.Context, u *Unit) error {
	if _, ok := f.units[u.ID]; !ok {
		return apperror.NewNotFound("unit", u.ID)
	}
	clone := *u
	f.units[u.ID] = &clone
	return nil
}

func (f *fakeRepo) UpdatePricesBySignature(ctx context.Context, sig Signature, salePrice, purchasePrice types.Money) ([]UnitRow, error) {
	var rows []UnitRow
	for _, u := range f.units {
		if sameSignature(u.Signature(), sig) {
			u.SalePrice = salePrice
			u.PurchasePrice = purchasePrice
			rows = append(rows, UnitRow{Unit: *u})
		}
	}
	return rows, nil
}

func sameSignature(a, b Signature) bool {
	eq := func(x, y *string) bool {
		if x == nil || y == nil {
			return x == nil && y == nil
		}
		return *x == *y
	}
	return a.Brand == b.Brand && a.Model == b.Model && a.Type == b.Type &&
		eq(a.Storage, b.Storage) && eq(a.CartonQuality, b.CartonQuality)
}

func (f *fakeRepo) Delete(ctx context.Context, unitID id.ID) error {
	if _, ok := f.units[unitID]; !ok {
		return apperror.NewNotFound("unit", unitID)
	}
	delete(f.units, unitID)
	return nil
}

func (f *fakeRepo) HasSales(ctx context.Context, unitID id.ID) (bool, error) {
	return f.salesUnits[unitID], nil
}

func (f *fakeRepo) ExistsByIMEI(ctx context.Context, imei string) (bool, error) {
	for _, u := range f.units {
		if u.IMEI == imei {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) Reactivate(ctx context.Context, unitID id.ID) error {
	u, ok := f.units[unitID]
	if !ok {
		return apperror.NewNotFound("unit", unitID)
	}
	u.Status = StatusActive
	u.Quantity = 1
	return nil
}

type fakeSupplierDirectory struct {
	ids map[id.ID]struct{}
}

func (f *fakeSupplierDirectory) ListIDs(ctx context.Context) (map[id.ID]struct{}, error) {
	return f.ids, nil
}

func newTestService(repo *fakeRepo, supplierIDs ...id.ID) *Service {
	dir := &fakeSupplierDirectory{ids: make(map[id.ID]struct{})}
	for _, sid := range supplierIDs {
		dir.ids[sid] = struct{}{}
	}
	return NewService(repo, dir, fakeTxManager{}, DefaultCatalogRules())
}

func validBatch(supplierID id.ID, imeis ...string) BatchRequest {
	quality := "GW"
	return BatchRequest{
		Brand:         "iPhone",
		Model:         "13 PRO",
		Type:          TypeCarton,
		CartonQuality: &quality,
		IMEIs:         imeis,
		SalePrice:     types.MustMoney("900"),
		PurchasePrice: types.MustMoney("700"),
		SupplierID:    supplierID,
	}
}

func TestBatchCreate_AllRowsSucceed(t *testing.T) {
	repo := newFakeRepo()
	supplierID := id.New()
	svc := newTestService(repo, supplierID)

	res, err := svc.BatchCreate(context.Background(), validBatch(supplierID, "123456789012345", "111111"))
	require.NoError(t, err)
	assert.Len(t, res.Created, 2)
	assert.Equal(t, 2, res.SuccessCount)
	assert.Empty(t, res.Failed)
	assert.Equal(t, "012345", res.Created[0].IMEI)
	assert.Equal(t, 1, res.Created[0].Quantity)
	assert.Equal(t, StatusActive, res.Created[0].Status)
}

func TestBatchCreate_PartialFailure(t *testing.T) {
	repo := newFakeRepo()
	supplierID := id.New()
	svc := newTestService(repo, supplierID)

	res, err := svc.BatchCreate(context.Background(), validBatch(supplierID, "111111", "abc", "222222"))
	require.NoError(t, err)
	assert.Len(t, res.Created, 2)
	assert.Equal(t, 2, res.SuccessCount)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, "abc", res.Failed[0].IMEI)
}

func TestBatchCreate_DuplicateIMEIWithinCall(t *testing.T) {
	repo := newFakeRepo()
	supplierID := id.New()
	svc := newTestService(repo, supplierID)

	res, err := svc.BatchCreate(context.Background(), validBatch(supplierID, "111111", "111111"))
	require.NoError(t, err)
	assert.Len(t, res.Created, 1)
	require.Len(t, res.Failed, 1)
	assert.Contains(t, res.Failed[0].Reason, "already exists")
}

func TestBatchCreate_SharedFieldFailures(t *testing.T) {
	supplierID := id.New()

	tests := []struct {
		name   string
		mutate func(*BatchRequest)
	}{
		{"missing brand", func(r *BatchRequest) { r.Brand = "" }},
		{"missing model", func(r *BatchRequest) { r.Model = " " }},
		{"no imeis", func(r *BatchRequest) { r.IMEIs = nil }},
		{"nil supplier", func(r *BatchRequest) { r.SupplierID = id.Nil() }},
		{"bad type", func(r *BatchRequest) { r.Type = "BOX" }},
		{"sale equals purchase", func(r *BatchRequest) { r.SalePrice = r.PurchasePrice }},
		{"sale below purchase", func(r *BatchRequest) {
			r.SalePrice = types.MustMoney("100")
			r.PurchasePrice = types.MustMoney("200")
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(newFakeRepo(), supplierID)
			req := validBatch(supplierID, "111111")
			tt.mutate(&req)
			_, err := svc.BatchCreate(context.Background(), req)
			assert.True(t, apperror.IsValidation(err), "want validation error, got %v", err)
		})
	}
}

func TestBatchCreate_IPhoneQualityPolicy(t *testing.T) {
	supplierID := id.New()
	ctx := context.Background()

	t.Run("carton without quality rejected", func(t *testing.T) {
		svc := newTestService(newFakeRepo(), supplierID)
		req := validBatch(supplierID, "111111")
		req.CartonQuality = nil
		_, err := svc.BatchCreate(ctx, req)
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("carton with unknown quality rejected", func(t *testing.T) {
		svc := newTestService(newFakeRepo(), supplierID)
		q := "SHINY"
		req := validBatch(supplierID, "111111")
		req.CartonQuality = &q
		_, err := svc.BatchCreate(ctx, req)
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("arrivage accepts SM", func(t *testing.T) {
		svc := newTestService(newFakeRepo(), supplierID)
		q := "SM"
		req := validBatch(supplierID, "111111")
		req.Type = TypeArrivage
		req.CartonQuality = &q
		res, err := svc.BatchCreate(ctx, req)
		require.NoError(t, err)
		assert.Len(t, res.Created, 1)
	})

	t.Run("arrivage rejects carton quality value", func(t *testing.T) {
		svc := newTestService(newFakeRepo(), supplierID)
		q := "GW"
		req := validBatch(supplierID, "111111")
		req.Type = TypeArrivage
		req.CartonQuality = &q
		_, err := svc.BatchCreate(ctx, req)
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("non-iPhone with quality rejected", func(t *testing.T) {
		svc := newTestService(newFakeRepo(), supplierID)
		q := "GW"
		req := validBatch(supplierID, "111111")
		req.Brand = "Samsung"
		req.Model = "Galaxy S22"
		req.CartonQuality = &q
		_, err := svc.BatchCreate(ctx, req)
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("non-iPhone without quality accepted", func(t *testing.T) {
		svc := newTestService(newFakeRepo(), supplierID)
		req := validBatch(supplierID, "111111")
		req.Brand = "Samsung"
		req.Model = "Galaxy S22"
		req.CartonQuality = nil
		res, err := svc.BatchCreate(ctx, req)
		require.NoError(t, err)
		assert.Len(t, res.Created, 1)
	})
}

func TestUpdate_SingleUnit(t *testing.T) {
	repo := newFakeRepo()
	supplierID := id.New()
	svc := newTestService(repo, supplierID)
	ctx := context.Background()

	res, err := svc.BatchCreate(ctx, validBatch(supplierID, "111111"))
	require.NoError(t, err)
	unitID := res.Created[0].ID

	quality := "ORG"
	updated, err := svc.Update(ctx, unitID, UpdateRequest{
		Brand:         "iPhone",
		Model:         "14 PRO",
		Type:          TypeCarton,
		CartonQuality: &quality,
		IMEI:          "987654321222333",
		Quantity:      1,
		SalePrice:     types.MustMoney("1000"),
		PurchasePrice: types.MustMoney("800"),
		SupplierID:    supplierID,
	})
	require.NoError(t, err)
	require.Len(t, updated, 1)
	assert.Equal(t, "14 PRO", updated[0].Model)
	assert.Equal(t, "222333", updated[0].IMEI)
	assert.Equal(t, StatusActive, updated[0].Status)
}

func TestUpdate_AllSameProducts(t *testing.T) {
	repo := newFakeRepo()
	supplierID := id.New()
	svc := newTestService(repo, supplierID)
	ctx := context.Background()

	res, err := svc.BatchCreate(ctx, validBatch(supplierID, "111111", "222222", "333333"))
	require.NoError(t, err)
	require.Len(t, res.Created, 3)

	updated, err := svc.Update(ctx, res.Created[0].ID, UpdateRequest{
		SalePrice:       types.MustMoney("950"),
		PurchasePrice:   types.MustMoney("750"),
		AllSameProducts: true,
	})
	require.NoError(t, err)
	assert.Len(t, updated, 3)
	for _, row := range updated {
		assert.True(t, row.SalePrice.Equal(types.MustMoney("950")))
		assert.True(t, row.PurchasePrice.Equal(types.MustMoney("750")))
	}
}

func TestUpdate_BadIMEIRejected(t *testing.T) {
	svc := newTestService(newFakeRepo(), id.New())
	_, err := svc.Update(context.Background(), id.New(), UpdateRequest{
		Brand: "Samsung",
		Model: "Galaxy S22",
		Type:  TypeArrivage,
		IMEI:  "12a45",
	})
	assert.True(t, apperror.IsValidation(err))
}

func TestDelete(t *testing.T) {
	repo := newFakeRepo()
	supplierID := id.New()
	svc := newTestService(repo, supplierID)
	ctx := context.Background()

	res, err := svc.BatchCreate(ctx, validBatch(supplierID, "111111", "222222"))
	require.NoError(t, err)

	t.Run("free unit deletes", func(t *testing.T) {
		deleted, err := svc.Delete(ctx, res.Created[0].ID)
		require.NoError(t, err)
		assert.Equal(t, res.Created[0].ID, deleted.ID)
		_, err = repo.GetByID(ctx, res.Created[0].ID)
		assert.True(t, apperror.IsNotFound(err))
	})

	t.Run("sold unit refuses", func(t *testing.T) {
		repo.salesUnits[res.Created[1].ID] = true
		_, err := svc.Delete(ctx, res.Created[1].ID)
		assert.True(t, apperror.IsConflict(err))
	})

	t.Run("unknown unit", func(t *testing.T) {
		_, err := svc.Delete(ctx, id.New())
		assert.True(t, apperror.IsNotFound(err))
	})
}
