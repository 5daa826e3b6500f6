package replacements

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bagostock/internal/core/apperror"
	"bagostock/internal/core/id"
	"bagostock/internal/core/types"
	"bagostock/internal/domain/products"
)

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeUnitStore struct {
	units       map[id.ID]*products.Unit
	reactivated []id.ID
}

func newFakeUnitStore() *fakeUnitStore {
	return &fakeUnitStore{units: make(map[id.ID]*products.Unit)}
}

func (f *fakeUnitStore) Insert(ctx context.Context, u *products.Unit) error {
	clone := *u
	f.units[u.ID] = &clone
	return nil
}

func (f *fakeUnitStore) ExistsByIMEI(ctx context.Context, imei string) (bool, error) {
	for _, u := range f.units {
		if u.IMEI == imei {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUnitStore) Reactivate(ctx context.Context, unitID id.ID) error {
	u, ok := f.units[unitID]
	if !ok {
		return apperror.NewNotFound("unit", unitID)
	}
	u.Status = products.StatusActive
	u.Quantity = 1
	u.DateAdded = time.Now()
	f.reactivated = append(f.reactivated, unitID)
	return nil
}

type fakeReplacementRepo struct {
	replacements map[id.ID]*Replacement
	originals    map[id.ID]id.ID
}

func newFakeReplacementRepo() *fakeReplacementRepo {
	return &fakeReplacementRepo{
		replacements: make(map[id.ID]*Replacement),
		originals:    make(map[id.ID]id.ID),
	}
}

func (f *fakeReplacementRepo) add(originalUnitID id.ID) *Replacement {
	r := &Replacement{
		ID:                 id.New(),
		ReturnID:           id.New(),
		Brand:              "iPhone",
		Model:              "13 PRO",
		DateSentToSupplier: time.Now(),
		ResolutionStatus:   ResolutionPending,
	}
	f.replacements[r.ID] = r
	f.originals[r.ID] = originalUnitID
	return r
}

func (f *fakeReplacementRepo) List(ctx context.Context) ([]Replacement, error) {
	out := make([]Replacement, 0, len(f.replacements))
	for _, r := range f.replacements {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeReplacementRepo) GetByID(ctx context.Context, replacementID id.ID) (*Replacement, error) {
	r, ok := f.replacements[replacementID]
	if !ok {
		return nil, apperror.NewNotFound("replacement", replacementID)
	}
	clone := *r
	return &clone, nil
}

func (f *fakeReplacementRepo) OriginalUnitID(ctx context.Context, replacementID id.ID) (id.ID, error) {
	unitID, ok := f.originals[replacementID]
	if !ok {
		return id.Nil(), apperror.NewNotFound("replacement", replacementID)
	}
	return unitID, nil
}

func (f *fakeReplacementRepo) ResolvePending(ctx context.Context, replacementID id.ID, status ResolutionStatus, replacementUnitID *id.ID) (*Replacement, error) {
	r, ok := f.replacements[replacementID]
	if !ok || r.ResolutionStatus != ResolutionPending {
		return nil, apperror.NewNotFound("pending replacement", replacementID)
	}
	now := time.Now()
	r.ResolutionStatus = status
	r.ReceivedDate = &now
	r.ReplacementUnitID = replacementUnitID
	clone := *r
	return &clone, nil
}

func setup() (*Service, *fakeReplacementRepo, *fakeUnitStore) {
	repo := newFakeReplacementRepo()
	units := newFakeUnitStore()
	return NewService(repo, units, fakeTxManager{}), repo, units
}

func TestOutcomeStatus(t *testing.T) {
	assert.Equal(t, ResolutionRepaired, OutcomeRepaired.Status())
	assert.Equal(t, ResolutionReplaced, OutcomeReplaced.Status())
}

func TestResolve_Repaired(t *testing.T) {
	svc, repo, units := setup()
	ctx := context.Background()

	original := &products.Unit{ID: id.New(), Status: products.StatusSentToSupplier}
	require.NoError(t, units.Insert(ctx, original))
	r := repo.add(original.ID)

	res, err := svc.Resolve(ctx, r.ID, OutcomeRepaired, nil)
	require.NoError(t, err)

	assert.Equal(t, ResolutionRepaired, res.Replacement.ResolutionStatus)
	assert.NotNil(t, res.Replacement.ReceivedDate)
	assert.Nil(t, res.NewUnitID)

	require.Len(t, units.reactivated, 1)
	assert.Equal(t, original.ID, units.reactivated[0])
	assert.Equal(t, products.StatusActive, units.units[original.ID].Status)
}

func TestResolve_Replaced(t *testing.T) {
	svc, repo, units := setup()
	ctx := context.Background()

	r := repo.add(id.New())
	details := &NewUnitDetails{
		Brand:         "iPhone",
		Model:         "13 PRO",
		Type:          products.TypeCarton,
		IMEI:          "123456789012345",
		PurchasePrice: types.MustMoney("700"),
		SalePrice:     types.MustMoney("900"),
	}

	res, err := svc.Resolve(ctx, r.ID, OutcomeReplaced, details)
	require.NoError(t, err)

	assert.Equal(t, ResolutionReplaced, res.Replacement.ResolutionStatus)
	require.NotNil(t, res.NewUnitID)
	assert.Equal(t, res.NewUnitID, res.Replacement.ReplacementUnitID)

	created := units.units[*res.NewUnitID]
	require.NotNil(t, created)
	assert.Equal(t, "012345", created.IMEI)
	assert.Equal(t, products.StatusActive, created.Status)
	assert.Equal(t, 1, created.Quantity)
}

func TestResolve_ReplacedValidation(t *testing.T) {
	ctx := context.Background()

	t.Run("missing details", func(t *testing.T) {
		svc, repo, _ := setup()
		r := repo.add(id.New())
		_, err := svc.Resolve(ctx, r.ID, OutcomeReplaced, nil)
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("incomplete details", func(t *testing.T) {
		svc, repo, _ := setup()
		r := repo.add(id.New())
		_, err := svc.Resolve(ctx, r.ID, OutcomeReplaced, &NewUnitDetails{Brand: "iPhone"})
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("bad type", func(t *testing.T) {
		svc, repo, _ := setup()
		r := repo.add(id.New())
		_, err := svc.Resolve(ctx, r.ID, OutcomeReplaced, &NewUnitDetails{
			Brand: "iPhone", Model: "13 PRO", Type: "BOX", IMEI: "111111",
		})
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("bad imei", func(t *testing.T) {
		svc, repo, _ := setup()
		r := repo.add(id.New())
		_, err := svc.Resolve(ctx, r.ID, OutcomeReplaced, &NewUnitDetails{
			Brand: "iPhone", Model: "13 PRO", Type: products.TypeCarton, IMEI: "12a",
		})
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("duplicate imei in stock", func(t *testing.T) {
		svc, repo, units := setup()
		require.NoError(t, units.Insert(ctx, &products.Unit{ID: id.New(), IMEI: "111111"}))
		r := repo.add(id.New())
		_, err := svc.Resolve(ctx, r.ID, OutcomeReplaced, &NewUnitDetails{
			Brand: "iPhone", Model: "13 PRO", Type: products.TypeCarton, IMEI: "111111",
		})
		assert.True(t, apperror.IsValidation(err))
		assert.Equal(t, ResolutionPending, repo.replacements[r.ID].ResolutionStatus)
	})
}

func TestResolve_InvalidOutcome(t *testing.T) {
	svc, repo, _ := setup()
	r := repo.add(id.New())
	_, err := svc.Resolve(context.Background(), r.ID, "lost", nil)
	assert.True(t, apperror.IsValidation(err))
}

func TestResolve_OnlyOnce(t *testing.T) {
	svc, repo, units := setup()
	ctx := context.Background()

	original := &products.Unit{ID: id.New(), Status: products.StatusSentToSupplier}
	require.NoError(t, units.Insert(ctx, original))
	r := repo.add(original.ID)

	_, err := svc.Resolve(ctx, r.ID, OutcomeRepaired, nil)
	require.NoError(t, err)

	_, err = svc.Resolve(ctx, r.ID, OutcomeRepaired, nil)
	assert.True(t, apperror.IsNotFound(err))
	assert.Len(t, units.reactivated, 2, "the second call reaches the unit store before losing the conditional update")
}
