package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	catalogerrors "github.com/abgdnv/storecatalog/internal/errors"
	"github.com/abgdnv/storecatalog/internal/store/db"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func newStore(name, location string) db.Store {
	return db.Store{ID: uuid.New(), Name: name, Location: location, UpdatedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}
}

func newProduct(name, price string) db.Product {
	return db.Product{ID: uuid.New(), Name: name, Price: decimal.RequireFromString(price), Category: "general"}
}

func mustWrite(t *testing.T, s CatalogStore, fn func(repo Repository) error) {
	t.Helper()
	require.NoError(t, s.WriteTx(context.Background(), fn))
}

func storeNames(stores []db.Store) []string {
	names := make([]string, len(stores))
	for i, s := range stores {
		names[i] = s.Name
	}
	return names
}

func Test_InMemory_StoreListingOrder(t *testing.T) {
	// given
	s := NewInMemoryStore()
	ctx := context.Background()
	b := newStore("Bravo", "Lenin St")
	a := newStore("Alpha", "Lenin St/2")
	c := newStore("Alpha", "Main Rd")
	mustWrite(t, s, func(repo Repository) error {
		for _, st := range []db.Store{b, a, c} {
			if _, err := repo.SaveStore(ctx, st); err != nil {
				return err
			}
		}
		return nil
	})

	// when
	var all, sorted, contains, exact []db.Store
	err := s.ReadTx(ctx, func(repo Repository) error {
		var err error
		if all, err = repo.ListStores(ctx); err != nil {
			return err
		}
		if sorted, err = repo.ListStoresSortedByName(ctx); err != nil {
			return err
		}
		if contains, err = repo.ListStoresByLocationContains(ctx, "Lenin St"); err != nil {
			return err
		}
		exact, err = repo.ListStoresByLocation(ctx, "Lenin St")
		return err
	})

	// then
	require.NoError(t, err)
	if diff := cmp.Diff([]db.Store{b, a, c}, all); diff != "" {
		t.Errorf("ListStores mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]db.Store{a, c, b}, sorted); diff != "" {
		t.Errorf("ListStoresSortedByName mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"Bravo", "Alpha"}, storeNames(contains))
	assert.Equal(t, []string{"Bravo"}, storeNames(exact))
}

func Test_InMemory_LocationContainsIsCaseSensitive(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()
	mustWrite(t, s, func(repo Repository) error {
		_, err := repo.SaveStore(ctx, newStore("A", "Lenin St"))
		return err
	})

	err := s.ReadTx(ctx, func(repo Repository) error {
		lower, err := repo.ListStoresByLocationContains(ctx, "lenin")
		require.NoError(t, err)
		assert.Empty(t, lower)

		everything, err := repo.ListStoresByLocationContains(ctx, "")
		require.NoError(t, err)
		assert.Len(t, everything, 1)
		return nil
	})
	require.NoError(t, err)
}

func Test_InMemory_SaveStoreOverwritesInPlace(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()
	first := newStore("First", "X")
	second := newStore("Second", "Y")
	mustWrite(t, s, func(repo Repository) error {
		if _, err := repo.SaveStore(ctx, first); err != nil {
			return err
		}
		_, err := repo.SaveStore(ctx, second)
		return err
	})

	renamed := first
	renamed.Name = "Renamed"
	mustWrite(t, s, func(repo Repository) error {
		_, err := repo.SaveStore(ctx, renamed)
		return err
	})

	err := s.ReadTx(ctx, func(repo Repository) error {
		all, err := repo.ListStores(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Renamed", "Second"}, storeNames(all))
		return nil
	})
	require.NoError(t, err)
}

func Test_InMemory_NotFound(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()

	testCases := []struct {
		name string
		run  func(repo Repository) error
		want error
	}{
		{
			name: "get store",
			run: func(repo Repository) error {
				_, err := repo.GetStore(ctx, uuid.New())
				return err
			},
			want: catalogerrors.ErrStoreNotFound,
		},
		{
			name: "delete store",
			run:  func(repo Repository) error { return repo.DeleteStore(ctx, uuid.New()) },
			want: catalogerrors.ErrStoreNotFound,
		},
		{
			name: "get product",
			run: func(repo Repository) error {
				_, err := repo.GetProduct(ctx, uuid.New())
				return err
			},
			want: catalogerrors.ErrProductNotFound,
		},
		{
			name: "delete product",
			run:  func(repo Repository) error { return repo.DeleteProduct(ctx, uuid.New()) },
			want: catalogerrors.ErrProductNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := s.WriteTx(ctx, tc.run)
			assert.ErrorIs(t, err, tc.want)
			assert.ErrorIs(t, err, catalogerrors.ErrNotFound)
		})
	}
}

func Test_InMemory_CountStoresCarryingProduct(t *testing.T) {
	// given: P linked twice to one store, Q linked to two stores, R linked only to a deleted store
	s := NewInMemoryStore()
	ctx := context.Background()
	s1, s2, gone := newStore("S1", "A"), newStore("S2", "B"), newStore("Gone", "C")
	p, q, r := newProduct("P", "1.00"), newProduct("Q", "2.00"), newProduct("R", "3.00")
	mustWrite(t, s, func(repo Repository) error {
		for _, st := range []db.Store{s1, s2, gone} {
			if _, err := repo.SaveStore(ctx, st); err != nil {
				return err
			}
		}
		for _, pr := range []db.Product{p, q, r} {
			if _, err := repo.SaveProduct(ctx, pr); err != nil {
				return err
			}
		}
		links := [][2]uuid.UUID{{s1.ID, p.ID}, {s1.ID, p.ID}, {s1.ID, q.ID}, {s2.ID, q.ID}, {gone.ID, r.ID}}
		for _, l := range links {
			if _, err := repo.SaveAssociation(ctx, db.StoreProduct{ID: uuid.New(), StoreID: l[0], ProductID: l[1]}); err != nil {
				return err
			}
		}
		return repo.DeleteStore(ctx, gone.ID)
	})

	// when
	err := s.ReadTx(ctx, func(repo Repository) error {
		for product, want := range map[uuid.UUID]int64{p.ID: 1, q.ID: 2, r.ID: 0} {
			got, err := repo.CountStoresCarryingProduct(ctx, product)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
		grouped, err := repo.CountStoresPerProduct(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[uuid.UUID]int64{p.ID: 1, q.ID: 2}, grouped)

		links, err := repo.ListAssociationsByStore(ctx, s1.ID)
		require.NoError(t, err)
		assert.Len(t, links, 3)
		assert.Equal(t, p.ID, links[0].ProductID)
		assert.Equal(t, q.ID, links[2].ProductID)
		return nil
	})

	// then
	require.NoError(t, err)
}

func Test_InMemory_WriteTxRollsBackOnError(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.WriteTx(ctx, func(repo Repository) error {
		if _, err := repo.SaveProduct(ctx, newProduct("P", "1")); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	err = s.ReadTx(ctx, func(repo Repository) error {
		products, err := repo.ListProducts(ctx)
		require.NoError(t, err)
		assert.Empty(t, products)
		return nil
	})
	require.NoError(t, err)
}

func Test_InMemory_ReadTxRejectsWrites(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()

	err := s.ReadTx(ctx, func(repo Repository) error {
		_, err := repo.SaveStore(ctx, newStore("A", "B"))
		return err
	})

	assert.ErrorIs(t, err, catalogerrors.ErrReadOnly)
}

func Test_InMemory_ReadTxSeesSnapshot(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()
	mustWrite(t, s, func(repo Repository) error {
		_, err := repo.SaveStore(ctx, newStore("Before", "X"))
		return err
	})

	err := s.ReadTx(ctx, func(repo Repository) error {
		mustWrite(t, s, func(w Repository) error {
			_, err := w.SaveStore(ctx, newStore("After", "X"))
			return err
		})
		stores, err := repo.ListStores(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Before"}, storeNames(stores))
		return nil
	})
	require.NoError(t, err)
}

func Test_InMemory_CanceledContext(t *testing.T) {
	s := NewInMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := s.WriteTx(ctx, func(Repository) error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func Test_InMemory_ConcurrentWriters(t *testing.T) {
	defer goleak.VerifyNone(t)
	s := NewInMemoryStore()
	ctx := context.Background()
	const writers = 50

	var wg sync.WaitGroup
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.WriteTx(ctx, func(repo Repository) error {
				_, err := repo.SaveProduct(ctx, newProduct("P", decimal.NewFromInt(int64(i)).String()))
				return err
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	err := s.ReadTx(ctx, func(repo Repository) error {
		products, err := repo.ListProducts(ctx)
		require.NoError(t, err)
		assert.Len(t, products, writers)
		return nil
	})
	require.NoError(t, err)
}
