package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubseats/clubseats-api/internal/config"
	"github.com/clubseats/clubseats-api/internal/domain"
	"github.com/clubseats/clubseats-api/internal/repository"
)

// fakeStore backs the admission tests with an in-memory world whose Admit
// and Transition are serialized by a mutex, mirroring the per-category
// row lock the real store takes.
type fakeStore struct {
	mu sync.Mutex

	clubs        map[uint]bool
	events       map[uint]domain.Event
	categories   map[uint]domain.Category
	reservations map[uint]domain.Reservation
	memberships  map[uint]map[uint]domain.Role

	nextID uint
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		clubs:        make(map[uint]bool),
		events:       make(map[uint]domain.Event),
		categories:   make(map[uint]domain.Category),
		reservations: make(map[uint]domain.Reservation),
		memberships:  make(map[uint]map[uint]domain.Role),
	}
}

func (f *fakeStore) addMember(userID, clubID uint, role domain.Role) {
	if f.memberships[userID] == nil {
		f.memberships[userID] = make(map[uint]domain.Role)
	}
	f.memberships[userID][clubID] = role
}

func (f *fakeStore) FindMembership(_ context.Context, userID, clubID uint) (domain.Membership, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	role, ok := f.memberships[userID][clubID]

	return domain.Membership{Affiliated: ok, Role: role}, nil
}

func (f *fakeStore) FindByID(_ context.Context, id uint) (domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	event, ok := f.events[id]
	if !ok {
		return domain.Event{}, repository.ErrEventNotFound
	}

	return event, nil
}

func (f *fakeStore) FindCategoryByID(_ context.Context, id uint) (domain.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	category, ok := f.categories[id]
	if !ok {
		return domain.Category{}, repository.ErrCategoryNotFound
	}

	return category, nil
}

func (f *fakeStore) confirmedInCategoryLocked(categoryID uint) int {
	n := 0
	for _, r := range f.reservations {
		if r.CategoryID == categoryID && r.Status == domain.ReservationConfirmed {
			n++
		}
	}

	return n
}

func (f *fakeStore) Admit(_ context.Context, userID, categoryID uint, now time.Time, allowDuplicates bool) (domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	category, ok := f.categories[categoryID]
	if !ok {
		return domain.Reservation{}, repository.ErrCategoryNotFound
	}
	event := f.events[category.EventID]

	if !event.Active || !f.clubs[event.ClubID] || !now.Before(event.EndsAt) {
		return domain.Reservation{}, repository.ErrEventClosed
	}

	if f.confirmedInCategoryLocked(categoryID) >= category.Capacity {
		return domain.Reservation{}, repository.ErrCategoryFull
	}

	if !allowDuplicates {
		for _, r := range f.reservations {
			if r.UserID == userID && r.CategoryID == categoryID && r.Status == domain.ReservationConfirmed {
				return domain.Reservation{}, repository.ErrDuplicateReservation
			}
		}
	}

	f.nextID++
	reservation := domain.Reservation{
		ID:         f.nextID,
		UserID:     userID,
		EventID:    event.ID,
		CategoryID: categoryID,
		ClubID:     event.ClubID,
		Status:     domain.ReservationConfirmed,
		Token:      uuid.NewString(),
		CreatedAt:  now,
	}
	f.reservations[reservation.ID] = reservation

	return reservation, nil
}

func (f *fakeStore) Transition(_ context.Context, id uint, to domain.ReservationStatus) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	reservation, ok := f.reservations[id]
	if !ok || reservation.Status != domain.ReservationConfirmed {
		return false, nil
	}

	reservation.Status = to
	f.reservations[id] = reservation

	return true, nil
}

func (f *fakeStore) FindReservationByID(_ context.Context, id uint) (domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	reservation, ok := f.reservations[id]
	if !ok {
		return domain.Reservation{}, repository.ErrReservationNotFound
	}

	return reservation, nil
}

func (f *fakeStore) FindByToken(_ context.Context, token string) (domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, r := range f.reservations {
		if r.Token == token {
			return r, nil
		}
	}

	return domain.Reservation{}, repository.ErrTokenNotFound
}

func (f *fakeStore) FindByUserID(_ context.Context, userID uint) ([]domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []domain.Reservation
	for _, r := range f.reservations {
		if r.UserID == userID {
			out = append(out, r)
		}
	}

	return out, nil
}

func (f *fakeStore) SetCategoryCapacity(_ context.Context, categoryID uint, capacity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	category, ok := f.categories[categoryID]
	if !ok {
		return repository.ErrCategoryNotFound
	}
	if f.confirmedInCategoryLocked(categoryID) > capacity {
		return repository.ErrCapacityBelowOccupancy
	}

	category.Capacity = capacity
	f.categories[categoryID] = category

	return nil
}

func (f *fakeStore) DeleteCategory(_ context.Context, categoryID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.categories[categoryID]; !ok {
		return repository.ErrCategoryNotFound
	}
	if f.confirmedInCategoryLocked(categoryID) > 0 {
		return repository.ErrHasActiveReservations
	}

	delete(f.categories, categoryID)

	return nil
}

func (f *fakeStore) DeleteEvent(_ context.Context, eventID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.events[eventID]; !ok {
		return repository.ErrEventNotFound
	}
	for _, c := range f.categories {
		if c.EventID == eventID && f.confirmedInCategoryLocked(c.ID) > 0 {
			return repository.ErrHasActiveReservations
		}
	}

	for id, c := range f.categories {
		if c.EventID == eventID {
			delete(f.categories, id)
		}
	}
	delete(f.events, eventID)

	return nil
}

// reservationStore adapts fakeStore to the reservation repository surface,
// which names its lookup FindByID like the event one does.
type reservationStore struct {
	*fakeStore
}

func (s reservationStore) FindByID(ctx context.Context, id uint) (domain.Reservation, error) {
	return s.FindReservationByID(ctx, id)
}

type admissionFixture struct {
	store *fakeStore
	svc   *AdmissionService
}

// newAdmissionFixture builds one active club (1) with one open event (1)
// holding category 1 of the given capacity.
func newAdmissionFixture(t *testing.T, capacity int) *admissionFixture {
	t.Helper()

	store := newFakeStore()
	store.clubs[1] = true
	store.events[1] = domain.Event{
		ID:       1,
		ClubID:   1,
		Name:     "season opener",
		StartsAt: time.Now().Add(-time.Hour),
		EndsAt:   time.Now().Add(time.Hour),
		Active:   true,
	}
	store.categories[1] = domain.Category{ID: 1, EventID: 1, Name: "front row", Capacity: capacity}

	svc := NewAdmissionService(reservationStore{store}, store, NewAuthzService(store), config.ReservationsConfig{})

	return &admissionFixture{store: store, svc: svc}
}

func member(id uint) domain.Principal {
	return domain.Principal{ID: id, Role: domain.RoleMember, Enabled: true}
}

func manager(id, clubID uint) domain.Principal {
	return domain.Principal{ID: id, Role: domain.RoleManager, Enabled: true, ManagedClubID: clubID}
}

func TestAdmissionService_CreateReservation(t *testing.T) {
	ctx := context.Background()

	t.Run("admits a member and issues a token", func(t *testing.T) {
		f := newAdmissionFixture(t, 5)
		f.store.addMember(10, 1, domain.RoleMember)

		reservation, err := f.svc.CreateReservation(ctx, member(10), 1, 1)

		require.NoError(t, err)
		assert.Equal(t, domain.ReservationConfirmed, reservation.Status)
		assert.Equal(t, uint(1), reservation.ClubID)
		assert.NotEmpty(t, reservation.Token)
	})

	t.Run("rejects a non-member", func(t *testing.T) {
		f := newAdmissionFixture(t, 5)

		_, err := f.svc.CreateReservation(ctx, member(10), 1, 1)

		assert.ErrorIs(t, err, domain.ErrAccessDenied)
	})

	t.Run("rejects an unresolved principal", func(t *testing.T) {
		f := newAdmissionFixture(t, 5)

		_, err := f.svc.CreateReservation(ctx, domain.Principal{}, 1, 1)

		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("rejects unknown event and category", func(t *testing.T) {
		f := newAdmissionFixture(t, 5)
		f.store.addMember(10, 1, domain.RoleMember)

		_, err := f.svc.CreateReservation(ctx, member(10), 99, 1)
		assert.ErrorIs(t, err, ErrEventNotFound)

		_, err = f.svc.CreateReservation(ctx, member(10), 1, 99)
		assert.ErrorIs(t, err, ErrCategoryNotFound)
	})

	t.Run("rejects a category belonging to another event", func(t *testing.T) {
		f := newAdmissionFixture(t, 5)
		f.store.addMember(10, 1, domain.RoleMember)
		f.store.events[2] = domain.Event{
			ID:     2,
			ClubID: 1,
			EndsAt: time.Now().Add(time.Hour),
			Active: true,
		}
		f.store.categories[2] = domain.Category{ID: 2, EventID: 2, Capacity: 5}

		_, err := f.svc.CreateReservation(ctx, member(10), 1, 2)

		assert.ErrorIs(t, err, ErrCategoryNotFound)
	})

	t.Run("rejects closed events", func(t *testing.T) {
		for name, mutate := range map[string]func(f *admissionFixture){
			"event inactive": func(f *admissionFixture) {
				e := f.store.events[1]
				e.Active = false
				f.store.events[1] = e
			},
			"event ended": func(f *admissionFixture) {
				e := f.store.events[1]
				e.EndsAt = time.Now().Add(-time.Minute)
				f.store.events[1] = e
			},
			"club inactive": func(f *admissionFixture) {
				f.store.clubs[1] = false
			},
		} {
			t.Run(name, func(t *testing.T) {
				f := newAdmissionFixture(t, 5)
				f.store.addMember(10, 1, domain.RoleMember)
				mutate(f)

				_, err := f.svc.CreateReservation(ctx, member(10), 1, 1)

				assert.ErrorIs(t, err, ErrEventClosed)
			})
		}
	})

	t.Run("rejects a second confirmed reservation by default", func(t *testing.T) {
		f := newAdmissionFixture(t, 5)
		f.store.addMember(10, 1, domain.RoleMember)

		_, err := f.svc.CreateReservation(ctx, member(10), 1, 1)
		require.NoError(t, err)

		_, err = f.svc.CreateReservation(ctx, member(10), 1, 1)
		assert.ErrorIs(t, err, ErrDuplicateReservation)
	})

	t.Run("permits duplicates when the policy allows them", func(t *testing.T) {
		f := newAdmissionFixture(t, 5)
		f.store.addMember(10, 1, domain.RoleMember)
		f.svc.conf.AllowDuplicates = true

		_, err := f.svc.CreateReservation(ctx, member(10), 1, 1)
		require.NoError(t, err)

		_, err = f.svc.CreateReservation(ctx, member(10), 1, 1)
		assert.NoError(t, err)
	})

	t.Run("allows booking again after a cancellation", func(t *testing.T) {
		f := newAdmissionFixture(t, 5)
		f.store.addMember(10, 1, domain.RoleMember)

		first, err := f.svc.CreateReservation(ctx, member(10), 1, 1)
		require.NoError(t, err)
		require.NoError(t, f.svc.CancelReservation(ctx, member(10), first.ID))

		_, err = f.svc.CreateReservation(ctx, member(10), 1, 1)
		assert.NoError(t, err)
	})
}

func TestAdmissionService_CreateReservation_NeverOversellsUnderContention(t *testing.T) {
	ctx := context.Background()

	const capacity = 5
	f := newAdmissionFixture(t, capacity)

	attempts := 2 * capacity
	for i := 1; i <= attempts; i++ {
		f.store.addMember(uint(i), 1, domain.RoleMember)
	}

	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.CreateReservation(ctx, member(uint(i+1)), 1, 1)
		}(i)
	}
	wg.Wait()

	admitted := 0
	for _, err := range errs {
		if err == nil {
			admitted++
		} else {
			assert.ErrorIs(t, err, ErrCategoryFull)
		}
	}
	assert.Equal(t, capacity, admitted)
}

func TestAdmissionService_CancelReservation(t *testing.T) {
	ctx := context.Background()

	t.Run("releases the capacity slot", func(t *testing.T) {
		f := newAdmissionFixture(t, 1)
		f.store.addMember(10, 1, domain.RoleMember)
		f.store.addMember(11, 1, domain.RoleMember)

		reservation, err := f.svc.CreateReservation(ctx, member(10), 1, 1)
		require.NoError(t, err)

		_, err = f.svc.CreateReservation(ctx, member(11), 1, 1)
		require.ErrorIs(t, err, ErrCategoryFull)

		require.NoError(t, f.svc.CancelReservation(ctx, member(10), reservation.ID))

		_, err = f.svc.CreateReservation(ctx, member(11), 1, 1)
		assert.NoError(t, err)
	})

	t.Run("fails on a reservation already cancelled", func(t *testing.T) {
		f := newAdmissionFixture(t, 1)
		f.store.addMember(10, 1, domain.RoleMember)

		reservation, err := f.svc.CreateReservation(ctx, member(10), 1, 1)
		require.NoError(t, err)
		require.NoError(t, f.svc.CancelReservation(ctx, member(10), reservation.ID))

		err = f.svc.CancelReservation(ctx, member(10), reservation.ID)
		assert.ErrorIs(t, err, ErrAlreadyTerminal)
	})

	t.Run("fails on a reservation already used", func(t *testing.T) {
		f := newAdmissionFixture(t, 1)
		f.store.addMember(10, 1, domain.RoleMember)
		f.store.addMember(20, 1, domain.RoleManager)

		reservation, err := f.svc.CreateReservation(ctx, member(10), 1, 1)
		require.NoError(t, err)
		require.NoError(t, f.svc.CheckIn(ctx, manager(20, 1), reservation.Token))

		err = f.svc.CancelReservation(ctx, member(10), reservation.ID)
		assert.ErrorIs(t, err, ErrAlreadyTerminal)
	})

	t.Run("denies a stranger the same way as a missing reservation", func(t *testing.T) {
		f := newAdmissionFixture(t, 1)
		f.store.addMember(10, 1, domain.RoleMember)
		f.store.addMember(11, 1, domain.RoleMember)

		reservation, err := f.svc.CreateReservation(ctx, member(10), 1, 1)
		require.NoError(t, err)

		strangerErr := f.svc.CancelReservation(ctx, member(11), reservation.ID)
		missingErr := f.svc.CancelReservation(ctx, member(11), 9999)

		require.ErrorIs(t, strangerErr, domain.ErrAccessDenied)
		require.ErrorIs(t, missingErr, domain.ErrAccessDenied)
		assert.Equal(t, strangerErr.Error(), missingErr.Error())
	})

	t.Run("lets a manager of the organizing club cancel", func(t *testing.T) {
		f := newAdmissionFixture(t, 1)
		f.store.addMember(10, 1, domain.RoleMember)
		f.store.addMember(20, 1, domain.RoleManager)

		reservation, err := f.svc.CreateReservation(ctx, member(10), 1, 1)
		require.NoError(t, err)

		assert.NoError(t, f.svc.CancelReservation(ctx, manager(20, 1), reservation.ID))
	})
}

func TestAdmissionService_CheckIn(t *testing.T) {
	ctx := context.Background()

	t.Run("honors a token exactly once", func(t *testing.T) {
		f := newAdmissionFixture(t, 1)
		f.store.addMember(10, 1, domain.RoleMember)
		f.store.addMember(20, 1, domain.RoleManager)

		reservation, err := f.svc.CreateReservation(ctx, member(10), 1, 1)
		require.NoError(t, err)

		require.NoError(t, f.svc.CheckIn(ctx, manager(20, 1), reservation.Token))

		err = f.svc.CheckIn(ctx, manager(20, 1), reservation.Token)
		assert.ErrorIs(t, err, ErrAlreadyUsed)
		assert.ErrorIs(t, err, ErrAlreadyTerminal)
	})

	t.Run("reports a cancelled ticket distinctly", func(t *testing.T) {
		f := newAdmissionFixture(t, 1)
		f.store.addMember(10, 1, domain.RoleMember)
		f.store.addMember(20, 1, domain.RoleManager)

		reservation, err := f.svc.CreateReservation(ctx, member(10), 1, 1)
		require.NoError(t, err)
		require.NoError(t, f.svc.CancelReservation(ctx, member(10), reservation.ID))

		err = f.svc.CheckIn(ctx, manager(20, 1), reservation.Token)
		assert.ErrorIs(t, err, ErrAlreadyCancelled)
		assert.ErrorIs(t, err, ErrAlreadyTerminal)
	})

	t.Run("rejects an unknown token", func(t *testing.T) {
		f := newAdmissionFixture(t, 1)
		f.store.addMember(20, 1, domain.RoleManager)

		err := f.svc.CheckIn(ctx, manager(20, 1), uuid.NewString())
		assert.ErrorIs(t, err, ErrTokenNotFound)
	})

	t.Run("denies plain members", func(t *testing.T) {
		f := newAdmissionFixture(t, 1)
		f.store.addMember(10, 1, domain.RoleMember)

		reservation, err := f.svc.CreateReservation(ctx, member(10), 1, 1)
		require.NoError(t, err)

		err = f.svc.CheckIn(ctx, member(10), reservation.Token)
		assert.ErrorIs(t, err, domain.ErrAccessDenied)
	})

	t.Run("denies managers of another club", func(t *testing.T) {
		f := newAdmissionFixture(t, 1)
		f.store.clubs[2] = true
		f.store.addMember(10, 1, domain.RoleMember)
		f.store.addMember(30, 2, domain.RoleManager)

		reservation, err := f.svc.CreateReservation(ctx, member(10), 1, 1)
		require.NoError(t, err)

		err = f.svc.CheckIn(ctx, manager(30, 2), reservation.Token)
		assert.ErrorIs(t, err, domain.ErrAccessDenied)
	})

	t.Run("exactly one concurrent check-in wins", func(t *testing.T) {
		f := newAdmissionFixture(t, 1)
		f.store.addMember(10, 1, domain.RoleMember)
		f.store.addMember(20, 1, domain.RoleManager)

		reservation, err := f.svc.CreateReservation(ctx, member(10), 1, 1)
		require.NoError(t, err)

		const attempts = 8
		errs := make([]error, attempts)
		var wg sync.WaitGroup
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = f.svc.CheckIn(ctx, manager(20, 1), reservation.Token)
			}(i)
		}
		wg.Wait()

		succeeded := 0
		for _, err := range errs {
			if err == nil {
				succeeded++
			} else {
				assert.ErrorIs(t, err, ErrAlreadyTerminal)
			}
		}
		assert.Equal(t, 1, succeeded)
	})
}

// TestAdmissionService_FullLifecycle walks a capacity-2 category through
// fill, rejection, cancellation, late admission and check-in.
func TestAdmissionService_FullLifecycle(t *testing.T) {
	ctx := context.Background()

	f := newAdmissionFixture(t, 2)
	f.store.addMember(1, 1, domain.RoleMember)
	f.store.addMember(2, 1, domain.RoleMember)
	f.store.addMember(3, 1, domain.RoleMember)
	f.store.addMember(9, 1, domain.RoleManager)

	first, err := f.svc.CreateReservation(ctx, member(1), 1, 1)
	require.NoError(t, err)
	second, err := f.svc.CreateReservation(ctx, member(2), 1, 1)
	require.NoError(t, err)

	_, err = f.svc.CreateReservation(ctx, member(3), 1, 1)
	require.ErrorIs(t, err, ErrCategoryFull)

	require.NoError(t, f.svc.CancelReservation(ctx, member(1), first.ID))

	third, err := f.svc.CreateReservation(ctx, member(3), 1, 1)
	require.NoError(t, err)

	require.NoError(t, f.svc.CheckIn(ctx, manager(9, 1), second.Token))
	require.NoError(t, f.svc.CheckIn(ctx, manager(9, 1), third.Token))

	err = f.svc.CheckIn(ctx, manager(9, 1), first.Token)
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
}

func TestAdmissionService_SetCategoryCapacity(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects negative capacity", func(t *testing.T) {
		f := newAdmissionFixture(t, 2)
		f.store.addMember(9, 1, domain.RoleManager)

		err := f.svc.SetCategoryCapacity(ctx, manager(9, 1), 1, -1)
		assert.ErrorIs(t, err, ErrInvalidCapacity)
	})

	t.Run("refuses to drop below confirmed occupancy", func(t *testing.T) {
		f := newAdmissionFixture(t, 2)
		f.store.addMember(1, 1, domain.RoleMember)
		f.store.addMember(2, 1, domain.RoleMember)
		f.store.addMember(9, 1, domain.RoleManager)

		_, err := f.svc.CreateReservation(ctx, member(1), 1, 1)
		require.NoError(t, err)
		_, err = f.svc.CreateReservation(ctx, member(2), 1, 1)
		require.NoError(t, err)

		err = f.svc.SetCategoryCapacity(ctx, manager(9, 1), 1, 1)
		assert.ErrorIs(t, err, ErrCapacityBelowOccupancy)
	})

	t.Run("raising capacity admits new reservations", func(t *testing.T) {
		f := newAdmissionFixture(t, 1)
		f.store.addMember(1, 1, domain.RoleMember)
		f.store.addMember(2, 1, domain.RoleMember)
		f.store.addMember(9, 1, domain.RoleManager)

		_, err := f.svc.CreateReservation(ctx, member(1), 1, 1)
		require.NoError(t, err)
		_, err = f.svc.CreateReservation(ctx, member(2), 1, 1)
		require.ErrorIs(t, err, ErrCategoryFull)

		require.NoError(t, f.svc.SetCategoryCapacity(ctx, manager(9, 1), 1, 2))

		_, err = f.svc.CreateReservation(ctx, member(2), 1, 1)
		assert.NoError(t, err)
	})

	t.Run("denies members", func(t *testing.T) {
		f := newAdmissionFixture(t, 2)
		f.store.addMember(1, 1, domain.RoleMember)

		err := f.svc.SetCategoryCapacity(ctx, member(1), 1, 3)
		assert.ErrorIs(t, err, domain.ErrAccessDenied)
	})
}

func TestAdmissionService_GuardedDeletes(t *testing.T) {
	ctx := context.Background()

	admin := func(id, clubID uint) domain.Principal {
		return domain.Principal{ID: id, Role: domain.RoleAdmin, Enabled: true, ManagedClubID: clubID}
	}

	t.Run("category with confirmed reservations stays", func(t *testing.T) {
		f := newAdmissionFixture(t, 2)
		f.store.addMember(1, 1, domain.RoleMember)
		f.store.addMember(9, 1, domain.RoleAdmin)

		_, err := f.svc.CreateReservation(ctx, member(1), 1, 1)
		require.NoError(t, err)

		err = f.svc.DeleteCategory(ctx, admin(9, 1), 1)
		assert.ErrorIs(t, err, ErrHasActiveReservations)
	})

	t.Run("vacated category can be deleted", func(t *testing.T) {
		f := newAdmissionFixture(t, 2)
		f.store.addMember(1, 1, domain.RoleMember)
		f.store.addMember(9, 1, domain.RoleAdmin)

		reservation, err := f.svc.CreateReservation(ctx, member(1), 1, 1)
		require.NoError(t, err)
		require.NoError(t, f.svc.CancelReservation(ctx, member(1), reservation.ID))

		assert.NoError(t, f.svc.DeleteCategory(ctx, admin(9, 1), 1))
	})

	t.Run("event with confirmed reservations stays", func(t *testing.T) {
		f := newAdmissionFixture(t, 2)
		f.store.addMember(1, 1, domain.RoleMember)
		f.store.addMember(9, 1, domain.RoleAdmin)

		_, err := f.svc.CreateReservation(ctx, member(1), 1, 1)
		require.NoError(t, err)

		err = f.svc.DeleteEvent(ctx, admin(9, 1), 1)
		assert.ErrorIs(t, err, ErrHasActiveReservations)
	})

	t.Run("managers cannot delete", func(t *testing.T) {
		f := newAdmissionFixture(t, 2)
		f.store.addMember(9, 1, domain.RoleManager)

		err := f.svc.DeleteEvent(ctx, manager(9, 1), 1)
		assert.ErrorIs(t, err, domain.ErrAccessDenied)
	})
}

func TestAdmissionService_GetReservation(t *testing.T) {
	ctx := context.Background()

	f := newAdmissionFixture(t, 2)
	f.store.addMember(1, 1, domain.RoleMember)
	f.store.addMember(2, 1, domain.RoleMember)
	f.store.addMember(9, 1, domain.RoleManager)

	reservation, err := f.svc.CreateReservation(ctx, member(1), 1, 1)
	require.NoError(t, err)

	t.Run("owner reads it back", func(t *testing.T) {
		got, err := f.svc.GetReservation(ctx, member(1), reservation.ID)
		require.NoError(t, err)
		assert.Equal(t, reservation.ID, got.ID)
	})

	t.Run("manager of the organizing club reads it", func(t *testing.T) {
		_, err := f.svc.GetReservation(ctx, manager(9, 1), reservation.ID)
		assert.NoError(t, err)
	})

	t.Run("stranger and missing look identical", func(t *testing.T) {
		_, strangerErr := f.svc.GetReservation(ctx, member(2), reservation.ID)
		_, missingErr := f.svc.GetReservation(ctx, member(2), 9999)

		require.ErrorIs(t, strangerErr, domain.ErrAccessDenied)
		require.ErrorIs(t, missingErr, domain.ErrAccessDenied)
		assert.Equal(t, strangerErr.Error(), missingErr.Error())
	})
}

func TestAdmissionService_ListOwnReservations(t *testing.T) {
	ctx := context.Background()

	f := newAdmissionFixture(t, 5)
	f.store.addMember(1, 1, domain.RoleMember)
	f.store.addMember(2, 1, domain.RoleMember)

	mine, err := f.svc.CreateReservation(ctx, member(1), 1, 1)
	require.NoError(t, err)
	_, err = f.svc.CreateReservation(ctx, member(2), 1, 1)
	require.NoError(t, err)

	reservations, err := f.svc.ListOwnReservations(ctx, member(1))
	require.NoError(t, err)
	require.Len(t, reservations, 1)
	assert.Equal(t, mine.ID, reservations[0].ID)
}
