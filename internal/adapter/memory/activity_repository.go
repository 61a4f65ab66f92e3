package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/pscheid92/mergington/internal/domain"
)

type ActivityRepo struct {
	mu         sync.RWMutex
	order      []string
	activities map[string]*domain.Activity
}

// NewActivityRepo takes ownership of a copy of seed.
func NewActivityRepo(seed domain.Catalog) *ActivityRepo {
	r := &ActivityRepo{
		activities: make(map[string]*domain.Activity, seed.Len()),
	}
	for _, name := range seed.Names() {
		a, _ := seed.Get(name)
		r.order = append(r.order, name)
		r.activities[name] = &a
	}
	return r
}

func (r *ActivityRepo) List(_ context.Context) domain.Catalog {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := make([]domain.Activity, 0, len(r.order))
	for _, name := range r.order {
		snapshot = append(snapshot, *r.activities[name])
	}
	return domain.NewCatalog(snapshot)
}

func (r *ActivityRepo) Enroll(_ context.Context, name, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	activity, ok := r.activities[name]
	if !ok {
		return domain.ErrActivityNotFound
	}
	if activity.Has(email) {
		return domain.ErrAlreadyEnrolled
	}

	activity.Participants = append(activity.Participants, email)
	return nil
}

func (r *ActivityRepo) Unenroll(_ context.Context, name, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	activity, ok := r.activities[name]
	if !ok {
		return domain.ErrActivityNotFound
	}

	i := slices.Index(activity.Participants, email)
	if i < 0 {
		return domain.ErrNotEnrolled
	}

	activity.Participants = slices.Delete(activity.Participants, i, i+1)
	return nil
}
