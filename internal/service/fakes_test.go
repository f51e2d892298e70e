package service

import (
	"context"
	"time"

	"passvault/internal/domain"
)

// In-memory repository fakes backing the service tests.

type fakeUserRepo struct {
	users []*domain.User
}

func (f *fakeUserRepo) Create(u *domain.User) error {
	cp := *u
	f.users = append(f.users, &cp)
	return nil
}

func (f *fakeUserRepo) Count() (int64, error) { return int64(len(f.users)), nil }

func (f *fakeUserRepo) FindByID(id string) (*domain.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) List(offset, limit int, q string) ([]domain.User, int64, error) {
	out := make([]domain.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (f *fakeUserRepo) Update(u *domain.User) error {
	for i, existing := range f.users {
		if existing.ID == u.ID {
			cp := *u
			f.users[i] = &cp
			return nil
		}
	}
	return nil
}

type fakeCredRepo struct {
	creds []*domain.Credential
}

func (f *fakeCredRepo) Create(c *domain.Credential) error {
	cp := *c
	f.creds = append(f.creds, &cp)
	return nil
}

func (f *fakeCredRepo) FindByID(id string) (*domain.Credential, error) {
	for _, c := range f.creds {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeCredRepo) ListAll() ([]domain.Credential, error) {
	out := make([]domain.Credential, 0, len(f.creds))
	for _, c := range f.creds {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCredRepo) ListByOwner(ownerID string) ([]domain.Credential, error) {
	var out []domain.Credential
	for _, c := range f.creds {
		if c.OwnerID == ownerID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCredRepo) Update(c *domain.Credential) error {
	for i, existing := range f.creds {
		if existing.ID == c.ID {
			cp := *c
			f.creds[i] = &cp
			return nil
		}
	}
	return nil
}

func (f *fakeCredRepo) Delete(id string) (bool, error) {
	for i, c := range f.creds {
		if c.ID == id {
			f.creds = append(f.creds[:i], f.creds[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// fakeCache is an in-memory cache.Store. hits counts reads served from the
// map without calling load.
type fakeCache struct {
	entries map[string][]byte
	hits    int
	loads   int
}

func newFakeCache() *fakeCache { return &fakeCache{entries: map[string][]byte{}} }

func (f *fakeCache) GetOrLoad(ctx context.Context, key string, _ time.Duration, load func(context.Context) ([]byte, error)) ([]byte, error) {
	if b, ok := f.entries[key]; ok {
		f.hits++
		return b, nil
	}
	b, err := load(ctx)
	if err != nil {
		return nil, err
	}
	f.loads++
	f.entries[key] = b
	return b, nil
}

func (f *fakeCache) Invalidate(_ context.Context, keys ...string) {
	for _, k := range keys {
		delete(f.entries, k)
	}
}

// fakeEstimator returns a canned estimate so band mapping can be tested
// without the real zxcvbn.
type fakeEstimator struct {
	est StrengthEstimate
}

func (f fakeEstimator) Estimate(string) StrengthEstimate { return f.est }
