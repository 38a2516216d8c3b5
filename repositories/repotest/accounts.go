package repotest

import (
	"context"
	"strings"
	"sync"
	"time"

	"cityfix-be/models"
	"cityfix-be/repositories"
	"cityfix-be/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Users is an in-memory repositories.UserRepository.
type Users struct {
	mu    sync.Mutex
	items []*models.User
	Err   error
}

var _ repositories.UserRepository = (*Users)(nil)

func NewUsers(seed ...models.User) *Users {
	r := &Users{}
	for i := range seed {
		u := seed[i]
		if u.ID.IsZero() {
			u.ID = primitive.NewObjectID()
		}
		r.items = append(r.items, &u)
	}
	return r
}

func (r *Users) UpsertIfAbsent(_ context.Context, u *models.User) (*primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	if r.byEmail(u.Email) != nil {
		return nil, nil
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	cp := *u
	r.items = append(r.items, &cp)
	id := u.ID
	return &id, nil
}

func (r *Users) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	u := r.byEmail(email)
	if u == nil {
		return nil, utils.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *Users) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, u := range r.items {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (r *Users) List(_ context.Context, f repositories.UserFilter) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]models.User, 0)
	for _, u := range r.items {
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		if f.AccountStatus != "" && u.AccountStatus != f.AccountStatus {
			continue
		}
		if f.Subscribed != nil && u.IsSubscribed != *f.Subscribed {
			continue
		}
		if f.Search != "" && !containsFold(f.Search, u.Name, u.Email) {
			continue
		}
		out = append(out, *u)
	}
	return out, nil
}

func (r *Users) Count(ctx context.Context, f repositories.UserFilter) (int64, error) {
	list, err := r.List(ctx, f)
	return int64(len(list)), err
}

func (r *Users) Update(_ context.Context, id primitive.ObjectID, fields bson.M) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	for _, u := range r.items {
		if u.ID == id {
			apply(u, withUpdatedAt(fields))
			return 1, nil
		}
	}
	return 0, nil
}

func (r *Users) ConditionalUpdate(_ context.Context, email string, guard, fields bson.M) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	u := r.byEmail(email)
	if u == nil || !matches(toM(u), guard) {
		return 0, nil
	}
	apply(u, withUpdatedAt(fields))
	return 1, nil
}

func (r *Users) byEmail(email string) *models.User {
	for _, u := range r.items {
		if u.Email == email {
			return u
		}
	}
	return nil
}

// Staff is an in-memory repositories.StaffRepository.
type Staff struct {
	mu    sync.Mutex
	items []*models.Staff
	Err   error
}

var _ repositories.StaffRepository = (*Staff)(nil)

func NewStaff(seed ...models.Staff) *Staff {
	r := &Staff{}
	for i := range seed {
		s := seed[i]
		if s.ID.IsZero() {
			s.ID = primitive.NewObjectID()
		}
		r.items = append(r.items, &s)
	}
	return r
}

func (r *Staff) Create(_ context.Context, s *models.Staff) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return primitive.NilObjectID, r.Err
	}
	for _, existing := range r.items {
		if existing.Email == s.Email {
			return primitive.NilObjectID, utils.ErrAlreadyExists
		}
	}
	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
	}
	cp := *s
	r.items = append(r.items, &cp)
	return s.ID, nil
}

func (r *Staff) FindByID(_ context.Context, id primitive.ObjectID) (*models.Staff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, s := range r.items {
		if s.ID == id {
			cp := *s
			return &cp, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (r *Staff) FindByEmail(_ context.Context, email string) (*models.Staff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, s := range r.items {
		if s.Email == email {
			cp := *s
			return &cp, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (r *Staff) List(_ context.Context, f repositories.StaffFilter) ([]models.Staff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]models.Staff, 0)
	for _, s := range r.items {
		if f.District != "" && s.District != f.District {
			continue
		}
		if f.Region != "" && s.Region != f.Region {
			continue
		}
		if f.Category != "" && s.Category != f.Category {
			continue
		}
		if f.Status != "" && s.Status != f.Status {
			continue
		}
		if f.Search != "" && !containsFold(f.Search, s.Name, s.Email) {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (r *Staff) Count(ctx context.Context, f repositories.StaffFilter) (int64, error) {
	list, err := r.List(ctx, f)
	return int64(len(list)), err
}

func (r *Staff) Update(_ context.Context, id primitive.ObjectID, fields bson.M) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	for _, s := range r.items {
		if s.ID == id {
			apply(s, withUpdatedAt(fields))
			return 1, nil
		}
	}
	return 0, nil
}

func (r *Staff) Delete(_ context.Context, id primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	for idx, s := range r.items {
		if s.ID == id {
			r.items = append(r.items[:idx], r.items[idx+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func withUpdatedAt(fields bson.M) bson.M {
	set := bson.M{"updatedAt": time.Now()}
	for k, v := range fields {
		set[k] = v
	}
	return set
}

func containsFold(needle string, fields ...string) bool {
	needle = strings.ToLower(needle)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}
