package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"

	"product-catalog/internal/data/entity"
	"product-catalog/internal/data/repository"
	"product-catalog/pkg/utils"

	"github.com/google/uuid"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func testConfig() *utils.Config {
	return &utils.Config{
		JWT: utils.JWTConfig{
			Secret:                 testSecret,
			AccessTokenExpiration:  3600000,
			RefreshTokenExpiration: 604800000,
		},
	}
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (f *fakeUserRepo) add(email, password string, role entity.UserRole) *entity.User {
	hash, _ := utils.HashPassword(password)
	u := &entity.User{ID: uuid.New(), Email: email, PasswordHash: hash, Role: role}
	f.users[email] = u
	return u
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.Email] = user
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[email], nil
}

func (f *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.users[email]
	return ok, nil
}

type fakeRefreshTokenRepo struct {
	mu     sync.Mutex
	tokens map[uuid.UUID]*entity.RefreshToken
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{tokens: make(map[uuid.UUID]*entity.RefreshToken)}
}

func (f *fakeRefreshTokenRepo) Replace(_ context.Context, token *entity.RefreshToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, t := range f.tokens {
		if t.Email == token.Email {
			delete(f.tokens, id)
		}
	}
	f.tokens[token.ID] = token
	return nil
}

func (f *fakeRefreshTokenRepo) FindByToken(_ context.Context, value string) (*entity.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tokens {
		if t.Token == value {
			return t, nil
		}
	}
	return nil, nil
}

func (f *fakeRefreshTokenRepo) FindByEmail(_ context.Context, email string) (*entity.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tokens {
		if t.Email == email {
			return t, nil
		}
	}
	return nil, nil
}

func (f *fakeRefreshTokenRepo) ExistsByToken(ctx context.Context, value string) (bool, error) {
	t, _ := f.FindByToken(ctx, value)
	return t != nil, nil
}

func (f *fakeRefreshTokenRepo) DeleteByID(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tokens, id)
	return nil
}

func (f *fakeRefreshTokenRepo) DeleteByEmail(_ context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, t := range f.tokens {
		if t.Email == email {
			delete(f.tokens, id)
		}
	}
	return nil
}

func (f *fakeRefreshTokenRepo) countFor(email string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, t := range f.tokens {
		if t.Email == email {
			n++
		}
	}
	return n
}

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]*entity.Product
	// options is shared with fakeOptionRepo so deletes cascade
	options *fakeOptionRepo
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*entity.Product)}
}

func (f *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) matching(filter repository.ProductFilter) []*entity.Product {
	var out []*entity.Product
	for _, p := range f.products {
		if filter.NameContains != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.NameContains)) {
			continue
		}
		if filter.OwnerID != nil && p.UserID != *filter.OwnerID {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out
}

func (f *fakeProductRepo) FindAll(_ context.Context, q repository.ProductQuery) ([]*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.matching(q.Filter)
	sort.Slice(out, func(i, j int) bool {
		var less bool
		switch q.SortField {
		case "name":
			less = out[i].Name < out[j].Name
		case "price":
			less = out[i].Price < out[j].Price
		default:
			less = out[i].ID.String() < out[j].ID.String()
		}
		if q.Desc {
			return !less
		}
		return less
	})
	if q.Offset >= len(out) {
		return []*entity.Product{}, nil
	}
	end := q.Offset + q.Limit
	if end > len(out) {
		end = len(out)
	}
	return out[q.Offset:end], nil
}

func (f *fakeProductRepo) Count(_ context.Context, filter repository.ProductFilter) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.matching(filter))), nil
}

func (f *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[p.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	if _, ok := f.products[id]; !ok {
		f.mu.Unlock()
		return repository.ErrNotFound
	}
	delete(f.products, id)
	f.mu.Unlock()

	if f.options != nil {
		f.options.deleteByProduct(id)
	}
	return nil
}

type fakeOptionRepo struct {
	mu      sync.Mutex
	options map[uuid.UUID]*entity.ProductOption
	creates int
}

func newFakeOptionRepo() *fakeOptionRepo {
	return &fakeOptionRepo{options: make(map[uuid.UUID]*entity.ProductOption)}
}

func cloneOption(o *entity.ProductOption) *entity.ProductOption {
	cp := *o
	cp.Values = append([]*entity.OptionValue(nil), o.Values...)
	return &cp
}

func (f *fakeOptionRepo) Create(_ context.Context, o *entity.ProductOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, existing := range f.options {
		if existing.ProductID == o.ProductID {
			n++
		}
	}
	if n >= entity.MaxOptionsPerProduct {
		return repository.ErrOptionLimitReached
	}
	f.creates++
	f.options[o.ID] = cloneOption(o)
	return nil
}

func (f *fakeOptionRepo) FindByProductID(_ context.Context, productID uuid.UUID) ([]*entity.ProductOption, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.ProductOption, 0)
	for _, o := range f.options {
		if o.ProductID == productID {
			out = append(out, cloneOption(o))
		}
	}
	return out, nil
}

func (f *fakeOptionRepo) FindByIDAndProductID(_ context.Context, id, productID uuid.UUID) (*entity.ProductOption, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.options[id]
	if !ok || o.ProductID != productID {
		return nil, nil
	}
	return cloneOption(o), nil
}

func (f *fakeOptionRepo) CountByProductID(ctx context.Context, productID uuid.UUID) (int, error) {
	opts, _ := f.FindByProductID(ctx, productID)
	return len(opts), nil
}

func (f *fakeOptionRepo) Update(_ context.Context, o *entity.ProductOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.options[o.ID]; !ok {
		return repository.ErrNotFound
	}
	f.options[o.ID] = cloneOption(o)
	return nil
}

func (f *fakeOptionRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.options[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.options, id)
	return nil
}

func (f *fakeOptionRepo) deleteByProduct(productID uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, o := range f.options {
		if o.ProductID == productID {
			delete(f.options, id)
		}
	}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []string
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, routingKey string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, routingKey)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }
