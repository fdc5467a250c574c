package catalog

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ThanathornKKU/catalog-service/internal/domain"
)

// ---- in-memory fakes for the domain ports ----

// journal records cross-fake call order so tests can assert the
// store -> invalidate -> notify sequencing.
type journal struct {
	mu    sync.Mutex
	calls []string
}

func (j *journal) add(s string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.calls = append(j.calls, s)
}

func (j *journal) snapshot() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]string(nil), j.calls...)
}

type fakeRepo struct {
	mu   sync.Mutex
	byID map[domain.ProductID]domain.Product
	j    *journal

	findAllCalls  int
	findByIDCalls int
	insertCalls   int

	failAll bool // every call errors, simulating an unreachable store
}

func newFakeRepo(j *journal) *fakeRepo {
	return &fakeRepo{byID: make(map[domain.ProductID]domain.Product), j: j}
}

var errStoreDown = errors.New("store down")

func (r *fakeRepo) Close()                     {}
func (r *fakeRepo) Ping(context.Context) error { return nil }

func (r *fakeRepo) FindAll(context.Context) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findAllCalls++
	r.j.add("repo.FindAll")
	if r.failAll {
		return nil, errStoreDown
	}
	out := make([]domain.Product, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeRepo) FindByID(_ context.Context, id domain.ProductID) (domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findByIDCalls++
	r.j.add("repo.FindByID")
	if r.failAll {
		return domain.Product{}, errStoreDown
	}
	p, ok := r.byID[id]
	if !ok {
		return domain.Product{}, domain.ErrNotFound
	}
	return p, nil
}

func (r *fakeRepo) FindByName(_ context.Context, name string, exclude *domain.ProductID) (domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.j.add("repo.FindByName")
	if r.failAll {
		return domain.Product{}, errStoreDown
	}
	for _, p := range r.byID {
		if p.Name == name && (exclude == nil || p.ID != *exclude) {
			return p, nil
		}
	}
	return domain.Product{}, domain.ErrNotFound
}

func (r *fakeRepo) Insert(_ context.Context, in domain.CreateProductInput) (domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.insertCalls++
	r.j.add("repo.Insert")
	if r.failAll {
		return domain.Product{}, errStoreDown
	}
	for _, p := range r.byID {
		if p.Name == in.Name {
			return domain.Product{}, domain.ErrConflict
		}
	}
	now := time.Now().UTC()
	p := domain.Product{
		ID:          uuid.New(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.byID[p.ID] = p
	return p, nil
}

func (r *fakeRepo) UpdateByID(_ context.Context, id domain.ProductID, in domain.UpdateProductInput) (domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.j.add("repo.UpdateByID")
	if r.failAll {
		return domain.Product{}, errStoreDown
	}
	p, ok := r.byID[id]
	if !ok {
		return domain.Product{}, domain.ErrNotFound
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	p.UpdatedAt = time.Now().UTC()
	r.byID[id] = p
	return p, nil
}

func (r *fakeRepo) DeleteByID(_ context.Context, id domain.ProductID) (domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.j.add("repo.DeleteByID")
	if r.failAll {
		return domain.Product{}, errStoreDown
	}
	p, ok := r.byID[id]
	if !ok {
		return domain.Product{}, domain.ErrNotFound
	}
	delete(r.byID, id)
	return p, nil
}

type cacheEntry struct {
	val []byte
	exp time.Time // zero => no TTL
}

type fakeCache struct {
	mu sync.Mutex
	m  map[string]cacheEntry
	j  *journal

	getCalls int
	setCalls int
	delCalls int

	failAll bool // every call errors, simulating an unreachable cache
}

func newFakeCache(j *journal) *fakeCache {
	return &fakeCache{m: make(map[string]cacheEntry), j: j}
}

var errCacheDown = errors.New("cache down")

func (c *fakeCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.getCalls++
	c.j.add("cache.Get")
	if c.failAll {
		return nil, errCacheDown
	}
	e, ok := c.m[key]
	if !ok {
		return nil, nil
	}
	if !e.exp.IsZero() && time.Now().After(e.exp) {
		delete(c.m, key)
		return nil, nil
	}
	return e.val, nil
}

func (c *fakeCache) Set(_ context.Context, key string, val []byte, ttlSeconds int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setCalls++
	c.j.add("cache.Set")
	if c.failAll {
		return errCacheDown
	}
	var exp time.Time
	if ttlSeconds > 0 {
		exp = time.Now().Add(time.Duration(ttlSeconds) * time.Second)
	}
	c.m[key] = cacheEntry{val: val, exp: exp}
	return nil
}

func (c *fakeCache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.delCalls++
	c.j.add("cache.Del")
	if c.failAll {
		return errCacheDown
	}
	for _, k := range keys {
		delete(c.m, k)
	}
	return nil
}

func (c *fakeCache) Ping(context.Context) error { return nil }
func (c *fakeCache) Close()                     {}

type emitted struct {
	event   string
	payload any
}

type fakePublisher struct {
	mu     sync.Mutex
	events []emitted
	j      *journal

	failAll bool
}

var errBrokerDown = errors.New("broker down")

func (p *fakePublisher) Emit(_ context.Context, event string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.j.add("events.Emit")
	if p.failAll {
		return errBrokerDown
	}
	p.events = append(p.events, emitted{event: event, payload: payload})
	return nil
}

func (p *fakePublisher) Ping(context.Context) error { return nil }
func (p *fakePublisher) Close()                     {}

func (p *fakePublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.event)
	}
	return out
}

// ---- helpers ----

type fixture struct {
	svc   *Service
	repo  *fakeRepo
	cache *fakeCache
	pub   *fakePublisher
	j     *journal
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	j := &journal{}
	repo := newFakeRepo(j)
	cache := newFakeCache(j)
	pub := &fakePublisher{j: j}
	svc := New(repo, cache, pub, log.New(io.Discard, "", 0), 60)
	return &fixture{svc: svc, repo: repo, cache: cache, pub: pub, j: j}
}

func mustCreate(t *testing.T, f *fixture, name string, price float64) domain.Product {
	t.Helper()
	p, err := f.svc.Create(context.Background(), domain.CreateProductInput{Name: name, Price: price})
	if err != nil {
		t.Fatalf("create %q: %v", name, err)
	}
	return p
}

func strPtr(s string) *string { return &s }
func f64Ptr(f float64) *float64 { return &f }

// ---- tests ----

func TestCreateThenGet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := domain.CreateProductInput{Name: "Widget", Description: "a widget", Price: 5}
	created, err := f.svc.Create(ctx, in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatal("expected store-assigned id")
	}

	got, err := f.svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != in.Name || got.Description != in.Description || got.Price != in.Price {
		t.Fatalf("read-after-write mismatch: got %+v want %+v", got, in)
	}
}

func TestCreateDuplicateNameConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := mustCreate(t, f, "Widget", 5)

	// an unrelated update must not free the name
	if _, err := f.svc.Update(ctx, first.ID, domain.UpdateProductInput{Price: f64Ptr(6)}); err != nil {
		t.Fatalf("update: %v", err)
	}

	_, err := f.svc.Create(ctx, domain.CreateProductInput{Name: "Widget", Price: 9})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestUpdateConflictExcludesSelf(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := mustCreate(t, f, "Widget", 5)
	mustCreate(t, f, "Gadget", 7)

	// keeping your own name is not a conflict
	if _, err := f.svc.Update(ctx, p.ID, domain.UpdateProductInput{Name: strPtr("Widget")}); err != nil {
		t.Fatalf("self-name update: %v", err)
	}

	// taking another record's name is
	_, err := f.svc.Update(ctx, p.ID, domain.UpdateProductInput{Name: strPtr("Gadget")})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestGetAfterDeleteIsNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := mustCreate(t, f, "Widget", 5)

	// warm the per-record cache
	if _, err := f.svc.Get(ctx, p.ID); err != nil {
		t.Fatalf("get: %v", err)
	}

	if err := f.svc.Delete(ctx, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	_, err := f.svc.Get(ctx, p.ID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestListSecondCallServedFromCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	mustCreate(t, f, "Widget", 5)
	mustCreate(t, f, "Gadget", 7)

	first, err := f.svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	callsAfterFirst := f.repo.findAllCalls

	second, err := f.svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if f.repo.findAllCalls != callsAfterFirst {
		t.Fatalf("second list hit the store: FindAll calls went %d -> %d", callsAfterFirst, f.repo.findAllCalls)
	}
	if len(first) != len(second) {
		t.Fatalf("list content changed with no writes: %d vs %d", len(first), len(second))
	}
	seen := make(map[domain.ProductID]domain.Product, len(first))
	for _, p := range first {
		seen[p.ID] = p
	}
	for _, p := range second {
		got, ok := seen[p.ID]
		if !ok || got.Name != p.Name || got.Price != p.Price || got.Description != p.Description {
			t.Fatalf("second list diverged on %s", p.ID)
		}
	}
}

func TestUpdateInvalidatesRecordCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := mustCreate(t, f, "Widget", 5)

	// warm both keys
	if _, err := f.svc.List(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	if _, err := f.svc.Get(ctx, p.ID); err != nil {
		t.Fatalf("get: %v", err)
	}

	if _, err := f.svc.Update(ctx, p.ID, domain.UpdateProductInput{Price: f64Ptr(9.99)}); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := f.svc.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Price != 9.99 {
		t.Fatalf("stale cache leak: price = %v, want 9.99", got.Price)
	}

	listed, err := f.svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 1 || listed[0].Price != 9.99 {
		t.Fatalf("stale list leak: %+v", listed)
	}
}

func TestFullLifecycleScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	w := mustCreate(t, f, "Widget", 5)

	listed, err := f.svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != w.ID || listed[0].Name != "Widget" || listed[0].Price != 5 {
		t.Fatalf("list = %+v", listed)
	}

	upd, err := f.svc.Update(ctx, w.ID, domain.UpdateProductInput{Price: f64Ptr(7)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if upd.ID != w.ID || upd.Name != "Widget" || upd.Price != 7 {
		t.Fatalf("update = %+v", upd)
	}

	got, err := f.svc.Get(ctx, w.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Price != 7 {
		t.Fatalf("get price = %v, want 7", got.Price)
	}

	if err := f.svc.Delete(ctx, w.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := f.svc.Get(ctx, w.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	want := []string{domain.EventProductCreated, domain.EventProductUpdated, domain.EventProductDeleted}
	got2 := f.pub.names()
	if len(got2) != len(want) {
		t.Fatalf("events = %v, want %v", got2, want)
	}
	for i := range want {
		if got2[i] != want[i] {
			t.Fatalf("events = %v, want %v", got2, want)
		}
	}
}

func TestInvalidInputRejectedBeforeAnyCall(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []domain.CreateProductInput{
		{Name: "", Price: 1},
		{Name: "Widget", Price: -1},
	}
	for _, in := range cases {
		_, err := f.svc.Create(ctx, in)
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("input %+v: expected ErrInvalidInput, got %v", in, err)
		}
	}

	if n := len(f.j.snapshot()); n != 0 {
		t.Fatalf("expected no store/cache/channel calls, journal has %d: %v", n, f.j.snapshot())
	}
}

func TestUpdateRejectsBadPartialInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := mustCreate(t, f, "Widget", 5)

	if _, err := f.svc.Update(ctx, p.ID, domain.UpdateProductInput{Name: strPtr("")}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("empty name: expected ErrInvalidInput, got %v", err)
	}
	if _, err := f.svc.Update(ctx, p.ID, domain.UpdateProductInput{Price: f64Ptr(-2)}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("negative price: expected ErrInvalidInput, got %v", err)
	}
}

func TestWriteOrderingStoreThenInvalidateThenNotify(t *testing.T) {
	f := newFixture(t)

	mustCreate(t, f, "Widget", 5)

	idx := map[string]int{}
	for i, c := range f.j.snapshot() {
		idx[c] = i // last occurrence is fine: one write happened
	}
	ins, okI := idx["repo.Insert"]
	del, okD := idx["cache.Del"]
	emit, okE := idx["events.Emit"]
	if !okI || !okD || !okE {
		t.Fatalf("missing calls in journal: %v", f.j.snapshot())
	}
	if !(ins < del && del < emit) {
		t.Fatalf("write ordering violated: %v", f.j.snapshot())
	}
}

func TestCacheFailureDegradesToStore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := mustCreate(t, f, "Widget", 5)
	f.cache.failAll = true

	// reads fall through to the store
	if _, err := f.svc.List(ctx); err != nil {
		t.Fatalf("list with dead cache: %v", err)
	}
	got, err := f.svc.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("get with dead cache: %v", err)
	}
	if got.ID != p.ID {
		t.Fatalf("got %+v", got)
	}

	// writes still commit and notify
	if _, err := f.svc.Update(ctx, p.ID, domain.UpdateProductInput{Price: f64Ptr(6)}); err != nil {
		t.Fatalf("update with dead cache: %v", err)
	}
	if err := f.svc.Delete(ctx, p.ID); err != nil {
		t.Fatalf("delete with dead cache: %v", err)
	}
}

func TestPublisherFailureDoesNotFailWrites(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.pub.failAll = true

	p, err := f.svc.Create(ctx, domain.CreateProductInput{Name: "Widget", Price: 5})
	if err != nil {
		t.Fatalf("create with dead broker: %v", err)
	}
	if _, err := f.svc.Update(ctx, p.ID, domain.UpdateProductInput{Price: f64Ptr(6)}); err != nil {
		t.Fatalf("update with dead broker: %v", err)
	}
	if err := f.svc.Delete(ctx, p.ID); err != nil {
		t.Fatalf("delete with dead broker: %v", err)
	}
}

func TestStoreFailureIsUnavailableAndSkipsCacheWrites(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.repo.failAll = true

	if _, err := f.svc.List(ctx); !errors.Is(err, domain.ErrUnavailable) {
		t.Fatalf("list: expected ErrUnavailable, got %v", err)
	}
	if _, err := f.svc.Create(ctx, domain.CreateProductInput{Name: "Widget", Price: 5}); !errors.Is(err, domain.ErrUnavailable) {
		t.Fatalf("create: expected ErrUnavailable, got %v", err)
	}

	// a failed store call must not be followed by invalidation or events
	for _, c := range f.j.snapshot() {
		if c == "cache.Del" || c == "cache.Set" || c == "events.Emit" {
			t.Fatalf("unexpected %s after store failure: %v", c, f.j.snapshot())
		}
	}
}

func TestDeleteMissingIsNotFound(t *testing.T) {
	f := newFixture(t)

	err := f.svc.Delete(context.Background(), uuid.New())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(f.pub.names()) != 0 {
		t.Fatalf("no event expected for failed delete, got %v", f.pub.names())
	}
}

func TestListRepopulatesAfterTTLStyleMiss(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	mustCreate(t, f, "Widget", 5)
	if _, err := f.svc.List(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	before := f.repo.findAllCalls

	// simulate expiry: the entry is gone, next read must repopulate
	_ = f.cache.Del(ctx, domain.CacheKeyProducts)

	if _, err := f.svc.List(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	if f.repo.findAllCalls != before+1 {
		t.Fatalf("expected store refetch after miss, FindAll calls %d -> %d", before, f.repo.findAllCalls)
	}
}
