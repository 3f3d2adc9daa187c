// Package storetest provides in-memory implementations of the store interfaces for tests.
package storetest

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Alturino/shoppingcart/cart/internal/domain"
	"github.com/Alturino/shoppingcart/cart/internal/store"
	inErrors "github.com/Alturino/shoppingcart/internal/errors"
)

var ErrDuplicateKey = errors.New("duplicate logical key")

type Op string

const (
	OpInsert        Op = "insert"
	OpSave          Op = "save"
	OpDelete        Op = "delete"
	OpDeleteByOwner Op = "deleteByOwner"
	OpList          Op = "list"
)

type state struct {
	lines map[uuid.UUID]domain.Line
	order []uuid.UUID
}

func (s state) clone() state {
	return state{lines: maps.Clone(s.lines), order: slices.Clone(s.order)}
}

// Memory behaves like the postgres store: it keeps insertion order, enforces one line per
// logical key and rolls InTx back when fn fails.
type Memory struct {
	mu       sync.Mutex
	state    state
	failures map[Op]error
	failAt   map[Op]int
	calls    map[Op]int
}

var _ store.Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		state:    state{lines: map[uuid.UUID]domain.Line{}},
		failures: map[Op]error{},
		failAt:   map[Op]int{},
		calls:    map[Op]int{},
	}
}

// Seed stores lines as given, bypassing the uniqueness check, so tests can build states the
// engine itself never produces.
func (m *Memory) Seed(lines ...domain.Line) []domain.Line {
	m.mu.Lock()
	defer m.mu.Unlock()
	seeded := make([]domain.Line, 0, len(lines))
	for _, line := range lines {
		if line.ID == uuid.Nil {
			line.ID = uuid.New()
		}
		m.state.lines[line.ID] = line
		m.state.order = append(m.state.order, line.ID)
		seeded = append(seeded, line)
	}
	return seeded
}

// FailOn makes the nth call (1-based) of op fail with err.
func (m *Memory) FailOn(op Op, nth int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[op] = err
	m.failAt[op] = nth
	m.calls[op] = 0
}

// All returns every stored line in insertion order.
func (m *Memory) All() []domain.Line {
	m.mu.Lock()
	defer m.mu.Unlock()
	lines := make([]domain.Line, 0, len(m.state.order))
	for _, id := range m.state.order {
		lines = append(lines, m.state.lines[id])
	}
	return lines
}

func (m *Memory) InTx(c context.Context, owners []domain.Owner, fn func(store.Lines) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	snapshot := m.state.clone()
	if err := fn(lines{m: m}); err != nil {
		m.state = snapshot
		return err
	}
	return nil
}

func (m *Memory) FindByID(c context.Context, id uuid.UUID) (domain.Line, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return lines{m: m}.FindByID(c, id)
}

func (m *Memory) FindByKey(c context.Context, key domain.LogicalKey) (domain.Line, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return lines{m: m}.FindByKey(c, key)
}

func (m *Memory) ListByOwner(c context.Context, owner domain.Owner) ([]domain.Line, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return lines{m: m}.ListByOwner(c, owner)
}

func (m *Memory) Insert(c context.Context, line domain.Line) (domain.Line, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return lines{m: m}.Insert(c, line)
}

func (m *Memory) Save(c context.Context, line domain.Line) (domain.Line, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return lines{m: m}.Save(c, line)
}

func (m *Memory) Delete(c context.Context, id uuid.UUID) (domain.Line, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return lines{m: m}.Delete(c, id)
}

func (m *Memory) DeleteByOwner(c context.Context, owner domain.Owner) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return lines{m: m}.DeleteByOwner(c, owner)
}

// lines operates on m.state and expects m.mu to be held.
type lines struct {
	m *Memory
}

func (l lines) fail(op Op) error {
	err, ok := l.m.failures[op]
	if !ok {
		return nil
	}
	l.m.calls[op]++
	if l.m.calls[op] == l.m.failAt[op] {
		return err
	}
	return nil
}

func (l lines) FindByID(_ context.Context, id uuid.UUID) (domain.Line, error) {
	line, ok := l.m.state.lines[id]
	if !ok {
		return domain.Line{}, fmt.Errorf("finding cartItemId=%s: %w", id, inErrors.ErrNotFound)
	}
	return line, nil
}

func (l lines) FindByKey(_ context.Context, key domain.LogicalKey) (domain.Line, error) {
	for _, id := range l.m.state.order {
		if line := l.m.state.lines[id]; line.Key() == key {
			return line, nil
		}
	}
	return domain.Line{}, fmt.Errorf("finding cart item of owner=%s: %w", key.Owner, inErrors.ErrNotFound)
}

func (l lines) ListByOwner(_ context.Context, owner domain.Owner) ([]domain.Line, error) {
	if err := l.fail(OpList); err != nil {
		return nil, err
	}
	if owner.IsZero() {
		return nil, fmt.Errorf("%w: owner is required", inErrors.ErrInvalidArgument)
	}
	result := []domain.Line{}
	for _, id := range l.m.state.order {
		if line := l.m.state.lines[id]; line.Owner == owner {
			result = append(result, line)
		}
	}
	return result, nil
}

func (l lines) conflicts(line domain.Line) bool {
	for id, other := range l.m.state.lines {
		if id != line.ID && other.Key() == line.Key() {
			return true
		}
	}
	return false
}

func (l lines) Insert(_ context.Context, line domain.Line) (domain.Line, error) {
	if err := l.fail(OpInsert); err != nil {
		return domain.Line{}, err
	}
	if line.ID == uuid.Nil {
		line.ID = uuid.New()
	}
	if line.Owner.IsZero() {
		return domain.Line{}, fmt.Errorf("%w: owner is required", inErrors.ErrInvalidArgument)
	}
	if l.conflicts(line) {
		return domain.Line{}, ErrDuplicateKey
	}
	l.m.state.lines[line.ID] = line
	l.m.state.order = append(l.m.state.order, line.ID)
	return line, nil
}

func (l lines) Save(_ context.Context, line domain.Line) (domain.Line, error) {
	if err := l.fail(OpSave); err != nil {
		return domain.Line{}, err
	}
	existing, ok := l.m.state.lines[line.ID]
	if !ok {
		return domain.Line{}, fmt.Errorf("updating cartItemId=%s: %w", line.ID, inErrors.ErrNotFound)
	}
	line.Variant.ProductID = existing.Variant.ProductID
	if l.conflicts(line) {
		return domain.Line{}, ErrDuplicateKey
	}
	l.m.state.lines[line.ID] = line
	return line, nil
}

func (l lines) Delete(_ context.Context, id uuid.UUID) (domain.Line, error) {
	if err := l.fail(OpDelete); err != nil {
		return domain.Line{}, err
	}
	line, ok := l.m.state.lines[id]
	if !ok {
		return domain.Line{}, fmt.Errorf("deleting cartItemId=%s: %w", id, inErrors.ErrNotFound)
	}
	delete(l.m.state.lines, id)
	l.m.state.order = slices.DeleteFunc(l.m.state.order, func(other uuid.UUID) bool {
		return other == id
	})
	return line, nil
}

func (l lines) DeleteByOwner(_ context.Context, owner domain.Owner) (int64, error) {
	if err := l.fail(OpDeleteByOwner); err != nil {
		return 0, err
	}
	if owner.IsZero() {
		return 0, fmt.Errorf("%w: owner is required", inErrors.ErrInvalidArgument)
	}
	var affected int64
	for id, line := range l.m.state.lines {
		if line.Owner == owner {
			delete(l.m.state.lines, id)
			affected++
		}
	}
	l.m.state.order = slices.DeleteFunc(l.m.state.order, func(id uuid.UUID) bool {
		_, ok := l.m.state.lines[id]
		return !ok
	})
	return affected, nil
}

// Catalog is an in-memory product catalog with size prices.
type Catalog struct {
	Products map[int64]domain.Product
	Prices   map[int64]map[string]decimal.Decimal
}

var (
	_ store.Catalog       = (*Catalog)(nil)
	_ store.PriceResolver = (*Catalog)(nil)
)

func NewCatalog() *Catalog {
	return &Catalog{
		Products: map[int64]domain.Product{},
		Prices:   map[int64]map[string]decimal.Decimal{},
	}
}

func (c *Catalog) AddProduct(product domain.Product, prices map[string]decimal.Decimal) *Catalog {
	c.Products[product.ID] = product
	c.Prices[product.ID] = prices
	return c
}

func (c *Catalog) FindProduct(_ context.Context, id int64) (domain.Product, error) {
	product, ok := c.Products[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("finding productId=%d: %w", id, inErrors.ErrNotFound)
	}
	return product, nil
}

func (c *Catalog) FindProducts(_ context.Context, ids []int64) (map[int64]domain.Product, error) {
	products := make(map[int64]domain.Product, len(ids))
	for _, id := range ids {
		if product, ok := c.Products[id]; ok {
			products[id] = product
		}
	}
	return products, nil
}

func (c *Catalog) UnitPrice(_ context.Context, productID int64, size string) (decimal.Decimal, error) {
	price, ok := c.Prices[productID][size]
	if !ok {
		return decimal.Zero, nil
	}
	return price, nil
}
