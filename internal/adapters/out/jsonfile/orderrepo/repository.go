package orderrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
)

// FileOrderRepository implements ports.OrderRepository on top of a single
// JSON document.
//
// The document is hydrated lazily into an in-memory cache on first access
// and rewritten in full on every mutation. Writes go to a temporary file
// in the same directory followed by an atomic rename, so a crash mid-write
// can never leave a truncated or unparseable document behind.
//
// One repository-level mutex serializes every operation, including the
// whole "mutate cache, rewrite file" sequence. This is deliberately
// independent of the per-order transition handles: saves of unrelated
// orders still touch the same file and must not interleave rewrites.
type FileOrderRepository struct {
	path string

	mu     sync.Mutex
	orders map[int64]orderDTO
	nextID int64
	loaded bool
}

// NewFileOrderRepository creates a repository persisting to the given file
// path. The file and its parent directories are created on first mutation;
// an absent file hydrates to an empty repository.
func NewFileOrderRepository(path string) *FileOrderRepository {
	return &FileOrderRepository{
		path:   path,
		orders: make(map[int64]orderDTO),
		nextID: 1,
	}
}

// Save upserts an order by id, assigning the next sequential identifier to
// orders that have none yet, and synchronously rewrites the document.
func (r *FileOrderRepository) Save(_ context.Context, aggregate *order.Order) (*order.Order, error) {
	if err := aggregate.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureLoaded(); err != nil {
		return nil, err
	}

	if aggregate.ID() == 0 {
		if err := aggregate.AssignID(r.nextID); err != nil {
			return nil, err
		}
		r.nextID++
	} else if aggregate.ID() >= r.nextID {
		r.nextID = aggregate.ID() + 1
	}

	r.orders[aggregate.ID()] = fromDomain(aggregate)

	if err := r.persist(); err != nil {
		return nil, err
	}
	return aggregate, nil
}

// Get retrieves the order with the given id, reconstructed from the cache.
// Returns an errs.ObjectNotFoundError when absent.
func (r *FileOrderRepository) Get(_ context.Context, id int64) (*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureLoaded(); err != nil {
		return nil, err
	}

	dto, ok := r.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id)
	}
	return toDomain(dto)
}

// Delete removes the order with the given id and rewrites the document.
// Absent ids are a no-op and do not touch the file.
func (r *FileOrderRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureLoaded(); err != nil {
		return err
	}

	if _, ok := r.orders[id]; !ok {
		return nil
	}
	delete(r.orders, id)
	return r.persist()
}

// GetAll returns a point-in-time snapshot of every stored order.
func (r *FileOrderRepository) GetAll(_ context.Context) ([]*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureLoaded(); err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(r.orders))
	for _, dto := range r.orders {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, aggregate)
	}
	return orders, nil
}

// GetAllInStatus returns a snapshot of every order currently in the given status.
func (r *FileOrderRepository) GetAllInStatus(_ context.Context, status order.Status) ([]*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureLoaded(); err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0)
	for _, dto := range r.orders {
		if dto.Status != status.String() {
			continue
		}
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, aggregate)
	}
	return orders, nil
}

// ensureLoaded hydrates the cache from the document on first access.
// Callers must hold r.mu.
func (r *FileOrderRepository) ensureLoaded() error {
	if r.loaded {
		return nil
	}

	content, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			r.loaded = true
			return nil
		}
		return fmt.Errorf("read order store %s: %w", r.path, err)
	}

	var doc documentDTO
	if err := json.Unmarshal(content, &doc); err != nil {
		return fmt.Errorf("decode order store %s: %w", r.path, err)
	}

	r.nextID = doc.NextID
	if r.nextID < 1 {
		r.nextID = 1
	}
	for _, dto := range doc.Orders {
		r.orders[dto.ID] = dto
		if dto.ID >= r.nextID {
			r.nextID = dto.ID + 1
		}
	}

	r.loaded = true
	return nil
}

// persist rewrites the whole document atomically: marshal, write to a
// temporary file in the target directory, then rename over the original.
// Callers must hold r.mu.
func (r *FileOrderRepository) persist() error {
	doc := documentDTO{
		Orders: make([]orderDTO, 0, len(r.orders)),
		NextID: r.nextID,
	}
	for _, dto := range r.orders {
		doc.Orders = append(doc.Orders, dto)
	}
	// Deterministic output keeps the document diffable between rewrites.
	sort.Slice(doc.Orders, func(i, j int) bool { return doc.Orders[i].ID < doc.Orders[j].ID })

	content, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode order store: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create order store directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".orders-*.json")
	if err != nil {
		return fmt.Errorf("create temp order store: %w", err)
	}

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp order store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp order store: %w", err)
	}

	if err := os.Rename(tmp.Name(), r.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace order store %s: %w", r.path, err)
	}
	return nil
}
