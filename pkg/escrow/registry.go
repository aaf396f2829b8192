package escrow

import "fmt"

// Registry is an append-only log of swap requests. Identifiers are assigned
// sequentially from 0 with no gaps and no reuse; entries are never deleted,
// so terminal requests remain queryable as an audit trail.
type Registry struct {
	requests []*SwapRequest
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Append records a request, assigns it the next identifier and returns it.
func (r *Registry) Append(req *SwapRequest) uint64 {
	req.ID = uint64(len(r.requests))
	r.requests = append(r.requests, req)
	return req.ID
}

// Get retrieves a request by id.
func (r *Registry) Get(id uint64) (*SwapRequest, error) {
	if id >= uint64(len(r.requests)) {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return r.requests[id], nil
}

// Len returns the number of recorded requests.
func (r *Registry) Len() int {
	return len(r.requests)
}

// All returns every recorded request in id order.
func (r *Registry) All() []*SwapRequest {
	out := make([]*SwapRequest, len(r.requests))
	copy(out, r.requests)
	return out
}
