package registry

import (
	"errors"
	"sort"
	"sync"

	"VaultSentinel/internal/model"
)

// ErrNotAuthorized is returned when a caller lacks the required role.
var ErrNotAuthorized = errors.New("not authorized")

// Registry owns the set of identities permitted to create and approve
// transfer requests. Only the owner may add members; the owner itself is
// always a member. Removal does not exist in this design.
type Registry struct {
	mu     sync.RWMutex
	owner  model.Identity
	admins map[model.Identity]struct{}
}

// New creates a Registry with the given owner and initial administrators.
func New(owner model.Identity, admins []model.Identity) *Registry {
	r := &Registry{
		owner:  owner,
		admins: make(map[model.Identity]struct{}, len(admins)+1),
	}
	r.admins[owner] = struct{}{}
	for _, a := range admins {
		r.admins[a] = struct{}{}
	}
	return r
}

// Owner returns the owner identity fixed at initialization.
func (r *Registry) Owner() model.Identity {
	return r.owner
}

// Register adds identity to the administrator set. Only the owner may call
// this; re-adding an existing administrator is a no-op.
func (r *Registry) Register(caller, identity model.Identity) error {
	if caller != r.owner {
		return ErrNotAuthorized
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.admins[identity] = struct{}{}
	return nil
}

// IsAdministrator reports whether identity may create and approve requests.
func (r *Registry) IsAdministrator(identity model.Identity) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.admins[identity]
	return ok
}

// Count returns the number of registered administrators, owner included.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.admins)
}

// Members returns a sorted copy of the administrator set for persistence.
func (r *Registry) Members() []model.Identity {
	r.mu.RLock()
	defer r.mu.RUnlock()
	members := make([]model.Identity, 0, len(r.admins))
	for a := range r.admins {
		members = append(members, a)
	}
	sort.Slice(members, func(i, j int) bool { return members[i] < members[j] })
	return members
}
