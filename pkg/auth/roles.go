package auth

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

const (
	RoleOwner   = "owner"
	RoleBackend = "backend"
)

// Roles holds the two privileged identities. The owner is transferable; the
// backend authority is fixed at construction.
type Roles struct {
	mu      sync.RWMutex
	owner   common.Address
	backend common.Address
}

func NewRoles(owner, backend string) (*Roles, error) {
	if !common.IsHexAddress(owner) {
		return nil, fmt.Errorf("invalid owner address: %q", owner)
	}
	if !common.IsHexAddress(backend) {
		return nil, fmt.Errorf("invalid backend authority address: %q", backend)
	}

	return &Roles{
		owner:   common.HexToAddress(owner),
		backend: common.HexToAddress(backend),
	}, nil
}

func (r *Roles) HasRole(caller string, role string) bool {
	if !common.IsHexAddress(caller) {
		return false
	}
	address := common.HexToAddress(caller)

	r.mu.RLock()
	defer r.mu.RUnlock()

	switch role {
	case RoleOwner:
		return address == r.owner
	case RoleBackend:
		return address == r.backend
	default:
		return false
	}
}

func (r *Roles) SetOwner(address string) error {
	if !common.IsHexAddress(address) {
		return errors.New("invalid owner address")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.owner = common.HexToAddress(address)

	return nil
}

func (r *Roles) Owner() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.owner.Hex()
}
