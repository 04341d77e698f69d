package service

import (
	"sync"

	"questledger/internal/model"
)

const (
	ownerAddr    = "0x1111111111111111111111111111111111111111"
	backendAddr  = "0x2222222222222222222222222222222222222222"
	userAddr     = "0x1234567890123456789012345678901234567890"
	otherAddr    = "0x3333333333333333333333333333333333333333"
	strangerAddr = "0x9999999999999999999999999999999999999999"
)

type fakeRoles struct {
	owner   string
	backend string
}

func (r fakeRoles) HasRole(caller string, role string) bool {
	switch role {
	case RoleOwner:
		return caller == r.owner
	case RoleBackend:
		return caller == r.backend
	default:
		return false
	}
}

func newFakeRoles() fakeRoles {
	return fakeRoles{owner: ownerAddr, backend: backendAddr}
}

type capturePublisher struct {
	mu     sync.Mutex
	events []model.Event
}

func (p *capturePublisher) Publish(event model.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *capturePublisher) byType(eventType string) []model.Event {
	p.mu.Lock()
	defer p.mu.Unlock()

	var out []model.Event
	for _, e := range p.events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}
