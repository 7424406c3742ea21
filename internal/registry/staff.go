package registry

import (
	"fmt"
	"strings"
	"sync"

	"github.com/sanitrack/sanitrack/internal/domain"
)

// StaffDirectory is the read-mostly roster of staff members known to the
// staff service. Authentication reduces to resolving a Bearer token against
// this directory; session mechanics are out of scope.
type StaffDirectory struct {
	mu      sync.RWMutex
	byID    map[string]domain.Staff
	byToken map[string]domain.Staff
}

// NewStaffDirectory creates a directory from the given roster.
func NewStaffDirectory(staff []domain.Staff) *StaffDirectory {
	d := &StaffDirectory{
		byID:    make(map[string]domain.Staff, len(staff)),
		byToken: make(map[string]domain.Staff, len(staff)),
	}
	for _, s := range staff {
		d.byID[s.ID] = s
		d.byToken[s.Token] = s
	}
	return d
}

// GetByID returns the staff member with the given ID.
func (d *StaffDirectory) GetByID(id string) (*domain.Staff, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	s, ok := d.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrStaffNotFound, id)
	}
	return &s, nil
}

// GetByToken resolves an authentication token to a staff member.
func (d *StaffDirectory) GetByToken(token string) (*domain.Staff, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	s, ok := d.byToken[strings.TrimSpace(token)]
	if !ok {
		return nil, domain.ErrInvalidToken
	}
	return &s, nil
}
