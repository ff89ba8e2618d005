package assessment

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sort"
	"sync"
	"time"
)

var ErrNotFound = errors.New("assessment not found")

type Store interface {
	Put(a Assessment) (Assessment, error)
	Get(id string) (Assessment, error)
	// List returns assessments newest-first; empty clinicianID means all.
	List(clinicianID string, limit int) ([]Assessment, error)
}

type memoryStore struct {
	mu sync.RWMutex
	m  map[string]Assessment
}

func NewInMemoryStore() Store {
	return &memoryStore{m: map[string]Assessment{}}
}

func (s *memoryStore) Put(a Assessment) (Assessment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == "" {
		a.ID = randID()
	}
	if a.CreatedAt == 0 {
		a.CreatedAt = time.Now().Unix()
	}
	s.m[a.ID] = a
	return a, nil
}

func (s *memoryStore) Get(id string) (Assessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.m[id]
	if !ok {
		return Assessment{}, ErrNotFound
	}
	return a, nil
}

func (s *memoryStore) List(clinicianID string, limit int) ([]Assessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Assessment, 0, len(s.m))
	for _, a := range s.m {
		if clinicianID != "" && a.ClinicianID != clinicianID {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt > out[j].CreatedAt
		}
		return out[i].ID > out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func randID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return time.Now().UTC().Format("20060102150405") + "-" + hex.EncodeToString(b)
}
