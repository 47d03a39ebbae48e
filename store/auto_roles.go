package store

import "sync"

// AutoRoleStore maps guild IDs to the role granted to new members, at most
// one binding per guild.
type AutoRoleStore struct {
	mu       sync.Mutex
	path     string
	bindings map[string]string
}

// NewAutoRoleStore loads the auto-role snapshot from path.
func NewAutoRoleStore(path string) *AutoRoleStore {
	bindings := Load[map[string]string](path)
	if bindings == nil {
		bindings = make(map[string]string)
	}
	return &AutoRoleStore{path: path, bindings: bindings}
}

// Set binds roleID to guildID, replacing any previous binding.
func (s *AutoRoleStore) Set(guildID, roleID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bindings[guildID] = roleID
	Save(s.path, s.bindings)
}

// Remove clears the binding for guildID, reporting whether one existed.
func (s *AutoRoleStore) Remove(guildID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bindings[guildID]; !ok {
		return false
	}
	delete(s.bindings, guildID)
	Save(s.path, s.bindings)
	return true
}

// Get returns the bound role for guildID.
func (s *AutoRoleStore) Get(guildID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	roleID, ok := s.bindings[guildID]
	return roleID, ok
}
