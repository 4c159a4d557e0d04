package session

func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// UserName is empty when no user is loaded.
func (s *Session) UserName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return ""
	}
	return s.user.Name
}

// UserID reports ok=false when no user is loaded.
func (s *Session) UserID() (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return 0, false
	}
	return s.user.ID, true
}

func (s *Session) RoleID() (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.roleID == nil {
		return 0, false
	}
	return *s.roleID, true
}

func (s *Session) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isAdmin
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) Identified() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identified
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch {
	case s.token == "":
		return StateUnauthenticated
	case !s.identified:
		return StateUnidentified
	default:
		return StateIdentified
	}
}

func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Token:      s.token,
		IsAdmin:    s.isAdmin,
		Identified: s.identified,
	}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	if s.roleID != nil {
		r := *s.roleID
		snap.RoleID = &r
	}
	return snap
}
