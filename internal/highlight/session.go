package highlight

// Session is the per-run highlight state shared by the verse controller
// and the UI.
type Session struct {
	Store  *Store
	Arming *Arming
}

func NewSession() *Session {
	return &Session{
		Store:  NewStore(),
		Arming: NewArming(),
	}
}
