package domain

type Role string

const (
	RoleAnonymous Role = ""
	RolePatron    Role = "PATRON"
	RoleLibrarian Role = "LIBRARIAN"
)

// Identity is the resolved caller of a core operation. It is constructed
// once at the transport boundary and threaded explicitly through every
// service call; the core never consults ambient request state.
type Identity struct {
	UserID int32
	Role   Role
}

// Anonymous is the identity of an unauthenticated caller.
var Anonymous = Identity{}

func (id Identity) IsAuthenticated() bool {
	return id.Role != RoleAnonymous
}

func (id Identity) IsLibrarian() bool {
	return id.Role == RoleLibrarian
}
