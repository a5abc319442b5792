// ABOUTME: Wire types for the sweet shop backend REST API
// ABOUTME: Mirrors the JSON shapes the backend sends and accepts

package api

// User is the profile record the backend returns on login and register.
type User struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

// Sweet is a catalog item. The backend owns it; the client never mutates
// a local copy, it re-fetches after every mutating call.
type Sweet struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	ImageURL    string  `json:"imageUrl"`
}

// InStock reports whether at least one unit can be purchased.
func (s Sweet) InStock() bool {
	return s.Quantity > 0
}

// SweetInput is the payload for create and update calls.
type SweetInput struct {
	Name        string  `json:"name" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	Quantity    int     `json:"quantity" validate:"gte=0"`
	ImageURL    string  `json:"imageUrl" validate:"omitempty,url"`
}

// AuthResponse is the body of successful login and register calls.
// Register may legitimately return an empty body, in which case both
// fields are zero and no session was issued.
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type purchaseRequest struct {
	Quantity int `json:"quantity"`
}
