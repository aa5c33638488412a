package domain

import "fmt"

// Identity is a server-confirmed authenticated identity. The admin and
// customer variants share the shape; fields a variant does not use stay
// empty.
type Identity struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Role    string `json:"role,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// Validate rejects payloads missing the fields every identity must
// carry. A remote response failing this check is treated the same as a
// transport error.
func (i Identity) Validate() error {
	if i.ID == "" {
		return fmt.Errorf("id is empty")
	}
	if i.Email == "" {
		return fmt.Errorf("email is empty")
	}
	return nil
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
}

// ProfileUpdate carries only the fields the customer wants changed;
// empty fields are omitted from the request body.
type ProfileUpdate struct {
	Name    string `json:"name,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}
