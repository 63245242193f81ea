package rpcapi

// Envelope mirrors the service result: Outcome is one of "ok", "not_found",
// "invalid_password" or "duplicate".
type Envelope[T any] struct {
	Data    T      `json:"data"`
	Success bool   `json:"success"`
	Message string `json:"message"`
	Outcome string `json:"outcome"`
}

type Empty struct{}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ResetPasswordRequest struct {
	Username    string `json:"username"`
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// Character is a character as seen by clients. Class is "Knight", "Mage" or
// "Cleric".
type Character struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	HitPoints    int    `json:"hit_points"`
	Strength     int    `json:"strength"`
	Defense      int    `json:"defense"`
	Intelligence int    `json:"intelligence"`
	Class        string `json:"class"`
	UserID       *int64 `json:"user_id,omitempty"`
	PortraitKey  string `json:"portrait_key,omitempty"`
}

// CharacterInput carries the editable fields. Zero values on creation take
// the server defaults; an empty Class means Knight.
type CharacterInput struct {
	Name         string `json:"name"`
	HitPoints    int    `json:"hit_points"`
	Strength     int    `json:"strength"`
	Defense      int    `json:"defense"`
	Intelligence int    `json:"intelligence"`
	Class        string `json:"class"`
}

type UpdateCharacterRequest struct {
	ID int64 `json:"id"`
	CharacterInput
}

type CharacterIDRequest struct {
	ID int64 `json:"id"`
}

type PortraitURL struct {
	Key string `json:"key"`
	URL string `json:"url"`
}
