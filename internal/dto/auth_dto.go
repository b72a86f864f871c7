package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Email string `json:"email" validate:"required,min=1"`
	Senha string `json:"senha" validate:"required,min=1"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// LoginResponse carries the opaque session token plus the authenticated
// account. There is no expiry and no refresh flow: the session lives until an
// explicit logout.
type LoginResponse struct {
	Token string          `json:"token"`
	User  UsuarioResponse `json:"user"`
}
