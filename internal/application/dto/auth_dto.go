package dto

// LoginRequest credenciales de un operador de tienda.
type LoginRequest struct {
	Operator string `json:"operator" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token JWT emitido tras el login.
type LoginResponse struct {
	Token     string `json:"token"`
	Operator  string `json:"operator"`
	ExpiresIn int    `json:"expires_in"` // segundos
}
