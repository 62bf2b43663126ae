package dto

// RegisterRequest yeni hesap oluşturma isteği.
type RegisterRequest struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	PublicName    string `json:"public_name"`
	PublicContact string `json:"public_contact"`
}

// LoginRequest giriş isteği.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse başarılı girişte dönen bearer token.
type LoginResponse struct {
	Token string `json:"token"`
}
