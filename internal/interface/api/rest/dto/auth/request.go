package auth

type (
	RegisterRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Username string `json:"username"`
		Role     string `json:"role"`
	}
	LoginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
)
