package auth

type Credentials struct {
	Email    string `form:"email" json:"email" validate:"required,email"`
	Password string `form:"password" json:"password" validate:"required"`
}

type Registration struct {
	Email           string `form:"email" validate:"required,email"`
	Password        string `form:"password" validate:"required"`
	ConfirmPassword string `form:"confirmPassword" validate:"required,eqfield=Password"`
}

type loginResponseDTO struct {
	Token string `json:"token"`
}

type errorResponseDTO struct {
	Error string `json:"error"`
}
