package dto

// RegisterRequest carries the instructor self-registration form.
// Credentials are generated server-side, never chosen by the instructor.
type RegisterRequest struct {
	FullName   string `json:"fullName" binding:"required" example:"Ana Gomez"`
	Email      string `json:"email" binding:"required,email" example:"ana@x.com"`
	RegionalID int64  `json:"regionalId" binding:"required" example:"2"`
}

// RegisterResponse reports the result of a registration. When the credentials
// email could not be delivered the registration still stands: EmailSent is
// false, Warning explains, and Password carries the generated plaintext this
// one time (it is never stored, so it would otherwise be unrecoverable).
type RegisterResponse struct {
	InstructorID int64  `json:"instructorId" example:"1"`
	Username     string `json:"username" example:"ana482"`
	EmailSent    bool   `json:"emailSent" example:"true"`
	Warning      string `json:"warning,omitempty"`
	Password     string `json:"password,omitempty"`
}

// LoginRequest carries login credentials.
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"ana482"`
	Password string `json:"password" binding:"required" example:"s3cr3t!#9X"`
}

// TokenResponse carries an issued token pair.
type TokenResponse struct {
	AccessToken      string `json:"accessToken"`
	RefreshToken     string `json:"refreshToken"`
	ExpiresIn        int    `json:"expiresIn" example:"3600"`
	RefreshExpiresIn int    `json:"refreshExpiresIn" example:"2592000"`
}

// RefreshTokenRequest carries the refresh token to exchange.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// LogoutRequest carries the refresh token to revoke.
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// ProfileResponse is the current instructor's dashboard data.
type ProfileResponse struct {
	ID           int64  `json:"id" example:"1"`
	FullName     string `json:"fullName" example:"Ana Gomez"`
	Email        string `json:"email" example:"ana@x.com"`
	Username     string `json:"username" example:"ana482"`
	RegionalName string `json:"regionalName" example:"Huila"`
}
