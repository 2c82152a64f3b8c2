package auth

import "file-manager-api/internal/interface/api/rest/dto/profile"

type LoginResponse struct {
	Message      string       `json:"message"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         profile.User `json:"user"`
}
