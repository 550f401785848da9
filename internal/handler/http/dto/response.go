package dto

import (
	"github.com/mikiasgoitom/traceblog/internal/domain/entity"
)

// Envelope is the body of every successful response.
type Envelope struct {
	Meta entity.ResponseMeta `json:"meta"`
	Data interface{}         `json:"data"`
}

// ErrorResponse is the body of every failed response. Message is a string,
// or a list of strings for validation failures.
type ErrorResponse struct {
	Message    interface{} `json:"message"`
	StatusCode int         `json:"statusCode"`
	Error      string      `json:"error"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	PhoneNumber string          `json:"phoneNumber"`
	Address     string          `json:"address"`
	UserType    entity.UserType `json:"userType"`
}

// LoginResponse is the data block of a successful login.
type LoginResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"accessToken"`
}

func ToUserResponse(user entity.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
		Address:     user.Address,
		UserType:    user.UserType,
	}
}
