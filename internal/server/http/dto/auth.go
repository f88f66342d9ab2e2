package dto

import "github.com/polkiloo/procurement/internal/domain/model"

// SendOTPRequest describes the phone an OTP is requested for.
type SendOTPRequest struct {
	Phone string `json:"phone"`
}

// VerifyOTPRequest carries the code received by SMS.
type VerifyOTPRequest struct {
	OTP string `json:"otp"`
}

// LoginResponse is returned after a successful OTP verification.
type LoginResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}
