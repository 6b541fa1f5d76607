package dto

import "github.com/google/uuid"

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	// Platform is "freelancer", "career_copilot" or "both".
	Platform string `json:"platform"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Response is the common API envelope.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// AuthData is the payload returned by register and login.
type AuthData struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

type UserInfo struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	// Platforms lists the platforms actually activated, which can be fewer
	// than requested when a fan-out leg fails.
	Platforms []string `json:"platforms"`
}

type HealthData struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Stores    map[string]string `json:"stores"`
}
