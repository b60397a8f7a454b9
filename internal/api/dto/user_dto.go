package dto

import "time"

type RegisterDTO struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type CredentialDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserDTO struct {
	ID        uint64    `json:"id,string"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserBriefDTO 作者与评论者的展示信息
type UserBriefDTO struct {
	ID       uint64 `json:"id,string"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

type TokenDTO struct {
	Token string   `json:"token"`
	User  *UserDTO `json:"user"`
}
