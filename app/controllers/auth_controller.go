package controllers

import (
	"github.com/shashiranjanraj/bookstore/app/services"
	"github.com/shashiranjanraj/bookstore/pkg/ctx"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=72"`
}

// Login exchanges credentials for an access token.
func (ac *AuthController) Login(c *ctx.Context) {
	var body loginRequest
	if !c.BindJSON(&body) {
		return
	}

	token, err := ac.auth.Login(c.Context(), body.Email, body.Password)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]string{"token": token})
}
