package backend

import (
	"context"
	"net/http"

	"github.com/mmeshcher/floran-storefront/internal/model"
)

// AuthResult содержит ответ на вход или регистрацию: токен и профиль пользователя.
type AuthResult struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// RegisterRequest содержит данные для регистрации покупателя.
type RegisterRequest struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	ReferralCode string `json:"referral_code,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login выполняет вход по email и паролю.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var res AuthResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, loginRequest{Email: email, Password: password}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Register создаёт учётную запись покупателя.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	var res AuthResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", nil, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// SubmitContact отправляет сообщение из формы обратной связи.
func (c *Client) SubmitContact(ctx context.Context, req model.ContactRequest) error {
	return c.do(ctx, http.MethodPost, "/api/contact", nil, req, nil)
}
