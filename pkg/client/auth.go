package client

import (
	"context"
	"fmt"

	"innkeeper/pkg/model"
)

type AuthResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user,omitempty"`
}

// AuthClient covers the guest registration/login and admin login endpoints.
type AuthClient struct {
	httpClient *HttpClient
}

func NewAuthClient(baseURL string) *AuthClient {
	return &AuthClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *AuthClient) Register(ctx context.Context, username, email, password string) (*AuthResponse, error) {
	body := map[string]string{"username": username, "email": email, "password": password}
	resp, err := c.httpClient.POST(ctx, "/api/v1/users/register", body)
	if err != nil {
		return nil, err
	}
	return decodeAuth(resp)
}

func (c *AuthClient) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}
	resp, err := c.httpClient.POST(ctx, "/api/v1/users/login", body)
	if err != nil {
		return nil, err
	}
	return decodeAuth(resp)
}

func (c *AuthClient) AdminLogin(ctx context.Context, username, password string) (*AuthResponse, error) {
	body := map[string]string{"username": username, "password": password}
	resp, err := c.httpClient.POST(ctx, "/api/v1/admin/login", body)
	if err != nil {
		return nil, err
	}
	return decodeAuth(resp)
}

func decodeAuth(resp *Response) (*AuthResponse, error) {
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("authentication failed (%d): %s", resp.StatusCode, GetErrorMessage(resp))
	}

	var auth AuthResponse
	if err := resp.DecodeJSON(&auth); err != nil {
		return nil, fmt.Errorf("could not decode auth response: %w", err)
	}
	return &auth, nil
}
