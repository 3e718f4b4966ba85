package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-job-tracker/internal/config"
	"github.com/MKhiriev/go-job-tracker/internal/logger"
	"github.com/MKhiriev/go-job-tracker/internal/utils"
	"github.com/MKhiriev/go-job-tracker/models"
)

const (
	authPrefix  = "/api/v1/auth"
	versionPath = "/api/version/"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP implementation of [ServerAdapter]
// for the server at adapterCfg.HTTPAddress. A scheme-less address gets
// "http://".
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout)

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errEmptyAddress
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) Register(ctx context.Context, request models.RegisterRequest) (models.RegisterResponse, error) {
	var response models.RegisterResponse
	if err := h.post(ctx, "/register", "", request, &response); err != nil {
		return models.RegisterResponse{}, fmt.Errorf("register: %w", err)
	}
	return response, nil
}

func (h *httpServerAdapter) Login(ctx context.Context, request models.LoginRequest) (models.LoginResponse, error) {
	var response models.LoginResponse
	if err := h.post(ctx, "/login", "", request, &response); err != nil {
		return models.LoginResponse{}, fmt.Errorf("login: %w", err)
	}
	return response, nil
}

func (h *httpServerAdapter) Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	var response models.RefreshResponse
	if err := h.post(ctx, "/refresh-token", "", models.RefreshRequest{RefreshToken: refreshToken}, &response); err != nil {
		return models.TokenPair{}, fmt.Errorf("refresh: %w", err)
	}
	return response.Tokens, nil
}

func (h *httpServerAdapter) Logout(ctx context.Context, accessToken, refreshToken string) (string, error) {
	var response models.MessageResponse
	if err := h.post(ctx, "/logout", accessToken, models.RefreshRequest{RefreshToken: refreshToken}, &response); err != nil {
		return "", fmt.Errorf("logout: %w", err)
	}
	return response.Message, nil
}

func (h *httpServerAdapter) LogoutAll(ctx context.Context, accessToken string) (string, error) {
	var response models.MessageResponse
	if err := h.post(ctx, "/logout-all", accessToken, struct{}{}, &response); err != nil {
		return "", fmt.Errorf("logout all: %w", err)
	}
	return response.Message, nil
}

func (h *httpServerAdapter) ChangePassword(ctx context.Context, accessToken string, request models.ChangePasswordRequest) (string, error) {
	var response models.MessageResponse
	if err := h.post(ctx, "/change-password", accessToken, request, &response); err != nil {
		return "", fmt.Errorf("change password: %w", err)
	}
	return response.Message, nil
}

func (h *httpServerAdapter) Dashboard(ctx context.Context, accessToken string) (string, error) {
	var response models.MessageResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Authorization", utils.BearerHeader(accessToken)).
		SetResult(&response).
		Get(authPrefix + "/dashboard")
	if err != nil {
		return "", fmt.Errorf("dashboard request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", fmt.Errorf("dashboard: %w", err)
	}

	return response.Message, nil
}

func (h *httpServerAdapter) ListUsers(ctx context.Context) (models.UsersResponse, error) {
	var response models.UsersResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&response).
		Get(authPrefix + "/")
	if err != nil {
		return models.UsersResponse{}, fmt.Errorf("list users request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UsersResponse{}, fmt.Errorf("list users: %w", err)
	}

	return response, nil
}

func (h *httpServerAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/plain").
		Get(versionPath)
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", fmt.Errorf("version: %w", err)
	}

	return strings.TrimSpace(resp.String()), nil
}

// post sends body as JSON to the auth route path and decodes a successful
// response into result. accessToken is attached as a bearer token when set.
func (h *httpServerAdapter) post(ctx context.Context, path, accessToken string, body, result any) error {
	req := h.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(result)
	if accessToken != "" {
		req.SetHeader("Authorization", utils.BearerHeader(accessToken))
	}

	resp, err := req.Post(authPrefix + path)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		h.logger.Debug().Int("status", resp.StatusCode()).Str("path", path).Msg("server rejected request")
		return err
	}

	return nil
}
