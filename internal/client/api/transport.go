package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/iudanet/urugendo/pkg/api"
)

// TokenSource supplies the token pair for the auth transport and accepts
// lifecycle events from it. The session manager implements this interface;
// the transport never touches session state directly.
type TokenSource interface {
	// AccessToken returns the current access token or "" if none
	AccessToken(ctx context.Context) string

	// RefreshToken returns the current refresh token or "" if none
	RefreshToken(ctx context.Context) string

	// SetAccessToken persists a rotated access token. The write completes
	// before the transport replays the original request.
	SetAccessToken(ctx context.Context, token string) error

	// Clear drops the whole session (invoked on irrecoverable refresh failure)
	Clear(ctx context.Context) error
}

// authTransport реализует протокол обновления токена на уровне запроса:
//  1. перед отправкой добавляет Authorization: Bearer <access>, если токен есть;
//  2. на 401 делает ровно одну попытку refresh и ровно один повтор запроса;
//  3. любой другой статус (и второй 401 после повтора) отдается без изменений.
type authTransport struct {
	base       http.RoundTripper
	tokens     TokenSource
	refreshURL string
}

// RoundTrip implements http.RoundTripper
func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	first := req.Clone(ctx)
	if token := t.tokens.AccessToken(ctx); token != "" {
		first.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := t.base.RoundTrip(first)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	// Нет refresh token — выходим из сессии и отдаем исходный 401
	refreshToken := t.tokens.RefreshToken(ctx)
	if refreshToken == "" {
		_ = t.tokens.Clear(ctx)
		return resp, nil
	}

	newAccess, refreshErr := t.refresh(ctx, refreshToken)
	if refreshErr != nil {
		// Refresh не удался: чистим сессию, отдаем ошибку refresh
		_ = t.tokens.Clear(ctx)
		_ = resp.Body.Close()
		return nil, refreshErr
	}

	// Сначала сохраняем новый токен, только потом повторяем запрос
	if err := t.tokens.SetAccessToken(ctx, newAccess); err != nil {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("failed to persist refreshed token: %w", err)
	}

	_ = resp.Body.Close()

	retry := req.Clone(ctx)
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, fmt.Errorf("failed to rewind request body: %w", err)
		}
		retry.Body = body
	}
	retry.Header.Set("Authorization", "Bearer "+newAccess)

	// Повтор идет напрямую в base: второй 401 вернется как есть
	return t.base.RoundTrip(retry)
}

// refresh запрашивает новый access token по refresh token.
// Запрос идет мимо authTransport, чтобы не зациклиться на 401.
func (t *authTransport) refresh(ctx context.Context, refreshToken string) (string, error) {
	payload, err := json.Marshal(api.RefreshRequest{Refresh: refreshToken})
	if err != nil {
		return "", fmt.Errorf("failed to marshal refresh request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.refreshURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: DefaultTimeout, Transport: t.base}
	resp, err := client.Do(req)
	if err != nil {
		return "", &NetworkError{Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &NetworkError{Err: fmt.Errorf("failed to read refresh response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return "", classifyError(resp.StatusCode, body)
	}

	var refreshResp api.RefreshResponse
	if err := json.Unmarshal(body, &refreshResp); err != nil {
		return "", fmt.Errorf("failed to decode refresh response: %w", err)
	}
	if refreshResp.Access == "" {
		return "", &AuthError{Message: "refresh returned empty access token", StatusCode: resp.StatusCode}
	}

	return refreshResp.Access, nil
}
