package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
)

var (
	ErrMissingToken       = errors.New("missing pet token")
	ErrInvalidCredentials = errors.New("invalid pet token")
)

type VerifyRequest struct {
	Token string
}

// VerifyUseCase guards the HTTP intake with a shared token. An empty Token
// disables the check.
type VerifyUseCase struct {
	Token string
}

func (u VerifyUseCase) Enabled() bool {
	return strings.TrimSpace(u.Token) != ""
}

func (u VerifyUseCase) Execute(_ context.Context, req VerifyRequest) error {
	if !u.Enabled() {
		return nil
	}
	presented := strings.TrimSpace(req.Token)
	if presented == "" {
		return ErrMissingToken
	}
	if subtle.ConstantTimeCompare([]byte(presented), []byte(strings.TrimSpace(u.Token))) != 1 {
		return ErrInvalidCredentials
	}
	return nil
}
