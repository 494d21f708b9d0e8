package auth

import (
	"context"
	"fmt"

	"asre_hazir/internal/config"
	"asre_hazir/internal/domain"
)

// StaticVerifier resolves bearer tokens against the configured token
// table. Good for self-hosted deployments and tests; a hosted identity
// provider would replace this behind the same interface.
type StaticVerifier struct {
	tokens map[string]domain.Identity
}

func NewStaticVerifier(cfg config.AuthConfig) *StaticVerifier {
	tokens := make(map[string]domain.Identity, len(cfg.Tokens))
	for token, id := range cfg.Tokens {
		tokens[token] = domain.Identity{
			UserID: id.UserID,
			Name:   id.Name,
			Email:  id.Email,
		}
	}
	return &StaticVerifier{tokens: tokens}
}

func (v *StaticVerifier) Verify(ctx context.Context, token string) (*domain.Identity, error) {
	identity, ok := v.tokens[token]
	if !ok {
		return nil, fmt.Errorf("unknown token")
	}
	return &identity, nil
}
