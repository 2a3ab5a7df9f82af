package google

import (
	"context"
	"fmt"

	"github.com/go-auth-api/internal/domain"
	"google.golang.org/api/idtoken"
)

// Verifier verifies Google ID tokens against a specific client ID.
type Verifier struct {
	clientID string
}

func NewVerifier(clientID string) *Verifier {
	return &Verifier{clientID: clientID}
}

// Verify validates the Google ID token and returns the identity it attests.
// Returns a domain.ErrUnauthorized-wrapped error if the token is invalid.
func (v *Verifier) Verify(ctx context.Context, token string) (*domain.ExternalIdentity, error) {
	p, err := idtoken.Validate(ctx, token, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("invalid google token: %w", domain.ErrUnauthorized)
	}
	email, _ := p.Claims["email"].(string)
	givenName, _ := p.Claims["given_name"].(string)
	familyName, _ := p.Claims["family_name"].(string)
	if email == "" {
		return nil, fmt.Errorf("google token has no email claim: %w", domain.ErrUnauthorized)
	}
	return &domain.ExternalIdentity{
		Email:     email,
		GivenName: givenName,
		LastName:  familyName,
	}, nil
}
