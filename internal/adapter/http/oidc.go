package adapthttp

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

// DiscoverOIDC fetches the issuer's discovery document and builds an enabled
// OIDCConfig.
func DiscoverOIDC(ctx context.Context, issuer, clientID, clientSecret, redirectURL string) (OIDCConfig, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return OIDCConfig{}, fmt.Errorf("oidc discovery: %w", err)
	}
	return OIDCConfig{
		Enabled:  true,
		Provider: provider,
		OAuth2Config: oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
		},
	}, nil
}
