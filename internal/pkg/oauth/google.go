package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/people/v1"
)

type GoogleInfo struct {
	Name    string
	Email   string
	Picture string
}

type clientSecrets map[string]creds

type creds struct {
	ClientId     string   `json:"client_id"`
	ProjectId    string   `json:"project_id"`
	AuthUri      string   `json:"auth_uri"`
	TokenUri     string   `json:"token_uri"`
	ClientSecret string   `json:"client_secret"`
	RedirectUris []string `json:"redirect_uris"`
}

var scopes = []string{
	people.UserinfoEmailScope,
	people.UserinfoProfileScope,
}

// Parser exchanges Google authorization codes for the signed-in user's
// profile.
type Parser struct {
	conf oauth2.Config
}

// NewParser reads the OAuth client of clientType ("web", "installed") from
// the downloaded client secret file.
func NewParser(secretPath, clientType, redirectURL string) (*Parser, error) {
	file, err := os.Open(secretPath)
	if err != nil {
		return nil, fmt.Errorf("can't open client secret: %w", err)
	}
	defer file.Close()

	cs := make(clientSecrets)
	if err := json.NewDecoder(file).Decode(&cs); err != nil {
		return nil, fmt.Errorf("can't parse secrets: %w", err)
	}

	secret, ok := cs[clientType]
	if !ok {
		return nil, fmt.Errorf("no %q client in %s", clientType, secretPath)
	}

	return &Parser{
		conf: oauth2.Config{
			ClientID:     secret.ClientId,
			ClientSecret: secret.ClientSecret,
			Endpoint:     google.Endpoint,
			RedirectURL:  redirectURL,
			Scopes:       scopes,
		},
	}, nil
}

func (p *Parser) GetInfoGoogle(ctx context.Context, authCode string) (*GoogleInfo, error) {
	token, err := p.conf.Exchange(ctx, authCode)
	if err != nil {
		return nil, fmt.Errorf("code exchange: %w", err)
	}

	peopleService, err := people.NewService(ctx,
		option.WithScopes(scopes...),
		option.WithTokenSource(p.conf.TokenSource(ctx, token)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to People API: %w", err)
	}

	resp, err := peopleService.People.
		Get("people/me").
		PersonFields("names,emailAddresses,photos").
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to make request for user info: %w", err)
	}

	if resp.HTTPStatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get user info: code: %d", resp.HTTPStatusCode)
	}

	return personInfo(resp), nil
}

func personInfo(p *people.Person) *GoogleInfo {
	info := &GoogleInfo{}

	for _, n := range p.Names {
		if n.Metadata != nil && n.Metadata.Primary {
			info.Name = n.DisplayName
			break
		}
	}

	for _, e := range p.EmailAddresses {
		if e.Metadata != nil && e.Metadata.Primary {
			info.Email = e.Value
			break
		}
	}

	for _, ph := range p.Photos {
		if ph.Metadata != nil && ph.Metadata.Primary {
			info.Picture = ph.Url
			break
		}
	}

	return info
}
