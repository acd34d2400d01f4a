package jira

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"
)

// AuthEnvVar holds the JSON credential blob
const AuthEnvVar = "JIRA_AUTH"

// ErrMissingCredentials is returned when JIRA_AUTH is not set
var ErrMissingCredentials = errors.New(AuthEnvVar + " environment variable is not set. Must be a JSON string")

// Auth produces the Authorization header for every request
type Auth interface {
	AuthorizationHeader() string
}

type basicAuth struct {
	user   string
	secret string
}

func (a basicAuth) AuthorizationHeader() string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(a.user+":"+a.secret))
}

type bearerAuth struct {
	token string
}

func (a bearerAuth) AuthorizationHeader() string {
	return "Bearer " + a.token
}

// BasicAuth authenticates with an email/username and API token/password
func BasicAuth(user, secret string) Auth {
	return basicAuth{user: user, secret: secret}
}

// BearerAuth authenticates with a personal access token or OAuth2 access token
func BearerAuth(token string) Auth {
	return bearerAuth{token: token}
}

// authBlob mirrors the accepted shapes of the credential JSON
type authBlob struct {
	Basic *struct {
		Email    string `json:"email"`
		APIToken string `json:"apiToken"`
		Username string `json:"username"`
		Password string `json:"password"`
	} `json:"basic"`
	PersonalAccessToken string `json:"personalAccessToken"`
	OAuth2              *struct {
		AccessToken string `json:"accessToken"`
	} `json:"oauth2"`
}

// ParseAuth decodes a credential blob. Comments and trailing commas are allowed.
func ParseAuth(data []byte) (Auth, error) {
	var blob authBlob
	if err := json.Unmarshal(jsonc.ToJSON(data), &blob); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", AuthEnvVar, err)
	}

	switch {
	case blob.Basic != nil:
		user, secret := blob.Basic.Email, blob.Basic.APIToken
		if user == "" {
			user, secret = blob.Basic.Username, blob.Basic.Password
		}
		if user == "" || secret == "" {
			return nil, fmt.Errorf("%s: basic auth requires email+apiToken or username+password", AuthEnvVar)
		}
		return BasicAuth(user, secret), nil
	case blob.PersonalAccessToken != "":
		return BearerAuth(blob.PersonalAccessToken), nil
	case blob.OAuth2 != nil && blob.OAuth2.AccessToken != "":
		return BearerAuth(blob.OAuth2.AccessToken), nil
	default:
		return nil, fmt.Errorf("%s: no supported authentication method (basic, personalAccessToken, oauth2)", AuthEnvVar)
	}
}

// AuthFromEnv reads and parses JIRA_AUTH
func AuthFromEnv() (Auth, error) {
	raw, ok := os.LookupEnv(AuthEnvVar)
	if !ok || raw == "" {
		return nil, ErrMissingCredentials
	}
	return ParseAuth([]byte(raw))
}
