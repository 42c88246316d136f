// Package sheets is a row store over the Google Sheets v4 REST API
package sheets

import (
	"crypto/rsa"
	"encoding/json"
	"os"
	"strings"

	perr "taxkaki/internal/platform/errors"

	"github.com/golang-jwt/jwt/v5"
)

const defaultTokenURI = "https://oauth2.googleapis.com/token"

// Credentials is the subset of a service account key file we need
type Credentials struct {
	ClientEmail  string `json:"client_email"`
	PrivateKeyID string `json:"private_key_id"`
	PrivateKey   string `json:"private_key"`
	TokenURI     string `json:"token_uri"`

	key *rsa.PrivateKey
}

// LoadCredentials reads and parses a service account key file
func LoadCredentials(path string) (*Credentials, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "read service account key %s", path)
	}
	return ParseCredentials(b)
}

// ParseCredentials parses a service account key from JSON
func ParseCredentials(b []byte) (*Credentials, error) {
	var c Credentials
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeJSON, "service account key is not valid json")
	}
	if strings.TrimSpace(c.ClientEmail) == "" {
		return nil, perr.MissingField("client_email")
	}
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(c.PrivateKey))
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "service account private key")
	}
	c.key = key
	if c.TokenURI == "" {
		c.TokenURI = defaultTokenURI
	}
	return &c, nil
}
