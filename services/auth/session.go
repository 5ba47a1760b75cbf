package auth

import (
	"context"

	"github.com/MarcGrol/storefront/lib/mylog"
	"github.com/MarcGrol/storefront/lib/myvault"
)

// Session answers "may this session submit an order" from the stored token.
// A vault that cannot be read counts as not logged in.
type Session struct {
	vault      myvault.Vault
	sessionUID string
	logger     mylog.Logger
}

func (s Session) IsAuthenticated(c context.Context) bool {
	return s.Token(c) != ""
}

func (s Session) Token(c context.Context) string {
	token, found, err := s.vault.Get(c, s.sessionUID)
	if err != nil {
		s.logger.Log(c, s.sessionUID, mylog.SeverityWarn, "Error reading token: %s", err)
		return ""
	}
	if !found {
		return ""
	}
	return token.AccessToken
}

func (s Session) Email(c context.Context) string {
	token, found, err := s.vault.Get(c, s.sessionUID)
	if err != nil || !found {
		return ""
	}
	return token.Email
}
