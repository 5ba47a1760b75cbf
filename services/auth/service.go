package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MarcGrol/storefront/lib/myerrors"
	"github.com/MarcGrol/storefront/lib/myhttpclient"
	"github.com/MarcGrol/storefront/lib/mylog"
	"github.com/MarcGrol/storefront/lib/mytime"
	"github.com/MarcGrol/storefront/lib/myvault"
)

// Service talks to the remote auth endpoints and keeps the resulting token per session.
type Service struct {
	vault     myvault.Vault
	sender    myhttpclient.HTTPSender
	baseURL   string
	nower     mytime.Nower
	validator *validator.Validate
	logger    mylog.Logger
}

func New(vault myvault.Vault, sender myhttpclient.HTTPSender, baseURL string, nower mytime.Nower) *Service {
	return &Service{
		vault:     vault,
		sender:    sender,
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		nower:     nower,
		validator: validator.New(validator.WithRequiredStructEnabled()),
		logger:    mylog.New("auth"),
	}
}

func (s *Service) Login(c context.Context, sessionUID string, creds Credentials) error {
	err := s.validator.Struct(creds)
	if err != nil {
		return myerrors.NewInvalidInputError(err)
	}

	respBody, err := s.post(c, "/login", creds)
	if err != nil {
		return err
	}

	resp := loginResponseDTO{}
	err = json.Unmarshal(respBody, &resp)
	if err != nil {
		return myerrors.NewInternalError(fmt.Errorf("error parsing login response: %s", err))
	}
	if resp.Token == "" {
		return myerrors.NewInternalError(fmt.Errorf("login response carries no token"))
	}

	err = s.vault.Put(c, sessionUID, myvault.Token{
		SessionUID:  sessionUID,
		Email:       creds.Email,
		AccessToken: resp.Token,
		CreatedAt:   s.nower.Now(),
	})
	if err != nil {
		return myerrors.NewInternalError(fmt.Errorf("error storing token: %s", err))
	}

	s.logger.Log(c, sessionUID, mylog.SeverityInfo, "Session logged in as %s", creds.Email)

	return nil
}

func (s *Service) Register(c context.Context, reg Registration) error {
	err := s.validator.Struct(reg)
	if err != nil {
		return myerrors.NewInvalidInputError(err)
	}

	_, err = s.post(c, "/register", Credentials{Email: reg.Email, Password: reg.Password})
	if err != nil {
		return err
	}

	s.logger.Log(c, "", mylog.SeverityInfo, "Registered %s", reg.Email)

	return nil
}

func (s *Service) Logout(c context.Context, sessionUID string) error {
	err := s.vault.Delete(c, sessionUID)
	if err != nil {
		return myerrors.NewInternalError(fmt.Errorf("error removing token: %s", err))
	}

	s.logger.Log(c, sessionUID, mylog.SeverityInfo, "Session logged out")

	return nil
}

func (s *Service) Session(sessionUID string) Session {
	return Session{
		vault:      s.vault,
		sessionUID: sessionUID,
		logger:     s.logger,
	}
}

func (s *Service) post(c context.Context, path string, creds Credentials) ([]byte, error) {
	body, err := json.Marshal(creds)
	if err != nil {
		return nil, myerrors.NewInternalError(fmt.Errorf("error marshalling request: %s", err))
	}

	httpStatus, respBody, err := s.sender.Send(c, http.MethodPost, s.baseURL+path, "", body)
	if err != nil {
		return nil, myerrors.NewUnavailableError(fmt.Errorf("auth service unreachable: %s", err))
	}

	if httpStatus < 200 || httpStatus >= 300 {
		msg := fmt.Sprintf("http status %d", httpStatus)
		errResp := errorResponseDTO{}
		if json.NewDecoder(bytes.NewReader(respBody)).Decode(&errResp) == nil && errResp.Error != "" {
			msg = errResp.Error
		}
		return nil, myerrors.FromHTTPStatus(httpStatus, fmt.Errorf("%s failed: %s", strings.TrimPrefix(path, "/"), msg))
	}

	return respBody, nil
}
