package adminService

import (
	"VyapaarAI/internal/api/admin"
	"VyapaarAI/internal/entity"
	contextPkg "VyapaarAI/pkg/context"
	jwtPkg "VyapaarAI/pkg/jwt"
	"crypto/subtle"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func (s *adminService) Login(ctx context.Context, req admin.LoginRequest) (admin.LoginResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if s.username == "" {
		return admin.LoginResponse{}, admin.ErrLoginDisabled
	}

	usernameOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.username)) == 1
	passwordErr := s.bcrypt.ComparePassword(s.passwordHash, req.Password)
	if !usernameOK || passwordErr != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"username":   req.Username,
		}).Warn("Admin login rejected")
		return admin.LoginResponse{}, admin.ErrInvalidCredentials
	}

	token, expiresAt, err := jwtPkg.Sign(map[string]interface{}{
		"username": s.username,
		"role":     entity.RoleAdmin,
	}, s.tokenTTL)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to sign admin token")
		return admin.LoginResponse{}, admin.ErrIssueToken
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"username":   s.username,
	}).Info("Admin logged in")

	return admin.LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}
