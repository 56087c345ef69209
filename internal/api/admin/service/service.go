package adminService

import (
	"VyapaarAI/internal/api/admin"
	"VyapaarAI/pkg/bcrypt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

const DefaultTokenTTL = 12 * time.Hour

type IAdminService interface {
	Login(ctx context.Context, req admin.LoginRequest) (admin.LoginResponse, error)
}

type adminService struct {
	log          *logrus.Logger
	bcrypt       bcrypt.IBcrypt
	username     string
	passwordHash string
	tokenTTL     time.Duration
}

// NewAdminService checks logins against a single configured account.
// Login is disabled when the username is empty or the hash is not bcrypt.
func NewAdminService(log *logrus.Logger, b bcrypt.IBcrypt, username, passwordHash string, tokenTTL time.Duration) IAdminService {
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}

	if username != "" && !b.IsHash(passwordHash) {
		log.Warn("ADMIN_PASSWORD_HASH is not a bcrypt hash, admin login disabled")
		username = ""
	}

	return &adminService{
		log:          log,
		bcrypt:       b,
		username:     username,
		passwordHash: passwordHash,
		tokenTTL:     tokenTTL,
	}
}
