package bcrypt

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrMismatch = errors.New("credentials do not match")

type IBcrypt interface {
	HashPassword(password string) (string, error)
	ComparePassword(hashPassword string, password string) error
	IsHash(value string) bool
}

type bcryptService struct {
	cost int
}

func New() IBcrypt {
	return &bcryptService{cost: bcrypt.DefaultCost}
}

func NewWithCost(cost int) IBcrypt {
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	return &bcryptService{cost: cost}
}

func (b *bcryptService) HashPassword(password string) (string, error) {
	result, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", err
	}
	return string(result), nil
}

// ComparePassword folds every bcrypt failure into ErrMismatch so callers
// never leak which part of the login was wrong.
func (b *bcryptService) ComparePassword(hashPassword string, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hashPassword), []byte(password)); err != nil {
		return ErrMismatch
	}
	return nil
}

func (b *bcryptService) IsHash(value string) bool {
	_, err := bcrypt.Cost([]byte(value))
	return err == nil
}
