package validator // import "github.com/bookbazaar/bookbazaar/validator"

import (
	"github.com/pkg/errors"

	"github.com/bookbazaar/bookbazaar/model"
	"github.com/bookbazaar/bookbazaar/util"
)

func ValidateRegisterRequest(req *model.RegisterRequest) error {
	if req == nil {
		return errors.New("request is nil")
	}
	if req.Name == "" {
		return errors.New("name is empty")
	}
	if req.Email == "" {
		return errors.New("email is empty")
	}
	if !util.ValidateEmail(req.Email) {
		return errors.New("email is invalid")
	}
	if req.Password == "" {
		return errors.New("password is empty")
	}
	return nil
}

func ValidateLoginRequest(req *model.LoginRequest) error {
	if req == nil {
		return errors.New("request is nil")
	}
	if req.Email == "" {
		return errors.New("email is empty")
	}
	if req.Password == "" {
		return errors.New("password is empty")
	}
	return nil
}
