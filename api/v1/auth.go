package v1

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/bookbazaar/bookbazaar/api/auth"
	"github.com/bookbazaar/bookbazaar/http/response"
	"github.com/bookbazaar/bookbazaar/log"
	"github.com/bookbazaar/bookbazaar/model"
	"github.com/bookbazaar/bookbazaar/store"
	"github.com/bookbazaar/bookbazaar/validator"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	register := &model.RegisterRequest{}
	if err := json.NewDecoder(r.Body).Decode(register); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		response.BadRequest(w, r, response.CodeInvalidInput)
		return
	}
	register.Email = strings.ToLower(strings.TrimSpace(register.Email))

	if err := validator.ValidateRegisterRequest(register); err != nil {
		log.Debug("Failed to validate register request", zap.Error(err))
		response.BadRequest(w, r, response.CodeInvalidInput)
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(register.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to generate password hash", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	user := model.User{
		Name:         register.Name,
		Email:        register.Email,
		PasswordHash: string(passwordHash),
	}
	if _, err := h.store.CreateUser(&user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			log.Debug("Email already registered", zap.String("email", register.Email))
			response.Conflict(w, r, response.CodeEmailExists)
			return
		}
		log.Error("Failed to register user", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	response.Created(w, r, model.RegisterResponse{OK: true})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	login := &model.LoginRequest{}
	if err := json.NewDecoder(r.Body).Decode(login); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		response.BadRequest(w, r, response.CodeInvalidInput)
		return
	}
	login.Email = strings.ToLower(strings.TrimSpace(login.Email))

	if err := validator.ValidateLoginRequest(login); err != nil {
		log.Debug("Failed to validate login request", zap.Error(err))
		response.BadRequest(w, r, response.CodeInvalidInput)
		return
	}

	user, err := h.store.GetUser(&model.FindUser{Email: &login.Email})
	if err != nil {
		log.Error("Failed to get user", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if user == nil {
		log.Debug("User not found", zap.String("email", login.Email))
		response.Unauthorized(w, r)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(login.Password)); err != nil {
		log.Debug("Password mismatch", zap.String("email", login.Email))
		response.Unauthorized(w, r)
		return
	}

	token, err := h.generateToken(user)
	if err != nil {
		log.Error("Failed to generate access token", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	response.OK(w, r, model.LoginResponse{
		OK: true,
		User: &model.SessionUser{
			Name:  user.Name,
			Email: user.Email,
			Token: token,
		},
		Token: token,
	})
}

func (h *Handler) generateToken(user *model.User) (string, error) {
	sSetting, err := h.store.GetOrUpsertSystemSecuritySetting()
	if err != nil {
		return "", errors.Wrap(err, "failed to get security setting")
	}
	if sSetting == nil || sSetting.JWTSecret == "" {
		return "", errors.New("JWT secret is not set")
	}

	expireTime := time.Now().Add(auth.AccessTokenDuration)
	return auth.GenerateAccessToken(user.Email, user.Name, expireTime, []byte(sSetting.JWTSecret))
}
