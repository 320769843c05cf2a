package service

import (
	"context"
	"errors"
	"strings"

	"github.com/hance08/remit/internal/apperror"
	"github.com/hance08/remit/internal/config"
	"github.com/hance08/remit/internal/model"
	"github.com/hance08/remit/internal/repository"
	"github.com/hance08/remit/internal/store"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type RegistrationRequest struct {
	Username       string
	Password       string
	Email          string
	PhoneNumber    string
	OpeningBalance decimal.Decimal
}

func (r RegistrationRequest) Validate() error {
	if strings.TrimSpace(r.Username) == "" || r.Password == "" ||
		strings.TrimSpace(r.Email) == "" || strings.TrimSpace(r.PhoneNumber) == "" {
		return apperror.InvalidRequest(apperror.MsgMissingField)
	}
	if r.OpeningBalance.IsNegative() {
		return apperror.InvalidRequest(apperror.MsgNegativeBalance)
	}
	if !r.OpeningBalance.Equal(r.OpeningBalance.Truncate(2)) {
		return apperror.InvalidRequest(apperror.MsgAmountPrecision)
	}
	return nil
}

var registrationOutcome = outcome{constraints: RegistrationConstraints, conflict: apperror.MsgRegistrationFailed}

type UserService struct {
	config *config.Config
	logger *zap.Logger
}

func NewUserService(cfg *config.Config, logger *zap.Logger) *UserService {
	if cfg == nil {
		cfg = config.NewDefault()
	}
	return &UserService{config: cfg, logger: logger}
}

// Register creates a user and its account in one unit of work.
func (us *UserService) Register(ctx context.Context, sess store.Session, req RegistrationRequest) (*model.User, error) {
	log := us.logger.With(
		zap.String("session_id", sess.ID()),
		zap.String("op", "register"),
		zap.String("principal", req.Username),
	)

	if err := req.Validate(); err != nil {
		return nil, fail(sess, log, err, registrationOutcome)
	}

	cost := us.config.Security.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), cost)
	if err != nil {
		return nil, fail(sess, log, apperror.InvalidRequest(apperror.MsgRegistrationFailed).Wrap(err), registrationOutcome)
	}

	user := &model.User{
		Username:     strings.TrimSpace(req.Username),
		PasswordHash: string(hash),
		Email:        strings.TrimSpace(req.Email),
		PhoneNumber:  strings.TrimSpace(req.PhoneNumber),
	}
	if err := sess.AddUser(ctx, user); err != nil {
		return nil, fail(sess, log, err, registrationOutcome)
	}

	acc := &model.Account{
		Username:  user.Username,
		Balance:   req.OpeningBalance,
		IsBlocked: false,
	}
	if err := sess.AddAccount(ctx, acc); err != nil {
		return nil, fail(sess, log, err, registrationOutcome)
	}

	if err := sess.Commit(); err != nil {
		return nil, fail(sess, log, err, registrationOutcome)
	}

	log.Info("user registered", zap.Int64("user_id", user.ID), zap.Int64("account_id", acc.ID))
	return user, nil
}

// Authenticate checks the password of username. Unknown users and wrong
// passwords fail the same way.
func (us *UserService) Authenticate(ctx context.Context, sess store.Session, username, password string) (*model.User, error) {
	log := us.logger.With(
		zap.String("session_id", sess.ID()),
		zap.String("op", "authenticate"),
		zap.String("principal", username),
	)
	denied := outcome{constraints: RegistrationConstraints, conflict: apperror.MsgInvalidCredentials}

	user, err := sess.FindUser(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			err = apperror.Unauthorized(apperror.MsgInvalidCredentials).Wrap(err)
		}
		return nil, fail(sess, log, err, denied)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fail(sess, log, apperror.Unauthorized(apperror.MsgInvalidCredentials).Wrap(err), denied)
	}
	if user.IsRestricted {
		return nil, fail(sess, log, apperror.Unauthorized(apperror.MsgUserRestricted), denied)
	}

	log.Info("user authenticated")
	return user, nil
}

// GetAccount returns the account owned by username.
func (us *UserService) GetAccount(ctx context.Context, sess store.Session, username string) (*model.Account, error) {
	acc, err := repository.NewAccountRepository(sess).FindByUsername(ctx, username)
	if err != nil {
		log := us.logger.With(zap.String("session_id", sess.ID()), zap.String("op", "get_account"), zap.String("principal", username))
		return nil, fail(sess, log, err, outcome{constraints: TransferConstraints, conflict: apperror.MsgAccountNotFound})
	}
	return acc, nil
}
