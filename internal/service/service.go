package service

import (
	"time"

	"github.com/hance08/remit/internal/config"
	"go.uber.org/zap"
)

type Service struct {
	Transaction *TransactionService
	User        *UserService
	Category    *CategoryService
	Config      *config.Config
}

func NewService(cfg *config.Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		Transaction: NewTransactionService(cfg, logger, time.Now),
		User:        NewUserService(cfg, logger),
		Category:    NewCategoryService(logger),
		Config:      cfg,
	}
}
