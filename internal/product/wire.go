package product

import (
	"database/sql"

	"tradepost/internal/product/controller"
	"tradepost/internal/product/repository"
	"tradepost/internal/product/service"
	"tradepost/internal/product/usecase"

	"go.uber.org/zap"
)

func NewModule(db *sql.DB, logger *zap.Logger) *controller.Controller {
	repo := repository.NewMySQLRepository(db)
	svc := service.NewService(repo)
	uc := usecase.NewSearchUseCase(svc)
	return controller.NewController(uc, logger)
}
