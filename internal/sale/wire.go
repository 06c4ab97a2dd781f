package sale

import (
	"database/sql"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tradepost/internal/config"
	"tradepost/internal/events"
	productrepo "tradepost/internal/product/repository"
	"tradepost/internal/sale/controller"
	"tradepost/internal/sale/repository"
	"tradepost/internal/sale/service"
	"tradepost/internal/sale/usecase"
)

func NewModule(db *sql.DB, cfg *config.Config, bus *events.Bus, logger *zap.Logger) *controller.SalesController {
	saleRepo := repository.NewMySQLSaleRepository(db)
	saleItemRepo := repository.NewMySQLSaleItemRepository(db)
	productRepo := productrepo.NewMySQLRepository(db)

	availabilitySvc := service.NewAvailabilityService(productRepo, saleRepo, saleItemRepo, logger)
	mutationSvc := service.NewMutationService(db, productRepo, saleRepo, saleItemRepo, logger, cfg.Sale.MutationTxTimeout)

	taxRate := decimal.NewFromFloat(cfg.Sale.TaxRate)

	createUC := usecase.NewCreateSaleUseCase(mutationSvc, saleRepo, saleItemRepo, bus, logger, cfg.Sale.MaxRetryAttempts, taxRate)
	updateUC := usecase.NewUpdateSaleUseCase(mutationSvc, saleRepo, saleItemRepo, bus, logger, cfg.Sale.MaxRetryAttempts, taxRate)
	deleteUC := usecase.NewDeleteSaleUseCase(mutationSvc, bus, logger, cfg.Sale.MaxRetryAttempts)
	getUC := usecase.NewGetSaleUseCase(saleRepo, saleItemRepo, logger)
	checkUC := usecase.NewCheckStockUseCase(availabilitySvc, logger)

	return controller.NewSalesController(createUC, updateUC, deleteUC, getUC, checkUC, logger)
}
