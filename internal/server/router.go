package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	productctrl "tradepost/internal/product/controller"
	salectrl "tradepost/internal/sale/controller"
)

func NewRouter(productCtrl *productctrl.Controller, salesCtrl *salectrl.SalesController, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/products/search", productCtrl.HandleSearchProducts)

		r.Route("/sales", func(r chi.Router) {
			r.Post("/", salesCtrl.CreateSale)
			r.Post("/stock-check", salesCtrl.CheckStockForCreate)
			r.Get("/{saleId}", salesCtrl.GetSale)
			r.Put("/{saleId}", salesCtrl.UpdateSale)
			r.Delete("/{saleId}", salesCtrl.DeleteSale)
			r.Post("/{saleId}/stock-check", salesCtrl.CheckStockForUpdate)
		})
	})

	return r
}
