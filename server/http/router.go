package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"nayose-service/internal/config"
	"nayose-service/internal/middleware"
	nayoseHnd "nayose-service/internal/nayose/handler"
	"nayose-service/server/http/handlers"
)

func NewRouter(cfg config.Config, logger zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// 順序に意味がある: recover -> requestID -> logging -> cors -> limit
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))
	r.Use(middleware.LimitBytes(int64(cfg.MaxUploadMB) * 1024 * 1024))

	r.Get("/health", handlers.Health)

	// 照合コアの直接呼び出し
	r.Post("/match", nayoseHnd.Match(logger))

	// ステージ1: チェック、ステージ2: インポート用生成
	r.Post("/check", nayoseHnd.Check(cfg, logger))
	r.Post("/export", nayoseHnd.Export(cfg, logger))

	return r
}
