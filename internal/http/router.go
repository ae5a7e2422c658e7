// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// compression, CORS, security headers, idempotency, and rate limiting.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/tbourn/go-news-backend/docs"
	"github.com/tbourn/go-news-backend/internal/config"
	"github.com/tbourn/go-news-backend/internal/domain"
	"github.com/tbourn/go-news-backend/internal/http/handlers"
	"github.com/tbourn/go-news-backend/internal/http/middleware"
	"github.com/tbourn/go-news-backend/internal/repo"
	"github.com/tbourn/go-news-backend/internal/services"
)

// articleRepoShim adapts the repository free functions to the
// services.ArticleRepo interface expected by the ArticleService.
type articleRepoShim struct{}

// ListArticles proxies repo.ListArticles.
func (articleRepoShim) ListArticles(ctx context.Context, db *gorm.DB, q repo.ArticleQuery) ([]domain.Article, error) {
	return repo.ListArticles(ctx, db, q)
}

// GetArticle proxies repo.GetArticle.
func (articleRepoShim) GetArticle(ctx context.Context, db *gorm.DB, id int64) (*domain.Article, error) {
	return repo.GetArticle(ctx, db, id)
}

// UpdateArticleVotes proxies repo.UpdateArticleVotes.
func (articleRepoShim) UpdateArticleVotes(ctx context.Context, db *gorm.DB, id int64, inc int) (*domain.Article, error) {
	return repo.UpdateArticleVotes(ctx, db, id, inc)
}

// Exists proxies repo.Exists.
func (articleRepoShim) Exists(ctx context.Context, db *gorm.DB, entity repo.Entity, column string, value any) (bool, error) {
	return repo.Exists(ctx, db, entity, column, value)
}

// Services bundles the application services behind the handlers. RegisterRoutes
// builds it from the store; tests may build their own.
type Services struct {
	Topics   *services.TopicService
	Users    *services.UserService
	Articles *services.ArticleService
	Comments *services.CommentService
}

// NewServices constructs the application services over db.
func NewServices(db *gorm.DB, cfg config.Config) Services {
	return Services{
		Topics:   &services.TopicService{DB: db},
		Users:    &services.UserService{DB: db},
		Articles: services.NewArticleService(db, articleRepoShim{}),
		Comments: &services.CommentService{DB: db, IdempotencyTTL: cfg.IdempotencyTTL},
	}
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine and mounts the public API under cfg.APIBasePath.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Access logging (redacting unless LOG_REDACT=false)
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Gzip (metrics endpoint excluded)
//  8. CORS and Security headers
//
// Write routes additionally carry a per-IP rate limiter. On the comment POST
// route the idempotency validator runs first so replays bypass the limiter.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) Services {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured access logs
	if cfg.LogRedact {
		r.Use(middleware.RedactingLogger(middleware.RedactOptions{
			MaskHeaders: []string{middleware.HeaderIdempotencyKey},
		}))
	} else {
		r.Use(middleware.Logger())
	}

	// 4) Panic recovery to JSON 500
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Compression
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	// Token-bucket rate limiter per IP, mounted on write routes below
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByIP())
	writeLimit := rl.Handler()

	// 8) CORS posture (allow all if none configured)
	allowHeaders := []string{"Origin", "Content-Type", "Accept", middleware.HeaderIdempotencyKey}
	exposeHeaders := []string{"X-Request-ID", "Content-Length", handlers.HeaderIdempotencyReplayed}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     allowHeaders,
			ExposeHeaders:    exposeHeaders,
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	} else {
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     allowHeaders,
			ExposeHeaders:    exposeHeaders,
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:    cfg.Security.EnableHSTS,
		HSTSMaxAge:    cfg.Security.HSTSMaxAge,
		NoStoreWrites: true,
		EnablePolicy:  true,
		DocsPrefix:    "/swagger/",
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.MsgRouteNotFound)
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.MsgMethodNotAllowed)
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	if cfg.SwaggerEnabled {
		docs.SwaggerInfo.BasePath = cfg.APIBasePath
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	svcs := NewServices(db, cfg)
	h := handlers.New(svcs.Topics, svcs.Users, svcs.Articles, svcs.Comments)

	idem := middleware.IdempotencyValidator(
		middleware.IdempotencyOptions{MaxLen: 200},
		func(ctx context.Context, articleID, key string, now time.Time) (bool, error) {
			id, err := repo.ParseID(articleID)
			if err != nil {
				return false, err
			}
			rec, err := repo.GetIdempotency(ctx, db, id, key, now)
			if err != nil || rec == nil {
				return false, err
			}
			return true, nil
		},
	)

	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		api.GET("", h.GetEndpoints)

		api.GET("/topics", h.ListTopics)
		api.GET("/users", h.ListUsers)

		// Articles
		api.GET("/articles", h.ListArticles)
		api.GET("/articles/:article_id", h.GetArticle)
		api.PATCH("/articles/:article_id", writeLimit, h.UpdateArticleVotes)

		// Comments
		api.GET("/articles/:article_id/comments", h.ListComments)
		api.POST("/articles/:article_id/comments", idem, writeLimit, h.PostComment)
		api.DELETE("/comments/:comment_id", writeLimit, h.DeleteComment)
	}

	return svcs
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
