package http

import (
	"net/http"
	"time"

	"github.com/didip/tollbooth/v7"
	"github.com/didip/tollbooth/v7/limiter"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/traceblog/internal/backend"
	"github.com/mikiasgoitom/traceblog/internal/handler/http/middleware"
	usecasecontract "github.com/mikiasgoitom/traceblog/internal/usecase/contract"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	blogHandler        *BlogHandler
	interactionHandler *InteractionHandler
	commentHandler     *CommentHandler
	authHandler        *AuthHandler
	authService        backend.IAuthService
	logger             usecasecontract.IAppLogger
	rateLimit          float64
}

// NewRouter wires the handlers. rateLimit is requests per second per client
// IP; zero or less disables rate limiting.
func NewRouter(blogService backend.IBlogService, commentService backend.ICommentService, authService backend.IAuthService, logger usecasecontract.IAppLogger, rateLimit float64) *Router {
	return &Router{
		blogHandler:        NewBlogHandler(blogService),
		interactionHandler: NewInteractionHandler(blogService),
		commentHandler:     NewCommentHandler(commentService),
		authHandler:        NewAuthHandler(authService),
		authService:        authService,
		logger:             logger,
		rateLimit:          rateLimit,
	}
}

func (r *Router) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(r.logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))
	if r.rateLimit > 0 {
		lmt := tollbooth.NewLimiter(r.rateLimit, &limiter.ExpirableOptions{DefaultExpirationTTL: time.Hour})
		lmt.SetIPLookups([]string{"RemoteAddr", "X-Forwarded-For", "X-Real-IP"})
		lmt.SetMessage("Too many requests, please try again later.")
		router.Use(middleware.RateLimiter(lmt))
	}
	router.NoRoute(func(c *gin.Context) {
		ErrorHandler(c, http.StatusNotFound, "Route not found")
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/login-with-credentials", r.authHandler.LoginWithCredentials)
		auth.POST("/me", middleware.AuthMiddleWare(r.authService), r.authHandler.Me)
	}

	// reads are public; a valid token only personalizes isLiked
	public := v1.Group("/blogs")
	public.Use(middleware.OptionalAuth(r.authService))
	{
		public.GET("", r.blogHandler.GetBlogsHandler)
		public.GET("/:blogID", r.blogHandler.GetBlogDetailHandler)
		public.GET("/:blogID/comments", r.commentHandler.GetBlogComments)
	}

	protected := v1.Group("/blogs")
	protected.Use(middleware.AuthMiddleWare(r.authService))
	{
		protected.POST("", r.blogHandler.CreateBlogHandler)
		protected.PATCH("/:blogID", r.blogHandler.UpdateBlogHandler)
		protected.DELETE("/:blogID", r.blogHandler.DeleteBlogHandler)

		protected.POST("/:blogID/like", r.interactionHandler.LikeBlogHandler)
		protected.DELETE("/:blogID/unlike", r.interactionHandler.UnlikeBlogHandler)

		protected.POST("/:blogID/comment", r.commentHandler.CreateComment)
		protected.PATCH("/:blogID/comment/:commentID", r.commentHandler.UpdateComment)
		protected.DELETE("/:blogID/comment/:commentID", r.commentHandler.DeleteComment)
	}
}
