// Command blogsync drives the blog sync core against a running blog API:
// it watches the list, reads a post with its comments, likes it and shows
// the cache picking up the confirmed state.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mikiasgoitom/traceblog/internal/domain/apperror"
	"github.com/mikiasgoitom/traceblog/internal/domain/contract"
	"github.com/mikiasgoitom/traceblog/internal/domain/entity"
	"github.com/mikiasgoitom/traceblog/internal/infrastructure/blogapi"
	"github.com/mikiasgoitom/traceblog/internal/infrastructure/cache"
	"github.com/mikiasgoitom/traceblog/internal/infrastructure/config"
	"github.com/mikiasgoitom/traceblog/internal/infrastructure/logger"
	"github.com/mikiasgoitom/traceblog/internal/infrastructure/store"
	"github.com/mikiasgoitom/traceblog/internal/infrastructure/validator"
	"github.com/mikiasgoitom/traceblog/internal/querycache"
	"github.com/mikiasgoitom/traceblog/internal/usecase"
	usecasecontract "github.com/mikiasgoitom/traceblog/internal/usecase/contract"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	appConfig := config.NewConfig()
	appLogger := logger.NewAppLogger(logger.Options{Level: appConfig.GetLogLevel(), Format: appConfig.GetLogFormat()})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := blogapi.Options{
		BaseURL:    appConfig.GetAPIBaseURL(),
		APIVersion: appConfig.GetAPIVersion(),
		Timeout:    appConfig.GetHTTPTimeout(),
	}
	if phone := appConfig.GetDemoPhone(); phone != "" {
		auth, err := blogapi.NewAuthClient(opts)
		if err != nil {
			log.Fatalf("Failed to create auth client: %v", err)
		}
		opts.TokenSource = blogapi.LoginTokenSource(auth, phone, appConfig.GetDemoPassword())
	}
	client, err := blogapi.NewClient(opts)
	if err != nil {
		log.Fatalf("Failed to create blog API client: %v", err)
	}

	queryStore := querycache.NewStore(querycache.Options{
		StaleTime: map[querycache.Kind]time.Duration{
			querycache.KindList:     appConfig.GetListStaleTime(),
			querycache.KindDetail:   appConfig.GetDetailStaleTime(),
			querycache.KindComments: appConfig.GetCommentsStaleTime(),
		},
		GCTime: appConfig.GetCacheGCTime(),
	})
	go queryStore.Run(ctx)

	var mirror contract.IBlogSnapshotCache
	if redisURL := appConfig.GetRedisURL(); redisURL != "" {
		rdb, err := cache.NewRedisFromURL(ctx, redisURL)
		if err != nil {
			appLogger.Warningf("snapshot mirror disabled: %v", err)
		} else {
			defer cache.Close(rdb)
			mirror = store.NewSnapshotStore(rdb, appConfig.GetSnapshotTTL())
		}
	}

	retry := usecase.RetryPolicy{Retries: appConfig.GetQueryRetry(), BaseDelay: appConfig.GetQueryRetryDelay()}
	appValidator := validator.NewValidator()
	queries := usecase.NewBlogQueries(client, queryStore, mirror, retry, appLogger)
	blogs := usecase.NewBlogUseCase(client, queryStore, mirror, appValidator, appLogger)

	if err := run(ctx, appConfig, appLogger, queries, blogs, opts.TokenSource != nil); err != nil {
		kind, message := apperror.Describe(err)
		log.Fatalf("blogsync failed (%s): %s", kind, message)
	}
}

func run(ctx context.Context, cfg usecasecontract.IConfigProvider, appLogger usecasecontract.IAppLogger, queries *usecase.BlogQueries, blogs *usecase.BlogUseCase, signedIn bool) error {
	listParams := entity.ListParams{Q: cfg.GetBlogSearch()}
	unwatch := queries.WatchBlogs(ctx, listParams, func(s querycache.Snapshot) {
		entry := appLogger.WithField("query", s.Identity.Key()).WithField("status", s.Status).WithField("stale", s.Stale)
		if page, ok := s.Value.(*entity.Page[entity.BlogPost]); ok {
			entry = entry.WithField("items", len(page.Items))
		}
		entry.Infof("blog list snapshot")
	})
	defer unwatch()

	page, err := queries.Blogs(ctx, listParams)
	if err != nil {
		return err
	}
	if len(page.Items) == 0 {
		appLogger.Infof("no posts match %q", listParams.Q)
		return nil
	}
	for _, p := range page.Items {
		appLogger.WithField("id", p.ID).WithField("likes", p.LikesCount).Infof("%s", p.Title)
	}

	first := page.Items[0]
	post, err := queries.Blog(ctx, first.ID)
	if err != nil {
		return err
	}
	comments, err := queries.Comments(ctx, post.ID, entity.CommentListParams{})
	if err != nil {
		return err
	}
	appLogger.WithField("id", post.ID).WithField("comments", len(comments.Items)).Infof("read post %q by %s", post.Title, post.Author)

	if !signedIn {
		appLogger.Infof("DEMO_PHONE not set, skipping like")
		return nil
	}
	toggle := blogs.LikeBlog
	if post.IsLiked {
		toggle = blogs.UnlikeBlog
	}
	state, err := toggle(ctx, post.ID)
	if err != nil {
		return err
	}
	appLogger.WithField("isLiked", state.IsLiked).WithField("likes", state.LikesCount).Infof("like state confirmed")

	post, err = queries.Blog(ctx, post.ID)
	if err != nil {
		return err
	}
	appLogger.WithField("isLiked", post.IsLiked).WithField("likes", post.LikesCount).Infof("post re-read from cache")
	return nil
}
