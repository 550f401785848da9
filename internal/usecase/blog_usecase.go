package usecase

import (
	"context"

	"github.com/mikiasgoitom/traceblog/internal/domain/apperror"
	"github.com/mikiasgoitom/traceblog/internal/domain/contract"
	"github.com/mikiasgoitom/traceblog/internal/domain/entity"
	"github.com/mikiasgoitom/traceblog/internal/infrastructure/metrics"
	"github.com/mikiasgoitom/traceblog/internal/querycache"
	usecasecontract "github.com/mikiasgoitom/traceblog/internal/usecase/contract"
)

// BlogUseCase executes blog writes against the remote service and, once the
// server has confirmed them, invalidates the cached queries they affect.
// Failed writes invalidate nothing and return the service error unchanged.
type BlogUseCase struct {
	svc       contract.IBlogService
	store     *querycache.Store
	inv       *invalidator
	validator usecasecontract.IValidator
	logger    usecasecontract.IAppLogger
}

var _ usecasecontract.IBlogUseCase = (*BlogUseCase)(nil)

// NewBlogUseCase creates a new BlogUseCase. mirror and validator may be nil.
func NewBlogUseCase(svc contract.IBlogService, store *querycache.Store, mirror contract.IBlogSnapshotCache, validator usecasecontract.IValidator, logger usecasecontract.IAppLogger) *BlogUseCase {
	return &BlogUseCase{
		svc:       svc,
		store:     store,
		inv:       &invalidator{store: store, mirror: mirror, logger: logger},
		validator: validator,
		logger:    logger,
	}
}

// CreateBlog publishes a post and marks every list page stale.
func (uc *BlogUseCase) CreateBlog(ctx context.Context, req entity.CreateBlogRequest) (*entity.BlogPost, error) {
	if err := validateDraft(uc.validator, req); err != nil {
		return nil, err
	}
	blog, err := uc.svc.CreateBlog(ctx, req)
	metrics.IncMutation("create_blog", err)
	if err != nil {
		uc.logger.Errorf("failed to create blog: %v", err)
		return nil, err
	}
	uc.inv.invalidate(ctx, "create_blog", afterCreateBlog())
	return blog, nil
}

// UpdateBlog applies a partial update and marks the post and every list page stale.
func (uc *BlogUseCase) UpdateBlog(ctx context.Context, blogID string, req entity.UpdateBlogRequest) (*entity.BlogPost, error) {
	if err := requireID("blogId", blogID); err != nil {
		return nil, err
	}
	if req.IsEmpty() {
		return nil, apperror.Validation("nothing to update", nil)
	}
	if err := validateDraft(uc.validator, req); err != nil {
		return nil, err
	}
	blog, err := uc.svc.UpdateBlog(ctx, blogID, req)
	metrics.IncMutation("update_blog", err)
	if err != nil {
		uc.logger.Errorf("failed to update blog %s: %v", blogID, err)
		return nil, err
	}
	uc.inv.invalidate(ctx, "update_blog", afterBlogChange(blogID))
	return blog, nil
}

// DeleteBlog removes a post and marks the post and every list page stale.
func (uc *BlogUseCase) DeleteBlog(ctx context.Context, blogID string) error {
	if err := requireID("blogId", blogID); err != nil {
		return err
	}
	err := uc.svc.DeleteBlog(ctx, blogID)
	metrics.IncMutation("delete_blog", err)
	if err != nil {
		uc.logger.Errorf("failed to delete blog %s: %v", blogID, err)
		return err
	}
	uc.inv.invalidate(ctx, "delete_blog", afterBlogChange(blogID))
	return nil
}
