package usecase

import (
	"context"

	"github.com/mikiasgoitom/traceblog/internal/domain/contract"
	"github.com/mikiasgoitom/traceblog/internal/domain/entity"
	"github.com/mikiasgoitom/traceblog/internal/infrastructure/metrics"
	"github.com/mikiasgoitom/traceblog/internal/querycache"
	usecasecontract "github.com/mikiasgoitom/traceblog/internal/usecase/contract"
)

// CommentUseCase executes comment writes. Each success marks every comment
// page of the post and the post itself stale, since commentsCount changes.
type CommentUseCase struct {
	svc       contract.IBlogService
	inv       *invalidator
	validator usecasecontract.IValidator
	logger    usecasecontract.IAppLogger
}

var _ usecasecontract.ICommentUseCase = (*CommentUseCase)(nil)

// NewCommentUseCase creates a new CommentUseCase. mirror and validator may be nil.
func NewCommentUseCase(svc contract.IBlogService, store *querycache.Store, mirror contract.IBlogSnapshotCache, validator usecasecontract.IValidator, logger usecasecontract.IAppLogger) *CommentUseCase {
	return &CommentUseCase{
		svc:       svc,
		inv:       &invalidator{store: store, mirror: mirror, logger: logger},
		validator: validator,
		logger:    logger,
	}
}

func (uc *CommentUseCase) CreateComment(ctx context.Context, blogID string, req entity.CreateCommentRequest) (*entity.BlogComment, error) {
	if err := requireID("blogId", blogID); err != nil {
		return nil, err
	}
	if err := validateDraft(uc.validator, req); err != nil {
		return nil, err
	}
	comment, err := uc.svc.CreateComment(ctx, blogID, req)
	metrics.IncMutation("create_comment", err)
	if err != nil {
		uc.logger.Errorf("failed to create comment on blog %s: %v", blogID, err)
		return nil, err
	}
	uc.inv.invalidate(ctx, "create_comment", afterCommentChange(blogID))
	return comment, nil
}

func (uc *CommentUseCase) UpdateComment(ctx context.Context, blogID, commentID string, req entity.UpdateCommentRequest) (*entity.BlogComment, error) {
	if err := requireID("blogId", blogID); err != nil {
		return nil, err
	}
	if err := requireID("commentId", commentID); err != nil {
		return nil, err
	}
	if err := validateDraft(uc.validator, req); err != nil {
		return nil, err
	}
	comment, err := uc.svc.UpdateComment(ctx, blogID, commentID, req)
	metrics.IncMutation("update_comment", err)
	if err != nil {
		uc.logger.Errorf("failed to update comment %s: %v", commentID, err)
		return nil, err
	}
	uc.inv.invalidate(ctx, "update_comment", afterCommentChange(blogID))
	return comment, nil
}

func (uc *CommentUseCase) DeleteComment(ctx context.Context, blogID, commentID string) error {
	if err := requireID("blogId", blogID); err != nil {
		return err
	}
	if err := requireID("commentId", commentID); err != nil {
		return err
	}
	err := uc.svc.DeleteComment(ctx, blogID, commentID)
	metrics.IncMutation("delete_comment", err)
	if err != nil {
		uc.logger.Errorf("failed to delete comment %s: %v", commentID, err)
		return err
	}
	uc.inv.invalidate(ctx, "delete_comment", afterCommentChange(blogID))
	return nil
}
