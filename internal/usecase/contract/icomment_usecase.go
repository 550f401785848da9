package usecasecontract

import (
	"context"

	"github.com/mikiasgoitom/traceblog/internal/domain/entity"
)

type ICommentUseCase interface {
	CreateComment(ctx context.Context, blogID string, req entity.CreateCommentRequest) (*entity.BlogComment, error)
	UpdateComment(ctx context.Context, blogID, commentID string, req entity.UpdateCommentRequest) (*entity.BlogComment, error)
	DeleteComment(ctx context.Context, blogID, commentID string) error
}
