package usecasecontract

import (
	"context"

	"github.com/mikiasgoitom/traceblog/internal/domain/entity"
)

type ILikeUseCase interface {
	LikeBlog(ctx context.Context, blogID string) (*entity.LikeState, error)
	UnlikeBlog(ctx context.Context, blogID string) (*entity.LikeState, error)
}
