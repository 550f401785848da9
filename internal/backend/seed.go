package backend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mikiasgoitom/traceblog/internal/domain/contract"
	"github.com/mikiasgoitom/traceblog/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/traceblog/internal/usecase/contract"
)

// Seeder loads the demo account and the demo posts. Running it twice
// leaves the data as it was.
type Seeder struct {
	users   contract.IUserRepository
	blogs   contract.IBlogRepository
	hasher  contract.IHasher
	uuidGen contract.IUUIDGenerator
	logger  usecasecontract.IAppLogger
}

func NewSeeder(users contract.IUserRepository, blogs contract.IBlogRepository, hasher contract.IHasher, uuidGen contract.IUUIDGenerator, logger usecasecontract.IAppLogger) *Seeder {
	return &Seeder{users: users, blogs: blogs, hasher: hasher, uuidGen: uuidGen, logger: logger}
}

// Seed creates the demo user (when phone is set) and the demo posts.
func (s *Seeder) Seed(ctx context.Context, phone, password string) error {
	if phone != "" {
		if err := s.seedUser(ctx, phone, password); err != nil {
			return err
		}
	}
	created := 0
	for _, post := range demoPosts() {
		_, err := s.blogs.GetBlogByID(ctx, post.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, contract.ErrBlogNotFound) {
			return fmt.Errorf("seed blog %s: %w", post.ID, err)
		}
		if err := s.blogs.CreateBlog(ctx, post); err != nil {
			return fmt.Errorf("seed blog %s: %w", post.ID, err)
		}
		created++
	}
	s.logger.Infof("demo data seeded: %d posts created", created)
	return nil
}

func (s *Seeder) seedUser(ctx context.Context, phone, password string) error {
	_, err := s.users.GetUserByPhone(ctx, phone)
	if err == nil {
		return nil
	}
	if !errors.Is(err, contract.ErrUserNotFound) {
		return fmt.Errorf("seed user: %w", err)
	}
	hash, err := s.hasher.HashPassword(password)
	if err != nil {
		return fmt.Errorf("seed user: %w", err)
	}
	user := &entity.User{
		ID:           s.uuidGen.NewUUID(),
		Name:         "Demo Farmer",
		PhoneNumber:  phone,
		PasswordHash: hash,
		UserType:     entity.UserTypeFarmer,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return fmt.Errorf("seed user: %w", err)
	}
	s.logger.Infof("demo user %s created", user.ID)
	return nil
}

func demoPosts() []*entity.BlogPost {
	at := func(s string) time.Time {
		t, _ := time.Parse(time.RFC3339, s)
		return t
	}
	const img = "https://images.unsplash.com/photo-"
	return []*entity.BlogPost{
		{
			ID:           "1",
			Title:        "Kinh nghiệm trồng sầu riêng Ri6",
			Content:      "Sầu riêng Ri6 là một trong những giống sầu riêng được ưa chuộng nhất tại Việt Nam. Trong bài viết này, tôi sẽ chia sẻ kinh nghiệm trồng và chăm sóc sầu riêng Ri6 để đạt năng suất cao nhất.\n\nĐầu tiên, bạn cần chọn đất trồng phù hợp. Sầu riêng Ri6 thích hợp với đất thịt pha cát, thoát nước tốt và có độ pH từ 5.5 đến 6.5.",
			Tags:         []string{"sầu-riêng", "ri6", "kỹ-thuật-trồng", "kinh-nghiệm"},
			Type:         entity.BlogTypeExperience,
			ThumbnailURL: img + "1578662996442-48f60103fc96?w=400&h=300&fit=crop",
			Images:       []entity.BlogImage{{ImageURL: img + "1578662996442-48f60103fc96?w=800&h=600&fit=crop", Index: 0}},
			AuthorID:     "seed-author-1",
			Author:       "Nguyễn Văn A",
			CreatedAt:    at("2024-01-15T10:30:00Z"),
			UpdatedAt:    at("2024-01-15T10:30:00Z"),
			LikesCount:   25,
		},
		{
			ID:           "2",
			Title:        "Hướng dẫn chăm sóc cây ăn quả trong mùa mưa",
			Content:      "Mùa mưa là thời điểm quan trọng trong việc chăm sóc cây ăn quả. Độ ẩm cao và lượng mưa lớn có thể gây ra nhiều vấn đề cho cây trồng nếu không được xử lý đúng cách.\n\nĐầu tiên, cần chú ý đến việc thoát nước.",
			Tags:         []string{"chăm-sóc", "cây-ăn-quả", "mùa-mưa", "kỹ-thuật"},
			Type:         entity.BlogTypeTutorial,
			ThumbnailURL: img + "1506905925346-21bda4d32df4?w=400&h=300&fit=crop",
			Images: []entity.BlogImage{
				{ImageURL: img + "1506905925346-21bda4d32df4?w=800&h=600&fit=crop", Index: 0},
				{ImageURL: img + "1578662996442-48f60103fc96?w=800&h=600&fit=crop", Index: 1},
			},
			AuthorID:   "seed-author-2",
			Author:     "Trần Thị B",
			CreatedAt:  at("2024-01-10T14:20:00Z"),
			UpdatedAt:  at("2024-01-10T14:20:00Z"),
			LikesCount: 18,
		},
		{
			ID:           "3",
			Title:        "Thị trường nông sản sạch 2024: Xu hướng và cơ hội",
			Content:      "Năm 2024, thị trường nông sản sạch tại Việt Nam đang có những chuyển biến tích cực. Người tiêu dùng ngày càng quan tâm đến chất lượng và nguồn gốc thực phẩm.",
			Tags:         []string{"thị-trường", "nông-sản-sạch", "xu-hướng", "2024"},
			Type:         entity.BlogTypeNews,
			ThumbnailURL: img + "1578662996442-48f60103fc96?w=400&h=300&fit=crop",
			Images:       []entity.BlogImage{},
			AuthorID:     "seed-author-3",
			Author:       "Lê Văn C",
			CreatedAt:    at("2024-01-05T09:15:00Z"),
			UpdatedAt:    at("2024-01-05T09:15:00Z"),
			LikesCount:   32,
		},
	}
}
