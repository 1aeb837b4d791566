package reviews

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ecommerce/internal/domain"
)

type fakeUserRepo struct {
	users map[int64]*domain.User
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) (int64, error) {
	return 0, errors.New("not implemented")
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if user, ok := f.users[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}

type fakeProductReader struct {
	products map[int64]*domain.Product
}

func (f *fakeProductReader) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	if product, ok := f.products[id]; ok {
		return product, nil
	}
	return nil, domain.ErrProductNotFound
}

type fakeReviewRepo struct {
	reviews map[int64]*domain.Review
	nextID  int64
	average float64
}

func (f *fakeReviewRepo) Create(ctx context.Context, review *domain.Review) (int64, error) {
	f.nextID++
	clone := *review
	clone.ID = f.nextID
	f.reviews[f.nextID] = &clone
	return f.nextID, nil
}

func (f *fakeReviewRepo) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	if review, ok := f.reviews[id]; ok {
		return review, nil
	}
	return nil, domain.ErrReviewNotFound
}

func (f *fakeReviewRepo) ExistsByUserAndProduct(ctx context.Context, userID, productID int64) (bool, error) {
	for _, review := range f.reviews {
		if review.UserID == userID && review.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeReviewRepo) ListByProduct(ctx context.Context, productID int64, offset, limit int) ([]*domain.Review, int64, error) {
	var out []*domain.Review
	for _, review := range f.reviews {
		if review.ProductID == productID {
			out = append(out, review)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeReviewRepo) AverageRating(ctx context.Context, productID int64) (float64, error) {
	return f.average, nil
}

func (f *fakeReviewRepo) Update(ctx context.Context, review *domain.Review) error {
	if _, ok := f.reviews[review.ID]; !ok {
		return domain.ErrReviewNotFound
	}
	f.reviews[review.ID] = review
	return nil
}

func (f *fakeReviewRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.reviews[id]; !ok {
		return domain.ErrReviewNotFound
	}
	delete(f.reviews, id)
	return nil
}

type reviewFixture struct {
	service ReviewService
	repo    *fakeReviewRepo
}

func newReviewFixture() *reviewFixture {
	f := &reviewFixture{
		repo: &fakeReviewRepo{reviews: map[int64]*domain.Review{}},
	}
	users := &fakeUserRepo{users: map[int64]*domain.User{
		1: {ID: 1, Name: "Jin", Email: "jin@example.com"},
	}}
	products := &fakeProductReader{products: map[int64]*domain.Product{
		10: {ID: 10, Name: "Denim Jacket", UnitPrice: 50000, StockQuantity: 5},
	}}
	f.service = NewReviewService(f.repo, users, products, zap.NewNop())
	return f
}

func TestCreateReview(t *testing.T) {
	f := newReviewFixture()

	reviewID, err := f.service.CreateReview(context.Background(), &CreateReviewRequest{
		UserID: 1, ProductID: 10, Rating: 4.5, Content: "Fits well",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), reviewID)
}

func TestCreateReviewRejectsSecondReviewForSameProduct(t *testing.T) {
	f := newReviewFixture()
	ctx := context.Background()

	_, err := f.service.CreateReview(ctx, &CreateReviewRequest{UserID: 1, ProductID: 10, Rating: 4.5})
	require.NoError(t, err)

	_, err = f.service.CreateReview(ctx, &CreateReviewRequest{UserID: 1, ProductID: 10, Rating: 3.0})
	assert.ErrorIs(t, err, domain.ErrReviewAlreadyExists)
}

func TestCreateReviewValidatesRating(t *testing.T) {
	f := newReviewFixture()

	_, err := f.service.CreateReview(context.Background(), &CreateReviewRequest{
		UserID: 1, ProductID: 10, Rating: 4.3,
	})
	assert.ErrorIs(t, err, ErrInvalidReview)

	_, err = f.service.CreateReview(context.Background(), &CreateReviewRequest{
		UserID: 1, ProductID: 10, Rating: 5.5,
	})
	assert.ErrorIs(t, err, ErrInvalidReview)
}

func TestCreateReviewUnknownUserOrProduct(t *testing.T) {
	f := newReviewFixture()

	_, err := f.service.CreateReview(context.Background(), &CreateReviewRequest{
		UserID: 99, ProductID: 10, Rating: 4.0,
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = f.service.CreateReview(context.Background(), &CreateReviewRequest{
		UserID: 1, ProductID: 999, Rating: 4.0,
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestGetProductReviewsIncludesAverage(t *testing.T) {
	f := newReviewFixture()
	f.repo.average = 4.25
	ctx := context.Background()

	_, err := f.service.CreateReview(ctx, &CreateReviewRequest{UserID: 1, ProductID: 10, Rating: 4.5})
	require.NoError(t, err)

	page, err := f.service.GetProductReviews(ctx, 10, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 4.25, page.AverageRating)
	require.Len(t, page.Reviews, 1)
	assert.True(t, page.Last)
}

func TestGetProductReviewsUnknownProduct(t *testing.T) {
	f := newReviewFixture()

	_, err := f.service.GetProductReviews(context.Background(), 999, 0, 10)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestUpdateReview(t *testing.T) {
	f := newReviewFixture()
	ctx := context.Background()

	reviewID, err := f.service.CreateReview(ctx, &CreateReviewRequest{UserID: 1, ProductID: 10, Rating: 4.5, Content: "ok"})
	require.NoError(t, err)

	res, err := f.service.UpdateReview(ctx, reviewID, &UpdateReviewRequest{Rating: 3.5, Content: "shrunk in the wash"})
	require.NoError(t, err)
	assert.Equal(t, float32(3.5), res.Rating)
	assert.Equal(t, "shrunk in the wash", res.Content)

	_, err = f.service.UpdateReview(ctx, 404, &UpdateReviewRequest{Rating: 3.5})
	assert.ErrorIs(t, err, domain.ErrReviewNotFound)
}

func TestDeleteReview(t *testing.T) {
	f := newReviewFixture()
	ctx := context.Background()

	reviewID, err := f.service.CreateReview(ctx, &CreateReviewRequest{UserID: 1, ProductID: 10, Rating: 4.5})
	require.NoError(t, err)

	require.NoError(t, f.service.DeleteReview(ctx, reviewID))

	err = f.service.DeleteReview(ctx, reviewID)
	assert.ErrorIs(t, err, domain.ErrReviewNotFound)
}
