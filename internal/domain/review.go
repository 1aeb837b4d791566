package domain

import (
	"errors"
	"time"
)

// Review is one user's rating of one product; a user may review a product at
// most once. Ratings move in half-point steps between 0.5 and 5.0.
type Review struct {
	ID        int64
	UserID    int64
	ProductID int64
	Rating    float32
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewReview(userID, productID int64, rating float32, content string) (*Review, error) {
	if err := validateRating(rating); err != nil {
		return nil, err
	}
	now := time.Now()
	return &Review{
		UserID:    userID,
		ProductID: productID,
		Rating:    rating,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (r *Review) Update(rating float32, content string) error {
	if err := validateRating(rating); err != nil {
		return err
	}
	r.Rating = rating
	r.Content = content
	r.UpdatedAt = time.Now()
	return nil
}

func validateRating(rating float32) error {
	if rating < 0.5 || rating > 5.0 {
		return errors.New("rating must be between 0.5 and 5.0")
	}
	doubled := rating * 2
	if doubled != float32(int(doubled)) {
		return errors.New("rating must be a multiple of 0.5")
	}
	return nil
}
