package reviews

import "time"

type CreateReviewRequest struct {
	UserID    int64   `json:"user_id"`
	ProductID int64   `json:"product_id"`
	Rating    float32 `json:"rating"`
	Content   string  `json:"content"`
}

type UpdateReviewRequest struct {
	Rating  float32 `json:"rating"`
	Content string  `json:"content"`
}

type ReviewResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ProductID int64     `json:"product_id"`
	Rating    float32   `json:"rating"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type ReviewPage struct {
	Reviews       []*ReviewResponse `json:"reviews"`
	AverageRating float64           `json:"average_rating"`
	Page          int               `json:"page"`
	Size          int               `json:"size"`
	Total         int64             `json:"total"`
	Last          bool              `json:"last"`
}
