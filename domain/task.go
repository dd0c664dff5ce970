package domain

type Task struct {
	ID          int64   `json:"id" db:"id"`
	Title       string  `json:"title" db:"title"`
	Description string  `json:"description" db:"description"`
	Completed   bool    `json:"completed" db:"completed"`
	CreatedAt   string  `json:"created_at" db:"created_at"`
	UpdatedAt   *string `json:"updated_at" db:"updated_at"`
	UserID      int64   `json:"user_id" db:"user_id"`
}
