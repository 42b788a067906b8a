package model

import "time"

// Book is the catalog record. Ratings are kept in submission order and
// AverageRating is always the mean of their grades, 0 when there are none.
type Book struct {
	ID            int      `json:"-" db:"id"`
	BookUid       string   `json:"bookUid" db:"book_uid"`
	Owner         string   `json:"userId" db:"owner"`
	Title         string   `json:"title" db:"title"`
	Author        string   `json:"author" db:"author"`
	ImageURL      string   `json:"imageUrl" db:"image_url"`
	Year          int      `json:"year" db:"year"`
	Genre         string   `json:"genre" db:"genre"`
	Ratings       []Rating `json:"ratings" db:"-"`
	AverageRating float64  `json:"averageRating" db:"average_rating"`
}

// Rating is one user's grade for a book.
type Rating struct {
	Rater string `json:"userId" db:"rater"`
	Grade int    `json:"grade" db:"grade"`
}

// BookData is the allow-listed mutable field set accepted from clients.
// Owner, ratings and the average never come from a request payload.
type BookData struct {
	Title  string `json:"title" validate:"required"`
	Author string `json:"author" validate:"required"`
	Year   int    `json:"year" validate:"required,gt=0"`
	Genre  string `json:"genre" validate:"required"`
}

type RatingRequest struct {
	Grade int `json:"rating" validate:"gte=0,lte=5"`
}

type User struct {
	ID           int       `json:"-" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"-" db:"created_at"`
}

type CredentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type AuthResponse struct {
	UserID      string `json:"userId"`
	AccessToken string `json:"token"`
	ExpiresIn   int    `json:"expiresIn"`
}
