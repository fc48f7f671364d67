package database

import "errors"

var (
	ErrUsernameTaken = errors.New("username already taken")
	ErrUserNotFound  = errors.New("user not found")
)

type UserRepository interface {
	CreateUser(username, passwordHash string) (*User, error)
	GetUserByUsername(username string) (*User, error)
}

type UpdateRepository interface {
	CreateUpdate(company Company, category UpdateCategory, title, content, sourceURL string) (*CompanyUpdate, error)
	LatestByCompany(company Company, limit int) ([]CompanyUpdate, error)
	ByCategory(category UpdateCategory, limit int) ([]CompanyUpdate, error)
	Matrix() (Matrix, error)
}
