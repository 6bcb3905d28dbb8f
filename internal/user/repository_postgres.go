package user

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	userColumns = `id, email, password, first_name, last_name, created_at, updated_at`

	getUserByIDQuery    = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	getUserByEmailQuery = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	insertUserQuery     = `
		INSERT INTO users (email, password, first_name, last_name, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(id int) (User, error) {
	return r.scanOne(r.db.QueryRow(getUserByIDQuery, id))
}

func (r *PostgresRepository) GetByEmail(email string) (User, error) {
	return r.scanOne(r.db.QueryRow(getUserByEmailQuery, email))
}

func (r *PostgresRepository) Create(u User) (User, error) {
	err := r.db.QueryRow(insertUserQuery,
		u.Email, u.Password, u.FirstName, u.LastName, u.CreatedAt, u.UpdatedAt,
	).Scan(&u.ID)
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) scanOne(row *sql.Row) (User, error) {
	var u User
	var createdAt, updatedAt sql.NullString
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.FirstName, &u.LastName, &createdAt, &updatedAt)
	if err != nil {
		return User{}, ErrNotFound
	}
	u.CreatedAt = createdAt.String
	u.UpdatedAt = updatedAt.String
	return u, nil
}
