package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"friend-service/internal/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

// UserRepository abstracts user persistence and lookup.
type UserRepository interface {
	Create(ctx context.Context, email, firstName, lastName, passwordHash string) (models.User, error)
	GetByID(ctx context.Context, userID int) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	Search(ctx context.Context, keyword string, limit, offset int) ([]models.PublicUser, int, error)
}

// UserRepo is a sqlx implementation of UserRepository.
type UserRepo struct {
	db *sqlx.DB
}

// NewUserRepo constructs a UserRepo.
func NewUserRepo(db *sqlx.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create inserts a new user. The unique index on email turns concurrent
// signups for the same address into ErrEmailTaken for the loser.
func (r *UserRepo) Create(ctx context.Context, email, firstName, lastName, passwordHash string) (models.User, error) {
	var user models.User
	err := r.db.QueryRowxContext(ctx, `INSERT INTO users (email, first_name, last_name, password_hash)
        VALUES ($1, $2, $3, $4)
        RETURNING id, email, first_name, last_name, password_hash, created_at`,
		email, firstName, lastName, passwordHash).StructScan(&user)
	if isUniqueViolation(err) {
		return models.User{}, ErrEmailTaken
	}
	return user, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, userID int) (models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `SELECT id, email, first_name, last_name, password_hash, created_at
        FROM users WHERE id=$1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	return user, err
}

// GetByEmail fetches a user by (lower-cased) email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `SELECT id, email, first_name, last_name, password_hash, created_at
        FROM users WHERE email=$1`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	return user, err
}

// Search matches the keyword against the exact email (case-insensitive) or a
// substring of first/last name. An empty keyword matches everyone. Returns
// one page plus the total match count.
func (r *UserRepo) Search(ctx context.Context, keyword string, limit, offset int) ([]models.PublicUser, int, error) {
	// LIKE metacharacters in the keyword match literally, not as wildcards.
	pattern := "%" + escapeLike(keyword) + "%"
	where := `WHERE $1 = '' OR LOWER(email) = LOWER($1) OR first_name ILIKE $2 ESCAPE '\' OR last_name ILIKE $2 ESCAPE '\'`

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM users `+where, keyword, pattern); err != nil {
		return nil, 0, err
	}

	users := []models.PublicUser{}
	err := r.db.SelectContext(ctx, &users, `SELECT id, email, first_name, last_name FROM users `+where+`
        ORDER BY id ASC LIMIT $3 OFFSET $4`, keyword, pattern, limit, offset)
	return users, total, err
}

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
