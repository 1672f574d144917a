package repos

import (
	"localcart/internal/domain"

	"github.com/jmoiron/sqlx"
)

// UserRepo holds sign-in credentials. Profile data lives in users/{uid} documents.
type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

func (r *UserRepo) ByEmail(email string) (*domain.Credential, error) {
	var u domain.Credential
	err := r.DB.Get(&u, `SELECT uid,email,password_hash FROM credentials WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByUID(uid string) (*domain.Credential, error) {
	var u domain.Credential
	err := r.DB.Get(&u, `SELECT uid,email,password_hash FROM credentials WHERE uid=?`, uid)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) Create(c domain.Credential) error {
	_, err := r.DB.Exec(`INSERT INTO credentials(uid,email,password_hash) VALUES(?,?,?)`, c.UID, c.Email, c.Hash)
	return err
}

// EmailTaken reports whether an account already uses email (case-insensitive).
func (r *UserRepo) EmailTaken(email string) (bool, error) {
	var n int
	if err := r.DB.Get(&n, `SELECT COUNT(*) FROM credentials WHERE LOWER(email)=LOWER(?)`, email); err != nil {
		return false, err
	}
	return n > 0, nil
}
