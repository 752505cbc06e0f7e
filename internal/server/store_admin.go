package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("not found")

// sessionTTL is how long an admin stays signed in.
const sessionTTL = 7 * 24 * time.Hour

const timeLayout = "2006-01-02T15:04:05Z"

type AdminStore interface {
	AdminByEmail(ctx context.Context, email string) (adminID, passwordHash string, err error)
	CreateAdminSession(ctx context.Context, adminID string) (sessionID string, err error)
	DeleteAdminSession(ctx context.Context, sessionID string) error
	AdminFromSession(ctx context.Context, sessionID string) (adminSession, error)
}

// SQLAdminStore keeps admin accounts and sessions in the libSQL database
// prepared by the migrations package.
type SQLAdminStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewAdminStore(db *sql.DB) *SQLAdminStore {
	return &SQLAdminStore{db: db, now: time.Now}
}

// EnsureAdmin creates the first admin account when none exists yet. It
// reports whether an account was created.
func (s *SQLAdminStore) EnsureAdmin(ctx context.Context, email, passwordHash string) (bool, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || passwordHash == "" {
		return false, errors.New("admin email and password hash are required")
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM admins`).Scan(&count); err != nil {
		return false, fmt.Errorf("counting admins: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO admins (id, email, password_hash) VALUES (?, ?, ?)`,
		uuid.NewString(), email, passwordHash,
	)
	if err != nil {
		return false, fmt.Errorf("inserting admin: %w", err)
	}
	return true, nil
}

func (s *SQLAdminStore) AdminByEmail(ctx context.Context, email string) (string, string, error) {
	var id, hash string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, password_hash FROM admins WHERE email = ?`, email,
	).Scan(&id, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", "", ErrNotFound
	}
	if err != nil {
		return "", "", err
	}
	return id, hash, nil
}

func (s *SQLAdminStore) CreateAdminSession(ctx context.Context, adminID string) (string, error) {
	sessionID := uuid.NewString()
	expires := s.now().UTC().Add(sessionTTL).Format(timeLayout)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO admin_sessions (id, admin_id, expires_at) VALUES (?, ?, ?)`,
		sessionID, adminID, expires,
	)
	if err != nil {
		return "", err
	}
	return sessionID, nil
}

func (s *SQLAdminStore) DeleteAdminSession(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM admin_sessions WHERE id = ?`, sessionID,
	)
	return err
}

// PruneSessions deletes every expired session and reports how many went.
func (s *SQLAdminStore) PruneSessions(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM admin_sessions WHERE expires_at <= ?`,
		s.now().UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("pruning sessions: %w", err)
	}
	return res.RowsAffected()
}

// AdminFromSession resolves a live session. Expired sessions are removed
// on sight.
func (s *SQLAdminStore) AdminFromSession(ctx context.Context, sessionID string) (adminSession, error) {
	var sess adminSession
	var expires string
	err := s.db.QueryRowContext(ctx, `
		SELECT a.id, a.email, s.expires_at
		FROM admin_sessions s
		JOIN admins a ON a.id = s.admin_id
		WHERE s.id = ?
	`, sessionID).Scan(&sess.AdminID, &sess.Email, &expires)
	if errors.Is(err, sql.ErrNoRows) {
		return adminSession{}, errNoAdminSession
	}
	if err != nil {
		return adminSession{}, err
	}

	if expires <= s.now().UTC().Format(timeLayout) {
		if err := s.DeleteAdminSession(ctx, sessionID); err != nil {
			return adminSession{}, fmt.Errorf("removing expired admin session: %w", err)
		}
		return adminSession{}, errNoAdminSession
	}
	return sess, nil
}

var _ AdminStore = (*SQLAdminStore)(nil)
