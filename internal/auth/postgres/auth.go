package postgres

import (
	"github.com/horvathbencetibor/booking-system-be/internal/auth"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetCredentialsByEmail(email string) (*auth.Credential, error) {
	var cred auth.Credential

	row := r.db.Raw(`SELECT id, password_hash FROM users WHERE email = ?`, email).Row()
	if err := row.Scan(&cred.UserID, &cred.PasswordHash); err != nil {
		return nil, err
	}
	return &cred, nil
}

// GetPrincipal loads a user together with its effective permission set,
// resolved by traversing user_roles then role_permissions. The join tables
// may hold duplicate rows; DISTINCT plus the in-memory set below guarantee
// the result behaves as a set regardless.
func (r *Repository) GetPrincipal(userID int64) (*auth.User, error) {
	var user auth.User

	row := r.db.Raw(`SELECT id, name, email FROM users WHERE id = ?`, userID).Row()
	if err := row.Scan(&user.ID, &user.Name, &user.Email); err != nil {
		return nil, err
	}

	rows, err := r.db.Raw(`
		SELECT DISTINCT p.name
		FROM permissions p
		JOIN role_permissions rp ON rp.permission_id = p.id
		JOIN user_roles ur ON ur.role_id = rp.role_id
		WHERE ur.user_id = ?`, userID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seen := make(map[string]struct{})
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		user.Permissions = append(user.Permissions, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &user, nil
}
