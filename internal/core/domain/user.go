package domain

// User models a registered member who can be assigned tasks.
type User struct {
	ID           int64  `json:"user_id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`
	// Grade is the user's seniority. Nil means no grade has been set.
	Grade *int `json:"grade"`
}

// UserPatch carries a partial user update. Nil fields are left untouched.
type UserPatch struct {
	Name  *string
	Grade *int
}

// Apply copies the present fields of p onto u.
func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Grade != nil {
		g := *p.Grade
		u.Grade = &g
	}
}
