package profile

import "time"

type (
	User struct {
		ID       int64  `json:"id"`
		Email    string `json:"email"`
		Username string `json:"username"`
		Role     string `json:"role"`
	}

	// ListedUser is one row of the admin user table.
	ListedUser struct {
		UserID    int64     `json:"userid"`
		Email     string    `json:"email"`
		Username  string    `json:"username"`
		Role      string    `json:"role"`
		CreatedAt time.Time `json:"created_at"`
	}
	ListedUsers []ListedUser

	UserResponse struct {
		Message string `json:"message,omitempty"`
		User    User   `json:"user"`
	}
	UsersResponse struct {
		Users ListedUsers `json:"users"`
	}
)
