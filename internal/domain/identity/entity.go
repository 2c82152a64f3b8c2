package identity

type (
	// Identity is the identity provider's account reference.
	Identity struct {
		ID    string
		Email string
	}
	Session struct {
		AccessToken  string
		RefreshToken string
	}
)
