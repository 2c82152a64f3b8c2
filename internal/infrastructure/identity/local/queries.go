package local

const (
	InsertIdentity = `
		INSERT INTO identities (id, email, password_hash)
		VALUES ($1, $2, $3)
	`
	SelectIdentityByEmail = `
		SELECT id::text, email, password_hash
		FROM identities
		WHERE email = $1
	`
	DeleteIdentityByID = `DELETE FROM identities WHERE id = $1`

	InsertSession = `
		INSERT INTO identity_sessions (id, identity_id, expires_at)
		VALUES ($1, $2, $3)
	`
	SelectActiveSession = `
		SELECT s.identity_id::text, i.email
		FROM identity_sessions s
		JOIN identities i ON i.id = s.identity_id
		WHERE s.id = $1 AND s.revoked_at IS NULL AND s.expires_at > now()
	`
	RevokeSession = `
		UPDATE identity_sessions
		SET revoked_at = now()
		WHERE id = $1 AND revoked_at IS NULL
	`
)
