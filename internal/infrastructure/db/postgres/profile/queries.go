package profile

const (
	SelectProfiles = `
		SELECT userid, authuserid, email, username, role, created_at
		FROM users
		ORDER BY userid
	`
	SelectProfileByAuthID = `
		SELECT userid, authuserid, email, username, role, created_at
		FROM users
		WHERE authuserid = $1
	`
	SelectProfileByID = `
		SELECT userid, authuserid, email, username, role, created_at
		FROM users
		WHERE userid = $1
	`
	InsertProfile = `
		INSERT INTO users (authuserid, email, username, role)
		VALUES ($1, $2, $3, $4)
		RETURNING
		  userid, authuserid, email, username, role, created_at
	`
	DeleteProfileByID = `DELETE FROM users WHERE userid = $1`
)
