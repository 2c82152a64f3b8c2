package file

const (
	SelectFilesByUser = `
		SELECT fileid, userid, filename, originalname, filepath, filesize, mimetype, uploaded_at
		FROM files
		WHERE userid = $1
		ORDER BY uploaded_at DESC, fileid DESC
	`
	SelectFileByID = `
		SELECT fileid, userid, filename, originalname, filepath, filesize, mimetype, uploaded_at
		FROM files
		WHERE fileid = $1
	`
	InsertFile = `
		INSERT INTO files (userid, filename, originalname, filepath, filesize, mimetype)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING
		  fileid, userid, filename, originalname, filepath, filesize, mimetype, uploaded_at
	`
	DeleteFileByID = `DELETE FROM files WHERE fileid = $1`
)
