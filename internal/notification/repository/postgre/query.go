package postgres

// seq is a BIGSERIAL: the server-assigned monotonic ordering key for the
// inbox. Role matching is case-insensitive on both sides.
const (
	queryInsert = `
		INSERT INTO notifications (id, title, message, recipient_roles, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING seq`

	queryInbox = `
		SELECT id, seq, title, message, recipient_roles, created_at, read_by
		FROM notifications
		WHERE NOT (read_by @> ARRAY[$1]::text[])
		  AND EXISTS (
			SELECT 1 FROM unnest(recipient_roles) AS role
			WHERE lower(role) = lower($2)
		  )
		ORDER BY seq DESC`

	// The CASE keeps the statement idempotent: a second mark for the same
	// user matches the row (rows affected = 1) but leaves read_by unchanged.
	queryMarkRead = `
		UPDATE notifications
		SET read_by = CASE
			WHEN read_by @> ARRAY[$1]::text[] THEN read_by
			ELSE array_append(read_by, $1)
		END
		WHERE id = $2`
)
