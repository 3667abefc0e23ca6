package mysql

// Values are JSON text; a NULL expires_at never expires.
const upsertEntrySQL = `
INSERT INTO storage_entries
  (k, v, expires_at)
VALUES
  (?, ?, CASE WHEN ? > 0 THEN DATE_ADD(UTC_TIMESTAMP(6), INTERVAL ? MICROSECOND) ELSE NULL END)
ON DUPLICATE KEY UPDATE
  v          = VALUES(v),
  expires_at = VALUES(expires_at),
  updated_at = CURRENT_TIMESTAMP
`

const getEntrySQL = `
SELECT v
FROM storage_entries
WHERE k = ?
  AND (expires_at IS NULL OR expires_at > UTC_TIMESTAMP(6))
`

// Row lock so concurrent takers serialize; the loser sees no row.
const lockEntrySQL = getEntrySQL + "FOR UPDATE\n"

const deleteEntrySQL = `DELETE FROM storage_entries WHERE k = ?`

const purgeExpiredSQL = `
DELETE FROM storage_entries
WHERE expires_at IS NOT NULL AND expires_at <= UTC_TIMESTAMP(6)
`
