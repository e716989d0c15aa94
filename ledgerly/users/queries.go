package users

const (
	// nullable columns are coalesced so they scan into plain strings
	userColumns = `id, COALESCE(tenant_id::text, ''), email, provider, provider_id, name,
		COALESCE(avatar_url, ''), role, COALESCE(permissions, '{}'), created_at, updated_at`

	queryFindOrCreateByProvider = `
		INSERT INTO users (provider, provider_id, email, name, avatar_url)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (provider, provider_id)
		DO UPDATE SET
			email = EXCLUDED.email,
			name = EXCLUDED.name,
			avatar_url = EXCLUDED.avatar_url,
			updated_at = NOW()
		RETURNING ` + userColumns

	queryFindByID = `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`
)
