package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-pass-keeper-vault/models"
)

const (
	credentialsTable = "credentials"
	secureItemsTable = "secure_items"
)

// sqlite uses "?" placeholders.
var builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

var credentialColumns = []string{
	"id", "category_id", "title", "username", "password", "site_url", "notes",
}

func credentialValues(userID string, r models.CredentialRecord) []any {
	return []any{
		userID, r.ID, r.CategoryID,
		string(r.Title), string(r.Username), string(r.Secret),
		string(r.URL), string(r.Notes),
	}
}

// buildUpsertCredentialQuery appends a new record at the end of the user's
// list or updates an existing one in place.
func buildUpsertCredentialQuery(userID string, r models.CredentialRecord) (string, []any, error) {
	nextPosition := sq.Expr(
		"(SELECT COALESCE(MAX(position), -1) + 1 FROM credentials WHERE user_id = ?)", userID,
	)

	return builder.
		Insert(credentialsTable).
		Columns(append([]string{"user_id"}, append(credentialColumns, "position")...)...).
		Values(append(credentialValues(userID, r), nextPosition)...).
		Suffix(`ON CONFLICT(user_id, id) DO UPDATE SET
			category_id = excluded.category_id,
			title = excluded.title,
			username = excluded.username,
			password = excluded.password,
			site_url = excluded.site_url,
			notes = excluded.notes,
			updated_at = CURRENT_TIMESTAMP`).
		ToSql()
}

func buildInsertCredentialQuery(userID string, position int, r models.CredentialRecord) (string, []any, error) {
	return builder.
		Insert(credentialsTable).
		Columns(append([]string{"user_id"}, append(credentialColumns, "position")...)...).
		Values(append(credentialValues(userID, r), position)...).
		ToSql()
}

func buildSelectCredentialsQuery(userID string) (string, []any, error) {
	return builder.
		Select(credentialColumns...).
		From(credentialsTable).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("position", "id").
		ToSql()
}

func buildSelectCredentialQuery(userID, id string) (string, []any, error) {
	return builder.
		Select(credentialColumns...).
		From(credentialsTable).
		Where(sq.Eq{"user_id": userID, "id": id}).
		ToSql()
}

func buildDeleteCredentialsQuery(userID string) (string, []any, error) {
	return builder.
		Delete(credentialsTable).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

func buildDeleteCredentialQuery(userID, id string) (string, []any, error) {
	return builder.
		Delete(credentialsTable).
		Where(sq.Eq{"user_id": userID, "id": id}).
		ToSql()
}

func buildUpsertSecureItemQuery(name, sealed string, policy models.AccessPolicy) (string, []any, error) {
	return builder.
		Insert(secureItemsTable).
		Columns("name", "value", "require_auth", "this_device_only").
		Values(name, sealed, policy.RequireAuthentication, policy.WhenPasscodeSetThisDeviceOnly).
		Suffix(`ON CONFLICT(name) DO UPDATE SET
			value = excluded.value,
			require_auth = excluded.require_auth,
			this_device_only = excluded.this_device_only,
			updated_at = CURRENT_TIMESTAMP`).
		ToSql()
}

func buildSelectSecureItemQuery(name string) (string, []any, error) {
	return builder.
		Select("value", "require_auth", "this_device_only").
		From(secureItemsTable).
		Where(sq.Eq{"name": name}).
		ToSql()
}

func buildDeleteSecureItemQuery(name string) (string, []any, error) {
	return builder.
		Delete(secureItemsTable).
		Where(sq.Eq{"name": name}).
		ToSql()
}
