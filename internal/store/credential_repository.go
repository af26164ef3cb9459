package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pass-keeper-vault/internal/logger"
	"github.com/MKhiriev/go-pass-keeper-vault/models"
)

type credentialRepository struct {
	*DB
	logger *logger.Logger
}

// NewCredentialRepository returns the sqlite-backed [CredentialRepository].
func NewCredentialRepository(db *DB, logger *logger.Logger) CredentialRepository {
	return &credentialRepository{
		DB:     db,
		logger: logger,
	}
}

func (c *credentialRepository) SaveCredential(ctx context.Context, userID string, record models.CredentialRecord) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpsertCredentialQuery(userID, record)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = c.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "credentialRepository.SaveCredential").
			Str("user_id", userID).
			Str("record_id", record.ID).
			Msg("failed to upsert credential")
		return fmt.Errorf("%w: save credential %s: %w", ErrExecutingStatement, record.ID, err)
	}

	return nil
}

func (c *credentialRepository) GetCredential(ctx context.Context, userID, id string) (models.CredentialRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectCredentialQuery(userID, id)
	if err != nil {
		return models.CredentialRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	record, err := scanCredential(c.DB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.CredentialRecord{}, ErrCredentialNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "credentialRepository.GetCredential").
			Str("user_id", userID).
			Str("record_id", id).
			Msg("failed to scan credential row")
		return models.CredentialRecord{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return record, nil
}

func (c *credentialRepository) ListCredentials(ctx context.Context, userID string) ([]models.CredentialRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectCredentialsQuery(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := c.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "credentialRepository.ListCredentials").
			Str("user_id", userID).
			Msg("failed to query credentials")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.CredentialRecord, 0)
	for rows.Next() {
		record, scanErr := scanCredential(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "credentialRepository.ListCredentials").
				Str("user_id", userID).
				Msg("failed to scan credential row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		records = append(records, record)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "credentialRepository.ListCredentials").
			Str("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return records, nil
}

func (c *credentialRepository) ReplaceCredentials(ctx context.Context, userID string, records []models.CredentialRecord) error {
	log := logger.FromContext(ctx)

	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer func() { _ = tx.Rollback() }()

	query, args, err := buildDeleteCredentialsQuery(userID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "credentialRepository.ReplaceCredentials").
			Str("user_id", userID).
			Msg("failed to clear credentials")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	for i, record := range records {
		query, args, err = buildInsertCredentialQuery(userID, i, record)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			log.Err(err).
				Str("func", "credentialRepository.ReplaceCredentials").
				Str("user_id", userID).
				Str("record_id", record.ID).
				Msg("failed to insert credential")
			return fmt.Errorf("%w: insert credential %s: %w", ErrExecutingStatement, record.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func (c *credentialRepository) DeleteCredentials(ctx context.Context, userID string) error {
	query, args, err := buildDeleteCredentialsQuery(userID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = c.DB.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "credentialRepository.DeleteCredentials").
			Str("user_id", userID).
			Msg("failed to delete credentials")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (c *credentialRepository) DeleteCredential(ctx context.Context, userID, id string) error {
	query, args, err := buildDeleteCredentialQuery(userID, id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := c.DB.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "credentialRepository.DeleteCredential").
			Str("user_id", userID).
			Str("record_id", id).
			Msg("failed to delete credential")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrCredentialNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCredential(row rowScanner) (models.CredentialRecord, error) {
	var r models.CredentialRecord
	err := row.Scan(&r.ID, &r.CategoryID, &r.Title, &r.Username, &r.Secret, &r.URL, &r.Notes)
	return r, err
}
