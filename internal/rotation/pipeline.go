// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package rotation re-encrypts a whole credential corpus under a new master
// key when the user changes the master password.
//
// A run derives the new key, opens every field with the old key and seals it
// again with the new one. The result is handed back as a single value; the
// pipeline never touches the session store, the secure vault or the server.
// Committing the new key after the server accepted the new records is the
// caller's job, and discarding a result is all it takes to cancel a rotation.
package rotation

import (
	"context"
	"fmt"
	"runtime"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/MKhiriev/go-pass-keeper-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-keeper-vault/internal/logger"
	"github.com/MKhiriev/go-pass-keeper-vault/models"
)

const instrumentationName = "github.com/MKhiriev/go-pass-keeper-vault/internal/rotation"

// DefaultBatchSize is the number of records processed between two progress
// reports.
const DefaultBatchSize = 10

// Request is the input of a rotation run.
type Request struct {
	Records     []models.CredentialRecord
	OldKey      *crypto.MasterKey
	NewPassword string
	UserID      string
	Pepper      string
}

// Result is the output of a successful run. Records keeps the input order.
// NewKey belongs to the caller, who must either commit it or wipe it.
type Result struct {
	Records []models.CredentialRecord
	NewKey  *crypto.MasterKey
}

// ProgressFunc receives the completed share of a run in percent. Values never
// decrease and the last value of a successful run is 100.
type ProgressFunc func(percent int)

// Pipeline runs rotations. It is safe for concurrent use as long as the
// deriver and cipher are.
type Pipeline struct {
	deriver   crypto.KeyDeriver
	cipher    crypto.FieldCipher
	batchSize int

	tracer  trace.Tracer
	rotated metric.Int64Counter
	logger  *logger.Logger
}

// NewPipeline builds a pipeline. A batchSize below one falls back to
// DefaultBatchSize.
func NewPipeline(deriver crypto.KeyDeriver, cipher crypto.FieldCipher, batchSize int, log *logger.Logger) *Pipeline {
	if batchSize < 1 {
		batchSize = DefaultBatchSize
	}
	if log == nil {
		log = logger.Nop()
	}

	rotated, err := otel.Meter(instrumentationName).Int64Counter(
		"vault.rotation.records",
		metric.WithDescription("Credential records re-encrypted under a new master key"),
	)
	if err != nil {
		log.Warn().Err(err).Str("func", "rotation.NewPipeline").Msg("rotation counter is not available")
	}

	return &Pipeline{
		deriver:   deriver,
		cipher:    cipher,
		batchSize: batchSize,
		tracer:    otel.Tracer(instrumentationName),
		rotated:   rotated,
		logger:    log,
	}
}

// BatchSize returns the number of records per batch.
func (p *Pipeline) BatchSize() int {
	return p.batchSize
}

// Rotate performs a complete run synchronously.
//
// Any failure discards everything the run produced: a derivation error is
// returned as is, a field that cannot be opened or sealed yields a
// [*RecordError], and a cancelled ctx yields an error wrapping both
// ErrRotationAborted and ctx.Err(). onProgress may be nil.
func (p *Pipeline) Rotate(ctx context.Context, req Request, onProgress ProgressFunc) (Result, error) {
	ctx, span := p.tracer.Start(ctx, "rotation.Rotate", trace.WithAttributes(
		attribute.Int("records", len(req.Records)),
		attribute.Int("batch_size", p.batchSize),
	))
	defer span.End()

	log := p.logger
	if onProgress == nil {
		onProgress = func(int) {}
	}

	res, err := p.rotate(ctx, span, req, onProgress)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "rotation aborted")
		log.Err(err).Str("func", "rotation.Rotate").Str("user_id", req.UserID).Msg("rotation run discarded")
		return Result{}, err
	}

	if p.rotated != nil {
		p.rotated.Add(ctx, int64(len(res.Records)))
	}
	log.Info().Str("func", "rotation.Rotate").Str("user_id", req.UserID).
		Int("records", len(res.Records)).Msg("rotation run completed")
	return res, nil
}

func (p *Pipeline) rotate(ctx context.Context, span trace.Span, req Request, onProgress ProgressFunc) (Result, error) {
	if !req.OldKey.Usable() {
		return Result{}, fmt.Errorf("rotation: old key: %w", crypto.ErrMissingKey)
	}
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrRotationAborted, err)
	}

	newKey, err := p.deriver.Derive(req.NewPassword, req.UserID, req.Pepper)
	if err != nil {
		return Result{}, fmt.Errorf("rotation: derive new key: %w", err)
	}
	span.AddEvent("new key derived")

	total := len(req.Records)
	out := make([]models.CredentialRecord, 0, total)

	for start := 0; start < total; start += p.batchSize {
		end := min(start+p.batchSize, total)

		for _, record := range req.Records[start:end] {
			rotated, err := p.rotateRecord(record, req.OldKey, newKey)
			if err != nil {
				newKey.Wipe()
				return Result{}, err
			}
			out = append(out, rotated)
		}

		onProgress(end * 100 / total)

		// scheduling point between batches
		runtime.Gosched()
		if err := ctx.Err(); err != nil {
			newKey.Wipe()
			return Result{}, fmt.Errorf("%w: %w", ErrRotationAborted, err)
		}
	}

	if total == 0 {
		onProgress(100)
	}

	return Result{Records: out, NewKey: newKey}, nil
}

type fieldRef struct {
	name     string
	value    *models.CipheredField
	optional bool
}

func fieldsOf(r *models.CredentialRecord) []fieldRef {
	return []fieldRef{
		{name: models.FieldTitle, value: &r.Title},
		{name: models.FieldUsername, value: &r.Username},
		{name: models.FieldSecret, value: &r.Secret},
		{name: models.FieldURL, value: &r.URL, optional: true},
		{name: models.FieldNotes, value: &r.Notes, optional: true},
	}
}

// rotateRecord opens every field of record with oldKey before sealing any of
// them with newKey, so a record is never half rotated.
func (p *Pipeline) rotateRecord(record models.CredentialRecord, oldKey, newKey *crypto.MasterKey) (models.CredentialRecord, error) {
	rotated := record
	fields := fieldsOf(&rotated)
	plain := make([]string, len(fields))

	for i, f := range fields {
		var err error
		if f.optional {
			plain[i], err = p.cipher.DecryptOptional(*f.value, oldKey)
		} else {
			plain[i], err = p.cipher.Decrypt(*f.value, oldKey)
		}
		if err != nil {
			return models.CredentialRecord{}, &RecordError{RecordID: record.ID, Field: f.name, Err: err}
		}
	}

	for i, f := range fields {
		var (
			sealed models.CipheredField
			err    error
		)
		if f.optional {
			sealed, err = p.cipher.EncryptOptional(plain[i], newKey)
		} else {
			sealed, err = p.cipher.Encrypt(plain[i], newKey)
		}
		if err != nil {
			return models.CredentialRecord{}, &RecordError{RecordID: record.ID, Field: f.name, Err: err}
		}
		*f.value = sealed
	}

	return rotated, nil
}
