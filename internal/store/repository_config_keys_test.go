// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Arbormail Authors

package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/arbormail/arbormail/internal/logger"
	"github.com/arbormail/arbormail/models"
)

func newTestConfigKeyRepo(t *testing.T) (*configKeyRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &configKeyRepository{
		db:     &DB{DB: db, classifier: NewPostgresErrorClassifier(), logger: l},
		logger: l,
	}
	return repo, mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func TestListKeys_Success(t *testing.T) {
	repo, mock, db := newTestConfigKeyRepo(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.
		NewRows([]string{"key", "value", "updated_at"}).
		AddRow("server.greeting", "hello", now).
		AddRow("server.hostname", "mx.example.org", now)

	mock.ExpectQuery("SELECT key, value, updated_at FROM config_keys").
		WillReturnRows(rows)

	entries, err := repo.ListKeys(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Key != "server.greeting" || entries[1].Key != "server.hostname" {
		t.Errorf("unexpected keys: %q, %q", entries[0].Key, entries[1].Key)
	}
}

func TestListKeys_PrefixTravelsAsArg(t *testing.T) {
	repo, mock, db := newTestConfigKeyRepo(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"key", "value", "updated_at"})

	mock.ExpectQuery("SELECT key, value, updated_at FROM config_keys").
		WithArgs("server.listener.%").
		WillReturnRows(rows)

	if _, err := repo.ListKeys(context.Background(), "server.listener."); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestListKeys_QueryError(t *testing.T) {
	repo, mock, db := newTestConfigKeyRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT key, value, updated_at FROM config_keys").
		WillReturnError(errors.New("db network error"))

	_, err := repo.ListKeys(context.Background(), "")
	if !errors.Is(err, ErrExecutingQuery) {
		t.Fatalf("expected ErrExecutingQuery, got %v", err)
	}
}

func TestListKeys_ScanError(t *testing.T) {
	repo, mock, db := newTestConfigKeyRepo(t)
	defer db.Close()

	rows := sqlmock.
		NewRows([]string{"key", "value", "updated_at"}).
		AddRow("server.hostname", "mx.example.org", "not-a-timestamp")

	mock.ExpectQuery("SELECT key, value, updated_at FROM config_keys").
		WillReturnRows(rows)

	_, err := repo.ListKeys(context.Background(), "")
	if !errors.Is(err, ErrScanningRows) {
		t.Fatalf("expected ErrScanningRows, got %v", err)
	}
}

func TestGetKey_Success(t *testing.T) {
	repo, mock, db := newTestConfigKeyRepo(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.
		NewRows([]string{"key", "value", "updated_at"}).
		AddRow("server.hostname", "mx.example.org", now)

	mock.ExpectQuery("SELECT key, value, updated_at FROM config_keys").
		WithArgs("server.hostname").
		WillReturnRows(rows)

	entry, err := repo.GetKey(context.Background(), "server.hostname")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Value != "mx.example.org" {
		t.Errorf("expected value mx.example.org, got %q", entry.Value)
	}
}

func TestGetKey_NotFound(t *testing.T) {
	repo, mock, db := newTestConfigKeyRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT key, value, updated_at FROM config_keys").
		WithArgs("server.hostname").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetKey(context.Background(), "server.hostname")
	if !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestGetValue_Hit(t *testing.T) {
	repo, mock, db := newTestConfigKeyRepo(t)
	defer db.Close()

	rows := sqlmock.
		NewRows([]string{"key", "value", "updated_at"}).
		AddRow("server.greeting", "hello", time.Now())

	mock.ExpectQuery("SELECT key, value, updated_at FROM config_keys").
		WithArgs("server.greeting").
		WillReturnRows(rows)

	value, ok, err := repo.GetValue(context.Background(), "server.greeting")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || value != "hello" {
		t.Errorf("expected (hello, true), got (%q, %v)", value, ok)
	}
}

func TestGetValue_MissIsNotAnError(t *testing.T) {
	repo, mock, db := newTestConfigKeyRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT key, value, updated_at FROM config_keys").
		WithArgs("server.greeting").
		WillReturnError(sql.ErrNoRows)

	value, ok, err := repo.GetValue(context.Background(), "server.greeting")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok || value != "" {
		t.Errorf("expected empty miss, got (%q, %v)", value, ok)
	}
}

func TestGetValue_DBErrorIsAnError(t *testing.T) {
	repo, mock, db := newTestConfigKeyRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT key, value, updated_at FROM config_keys").
		WithArgs("server.greeting").
		WillReturnError(errors.New("db failure"))

	_, _, err := repo.GetValue(context.Background(), "server.greeting")
	if !errors.Is(err, ErrExecutingQuery) {
		t.Fatalf("expected ErrExecutingQuery, got %v", err)
	}
}

func TestSetKeys_Success(t *testing.T) {
	repo, mock, db := newTestConfigKeyRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO config_keys").
		WithArgs("server.hostname", "mx.example.org", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO config_keys").
		WithArgs("server.greeting", "hello", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.SetKeys(context.Background(),
		models.ConfigKey{Key: "server.hostname", Value: "mx.example.org"},
		models.ConfigKey{Key: "server.greeting", Value: "hello"},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSetKeys_NoEntriesIsNoop(t *testing.T) {
	repo, mock, db := newTestConfigKeyRepo(t)
	defer db.Close()

	if err := repo.SetKeys(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSetKeys_RetriesOnDeadlock(t *testing.T) {
	repo, mock, db := newTestConfigKeyRepo(t)
	defer db.Close()

	// first attempt deadlocks and rolls back
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO config_keys").
		WillReturnError(pgError(pgerrcode.DeadlockDetected))
	mock.ExpectRollback()

	// retry succeeds
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO config_keys").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.SetKeys(context.Background(), models.ConfigKey{Key: "k", Value: "v"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSetKeys_NonRetryableFailsFast(t *testing.T) {
	repo, mock, db := newTestConfigKeyRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO config_keys").
		WillReturnError(pgError(pgerrcode.NotNullViolation))
	mock.ExpectRollback()

	err := repo.SetKeys(context.Background(), models.ConfigKey{Key: "k", Value: "v"})
	if !errors.Is(err, ErrExecutingQuery) {
		t.Fatalf("expected ErrExecutingQuery, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSetKeys_BeginError(t *testing.T) {
	repo, mock, db := newTestConfigKeyRepo(t)
	defer db.Close()

	mock.ExpectBegin().WillReturnError(errors.New("no connection"))

	err := repo.SetKeys(context.Background(), models.ConfigKey{Key: "k", Value: "v"})
	if !errors.Is(err, ErrBeginningTransaction) {
		t.Fatalf("expected ErrBeginningTransaction, got %v", err)
	}
}

func TestSetKeys_CommitError(t *testing.T) {
	repo, mock, db := newTestConfigKeyRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO config_keys").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit().WillReturnError(errors.New("commit failed"))

	err := repo.SetKeys(context.Background(), models.ConfigKey{Key: "k", Value: "v"})
	if !errors.Is(err, ErrCommitingTransaction) {
		t.Fatalf("expected ErrCommitingTransaction, got %v", err)
	}
}

func TestSetKeys_ZeroRowsAffected(t *testing.T) {
	repo, mock, db := newTestConfigKeyRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO config_keys").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.SetKeys(context.Background(), models.ConfigKey{Key: "k", Value: "v"})
	if !errors.Is(err, ErrNothingSaved) {
		t.Fatalf("expected ErrNothingSaved, got %v", err)
	}
}

func TestDeleteKey_Success(t *testing.T) {
	repo, mock, db := newTestConfigKeyRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM config_keys").
		WithArgs("server.greeting").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.DeleteKey(context.Background(), "server.greeting"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeleteKey_NotFound(t *testing.T) {
	repo, mock, db := newTestConfigKeyRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM config_keys").
		WithArgs("server.greeting").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteKey(context.Background(), "server.greeting")
	if !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestDeleteKey_ExecError(t *testing.T) {
	repo, mock, db := newTestConfigKeyRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM config_keys").
		WithArgs("server.greeting").
		WillReturnError(errors.New("db failure"))

	err := repo.DeleteKey(context.Background(), "server.greeting")
	if !errors.Is(err, ErrExecutingQuery) {
		t.Fatalf("expected ErrExecutingQuery, got %v", err)
	}
}

func TestSetKeys_RetryGivesUpEventually(t *testing.T) {
	repo, mock, db := newTestConfigKeyRepo(t)
	defer db.Close()

	for i := 0; i <= setKeysRetries; i++ {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO config_keys").
			WillReturnError(pgError(pgerrcode.SerializationFailure))
		mock.ExpectRollback()
	}

	err := repo.SetKeys(context.Background(), models.ConfigKey{Key: "k", Value: "v"})
	if !errors.Is(err, ErrExecutingQuery) {
		t.Fatalf("expected ErrExecutingQuery after exhausted retries, got %v", err)
	}
	if !strings.Contains(err.Error(), pgerrcode.SerializationFailure) {
		t.Errorf("expected serialization failure code in error, got: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
