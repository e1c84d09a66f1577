package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/lightbnb/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestHandleError_UniqueViolation(t *testing.T) {
	err := fmt.Errorf("addUser: %w", &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23505",
		Message:        `duplicate key value violates unique constraint "users_email_key"`,
		TableName:      "users",
		ConstraintName: "users_email_key",
	})

	got := HandleError(err)
	if got.Status != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", got.Status)
	}
	if got.Code != "USER_ALREADY_EXISTS" {
		t.Fatalf("expected USER_ALREADY_EXISTS, got %s", got.Code)
	}
	if got.Message != "A User with this Email already exists" {
		t.Fatalf("unexpected message %q", got.Message)
	}
	if !got.Override {
		t.Fatal("expected unique violation message to be safe for clients")
	}
}

func TestHandleError_ForeignKeyViolation(t *testing.T) {
	got := HandleError(&pgconn.PgError{
		Code:       "23503",
		TableName:  "properties",
		ColumnName: "owner_id",
	})

	if got.Status != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", got.Status)
	}
	if got.Code != "PROPERTY_NOT_FOUND" {
		t.Fatalf("unexpected code %s", got.Code)
	}
	if got.Message != "The referenced Owner does not exist" {
		t.Fatalf("unexpected message %q", got.Message)
	}
}

func TestHandleError_NotNullViolation(t *testing.T) {
	got := HandleError(&pgconn.PgError{
		Code:       "23502",
		TableName:  "properties",
		ColumnName: "post_code",
	})

	if got.Message != "The Post Code is required" {
		t.Fatalf("unexpected message %q", got.Message)
	}
	if len(got.Errors) != 1 || got.Errors[0].Field != "post_code" {
		t.Fatalf("unexpected field errors %+v", got.Errors)
	}
}

func TestHandleError_NoRows(t *testing.T) {
	got := HandleError(fmt.Errorf("getUserWithId: %w", pgx.ErrNoRows))
	if got.Status != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", got.Status)
	}
}

func TestHandleError_PassThroughAndFallback(t *testing.T) {
	appErr := errs.NewNotFoundError("User not found", true, nil)
	if got := HandleError(appErr); got != appErr {
		t.Fatal("expected *errs.Error to pass through unchanged")
	}

	if got := HandleError(errors.New("connection reset")); got.Status != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", got.Status)
	}

	if got := HandleError(&pgconn.PgError{Code: "42P01"}); got.Status != http.StatusInternalServerError {
		t.Fatalf("undefined table must not leak details, got %+v", got)
	}
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	tests := map[string]string{
		"unique_users_email":    "email",
		"users_email_key":       "email",
		"properties_title_ukey": "title",
		"pk_users":              "",
		"":                      "",
	}
	for in, want := range tests {
		if got := extractColumnForUniqueViolation(in); got != want {
			t.Fatalf("extractColumnForUniqueViolation(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGetEntityName(t *testing.T) {
	if got := getEntityName("properties", ""); got != "Property" {
		t.Fatalf("expected Property, got %s", got)
	}
	if got := getEntityName("reservations", "guest_id"); got != "Guest" {
		t.Fatalf("expected Guest, got %s", got)
	}
	if got := getEntityName("", ""); got != "record" {
		t.Fatalf("expected record, got %s", got)
	}
}

func TestErrCode(t *testing.T) {
	if got := ErrCode(&pgconn.PgError{Code: "23514"}); got != CheckViolation {
		t.Fatalf("expected check violation, got %s", got)
	}
	if got := ErrCode(ConvertPgError(&pgconn.PgError{Code: "40P01"})); got != DeadlockDetected {
		t.Fatalf("expected deadlock, got %s", got)
	}
	if got := ErrCode(errors.New("plain")); got != Other {
		t.Fatalf("expected other, got %s", got)
	}
}
