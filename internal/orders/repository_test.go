package orders

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestMapReceiptInsertErrUniqueViolation(t *testing.T) {
	err := mapReceiptInsertErr(&pgconn.PgError{Code: "23505", ConstraintName: "receipt_events_order_id_key"})
	if !errors.Is(err, ErrReceiptAlreadyConfirmed) {
		t.Fatalf("expected ErrReceiptAlreadyConfirmed, got %v", err)
	}
}

func TestMapReceiptInsertErrPassthrough(t *testing.T) {
	boom := errors.New("connection reset")
	if got := mapReceiptInsertErr(boom); !errors.Is(got, boom) {
		t.Fatalf("plain errors must pass through, got %v", got)
	}
	if got := mapReceiptInsertErr(&pgconn.PgError{Code: "23503"}); errors.Is(got, ErrReceiptAlreadyConfirmed) {
		t.Fatalf("foreign key violation must not map to a confirmation conflict")
	}
}
