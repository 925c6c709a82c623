package billing

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"hospital-management-backend/internal/models"
	"hospital-management-backend/internal/repository"
)

func setupBillingDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{}, &models.Patient{},
		&models.Bill{}, &models.BillItem{}, &models.PaymentHistory{}, &models.BillAuditLog{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedPatient(t *testing.T, db *gorm.DB) models.Patient {
	t.Helper()
	patient := models.Patient{
		ID:        uuid.New(),
		MRN:       "MRN-" + uuid.New().String()[:8],
		FirstName: "Amina",
		LastName:  "Khan",
	}
	if err := db.Create(&patient).Error; err != nil {
		t.Fatalf("seed patient: %v", err)
	}
	return patient
}

func newTestService(db *gorm.DB) *Service {
	return NewService(repository.NewBillRepository(db), repository.NewPatientRepository(db))
}

func mustCreateBill(t *testing.T, s *Service, patientID uuid.UUID, items []ItemInput) *models.Bill {
	t.Helper()
	bill, err := s.CreateBill(context.Background(), CreateBillRequest{
		PatientID: patientID,
		CreatedBy: uuid.New(),
		Items:     items,
	})
	if err != nil {
		t.Fatalf("create bill: %v", err)
	}
	return bill
}

func TestCreateBillComputesTotal(t *testing.T) {
	db := setupBillingDB(t)
	s := newTestService(db)
	patient := seedPatient(t, db)

	bill := mustCreateBill(t, s, patient.ID, []ItemInput{
		{ItemType: "consultation", Description: "OPD consult", Quantity: 2, UnitPrice: d("500")},
		{ItemType: "lab", Description: "CBC", Quantity: 1, UnitPrice: d("800")},
	})

	if !bill.TotalAmount.Equal(d("1800")) {
		t.Errorf("total = %s, want 1800", bill.TotalAmount)
	}
	if bill.Status != models.BillStatusPending {
		t.Errorf("status = %q, want pending", bill.Status)
	}
	if !bill.PaidAmount.IsZero() {
		t.Errorf("paid = %s, want 0", bill.PaidAmount)
	}

	// stored aggregate matches
	stored, err := s.GetBill(context.Background(), bill.ID)
	if err != nil {
		t.Fatalf("get bill: %v", err)
	}
	if len(stored.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(stored.Items))
	}
	if !stored.TotalAmount.Equal(d("1800")) {
		t.Errorf("stored total = %s, want 1800", stored.TotalAmount)
	}
}

func TestItemColumnsMultiplyOut(t *testing.T) {
	db := setupBillingDB(t)
	s := newTestService(db)
	patient := seedPatient(t, db)

	// a sub-cent unit price is rounded before the line total is derived, so
	// stored quantity * unit_price always equals stored total_price
	bill := mustCreateBill(t, s, patient.ID, []ItemInput{
		{Description: "dressing", Quantity: 2, UnitPrice: d("33.335")},
	})

	stored, err := s.GetBill(context.Background(), bill.ID)
	if err != nil {
		t.Fatalf("get bill: %v", err)
	}
	item := stored.Items[0]
	if !item.UnitPrice.Equal(d("33.34")) {
		t.Errorf("stored unit price = %s, want 33.34", item.UnitPrice)
	}
	want := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
	if !item.TotalPrice.Equal(want) {
		t.Errorf("total_price = %s, want %s (= %d * %s)", item.TotalPrice, want, item.Quantity, item.UnitPrice)
	}
	if !stored.TotalAmount.Equal(d("66.68")) {
		t.Errorf("bill total = %s, want 66.68", stored.TotalAmount)
	}
}

func TestCreateBillZeroItems(t *testing.T) {
	db := setupBillingDB(t)
	s := newTestService(db)
	patient := seedPatient(t, db)

	bill := mustCreateBill(t, s, patient.ID, nil)
	if !bill.TotalAmount.IsZero() || bill.Status != models.BillStatusPending {
		t.Errorf("zero-item bill: total=%s status=%q, want 0/pending", bill.TotalAmount, bill.Status)
	}

	// nothing can be paid against a zero bill
	_, err := s.RecordPayment(context.Background(), RecordPaymentRequest{
		BillID: bill.ID, Amount: d("1"), Method: models.PaymentMethodCash, ReceivedBy: uuid.New(),
	})
	if !errors.Is(err, ErrOverpayment) {
		t.Errorf("payment against zero bill: err = %v, want ErrOverpayment", err)
	}
}

func TestCreateBillValidation(t *testing.T) {
	db := setupBillingDB(t)
	s := newTestService(db)
	patient := seedPatient(t, db)

	cases := []struct {
		name  string
		items []ItemInput
	}{
		{"missing description", []ItemInput{{Quantity: 1, UnitPrice: d("10")}}},
		{"zero quantity", []ItemInput{{Description: "x", Quantity: 0, UnitPrice: d("10")}}},
		{"negative price", []ItemInput{{Description: "x", Quantity: 1, UnitPrice: d("-1")}}},
	}
	for _, tc := range cases {
		_, err := s.CreateBill(context.Background(), CreateBillRequest{PatientID: patient.ID, Items: tc.items})
		if !IsValidation(err) {
			t.Errorf("%s: err = %v, want validation error", tc.name, err)
		}
	}

	_, err := s.CreateBill(context.Background(), CreateBillRequest{PatientID: uuid.New()})
	if !errors.Is(err, ErrPatientNotFound) {
		t.Errorf("unknown patient: err = %v, want ErrPatientNotFound", err)
	}
}

func TestPayFullThenOverpay(t *testing.T) {
	db := setupBillingDB(t)
	s := newTestService(db)
	patient := seedPatient(t, db)
	ctx := context.Background()

	bill := mustCreateBill(t, s, patient.ID, []ItemInput{
		{Description: "surgery", Quantity: 2, UnitPrice: d("500")},
		{Description: "room", Quantity: 1, UnitPrice: d("800")},
	})

	if _, err := s.RecordPayment(ctx, RecordPaymentRequest{
		BillID: bill.ID, Amount: d("1800"), Method: models.PaymentMethodCard, ReceivedBy: uuid.New(),
	}); err != nil {
		t.Fatalf("full payment: %v", err)
	}

	got, _ := s.GetBill(ctx, bill.ID)
	if !got.PaidAmount.Equal(d("1800")) || got.Status != models.BillStatusPaid {
		t.Fatalf("after full payment: paid=%s status=%q", got.PaidAmount, got.Status)
	}

	// one more unit must be rejected and leave the ledger unchanged
	_, err := s.RecordPayment(ctx, RecordPaymentRequest{
		BillID: bill.ID, Amount: d("1"), Method: models.PaymentMethodCash, ReceivedBy: uuid.New(),
	})
	if !errors.Is(err, ErrOverpayment) {
		t.Fatalf("overpay: err = %v, want ErrOverpayment", err)
	}

	got, _ = s.GetBill(ctx, bill.ID)
	if len(got.Payments) != 1 {
		t.Errorf("ledger changed after rejected payment: %d entries", len(got.Payments))
	}
	if !got.PaidAmount.Equal(d("1800")) || got.Status != models.BillStatusPaid {
		t.Errorf("bill changed after rejected payment: paid=%s status=%q", got.PaidAmount, got.Status)
	}
}

func TestPartialPayments(t *testing.T) {
	db := setupBillingDB(t)
	s := newTestService(db)
	patient := seedPatient(t, db)
	ctx := context.Background()

	bill := mustCreateBill(t, s, patient.ID, []ItemInput{
		{Description: "consult", Quantity: 1, UnitPrice: d("1000")},
	})

	if _, err := s.RecordPayment(ctx, RecordPaymentRequest{
		BillID: bill.ID, Amount: d("300"), Method: models.PaymentMethodCash, ReceivedBy: uuid.New(),
	}); err != nil {
		t.Fatalf("first payment: %v", err)
	}
	got, _ := s.GetBill(ctx, bill.ID)
	if !got.PaidAmount.Equal(d("300")) || got.Status != models.BillStatusPartial {
		t.Fatalf("after 300: paid=%s status=%q, want 300/partial", got.PaidAmount, got.Status)
	}

	if _, err := s.RecordPayment(ctx, RecordPaymentRequest{
		BillID: bill.ID, Amount: d("700"), Method: models.PaymentMethodInsurance, ReceivedBy: uuid.New(),
	}); err != nil {
		t.Fatalf("second payment: %v", err)
	}
	got, _ = s.GetBill(ctx, bill.ID)
	if !got.PaidAmount.Equal(d("1000")) || got.Status != models.BillStatusPaid {
		t.Fatalf("after 1000: paid=%s status=%q, want 1000/paid", got.PaidAmount, got.Status)
	}

	// paid_amount is the ledger sum
	sum := decimal.Zero
	for _, p := range got.Payments {
		sum = sum.Add(p.Amount)
	}
	if !sum.Equal(got.PaidAmount) {
		t.Errorf("paid_amount %s != ledger sum %s", got.PaidAmount, sum)
	}
}

func TestRecordPaymentValidation(t *testing.T) {
	db := setupBillingDB(t)
	s := newTestService(db)
	patient := seedPatient(t, db)
	ctx := context.Background()

	bill := mustCreateBill(t, s, patient.ID, []ItemInput{
		{Description: "consult", Quantity: 1, UnitPrice: d("100")},
	})

	_, err := s.RecordPayment(ctx, RecordPaymentRequest{
		BillID: bill.ID, Amount: d("0"), Method: models.PaymentMethodCash, ReceivedBy: uuid.New(),
	})
	if !IsValidation(err) {
		t.Errorf("zero amount: err = %v, want validation error", err)
	}

	_, err = s.RecordPayment(ctx, RecordPaymentRequest{
		BillID: bill.ID, Amount: d("-5"), Method: models.PaymentMethodCash, ReceivedBy: uuid.New(),
	})
	if !IsValidation(err) {
		t.Errorf("negative amount: err = %v, want validation error", err)
	}

	_, err = s.RecordPayment(ctx, RecordPaymentRequest{
		BillID: bill.ID, Amount: d("10"), Method: "bitcoin", ReceivedBy: uuid.New(),
	})
	if !IsValidation(err) {
		t.Errorf("bad method: err = %v, want validation error", err)
	}

	_, err = s.RecordPayment(ctx, RecordPaymentRequest{
		BillID: uuid.New(), Amount: d("10"), Method: models.PaymentMethodCash, ReceivedBy: uuid.New(),
	})
	if !errors.Is(err, ErrBillNotFound) {
		t.Errorf("unknown bill: err = %v, want ErrBillNotFound", err)
	}
}

func TestRecordPaymentSubCentAmount(t *testing.T) {
	db := setupBillingDB(t)
	s := newTestService(db)
	patient := seedPatient(t, db)
	ctx := context.Background()

	bill := mustCreateBill(t, s, patient.ID, []ItemInput{
		{Description: "consult", Quantity: 1, UnitPrice: d("100")},
	})

	// positive but rounds to 0.00: must be rejected, not stored as a
	// zero-amount ledger row
	_, err := s.RecordPayment(ctx, RecordPaymentRequest{
		BillID: bill.ID, Amount: d("0.004"), Method: models.PaymentMethodCash, ReceivedBy: uuid.New(),
	})
	if !IsValidation(err) {
		t.Fatalf("sub-cent amount: err = %v, want validation error", err)
	}

	got, _ := s.GetBill(ctx, bill.ID)
	if len(got.Payments) != 0 {
		t.Errorf("ledger entries after rejected sub-cent payment = %d, want 0", len(got.Payments))
	}

	trail, err := repository.NewBillRepository(db).AuditTrail(ctx, bill.ID)
	if err != nil {
		t.Fatalf("audit trail: %v", err)
	}
	if len(trail) != 1 {
		t.Errorf("audit entries = %d, want only the creation entry", len(trail))
	}

	// 0.005 rounds up to a valid cent and is accepted as such
	payment, err := s.RecordPayment(ctx, RecordPaymentRequest{
		BillID: bill.ID, Amount: d("0.005"), Method: models.PaymentMethodCash, ReceivedBy: uuid.New(),
	})
	if err != nil {
		t.Fatalf("half-cent amount: %v", err)
	}
	if !payment.Amount.Equal(d("0.01")) {
		t.Errorf("stored amount = %s, want 0.01", payment.Amount)
	}
}

func TestDuplicateIdempotencyKey(t *testing.T) {
	db := setupBillingDB(t)
	s := newTestService(db)
	patient := seedPatient(t, db)
	ctx := context.Background()

	bill := mustCreateBill(t, s, patient.ID, []ItemInput{
		{Description: "consult", Quantity: 1, UnitPrice: d("1000")},
	})

	if _, err := s.RecordPayment(ctx, RecordPaymentRequest{
		BillID: bill.ID, Amount: d("200"), Method: models.PaymentMethodCash,
		ReceivedBy: uuid.New(), IdempotencyKey: "rcpt-001",
	}); err != nil {
		t.Fatalf("first payment: %v", err)
	}

	_, err := s.RecordPayment(ctx, RecordPaymentRequest{
		BillID: bill.ID, Amount: d("300"), Method: models.PaymentMethodCash,
		ReceivedBy: uuid.New(), IdempotencyKey: "rcpt-001",
	})
	if !errors.Is(err, ErrDuplicateSubmission) {
		t.Fatalf("reused key: err = %v, want ErrDuplicateSubmission", err)
	}

	got, _ := s.GetBill(ctx, bill.ID)
	if len(got.Payments) != 1 || !got.PaidAmount.Equal(d("200")) {
		t.Errorf("ledger after duplicate: %d entries, paid=%s", len(got.Payments), got.PaidAmount)
	}
}

func TestDuplicateWindow(t *testing.T) {
	db := setupBillingDB(t)
	s := newTestService(db)
	patient := seedPatient(t, db)
	ctx := context.Background()
	payer := uuid.New()

	bill := mustCreateBill(t, s, patient.ID, []ItemInput{
		{Description: "consult", Quantity: 1, UnitPrice: d("1000")},
	})

	if _, err := s.RecordPayment(ctx, RecordPaymentRequest{
		BillID: bill.ID, Amount: d("250"), Method: models.PaymentMethodCash, ReceivedBy: payer,
	}); err != nil {
		t.Fatalf("first payment: %v", err)
	}

	// same amount, same payer, right away: treated as a double submit
	_, err := s.RecordPayment(ctx, RecordPaymentRequest{
		BillID: bill.ID, Amount: d("250"), Method: models.PaymentMethodCash, ReceivedBy: payer,
	})
	if !errors.Is(err, ErrDuplicateSubmission) {
		t.Fatalf("double submit: err = %v, want ErrDuplicateSubmission", err)
	}

	// a different payer with the same amount is legitimate
	if _, err := s.RecordPayment(ctx, RecordPaymentRequest{
		BillID: bill.ID, Amount: d("250"), Method: models.PaymentMethodCash, ReceivedBy: uuid.New(),
	}); err != nil {
		t.Fatalf("other payer: %v", err)
	}
}

func TestReplaceItems(t *testing.T) {
	db := setupBillingDB(t)
	s := newTestService(db)
	patient := seedPatient(t, db)
	ctx := context.Background()
	actor := uuid.New()

	bill := mustCreateBill(t, s, patient.ID, []ItemInput{
		{Description: "consult", Quantity: 1, UnitPrice: d("1000")},
	})

	// pending: wholesale replacement, total reflects only the new set
	updated, err := s.ReplaceItems(ctx, bill.ID, []ItemInput{
		{Description: "consult", Quantity: 1, UnitPrice: d("600")},
		{Description: "dressing", Quantity: 2, UnitPrice: d("50")},
	}, actor)
	if err != nil {
		t.Fatalf("edit pending bill: %v", err)
	}
	if !updated.TotalAmount.Equal(d("700")) || len(updated.Items) != 2 {
		t.Fatalf("after edit: total=%s items=%d, want 700/2", updated.TotalAmount, len(updated.Items))
	}

	// partial: still editable, status re-derived against the new total
	if _, err := s.RecordPayment(ctx, RecordPaymentRequest{
		BillID: bill.ID, Amount: d("300"), Method: models.PaymentMethodCash, ReceivedBy: uuid.New(),
	}); err != nil {
		t.Fatalf("payment: %v", err)
	}
	updated, err = s.ReplaceItems(ctx, bill.ID, []ItemInput{
		{Description: "consult", Quantity: 1, UnitPrice: d("300")},
	}, actor)
	if err != nil {
		t.Fatalf("edit partial bill: %v", err)
	}
	if updated.Status != models.BillStatusPaid {
		t.Errorf("status after shrinking total to the paid amount = %q, want paid", updated.Status)
	}

	// a paid bill is immutable
	_, err = s.ReplaceItems(ctx, bill.ID, []ItemInput{
		{Description: "consult", Quantity: 1, UnitPrice: d("50")},
	}, actor)
	if !errors.Is(err, ErrEditNotAllowed) {
		t.Fatalf("edit paid bill: err = %v, want ErrEditNotAllowed", err)
	}
}

func TestReplaceItemsBelowPaid(t *testing.T) {
	db := setupBillingDB(t)
	s := newTestService(db)
	patient := seedPatient(t, db)
	ctx := context.Background()

	bill := mustCreateBill(t, s, patient.ID, []ItemInput{
		{Description: "consult", Quantity: 1, UnitPrice: d("1000")},
	})
	if _, err := s.RecordPayment(ctx, RecordPaymentRequest{
		BillID: bill.ID, Amount: d("400"), Method: models.PaymentMethodCash, ReceivedBy: uuid.New(),
	}); err != nil {
		t.Fatalf("payment: %v", err)
	}

	// shrinking the total below what was already collected is rejected
	_, err := s.ReplaceItems(ctx, bill.ID, []ItemInput{
		{Description: "consult", Quantity: 1, UnitPrice: d("100")},
	}, uuid.New())
	if !IsValidation(err) {
		t.Fatalf("edit below paid: err = %v, want validation error", err)
	}

	got, _ := s.GetBill(ctx, bill.ID)
	if !got.TotalAmount.Equal(d("1000")) {
		t.Errorf("total changed after rejected edit: %s", got.TotalAmount)
	}
}

func TestCancelBill(t *testing.T) {
	db := setupBillingDB(t)
	s := newTestService(db)
	patient := seedPatient(t, db)
	ctx := context.Background()
	actor := uuid.New()

	bill := mustCreateBill(t, s, patient.ID, []ItemInput{
		{Description: "consult", Quantity: 1, UnitPrice: d("500")},
	})

	if err := s.CancelBill(ctx, bill.ID, actor); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	got, _ := s.GetBill(ctx, bill.ID)
	if got.Status != models.BillStatusCancelled {
		t.Fatalf("status = %q, want cancelled", got.Status)
	}

	// cancellation is sticky
	if err := s.CancelBill(ctx, bill.ID, actor); !errors.Is(err, ErrEditNotAllowed) {
		t.Errorf("second cancel: err = %v, want ErrEditNotAllowed", err)
	}
	if _, err := s.RecordPayment(ctx, RecordPaymentRequest{
		BillID: bill.ID, Amount: d("100"), Method: models.PaymentMethodCash, ReceivedBy: uuid.New(),
	}); !errors.Is(err, ErrEditNotAllowed) {
		t.Errorf("payment on cancelled bill: err = %v, want ErrEditNotAllowed", err)
	}
	if _, err := s.ReplaceItems(ctx, bill.ID, nil, actor); !errors.Is(err, ErrEditNotAllowed) {
		t.Errorf("edit on cancelled bill: err = %v, want ErrEditNotAllowed", err)
	}
}

// Two racing payments whose sum exceeds the remaining balance: exactly one
// may land. Transient sqlite write contention is retried; a rejected
// overpayment is final.
func TestConcurrentPaymentsCannotOverpay(t *testing.T) {
	db := setupBillingDB(t)
	s := newTestService(db)
	patient := seedPatient(t, db)
	ctx := context.Background()

	bill := mustCreateBill(t, s, patient.ID, []ItemInput{
		{Description: "consult", Quantity: 1, UnitPrice: d("1000")},
	})

	pay := func(payer uuid.UUID) error {
		var err error
		for attempt := 0; attempt < 100; attempt++ {
			_, err = s.RecordPayment(ctx, RecordPaymentRequest{
				BillID: bill.ID, Amount: d("600"), Method: models.PaymentMethodCash, ReceivedBy: payer,
			})
			if err == nil || errors.Is(err, ErrOverpayment) {
				return err
			}
			time.Sleep(5 * time.Millisecond)
		}
		return err
	}

	results := make(chan error, 2)
	go func() { results <- pay(uuid.New()) }()
	go func() { results <- pay(uuid.New()) }()

	var successes, overpayments int
	for i := 0; i < 2; i++ {
		switch err := <-results; {
		case err == nil:
			successes++
		case errors.Is(err, ErrOverpayment):
			overpayments++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if successes != 1 || overpayments != 1 {
		t.Fatalf("successes=%d overpayments=%d, want exactly one of each", successes, overpayments)
	}

	got, _ := s.GetBill(ctx, bill.ID)
	if !got.PaidAmount.Equal(d("600")) {
		t.Errorf("final paid = %s, want 600", got.PaidAmount)
	}
	if len(got.Payments) != 1 {
		t.Errorf("ledger entries = %d, want 1", len(got.Payments))
	}
	if got.Status != models.BillStatusPartial {
		t.Errorf("status = %q, want partial", got.Status)
	}
}

func TestSummary(t *testing.T) {
	db := setupBillingDB(t)
	s := newTestService(db)
	patient := seedPatient(t, db)
	ctx := context.Background()

	b1 := mustCreateBill(t, s, patient.ID, []ItemInput{{Description: "a", Quantity: 1, UnitPrice: d("100")}})
	mustCreateBill(t, s, patient.ID, []ItemInput{{Description: "b", Quantity: 1, UnitPrice: d("200")}})
	b3 := mustCreateBill(t, s, patient.ID, []ItemInput{{Description: "c", Quantity: 1, UnitPrice: d("300")}})

	if _, err := s.RecordPayment(ctx, RecordPaymentRequest{
		BillID: b1.ID, Amount: d("100"), Method: models.PaymentMethodCash, ReceivedBy: uuid.New(),
	}); err != nil {
		t.Fatalf("payment: %v", err)
	}
	if err := s.CancelBill(ctx, b3.ID, uuid.New()); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	sum, err := s.Summary(ctx)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.TotalBills != 3 || sum.PaidCount != 1 || sum.PendingCount != 1 || sum.CancelledCount != 1 {
		t.Errorf("counts: %+v", sum)
	}
	// cancelled bills are excluded from receivables
	if !sum.TotalBilled.Equal(d("300")) {
		t.Errorf("billed = %s, want 300", sum.TotalBilled)
	}
	if !sum.TotalCollected.Equal(d("100")) {
		t.Errorf("collected = %s, want 100", sum.TotalCollected)
	}
	if !sum.Outstanding.Equal(d("200")) {
		t.Errorf("outstanding = %s, want 200", sum.Outstanding)
	}
}

func TestAuditTrailWritten(t *testing.T) {
	db := setupBillingDB(t)
	s := newTestService(db)
	patient := seedPatient(t, db)
	ctx := context.Background()

	bill := mustCreateBill(t, s, patient.ID, []ItemInput{{Description: "a", Quantity: 1, UnitPrice: d("100")}})
	if _, err := s.RecordPayment(ctx, RecordPaymentRequest{
		BillID: bill.ID, Amount: d("100"), Method: models.PaymentMethodCash, ReceivedBy: uuid.New(),
	}); err != nil {
		t.Fatalf("payment: %v", err)
	}

	trail, err := repository.NewBillRepository(db).AuditTrail(ctx, bill.ID)
	if err != nil {
		t.Fatalf("audit trail: %v", err)
	}
	if len(trail) != 2 {
		t.Fatalf("trail entries = %d, want 2", len(trail))
	}
	if trail[0].Action != models.AuditBillCreated || trail[1].Action != models.AuditPaymentRecorded {
		t.Errorf("trail actions = %q, %q", trail[0].Action, trail[1].Action)
	}
}
