package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/b2b-bazaar/internal/constants"
	"github.com/b2b-bazaar/internal/repository"
)

func newTestEnquiryService(env *serviceTestEnv) *EnquiryService {
	return NewEnquiryService(repository.NewEnquiryRepository(env.db), repository.NewProductRepository(env.db))
}

func validEnquiryInput() CreateEnquiryInput {
	return CreateEnquiryInput{
		Name:     "Ravi Kumar",
		Email:    " Ravi@Example.COM ",
		Company:  "Kumar Traders",
		Subject:  "Bulk pricing for M8 bolts",
		Message:  "Need 20k pieces monthly.",
		Quantity: 20000,
	}
}

func TestEnquiryCreateValidatesInput(t *testing.T) {
	env := setupServiceTest(t)
	svc := newTestEnquiryService(env)

	cases := map[string]func(*CreateEnquiryInput){
		"bad email":     func(in *CreateEnquiryInput) { in.Email = "not-an-email" },
		"empty name":    func(in *CreateEnquiryInput) { in.Name = " " },
		"empty subject": func(in *CreateEnquiryInput) { in.Subject = "" },
		"long message":  func(in *CreateEnquiryInput) { in.Message = strings.Repeat("x", 5001) },
	}
	for name, mutate := range cases {
		input := validEnquiryInput()
		mutate(&input)
		if _, err := svc.Create(input); !errors.Is(err, ErrEnquiryInvalid) {
			t.Fatalf("%s: expected invalid enquiry, got %v", name, err)
		}
	}

	input := validEnquiryInput()
	input.ProductID = 404
	if _, err := svc.Create(input); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected product not found, got %v", err)
	}
}

func TestEnquiryLifecycle(t *testing.T) {
	env := setupServiceTest(t)
	svc := newTestEnquiryService(env)
	product := env.createProduct(t, "bolt", "10", 0, true)

	input := validEnquiryInput()
	input.UserID = 7
	input.ProductID = product.ID
	enquiry, err := svc.Create(input)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if enquiry.Status != constants.EnquiryStatusNew || enquiry.Email != "ravi@example.com" {
		t.Fatalf("unexpected enquiry: %+v", enquiry)
	}
	guest, err := svc.Create(validEnquiryInput())
	if err != nil {
		t.Fatalf("guest create failed: %v", err)
	}
	if guest.UserID != nil {
		t.Fatalf("guest enquiry should not carry a user")
	}

	mine, total, err := svc.ListMine(7, 1, 10)
	if err != nil || total != 1 || len(mine) != 1 {
		t.Fatalf("expected one enquiry for user, got %d/%d err=%v", len(mine), total, err)
	}

	responded, err := svc.Respond(1, enquiry.ID, "Quote sent to your email.")
	if err != nil {
		t.Fatalf("respond failed: %v", err)
	}
	if responded.Status != constants.EnquiryStatusResponded || responded.Response.Message != "Quote sent to your email." {
		t.Fatalf("unexpected responded enquiry: %+v", responded)
	}
	if responded.Response.RespondedBy == nil || *responded.Response.RespondedBy != 1 || responded.Response.RespondedAt == nil {
		t.Fatalf("response metadata missing: %+v", responded.Response)
	}
	if _, err := svc.Respond(1, enquiry.ID, "again"); !errors.Is(err, ErrEnquiryStatusInvalid) {
		t.Fatalf("second response should fail, got %v", err)
	}

	closed, err := svc.Close(1, enquiry.ID)
	if err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if closed.Status != constants.EnquiryStatusClosed || closed.ClosedAt == nil {
		t.Fatalf("unexpected closed enquiry: %+v", closed)
	}
	if _, err := svc.Close(1, enquiry.ID); !errors.Is(err, ErrEnquiryStatusInvalid) {
		t.Fatalf("closing twice should fail, got %v", err)
	}
	if _, err := svc.Close(1, 9999); !errors.Is(err, ErrEnquiryNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	// new 状态可直接关闭
	if _, err := svc.Close(1, guest.ID); err != nil {
		t.Fatalf("closing a new enquiry failed: %v", err)
	}
}
