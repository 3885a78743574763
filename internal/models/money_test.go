package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestMoneyMinorUnits(t *testing.T) {
	cases := map[string]int64{
		"4820":    482000,
		"99.99":   9999,
		"0.005":   1,
		"1234.50": 123450,
	}
	for text, want := range cases {
		if got := MustMoney(text).MinorUnits(); got != want {
			t.Fatalf("%s: expected %d, got %d", text, want, got)
		}
	}
}

func TestMoneyJSON(t *testing.T) {
	raw, err := json.Marshal(MustMoney("12.5"))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(raw) != `"12.50"` {
		t.Fatalf("unexpected json: %s", raw)
	}
	var parsed Money
	if err := json.Unmarshal([]byte(`19.999`), &parsed); err != nil {
		t.Fatalf("unmarshal number failed: %v", err)
	}
	if parsed.String() != "20.00" {
		t.Fatalf("expected rounding to 20.00, got %s", parsed.String())
	}
	if err := json.Unmarshal([]byte(`"abc"`), &parsed); err == nil {
		t.Fatalf("expected error for invalid amount")
	}
}

func TestShippingAddressMissingFields(t *testing.T) {
	address := ShippingAddress{
		FullName:     "Asha Rao",
		Phone:        " ",
		AddressLine1: "12 Industrial Estate",
		City:         "Bengaluru",
		State:        "Karnataka",
		Country:      "India",
	}
	missing := address.MissingFields()
	if strings.Join(missing, ",") != "phone,postal_code" {
		t.Fatalf("unexpected missing fields: %v", missing)
	}
	address.Phone = "+91 98450 00000"
	address.PostalCode = "560058"
	if len(address.MissingFields()) != 0 {
		t.Fatalf("address should be complete")
	}
}

func TestCartFindItem(t *testing.T) {
	cart := &Cart{Items: []CartItem{{ProductID: 3}, {ProductID: 9}}}
	if cart.FindItem(9) != 1 {
		t.Fatalf("expected index 1")
	}
	if cart.FindItem(4) != -1 {
		t.Fatalf("expected -1 for missing product")
	}
}
