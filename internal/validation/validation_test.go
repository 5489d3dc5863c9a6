package validation

import "testing"

func TestRequiredAndMaxLen(t *testing.T) {
	v := Violations{}
	Required("nom", "  ", v)
	Required("prenom", "Jane", v)
	MaxLen("statut", "this status string is way over the limit", 10, v)
	if v["nom"] != "required" {
		t.Fatalf("expected nom required, got %#v", v)
	}
	if _, ok := v["prenom"]; ok {
		t.Fatalf("prenom should pass")
	}
	if v["statut"] != "too_long" {
		t.Fatalf("expected statut too_long, got %#v", v)
	}
}

func TestEmail(t *testing.T) {
	v := Violations{}
	Email("email", "not-an-email", v)
	if v["email"] != "invalid_email" {
		t.Fatalf("expected invalid_email, got %#v", v)
	}
	v = Violations{}
	Email("email", "jane.doe@example.com", v)
	if !v.Empty() {
		t.Fatalf("valid email flagged: %#v", v)
	}
}

func TestRangeInt(t *testing.T) {
	v := Violations{}
	RangeInt("quantite", 0, 1, 1000, v)
	RangeInt("autre", 1001, 1, 1000, v)
	RangeInt("ok", 500, 1, 1000, v)
	if v["quantite"] != "out_of_range" || v["autre"] != "out_of_range" {
		t.Fatalf("expected out_of_range, got %#v", v)
	}
	if _, ok := v["ok"]; ok {
		t.Fatalf("in-range value flagged")
	}
}
