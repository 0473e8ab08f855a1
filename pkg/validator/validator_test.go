package validator_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	pkgvalidator "github.com/sbecerek/CatalogAPI/pkg/validator"
)

type sampleStruct struct {
	ID   string `validate:"required,uuid"`
	Name string `validate:"required,notblank,max=10"`
}

func TestValidate_valid(t *testing.T) {
	s := sampleStruct{
		ID:   "550e8400-e29b-41d4-a716-446655440000",
		Name: "hello",
	}
	if err := pkgvalidator.Validate(&s); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestValidate_missingRequired(t *testing.T) {
	s := sampleStruct{}
	if err := pkgvalidator.Validate(&s); err == nil {
		t.Fatal("expected validation error for empty struct")
	}
}

func TestFormatValidationErrors_required(t *testing.T) {
	s := sampleStruct{}
	err := pkgvalidator.Validate(&s)
	m := pkgvalidator.FormatValidationErrors(err)
	if m["ID"] != "This field is required" {
		t.Errorf("unexpected ID message: %q", m["ID"])
	}
	if m["Name"] != "This field is required" {
		t.Errorf("unexpected Name message: %q", m["Name"])
	}
}

func TestFormatValidationErrors_notblank(t *testing.T) {
	s := sampleStruct{ID: "550e8400-e29b-41d4-a716-446655440000", Name: "   "}
	err := pkgvalidator.Validate(&s)
	m := pkgvalidator.FormatValidationErrors(err)
	if m["Name"] != "Must not be blank" {
		t.Errorf("unexpected Name message: %q", m["Name"])
	}
}

func TestFormatValidationErrors_uuid(t *testing.T) {
	s := sampleStruct{ID: "not-a-uuid", Name: "ok"}
	err := pkgvalidator.Validate(&s)
	m := pkgvalidator.FormatValidationErrors(err)
	if m["ID"] != "Must be a valid UUID" {
		t.Errorf("unexpected ID message: %q", m["ID"])
	}
}

func TestFormatValidationErrors_max(t *testing.T) {
	s := sampleStruct{ID: "550e8400-e29b-41d4-a716-446655440000", Name: "12345678901"} // 11 chars > max=10
	err := pkgvalidator.Validate(&s)
	m := pkgvalidator.FormatValidationErrors(err)
	if m["Name"] != "Maximum length is 10" {
		t.Errorf("unexpected Name message: %q", m["Name"])
	}
}

func TestFormatValidationErrors_nonValidationError(t *testing.T) {
	m := pkgvalidator.FormatValidationErrors(http.ErrNoCookie)
	if len(m) != 0 {
		t.Errorf("expected empty map for non-validation error, got %v", m)
	}
}

type priced struct {
	Price decimal.Decimal `json:"price" validate:"gte=1,lte=1000"`
}

func TestValidate_decimalBounds(t *testing.T) {
	cases := []struct {
		price string
		ok    bool
	}{
		{"1", true},
		{"12.5", true},
		{"1000", true},
		{"0", false},
		{"0.99", false},
		{"1000.01", false},
		{"-5", false},
	}
	for _, tc := range cases {
		t.Run(tc.price, func(t *testing.T) {
			err := pkgvalidator.Validate(&priced{Price: decimal.RequireFromString(tc.price)})
			if (err == nil) != tc.ok {
				t.Fatalf("price %s: ok=%v, err=%v", tc.price, tc.ok, err)
			}
		})
	}
}

func TestFormatValidationErrors_decimalBounds(t *testing.T) {
	err := pkgvalidator.Validate(&priced{Price: decimal.NewFromInt(1001)})
	m := pkgvalidator.FormatValidationErrors(err)
	if m["price"] != "Must be less than or equal to 1000" {
		t.Errorf("unexpected price message: %q", m["price"])
	}
}

// --- ValidateRequest ---

type itemReq struct {
	Name  string          `json:"name"  validate:"required,notblank,max=255"`
	Price decimal.Decimal `json:"price" validate:"gte=1,lte=1000"`
}

func TestValidateRequest_valid(t *testing.T) {
	body := `{"name":"Potion","price":5}`
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	req, ok := pkgvalidator.ValidateRequest[itemReq](w, r)
	if !ok {
		t.Fatalf("expected ok=true, got false. Response: %s", w.Body.String())
	}
	if req.Name != "Potion" {
		t.Errorf("unexpected Name: %q", req.Name)
	}
	if !req.Price.Equal(decimal.NewFromInt(5)) {
		t.Errorf("unexpected Price: %s", req.Price)
	}
}

func TestValidateRequest_invalidJSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{bad json"))
	w := httptest.NewRecorder()

	_, ok := pkgvalidator.ValidateRequest[itemReq](w, r)
	if ok {
		t.Fatal("expected ok=false for malformed JSON")
	}
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Invalid JSON") {
		t.Errorf("expected 'Invalid JSON' in body, got: %s", w.Body.String())
	}
}

func TestValidateRequest_missingField(t *testing.T) {
	body := `{"price":5}`
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	w := httptest.NewRecorder()

	_, ok := pkgvalidator.ValidateRequest[itemReq](w, r)
	if ok {
		t.Fatal("expected ok=false for missing name")
	}
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Validation failed") {
		t.Errorf("expected 'Validation failed' in body, got: %s", w.Body.String())
	}
}

func TestValidateRequest_priceOutOfRange(t *testing.T) {
	body := `{"name":"Potion","price":0}`
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	w := httptest.NewRecorder()

	_, ok := pkgvalidator.ValidateRequest[itemReq](w, r)
	if ok {
		t.Fatal("expected ok=false for price 0")
	}
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"price"`) {
		t.Errorf("expected price field error in body, got: %s", w.Body.String())
	}
}
