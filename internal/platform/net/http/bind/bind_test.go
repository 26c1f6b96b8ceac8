package bind

import (
	"net/http/httptest"
	"strings"
	"testing"

	perr "shulzmanim/internal/platform/errors"

	"github.com/go-playground/validator/v10"
)

type shulIn struct {
	Name      string  `json:"name" validate:"required,min=2"`
	Timezone  string  `json:"timezone" validate:"required,iana_tz"`
	Lat       float64 `json:"latitude" validate:"min=-90,max=90"`
	Shacharis string  `json:"shacharis" validate:"omitempty,clock"`
}

func TestParseJSON(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		body  string
		code  perr.ErrorCode
		field string
	}{
		{"ok", `{"name":"Beth El","timezone":"America/New_York","latitude":40.1,"shacharis":"06:45"}`, 0, ""},
		{"empty", ``, perr.ErrorCodeJSON, ""},
		{"malformed", `{`, perr.ErrorCodeJSON, ""},
		{"unknown field", `{"name":"Beth El","timezone":"UTC","extra":1}`, perr.ErrorCodeJSON, ""},
		{"trailing", `{"name":"Beth El","timezone":"UTC"} {}`, perr.ErrorCodeJSON, ""},
		{"bad zone", `{"name":"Beth El","timezone":"Mars/Base"}`, perr.ErrorCodeValidation, "timezone"},
		{"bad lat", `{"name":"Beth El","timezone":"UTC","latitude":91}`, perr.ErrorCodeValidation, "latitude"},
		{"bad clock", `{"name":"Beth El","timezone":"UTC","shacharis":"25:00"}`, perr.ErrorCodeValidation, "shacharis"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest("POST", "/", strings.NewReader(tc.body))
			_, err := ParseJSON[shulIn](req)
			if tc.code == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if perr.CodeOf(err) != tc.code {
				t.Fatalf("code = %v (%v), want %v", perr.CodeOf(err), err, tc.code)
			}
			if tc.field != "" {
				if e, ok := perr.As(err); !ok || e.Field() != tc.field {
					t.Fatalf("field = %v", err)
				}
			}
		})
	}
}

func TestParseJSON_AllowEmpty(t *testing.T) {
	t.Parallel()

	type opt struct {
		Months int `json:"months" validate:"min=0,max=24"`
	}
	req := httptest.NewRequest("POST", "/", strings.NewReader(""))
	got, err := ParseJSON[opt](req, JSONOptions{AllowEmptyBody: true})
	if err != nil || got.Months != 0 {
		t.Fatalf("got %+v, %v", got, err)
	}
}

func TestMessages(t *testing.T) {
	t.Parallel()

	err := Struct(shulIn{Name: "x", Timezone: "UTC"})
	if err == nil || !strings.Contains(err.Error(), "name must be at least 2") {
		t.Fatalf("min message = %v", err)
	}
	err = Struct(shulIn{Name: "Beth El", Timezone: "Nowhere/Zone"})
	if err == nil || !strings.Contains(err.Error(), "timezone must be an IANA time zone") {
		t.Fatalf("zone message = %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()

	RegisterValidation("bind_test_even", "{0} must be even", func(fl validator.FieldLevel) bool {
		return fl.Field().Int()%2 == 0
	})
	type in struct {
		N int `json:"n" validate:"bind_test_even"`
	}
	if err := Struct(in{N: 4}); err != nil {
		t.Fatalf("even: %v", err)
	}
	err := Struct(in{N: 3})
	if err == nil || !strings.Contains(err.Error(), "n must be even") {
		t.Fatalf("odd = %v", err)
	}
}
