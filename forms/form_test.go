// file: forms/form_test.go
package forms

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEventValues() map[string]string {
	return map[string]string{
		"eventName":        "Coastal cleanup",
		"eventDescription": "Bring gloves, sacks and a water bottle.",
		"eventType":        "CLEANUP",
		"address":          "Baywalk, Cebu City",
		"latitude":         "10.3157",
		"longitude":        "123.8854",
		"startDate":        "2026-03-01T08:00",
		"endDate":          "2026-03-01T12:00",
		"points":           "50",
		"maxParticipants":  "100",
		"province":         "Cebu",
	}
}

func TestValidate_ValidEvent(t *testing.T) {
	f := New(EventCreate, validEventValues())

	assert.True(t, f.Validate())
	assert.Empty(t, f.Errors())
}

func TestValidate_ShortDescription(t *testing.T) {
	values := validEventValues()
	values["eventDescription"] = "short"
	f := New(EventCreate, values)

	assert.False(t, f.Validate())
	assert.Equal(t, "Event description is required 20 characters minimum", f.Error("eventDescription"))
	assert.Len(t, f.Errors(), 1)
}

func TestValidate_EveryRequiredFieldReportsWhenEmpty(t *testing.T) {
	for _, field := range EventCreate.Fields() {
		t.Run(field.Name, func(t *testing.T) {
			values := validEventValues()
			values[field.Name] = ""
			f := New(EventCreate, values)

			assert.False(t, f.Validate())
			assert.NotEmpty(t, f.Error(field.Name))
			// first failing rule wins, and every event field starts with required
			assert.Equal(t, field.Rules[0].Message, f.Error(field.Name))
		})
	}
}

func TestValidate_NumericAmounts(t *testing.T) {
	cases := map[string]string{
		"non-numeric": "abc",
		"zero":        "0",
		"negative":    "-5",
		"mixed":       "12abc",
		"inf":         "inf",
		"infinity":    "Infinity",
		"plus inf":    "+Inf",
		"overflow":    "1e400",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			f := New(Sponsorship, map[string]string{
				"sponsorName": "Acme",
				"email":       "acme@example.com",
				"amount":      input,
				"eventId":     "evt-1",
			})

			assert.False(t, f.Validate())
			assert.Equal(t, "Amount must be a positive number", f.Error("amount"))
		})
	}
}

func TestValidate_BlankNumberIsNoValue(t *testing.T) {
	f := New(PointsConfig, map[string]string{"points": "   "})

	assert.False(t, f.Validate())
	assert.Equal(t, "Points are required", f.Error("points"))

	_, ok := f.Number("points")
	assert.False(t, ok)
	assert.Nil(t, f.Payload()["points"])
}

func TestValidate_ZeroIsPresentForRequired(t *testing.T) {
	f := New(PointsConfig, map[string]string{"points": "0"})

	assert.False(t, f.Validate())
	assert.Equal(t, "Points must be a positive number", f.Error("points"), "0 passes required and fails positive")
}

func TestSet_ClearsOnlyThatFieldsError(t *testing.T) {
	f := New(Login, map[string]string{})
	require.False(t, f.Validate())
	require.NotEmpty(t, f.Error("email"))
	require.NotEmpty(t, f.Error("password"))

	f.Set("email", "not-an-email")

	assert.Empty(t, f.Error("email"), "change clears the error without re-validating")
	assert.NotEmpty(t, f.Error("password"))
	assert.True(t, f.Dirty())
	assert.True(t, f.Touched("email"))
	assert.False(t, f.Touched("password"))

	assert.False(t, f.Validate())
	assert.Equal(t, "Enter a valid email address", f.Error("email"))
}

func TestTouch_MarksVisitedWithoutChanging(t *testing.T) {
	f := New(Login, map[string]string{"email": "admin@civilquest.ph"})

	f.Touch("email")

	assert.True(t, f.Touched("email"))
	assert.False(t, f.Touched("password"))
	assert.False(t, f.Dirty(), "a visit is not a change")
	assert.Equal(t, "admin@civilquest.ph", f.Value("email"))
}

func TestHasErrors(t *testing.T) {
	f := New(Login, map[string]string{})
	assert.False(t, f.HasErrors(), "nothing is shown before validation")

	require.False(t, f.Validate())
	assert.True(t, f.HasErrors())

	f.Set("email", "admin@civilquest.ph")
	f.Set("password", "correct horse")
	assert.False(t, f.HasErrors(), "editing clears each shown error")
}

func TestValidateField_OnBlur(t *testing.T) {
	f := New(Login, map[string]string{"email": "x"})

	assert.False(t, f.ValidateField("email"))
	assert.Equal(t, "Enter a valid email address", f.Error("email"))
	assert.Empty(t, f.Error("password"), "other fields are left alone")

	f.Set("email", "admin@civilquest.ph")
	assert.True(t, f.ValidateField("email"))
	assert.True(t, f.ValidateField("unknown"))
}

func TestNotBlank(t *testing.T) {
	values := validEventValues()
	values["eventName"] = "      "
	f := New(EventCreate, values)

	assert.False(t, f.Validate())
	assert.Equal(t, "Event name is required", f.Error("eventName"))
}

func TestPayload_CoercesNumbersAndDropsExtras(t *testing.T) {
	values := validEventValues()
	values["csrf"] = "ignored"
	f := New(EventCreate, values)

	payload := f.Payload()
	assert.Equal(t, 50.0, payload["points"])
	assert.Equal(t, 10.3157, payload["latitude"])
	assert.Equal(t, "Coastal cleanup", payload["eventName"])
	assert.NotContains(t, payload, "csrf")
}

func TestBind_ReadsPostedSchemaFields(t *testing.T) {
	form := url.Values{}
	form.Set("email", "admin@civilquest.ph")
	form.Set("password", "secret")
	form.Set("extra", "nope")
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	f := New(Login, nil)
	require.NoError(t, f.Bind(req))

	assert.Equal(t, "admin@civilquest.ph", f.Value("email"))
	assert.Equal(t, "secret", f.Value("password"))
	assert.Empty(t, f.Value("extra"))
	assert.True(t, f.Validate())
}

func TestNewSchema_PanicsOnDuplicate(t *testing.T) {
	assert.Panics(t, func() {
		NewSchema("dup", Text("a", "A"), Text("a", "A"))
	})
}

func TestRule_DefaultMessage(t *testing.T) {
	s := NewSchema("t", Text("code", "Code", Tag("len=3", "")))
	f := New(s, map[string]string{"code": "ab"})

	assert.False(t, f.Validate())
	assert.Equal(t, "Code is invalid (len=3)", f.Error("code"))
}

func TestField_InputType(t *testing.T) {
	types := map[string]string{}
	for _, f := range AdminCreate.Fields() {
		types[f.Name] = f.InputType()
	}
	for _, f := range EventCreate.Fields() {
		types[f.Name] = f.InputType()
	}
	assert.Equal(t, "email", types["email"])
	assert.Equal(t, "password", types["password"])
	assert.Equal(t, "text", types["fullName"])
	assert.Equal(t, "number", types["points"])
	assert.Equal(t, "datetime-local", types["startDate"])
}
