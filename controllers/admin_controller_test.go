// file: controllers/admin_controller_test.go
package controllers

import (
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"civil-quest-admin/models"
	"civil-quest-admin/services"
)

func TestAdmins_SuperAdminOnly(t *testing.T) {
	a := newTestApp(t)
	cookie := a.signIn(t, models.RoleProvincialAdmin)

	w := a.request(http.MethodGet, "/admins", nil, cookie, false)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	a.admins.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestListAdmins(t *testing.T) {
	a := newTestApp(t)
	cookie := a.signIn(t, models.RoleSuperAdmin)
	a.admins.On("List", mock.Anything, mock.Anything).
		Return([]models.ProvincialAdmin{{ID: "a1", FullName: "Jose Rizal", Province: "Laguna"}}, nil)

	w := a.request(http.MethodGet, "/admins", nil, cookie, false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "a1=Jose Rizal")
}

func TestCreateAdmin_Validation(t *testing.T) {
	a := newTestApp(t)
	cookie := a.signIn(t, models.RoleSuperAdmin)

	form := url.Values{"fullName": {"Jo"}, "email": {"jo@"}, "province": {"Laguna"}, "password": {"short"}}
	w := a.request(http.MethodPost, "/admins", form, cookie, false)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "<invalid> ")
	assert.Contains(t, body, "fullName: Full name must be at least 3 characters;")
	assert.Contains(t, body, "email: Enter a valid email address;")
	assert.Contains(t, body, "password: Password must be at least 8 characters;")
	a.admins.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateAdmin_APIErrorKeepsForm(t *testing.T) {
	a := newTestApp(t)
	cookie := a.signIn(t, models.RoleSuperAdmin)
	a.admins.On("Create", mock.Anything, mock.Anything, mock.Anything).
		Return(models.ProvincialAdmin{}, &services.APIError{Status: http.StatusConflict, Message: "Email already registered"})
	a.admins.On("List", mock.Anything, mock.Anything).Return([]models.ProvincialAdmin{}, nil)

	form := url.Values{"fullName": {"Jose Rizal"}, "email": {"jose@civilquest.ph"}, "province": {"Laguna"}, "password": {"long-enough"}}
	w := a.request(http.MethodPost, "/admins", form, cookie, false)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "admin form /admins Jose Rizal")
	assert.Contains(t, w.Body.String(), "[error] Email already registered;")
}

func TestUpdateAdmin(t *testing.T) {
	a := newTestApp(t)
	cookie := a.signIn(t, models.RoleSuperAdmin)
	a.admins.On("Update", mock.Anything, mock.Anything, "a1", mock.Anything).
		Return(models.ProvincialAdmin{ID: "a1"}, nil)
	a.admins.On("List", mock.Anything, mock.Anything).
		Return([]models.ProvincialAdmin{{ID: "a1", FullName: "Jose P. Rizal"}}, nil)

	form := url.Values{"fullName": {"Jose P. Rizal"}, "email": {"jose@civilquest.ph"}, "province": {"Laguna"}}
	w := a.request(http.MethodPost, "/admins/a1", form, cookie, false)

	require.Equal(t, http.StatusSeeOther, w.Code)
	w = a.follow(w, cookie, "/admins")
	assert.Contains(t, w.Body.String(), "[success] Provincial admin updated;")
	a.admins.AssertExpectations(t)
}

func TestUpdateAdmin_RefreshFailureStillClosesForm(t *testing.T) {
	a := newTestApp(t)
	cookie := a.signIn(t, models.RoleSuperAdmin)
	a.admins.On("Update", mock.Anything, mock.Anything, "a1", mock.Anything).
		Return(models.ProvincialAdmin{ID: "a1"}, nil).Once()
	a.admins.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("upstream hiccup"))

	form := url.Values{"fullName": {"Jose P. Rizal"}, "email": {"jose@civilquest.ph"}, "province": {"Laguna"}}
	w := a.request(http.MethodPost, "/admins/a1", form, cookie, false)

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admins", w.Header().Get("Location"))
	w = a.follow(w, cookie, "/admins")
	assert.Contains(t, w.Body.String(), "[success] Provincial admin updated;")
	assert.Contains(t, w.Body.String(), "[info] Saved, but the list could not be refreshed.")
	a.admins.AssertNumberOfCalls(t, "Update", 1)
}

func TestEditAdmin_FillsForm(t *testing.T) {
	a := newTestApp(t)
	cookie := a.signIn(t, models.RoleSuperAdmin)
	a.admins.On("Get", mock.Anything, mock.Anything, "a1").
		Return(models.ProvincialAdmin{ID: "a1", FullName: "Jose Rizal", Email: "jose@civilquest.ph"}, nil)

	w := a.request(http.MethodGet, "/admins/a1/edit", nil, cookie, false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin form /admins/a1 Jose Rizal")
}

func TestDeleteAdmin_FailedDeleteComesBack(t *testing.T) {
	a := newTestApp(t)
	cookie := a.signIn(t, models.RoleSuperAdmin)
	admin := models.ProvincialAdmin{ID: "a1", FullName: "Jose Rizal"}
	a.admins.On("List", mock.Anything, mock.Anything).Return([]models.ProvincialAdmin{admin}, nil)
	a.admins.On("Delete", mock.Anything, mock.Anything, "a1").
		Return(&services.APIError{Status: http.StatusBadRequest, Message: "Admin still owns events"})

	w := a.request(http.MethodPost, "/admins/a1/delete", nil, cookie, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"a1"`)
	assert.Contains(t, w.Body.String(), "Admin still owns events")
}

func TestOperators_ProvincialAdminManages(t *testing.T) {
	a := newTestApp(t)
	cookie := a.signIn(t, models.RoleProvincialAdmin)
	a.operators.On("List", mock.Anything, mock.Anything).Return([]models.AdminOperator{{ID: "o1"}}, nil)
	a.operators.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(models.AdminOperator{ID: "o2"}, nil)
	a.operators.On("Delete", mock.Anything, mock.Anything, "o1").Return(nil)

	w := a.request(http.MethodGet, "/operators", nil, cookie, false)
	assert.Contains(t, w.Body.String(), "operators o1")

	form := url.Values{"fullName": {"Andres B."}, "email": {"andres@civilquest.ph"}, "province": {"Cebu"}, "password": {"long-enough"}}
	w = a.request(http.MethodPost, "/operators", form, cookie, false)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/operators", w.Header().Get("Location"))

	w = a.request(http.MethodPost, "/operators/o1/delete", nil, cookie, true)
	assert.Equal(t, http.StatusOK, w.Code)
	a.operators.AssertExpectations(t)
}

func TestOperators_HiddenFromOperators(t *testing.T) {
	a := newTestApp(t)
	cookie := a.signIn(t, models.RoleAdminOperator)
	w := a.request(http.MethodGet, "/operators", nil, cookie, true)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
