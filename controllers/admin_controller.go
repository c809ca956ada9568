// file: controllers/admin_controller.go
package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"civil-quest-admin/forms"
	"civil-quest-admin/listview"
	"civil-quest-admin/models"
	"civil-quest-admin/services"
)

const (
	adminsList    = "admins"
	operatorsList = "operators"
)

// ---------------- provincial admins ----------------

// AdminController manages provincial admin accounts. Super admins only.
type AdminController struct {
	*Page
	Admins services.AdminServiceInterface
}

// NewAdminController creates an AdminController.
func NewAdminController(page *Page, admins services.AdminServiceInterface) *AdminController {
	return &AdminController{Page: page, Admins: admins}
}

func (ac *AdminController) list(c *gin.Context) *listview.Collection[models.ProvincialAdmin] {
	return openList(ac.Page, c, adminsList, ac.Admins.List)
}

// ListAdmins renders the admins table.
func (ac *AdminController) ListAdmins(c *gin.Context) {
	items, ok := loadList(ac.Page, c, ac.list(c), "entity.admin")
	if !ok {
		return
	}
	ac.render(c, http.StatusOK, "admins.html", gin.H{
		"Admins": items,
		"Busy":   ac.busyRows(c, adminsList, ids(items), "delete"),
	})
}

func (ac *AdminController) renderForm(c *gin.Context, status int, form *forms.Form, action string) {
	ac.render(c, status, "admin_form.html", gin.H{
		"Form":    form,
		"Action":  action,
		"Editing": action != "/admins",
	})
}

// NewAdmin renders an empty admin form.
func (ac *AdminController) NewAdmin(c *gin.Context) {
	ac.renderForm(c, http.StatusOK, forms.New(forms.AdminCreate, nil), "/admins")
}

// CreateAdmin validates and submits a new provincial admin.
func (ac *AdminController) CreateAdmin(c *gin.Context) {
	form := forms.New(forms.AdminCreate, nil)
	if !bindForm(c, form) {
		ac.renderForm(c, http.StatusUnprocessableEntity, form, "/admins")
		return
	}
	fields := form.Payload()
	err := mutate(ac.Page, c, ac.list(c), "create", "", func(*models.ProvincialAdmin) {},
		func(ctx context.Context, tok string) error {
			_, err := ac.Admins.Create(ctx, tok, fields)
			return err
		})
	ac.afterSave(c, err, form, "/admins", "toast.created")
}

// EditAdmin renders the form filled from the API's copy of the admin.
func (ac *AdminController) EditAdmin(c *gin.Context) {
	id := c.Param("id")
	admin, err := ac.Admins.Get(c.Request.Context(), token(c), id)
	if err != nil {
		if !ac.failure(c, err) {
			c.Redirect(http.StatusSeeOther, "/admins")
		}
		return
	}
	values := map[string]string{"fullName": admin.FullName, "email": admin.Email, "province": admin.Province}
	ac.renderForm(c, http.StatusOK, forms.New(forms.AdminEdit, values), "/admins/"+id)
}

// UpdateAdmin validates and submits changes to an admin.
func (ac *AdminController) UpdateAdmin(c *gin.Context) {
	id := c.Param("id")
	action := "/admins/" + id
	form := forms.New(forms.AdminEdit, nil)
	if !bindForm(c, form) {
		ac.renderForm(c, http.StatusUnprocessableEntity, form, action)
		return
	}
	fields := form.Payload()
	patch := func(a *models.ProvincialAdmin) {
		a.FullName = form.Value("fullName")
		a.Email = form.Value("email")
		a.Province = form.Value("province")
	}
	err := mutate(ac.Page, c, ac.list(c), "update", id, patch, func(ctx context.Context, tok string) error {
		_, err := ac.Admins.Update(ctx, tok, id, fields)
		return err
	})
	ac.afterSave(c, err, form, action, "toast.updated")
}

func (ac *AdminController) afterSave(c *gin.Context, err error, form *forms.Form, action, okKey string) {
	if err != nil {
		if !ac.failure(c, err) {
			ac.renderForm(c, statusFor(err), form, action)
		}
		return
	}
	ac.success(c, okKey, "entity.admin")
	c.Redirect(http.StatusSeeOther, "/admins")
}

// DeleteAdmin removes an admin account.
func (ac *AdminController) DeleteAdmin(c *gin.Context) {
	coll := ac.list(c)
	id := c.Param("id")
	err := mutate(ac.Page, c, coll, "delete", id, nil, func(ctx context.Context, tok string) error {
		return ac.Admins.Delete(ctx, tok, id)
	})
	ac.finish(c, "/admins", err, "toast.deleted", "entity.admin", coll.Items())
}

// ---------------- admin operators ----------------

// OperatorController manages admin operator accounts.
type OperatorController struct {
	*Page
	Operators services.OperatorServiceInterface
}

// NewOperatorController creates an OperatorController.
func NewOperatorController(page *Page, operators services.OperatorServiceInterface) *OperatorController {
	return &OperatorController{Page: page, Operators: operators}
}

func (oc *OperatorController) list(c *gin.Context) *listview.Collection[models.AdminOperator] {
	return openList(oc.Page, c, operatorsList, oc.Operators.List)
}

// ListOperators renders the operators table.
func (oc *OperatorController) ListOperators(c *gin.Context) {
	items, ok := loadList(oc.Page, c, oc.list(c), "entity.operator")
	if !ok {
		return
	}
	oc.render(c, http.StatusOK, "operators.html", gin.H{
		"Operators": items,
		"Busy":      oc.busyRows(c, operatorsList, ids(items), "delete"),
	})
}

// NewOperator renders an empty operator form.
func (oc *OperatorController) NewOperator(c *gin.Context) {
	oc.render(c, http.StatusOK, "operator_form.html", gin.H{"Form": forms.New(forms.OperatorCreate, nil)})
}

// CreateOperator validates and submits a new operator.
func (oc *OperatorController) CreateOperator(c *gin.Context) {
	form := forms.New(forms.OperatorCreate, nil)
	if !bindForm(c, form) {
		oc.render(c, http.StatusUnprocessableEntity, "operator_form.html", gin.H{"Form": form})
		return
	}
	fields := form.Payload()
	err := mutate(oc.Page, c, oc.list(c), "create", "", func(*models.AdminOperator) {},
		func(ctx context.Context, tok string) error {
			_, err := oc.Operators.Create(ctx, tok, fields)
			return err
		})
	if err != nil {
		if !oc.failure(c, err) {
			oc.render(c, statusFor(err), "operator_form.html", gin.H{"Form": form})
		}
		return
	}
	oc.success(c, "toast.created", "entity.operator")
	c.Redirect(http.StatusSeeOther, "/operators")
}

// DeleteOperator removes an operator account.
func (oc *OperatorController) DeleteOperator(c *gin.Context) {
	coll := oc.list(c)
	id := c.Param("id")
	err := mutate(oc.Page, c, coll, "delete", id, nil, func(ctx context.Context, tok string) error {
		return oc.Operators.Delete(ctx, tok, id)
	})
	oc.finish(c, "/operators", err, "toast.deleted", "entity.operator", coll.Items())
}
