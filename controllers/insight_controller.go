// file: controllers/insight_controller.go
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
	pointsList = "points"
	auditList  = "audit"
)

// ---------------- points ----------------

// PointsController edits the points awarded per activity.
type PointsController struct {
	*Page
	Points services.PointsServiceInterface
}

// NewPointsController creates a PointsController.
func NewPointsController(page *Page, points services.PointsServiceInterface) *PointsController {
	return &PointsController{Page: page, Points: points}
}

func (pc *PointsController) list(c *gin.Context) *listview.Collection[models.PointsConfig] {
	return openList(pc.Page, c, pointsList, pc.Points.List)
}

// ListPoints renders one inline editor per activity.
func (pc *PointsController) ListPoints(c *gin.Context) {
	items, ok := loadList(pc.Page, c, pc.list(c), "entity.points")
	if !ok {
		return
	}
	pc.render(c, http.StatusOK, "points.html", gin.H{
		"Configs": items,
		"Busy":    pc.busyRows(c, pointsList, ids(items), "update"),
	})
}

// UpdatePoints changes one activity's points. The new value shows right away
// and the list is re-fetched after the API answers.
func (pc *PointsController) UpdatePoints(c *gin.Context) {
	form := forms.New(forms.PointsConfig, nil)
	if !bindForm(c, form) {
		rejectInvalidField(pc.Page, c, form, "points", "/points")
		return
	}
	id := c.Param("id")
	points, _ := form.Number("points")
	coll := pc.list(c)
	err := mutate(pc.Page, c, coll, "update", id,
		func(p *models.PointsConfig) { p.Points = points },
		func(ctx context.Context, tok string) error { return pc.Points.Update(ctx, tok, id, points) })
	pc.finish(c, "/points", err, "toast.updated", "entity.points", coll.Items())
}

// ---------------- users ----------------

// UserController searches mobile-app users.
type UserController struct {
	*Page
	Users services.UserServiceInterface
}

// NewUserController creates a UserController.
func NewUserController(page *Page, users services.UserServiceInterface) *UserController {
	return &UserController{Page: page, Users: users}
}

// SearchUsers renders the search box and, for a valid ?q=, the matches.
func (uc *UserController) SearchUsers(c *gin.Context) {
	form := forms.New(forms.UserSearch, nil)
	data := gin.H{"Form": form}
	q := c.Query("q")
	if q == "" {
		uc.render(c, http.StatusOK, "users.html", data)
		return
	}

	form.Set("q", q)
	if !form.Validate() {
		uc.render(c, http.StatusUnprocessableEntity, "users.html", data)
		return
	}
	users, err := uc.Users.Search(c.Request.Context(), token(c), form.Value("q"))
	if err != nil && uc.failure(c, err) {
		return
	}
	data["Users"] = users
	data["Searched"] = err == nil
	uc.render(c, http.StatusOK, "users.html", data)
}

// ---------------- audit ----------------

// AuditController shows recorded admin actions.
type AuditController struct {
	*Page
	Audit services.AuditServiceInterface
}

// NewAuditController creates an AuditController.
func NewAuditController(page *Page, audit services.AuditServiceInterface) *AuditController {
	return &AuditController{Page: page, Audit: audit}
}

// ListLogs renders the audit trail, newest first as the API returns it.
func (ac *AuditController) ListLogs(c *gin.Context) {
	items, ok := loadList(ac.Page, c, openList(ac.Page, c, auditList, ac.Audit.List), "entity.audit")
	if !ok {
		return
	}
	ac.render(c, http.StatusOK, "audit.html", gin.H{"Logs": items})
}
