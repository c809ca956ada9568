// file: controllers/review_controller.go
package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"civil-quest-admin/forms"
	"civil-quest-admin/listview"
	"civil-quest-admin/logger"
	"civil-quest-admin/models"
	"civil-quest-admin/services"
)

const (
	sponsorshipsList = "sponsorships"
	premiumList      = "premium"
)

// reviewCall is an approve or reject request with the reason already bound.
type reviewCall func(ctx context.Context, tok, id string) error

// review applies a status decision to one row of coll. A reject validates the
// reason before anything is sent.
func review[T listview.Keyed](p *Page, c *gin.Context, coll *listview.Collection[T], listPath, entityKey string, reject bool, patch func(*T), approve func(ctx context.Context, tok, id string) error, rejectFn func(ctx context.Context, tok, id, reason string) error) {
	id := c.Param("id")
	action, okKey, call := "approve", "toast.approved", reviewCall(approve)
	if reject {
		form := forms.New(forms.RejectReason, nil)
		if !bindForm(c, form) {
			rejectInvalid(p, c, form, listPath)
			return
		}
		reason := form.Value("reason")
		action, okKey = "reject", "toast.rejected"
		call = func(ctx context.Context, tok, id string) error { return rejectFn(ctx, tok, id, reason) }
	}
	err := mutate(p, c, coll, action, id, patch, func(ctx context.Context, tok string) error {
		return call(ctx, tok, id)
	})
	p.finish(c, listPath, err, okKey, entityKey, coll.Items())
}

// ---------------- sponsorships ----------------

// SponsorshipController lists, records and reviews sponsorship pledges.
type SponsorshipController struct {
	*Page
	Sponsorships services.SponsorshipServiceInterface
	Events       services.EventServiceInterface
}

// NewSponsorshipController creates a SponsorshipController. events feeds the
// event picker of the pledge form.
func NewSponsorshipController(page *Page, sponsorships services.SponsorshipServiceInterface, events services.EventServiceInterface) *SponsorshipController {
	return &SponsorshipController{Page: page, Sponsorships: sponsorships, Events: events}
}

func (sc *SponsorshipController) list(c *gin.Context) *listview.Collection[models.Sponsor] {
	return openList(sc.Page, c, sponsorshipsList, sc.Sponsorships.List)
}

// ListSponsorships renders the pledges table.
func (sc *SponsorshipController) ListSponsorships(c *gin.Context) {
	items, ok := loadList(sc.Page, c, sc.list(c), "entity.sponsorship")
	if !ok {
		return
	}
	sc.render(c, http.StatusOK, "sponsorships.html", gin.H{
		"Sponsorships": items,
		"Busy":         sc.busyRows(c, sponsorshipsList, ids(items), "approve", "reject"),
		"RejectForm":   forms.New(forms.RejectReason, nil),
	})
}

func (sc *SponsorshipController) renderForm(c *gin.Context, status int, form *forms.Form) {
	events := openList(sc.Page, c, eventsList, sc.Events.List)
	if err := events.EnsureLoaded(c.Request.Context()); err != nil {
		logger.Warn.Printf("[SponsorshipController] event picker unavailable: %v", err)
	}
	sc.render(c, status, "sponsorship_form.html", gin.H{"Form": form, "Events": events.Items()})
}

// NewSponsorship renders an empty pledge form, optionally preselecting ?event=.
func (sc *SponsorshipController) NewSponsorship(c *gin.Context) {
	sc.renderForm(c, http.StatusOK, forms.New(forms.Sponsorship, map[string]string{"eventId": c.Query("event")}))
}

// CreateSponsorship validates and records a pledge.
func (sc *SponsorshipController) CreateSponsorship(c *gin.Context) {
	form := forms.New(forms.Sponsorship, nil)
	if !bindForm(c, form) {
		sc.renderForm(c, http.StatusUnprocessableEntity, form)
		return
	}
	fields := form.Payload()
	err := mutate(sc.Page, c, sc.list(c), "create", "", func(*models.Sponsor) {},
		func(ctx context.Context, tok string) error {
			_, err := sc.Sponsorships.Create(ctx, tok, fields)
			return err
		})
	if err != nil {
		if !sc.failure(c, err) {
			sc.renderForm(c, statusFor(err), form)
		}
		return
	}
	sc.success(c, "toast.created", "entity.sponsorship")
	c.Redirect(http.StatusSeeOther, "/sponsorships")
}

// ApproveSponsorship accepts a pending pledge.
func (sc *SponsorshipController) ApproveSponsorship(c *gin.Context) {
	review(sc.Page, c, sc.list(c), "/sponsorships", "entity.sponsorship", false,
		func(s *models.Sponsor) { s.Status = models.StatusApproved },
		sc.Sponsorships.Approve, sc.Sponsorships.Reject)
}

// RejectSponsorship declines a pending pledge with a reason.
func (sc *SponsorshipController) RejectSponsorship(c *gin.Context) {
	review(sc.Page, c, sc.list(c), "/sponsorships", "entity.sponsorship", true,
		func(s *models.Sponsor) { s.Status = models.StatusRejected },
		sc.Sponsorships.Approve, sc.Sponsorships.Reject)
}

// ---------------- premium requests ----------------

// PremiumController reviews premium upgrade requests.
type PremiumController struct {
	*Page
	Premium services.PremiumServiceInterface
}

// NewPremiumController creates a PremiumController.
func NewPremiumController(page *Page, premium services.PremiumServiceInterface) *PremiumController {
	return &PremiumController{Page: page, Premium: premium}
}

func (pc *PremiumController) list(c *gin.Context) *listview.Collection[models.PremiumUserRequest] {
	return openList(pc.Page, c, premiumList, pc.Premium.List)
}

// ListRequests renders the premium requests table.
func (pc *PremiumController) ListRequests(c *gin.Context) {
	items, ok := loadList(pc.Page, c, pc.list(c), "entity.premium")
	if !ok {
		return
	}
	pc.render(c, http.StatusOK, "premium.html", gin.H{
		"Requests":   items,
		"Busy":       pc.busyRows(c, premiumList, ids(items), "approve", "reject"),
		"RejectForm": forms.New(forms.RejectReason, nil),
	})
}

// ApproveRequest upgrades the requesting user.
func (pc *PremiumController) ApproveRequest(c *gin.Context) {
	review(pc.Page, c, pc.list(c), "/premium-requests", "entity.premium", false,
		func(r *models.PremiumUserRequest) { r.Status = models.StatusApproved },
		pc.Premium.Approve, pc.Premium.Reject)
}

// RejectRequest declines the request with a reason.
func (pc *PremiumController) RejectRequest(c *gin.Context) {
	review(pc.Page, c, pc.list(c), "/premium-requests", "entity.premium", true,
		func(r *models.PremiumUserRequest) { r.Status = models.StatusRejected },
		pc.Premium.Approve, pc.Premium.Reject)
}
