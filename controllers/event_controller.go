// file: controllers/event_controller.go
package controllers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"

	"civil-quest-admin/forms"
	"civil-quest-admin/listview"
	"civil-quest-admin/logger"
	"civil-quest-admin/models"
	"civil-quest-admin/services"
)

const eventsList = "events"

// EventController manages the events table and the event form.
type EventController struct {
	*Page
	Events   services.EventServiceInterface
	DeepLink string
	Encoder  services.QRCodeEncoder
}

// NewEventController creates an EventController. deepLink is the mobile
// app's event link used for check-in QR codes.
func NewEventController(page *Page, events services.EventServiceInterface, deepLink string) *EventController {
	return &EventController{
		Page:     page,
		Events:   events,
		DeepLink: deepLink,
		Encoder:  services.QRCodeEncoder(qrcode.Encode),
	}
}

func (ec *EventController) list(c *gin.Context) *listview.Collection[models.Event] {
	return openList(ec.Page, c, eventsList, ec.Events.List)
}

// ListEvents renders the events table from a fresh fetch.
func (ec *EventController) ListEvents(c *gin.Context) {
	items, ok := loadList(ec.Page, c, ec.list(c), "entity.event")
	if !ok {
		return
	}
	ec.render(c, http.StatusOK, "events.html", gin.H{
		"Events":     items,
		"Busy":       ec.busyRows(c, eventsList, ids(items), "approve", "reject", "end", "delete"),
		"RejectForm": forms.New(forms.RejectReason, nil),
	})
}

// ------------------ create & edit ------------------

func (ec *EventController) renderForm(c *gin.Context, status int, form *forms.Form, action string) {
	ec.render(c, status, "event_form.html", gin.H{
		"Form":       form,
		"Action":     action,
		"EventTypes": forms.EventTypes,
		"Editing":    action != "/events",
	})
}

// NewEvent renders an empty event form.
func (ec *EventController) NewEvent(c *gin.Context) {
	ec.renderForm(c, http.StatusOK, forms.New(forms.EventCreate, nil), "/events")
}

// CreateEvent validates and submits a new event, optionally with an image.
func (ec *EventController) CreateEvent(c *gin.Context) {
	ec.save(c, forms.New(forms.EventCreate, nil), "", "/events")
}

// EditEvent renders the form filled from the API's copy of the event.
func (ec *EventController) EditEvent(c *gin.Context) {
	id := c.Param("id")
	ev, err := ec.Events.Get(c.Request.Context(), token(c), id)
	if err != nil {
		if !ec.failure(c, err) {
			c.Redirect(http.StatusSeeOther, "/events")
		}
		return
	}
	ec.renderForm(c, http.StatusOK, forms.New(forms.EventEdit, eventValues(ev)), "/events/"+id)
}

// UpdateEvent validates and submits changes to an event.
func (ec *EventController) UpdateEvent(c *gin.Context) {
	id := c.Param("id")
	ec.save(c, forms.New(forms.EventEdit, nil), id, "/events/"+id)
}

// save is the shared submit path: validate locally, then one guarded call,
// then a re-fetch of the events list.
func (ec *EventController) save(c *gin.Context, form *forms.Form, id, action string) {
	if !bindForm(c, form) {
		ec.renderForm(c, http.StatusUnprocessableEntity, form, action)
		return
	}

	fields, err := eventPayload(form)
	if err != nil {
		ec.renderForm(c, http.StatusUnprocessableEntity, form, action)
		return
	}
	image, _ := form.File(c.Request, "image")

	verb, okKey := "create", "toast.created"
	call := func(ctx context.Context, tok string) error {
		_, err := ec.Events.Create(ctx, tok, fields, image)
		return err
	}
	patch := func(*models.Event) {}
	if id != "" {
		verb, okKey = "update", "toast.updated"
		call = func(ctx context.Context, tok string) error {
			_, err := ec.Events.Update(ctx, tok, id, fields, image)
			return err
		}
		patch = func(e *models.Event) { applyEventFields(e, form) }
	}

	err = mutate(ec.Page, c, ec.list(c), verb, id, patch, call)
	if err != nil {
		if ec.failure(c, err) {
			return
		}
		ec.renderForm(c, statusFor(err), form, action)
		return
	}
	ec.success(c, okKey, "entity.event")
	c.Redirect(http.StatusSeeOther, "/events")
}

// ------------------ status actions ------------------

func (ec *EventController) transition(c *gin.Context, action, okKey string, patch func(*models.Event), call func(ctx context.Context, tok, id string) error) {
	id := c.Param("id")
	coll := ec.list(c)
	err := mutate(ec.Page, c, coll, action, id, patch, func(ctx context.Context, tok string) error {
		return call(ctx, tok, id)
	})
	ec.finish(c, "/events", err, okKey, "entity.event", coll.Items())
}

func setStatus(s models.Status) func(*models.Event) {
	return func(e *models.Event) { e.Status = s }
}

// ApproveEvent moves a pending event to APPROVED.
func (ec *EventController) ApproveEvent(c *gin.Context) {
	ec.transition(c, "approve", "toast.approved", setStatus(models.StatusApproved), ec.Events.Approve)
}

// RejectEvent moves a pending event to REJECTED. The reason is validated first.
func (ec *EventController) RejectEvent(c *gin.Context) {
	form := forms.New(forms.RejectReason, nil)
	if !bindForm(c, form) {
		rejectInvalid(ec.Page, c, form, "/events")
		return
	}
	reason := form.Value("reason")
	ec.transition(c, "reject", "toast.rejected", setStatus(models.StatusRejected),
		func(ctx context.Context, tok, id string) error { return ec.Events.Reject(ctx, tok, id, reason) })
}

// EndEvent closes an approved event.
func (ec *EventController) EndEvent(c *gin.Context) {
	ec.transition(c, "end", "toast.ended", setStatus(models.StatusEnded), ec.Events.End)
}

// DeleteEvent removes an event; the row disappears before the API answers.
func (ec *EventController) DeleteEvent(c *gin.Context) {
	ec.transition(c, "delete", "toast.deleted", nil, ec.Events.Delete)
}

// QRCode serves the check-in QR code for an event as a PNG.
func (ec *EventController) QRCode(c *gin.Context) {
	link := services.CheckInLink(ec.DeepLink, c.Param("id"))
	png, err := services.GenerateQRCode(link, 300, ec.Encoder)
	if err != nil {
		logger.Error.Printf("[QRCode] Error generating QR code: %v", err)
		c.String(http.StatusInternalServerError, "QR generation failed")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", "event-"+c.Param("id")+".png"))
	c.Data(http.StatusOK, "image/png", png)
}

// ------------------ form mapping ------------------

// eventPayload converts the datetime-local inputs to RFC 3339.
func eventPayload(form *forms.Form) (map[string]any, error) {
	fields := form.Payload()
	for _, name := range []string{"startDate", "endDate"} {
		t, err := time.ParseInLocation(forms.DateTimeLayout, form.Value(name), time.Local)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		fields[name] = t.Format(time.RFC3339)
	}
	return fields, nil
}

func eventValues(ev models.Event) map[string]string {
	num := func(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
	return map[string]string{
		"eventName":        ev.EventName,
		"eventDescription": ev.EventDescription,
		"eventType":        ev.EventType,
		"address":          ev.Location.Address,
		"latitude":         num(ev.Location.Latitude),
		"longitude":        num(ev.Location.Longitude),
		"startDate":        ev.StartDate.Local().Format(forms.DateTimeLayout),
		"endDate":          ev.EndDate.Local().Format(forms.DateTimeLayout),
		"points":           num(ev.Points),
		"maxParticipants":  num(ev.MaxParticipants),
		"province":         ev.Province,
	}
}

func applyEventFields(e *models.Event, form *forms.Form) {
	e.EventName = form.Value("eventName")
	e.EventDescription = form.Value("eventDescription")
	e.EventType = form.Value("eventType")
	e.Province = form.Value("province")
	e.Location.Address = form.Value("address")
	if n, ok := form.Number("points"); ok {
		e.Points = n
	}
	if n, ok := form.Number("maxParticipants"); ok {
		e.MaxParticipants = n
	}
}
