// file: controllers/api_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"civil-quest-admin/auth"
	"civil-quest-admin/logger"
	"civil-quest-admin/services"
	"civil-quest-admin/websocket"
)

// collectionPaths maps list names to the screen that owns them, for role checks.
var collectionPaths = map[string]string{
	eventsList:       "/events",
	adminsList:       "/admins",
	operatorsList:    "/operators",
	sponsorshipsList: "/sponsorships",
	pointsList:       "/points",
	premiumList:      "/premium-requests",
	auditList:        "/audit-logs",
}

// APIController serves the JSON and websocket endpoints the page scripts use.
type APIController struct {
	*Page
	Geocoder services.GeocoderInterface
	Hub      *websocket.Hub
}

// NewAPIController creates an APIController.
func NewAPIController(page *Page, geocoder services.GeocoderInterface, hub *websocket.Hub) *APIController {
	return &APIController{Page: page, Geocoder: geocoder, Hub: hub}
}

// Collection returns the session's current snapshot of one list.
func (ac *APIController) Collection(c *gin.Context) {
	name := c.Param("name")
	path, ok := collectionPaths[name]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown collection"})
		return
	}
	claims, _ := auth.FromContext(c)
	if !(auth.MenuItem{Roles: auth.RolesFor(path)}).Allows(claims.Role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	items, ok := ac.Lists.Snapshot(owner(c), name)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "collection not loaded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"collection": name, "items": items})
}

// Geocode looks up addresses for the event form's map picker.
func (ac *APIController) Geocode(c *gin.Context) {
	places, err := ac.Geocoder.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		logger.Warn.Printf("[Geocode] lookup %q failed: %v", c.Query("q"), err)
		c.JSON(http.StatusBadGateway, gin.H{"error": services.Message(err)})
		return
	}
	if places == nil {
		places = []services.Place{}
	}
	c.JSON(http.StatusOK, gin.H{"places": places})
}

// Ws upgrades to a websocket that streams the session's list changes.
func (ac *APIController) Ws(c *gin.Context) {
	ac.Hub.ServeWs(c.Writer, c.Request, owner(c))
}
