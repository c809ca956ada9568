// file: controllers/routes.go
package controllers

import (
	"github.com/gin-gonic/gin"

	"civil-quest-admin/auth"
	"civil-quest-admin/middleware"
	"civil-quest-admin/models"
)

// Controllers bundles every screen handler the router needs.
type Controllers struct {
	Auth         *AuthController
	Dashboard    *DashboardController
	Events       *EventController
	Admins       *AdminController
	Operators    *OperatorController
	Sponsorships *SponsorshipController
	Premium      *PremiumController
	Points       *PointsController
	Users        *UserController
	Audit        *AuditController
	API          *APIController
}

// gate restricts a route group to the roles the sidebar shows path to.
func gate(path string) gin.HandlerFunc {
	return middleware.RoleRequired(auth.RolesFor(path)...)
}

// RegisterRoutes mounts the public and signed-in routes on router.
func RegisterRoutes(router *gin.Engine, cs Controllers) {
	router.GET("/health", Health)
	router.GET("/login", cs.Auth.ShowLoginPage)
	router.POST("/login", cs.Auth.PerformLogin)
	router.GET("/logout", cs.Auth.Logout)

	protected := router.Group("/", middleware.AuthRequired)
	{
		protected.GET("/", cs.Dashboard.Index)

		events := protected.Group("/events")
		events.GET("", cs.Events.ListEvents)
		events.GET("/new", cs.Events.NewEvent)
		events.POST("", cs.Events.CreateEvent)
		events.GET("/:id/edit", cs.Events.EditEvent)
		events.POST("/:id", cs.Events.UpdateEvent)
		events.POST("/:id/end", cs.Events.EndEvent)
		events.POST("/:id/delete", cs.Events.DeleteEvent)
		events.GET("/:id/qrcode", cs.Events.QRCode)
		// Operators submit events; only admins decide on them.
		review := events.Group("", middleware.RoleRequired(models.RoleSuperAdmin, models.RoleProvincialAdmin))
		review.POST("/:id/approve", cs.Events.ApproveEvent)
		review.POST("/:id/reject", cs.Events.RejectEvent)

		admins := protected.Group("/admins", gate("/admins"))
		admins.GET("", cs.Admins.ListAdmins)
		admins.GET("/new", cs.Admins.NewAdmin)
		admins.POST("", cs.Admins.CreateAdmin)
		admins.GET("/:id/edit", cs.Admins.EditAdmin)
		admins.POST("/:id", cs.Admins.UpdateAdmin)
		admins.POST("/:id/delete", cs.Admins.DeleteAdmin)

		operators := protected.Group("/operators", gate("/operators"))
		operators.GET("", cs.Operators.ListOperators)
		operators.GET("/new", cs.Operators.NewOperator)
		operators.POST("", cs.Operators.CreateOperator)
		operators.POST("/:id/delete", cs.Operators.DeleteOperator)

		sponsorships := protected.Group("/sponsorships", gate("/sponsorships"))
		sponsorships.GET("", cs.Sponsorships.ListSponsorships)
		sponsorships.GET("/new", cs.Sponsorships.NewSponsorship)
		sponsorships.POST("", cs.Sponsorships.CreateSponsorship)
		sponsorships.POST("/:id/approve", cs.Sponsorships.ApproveSponsorship)
		sponsorships.POST("/:id/reject", cs.Sponsorships.RejectSponsorship)

		premium := protected.Group("/premium-requests", gate("/premium-requests"))
		premium.GET("", cs.Premium.ListRequests)
		premium.POST("/:id/approve", cs.Premium.ApproveRequest)
		premium.POST("/:id/reject", cs.Premium.RejectRequest)

		points := protected.Group("/points", gate("/points"))
		points.GET("", cs.Points.ListPoints)
		points.POST("/:id", cs.Points.UpdatePoints)

		protected.GET("/users", gate("/users"), cs.Users.SearchUsers)
		protected.GET("/audit-logs", gate("/audit-logs"), cs.Audit.ListLogs)

		api := protected.Group("/api")
		api.GET("/collections/:name", cs.API.Collection)
		api.GET("/geocode", cs.API.Geocode)
		protected.GET("/ws", cs.API.Ws)
	}
}
