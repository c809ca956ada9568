// Package models defines the records the dashboard mirrors from the Civil Quest API.
// File: models/models.go
package models

import "time"

// ----------------------- shared wrappers -----------------------

// Ref is the nested id wrapper the API uses for relations.
type Ref struct {
	ID string `json:"id"`
}

// Location is where an event takes place.
type Location struct {
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Status is the lifecycle value the UI branches on.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
	StatusEnded    Status = "ENDED"
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

// ----------------------- event -----------------------

// Event is a community event submitted by an admin or operator.
type Event struct {
	ID               string    `json:"id"`
	EventName        string    `json:"eventName"`
	EventDescription string    `json:"eventDescription"`
	EventType        string    `json:"eventType"`
	Location         Location  `json:"location"`
	StartDate        time.Time `json:"startDate"`
	EndDate          time.Time `json:"endDate"`
	Points           float64   `json:"points"`
	MaxParticipants  float64   `json:"maxParticipants"`
	Image            string    `json:"image,omitempty"`
	Province         string    `json:"province"`
	Status           Status    `json:"status"`
	CreatedBy        Ref       `json:"createdBy"`
}

// Key returns the identifier list views match on.
func (e Event) Key() string { return e.ID }

// CanApprove reports whether the approve button applies.
func (e Event) CanApprove() bool { return e.Status == StatusPending }

// CanReject reports whether the reject button applies.
func (e Event) CanReject() bool { return e.Status == StatusPending }

// CanEnd reports whether the event can be ended early.
func (e Event) CanEnd() bool { return e.Status == StatusApproved }

// ----------------------- admins -----------------------

// ProvincialAdmin manages events for one province.
type ProvincialAdmin struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Province string `json:"province"`
	Status   Status `json:"status"`
}

func (a ProvincialAdmin) Key() string { return a.ID }

// AdminOperator assists a provincial admin.
type AdminOperator struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Province string `json:"province"`
	Role     Role   `json:"role"`
}

func (o AdminOperator) Key() string { return o.ID }

// ----------------------- sponsorships -----------------------

// Sponsor is a sponsorship pledge attached to an event.
type Sponsor struct {
	ID          string  `json:"id"`
	SponsorName string  `json:"sponsorName"`
	Email       string  `json:"email"`
	Amount      float64 `json:"amount"`
	EventID     string  `json:"eventId"`
	Message     string  `json:"message,omitempty"`
	Status      Status  `json:"status"`
}

func (s Sponsor) Key() string { return s.ID }

// CanApprove reports whether the pledge still awaits a decision.
func (s Sponsor) CanApprove() bool { return s.Status == StatusPending }

// CanReject reports whether the pledge still awaits a decision.
func (s Sponsor) CanReject() bool { return s.Status == StatusPending }

// ----------------------- users -----------------------

// UserRef is the user wrapper embedded in premium requests.
type UserRef struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// PremiumUserRequest is a user's request to be upgraded to premium.
type PremiumUserRequest struct {
	ID          string    `json:"id"`
	User        UserRef   `json:"user"`
	Reason      string    `json:"reason"`
	Status      Status    `json:"status"`
	RequestedAt time.Time `json:"requestedAt"`
}

func (p PremiumUserRequest) Key() string { return p.ID }

// CanApprove reports whether the request still awaits a decision.
func (p PremiumUserRequest) CanApprove() bool { return p.Status == StatusPending }

// CanReject reports whether the request still awaits a decision.
func (p PremiumUserRequest) CanReject() bool { return p.Status == StatusPending }

// User is a mobile-app participant.
type User struct {
	ID       string  `json:"id"`
	FullName string  `json:"fullName"`
	Email    string  `json:"email"`
	Province string  `json:"province"`
	Points   float64 `json:"points"`
	Premium  bool    `json:"premium"`
	Role     string  `json:"role"`
}

func (u User) Key() string { return u.ID }

// ----------------------- points & audit -----------------------

// PointsConfig is the number of points awarded for one activity.
type PointsConfig struct {
	ID       string  `json:"id"`
	Activity string  `json:"activity"`
	Points   float64 `json:"points"`
}

func (p PointsConfig) Key() string { return p.ID }

// AuditLog is one recorded admin action.
type AuditLog struct {
	ID        string    `json:"id"`
	Actor     string    `json:"actor"`
	Action    string    `json:"action"`
	Entity    string    `json:"entity"`
	EntityID  string    `json:"entityId"`
	Details   string    `json:"details,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (a AuditLog) Key() string { return a.ID }

// Analytics is the dashboard summary.
type Analytics struct {
	TotalEvents        int            `json:"totalEvents"`
	TotalUsers         int            `json:"totalUsers"`
	TotalSponsorships  int            `json:"totalSponsorships"`
	TotalPointsAwarded float64        `json:"totalPointsAwarded"`
	PremiumUsers       int            `json:"premiumUsers"`
	EventsByStatus     map[Status]int `json:"eventsByStatus"`
}
