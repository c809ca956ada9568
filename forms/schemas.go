// file: forms/schemas.go
package forms

// DateTimeLayout is the layout of datetime-local inputs.
const DateTimeLayout = "2006-01-02T15:04"

// EventTypes are the categories the API accepts.
var EventTypes = []string{"CLEANUP", "TREE_PLANTING", "FEEDING", "BLOOD_DRIVE", "SEMINAR", "OTHER"}

// ----------------------- events -----------------------

var eventFields = []Field{
	Text("eventName", "Event name",
		Required("Event name is required"),
		NotBlank("Event name is required"),
		MinLen(5, "Event name must be at least 5 characters")),
	Text("eventDescription", "Event description",
		Required("Event description is required 20 characters minimum"),
		MinLen(20, "Event description is required 20 characters minimum")),
	Text("eventType", "Event type",
		Required("Event type is required"),
		OneOf("Choose a valid event type", EventTypes...)),
	Text("address", "Address",
		Required("Location is required")),
	Num("latitude", "Latitude",
		Required("Pick the location on the map"),
		Tag("latitude", "Latitude is out of range")),
	Num("longitude", "Longitude",
		Required("Pick the location on the map"),
		Tag("longitude", "Longitude is out of range")),
	Text("startDate", "Start date",
		Required("Start date is required"),
		DateTime(DateTimeLayout, "Start date is not a valid date")),
	Text("endDate", "End date",
		Required("End date is required"),
		DateTime(DateTimeLayout, "End date is not a valid date")),
	Num("points", "Points",
		Required("Points are required"),
		Positive("Points must be a positive number")),
	Num("maxParticipants", "Max participants",
		Required("Max participants is required"),
		Positive("Max participants must be a positive number")),
	Text("province", "Province",
		Required("Province is required")),
}

// EventCreate validates the new-event form.
var EventCreate = NewSchema("event-create", eventFields...)

// EventEdit validates the edit-event form. It shares the create rules.
var EventEdit = NewSchema("event-edit", eventFields...)

// ----------------------- admins & operators -----------------------

func personFields() []Field {
	return []Field{
		Text("fullName", "Full name",
			Required("Full name is required"),
			MinLen(3, "Full name must be at least 3 characters")),
		Text("email", "Email",
			Required("Email is required"),
			Email("Enter a valid email address")),
		Text("province", "Province",
			Required("Province is required")),
	}
}

var passwordField = Text("password", "Password",
	Required("Password is required"),
	MinLen(8, "Password must be at least 8 characters"))

// AdminCreate validates the new provincial admin form.
var AdminCreate = NewSchema("admin-create", append(personFields(), passwordField)...)

// AdminEdit validates the provincial admin edit form. Passwords are not edited here.
var AdminEdit = NewSchema("admin-edit", personFields()...)

// OperatorCreate validates the new admin operator form.
var OperatorCreate = NewSchema("operator-create", append(personFields(), passwordField)...)

// ----------------------- sponsorships, points, users -----------------------

// Sponsorship validates a sponsorship pledge entered on behalf of a sponsor.
var Sponsorship = NewSchema("sponsorship",
	Text("sponsorName", "Sponsor name",
		Required("Sponsor name is required")),
	Text("email", "Email",
		Required("Email is required"),
		Email("Enter a valid email address")),
	Num("amount", "Amount",
		Required("Amount is required"),
		Positive("Amount must be a positive number")),
	Text("eventId", "Event",
		Required("Choose the sponsored event")),
)

// PointsConfig validates the points-per-activity editor.
var PointsConfig = NewSchema("points-config",
	Num("points", "Points",
		Required("Points are required"),
		Positive("Points must be a positive number")),
)

// RejectReason validates the reason entered in reject dialogs.
var RejectReason = NewSchema("reject-reason",
	Text("reason", "Reason",
		Required("A reason is required"),
		MinLen(5, "Reason must be at least 5 characters")),
)

// UserSearch validates the user search box.
var UserSearch = NewSchema("user-search",
	Text("q", "Search",
		Required("Enter a name or email"),
		MinLen(2, "Enter at least 2 characters")),
)

// Login validates the sign-in form.
var Login = NewSchema("login",
	Text("email", "Email",
		Required("Email is required"),
		Email("Enter a valid email address")),
	Text("password", "Password",
		Required("Password is required")),
)
