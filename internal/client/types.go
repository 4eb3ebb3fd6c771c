package client

// User is a dashboard account as returned by the users endpoints.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Company   string `json:"company,omitempty"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	Avatar    string `json:"avatar,omitempty"`
	Country   string `json:"country,omitempty"`
	State     string `json:"state,omitempty"`
	City      string `json:"city,omitempty"`
	Address   string `json:"address,omitempty"`
	ZipCode   string `json:"zipCode,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// UpdateUserOpts holds the editable user fields. Empty fields are omitted.
type UpdateUserOpts struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
	Role    string `json:"role,omitempty"`
	Address string `json:"address,omitempty"`
	Status  string `json:"status,omitempty"`
}

// Vendor is a supplier organisation.
type Vendor struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	Status        string `json:"status"`
	Category      string `json:"category"`
	Description   string `json:"description,omitempty"`
	Website       string `json:"website,omitempty"`
	ContactPerson string `json:"contactPerson"`
	TaxID         string `json:"taxId,omitempty"`
	CreatedAt     string `json:"createdAt,omitempty"`
	UpdatedAt     string `json:"updatedAt,omitempty"`
}

// UpdateVendorOpts holds the editable vendor fields.
type UpdateVendorOpts struct {
	Name          string `json:"name,omitempty"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Address       string `json:"address,omitempty"`
	Category      string `json:"category,omitempty"`
	ContactPerson string `json:"contactPerson,omitempty"`
	Website       string `json:"website,omitempty"`
	Status        string `json:"status,omitempty"`
}

// BookingUser and BookingEvent are the embedded summaries of a booking.
type BookingUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type BookingEvent struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Location  string `json:"location"`
}

// Booking is a reservation of an event by a user.
type Booking struct {
	ID          string       `json:"id"`
	UserID      string       `json:"userId"`
	EventID     string       `json:"eventId"`
	Status      string       `json:"status"`
	Attendees   int          `json:"attendees"`
	TotalAmount float64      `json:"totalAmount"`
	Notes       string       `json:"notes,omitempty"`
	User        BookingUser  `json:"user"`
	Event       BookingEvent `json:"event"`
	CreatedAt   string       `json:"createdAt,omitempty"`
	UpdatedAt   string       `json:"updatedAt,omitempty"`
}

// Booking statuses accepted by the status endpoints.
// Account statuses accepted by the user and vendor status endpoints.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusPending  = "pending"
)

const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
	BookingCompleted = "completed"
)

// EventType is one of the event categories a supplier can serve.
type EventType struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// SupplierEventType is the capacity a supplier offers for an event type.
type SupplierEventType struct {
	EventTypeID string `json:"event_type_id"`
	MinCapacity int    `json:"min_capacity"`
	MaxCapacity int    `json:"max_capacity"`
}

// ServicePrice is one price line of a supplier service.
type ServicePrice struct {
	Price float64 `json:"price"`
	Type  int     `json:"type"`
}

// SupplierService is a service offered by the logged in supplier.
type SupplierService struct {
	ID                string         `json:"id"`
	ServiceID         string         `json:"service_id"`
	SupplierID        string         `json:"supplier_id"`
	DeliveryTimeSlots string         `json:"delivery_time_slots"`
	Prices            []ServicePrice `json:"prices"`
}

// AuthUser is the account behind the current session.
type AuthUser struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Address     string `json:"address,omitempty"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number,omitempty"`
	NeedToReset bool   `json:"need_to_reset"`
}

// Session is the result of a successful login.
type Session struct {
	Token string
	User  AuthUser
}
