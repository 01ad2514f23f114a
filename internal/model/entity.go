package model

import "time"

// Role matches the user_role enum type in the shared Postgres schema.
type Role string

const (
	RoleEmployee   Role = "EMPLOYEE"
	RoleSupervisor Role = "SUPERVISOR"
	RoleFinance    Role = "FINANCE"
	RoleAdmin      Role = "ADMIN"
)

// PortalEligible reports whether the role is one of the known variants.
func (r Role) PortalEligible() bool {
	switch r {
	case RoleEmployee, RoleSupervisor, RoleFinance, RoleAdmin:
		return true
	}
	return false
}

// CanViewDashboard gates the live operations dashboard.
func (r Role) CanViewDashboard() bool {
	return r == RoleAdmin || r == RoleSupervisor
}

// ArizonaTZ is fixed UTC-7; Arizona does not observe daylight saving.
var ArizonaTZ = time.FixedZone("MST", -7*60*60)

// User rows live in the shared users table. The portal reads them for
// login and the access guard; it never creates or deletes users.
type User struct {
	ID               int       `gorm:"primaryKey" json:"id"`
	Email            string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	FirstName        string    `gorm:"size:80" json:"first_name"`
	LastName         string    `gorm:"size:80" json:"last_name"`
	Name             string    `gorm:"size:120" json:"name"`
	PasswordHash     string    `gorm:"size:255;not null" json:"-"`
	Role             Role      `gorm:"type:user_role;not null;default:EMPLOYEE" json:"role"`
	EmployeeApproved bool      `gorm:"not null;default:false" json:"employee_approved"`
	IsActive         bool      `gorm:"default:true" json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
}

// CanAccessPortal is the standard guard check.
func (u *User) CanAccessPortal() bool {
	return u.EmployeeApproved && u.IsActive
}

// PODEvent is one captured pickup or delivery confirmation. Rows are
// insert-only: nothing in the portal updates or deletes them.
type PODEvent struct {
	ID           int        `gorm:"primaryKey" json:"id"`
	UserID       int        `gorm:"not null" json:"user_id"`
	ReferenceID  string     `gorm:"size:100;index" json:"reference_id"`
	EventType    string     `gorm:"size:20" json:"event_type"`
	Latitude     *string    `gorm:"type:numeric(10,7)" json:"latitude"`
	Longitude    *string    `gorm:"type:numeric(10,7)" json:"longitude"`
	UTCTimestamp time.Time  `gorm:"column:utc_timestamp" json:"utc_timestamp"`
	AZTimestamp  *time.Time `gorm:"column:az_timestamp" json:"az_timestamp"`
	SignatureURL *string    `gorm:"size:512" json:"signature_url"`
	PhotoURL     *string    `gorm:"size:512" json:"photo_url"`
}

// SetAZTimestamp derives the Arizona wall-clock timestamp from the
// current moment. Called right before insert, never from user input.
func (e *PODEvent) SetAZTimestamp() {
	az := time.Now().UTC().In(ArizonaTZ)
	e.AZTimestamp = &az
}

// ExpectedDelivery is a manifest line written by the offline seeder.
// The capture flow never touches the status column; the live feed
// computes a display status from the latest matching event instead.
type ExpectedDelivery struct {
	ID                 int       `gorm:"primaryKey" json:"id"`
	BatchID            string    `gorm:"size:50;index" json:"batch_id"`
	ReferenceID        string    `gorm:"size:100;uniqueIndex" json:"reference_id"`
	ConsigneeName      string    `gorm:"size:150" json:"consignee_name"`
	DestinationAddress string    `gorm:"size:255" json:"destination_address"`
	Status             string    `gorm:"size:20;default:PENDING" json:"status"`
	CreatedAt          time.Time `json:"created_at"`
}

func (User) TableName() string             { return "users" }
func (PODEvent) TableName() string         { return "pod_events" }
func (ExpectedDelivery) TableName() string { return "expected_deliveries" }
