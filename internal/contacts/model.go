package contacts

import "time"

// Field limits for a contact submission.
const (
	MinNameLength    = 2
	MaxNameLength    = 100
	MinNamePart      = 2
	MinPhoneDigits   = 7
	MaxPhoneDigits   = 20
	MaxPhoneLength   = 30
	MaxEmailLength   = 255
	MaxServices      = 10
	MaxDetailsLength = 5000
)

// Wire names of the submission fields.
const (
	FieldPersonalName = "personalName"
	FieldCompanyName  = "companyName"
	FieldPhoneNumber  = "phoneNumber"
	FieldEmail        = "email"
	FieldServices     = "services"
	FieldMoreDetails  = "moreDetails"
)

// Service slugs offered by the public form. Submissions are not restricted to
// this list; labels are stored as sent.
var ServiceCatalog = []string{
	"social-media",
	"paid-ads",
	"seo",
	"pr-social-listening",
	"branding",
	"software-ai",
}

// Contact is a persisted contact-form submission. Records are never edited;
// the only mutation is deletion.
type Contact struct {
	ID           string    `json:"id"`
	PersonalName string    `json:"personalName"`
	CompanyName  *string   `json:"companyName"`
	PhoneNumber  string    `json:"phoneNumber"`
	Email        string    `json:"email"`
	Services     []string  `json:"services"`
	MoreDetails  *string   `json:"moreDetails"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Draft is a validated submission that has not been stored yet.
type Draft struct {
	PersonalName string
	CompanyName  *string
	PhoneNumber  string
	Email        string
	Services     []string
	MoreDetails  *string
}

// HasCompany reports whether a company name was provided.
func (c *Contact) HasCompany() bool {
	return c.CompanyName != nil && *c.CompanyName != ""
}

// HasDetails reports whether free-text details were provided.
func (c *Contact) HasDetails() bool {
	return c.MoreDetails != nil && *c.MoreDetails != ""
}

func newContact(id string, d Draft, createdAt time.Time) *Contact {
	services := d.Services
	if services == nil {
		services = []string{}
	}
	return &Contact{
		ID:           id,
		PersonalName: d.PersonalName,
		CompanyName:  d.CompanyName,
		PhoneNumber:  d.PhoneNumber,
		Email:        d.Email,
		Services:     services,
		MoreDetails:  d.MoreDetails,
		CreatedAt:    createdAt,
	}
}
