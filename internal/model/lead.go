// Package model defines the normalized lead records produced by every
// search engine, plus the ordered CSV field lists the output writer uses.
package model

import "time"

// StatusIdentified is the initial lifecycle status of every lead this
// pipeline produces. Outreach tooling moves leads past it; we never do.
const StatusIdentified = "identified"

// DateFormat is the discovery-date layout used in output files.
const DateFormat = "2006-01-02"

// PersonLead is a candidate contact discovered by a person-producing engine.
// LinkedInURL is the identity key: non-empty and unique within a final
// person collection.
type PersonLead struct {
	Name        string `json:"name"`
	LinkedInURL string `json:"linkedin_url"`
	Handle      string `json:"handle"`
	Title       string `json:"title"`
	Snippet     string `json:"snippet"`
	Location    string `json:"location"`
	SourceQuery string `json:"source_query"`
	Segment     string `json:"segment"`
	Engine      string `json:"engine"`
	Status      string `json:"status"`
	Contacted   string `json:"contacted"`
	Response    string `json:"response"`
	Email       string `json:"email"`
	Notes       string `json:"notes"`
	FoundAt     string `json:"found_at"`
}

// Key returns the dedup identity key for a person lead.
func (p PersonLead) Key() string { return p.LinkedInURL }

// PersonFields is the ordered output schema for person leads.
var PersonFields = []string{
	"name", "linkedin_url", "handle", "title", "snippet", "location",
	"source_query", "segment", "engine", "status", "contacted",
	"response", "email", "notes", "found_at",
}

// Row returns the lead's values in PersonFields order.
func (p PersonLead) Row() []string {
	return []string{
		p.Name, p.LinkedInURL, p.Handle, p.Title, p.Snippet, p.Location,
		p.SourceQuery, p.Segment, p.Engine, p.Status, p.Contacted,
		p.Response, p.Email, p.Notes, p.FoundAt,
	}
}

// OrgLead is a registered organization discovered by the registry engine.
// OrgNumber is the identity key: non-empty and unique within a final org
// collection. SegmentOrganization is its fixed segment label.
type OrgLead struct {
	NameHebrew      string `json:"name_hebrew"`
	NameEnglish     string `json:"name_english"`
	OrgNumber       string `json:"org_number"`
	Category        string `json:"category"`
	City            string `json:"city"`
	Status          string `json:"status"`
	GuidestarURL    string `json:"guidestar_url"`
	SourceKeyword   string `json:"source_keyword"`
	Segment         string `json:"segment"`
	LeadStatus      string `json:"lead_status"`
	ContactName     string `json:"contact_name"`
	ContactLinkedIn string `json:"contact_linkedin"`
	Email           string `json:"email"`
	Notes           string `json:"notes"`
	FoundAt         string `json:"found_at"`
}

// SegmentOrganization is the fixed segment label for org leads.
const SegmentOrganization = "Organization"

// Key returns the dedup identity key for an org lead.
func (o OrgLead) Key() string { return o.OrgNumber }

// OrgFields is the ordered output schema for organization leads.
var OrgFields = []string{
	"name_hebrew", "name_english", "org_number", "category", "city",
	"status", "guidestar_url", "source_keyword", "segment",
	"lead_status", "contact_name", "contact_linkedin",
	"email", "notes", "found_at",
}

// Row returns the lead's values in OrgFields order.
func (o OrgLead) Row() []string {
	return []string{
		o.NameHebrew, o.NameEnglish, o.OrgNumber, o.Category, o.City,
		o.Status, o.GuidestarURL, o.SourceKeyword, o.Segment,
		o.LeadStatus, o.ContactName, o.ContactLinkedIn,
		o.Email, o.Notes, o.FoundAt,
	}
}

// Today formats a timestamp as a discovery date.
func Today(t time.Time) string { return t.Format(DateFormat) }
