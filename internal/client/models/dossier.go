// Package models defines the archive entities persisted by the repositories:
// dossiers, the documents and images filed under them, and the session
// record. JSON field names are part of the storage contract shared between
// the local store and the remote record database, so they must not change.
package models

import "time"

// Classification is the secrecy level assigned to a dossier.
type Classification string

const (
	ClassificationTopSecret    Classification = "TOP SECRET"
	ClassificationSecret       Classification = "SECRET"
	ClassificationConfidential Classification = "CONFIDENTIAL"
	ClassificationUnclassified Classification = "UNCLASSIFIED"
)

// DossierStatus tracks the lifecycle of a dossier.
type DossierStatus string

const (
	StatusActive      DossierStatus = "ACTIVE"
	StatusUnderReview DossierStatus = "UNDER REVIEW"
	StatusClosed      DossierStatus = "CLOSED"
)

// Dossier is a named container for related documents and images.
type Dossier struct {
	// ID is assigned at creation as a time-based token prefixed "DOS-".
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Classification Classification `json:"classification"`
	Declassified   string         `json:"declassified"`
	Status         DossierStatus  `json:"status"`
	Description    string         `json:"description"`
	CreatedAt      time.Time      `json:"createdAt"`
	// CreatedDate is the display form of CreatedAt (MM/DD/YYYY).
	CreatedDate string `json:"createdDate"`
}

// DossierUpdate is a partial-field update; nil fields are left unchanged.
type DossierUpdate struct {
	Name           *string         `json:"name,omitempty"`
	Classification *Classification `json:"classification,omitempty"`
	Declassified   *string         `json:"declassified,omitempty"`
	Status         *DossierStatus  `json:"status,omitempty"`
	Description    *string         `json:"description,omitempty"`
}

// Apply merges the non-nil fields of u into d.
func (u DossierUpdate) Apply(d *Dossier) {
	if u.Name != nil {
		d.Name = *u.Name
	}
	if u.Classification != nil {
		d.Classification = *u.Classification
	}
	if u.Declassified != nil {
		d.Declassified = *u.Declassified
	}
	if u.Status != nil {
		d.Status = *u.Status
	}
	if u.Description != nil {
		d.Description = *u.Description
	}
}

// Fields returns the non-nil fields as a map suitable for a remote partial
// update.
func (u DossierUpdate) Fields() map[string]any {
	m := map[string]any{}
	if u.Name != nil {
		m["name"] = *u.Name
	}
	if u.Classification != nil {
		m["classification"] = *u.Classification
	}
	if u.Declassified != nil {
		m["declassified"] = *u.Declassified
	}
	if u.Status != nil {
		m["status"] = *u.Status
	}
	if u.Description != nil {
		m["description"] = *u.Description
	}
	return m
}

// FormatDate renders a timestamp the way dossier listings display dates.
func FormatDate(t time.Time) string {
	return t.Format("01/02/2006")
}
