/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package testmodels

import (
	"time"

	"github.com/go-openapi/strfmt"

	storeerrors "github.com/suparena/docstore/errors"
)

// RatingSystem is a rating scheme players are ranked under.
type RatingSystem struct {

	// Timestamp when the rating system was created.
	// Required: true
	// Format: date-time
	CreatedAt *strfmt.DateTime `json:"CreatedAt" bson:"createdAt"`

	// A description of the rating system.
	// Required: true
	Description *string `json:"Description" bson:"description"`

	// Unique identifier for the rating system.
	// Required: true
	ID *string `json:"Id" bson:"_id"`

	// Name of the rating system.
	// Required: true
	Name *string `json:"Name" bson:"name"`

	// site Url
	SiteURL string `json:"SiteUrl,omitempty" bson:"siteUrl,omitempty"`

	// Timestamp when the rating system was last updated.
	// Required: true
	// Format: date-time
	UpdatedAt *strfmt.DateTime `json:"UpdatedAt" bson:"updatedAt"`
}

// NewRatingSystem returns a rating system stamped with the current time.
func NewRatingSystem(id, name, description string) RatingSystem {
	now := strfmt.DateTime(time.Now().UTC())
	return RatingSystem{
		ID:          &id,
		Name:        &name,
		Description: &description,
		CreatedAt:   &now,
		UpdatedAt:   &now,
	}
}

// RatingSystemID returns the identifier of r, or "" when unset.
func RatingSystemID(r RatingSystem) string {
	if r.ID == nil {
		return ""
	}
	return *r.ID
}

// Validate checks the required fields.
func (r RatingSystem) Validate() error {
	required := map[string]bool{
		"Id":          r.ID != nil && *r.ID != "",
		"Name":        r.Name != nil && *r.Name != "",
		"Description": r.Description != nil,
		"CreatedAt":   r.CreatedAt != nil,
		"UpdatedAt":   r.UpdatedAt != nil,
	}
	for _, field := range []string{"Id", "Name", "Description", "CreatedAt", "UpdatedAt"} {
		if !required[field] {
			return storeerrors.NewValidationError(field, "is required")
		}
	}
	if time.Time(*r.UpdatedAt).Before(time.Time(*r.CreatedAt)) {
		return storeerrors.NewValidationError("UpdatedAt", "precedes CreatedAt")
	}
	return nil
}
