/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package testmodels

import (
	"github.com/go-openapi/strfmt"

	storeerrors "github.com/suparena/docstore/errors"
	"github.com/suparena/docstore/registry"
)

// PlayerIndexMap lays players out by id, with a secondary index on email.
var PlayerIndexMap = map[string]string{
	"PK":     "PLAYER#{ID}",
	"SK":     "PROFILE",
	"GSI1PK": "EMAIL#{Email}",
	"GSI1SK": "PLAYER#{ID}",
}

func init() {
	registry.RegisterIndexMap[Player](PlayerIndexMap)
}

// Player is a registered competitor.
type Player struct {

	// Unique identifier of the player.
	// Required: true
	ID string `json:"id" bson:"_id" dynamodbav:"ID"`

	// Display name.
	Name string `json:"name" bson:"name" dynamodbav:"Name"`

	// Contact address.
	// Format: email
	Email strfmt.Email `json:"email" bson:"email" dynamodbav:"Email"`

	// Current rating under the default rating system.
	Rating int `json:"rating" bson:"rating" dynamodbav:"Rating"`

	// Region the player competes in; used as partition key.
	Region string `json:"region,omitempty" bson:"region,omitempty" dynamodbav:"Region,omitempty"`
}

// PlayerID returns the identifier of p.
func PlayerID(p Player) string {
	return p.ID
}

// Validate checks the id and the email format.
func (p Player) Validate() error {
	if p.ID == "" {
		return storeerrors.NewValidationError("id", "is required")
	}
	if p.Email != "" && !strfmt.IsEmail(string(p.Email)) {
		return storeerrors.NewValidationError("email", "must be an email address")
	}
	return nil
}
