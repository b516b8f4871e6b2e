// Refeed - Meal Tracking API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/refeed

// Package models defines the Refeed wire and storage types.
package models

// Meal is the only persisted entity. The id is the store partition key and
// is minted by the server on create.
//
// JSON field names are shared with the frontend. The DynamoDB attribute for
// Name is mealName for compatibility with existing tables.
type Meal struct {
	ID          string  `json:"id" dynamodbav:"id"`
	Name        string  `json:"name" dynamodbav:"mealName" validate:"required,notblank"`
	Description string  `json:"description" dynamodbav:"description" validate:"required,notblank"`
	Photos      *string `json:"photos" dynamodbav:"photos,omitempty"`
	Stars       *int    `json:"stars" dynamodbav:"stars,omitempty" validate:"omitempty,min=1,max=5"`
}

// Clone returns a deep copy so callers cannot mutate stored values.
func (m *Meal) Clone() *Meal {
	c := *m
	if m.Photos != nil {
		p := *m.Photos
		c.Photos = &p
	}
	if m.Stars != nil {
		s := *m.Stars
		c.Stars = &s
	}
	return &c
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int { return &v }

// StringPtr returns a pointer to v.
func StringPtr(v string) *string { return &v }
