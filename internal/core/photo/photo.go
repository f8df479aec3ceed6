// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package photo manages the photo catalog: uploads, moderation status, rankings
and viewer-aware detail.

Ratings are stored here but only ever changed by the battle recorder; this
package never writes the rating or version columns after creation.
*/
package photo

import (
	"time"

	"github.com/taibuivan/snapduel/internal/core/access"
)

// # Status

// Status controls whether a photo takes part in battles, decks and rankings.
type Status string

const (
	StatusActive Status = "active"
	StatusHidden Status = "hidden"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusHidden
}

// # Tags

// Conventional tag keys. Keys are an open set; only these can filter rankings.
const (
	TagPart      = "part"
	TagTitle     = "title"
	TagCharacter = "character"
)

// RankingTags lists the tag keys accepted as ranking filters.
func RankingTags() []string {
	return []string{TagPart, TagTitle, TagCharacter}
}

// MaxTags bounds the number of tags on a single photo.
const MaxTags = 16

// # Entity

// Photo is a rated, tier-gated image uploaded by a user.
type Photo struct {
	ID          string            `json:"id"`
	OwnerID     string            `json:"owner_id"`
	ImageURL    string            `json:"image_url,omitempty"`
	Rating      int               `json:"rating"`
	Version     int64             `json:"-"`
	Tier        access.Tier       `json:"tier"`
	Status      Status            `json:"status"`
	Tags        map[string]string `json:"tags"`
	IsSensitive bool              `json:"is_sensitive"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// AccessItem projects the photo onto the resolver's input.
func (photo *Photo) AccessItem() access.Item {
	return access.Item{ID: photo.ID, OwnerID: photo.OwnerID, Tier: photo.Tier}
}

// AccessItems projects a slice of photos onto resolver input.
func AccessItems(photos []*Photo) []access.Item {
	items := make([]access.Item, len(photos))
	for index, photo := range photos {
		items[index] = photo.AccessItem()
	}
	return items
}

// # Viewer Projection

// Card is a photo as presented to one viewer. When Viewable is false the
// image URL is withheld and clients render a locked placeholder.
type Card struct {
	Photo    *Photo `json:"photo"`
	Viewable bool   `json:"viewable"`
}

// Cards pairs each photo with its access decision, redacting the image URL of
// photos the viewer may not see. Photos missing from decisions are redacted.
func Cards(photos []*Photo, decisions map[string]bool) []Card {
	cards := make([]Card, len(photos))
	for index, photo := range photos {
		cards[index] = NewCard(photo, decisions[photo.ID])
	}
	return cards
}

// NewCard builds a single [Card] without mutating photo.
func NewCard(photo *Photo, viewable bool) Card {
	shown := *photo
	if !viewable {
		shown.ImageURL = ""
	}
	return Card{Photo: &shown, Viewable: viewable}
}

// # Queries

// PoolQuery narrows a candidate listing for the selectors.
type PoolQuery struct {
	// Tiers restricts the result to these tiers. Empty means every tier.
	Tiers []access.Tier

	// ExcludeIDs are dropped in the query itself.
	ExcludeIDs []string

	// Limit caps the number of rows returned.
	Limit int

	// Shuffle returns a random sample instead of the first rows by id.
	Shuffle bool
}

// UploadInput is the metadata accepted for a new photo.
type UploadInput struct {
	ImageURL    string            `json:"image_url"`
	Tier        access.Tier       `json:"tier"`
	Tags        map[string]string `json:"tags"`
	IsSensitive bool              `json:"is_sensitive"`
}
