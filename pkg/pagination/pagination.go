// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination parses page windows for gallery listings and builds the
// "meta" block returned next to them.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultLimit fills a 4 by 6 gallery grid.
	DefaultLimit = 24

	// MaxLimit caps a single page.
	MaxLimit = 96

	// DefaultPage is the first page. Pages are 1-indexed.
	DefaultPage = 1
)

// Params is one requested page window.
type Params struct {
	Page  int
	Limit int
}

// New normalises page and limit.
//
// Non-positive values fall back to the defaults; a limit above [MaxLimit] is
// clamped to it rather than reset, so a client asking for "everything" still
// gets the largest page we serve.
func New(page, limit int) Params {
	if page < 1 {
		page = DefaultPage
	}

	switch {
	case limit < 1:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}

	return Params{Page: page, Limit: limit}
}

// FromRequest reads the "page" and "limit" query parameters.
// Unparseable values are treated as absent.
func FromRequest(request *http.Request) Params {
	values := request.URL.Query()
	return New(atoiOr(values.Get("page"), DefaultPage), atoiOr(values.Get("limit"), DefaultLimit))
}

// Offset is the number of rows skipped before this page.
func (params Params) Offset() int {
	if params.Page <= 1 {
		return 0
	}
	return (params.Page - 1) * params.Limit
}

// Meta describes the returned page.
type Meta struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
}

// NewMeta builds the meta block for params given the total row count.
func NewMeta(params Params, total int) Meta {
	pages := 0
	if params.Limit > 0 && total > 0 {
		pages = (total + params.Limit - 1) / params.Limit
	}

	return Meta{
		Page:       params.Page,
		Limit:      params.Limit,
		Total:      total,
		TotalPages: pages,
		HasNext:    params.Page < pages,
	}
}

func atoiOr(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
