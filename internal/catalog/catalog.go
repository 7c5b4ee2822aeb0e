// Ddalkkak - Date Itinerary Recommendation
// Copyright 2026 zzangoobrother
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/zzangoobrother/ddalkkak-date

// Package catalog provides read access to the venue pool and the
// closed set of supported regions.
//
// Venues are collected by the ingestion workflow and are read-only to
// the generation pipeline. Two implementations exist: a BadgerDB-backed
// source for production and an in-memory source for tests.
package catalog

import (
	"context"

	"github.com/zzangoobrother/ddalkkak-date/internal/models"
)

// Source reads venues for the generation pipeline.
type Source interface {
	// VenuesByRegion returns every venue tagged with the region.
	VenuesByRegion(ctx context.Context, regionID string) ([]models.Venue, error)

	// VenueByID returns a single venue or models.ErrVenueNotFound.
	VenueByID(ctx context.Context, id int64) (*models.Venue, error)

	// VenuesByIDs resolves a batch of venue IDs, preserving order.
	// Unknown IDs yield models.ErrVenueNotFound.
	VenuesByIDs(ctx context.Context, ids []int64) ([]models.Venue, error)
}

// regions is the closed set of supported regions, keyed by ID.
// Region selection is a UI concern; the pipeline only checks membership.
var regions = []models.Region{
	{ID: "jongno", Name: "종로·광화문", Emoji: "🏛️", Tagline: "역사와 감성"},
	{ID: "seongbuk", Name: "성북·혜화", Emoji: "🌳", Tagline: "문화와 예술"},
	{ID: "junggu", Name: "중구·명동", Emoji: "🏢", Tagline: "도심 속 데이트"},
	{ID: "mapo", Name: "마포·홍대", Emoji: "🎨", Tagline: "힙한 감성"},
	{ID: "yongsan", Name: "용산·이태원", Emoji: "🗼", Tagline: "이국적 분위기"},
	{ID: "gangnam", Name: "강남·역삼", Emoji: "💼", Tagline: "세련된 데이트"},
	{ID: "seongdong", Name: "성동·성수", Emoji: "🏭", Tagline: "핫플 성지"},
	{ID: "gwangjin", Name: "광진·건대", Emoji: "🎓", Tagline: "활기찬 분위기"},
	{ID: "songpa", Name: "송파·잠실", Emoji: "🎢", Tagline: "놀거리 가득"},
	{ID: "yeongdeungpo", Name: "영등포·여의도", Emoji: "🏙️", Tagline: "한강뷰 맛집"},
	{ID: "seocho", Name: "서초·교대", Emoji: "🌸", Tagline: "조용한 데이트"},
	{ID: "gangdong", Name: "강동·천호", Emoji: "🌊", Tagline: "한강 산책"},
}

var regionIndex = func() map[string]models.Region {
	idx := make(map[string]models.Region, len(regions))
	for _, r := range regions {
		idx[r.ID] = r
	}
	return idx
}()

// Regions returns the supported regions in display order.
func Regions() []models.Region {
	out := make([]models.Region, len(regions))
	copy(out, regions)
	return out
}

// RegionByID resolves a region ID against the closed set. Unknown IDs
// return models.ErrUnknownRegion.
func RegionByID(id string) (models.Region, error) {
	r, ok := regionIndex[id]
	if !ok {
		return models.Region{}, models.ErrUnknownRegion
	}
	return r, nil
}
