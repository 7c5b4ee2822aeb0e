// Ddalkkak - Date Itinerary Recommendation
// Copyright 2026 zzangoobrother
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/zzangoobrother/ddalkkak-date

package models

import "fmt"

// ActivityType is the closed enumeration of supported date activity
// types. Unknown identifiers are a caller error, never defaulted.
type ActivityType string

const (
	ActivityDinner   ActivityType = "dinner"
	ActivityCafe     ActivityType = "cafe"
	ActivityCulture  ActivityType = "culture"
	ActivityActivity ActivityType = "activity"
	ActivityNight    ActivityType = "night"
	ActivitySpecial  ActivityType = "special"
)

// activityInfo holds display metadata per activity type.
type activityInfo struct {
	name        string
	description string
}

var activityInfos = map[ActivityType]activityInfo{
	ActivityDinner:   {"저녁 식사 데이트", "로맨틱한 분위기의 레스토랑과 야경 중심"},
	ActivityCafe:     {"카페&디저트 데이트", "감성 카페와 디저트 맛집 투어"},
	ActivityCulture:  {"문화·전시 데이트", "갤러리, 박물관, 공연장 중심"},
	ActivityActivity: {"액티비티·체험 데이트", "특별한 경험과 추억 만들기"},
	ActivityNight:    {"야경·산책 데이트", "야경 명소와 로맨틱한 산책"},
	ActivitySpecial:  {"특별한 날 데이트", "기념일, 생일 등 특별한 날"},
}

// ParseActivityType resolves an activity type identifier.
// Unknown identifiers return ErrUnknownActivityType.
func ParseActivityType(id string) (ActivityType, error) {
	at := ActivityType(id)
	if _, ok := activityInfos[at]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownActivityType, id)
	}
	return at, nil
}

// ActivityTypes returns all supported activity types in a stable order.
func ActivityTypes() []ActivityType {
	return []ActivityType{
		ActivityDinner, ActivityCafe, ActivityCulture,
		ActivityActivity, ActivityNight, ActivitySpecial,
	}
}

// Name returns the Korean display name of the activity type.
func (a ActivityType) Name() string {
	return activityInfos[a].name
}

// Description returns the one-line description of the activity type.
func (a ActivityType) Description() string {
	return activityInfos[a].description
}

// String implements fmt.Stringer.
func (a ActivityType) String() string {
	return string(a)
}
