// Ddalkkak - Date Itinerary Recommendation
// Copyright 2026 zzangoobrother
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/zzangoobrother/ddalkkak-date

package itinerary

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// systemPrompt frames every generation call. Providers that support a
// dedicated system role send it there; others prepend it to the user
// prompt.
const systemPrompt = `당신은 서울 지역 Z세대 커플을 위한 데이트 코스 추천 전문가입니다.
사용자가 선택한 지역, 데이트 유형, 예산에 맞춰 2-3개 장소로 구성된 최적의 코스를 추천합니다.

핵심 원칙:
1. 반드시 제공된 후보 장소 목록에서만 선택
2. 동선 최적화: 이동 거리/시간 최소화
3. 예산 준수: 총 예산 범위 내 (±10% 허용)
4. 데이트 유형에 맞는 분위기 및 순서
5. 총 소요 시간: 2-4시간 권장

응답은 반드시 순수 JSON 형식만 사용하고, 다른 텍스트는 포함하지 마세요.`

// candidatePayload is the per-venue slice of the prompt; field order
// and naming are part of the prompt contract.
type candidatePayload struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`
	PriceRange  string  `json:"price_range"`
	Address     string  `json:"address"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// BuildUserPrompt renders the generation request into the user prompt
// shared by all providers. Pure function, no I/O.
func BuildUserPrompt(req *Request) (string, error) {
	payloads := make([]candidatePayload, 0, len(req.Candidates))
	for _, v := range req.Candidates {
		p := candidatePayload{
			ID:         v.ID,
			Name:       v.Name,
			Category:   v.Category,
			PriceRange: v.PriceRange,
			Address:    v.Address,
			Latitude:   v.Latitude,
			Longitude:  v.Longitude,
		}
		if v.Rating != nil {
			p.Rating = *v.Rating
		}
		if v.ReviewCount != nil {
			p.ReviewCount = *v.ReviewCount
		}
		if p.PriceRange == "" {
			p.PriceRange = "정보 없음"
		}
		payloads = append(payloads, p)
	}

	candidateJSON, err := json.MarshalIndent(payloads, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal candidates: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "지역: %s\n", req.Region.Name)
	fmt.Fprintf(&b, "데이트 유형: %s (%s)\n", req.Activity.Name(), req.Activity.Description())
	fmt.Fprintf(&b, "예산 범위: %d원 - %d원\n\n", req.Window.Min, req.Window.Max)
	fmt.Fprintf(&b, "후보 장소 목록 (%d곳):\n%s\n\n", len(req.Candidates), candidateJSON)
	b.WriteString(`요구사항:
- 위 후보 장소 중 2-3개 선택 (place_id를 정확히 사용)
- 각 장소의 예상 소요 시간과 비용 제시
- 추천 메뉴/활동을 구체적으로 작성
- 이동 수단과 시간 안내 (도보, 택시, 대중교통 등)
- 동선을 고려한 순서 배치 (위도/경도 정보 활용)

JSON 응답 스키마 (다른 텍스트 없이 JSON만 반환):
{
  "course_name": "코스 이름 (예: 홍대 감성 카페 데이트)",
  "description": "코스 설명 (2-3 문장, 전체적인 분위기와 특징)",
  "total_duration_minutes": 180,
  "total_budget": 75000,
  "places": [
    {
      "place_id": 123,
      "sequence": 1,
      "duration_minutes": 90,
      "estimated_cost": 40000,
      "recommended_menu": "추천 메뉴 또는 활동",
      "recommendation_reason": "이 장소를 선택한 이유 (1-2 문장)",
      "transport_to_next": "다음 장소로 이동 방법 (예: 도보 5분)"
    }
  ]
}`)

	return b.String(), nil
}

// extractJSON pulls the outermost JSON object out of a provider reply.
// Some backends wrap the JSON in prose or markdown fences despite
// instructions not to.
func extractJSON(s string) string {
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return s
}
