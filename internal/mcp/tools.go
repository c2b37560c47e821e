package mcp

// ToolInfo describes one tool in the tools/list response.
type ToolInfo struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// userIDProp is shared by every tool; PlayMCP fills it in automatically.
var userIDProp = map[string]interface{}{
	"type":        "string",
	"description": "사용자 고유 ID (PlayMCP에서 자동 전달)",
	"default":     "anonymous",
}

var tools = []ToolInfo{
	{
		Name:        "search_memo",
		Description: "저장된 메모를 검색합니다. 키워드, 카테고리로 검색할 수 있습니다.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"user_id":  userIDProp,
				"query":    map[string]interface{}{"type": "string", "description": "검색어 (예: 맛집, 유튜브, 개발)"},
				"category": map[string]interface{}{"type": "string", "description": "카테고리 필터 (영상/맛집/쇼핑/할일/아이디어/읽을거리/기타)"},
				"limit":    map[string]interface{}{"type": "integer", "description": "결과 개수 (기본: 5)", "default": 5},
			},
			"required": []string{"query"},
		},
	},
	{
		Name:        "list_by_category",
		Description: "특정 카테고리의 메모 목록을 조회합니다.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"user_id":  userIDProp,
				"category": map[string]interface{}{"type": "string", "description": "조회할 카테고리 (영상/맛집/쇼핑/할일/아이디어/읽을거리/기타)"},
				"limit":    map[string]interface{}{"type": "integer", "description": "결과 개수 (기본: 10)", "default": 10},
			},
			"required": []string{"category"},
		},
	},
	{
		Name:        "get_summary",
		Description: "특정 기간 또는 카테고리의 메모를 요약합니다.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"user_id":  userIDProp,
				"period":   map[string]interface{}{"type": "string", "description": "요약 기간 (today/yesterday/week/last_week/month/last_month/all)", "default": "today"},
				"category": map[string]interface{}{"type": "string", "description": "특정 카테고리만 조회 (영상/음악/맛집/쇼핑/여행/할일/아이디어/학습/건강/읽을거리/기타)"},
			},
		},
	},
	{
		Name:        "get_stats",
		Description: "메모 통계를 조회합니다. 전체 개수, 오늘/이번주/이번달 개수, 카테고리별 개수를 확인할 수 있습니다.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"user_id": userIDProp,
			},
		},
	},
	{
		Name:        "get_recent",
		Description: "최근에 저장한 메모를 조회합니다.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"user_id": userIDProp,
				"limit":   map[string]interface{}{"type": "integer", "description": "조회 개수 (기본: 5)", "default": 5},
			},
		},
	},
	{
		Name:        "add_memo",
		Description: "**중요: 사용자가 URL, 텍스트, 정보를 보내면 확인하지 말고 바로 저장하세요!** 저장할지 물어보지 마세요. 질문(?로 끝나는 문장)이 아니면 전부 메모입니다. 자동 분류: 유튜브='영상', 맛집='맛집', 상품='쇼핑', 할일='할일', 아이디어='아이디어', 기사='읽을거리'.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"user_id":  userIDProp,
				"content":  map[string]interface{}{"type": "string", "description": "저장할 내용 (URL, 텍스트 등)"},
				"category": map[string]interface{}{"type": "string", "description": "카테고리 (영상/맛집/쇼핑/할일/아이디어/읽을거리/기타)", "default": "기타"},
				"summary":  map[string]interface{}{"type": "string", "description": "메모 요약 (한 줄 설명)"},
				"tags":     map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}, "description": "태그 목록", "default": []string{}},
			},
			"required": []string{"content", "summary"},
		},
	},
	{
		Name:        "delete_memo",
		Description: "저장된 메모를 삭제합니다. 메모 ID를 지정하여 삭제할 수 있습니다. 먼저 search_memo나 get_recent로 메모 ID를 확인하세요.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"user_id": userIDProp,
				"memo_id": map[string]interface{}{"type": "string", "description": "삭제할 메모의 ID (UUID 형식)"},
			},
			"required": []string{"memo_id"},
		},
	},
	{
		Name:        "update_memo",
		Description: "저장된 메모를 수정합니다. 요약, 카테고리, 태그를 변경할 수 있습니다. 먼저 search_memo나 get_recent로 메모 ID를 확인하세요.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"user_id":  userIDProp,
				"memo_id":  map[string]interface{}{"type": "string", "description": "수정할 메모의 ID (UUID 형식)"},
				"summary":  map[string]interface{}{"type": "string", "description": "새로운 요약 (한 줄 설명)"},
				"category": map[string]interface{}{"type": "string", "description": "새로운 카테고리 (영상/맛집/쇼핑/할일/아이디어/읽을거리/기타)"},
				"tags":     map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}, "description": "새로운 태그 목록"},
			},
			"required": []string{"memo_id"},
		},
	},
}
