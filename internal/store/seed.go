package store

import (
	"context"

	"github.com/akfldk1028/chatnote/internal/metadata"
)

type seedMemo struct {
	content  string
	memoType string
	category string
	tags     []string
	summary  string
}

var demoMemos = []seedMemo{
	// 영상
	{"https://youtube.com/watch?v=abc123", "link", "영상", []string{"파이썬", "FastAPI"}, "FastAPI 강좌 - REST API 만들기"},
	{"https://youtube.com/watch?v=def456", "link", "영상", []string{"리액트", "프론트엔드"}, "React 18 새로운 기능 총정리"},
	{"https://youtube.com/watch?v=ghi789", "link", "영상", []string{"AI", "ChatGPT"}, "ChatGPT API 활용법 완벽 가이드"},
	// 맛집
	{"강남역 맛집", "text", "맛집", []string{"강남", "골뱅이"}, "을지로골뱅이 강남점 - 골뱅이무침 맛있음"},
	{"홍대 맛집", "text", "맛집", []string{"홍대", "라멘"}, "멘야하나비 - 마제소바 강추"},
	{"판교 점심", "text", "맛집", []string{"판교", "점심"}, "봇나무집 - 돼지갈비 정식 12000원"},
	// 쇼핑
	{"로지텍 MX Keys", "text", "쇼핑", []string{"키보드", "로지텍"}, "로지텍 MX Keys 무선 키보드 - 쿠팡 139000원"},
	{"에어팟 맥스", "text", "쇼핑", []string{"애플", "헤드폰"}, "에어팟 맥스 실버 - 769000원"},
	// 할일
	{"프로젝트 문서 작성", "text", "할일", []string{"업무", "문서"}, "이번 주 프로젝트 문서 작성 및 코드 리뷰"},
	{"치과 예약", "text", "할일", []string{"병원", "예약"}, "목요일 오후 3시 치과 예약하기"},
	// 아이디어
	{"챗봇 연동 아이디어", "text", "아이디어", []string{"챗봇", "카카오톡"}, "카카오톡 챗봇 + 메모 비서 연동 아이디어"},
	{"사이드 프로젝트", "text", "아이디어", []string{"창업", "앱"}, "동네 커피숍 리뷰 앱 만들어볼까?"},
	// 읽을거리
	{"https://velog.io/@dev/redis", "link", "읽을거리", []string{"레디스", "기술블로그"}, "Redis 자료구조 심층 분석 글"},
	{"https://medium.com/ai-trends", "link", "읽을거리", []string{"AI", "트렌드"}, "2025년 AI 트렌드 예측"},
}

// SeedDemoData loads a fixed batch of sample memos for a user and
// returns the number inserted.
func (s *Store) SeedDemoData(ctx context.Context, userID string) (int, error) {
	count := 0
	for _, seed := range demoMemos {
		memo := &Memo{
			UserID:   userID,
			Content:  seed.content,
			MemoType: seed.memoType,
			Category: seed.category,
			Tags:     seed.tags,
			Summary:  seed.summary,
		}
		if seed.memoType == "link" {
			memo.URL = seed.content
			memo.Metadata = &metadata.Metadata{URL: seed.content, Type: metadata.DetectPlatform(seed.content)}
		}
		if _, err := s.SaveMemo(ctx, memo); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}
