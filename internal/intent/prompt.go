package intent

// intentPrompt is the few-shot prompt for intent classification. The
// model must answer with a single JSON object.
const intentPrompt = `당신은 메모 앱의 의도 분류 AI입니다.
사용자 메시지를 분석하여 의도를 정확히 분류하세요.

## 의도 종류
1. **summary**: 저장된 메모 정리/요약 요청 (기간별/카테고리별)
2. **search**: 메모 검색 요청
3. **delete**: 메모 삭제 요청
4. **reminder**: 리마인더/알림 목록 조회
5. **stats**: 통계 조회 (몇 개 저장했는지 등)
6. **help**: 사용법/도움말 요청
7. **save**: 메모로 저장할 내용 (기본값)

## 분류 규칙 (중요!)
- 명확한 **명령어 형태**만 해당 의도로 분류
- 일반 문장/정보는 **save**로 분류 (메모 저장)
- 의심스러우면 **save**로 분류 (저장이 기본)

## 핵심 예시 (반드시 참고)

### summary (정리/요약) - 명확한 명령어만
기간별:
- "오늘 정리" → summary (period: today)
- "어제 정리" → summary (period: yesterday)
- "이번주 정리" → summary (period: week)
- "지난주 정리" → summary (period: last_week)
- "이번달 정리" → summary (period: month)
- "지난달 정리" → summary (period: last_month)
- "전체 보여줘" → summary (period: all)

카테고리별:
- "영상 정리" → summary (category: 영상)
- "맛집 정리" → summary (category: 맛집)
- "할일 정리" → summary (category: 할일)
- "쇼핑 정리" → summary (category: 쇼핑)
- "여행 정리" → summary (category: 여행)

### search (검색) - "검색/찾아" 단어 포함
- "맛집 검색" → search (keyword: 맛집)
- "유튜브 찾아줘" → search (keyword: 유튜브)
- "검색 개발" → search (keyword: 개발)

### delete (삭제) - "삭제/지워" 단어 포함
- "삭제 유튜브" → delete (keyword: 유튜브)
- "맛집 지워줘" → delete (keyword: 맛집)

### reminder (리마인더)
- "리마인더" → reminder
- "알림 목록" → reminder
- "예정된 일정" → reminder

### stats (통계)
- "통계" → stats
- "몇 개 저장했어?" → stats
- "이번주 몇 개?" → stats
- "카테고리별 통계" → stats

### help (도움말)
- "도움말" → help
- "사용법" → help
- "어떻게 써?" → help
- "?" → help
- "뭘 할 수 있어?" → help

### save (저장) - 그 외 모든 것!
- "오늘메모를마지막에ai가정리" → save (문장이므로 저장)
- "내일 3시 회의" → save (할일 메모)
- "https://youtube.com/..." → save (URL 저장)
- "맛있는 파스타집 발견" → save (정보 저장)
- "아이디어: 앱 만들기" → save
- "오늘 날씨 좋다" → save

## 응답 형식 (JSON)
{
    "intent": "의도",
    "confidence": 0.0~1.0,
    "keyword": "검색어/삭제대상 (search/delete만)",
    "period": "today/yesterday/week/last_week/month/last_month/all (summary만)",
    "category": "영상/음악/맛집/쇼핑/여행/할일/아이디어/학습/건강/읽을거리 (summary 카테고리별만)",
    "reasoning": "판단 근거 한줄"
}

---
사용자 메시지: %s
---

JSON으로만 응답하세요:`

// analyzePrompt asks the model to pick a category, tags and a one-line
// summary for a memo being saved.
const analyzePrompt = `다음 메모를 분석해서 JSON으로 반환해줘.

메모: %s
%s

응답 형식:
{
    "category": "영상/음악/맛집/쇼핑/여행/할일/아이디어/학습/건강/읽을거리/기타 중 하나",
    "tags": ["태그1", "태그2"],
    "summary": "한줄 요약 (30자 이내)"
}

카테고리 기준:
- 영상: 유튜브, 동영상, 릴스, 틱톡, 넷플릭스
- 음악: 스포티파이, 멜론, 애플뮤직, 플레이리스트, 노래
- 맛집: 음식점, 카페, 맛집, 레스토랑
- 쇼핑: 상품, 구매, 쇼핑몰, 가격비교
- 여행: 여행지, 호텔, 항공, 관광, 숙소
- 할일: 해야 할 일, 일정, 예약, 약속, 시간 포함 메모
- 아이디어: 아이디어, 기획, 영감
- 학습: 강의, 튜토리얼, 교육, 코딩, 공부, GitHub, GitLab, 개발, 프로그래밍, 기술문서, API, 라이브러리
- 건강: 운동, 헬스, 다이어트, 건강관리
- 읽을거리: 블로그, 뉴스, 기사, 아티클, Medium, 개인블로그
- 기타: 위 카테고리에 명확히 해당하지 않는 것`

// categoryPrompt classifies a memo into a single category word while
// leaving the original text untouched.
const categoryPrompt = `메모 카테고리 분류.

메모: %s

기본 카테고리: 영상, 음악, 맛집, 쇼핑, 여행, 할일, 아이디어, 학습, 건강, 읽을거리

규칙:
1. 기본 카테고리에 해당하면 그걸로
2. 전문/특수 분야면 첫 단어나 핵심 주제 (예: 건축사, 법률, 의료, 회계, 부동산)
3. 애매하면 메모의 첫 단어

한 단어만 답변:`
