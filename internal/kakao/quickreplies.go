package kakao

// msgReply is shorthand for a message-action quick reply.
func msgReply(label, text string) QuickReply {
	return QuickReply{Label: label, Action: "message", MessageText: text}
}

var homeReply = msgReply("← 홈", "홈")

// DefaultQuickReplies is the home screen chip set.
func DefaultQuickReplies() []QuickReply {
	return []QuickReply{
		msgReply("오늘", "오늘 정리"),
		msgReply("이번주", "이번주 정리"),
		msgReply("영상", "영상 정리"),
		msgReply("맛집", "맛집 정리"),
		msgReply("통계", "통계"),
		msgReply("리마인더", "리마인더"),
		msgReply("도움말", "도움말"),
	}
}

// PersonalizedQuickReplies mixes the user's top categories into the
// standard chips. Every non-home screen leads with ← 홈.
func PersonalizedQuickReplies(topCategories []string) []QuickReply {
	replies := []QuickReply{
		homeReply,
		msgReply("오늘", "오늘 정리"),
		msgReply("이번주", "이번주 정리"),
	}
	for _, cat := range topCategories {
		replies = append(replies, msgReply(cat, cat+" 정리"))
	}
	return append(replies,
		msgReply("통계", "통계"),
		msgReply("리마인더", "리마인더"),
	)
}

// CategoryQuickReplies navigates between category summaries.
func CategoryQuickReplies() []QuickReply {
	return []QuickReply{
		homeReply,
		msgReply("영상", "영상 정리"),
		msgReply("맛집", "맛집 정리"),
		msgReply("쇼핑", "쇼핑 정리"),
		msgReply("학습", "학습 정리"),
		msgReply("할일", "할일 정리"),
		msgReply("기타", "기타 정리"),
	}
}

// PeriodQuickReplies navigates between period summaries.
func PeriodQuickReplies() []QuickReply {
	return []QuickReply{
		homeReply,
		msgReply("오늘", "오늘 정리"),
		msgReply("어제", "어제 정리"),
		msgReply("이번주", "이번주 정리"),
		msgReply("지난주", "지난주 정리"),
		msgReply("이번달", "이번달 정리"),
		msgReply("전체", "전체 보여줘"),
	}
}

// SubPageQuickReplies is used on search, delete and reminder screens.
func SubPageQuickReplies() []QuickReply {
	return []QuickReply{
		homeReply,
		msgReply("오늘", "오늘 정리"),
		msgReply("이번주", "이번주 정리"),
		msgReply("통계", "통계"),
		msgReply("리마인더", "리마인더"),
	}
}
