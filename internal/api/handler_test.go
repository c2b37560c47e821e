package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/akfldk1028/chatnote/internal/intent"
	"github.com/akfldk1028/chatnote/internal/kakao"
	"github.com/akfldk1028/chatnote/internal/memo"
	"github.com/akfldk1028/chatnote/internal/reminder"
	"github.com/akfldk1028/chatnote/internal/store"
)

type fakeService struct {
	memos      []*store.Memo
	saveResult *memo.SaveResult
	stats      *store.Stats
	reminders  []*store.Memo
	deleteErr  error
	detail     *store.Memo
	tokens     map[string]string
	saves      int
}

func (f *fakeService) GetOrCreateUser(_ context.Context, kakaoID string) (*store.User, error) {
	return &store.User{ID: "uid-1", KakaoID: kakaoID}, nil
}

func (f *fakeService) SetUserAccessToken(_ context.Context, kakaoID, accessToken string) (*store.User, error) {
	if f.tokens == nil {
		f.tokens = map[string]string{}
	}
	f.tokens[kakaoID] = accessToken
	return &store.User{ID: "user-1", KakaoID: kakaoID, AccessToken: accessToken}, nil
}

func (f *fakeService) Save(context.Context, string, string) (*memo.SaveResult, error) {
	f.saves++
	if f.saveResult == nil {
		return &memo.SaveResult{Category: "기타", Summary: "기본 요약"}, nil
	}
	return f.saveResult, nil
}

func (f *fakeService) Search(context.Context, string, string) ([]*store.Memo, error) {
	return f.memos, nil
}

func (f *fakeService) Summary(_ context.Context, _, period, category string) (*memo.SummaryResult, error) {
	name := category
	if name == "" {
		name = "오늘"
	}
	byCategory := map[string][]*store.Memo{}
	for _, m := range f.memos {
		byCategory[m.Category] = append(byCategory[m.Category], m)
	}
	return &memo.SummaryResult{Memos: f.memos, PeriodName: name, ByCategory: byCategory}, nil
}

func (f *fakeService) Stats(context.Context, string) (*store.Stats, error) {
	if f.stats == nil {
		return &store.Stats{ByCategory: map[string]int64{}}, nil
	}
	return f.stats, nil
}

func (f *fakeService) TopCategories(context.Context, string, int) ([]string, error) {
	return []string{"영상", "맛집"}, nil
}

func (f *fakeService) Delete(_ context.Context, _, memoID, keyword string) (*store.Memo, error) {
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	return &store.Memo{ID: memoID, Summary: "삭제된 메모"}, nil
}

func (f *fakeService) Reminders(context.Context, string) ([]*store.Memo, error) {
	return f.reminders, nil
}

func (f *fakeService) Detail(context.Context, string, string, string) (*store.Memo, error) {
	if f.detail == nil {
		return nil, memo.ErrNotFound
	}
	return f.detail, nil
}

type fakeClassifier struct {
	result *intent.Classified
}

func (f *fakeClassifier) Classify(_ context.Context, message string) *intent.Classified {
	if f.result != nil {
		return f.result
	}
	if r := intent.FastRuleClassify(message); r != nil {
		return r
	}
	return &intent.Classified{Intent: intent.IntentSave, Confidence: 1.0}
}

type fakeDispatcher struct {
	result *reminder.Result
	err    error
}

func (f *fakeDispatcher) RunOnce(context.Context) (*reminder.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeMCP struct {
	rpcCalls  int
	seedCalls int
}

func (f *fakeMCP) HandleRPC(w http.ResponseWriter, r *http.Request) {
	f.rpcCalls++
	w.Write([]byte(`{"jsonrpc":"2.0","result":{},"id":1}`))
}

func (f *fakeMCP) HandleSeed(w http.ResponseWriter, r *http.Request) {
	f.seedCalls++
	w.Write([]byte(`{"status":"ok"}`))
}

type fakeOAuth struct {
	token       *kakao.Token
	info        *kakao.UserInfo
	exchangeErr error
	lastCode    string
}

func (f *fakeOAuth) ExchangeCode(_ context.Context, code string) (*kakao.Token, error) {
	f.lastCode = code
	if f.exchangeErr != nil {
		return nil, f.exchangeErr
	}
	return f.token, nil
}

func (f *fakeOAuth) UserInfo(context.Context, string) (*kakao.UserInfo, error) {
	return f.info, nil
}

func newTestHandler(svc *fakeService, cls *fakeClassifier, d *fakeDispatcher) *Handler {
	if cls == nil {
		cls = &fakeClassifier{}
	}
	if d == nil {
		d = &fakeDispatcher{result: &reminder.Result{}}
	}
	return NewHandler(svc, cls, d, &fakeMCP{}, &fakeOAuth{}, zap.NewNop())
}

func postSkill(t *testing.T, h *Handler, utterance string) *kakao.Response {
	t.Helper()
	body, _ := json.Marshal(map[string]interface{}{
		"userRequest": map[string]interface{}{
			"user":      map[string]string{"id": "kakao-1"},
			"utterance": utterance,
		},
	})
	req := httptest.NewRequest(http.MethodPost, "/skill", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp kakao.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	return &resp
}

func simpleText(t *testing.T, resp *kakao.Response) string {
	t.Helper()
	if len(resp.Template.Outputs) != 1 || resp.Template.Outputs[0].SimpleText == nil {
		t.Fatalf("expected simpleText, got %+v", resp.Template.Outputs)
	}
	return resp.Template.Outputs[0].SimpleText.Text
}

func TestSkillSaveTextMemo(t *testing.T) {
	svc := &fakeService{saveResult: &memo.SaveResult{Category: "맛집", Summary: "파스타집"}}
	resp := postSkill(t, newTestHandler(svc, nil, nil), "맛있는 파스타집 발견")

	text := simpleText(t, resp)
	if !strings.Contains(text, "저장 완료 · 맛집") || !strings.Contains(text, "파스타집") {
		t.Errorf("text = %q", text)
	}
	// 개인화 퀵리플라이에 상위 카테고리가 들어간다
	labels := make([]string, 0)
	for _, qr := range resp.Template.QuickReplies {
		labels = append(labels, qr.Label)
	}
	if !strings.Contains(strings.Join(labels, ","), "영상") {
		t.Errorf("quick replies = %v", labels)
	}
}

func TestSkillSaveLinkReturnsBasicCard(t *testing.T) {
	svc := &fakeService{saveResult: &memo.SaveResult{
		Category: "영상",
		Summary:  "고양이 영상",
		URL:      "https://youtube.com/watch?v=abc",
	}}
	resp := postSkill(t, newTestHandler(svc, nil, nil), "https://youtube.com/watch?v=abc")

	card := resp.Template.Outputs[0].BasicCard
	if card == nil {
		t.Fatalf("expected basicCard, got %+v", resp.Template.Outputs)
	}
	if len(card.Buttons) != 1 || card.Buttons[0].WebLinkURL != "https://youtube.com/watch?v=abc" {
		t.Errorf("buttons = %+v", card.Buttons)
	}
}

func TestSkillSaveWithReminderNote(t *testing.T) {
	at := time.Now().Add(24 * time.Hour)
	svc := &fakeService{saveResult: &memo.SaveResult{
		Category:   "할일",
		Summary:    "병원 (내일 오후 3시)",
		ReminderAt: &at,
	}}
	text := simpleText(t, postSkill(t, newTestHandler(svc, nil, nil), "내일 3시 병원"))
	if !strings.Contains(text, "리마인더 설정됨") {
		t.Errorf("text = %q", text)
	}
}

func TestSkillSummary(t *testing.T) {
	svc := &fakeService{memos: []*store.Memo{
		{Summary: "첫번째 메모", Category: "기타", CreatedAt: time.Now()},
		{Summary: "두번째 메모", Category: "기타", CreatedAt: time.Now(), URL: "https://example.com"},
	}}
	text := simpleText(t, postSkill(t, newTestHandler(svc, nil, nil), "오늘 정리"))

	if !strings.Contains(text, "오늘 · 2/2") {
		t.Errorf("header missing: %q", text)
	}
	if !strings.Contains(text, "첫번째 메모") || !strings.Contains(text, "https://example.com") {
		t.Errorf("text = %q", text)
	}
}

func TestSkillSummaryOffersShowAll(t *testing.T) {
	var memos []*store.Memo
	for i := 0; i < 15; i++ {
		memos = append(memos, &store.Memo{Summary: fmt.Sprintf("메모 %d", i), Category: "기타", CreatedAt: time.Now()})
	}
	svc := &fakeService{memos: memos}
	resp := postSkill(t, newTestHandler(svc, nil, nil), "오늘 정리")

	text := simpleText(t, resp)
	if !strings.Contains(text, "오늘 · 10/15") {
		t.Errorf("header = %q", text)
	}

	last := resp.Template.QuickReplies[len(resp.Template.QuickReplies)-1]
	if last.MessageText != "전체보기 today" {
		t.Errorf("show-all reply = %+v", last)
	}
}

func TestSkillSummaryEmpty(t *testing.T) {
	text := simpleText(t, postSkill(t, newTestHandler(&fakeService{}, nil, nil), "오늘 정리"))
	if !strings.Contains(text, "저장된 메모가 없습니다") {
		t.Errorf("text = %q", text)
	}
}

func TestSkillSearch(t *testing.T) {
	svc := &fakeService{memos: []*store.Memo{{Summary: "유튜브 강의", Category: "학습"}}}
	text := simpleText(t, postSkill(t, newTestHandler(svc, nil, nil), "검색 유튜브"))
	if !strings.Contains(text, "검색 '유튜브' · 1건") {
		t.Errorf("text = %q", text)
	}
}

func TestSkillSearchDateKeywordBecomesSummary(t *testing.T) {
	svc := &fakeService{memos: []*store.Memo{{Summary: "오늘의 메모", Category: "기타", CreatedAt: time.Now()}}}
	text := simpleText(t, postSkill(t, newTestHandler(svc, nil, nil), "검색 오늘"))
	if !strings.Contains(text, "오늘 · 1/1") {
		t.Errorf("date keyword should route to summary: %q", text)
	}
}

func TestSkillDelete(t *testing.T) {
	text := simpleText(t, postSkill(t, newTestHandler(&fakeService{}, nil, nil), "삭제 유튜브"))
	if !strings.Contains(text, "삭제 완료") {
		t.Errorf("text = %q", text)
	}
}

func TestSkillDeleteNotFound(t *testing.T) {
	svc := &fakeService{deleteErr: memo.ErrNotFound}
	text := simpleText(t, postSkill(t, newTestHandler(svc, nil, nil), "삭제 없는메모"))
	if !strings.Contains(text, "관련 메모가 없습니다") {
		t.Errorf("text = %q", text)
	}
}

func TestSkillReminders(t *testing.T) {
	at := time.Now().Add(2 * time.Hour)
	svc := &fakeService{reminders: []*store.Memo{{Summary: "치과 예약", ReminderAt: &at}}}
	text := simpleText(t, postSkill(t, newTestHandler(svc, nil, nil), "리마인더"))
	if !strings.Contains(text, "리마인더 · 1건") || !strings.Contains(text, "치과 예약") {
		t.Errorf("text = %q", text)
	}
}

func TestSkillStats(t *testing.T) {
	svc := &fakeService{stats: &store.Stats{
		Total: 10, Today: 2, Week: 5, Month: 8,
		ByCategory: map[string]int64{"영상": 6, "맛집": 4},
	}}
	text := simpleText(t, postSkill(t, newTestHandler(svc, nil, nil), "통계"))
	if !strings.Contains(text, "통계 · 전체 10건") {
		t.Errorf("text = %q", text)
	}
	// 빈도순 정렬
	if strings.Index(text, "영상 6") > strings.Index(text, "맛집 4") {
		t.Errorf("categories not sorted by count: %q", text)
	}
}

func TestSkillHelp(t *testing.T) {
	text := simpleText(t, postSkill(t, newTestHandler(&fakeService{}, nil, nil), "도움말"))
	if !strings.Contains(text, "챗노트 사용법") {
		t.Errorf("text = %q", text)
	}
}

func TestSkillDetail(t *testing.T) {
	svc := &fakeService{detail: &store.Memo{
		ID:       "a448275d-1234-5678-9abc-def012345678",
		Category: "학습",
		Summary:  "Go 강의 정리",
		URL:      "https://example.com/go",
	}}
	resp := postSkill(t, newTestHandler(svc, nil, nil), "#a448275d")

	card := resp.Template.Outputs[0].BasicCard
	if card == nil {
		t.Fatalf("expected basicCard, got %+v", resp.Template.Outputs)
	}
	foundDelete := false
	for _, b := range card.Buttons {
		if b.Label == "삭제" && strings.HasPrefix(b.MessageText, "삭제 a448275d-") {
			foundDelete = true
		}
	}
	if !foundDelete {
		t.Errorf("buttons = %+v", card.Buttons)
	}
}

func TestSkillLowConfidenceAsksUser(t *testing.T) {
	cls := &fakeClassifier{result: &intent.Classified{Intent: intent.IntentSearch, Confidence: 0.4, Keyword: "뭔가"}}
	resp := postSkill(t, newTestHandler(&fakeService{}, cls, nil), "뭔가 애매한 말")

	text := simpleText(t, resp)
	if !strings.Contains(text, "어떻게 처리할까요") {
		t.Errorf("text = %q", text)
	}
	if len(resp.Template.QuickReplies) != 4 {
		t.Errorf("quick replies = %+v", resp.Template.QuickReplies)
	}
}

func TestSkillLowConfidenceSaveStillSaves(t *testing.T) {
	cls := &fakeClassifier{result: &intent.Classified{Intent: intent.IntentSave, Confidence: 0.5}}
	svc := &fakeService{saveResult: &memo.SaveResult{Category: "기타", Summary: "그냥 저장"}}
	text := simpleText(t, postSkill(t, newTestHandler(svc, cls, nil), "애매한 문장"))
	if !strings.Contains(text, "저장 완료") {
		t.Errorf("low-confidence save must not ask: %q", text)
	}
}

func TestSkillMalformedBody(t *testing.T) {
	h := newTestHandler(&fakeService{}, nil, nil)
	req := httptest.NewRequest(http.MethodPost, "/skill", strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, skill errors must stay 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "오류가 발생했습니다") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestCronEndpoint(t *testing.T) {
	d := &fakeDispatcher{result: &reminder.Result{Processed: 3, Sent: 2, Errors: []string{"kakao: m9: no token"}}}
	h := newTestHandler(&fakeService{}, nil, d)

	req := httptest.NewRequest(http.MethodGet, "/api/cron/reminders", nil)
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if body["ok"] != true || body["sent"] != float64(2) {
		t.Errorf("body = %v", body)
	}
	if body["errors"] == nil {
		t.Error("errors should be reported")
	}
}

func TestCronEndpointEmpty(t *testing.T) {
	h := newTestHandler(&fakeService{}, nil, &fakeDispatcher{result: &reminder.Result{}})

	req := httptest.NewRequest(http.MethodGet, "/api/cron/reminders", nil)
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)

	if !strings.Contains(rec.Body.String(), "No pending reminders") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestHealthEndpoint(t *testing.T) {
	h := newTestHandler(&fakeService{}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestErrorIntentShowsMessage(t *testing.T) {
	cls := &fakeClassifier{result: &intent.Classified{
		Intent:     intent.IntentError,
		Confidence: 1.0,
		Reasoning:  "API 키가 설정되지 않았습니다.",
	}}
	svc := &fakeService{}
	h := newTestHandler(svc, cls, nil)

	resp := postSkill(t, h, "아무 메모")
	if got := simpleText(t, resp); !strings.Contains(got, "API 키가 설정되지 않았습니다.") {
		t.Errorf("text = %q", got)
	}
	if svc.saves != 0 {
		t.Error("error intent must not save")
	}
}

func TestErrorIntentDefaultMessage(t *testing.T) {
	cls := &fakeClassifier{result: &intent.Classified{Intent: intent.IntentError, Confidence: 1.0}}
	h := newTestHandler(&fakeService{}, cls, nil)

	resp := postSkill(t, h, "아무 메모")
	if got := simpleText(t, resp); !strings.Contains(got, "설정 오류가 발생했습니다.") {
		t.Errorf("text = %q", got)
	}
}

func TestOAuthCallback(t *testing.T) {
	oauth := &fakeOAuth{
		token: &kakao.Token{AccessToken: "tok-123"},
		info:  &kakao.UserInfo{ID: 99887766},
	}
	svc := &fakeService{}
	h := NewHandler(svc, &fakeClassifier{}, &fakeDispatcher{}, &fakeMCP{}, oauth, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/auth/kakao/callback?code=auth-code", nil)
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if oauth.lastCode != "auth-code" {
		t.Errorf("code = %q", oauth.lastCode)
	}
	if svc.tokens["99887766"] != "tok-123" {
		t.Errorf("tokens = %v", svc.tokens)
	}
	if !strings.Contains(rec.Body.String(), "연동이 완료") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestOAuthCallbackMissingCode(t *testing.T) {
	h := newTestHandler(&fakeService{}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/auth/kakao/callback", nil)
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestOAuthCallbackExchangeFailure(t *testing.T) {
	oauth := &fakeOAuth{exchangeErr: fmt.Errorf("invalid_grant")}
	h := NewHandler(&fakeService{}, &fakeClassifier{}, &fakeDispatcher{}, &fakeMCP{}, oauth, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/auth/kakao/callback?code=bad", nil)
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestMCPRoutes(t *testing.T) {
	mcpSrv := &fakeMCP{}
	h := NewHandler(&fakeService{}, &fakeClassifier{}, &fakeDispatcher{}, mcpSrv, &fakeOAuth{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || mcpSrv.rpcCalls != 1 {
		t.Fatalf("status = %d, rpc calls = %d", rec.Code, mcpSrv.rpcCalls)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/seed", nil)
	rec = httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || mcpSrv.seedCalls != 1 {
		t.Fatalf("status = %d, seed calls = %d", rec.Code, mcpSrv.seedCalls)
	}
}
