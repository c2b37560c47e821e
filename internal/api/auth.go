package api

import (
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

// handleOAuthCallback finishes the Kakao OAuth dance: the code from the
// consent redirect becomes a token, the token's owner becomes our user,
// and the token is stored so 나에게 보내기 reminders can reach them.
func (h *Handler) handleOAuthCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "missing code parameter", http.StatusBadRequest)
		return
	}

	token, err := h.oauth.ExchangeCode(ctx, code)
	if err != nil {
		h.logger.Error("token exchange failed", zap.Error(err))
		http.Error(w, "카카오 인증에 실패했습니다. 다시 시도해주세요.", http.StatusBadGateway)
		return
	}

	info, err := h.oauth.UserInfo(ctx, token.AccessToken)
	if err != nil {
		h.logger.Error("user info lookup failed", zap.Error(err))
		http.Error(w, "카카오 인증에 실패했습니다. 다시 시도해주세요.", http.StatusBadGateway)
		return
	}

	kakaoID := strconv.FormatInt(info.ID, 10)
	user, err := h.svc.SetUserAccessToken(ctx, kakaoID, token.AccessToken)
	if err != nil {
		h.logger.Error("store access token failed", zap.Error(err))
		http.Error(w, "오류가 발생했습니다. 다시 시도해주세요.", http.StatusInternalServerError)
		return
	}

	h.logger.Info("kakao account linked", zap.String("user_id", user.ID))
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "카카오 연동이 완료되었습니다. 이제 리마인더를 카카오톡으로 받을 수 있습니다.")
}
