package kakao

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func newOAuthTestClient(tokenURL, userURL, memoURL string) *Client {
	c := NewClient("client-id", "client-secret", "https://chatnote.example/auth/kakao/callback", zap.NewNop())
	if tokenURL != "" {
		c.tokenURL = tokenURL
	}
	if userURL != "" {
		c.userURL = userURL
	}
	if memoURL != "" {
		c.memoURL = memoURL
	}
	return c
}

func TestExchangeCode(t *testing.T) {
	var form map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		form = map[string]string{
			"grant_type":   r.PostFormValue("grant_type"),
			"client_id":    r.PostFormValue("client_id"),
			"redirect_uri": r.PostFormValue("redirect_uri"),
			"code":         r.PostFormValue("code"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"at-1","refresh_token":"rt-1","token_type":"bearer","expires_in":21599}`))
	}))
	defer srv.Close()

	c := newOAuthTestClient(srv.URL, "", "")
	token, err := c.ExchangeCode(context.Background(), "auth-code-1")
	if err != nil {
		t.Fatalf("ExchangeCode: %v", err)
	}
	if token.AccessToken != "at-1" || token.RefreshToken != "rt-1" {
		t.Errorf("token = %+v", token)
	}
	if form["grant_type"] != "authorization_code" {
		t.Errorf("grant_type = %q", form["grant_type"])
	}
	if form["client_id"] != "client-id" || form["code"] != "auth-code-1" {
		t.Errorf("form = %v", form)
	}
	if form["redirect_uri"] != "https://chatnote.example/auth/kakao/callback" {
		t.Errorf("redirect_uri = %q", form["redirect_uri"])
	}
}

func TestExchangeCodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid_grant","error_description":"authorization code not found"}`))
	}))
	defer srv.Close()

	c := newOAuthTestClient(srv.URL, "", "")
	if _, err := c.ExchangeCode(context.Background(), "expired"); err == nil {
		t.Fatal("expected error for invalid_grant")
	}
}

func TestRefreshToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		if r.PostFormValue("grant_type") != "refresh_token" {
			t.Errorf("grant_type = %q", r.PostFormValue("grant_type"))
		}
		if r.PostFormValue("refresh_token") != "rt-old" {
			t.Errorf("refresh_token = %q", r.PostFormValue("refresh_token"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"at-2","token_type":"bearer","expires_in":21599}`))
	}))
	defer srv.Close()

	c := newOAuthTestClient(srv.URL, "", "")
	token, err := c.RefreshToken(context.Background(), "rt-old")
	if err != nil {
		t.Fatalf("RefreshToken: %v", err)
	}
	if token.AccessToken != "at-2" {
		t.Errorf("access token = %q", token.AccessToken)
	}
}

func TestUserInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer at-1" {
			t.Errorf("auth = %q", r.Header.Get("Authorization"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":12345678,"connected_at":"2024-03-01T00:00:00Z"}`))
	}))
	defer srv.Close()

	c := newOAuthTestClient("", srv.URL, "")
	info, err := c.UserInfo(context.Background(), "at-1")
	if err != nil {
		t.Fatalf("UserInfo: %v", err)
	}
	if info.ID != 12345678 {
		t.Errorf("id = %d", info.ID)
	}
}

func TestSendToMe(t *testing.T) {
	var templateObject string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer at-1" {
			t.Errorf("auth = %q", r.Header.Get("Authorization"))
		}
		r.ParseForm()
		templateObject = r.PostFormValue("template_object")
		w.Write([]byte(`{"result_code":0}`))
	}))
	defer srv.Close()

	c := newOAuthTestClient("", "", srv.URL)
	if err := c.SendToMe(context.Background(), "at-1", "⏰ 리마인더", ""); err != nil {
		t.Fatalf("SendToMe: %v", err)
	}
	for _, want := range []string{`"object_type":"text"`, "리마인더", defaultLinkURL} {
		if !strings.Contains(templateObject, want) {
			t.Errorf("template missing %q: %s", want, templateObject)
		}
	}
}

func TestSendToMeNoToken(t *testing.T) {
	c := newOAuthTestClient("", "", "")
	if err := c.SendToMe(context.Background(), "", "msg", ""); err == nil {
		t.Fatal("expected error without access token")
	}
}
