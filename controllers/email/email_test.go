package emailControllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// recordingSender captures outgoing mail instead of dialing SMTP.
type recordingSender struct {
	sent []string
	fail bool
}

func (s *recordingSender) Send(to, subject, htmlBody string) error {
	if s.fail {
		return errors.New("smtp unavailable")
	}
	s.sent = append(s.sent, to)
	return nil
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSendTestEmail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mailer := &recordingSender{}
	r := gin.New()
	r.POST("/admin/email/test", SendTestEmail(mailer))

	w := doJSON(r, http.MethodPost, "/admin/email/test", gin.H{"to": "ops@example.com"})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, []string{"ops@example.com"}, mailer.sent)

	w = doJSON(r, http.MethodPost, "/admin/email/test", gin.H{"to": "not-an-address"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	mailer.fail = true
	w = doJSON(r, http.MethodPost, "/admin/email/test", gin.H{"to": "ops@example.com"})
	require.Equal(t, http.StatusInternalServerError, w.Code)
}
