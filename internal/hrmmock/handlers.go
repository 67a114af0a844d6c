package hrmmock

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const loginHTML = `<!DOCTYPE html>
<html>
<head><title>Login</title></head>
<body>
<form method="post" action="%s">
  <input name="username" placeholder="Username">
  <input name="password" type="password" placeholder="Password">
  <button type="submit">Login</button>
</form>
%s
</body>
</html>
`

func (s *Server) loginPage(w http.ResponseWriter, r *http.Request) {
	msg := ""
	if r.URL.Query().Get("error") != "" {
		msg = `<p class="error">Invalid credentials</p>`
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = fmt.Fprintf(w, loginHTML, ValidatePath, msg)
}

func (s *Server) validate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, LoginPath+"?error=1", http.StatusFound)
		return
	}
	if r.PostForm.Get("username") != s.opts.Username || r.PostForm.Get("password") != s.opts.Password {
		s.log.Info("login rejected", zap.String("username", r.PostForm.Get("username")))
		http.Redirect(w, r, LoginPath+"?error=1", http.StatusFound)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.opts.CookieName,
		Value:    s.IssueSession(),
		Path:     "/",
		HttpOnly: true,
	})
	http.Redirect(w, r, DashboardPath, http.StatusFound)
}

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.validSession(r); !ok {
		http.Redirect(w, r, LoginPath, http.StatusFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, "<!DOCTYPE html><html><head><title>Dashboard</title></head><body>Dashboard</body></html>")
}

// requireSession rejects API calls without a valid session cookie and
// records the rest.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(body))

		cookie, ok := s.validSession(r)
		s.mu.Lock()
		s.requests = append(s.requests, Request{Method: r.Method, Path: r.URL.Path, Cookie: cookie, Body: string(body)})
		s.mu.Unlock()

		if !ok {
			writeError(w, http.StatusUnauthorized, "Session expired")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) list(items []map[string]any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"data": items,
			"meta": map[string]any{"total": len(items)},
			"rels": []any{},
		})
	}
}

func decodeObject(r *http.Request) (map[string]any, error) {
	var in map[string]any
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&in); err != nil {
		return nil, err
	}
	if in == nil {
		return nil, fmt.Errorf("body is not an object")
	}
	return in, nil
}

func record(data map[string]any) map[string]any {
	return map[string]any{"data": data, "meta": []any{}, "rels": []any{}}
}

func (s *Server) putLDAP(w http.ResponseWriter, r *http.Request) {
	in, err := decodeObject(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Invalid Parameter: "+err.Error())
		return
	}
	s.mu.Lock()
	for _, k := range ldapKeys {
		if v, ok := in[k]; ok {
			s.ldap[k] = v
		}
	}
	if v, ok := in["bindUserPassword"]; ok {
		s.ldap["hasBindUserPassword"] = v != nil
	}
	out := clone(s.ldap)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, record(out))
}

func (s *Server) putOptional(w http.ResponseWriter, r *http.Request) {
	in, err := decodeObject(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Invalid Parameter: "+err.Error())
		return
	}
	s.mu.Lock()
	for k := range s.optional {
		b, ok := in[k].(bool)
		if !ok {
			s.mu.Unlock()
			writeError(w, http.StatusUnprocessableEntity, "Invalid Parameter: "+k)
			return
		}
		s.optional[k] = b
	}
	out := clone(s.optional)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, record(out))
}

func (s *Server) postCustomField(w http.ResponseWriter, r *http.Request) {
	in, err := decodeObject(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Invalid Parameter: "+err.Error())
		return
	}
	s.mu.Lock()
	id := s.nextFieldID
	s.nextFieldID++
	f := customField(id, in)
	s.customFields[id] = f
	out := clone(f)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, record(out))
}

func (s *Server) putCustomField(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Record Not Found")
		return
	}
	in, err := decodeObject(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Invalid Parameter: "+err.Error())
		return
	}
	s.mu.Lock()
	if _, ok := s.customFields[id]; !ok {
		s.mu.Unlock()
		writeError(w, http.StatusNotFound, "Record Not Found")
		return
	}
	f := customField(id, in)
	s.customFields[id] = f
	out := clone(f)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, record(out))
}

func customField(id int, in map[string]any) map[string]any {
	return map[string]any{
		"id":        id,
		"fieldName": in["fieldName"],
		"fieldType": in["fieldType"],
		"extraData": in["extraData"],
		"screen":    in["screen"],
	}
}

func clone(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
