// Package hrmmock is an in-memory fake of the HR application: a login form
// that issues the session cookie and the REST endpoints the suite calls.
package hrmmock

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultUsername   = "Admin"
	DefaultPassword   = "admin123"
	DefaultCookieName = "orangehrm"

	LoginPath     = "/web/index.php/auth/login"
	ValidatePath  = "/web/index.php/auth/validate"
	DashboardPath = "/web/index.php/dashboard/index"
	APIPrefix     = "/web/index.php/api/v2"
)

type Options struct {
	Username   string
	Password   string
	CookieName string
	Log        *zap.Logger
}

// Server holds the fake application state. It is safe for concurrent use.
type Server struct {
	opts Options
	log  *zap.Logger

	mu           sync.Mutex
	sessions     map[string]bool
	ldap         map[string]any
	optional     map[string]any
	customFields map[int]map[string]any
	nextFieldID  int
	requests     []Request
}

// Request is a recorded API call.
type Request struct {
	Method string
	Path   string
	Cookie string
	Body   string
}

func New(opts Options) *Server {
	if opts.Username == "" {
		opts.Username = DefaultUsername
	}
	if opts.Password == "" {
		opts.Password = DefaultPassword
	}
	if opts.CookieName == "" {
		opts.CookieName = DefaultCookieName
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		opts:     opts,
		log:      log,
		sessions: map[string]bool{},
		ldap:     defaultLDAP(),
		optional: map[string]any{
			"pimShowDeprecatedFields": false,
			"showSIN":                 false,
			"showSSN":                 false,
			"showTaxExemptions":       false,
		},
		customFields: map[int]map[string]any{
			1: {"id": 1, "fieldName": "Blood Type", "fieldType": 1, "extraData": "A,B,AB,O", "screen": "personal"},
		},
		nextFieldID: 2,
	}
	return s
}

// Handler returns the routes of the fake application.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get(LoginPath, s.loginPage)
	r.Post(ValidatePath, s.validate)
	r.Get(DashboardPath, s.dashboard)

	r.Route(APIPrefix, func(r chi.Router) {
		r.Use(s.requireSession)

		r.Get("/admin/employment-statuses", s.list(employmentStatuses))
		r.Get("/admin/job-titles", s.list(jobTitles))
		r.Get("/admin/subunits", s.list(subunits))
		r.Get("/pim/employees", s.list(employees))
		r.Get("/pim/reports/defined", s.list(reports))
		r.Get("/leave/leave-types/eligible", s.list(leaveTypes))

		r.Put("/admin/ldap-config", s.putLDAP)
		r.Put("/pim/optional-field", s.putOptional)
		r.Post("/pim/custom-fields", s.postCustomField)
		r.Put("/pim/custom-fields/{id}", s.putCustomField)
	})
	return r
}

// IssueSession creates a valid session cookie value without the login form.
func (s *Server) IssueSession() string {
	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = true
	s.mu.Unlock()
	return id
}

// CookieName is the name of the session cookie.
func (s *Server) CookieName() string { return s.opts.CookieName }

// Requests returns the API calls seen so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// CustomField returns the stored custom field with id.
func (s *Server) CustomField(id int) (map[string]any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.customFields[id]
	return f, ok
}

func (s *Server) validSession(r *http.Request) (string, bool) {
	c, err := r.Cookie(s.opts.CookieName)
	if err != nil {
		return "", false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.Value, s.sessions[c.Value]
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]any{"status": http.StatusText(status), "message": msg},
	})
}
