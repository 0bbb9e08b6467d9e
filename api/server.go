/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the dashboard frontend

ROUTE GROUPS:
  /api/employees/*      Directory, per-employee attendance/payments/vacations
  /api/attendance/*     Attendance log and daily stats
  /api/payments/*       Payments and monthly summary
  /api/vacations/*      Leave requests and approvals
  /api/dashboard        Overview KPIs
  /api/reports/*        Report export
  /api/settings/*       Company work schedule
  /api/admin/*          Admin operations
  /api/scenarios/*      Demo scenarios
  /*                    Static files (frontend)

STATIC FILE SERVING:
  Serves the built dashboard from web/dist/ when present.
  Falls back to index.html for client-side routing.

SECURITY NOTE:
  No authentication middleware. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// DefaultAllowedOrigins are the local dev servers of the dashboard.
var DefaultAllowedOrigins = []string{"http://localhost:5173", "http://localhost:8080"}

// NewRouter creates a new router with all routes configured. A nil or empty
// allowedOrigins uses DefaultAllowedOrigins.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	if len(allowedOrigins) == 0 {
		allowedOrigins = DefaultAllowedOrigins
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Employee routes
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.ListEmployees)
			r.Post("/", h.CreateEmployee)
			r.Get("/{id}", h.GetEmployee)
			r.Put("/{id}", h.UpdateEmployee)
			r.Post("/{id}/deactivate", h.DeactivateEmployee)
			r.Post("/{id}/activate", h.ActivateEmployee)
			r.Put("/{id}/settings", h.UpdateEmployeeSettings)
			r.Get("/{id}/attendance", h.ListEmployeeAttendance)
			r.Post("/{id}/attendance", h.RecordAttendance)
			r.Get("/{id}/payments", h.ListEmployeePayments)
			r.Post("/{id}/payments", h.RecordPayment)
			r.Get("/{id}/payroll-progress", h.GetPayrollProgress)
			r.Get("/{id}/vacations", h.ListEmployeeVacations)
			r.Post("/{id}/vacations", h.SubmitVacation)
			r.Get("/{id}/vacation-balance", h.GetVacationBalance)
		})

		// Attendance routes
		r.Route("/attendance", func(r chi.Router) {
			r.Get("/", h.ListAttendance)
			r.Get("/stats", h.GetAttendanceStats)
		})

		// Payment routes
		r.Route("/payments", func(r chi.Router) {
			r.Get("/", h.ListPayments)
			r.Get("/stats", h.GetPaymentStats)
			r.Post("/{id}/mark-paid", h.MarkPaymentPaid)
		})

		// Vacation routes
		r.Route("/vacations", func(r chi.Router) {
			r.Get("/", h.ListVacations)
			r.Get("/stats", h.GetVacationStats)
			r.Post("/{id}/approve", h.ApproveVacation)
			r.Post("/{id}/reject", h.RejectVacation)
		})

		r.Get("/dashboard", h.GetDashboard)

		// Report routes
		r.Route("/reports", func(r chi.Router) {
			r.Get("/", h.ListReports)
			r.Get("/{type}", h.ExportReport)
		})

		// Settings routes
		r.Route("/settings", func(r chi.Router) {
			r.Get("/work", h.GetWorkSchedule)
			r.Put("/work", h.UpdateWorkSchedule)
		})

		// Admin routes
		r.Route("/admin", func(r chi.Router) {
			r.Post("/auto-attendance", h.RunAutoAttendance)
		})

		// Scenario routes
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Get("/current", h.GetCurrentScenario)
			r.Post("/load", h.LoadScenario)
			r.Post("/reset", h.ResetDatabase)
		})
	})

	// Serve static files (dashboard build)
	// First try ./web/dist (development), then next to the executable
	staticDir := "./web/dist"
	if _, err := os.Stat(staticDir); os.IsNotExist(err) {
		exe, _ := os.Executable()
		staticDir = filepath.Join(filepath.Dir(exe), "web", "dist")
	}

	if _, err := os.Stat(staticDir); err == nil {
		fileServer := http.FileServer(http.Dir(staticDir))
		r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
			fullPath := filepath.Join(staticDir, filepath.Clean(r.URL.Path))
			if _, err := os.Stat(fullPath); os.IsNotExist(err) {
				// SPA routing: serve index.html
				http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
				return
			}
			fileServer.ServeHTTP(w, r)
		})
	} else {
		r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Workforce Engine</title></head>
<body style="font-family: system-ui; max-width: 800px; margin: 50px auto; padding: 20px;">
<h1>Workforce Engine API</h1>
<p>No dashboard build found in <code>web/dist</code>.</p>
<h2>API Endpoints</h2>
<ul>
<li><a href="/api/employees">/api/employees</a> - Employees</li>
<li><a href="/api/attendance">/api/attendance</a> - Attendance</li>
<li><a href="/api/payments">/api/payments</a> - Payments</li>
<li><a href="/api/vacations">/api/vacations</a> - Vacations</li>
<li><a href="/api/dashboard">/api/dashboard</a> - Dashboard</li>
<li><a href="/api/reports">/api/reports</a> - Reports</li>
<li><a href="/api/scenarios">/api/scenarios</a> - Demo scenarios</li>
</ul>
</body>
</html>`))
		})
	}

	return r
}
