package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/rfid-attendance-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	CheckinLimiter *middleware.RateLimiter
}

type Handlers struct {
	Auth     AuthHandler
	Employee EmployeeHandler
	WorkHour WorkHourHandler
	Room     RoomHandler
	RFID     RFIDHandler
	Checkin  CheckinHandler
	DayOff   DayOffHandler
	Payroll  PayrollHandler
}

func NewRouter(JWTService jwt.Service, h Handlers, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	if opts.Logger != nil {
		r.Use(httplog.RequestLogger(opts.Logger, &httplog.Options{
			Level:  slog.LevelDebug,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, map[string]string{"status": "ok"})
	})

	checkinLimiter := opts.CheckinLimiter
	if checkinLimiter == nil {
		checkinLimiter = middleware.NewRateLimiter(5, 10)
	}

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
		})

		// Readers authenticate by card and machine id, not by token.
		r.With(checkinLimiter.Handler).Post("/checkins", h.Checkin.Record)

		// EventSource cannot set headers, so the stream also accepts ?jwt=.
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verify(JWTService.JWTAuth(), jwtauth.TokenFromHeader, jwtauth.TokenFromQuery))
			r.Use(middleware.AuthRequired)
			r.Use(middleware.RequireManager)
			r.Get("/checkins/stream", h.Checkin.Stream)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Get("/checkins", h.Checkin.List)

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", h.Employee.ListEmployees)
				r.With(middleware.RequireManager).Post("/", h.Employee.CreateEmployee)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Employee.GetEmployee)
					r.Get("/work-days", h.WorkHour.GetWorkDays)
					r.Get("/work-days/export", h.WorkHour.ExportWorkDays)

					// Manager only
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireManager)
						r.Put("/", h.Employee.UpdateEmployee)
						r.Delete("/", h.Employee.DeleteEmployee)
						r.Put("/rooms", h.Employee.ReplaceRooms)
						r.Post("/salary-email", h.Payroll.SendSalaryEmail)
					})
				})
			})

			r.Route("/rooms", func(r chi.Router) {
				r.Get("/", h.Room.ListRooms)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/", h.Room.CreateRoom)
					r.Delete("/{id}", h.Room.DeleteRoom)
					r.Put("/{id}/employees", h.Room.ReplaceEmployees)
					r.Put("/{id}/machines", h.Room.ReplaceMachines)
				})
			})

			r.Route("/machines", func(r chi.Router) {
				r.Get("/", h.RFID.ListMachines)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/", h.RFID.CreateMachine)
					r.Delete("/{id}", h.RFID.DeleteMachine)
				})
			})

			r.Route("/cards", func(r chi.Router) {
				r.Get("/", h.RFID.ListCards)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/", h.RFID.CreateCard)
					r.Put("/{id}/employee", h.RFID.AssignCard)
					r.Delete("/{id}", h.RFID.DeleteCard)
				})
			})

			r.Route("/days-off", func(r chi.Router) {
				r.Get("/", h.DayOff.ListDaysOff)
				r.Post("/", h.DayOff.RequestDayOff)
				r.Get("/{id}", h.DayOff.GetDayOff)
				r.Put("/{id}", h.DayOff.UpdateDayOff)
				r.Delete("/{id}", h.DayOff.DeleteDayOff)
				r.With(middleware.RequireManager).Post("/{id}/approve", h.DayOff.ApproveDayOff)
			})

			r.With(middleware.RequireManager).Post("/payroll/salary-emails", h.Payroll.SendSalaryEmails)
		})
	})
	return r
}
