package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"

	admindomain "github.com/monasabatlabs/monasabat/internal/admin/domain"
	"github.com/monasabatlabs/monasabat/internal/auth"
	bookingdomain "github.com/monasabatlabs/monasabat/internal/booking/domain"
	"github.com/monasabatlabs/monasabat/internal/config"
	contactdomain "github.com/monasabatlabs/monasabat/internal/contact/domain"
	eventitemdomain "github.com/monasabatlabs/monasabat/internal/eventitem/domain"
	joinrequestdomain "github.com/monasabatlabs/monasabat/internal/joinrequest/domain"
	"github.com/monasabatlabs/monasabat/internal/observability"
	otpdomain "github.com/monasabatlabs/monasabat/internal/otp/domain"
	supplierdomain "github.com/monasabatlabs/monasabat/internal/supplier/domain"
	subscriptiondomain "github.com/monasabatlabs/monasabat/internal/subscription/domain"
)

type Server struct {
	log     *zap.Logger
	cfg     config.Config
	auth    *auth.Manager
	metrics *observability.Metrics

	otpSvc          otpdomain.Service
	supplierSvc     supplierdomain.Service
	subscriptionSvc subscriptiondomain.Service
	eventItemSvc    eventitemdomain.Service
	bookingSvc      bookingdomain.Service
	contactSvc      contactdomain.Service
	joinRequestSvc  joinrequestdomain.Service
	adminSvc        admindomain.Service
}

type Param struct {
	fx.In

	Log     *zap.Logger
	Config  config.Config
	Auth    *auth.Manager
	Metrics *observability.Metrics

	OTP          otpdomain.Service
	Supplier     supplierdomain.Service
	Subscription subscriptiondomain.Service
	EventItem    eventitemdomain.Service
	Booking      bookingdomain.Service
	Contact      contactdomain.Service
	JoinRequest  joinrequestdomain.Service
	Admin        admindomain.Service
}

func New(p Param) *Server {
	return &Server{
		log:             p.Log.Named("server"),
		cfg:             p.Config,
		auth:            p.Auth,
		metrics:         p.Metrics,
		otpSvc:          p.OTP,
		supplierSvc:     p.Supplier,
		subscriptionSvc: p.Subscription,
		eventItemSvc:    p.EventItem,
		bookingSvc:      p.Booking,
		contactSvc:      p.Contact,
		joinRequestSvc:  p.JoinRequest,
		adminSvc:        p.Admin,
	}
}

func (s *Server) Router() *gin.Engine {
	if s.cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(
		s.metrics.Registry(), promhttp.HandlerOpts{})))

	v1 := r.Group("/api/v1")

	v1.POST("/auth/otp/send", s.SendOTP)
	v1.POST("/auth/otp/verify", s.VerifyOTP)

	v1.GET("/items", s.ListEventItems)
	v1.GET("/items/:id", s.GetEventItem)

	v1.POST("/join-requests", s.SubmitJoinRequest)

	authed := v1.Group("", s.auth.Middleware())
	{
		authed.GET("/me", s.Me)

		authed.POST("/items", auth.RequireRole(string(supplierdomain.RoleSupplier)), s.CreateEventItem)
		authed.PATCH("/items/:id", auth.RequireRole(string(supplierdomain.RoleSupplier)), s.UpdateEventItem)
		authed.DELETE("/items/:id", auth.RequireRole(string(supplierdomain.RoleSupplier)), s.DeleteEventItem)

		authed.POST("/bookings", s.CreateBooking)
		authed.GET("/bookings", s.ListMyBookings)
		authed.GET("/bookings/:id", s.GetBooking)
		authed.DELETE("/bookings/:id", s.CancelBooking)
		authed.PATCH("/bookings/:id/status",
			auth.RequireRole(string(supplierdomain.RoleSupplier)), s.UpdateBookingStatus)

		authed.POST("/contact-requests", s.SendContactRequest)
		authed.GET("/contact-requests", s.ListMyContactRequests)
		authed.GET("/contact-requests/status", s.ContactRequestStatus)
		authed.PATCH("/contact-requests/:id/status",
			auth.RequireRole(string(supplierdomain.RoleSupplier)), s.UpdateContactRequestStatus)

		supplier := authed.Group("/supplier", auth.RequireRole(string(supplierdomain.RoleSupplier)))
		{
			supplier.GET("/quota", s.QuotaStatus)
			supplier.GET("/bookings", s.ListSupplierBookings)
			supplier.GET("/contact-requests", s.ListSupplierContactRequests)
		}

		authed.POST("/subscriptions", auth.RequireRole(string(supplierdomain.RoleSupplier)), s.CreateSubscription)
		authed.GET("/subscriptions/active", s.ActiveSubscription)
		authed.DELETE("/subscriptions/active",
			auth.RequireRole(string(supplierdomain.RoleSupplier)), s.CancelSubscription)

		admin := authed.Group("/admin", auth.RequireRole(string(supplierdomain.RoleAdmin)))
		{
			admin.GET("/stats", s.AdminStats)
			admin.GET("/suppliers", s.ListSuppliers)
			admin.GET("/suppliers/:id/quota", s.SupplierQuotaStatus)
			admin.POST("/suppliers/:id/unlock", s.UnlockSupplier)
			admin.GET("/bookings", s.ListAllBookings)
			admin.GET("/join-requests", s.ListJoinRequests)
			admin.PATCH("/join-requests/:id/status", s.UpdateJoinRequestStatus)
		}
	}

	return r
}

var Module = fx.Module("server",
	fx.Provide(New),
	fx.Invoke(Run),
)

func Run(lc fx.Lifecycle, s *Server, log *zap.Logger, cfg config.Config) {
	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      s.Router(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
