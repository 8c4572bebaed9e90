package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/ne-attend/ne-attend-api/api"
	"github.com/ne-attend/ne-attend-api/config"
	"github.com/ne-attend/ne-attend-api/databases"
	"github.com/ne-attend/ne-attend-api/readstate"
)

// App stores the router and db connection, so it can be reused
type App struct {
	Router   *mux.Router
	Config   config.Config
	Hub      *Hub
	Avatars  AvatarUploader
	Registry *prometheus.Registry
	dbHelper databases.DatabaseHelper
	client   databases.ClientHelper
}

// NewApp builds an App around an existing database connection
func NewApp(conf config.Config, db databases.DatabaseHelper) *App {
	return &App{Config: conf, dbHelper: db}
}

// DB returns the database the app was initialized with
func (a *App) DB() databases.DatabaseHelper {
	return a.dbHelper
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	// setup go-guardian for middleware
	m := api.MiddlewareDB{
		DB:     databases.NewUserDatabase(a.dbHelper),
		TDB:    databases.NewTokenDatabase(a.dbHelper),
		Secret: []byte(a.Config.JWTSecret),
		TTL:    a.Config.TokenTTL,
	}
	m.SetupGoGuardian()

	if a.Hub == nil {
		a.Hub = NewHub(api.AuthenticateToken)
	}
	if a.Registry == nil {
		a.Registry = prometheus.NewRegistry()
		a.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	metrics := api.NewMetrics(a.Registry)
	limiter := api.NewRateLimiter(rate.Every(6*time.Second), 5)

	readDB := databases.NewAnnouncementReadDatabase(a.dbHelper)
	tracker := readstate.Tracker{DB: readDB}

	auth := Auth{DB: databases.NewUserDatabase(a.dbHelper)}
	u := User{
		DB:      databases.NewUserDatabase(a.dbHelper),
		CDB:     databases.NewCourseDatabase(a.dbHelper),
		Reads:   tracker,
		Avatars: a.Avatars,
	}
	an := Announcement{
		ADB:   databases.NewAnnouncementDatabase(a.dbHelper),
		RDB:   readDB,
		Reads: tracker,
		Hub:   a.Hub,
	}
	ru := Rule{DB: databases.NewRuleDatabase(a.dbHelper)}
	c := Course{DB: databases.NewCourseDatabase(a.dbHelper)}
	d := Department{DB: databases.NewDepartmentDatabase(a.dbHelper)}
	dash := Dashboard{
		UDB: databases.NewUserDatabase(a.dbHelper),
		ADB: databases.NewAnnouncementDatabase(a.dbHelper),
		RDB: databases.NewRuleDatabase(a.dbHelper),
		CDB: databases.NewCourseDatabase(a.dbHelper),
		DDB: databases.NewDepartmentDatabase(a.dbHelper),
	}

	authed := func(h http.HandlerFunc) http.Handler { return api.Middleware(h) }
	admin := func(h http.HandlerFunc) http.Handler { return api.Middleware(api.RequireAdmin(h)) }
	author := func(h http.HandlerFunc) http.Handler { return api.Middleware(api.RequireAuthor(h)) }

	r := mux.NewRouter()
	r.Use(metrics.Middleware)

	// healthchex
	r.HandleFunc("/health", api.HealthCheckHandler).Methods("GET")
	r.Handle("/metrics", promhttp.HandlerFor(a.Registry, promhttp.HandlerOpts{})).Methods("GET")
	r.HandleFunc("/api/v1/ws", a.Hub.ServeWS).Methods("GET")

	apiCreate := r.PathPrefix("/api/v1").Subrouter()
	apiCreate.Use(api.TimeoutMiddleware(a.Config.RequestTimeout))

	apiCreate.Handle("/auth/signup", limiter.Middleware(http.HandlerFunc(auth.SignupHandler))).Methods("POST")
	apiCreate.Handle("/auth/token", limiter.Middleware(api.Middleware(http.HandlerFunc(m.CreateToken)))).Methods("POST")
	apiCreate.Handle("/auth/logout", authed(m.RevokeToken)).Methods("DELETE")
	apiCreate.Handle("/auth/me", authed(auth.MeHandler)).Methods("GET")

	apiCreate.Handle("/users", admin(u.UsersHandler)).Methods("GET")
	apiCreate.Handle("/users", admin(u.CreateUserHandler)).Methods("POST")
	apiCreate.Handle("/users/{user_id}", authed(u.UserHandler)).Methods("GET")
	apiCreate.Handle("/users/{user_id}", admin(u.UpdateUserHandler)).Methods("PATCH")
	apiCreate.Handle("/users/{user_id}", admin(u.DeleteUserHandler)).Methods("DELETE")
	apiCreate.Handle("/users/{user_id}/avatar", authed(u.UploadAvatarHandler)).Methods("POST")
	apiCreate.Handle("/users/{user_id}/course", authed(u.UserCourseHandler)).Methods("GET")

	apiCreate.Handle("/announcements", authed(an.AnnouncementsHandler)).Methods("GET")
	apiCreate.Handle("/announcements", author(an.CreateAnnouncementHandler)).Methods("POST")
	apiCreate.Handle("/announcements/inbox", authed(an.InboxHandler)).Methods("GET")
	apiCreate.Handle("/announcements/mine", authed(an.MineHandler)).Methods("GET")
	apiCreate.Handle("/announcements/read", authed(an.ReadHandler)).Methods("GET")
	apiCreate.Handle("/announcements/reads", authed(an.ReadsHandler)).Methods("GET")
	apiCreate.Handle("/announcements/{announcement_id}", author(an.UpdateAnnouncementHandler)).Methods("PATCH")
	apiCreate.Handle("/announcements/{announcement_id}", author(an.DeleteAnnouncementHandler)).Methods("DELETE")
	apiCreate.Handle("/announcements/{announcement_id}/read/toggle", authed(an.ToggleReadHandler)).Methods("PUT")
	apiCreate.Handle("/announcements/{announcement_id}/read", authed(an.MarkReadHandler)).Methods("PUT")
	apiCreate.Handle("/announcements/{announcement_id}/read", authed(an.RemoveReadHandler)).Methods("DELETE")

	apiCreate.Handle("/rules", authed(ru.RulesHandler)).Methods("GET")
	apiCreate.Handle("/rules", admin(ru.CreateRuleHandler)).Methods("POST")
	apiCreate.Handle("/rules/{rule_id}", admin(ru.UpdateRuleHandler)).Methods("PATCH")
	apiCreate.Handle("/rules/{rule_id}", admin(ru.DeleteRuleHandler)).Methods("DELETE")

	apiCreate.Handle("/courses", authed(c.CoursesHandler)).Methods("GET")
	apiCreate.Handle("/courses", admin(c.CreateCourseHandler)).Methods("POST")
	apiCreate.Handle("/courses/{course_id}", authed(c.CourseHandler)).Methods("GET")
	apiCreate.Handle("/courses/{course_id}", admin(c.UpdateCourseHandler)).Methods("PATCH")
	apiCreate.Handle("/courses/{course_id}", admin(c.DeleteCourseHandler)).Methods("DELETE")

	apiCreate.Handle("/departments", authed(d.DepartmentsHandler)).Methods("GET")
	apiCreate.Handle("/departments", admin(d.CreateDepartmentHandler)).Methods("POST")
	apiCreate.Handle("/departments/{department_id}", authed(d.DepartmentHandler)).Methods("GET")
	apiCreate.Handle("/departments/{department_id}", admin(d.UpdateDepartmentHandler)).Methods("PATCH")
	apiCreate.Handle("/departments/{department_id}", admin(d.DeleteDepartmentHandler)).Methods("DELETE")

	apiCreate.Handle("/dashboard/summary", admin(dash.SummaryHandler)).Methods("GET")

	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {
	if a.Config.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()
	if err := client.Connect(ctx); err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	a.client = client
	a.dbHelper = databases.NewDatabase(&a.Config, client)
	zap.S().Info("ne-attend-api has connected to the database")

	if err := databases.EnsureIndexes(ctx, a.dbHelper); err != nil {
		zap.S().With(err).Error("failed to ensure indexes")
		return err
	}

	if a.Config.CloudinaryURL != "" {
		uploader, err := NewCloudinaryUploader(a.Config.CloudinaryURL)
		if err != nil {
			return err
		}
		a.Avatars = uploader
	} else {
		zap.S().Warn("CLOUDINARY_URL is not set, avatar uploads are disabled")
	}

	// initialize api router
	a.initializeRoutes()
	return nil
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

// Close disconnects from the database
func (a *App) Close(ctx context.Context) error {
	if a.client == nil {
		return nil
	}
	return a.client.Disconnect(ctx)
}
