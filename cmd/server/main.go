package main

import (
	"net/http"

	"github.com/MAHMOUDBADAWY74/Graduation-project/config"
	"github.com/MAHMOUDBADAWY74/Graduation-project/internal/auth"
	"github.com/MAHMOUDBADAWY74/Graduation-project/internal/db"
	"github.com/MAHMOUDBADAWY74/Graduation-project/internal/handlers"
	"github.com/MAHMOUDBADAWY74/Graduation-project/internal/middlewares"
	"github.com/MAHMOUDBADAWY74/Graduation-project/internal/realtime"
	"github.com/MAHMOUDBADAWY74/Graduation-project/internal/repository"
	"github.com/MAHMOUDBADAWY74/Graduation-project/internal/services"
	"github.com/MAHMOUDBADAWY74/Graduation-project/pkg/log"

	muxHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load config and init systems
	cfg := config.LoadConfig()
	log.InitLogger()
	db.InitDB(cfg)

	// JWT keys
	privateKey, err := auth.LoadPrivateKey(cfg.PrivateKeyPath)
	if err != nil {
		log.Logger.Fatal().Err(err).Msg("failed to load private key")
	}
	publicKey, err := auth.LoadPublicKey(cfg.PublicKeyPath)
	if err != nil {
		log.Logger.Fatal().Err(err).Msg("failed to load public key")
	}

	// Router & CORS
	r := mux.NewRouter()
	cors := muxHandlers.CORS(
		muxHandlers.AllowedOrigins([]string{cfg.FrontendBaseURL}),
		muxHandlers.AllowedMethods([]string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		}),
		muxHandlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		muxHandlers.AllowCredentials(),
	)

	// Repositories
	userRepo := repository.NewUserRepo(db.DB)
	bookRepo := repository.NewBookRepo(db.DB)
	communityRepo := repository.NewCommunityRepo(db.DB)
	exchangeRepo := repository.NewExchangeRepo(db.DB)
	notifRepo := repository.NewNotificationRepo(db.DB)
	chatRepo := repository.NewChatRepo(db.DB)

	// Realtime hub & services
	hub := realtime.NewHub(communityRepo,
		realtime.WithSendBuffer(cfg.HubSendBuffer),
		realtime.WithPingInterval(cfg.HubPingInterval),
	)
	broadcaster := hub.Broadcaster()

	notifSvc := services.NewNotificationService(notifRepo, broadcaster)
	chatSvc := services.NewChatService(chatRepo, userRepo, broadcaster, notifSvc)
	communitySvc := services.NewCommunityService(communityRepo, userRepo, notifSvc)
	bookSvc := services.NewBookService(bookRepo, userRepo, notifSvc)
	exchangeSvc := services.NewExchangeService(exchangeRepo, bookRepo, userRepo, notifSvc)

	// Handlers
	notifHandler := handlers.NewNotificationHandler(notifSvc)
	chatHandler := handlers.NewChatHandler(chatSvc)
	communityHandler := handlers.NewCommunityHandler(communitySvc)
	bookHandler := handlers.NewBookHandler(bookSvc)
	exchangeHandler := handlers.NewExchangeHandler(exchangeSvc)

	// Middlewares
	userAuth := middlewares.RequireUserAuth(publicKey)
	r.Use(middlewares.PrometheusMetricsMiddleware)

	// Health & metrics
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("OK"))
	}).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// ==== AUTH ====
	r.Handle("/api/v1/auth/register", handlers.RegisterHandler(userRepo)).Methods("POST")
	r.Handle("/api/v1/auth/login", handlers.LoginHandler(userRepo, cfg, privateKey)).Methods("POST")
	r.Handle("/api/v1/auth/me", userAuth(handlers.MeHandler())).Methods("GET")

	// ==== BOOKS ====
	r.Handle("/api/v1/books", userAuth(http.HandlerFunc(bookHandler.Add))).Methods("POST")
	r.Handle("/api/v1/books", http.HandlerFunc(bookHandler.List)).Methods("GET")
	r.Handle("/api/v1/books/{id}", http.HandlerFunc(bookHandler.Get)).Methods("GET")

	// ==== COMMUNITIES ====
	r.Handle("/api/v1/communities", userAuth(http.HandlerFunc(communityHandler.Create))).Methods("POST")
	r.Handle("/api/v1/communities/{id}/join", userAuth(http.HandlerFunc(communityHandler.Join))).Methods("POST")
	r.Handle("/api/v1/communities/posts", userAuth(http.HandlerFunc(communityHandler.CreatePost))).Methods("POST")
	r.Handle("/api/v1/communities/posts/{id}/like", userAuth(http.HandlerFunc(communityHandler.LikePost))).Methods("POST")
	r.Handle("/api/v1/communities/posts/{id}/like", userAuth(http.HandlerFunc(communityHandler.UnlikePost))).Methods("DELETE")
	r.Handle("/api/v1/communities/posts/{id}/comments", userAuth(http.HandlerFunc(communityHandler.CommentOnPost))).Methods("POST")
	r.Handle("/api/v1/communities/posts/{id}/approve", userAuth(http.HandlerFunc(communityHandler.ApprovePost))).Methods("PUT")
	r.Handle("/api/v1/communities/posts/{id}/reject", userAuth(http.HandlerFunc(communityHandler.RejectPost))).Methods("PUT")
	r.Handle("/api/v1/communities/moderators", userAuth(http.HandlerFunc(communityHandler.AssignModerator))).Methods("POST")
	r.Handle("/api/v1/communities/moderators", userAuth(http.HandlerFunc(communityHandler.RemoveModerator))).Methods("DELETE")
	r.Handle("/api/v1/communities/bans", userAuth(http.HandlerFunc(communityHandler.BanMember))).Methods("POST")
	r.Handle("/api/v1/communities/bans", userAuth(http.HandlerFunc(communityHandler.UnbanMember))).Methods("DELETE")

	// ==== EXCHANGES ====
	r.Handle("/api/v1/exchanges", userAuth(http.HandlerFunc(exchangeHandler.Send))).Methods("POST")
	r.Handle("/api/v1/exchanges", userAuth(http.HandlerFunc(exchangeHandler.List))).Methods("GET")
	r.Handle("/api/v1/exchanges/{id}/accept", userAuth(http.HandlerFunc(exchangeHandler.Accept))).Methods("PUT")
	r.Handle("/api/v1/exchanges/{id}/reject", userAuth(http.HandlerFunc(exchangeHandler.Reject))).Methods("PUT")

	// ==== NOTIFICATIONS ====
	r.Handle("/api/v1/notifications", userAuth(http.HandlerFunc(notifHandler.List))).Methods("GET")
	r.Handle("/api/v1/notifications/{id}/read", userAuth(http.HandlerFunc(notifHandler.MarkRead))).Methods("PUT")
	r.Handle("/api/v1/notifications/read-all", userAuth(http.HandlerFunc(notifHandler.MarkAllRead))).Methods("PUT")

	// ==== CHAT (REST fallback) ====
	r.Handle("/api/v1/chat/messages", userAuth(http.HandlerFunc(chatHandler.Send))).Methods("POST")
	r.Handle("/api/v1/chat/conversations/{peerId}", userAuth(http.HandlerFunc(chatHandler.Conversation))).Methods("GET")
	r.Handle("/api/v1/chat/conversations/{peerId}/read", userAuth(http.HandlerFunc(chatHandler.MarkRead))).Methods("PUT")

	// ==== REALTIME HUBS ====
	// The only two endpoints honoring the access_token query parameter.
	whoAmI := realtime.BearerResolver(publicKey)
	r.HandleFunc("/hubs/notifications", realtime.NotificationHandler(hub, whoAmI, notifSvc.MarkRead))
	r.HandleFunc("/hubs/chat", realtime.ChatHandler(hub, whoAmI, chatSvc.Send))

	log.Logger.Info().Str("port", cfg.Port).Msg("server listening")
	if err := http.ListenAndServe(":"+cfg.Port, cors(r)); err != nil {
		log.Logger.Fatal().Err(err).Msg("server stopped")
	}
}
