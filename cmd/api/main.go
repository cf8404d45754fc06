package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/globallaw/crm-backend/internal/infra/database"
	"github.com/globallaw/crm-backend/internal/infra/http/handlers"
	"github.com/globallaw/crm-backend/internal/infra/http/middleware"
	"github.com/globallaw/crm-backend/internal/infra/integration/meta"
	"github.com/globallaw/crm-backend/internal/infra/integration/whatsapp"
	"github.com/globallaw/crm-backend/internal/infra/mail"
	"github.com/globallaw/crm-backend/internal/infra/memstore"
	"github.com/globallaw/crm-backend/internal/infra/queue"
	"github.com/globallaw/crm-backend/internal/usecase"
)

func main() {
	godotenv.Load()

	// 1. Ledger database (the only persistent piece; everything else is the
	// in-memory mock backend).
	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	ledger := database.NewLedgerRepository(db)
	if err := ledger.EnsureSchema(context.Background()); err != nil {
		log.Fatal(err)
	}

	rabbitMQ, err := queue.NewRabbitMQ(
		os.Getenv("RABBITMQ_USER"), os.Getenv("RABBITMQ_PASS"),
		os.Getenv("RABBITMQ_HOST"), os.Getenv("RABBITMQ_PORT"),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 2. Mock data store with demo data and simulated latency.
	latencyMS, _ := strconv.Atoi(os.Getenv("CRM_FAKE_LATENCY_MS"))
	store := memstore.NewStore(time.Duration(latencyMS) * time.Millisecond)
	store.Seed()

	// 3. Integrations and notification senders.
	metaClient := meta.NewClient(os.Getenv("META_BASE_URL"))
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)

	mailPort, _ := strconv.Atoi(os.Getenv("MAIL_PORT"))
	if mailPort == 0 {
		mailPort = 587
	}
	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"), mailPort,
		os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
		os.Getenv("MAIL_FROM"),
	)
	whatsAppSender := mail.NewWhatsAppSender(whatsapp.NewClient())

	// 4. Notification worker.
	notifier := mail.NewAdvisorNotifier(mailSender, whatsAppSender)
	worker := queue.NewWorker(rabbitMQ.Ch, notifier)
	go worker.Start(queue.QueueName)

	// 5. UseCases.
	importUC := usecase.NewImportLeadUseCase(store, store, ledger, usecase.RandomAssignment{}, producer)
	syncUC := usecase.NewSyncLeadsUseCase(metaClient, ledger, importUC)

	// 6. Handlers.
	userHandler := handlers.NewUserHandler(store)
	clientHandler := handlers.NewClientHandler(store, producer)
	dashboardHandler := handlers.NewDashboardHandler(store)
	integrationHandler := handlers.NewIntegrationHandler(metaClient, syncUC)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// 7. Router.
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", handlers.RequesterHeader},
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/users", userHandler.HandleList)
	r.Post("/users", userHandler.HandleCreate)
	r.Put("/users/{id}", userHandler.HandleUpdate)
	r.Delete("/users/{id}", userHandler.HandleDelete)

	r.Get("/clients", clientHandler.HandleList)
	r.Get("/clients/all", clientHandler.HandleListAll)
	r.Get("/clients/{id}", clientHandler.HandleGet)
	r.Put("/clients/{id}/status", clientHandler.HandleUpdateStatus)
	r.Post("/clients/{id}/notes", clientHandler.HandleAddNote)

	r.Get("/dashboard/summary", dashboardHandler.HandleSummary)

	r.Post("/integrations/meta/connect", integrationHandler.HandleConnect)
	r.Get("/integrations/meta/forms", integrationHandler.HandleForms)
	r.Post("/integrations/meta/sync", integrationHandler.HandleSync)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🔥 CRM backend listening on :%s", port)
	http.ListenAndServe(":"+port, r)
}
