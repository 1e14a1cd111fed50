// The function adapter serves the whole API through a single handler, the
// way an edge runtime invokes one function per request. Useful for
// platforms that front a bare http.Handler, and for exercising the
// adapter locally.
package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/smartcanteen/canteen-api/internal/config"
	"github.com/smartcanteen/canteen-api/internal/credentials"
	"github.com/smartcanteen/canteen-api/internal/events"
	"github.com/smartcanteen/canteen-api/internal/logging"
	"github.com/smartcanteen/canteen-api/internal/repo"
	"github.com/smartcanteen/canteen-api/internal/service/auth"
	"github.com/smartcanteen/canteen-api/internal/service/order"
	"github.com/smartcanteen/canteen-api/internal/transport/edge"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	userRepo := &repo.UserRepo{DB: db}
	orderRepo := &repo.OrderRepo{DB: db}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := userRepo.EnsureOwner(ctx, configuration.OWNER_EMAIL, configuration.OWNER_NAME, credentials.OwnerToken); err != nil {
		cancel()
		log.Fatalf("owner bootstrap failed: %v", err)
	}
	cancel()

	var brokers []string
	if configuration.KAFKA_ADDRESS != "" {
		brokers = strings.Split(configuration.KAFKA_ADDRESS, ",")
	}
	producer := events.NewProducer(brokers)
	defer producer.Close()

	handler := &edge.Handler{
		Auth: &auth.Service{
			Users:   userRepo,
			Deriver: credentials.NewPRNDeriver(configuration.OWNER_EMAIL, configuration.EMAIL_DOMAIN),
		},
		Orders: &order.Service{
			Orders:     orderRepo,
			Users:      userRepo,
			Producer:   producer,
			OwnerEmail: configuration.OWNER_EMAIL,
		},
	}

	mux := http.NewServeMux()
	mux.Handle("/api/", withLogger(logger, handler))

	log.Printf("function adapter listening on :%s", configuration.PORT)
	log.Fatal(http.ListenAndServe(":"+configuration.PORT, mux))
}

func withLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l := logger.With("method", r.Method, "url", r.URL.Path, "remote_ip", r.RemoteAddr)
		next.ServeHTTP(w, r.WithContext(logging.IntoContext(r.Context(), l)))
	})
}
