package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-ecocidade/internal/catalog"
	"go-ecocidade/internal/config"
	"go-ecocidade/internal/database"
	userEventPublisher "go-ecocidade/internal/eventpublisher/user"
	recommendationsHandler "go-ecocidade/internal/handler/recommendations"
	productRepository "go-ecocidade/internal/repository/product"
	recommendationsRepository "go-ecocidade/internal/repository/recommendations"
	userRepository "go-ecocidade/internal/repository/user"
	"go-ecocidade/internal/utils"

	gpt "go-ecocidade/internal/gpt"
	gptutils "go-ecocidade/internal/gpt/utils"

	Firestore "firebase.google.com/go/v4"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/option"
)

func main() {

	cnf := config.LoadConfigOrPanic()
	setLogLevel(cnf.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	defer close(sigs)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	app := createFirestoreAppOrPanic(ctx, cnf.Firebase)
	firestoreClient := createFirestoreClientOrPanic(ctx, app, cnf.WriteTimeoutSecond)
	defer firestoreClient.Close()

	productRepo := productRepository.New(&firestoreClient)
	userRepo := userRepository.New(&firestoreClient)
	recommendationRepo := recommendationsRepository.New(&firestoreClient)

	source := createCatalogOrPanic(cnf, productRepo)

	userChangedPublisher := userEventPublisher.UserPublisherFactory(userRepo).OnUserChanged()
	rh := recommendationsHandler.New(userChangedPublisher, source, recommendationRepo, cnf.Recommendations.Limit)

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return rh.EventHandler(gctx)
	})
	group.Go(func() error {
		return userChangedPublisher.Start(gctx)
	})

	log.Info().Bool("aiCatalog", cnf.CatalogAI.Enabled()).Msg("recommendations worker started")

	select {
	case <-sigs:
		// Received a termination signal, continue to shutdown
	case <-gctx.Done():
		// errgroup encountered an error, continue to shutdown
	}

	cancel() // cancel the root context to signal all the consumers

	select {
	case <-time.After(time.Second * 5):
		// Give enough time to close all the pending resources
	case <-sigs:
		// Forcefully terminate the app with a signal
	}

	os.Exit(1)
}

func setLogLevel(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

// createCatalogOrPanic prefers the AI catalog when an api key is configured and the products
// collection otherwise. Either way the mock products are served while the primary is unavailable.
func createCatalogOrPanic(cnf config.Config, productRepo productRepository.IRepository) catalog.Source {
	mock := catalog.NewStatic(catalog.MockProducts())

	if !cnf.CatalogAI.Enabled() {
		return catalog.Fallback(catalog.NewFirestore(productRepo), mock)
	}

	tokenizer, err := gptutils.NewTokenzier()
	if err != nil {
		panic(err)
	}

	gptFactory, err := gpt.NewClientFactory(gpt.ClientConfig{
		ApiUrl:      cnf.CatalogAI.ApiUrl,
		ApiKey:      cnf.CatalogAI.ApiKey,
		Model:       cnf.CatalogAI.Model,
		Temperature: utils.Float32ToPointer(0.1),
	})
	if err != nil {
		panic(err)
	}

	ai := catalog.NewAI(gptFactory, catalog.WithTokenizer(tokenizer, cnf.CatalogAI.MaxPromptToken))
	return catalog.Fallback(ai, mock)
}

func createFirestoreAppOrPanic(ctx context.Context, cnf config.Firebase) *Firestore.App {
	FirestoreCreds, err := json.Marshal(cnf)
	if err != nil {
		panic(err)
	}

	sa := option.WithCredentialsJSON(FirestoreCreds)
	app, err := Firestore.NewApp(ctx, nil, sa)
	if err != nil {
		panic(err)
	}
	return app
}

func createFirestoreClientOrPanic(ctx context.Context, app *Firestore.App, writeTimeout time.Duration) database.FirestoreClient {
	firestoreClient, err := app.Firestore(ctx)
	if err != nil {
		panic(err)
	}
	return database.New(firestoreClient, writeTimeout)
}
