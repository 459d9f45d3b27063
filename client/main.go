package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"go-ecocidade/internal/catalog"
	"go-ecocidade/internal/comparison"
	"go-ecocidade/internal/config"
	"go-ecocidade/internal/database"
	ierr "go-ecocidade/internal/errors"
	"go-ecocidade/internal/favorites"
	recommendationsHandler "go-ecocidade/internal/handler/recommendations"
	model "go-ecocidade/internal/model"
	favoritesRepository "go-ecocidade/internal/repository/favorites"
	productRepository "go-ecocidade/internal/repository/product"
	recommendationsRepository "go-ecocidade/internal/repository/recommendations"
	userRepository "go-ecocidade/internal/repository/user"

	Firestore "firebase.google.com/go/v4"

	"github.com/rs/zerolog"
	"google.golang.org/api/option"
)

const usage = `usage: client <command> [flags] [args]

commands:
  seed        -file products.json            save products to the catalog
  favorites   -user ID list|add LINK|remove ID|clear
  compare     -category C [POSITION ...]     list a category and select products by position
  preferences -user ID [-categories a,b] [-tags x,y] [-min N] [-max N]
  recommend   -user ID [-refresh]            print the stored ranking, or rank now with -refresh
`

type app struct {
	cnf                config.Config
	productRepo        productRepository.ProductRepository
	favoritesRepo      favoritesRepository.FavoritesRepository
	userRepo           userRepository.UserRepository
	recommendationRepo recommendationsRepository.RecommendationsRepository
	catalog            catalog.Source
}

func main() {

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cnf := config.LoadConfigOrPanic()
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fbApp := createFirestoreAppOrPanic(ctx, cnf.Firebase)
	firestoreClient := createFirestoreClientOrPanic(ctx, fbApp, cnf.WriteTimeoutSecond)
	defer firestoreClient.Close()

	productRepo := productRepository.New(&firestoreClient)
	a := app{
		cnf:                cnf,
		productRepo:        productRepo,
		favoritesRepo:      favoritesRepository.New(&firestoreClient),
		userRepo:           userRepository.New(&firestoreClient),
		recommendationRepo: recommendationsRepository.New(&firestoreClient),
		catalog:            catalog.Fallback(catalog.NewFirestore(productRepo), catalog.NewStatic(catalog.MockProducts())),
	}

	var err error
	cmd, args := os.Args[1], os.Args[2:]
	switch cmd {
	case "seed":
		err = a.seed(ctx, args)
	case "favorites":
		err = a.favorites(ctx, args)
	case "compare":
		err = a.compare(ctx, args)
	case "preferences":
		err = a.preferences(ctx, args)
	case "recommend":
		err = a.recommend(ctx, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, ierr.UserMessage(err))
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func (a app) seed(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	filePath := fs.String("file", "./client/products/catalog.json", "json file with a list of products")
	fs.Parse(args)

	products, err := readProductsFromJson(*filePath)
	if err != nil {
		return err
	}

	if err := a.productRepo.CreateMany(ctx, products); err != nil {
		return err
	}

	fmt.Printf("%d products saved to Firestore.\n", len(products))
	return nil
}

func (a app) favorites(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("favorites", flag.ExitOnError)
	userId := fs.String("user", "", "user id")
	fs.Parse(args)

	if *userId == "" || fs.NArg() == 0 {
		return fmt.Errorf("favorites: -user and an action are required")
	}

	store := favorites.New(*userId, a.favoritesRepo)
	defer store.Close()

	ctx, cancel := context.WithTimeout(ctx, a.cnf.OperationTimeout)
	defer cancel()

	if err := store.Load(ctx); err != nil {
		return err
	}

	action, rest := fs.Arg(0), fs.Args()[1:]
	switch action {
	case "list":
	case "add":
		if len(rest) != 1 {
			return fmt.Errorf("favorites add: a purchase link is required")
		}
		product, err := a.findByLink(ctx, rest[0])
		if err != nil {
			return err
		}
		if _, err := store.Add(ctx, product); err != nil {
			if !ierr.Expected(err) {
				return err
			}
			fmt.Println(ierr.UserMessage(err))
		}
	case "remove":
		if len(rest) != 1 {
			return fmt.Errorf("favorites remove: a product id is required")
		}
		removed, err := store.Remove(ctx, rest[0])
		if err != nil {
			return err
		}
		if !removed {
			fmt.Println("Not in your favorites:", rest[0])
		}
	case "clear":
		if err := store.Clear(ctx); err != nil {
			return err
		}
	default:
		return fmt.Errorf("favorites: unknown action %q", action)
	}

	fmt.Printf("Favorites of %s:\n", store.UserId())
	printProducts(store.Favorites())
	return nil
}

// findByLink looks the product up in the whole catalog; ids are not stable across fetches, links are.
func (a app) findByLink(ctx context.Context, link string) (model.Product, error) {
	products, err := a.catalog.FetchCatalog(ctx, "")
	if err != nil {
		return model.Product{}, err
	}
	for _, p := range products {
		if p.Key() == link {
			return p, nil
		}
	}
	return model.Product{}, fmt.Errorf("find product: %w, link: %s", ierr.NotFound, link)
}

func (a app) compare(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("compare", flag.ExitOnError)
	category := fs.String("category", "", "product category, all when empty")
	fs.Parse(args)

	view := comparison.NewView(a.catalog, a.cnf.NoticeDuration)
	if err := view.Load(ctx, *category); err != nil {
		return err
	}

	products := view.Products()
	printProducts(products)

	for _, arg := range fs.Args() {
		pos, err := strconv.Atoi(arg)
		if err != nil || pos < 1 || pos > len(products) {
			return fmt.Errorf("compare: invalid position %q", arg)
		}
		if err := view.Toggle(products[pos-1].Id); err != nil && !ierr.Expected(err) {
			return err
		}
	}

	if msg, ok := view.Selection().Notice(); ok {
		fmt.Println(msg)
	}

	selected := view.Selection().Products()
	if len(selected) == 0 {
		return nil
	}

	fmt.Println("\nComparing:")
	for _, p := range selected {
		fmt.Printf("  %-40s  R$ %8.2f  score %-5s  %s\n", p.Name, p.Price, formatScore(p.SustainabilityScore), strings.Join(p.Certifications, ", "))
	}
	return nil
}

func (a app) preferences(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("preferences", flag.ExitOnError)
	userId := fs.String("user", "", "user id")
	categories := fs.String("categories", "", "comma separated interested categories")
	tags := fs.String("tags", "", "comma separated sustainability preferences")
	minPrice := fs.Float64("min", 0, "minimum price")
	maxPrice := fs.Float64("max", 0, "maximum price")
	fs.Parse(args)

	if *userId == "" {
		return fmt.Errorf("preferences: -user is required")
	}

	prefs := model.Preferences{
		Categories:                splitList(*categories),
		SustainabilityPreferences: splitList(*tags),
		PriceRange:                model.PriceRange{Min: *minPrice, Max: *maxPrice},
	}

	if err := a.userRepo.UpdatePreferences(ctx, *userId, prefs); err != nil {
		return err
	}

	fmt.Println("Preferences saved, recommendations will be refreshed by the worker.")
	return nil
}

func (a app) recommend(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("recommend", flag.ExitOnError)
	userId := fs.String("user", "", "user id")
	refresh := fs.Bool("refresh", false, "rank the catalog now instead of reading the stored ranking")
	fs.Parse(args)

	if *userId == "" {
		return fmt.Errorf("recommend: -user is required")
	}

	if !*refresh {
		products, err := a.recommendationRepo.Products(ctx, *userId)
		if err != nil {
			return err
		}
		for _, p := range products {
			fmt.Printf("%3d. %-40s  score %6.2f  %s\n", p.Rank, p.Name, p.Score, p.AffiliateLink)
		}
		return nil
	}

	user, err := a.userRepo.GetById(ctx, *userId)
	if err != nil {
		return err
	}

	// a handler without publisher is only used for one-off ranking
	h := recommendationsHandler.New(nil, a.catalog, a.recommendationRepo, a.cnf.Recommendations.Limit)
	scored, err := h.Recommend(ctx, *user)
	if err != nil {
		return err
	}
	for i, s := range scored {
		fmt.Printf("%3d. %-40s  score %6.2f  %s\n", i+1, s.Product.Name, s.Score, s.Product.AffiliateLink)
	}
	return nil
}

func printProducts(products []model.Product) {
	if len(products) == 0 {
		fmt.Println("No products.")
		return
	}
	for i, p := range products {
		fmt.Printf("%3d. %-40s  R$ %8.2f  %-12s  %s  (%s)\n", i+1, p.Name, p.Price, p.Category, p.AffiliateLink, p.Id)
	}
}

func formatScore(score *float64) string {
	if score == nil {
		return "-"
	}
	return strconv.FormatFloat(*score, 'f', 1, 64)
}

func splitList(s string) []string {
	out := []string{}
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
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

func readProductsFromJson(filePath string) ([]model.Product, error) {
	jsonFile, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open products file: %w", err)
	}
	defer jsonFile.Close()

	byteValue, err := io.ReadAll(jsonFile)
	if err != nil {
		return nil, fmt.Errorf("read products file: %w", err)
	}

	var products []model.Product
	if err := json.Unmarshal(byteValue, &products); err != nil {
		return nil, fmt.Errorf("unmarshal products file: %w", err)
	}
	return products, nil
}
