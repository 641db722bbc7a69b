package handlers

import (
	"github.com/shaikazeem2001/inventory/internal/auth"
	"github.com/shaikazeem2001/inventory/internal/importer"
	repo "github.com/shaikazeem2001/inventory/internal/repo"
	"github.com/shaikazeem2001/inventory/internal/upload"
)

var (
	productRepo  repo.ProductRepository
	activityRepo repo.ActivityRepository
	metricsRepo  repo.MetricsRepository
	userRepo     repo.UserRepository

	authService       = auth.NewAuthService(auth.NewMemoryRefreshStore(), 0)
	uploadStore       = upload.NewStore("uploads", 10<<20)
	productImporter   *importer.Importer
	lowStockThreshold = 10
)

func SetProductRepo(r repo.ProductRepository) {
	productRepo = r
}

func SetActivityRepo(r repo.ActivityRepository) {
	activityRepo = r
}

func SetMetricsRepo(r repo.MetricsRepository) {
	metricsRepo = r
}

func SetUserRepo(r repo.UserRepository) {
	userRepo = r
}

// SetStores wires every repository of s and rebuilds the importer on top of them.
func SetStores(s *repo.Stores) {
	SetProductRepo(s.Products)
	SetActivityRepo(s.Activity)
	SetMetricsRepo(s.Metrics)
	SetUserRepo(s.Users)
	SetImporter(importer.New(s.Products, s.Activity))
}

func SetImporter(im *importer.Importer) {
	productImporter = im
}

func SetAuthService(a *auth.AuthService) {
	authService = a
}

func SetUploadStore(s *upload.Store) {
	uploadStore = s
}

func SetLowStockThreshold(n int) {
	if n > 0 {
		lowStockThreshold = n
	}
}
