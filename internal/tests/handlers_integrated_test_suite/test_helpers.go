package handlers_integrated_test_suite

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/shaikazeem2001/inventory/internal/db"
	handler "github.com/shaikazeem2001/inventory/internal/http/handlers"
	mw "github.com/shaikazeem2001/inventory/internal/http/middleware"
	rl "github.com/shaikazeem2001/inventory/internal/http/rate_limiter"
	"github.com/shaikazeem2001/inventory/internal/http/router"
	"github.com/shaikazeem2001/inventory/internal/importer"
	"github.com/shaikazeem2001/inventory/internal/models"
	"github.com/shaikazeem2001/inventory/internal/repo"
	"github.com/shaikazeem2001/inventory/internal/upload"
	"golang.org/x/crypto/bcrypt"
)

// databaseURLEnv names the Postgres instance the suite runs against. The suite is skipped
// when it is unset.
const databaseURLEnv = "INVENTORY_TEST_DATABASE_URL"

var (
	token    string
	database *sql.DB
	userRepo *repo.PostgresUserRepository
)

func setup() error {
	var err error
	database, err = db.Connect(os.Getenv(databaseURLEnv))
	if err != nil {
		return fmt.Errorf("could not connect to database: %w", err)
	}
	if err := applySchema(); err != nil {
		return err
	}

	products := repo.NewPostgresProductRepository(database)
	activity := repo.NewPostgresActivityRepository(database)
	userRepo = repo.NewPostgresUserRepository(database)

	handler.SetProductRepo(products)
	handler.SetActivityRepo(activity)
	handler.SetUserRepo(userRepo)
	handler.SetMetricsRepo(repo.NewPostgresMetricsRepository(database))
	handler.SetImporter(importer.New(products, activity, importer.WithObserver(importer.Discard())))

	dir, err := os.MkdirTemp("", "inventory-uploads-")
	if err != nil {
		return err
	}
	handler.SetUploadStore(upload.NewStore(dir, 1<<20))
	mw.SetUserRepo(userRepo)
	rl.Configure(1000, 1000)

	clearAll()
	if err := createAdminIfNotExists("secret"); err != nil {
		return err
	}

	token, err = generateToken(router.NewRouter(), "admin", "secret")
	return err
}

func applySchema() error {
	_, file, _, _ := runtime.Caller(0)
	schema, err := os.ReadFile(filepath.Join(filepath.Dir(file), "..", "..", "..", "db", "init.sql"))
	if err != nil {
		return fmt.Errorf("failed to read schema: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := database.ExecContext(ctx, string(schema)); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

func createAdminIfNotExists(password string) error {
	_, err := userRepo.GetByUsername(context.Background(), "admin")
	if err == nil {
		return nil
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	_, err = userRepo.CreateUser(context.Background(), models.User{
		Username:     "admin",
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	})
	return err
}

func clearAll() {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	for _, stmt := range []string{
		"TRUNCATE TABLE products",
		"TRUNCATE TABLE activity_logs",
		"DELETE FROM users WHERE username <> 'admin'",
	} {
		if _, err := database.ExecContext(ctx, stmt); err != nil {
			fmt.Println(fmt.Errorf("cleanup %q failed: %w", stmt, err))
		}
	}
}

func generateToken(r http.Handler, username, password string) (string, error) {
	payload := handler.CredentialsRequest{Username: username, Password: password}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp handler.LoginResult
	err := json.NewDecoder(w.Body).Decode(&resp)
	if err != nil {
		return "", fmt.Errorf("token decoding failed: %v", err)
	}
	return resp.Token, nil
}

func importCSV(r http.Handler, csvContent string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, _ := writer.CreateFormFile("file", "products.csv")
	part.Write([]byte(csvContent))
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/products/import", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
