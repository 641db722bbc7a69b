package handlers_test_suite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"

	handler "github.com/shaikazeem2001/inventory/internal/http/handlers"
	mw "github.com/shaikazeem2001/inventory/internal/http/middleware"
	rl "github.com/shaikazeem2001/inventory/internal/http/rate_limiter"
	"github.com/shaikazeem2001/inventory/internal/http/router"
	"github.com/shaikazeem2001/inventory/internal/models"
	"github.com/shaikazeem2001/inventory/internal/repo"
	"github.com/shaikazeem2001/inventory/internal/upload"
	"golang.org/x/crypto/bcrypt"
)

const (
	adminPassword = "secret"
	userPassword  = "user-secret"
)

var (
	token     string
	userToken string
	uploadDir string

	productRepo  *repo.InMemoryProductRepository
	activityRepo *repo.InMemoryActivityRepository
	userRepo     *repo.InMemoryUserRepository
)

func init() {
	rl.Configure(1000, 1000)
	setupTestRepos()

	var err error
	uploadDir, err = os.MkdirTemp("", "inventory-uploads-")
	if err != nil {
		panic(fmt.Sprintf("error creating upload dir: %v", err))
	}
	handler.SetUploadStore(upload.NewStore(uploadDir, 1<<20))

	r := router.NewRouter()
	token, err = generateToken(r, "admin", adminPassword)
	if err != nil {
		panic(fmt.Sprintf("error generating token: %v", err))
	}
	userToken, err = generateToken(r, "clerk", userPassword)
	if err != nil {
		panic(fmt.Sprintf("error generating user token: %v", err))
	}
}

func setupTestRepos() {
	stores := repo.NewInMemoryStores()
	productRepo = stores.Products.(*repo.InMemoryProductRepository)
	activityRepo = stores.Activity.(*repo.InMemoryActivityRepository)
	userRepo = stores.Users.(*repo.InMemoryUserRepository)

	handler.SetStores(stores)
	handler.SetLowStockThreshold(10)
	mw.SetUserRepo(userRepo)

	createUser("admin", adminPassword, models.RoleAdmin)
	createUser("clerk", userPassword, models.RoleUser)
}

func createUser(username, password, role string) {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	userRepo.CreateUser(context.Background(), models.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	})
}

func clearAllProducts() {
	productRepo.Clear()
	activityRepo.Clear()
}

func clearAllUsersExceptAdmin() {
	userRepo.Reset("admin", "clerk")
}

func generateToken(r http.Handler, username, password string) (string, error) {
	payload := handler.CredentialsRequest{Username: username, Password: password}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		return "", fmt.Errorf("login failed with status %d: %s", w.Code, w.Body.String())
	}

	var resp handler.LoginResult
	err := json.NewDecoder(w.Body).Decode(&resp)
	if err != nil {
		return "", fmt.Errorf("token decoding failed: %v", err)
	}
	return resp.Token, nil
}

func doJSON(r http.Handler, method, path, bearer string, payload any) *httptest.ResponseRecorder {
	var body io.Reader
	if payload != nil {
		b, _ := json.Marshal(payload)
		body = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func ptr[T any](v T) *T {
	return &v
}

func productRequest(name, sku string, price float64, quantity int) handler.ProductRequest {
	return handler.ProductRequest{
		Name:     ptr(name),
		SKU:      ptr(sku),
		Price:    ptr(price),
		Quantity: ptr(quantity),
	}
}

func createProduct(r http.Handler, p handler.ProductRequest) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, "/api/products", token, p)
}

func decode[T any](body io.Reader) (T, error) {
	var v T
	err := json.NewDecoder(body).Decode(&v)
	return v, err
}

func multipartCSV(csvContent string, filename string) (*bytes.Buffer, string) {
	return multipartFile(csvContent, filename, "text/csv")
}

func multipartFile(content, filename, contentType string) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	h.Set("Content-Type", contentType)
	part, _ := writer.CreatePart(h)
	part.Write([]byte(content))

	writer.Close()
	return &buf, writer.FormDataContentType()
}

func importCSV(r http.Handler, bearer, csvContent, filename string) *httptest.ResponseRecorder {
	body, contentType := multipartCSV(csvContent, filename)
	req := httptest.NewRequest(http.MethodPost, "/api/products/import", body)
	req.Header.Set("Content-Type", contentType)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
