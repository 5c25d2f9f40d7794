package handlers

import (
	"context"

	"recipe_share/internal/models"
	"recipe_share/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpUser  *models.User
	signUpToken string
	signUpErr   error

	loginUser  *models.User
	loginToken string
	loginErr   error

	currentUser *models.User
	currentErr  error

	endErr error

	lastSignUp        service.SignUpParams
	lastLoginUsername string
	lastLoginPassword string
	lastToken         string
	endCalls          int
}

func (m *mockAuth) SignUp(ctx context.Context, p service.SignUpParams) (*models.User, string, error) {
	m.lastSignUp = p
	return m.signUpUser, m.signUpToken, m.signUpErr
}

func (m *mockAuth) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	m.lastLoginUsername = username
	m.lastLoginPassword = password
	return m.loginUser, m.loginToken, m.loginErr
}

func (m *mockAuth) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	m.lastToken = token
	return m.currentUser, m.currentErr
}

func (m *mockAuth) EndSession(ctx context.Context, token string) error {
	m.endCalls++
	m.lastToken = token
	return m.endErr
}

type mockRecipes struct {
	listResp []models.Recipe
	listErr  error

	createResp *models.Recipe
	createErr  error

	lastCreateUserID int
	lastCreateParams service.CreateRecipeParams
	createCalls      int
}

func (m *mockRecipes) List(ctx context.Context) ([]models.Recipe, error) {
	return m.listResp, m.listErr
}

func (m *mockRecipes) Create(ctx context.Context, userID int, p service.CreateRecipeParams) (*models.Recipe, error) {
	m.createCalls++
	m.lastCreateUserID = userID
	m.lastCreateParams = p
	return m.createResp, m.createErr
}

// ---- Shared Test Helpers ----

const testCookieName = "recipe_session"

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil, CookieConfig{Name: testCookieName})
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
