package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "duitku/internal/errors"
	"duitku/internal/models"
	"duitku/internal/services"
)

// --- mock budget service ---

type mockBudgetService struct {
	createBudgetFn             func(userID uint, name string, amount float64, startDate time.Time, recurrence bool) (*models.Budget, error)
	createBudgetWithCategoryFn func(userID uint, name string, amount float64, startDate time.Time, recurrence bool, basicCategoryID uint) (*models.Budget, error)
	addBudgetCategoriesFn      func(userID uint, links []services.BudgetCategoryLink) error
	getUserBudgetsFn           func(userID uint) ([]models.Budget, error)
	getBudgetByIDFn            func(userID, budgetID uint) (*models.Budget, error)
	updateBudgetFn             func(userID, budgetID uint, name string, amount *float64, startDate *time.Time) (*models.Budget, error)
	deleteBudgetFn             func(userID, budgetID uint) error
}

func (m *mockBudgetService) CreateBudget(userID uint, name string, amount float64, startDate time.Time, recurrence bool) (*models.Budget, error) {
	if m.createBudgetFn != nil {
		return m.createBudgetFn(userID, name, amount, startDate, recurrence)
	}
	return &models.Budget{}, nil
}

func (m *mockBudgetService) CreateBudgetWithCategory(userID uint, name string, amount float64, startDate time.Time, recurrence bool, basicCategoryID uint) (*models.Budget, error) {
	if m.createBudgetWithCategoryFn != nil {
		return m.createBudgetWithCategoryFn(userID, name, amount, startDate, recurrence, basicCategoryID)
	}
	return &models.Budget{}, nil
}

func (m *mockBudgetService) AddBudgetCategories(userID uint, links []services.BudgetCategoryLink) error {
	if m.addBudgetCategoriesFn != nil {
		return m.addBudgetCategoriesFn(userID, links)
	}
	return nil
}

func (m *mockBudgetService) GetUserBudgets(userID uint) ([]models.Budget, error) {
	if m.getUserBudgetsFn != nil {
		return m.getUserBudgetsFn(userID)
	}
	return []models.Budget{}, nil
}

func (m *mockBudgetService) GetBudgetByID(userID, budgetID uint) (*models.Budget, error) {
	if m.getBudgetByIDFn != nil {
		return m.getBudgetByIDFn(userID, budgetID)
	}
	return &models.Budget{}, nil
}

func (m *mockBudgetService) UpdateBudget(userID, budgetID uint, name string, amount *float64, startDate *time.Time) (*models.Budget, error) {
	if m.updateBudgetFn != nil {
		return m.updateBudgetFn(userID, budgetID, name, amount, startDate)
	}
	return &models.Budget{}, nil
}

func (m *mockBudgetService) DeleteBudget(userID, budgetID uint) error {
	if m.deleteBudgetFn != nil {
		return m.deleteBudgetFn(userID, budgetID)
	}
	return nil
}

var _ services.BudgetServicer = (*mockBudgetService)(nil)

func setupBudgetRouter(handler *BudgetHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(1))
	auth.POST("/budgets", handler.CreateBudget)
	auth.POST("/budgets/with-category", handler.CreateBudgetWithCategory)
	auth.POST("/budgets/categories", handler.AddBudgetCategories)
	auth.GET("/budgets", handler.GetBudgets)
	auth.PUT("/budgets/:id", handler.UpdateBudget)
	auth.DELETE("/budgets/:id", handler.DeleteBudget)
	return r
}

func TestBudgetHandler_CreateBudget(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		svc := &mockBudgetService{
			createBudgetFn: func(userID uint, name string, amount float64, startDate time.Time, recurrence bool) (*models.Budget, error) {
				return &models.Budget{
					Base:      models.Base{ID: 1},
					UserID:    userID,
					Name:      name,
					Amount:    amount,
					StartDate: startDate,
				}, nil
			},
		}
		handler := NewBudgetHandler(svc)
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "POST", "/budgets",
			`{"name":"Groceries","amount":500,"start_date":"2025-03-01T00:00:00Z"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		budget := result["budget"].(map[string]interface{})
		if budget["name"] != "Groceries" {
			t.Errorf("expected Groceries, got %v", budget["name"])
		}
		if budget["amount"].(float64) != 500 {
			t.Errorf("expected amount 500, got %v", budget["amount"])
		}
	})

	t.Run("returns 400 on missing name", func(t *testing.T) {
		handler := NewBudgetHandler(&mockBudgetService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "POST", "/budgets",
			`{"amount":500,"start_date":"2025-03-01T00:00:00Z"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 400 on duplicate", func(t *testing.T) {
		svc := &mockBudgetService{
			createBudgetFn: func(uint, string, float64, time.Time, bool) (*models.Budget, error) {
				return nil, apperrors.ErrDuplicateBudget
			},
		}
		handler := NewBudgetHandler(svc)
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "POST", "/budgets",
			`{"name":"Groceries","amount":500,"start_date":"2025-03-01T00:00:00Z"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "DUPLICATE_BUDGET")
	})
}

func TestBudgetHandler_GetBudgets(t *testing.T) {
	t.Run("returns 200 with budgets", func(t *testing.T) {
		svc := &mockBudgetService{
			getUserBudgetsFn: func(userID uint) ([]models.Budget, error) {
				return []models.Budget{
					{Base: models.Base{ID: 1}, UserID: userID, Name: "Groceries", Amount: 500},
				}, nil
			},
		}
		handler := NewBudgetHandler(svc)
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "GET", "/budgets", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		budgets := result["budgets"].([]interface{})
		if len(budgets) != 1 {
			t.Errorf("expected 1 budget, got %d", len(budgets))
		}
	})

	t.Run("returns 404 when none", func(t *testing.T) {
		svc := &mockBudgetService{
			getUserBudgetsFn: func(uint) ([]models.Budget, error) {
				return nil, apperrors.ErrNoBudgetsFound
			},
		}
		handler := NewBudgetHandler(svc)
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "GET", "/budgets", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "NO_BUDGETS_FOUND")
	})
}

func TestBudgetHandler_AddBudgetCategories(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		var linked []services.BudgetCategoryLink
		svc := &mockBudgetService{
			addBudgetCategoriesFn: func(_ uint, links []services.BudgetCategoryLink) error {
				linked = links
				return nil
			},
		}
		handler := NewBudgetHandler(svc)
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "POST", "/budgets/categories",
			`[{"budget_id":1,"basic_category_id":2,"amount":300}]`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if len(linked) != 1 || linked[0].BasicCategoryID != 2 {
			t.Errorf("expected one link to category 2, got %+v", linked)
		}
	})

	t.Run("returns 404 on foreign budget", func(t *testing.T) {
		svc := &mockBudgetService{
			addBudgetCategoriesFn: func(uint, []services.BudgetCategoryLink) error {
				return apperrors.ErrBudgetNotFound
			},
		}
		handler := NewBudgetHandler(svc)
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "POST", "/budgets/categories",
			`[{"budget_id":1,"basic_category_id":2}]`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestBudgetHandler_DeleteBudget(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		handler := NewBudgetHandler(&mockBudgetService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "DELETE", "/budgets/1", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 400 on invalid id", func(t *testing.T) {
		handler := NewBudgetHandler(&mockBudgetService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "DELETE", "/budgets/abc", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
