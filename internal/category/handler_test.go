package category_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"

	"github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/internal/category"
	categoryPostgres "github.com/frahmantamala/finance-tracker/internal/category/postgres"
	"github.com/frahmantamala/finance-tracker/internal/testutil"
	"github.com/frahmantamala/finance-tracker/internal/transport"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Category Handler Integration", func() {
	var (
		service *category.Service
		handler *category.Handler
	)

	const (
		alice int64 = 1
		bob   int64 = 2
	)

	BeforeEach(func() {
		db, err := testutil.NewSQLiteDB()
		Expect(err).NotTo(HaveOccurred())

		slogger := testutil.QuietLogger()
		service = category.NewService(categoryPostgres.NewCategoryRepository(db), slogger)
		handler = category.NewHandler(&transport.BaseHandler{Logger: slogger}, service)
	})

	It("creates and lists the caller's categories", func() {
		w := httptest.NewRecorder()
		handler.CreateCategory(w, testutil.NewRequest(http.MethodPost, "/categories",
			map[string]string{"name": "Travel", "description": "trips"}, alice, nil))
		Expect(w.Code).To(Equal(http.StatusCreated))

		w = httptest.NewRecorder()
		handler.CreateCategory(w, testutil.NewRequest(http.MethodPost, "/categories",
			map[string]string{"name": "Groceries"}, alice, nil))
		Expect(w.Code).To(Equal(http.StatusCreated))

		w = httptest.NewRecorder()
		handler.GetCategories(w, testutil.NewRequest(http.MethodGet, "/categories", nil, alice, nil))
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

		var response category.CategoriesResponse
		Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
		Expect(response.Categories).To(HaveLen(2))
		Expect(response.Categories[0].Name).To(Equal("Groceries"))
		Expect(response.Categories[1].Name).To(Equal("Travel"))
	})

	It("returns 400 with field details for a blank name", func() {
		w := httptest.NewRecorder()
		handler.CreateCategory(w, testutil.NewRequest(http.MethodPost, "/categories",
			map[string]string{"name": ""}, alice, nil))
		Expect(w.Code).To(Equal(http.StatusBadRequest))

		var body struct {
			Error struct {
				Type    string                    `json:"type"`
				Details internal.ValidationErrors `json:"details"`
			} `json:"error"`
		}
		Expect(json.NewDecoder(w.Body).Decode(&body)).To(Succeed())
		Expect(body.Error.Type).To(Equal(string(internal.ErrorTypeValidation)))
		Expect(body.Error.Details.Errors[0].Field).To(Equal("name"))
	})

	It("returns 404 for another user's category", func() {
		cat, err := service.Create(context.Background(), bob, category.CreateCategoryDTO{Name: "Bob's"})
		Expect(err).NotTo(HaveOccurred())

		params := map[string]string{"id": strconv.FormatInt(cat.ID, 10)}
		w := httptest.NewRecorder()
		handler.GetCategory(w, testutil.NewRequest(http.MethodGet, "/categories/x", nil, alice, params))
		Expect(w.Code).To(Equal(http.StatusNotFound))

		w = httptest.NewRecorder()
		handler.DeleteCategory(w, testutil.NewRequest(http.MethodDelete, "/categories/x", nil, alice, params))
		Expect(w.Code).To(Equal(http.StatusNotFound))

		w = httptest.NewRecorder()
		handler.DeleteCategory(w, testutil.NewRequest(http.MethodDelete, "/categories/x", nil, bob, params))
		Expect(w.Code).To(Equal(http.StatusNoContent))
	})

	It("rejects requests without a user", func() {
		w := httptest.NewRecorder()
		handler.GetCategories(w, testutil.NewRequest(http.MethodGet, "/categories", nil, 0, nil))
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
	})

	It("rejects a malformed id", func() {
		w := httptest.NewRecorder()
		handler.GetCategory(w, testutil.NewRequest(http.MethodGet, "/categories/abc", nil, alice,
			map[string]string{"id": "abc"}))
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})
})

