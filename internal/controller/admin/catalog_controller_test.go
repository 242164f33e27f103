package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Compass/internal/dto"
	"github.com/lshigami/Compass/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	service.CatalogService
	imported    []dto.QuestionInput
	deactivated []uint
}

func (f *fakeCatalog) ImportQuestions(_ context.Context, inputs []dto.QuestionInput) (int, error) {
	f.imported = append(f.imported, inputs...)
	return len(inputs), nil
}

func (f *fakeCatalog) Deactivate(_ context.Context, id uint) error {
	if id == 404 {
		return fmt.Errorf("%w: question %d", service.ErrNotFound, id)
	}
	f.deactivated = append(f.deactivated, id)
	return nil
}

func newRouter(catalog service.CatalogService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	ctrl := NewCatalogController(catalog)
	r := gin.New()
	r.POST("/admin/questions", ctrl.ImportQuestions)
	r.PATCH("/admin/questions/:question_id/deactivate", ctrl.DeactivateQuestion)
	return r
}

func TestImportQuestions(t *testing.T) {
	catalog := &fakeCatalog{}
	router := newRouter(catalog)

	body, err := json.Marshal(map[string]any{"questions": []map[string]any{{
		"text": "Pick one", "type": "single_choice", "category": "interests", "dimension": "R", "order_index": 1,
		"options": map[string]any{"choices": []map[string]string{{"value": "R", "label": "Build"}}},
	}}})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/admin/questions", bytes.NewReader(body)))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.JSONEq(t, `{"imported":1}`, w.Body.String())
	require.Len(t, catalog.imported, 1)
	assert.Equal(t, "R", catalog.imported[0].Options.Choices[0].Value)
}

func TestImportQuestions_BindingRejects(t *testing.T) {
	router := newRouter(&fakeCatalog{})
	for name, body := range map[string]string{
		"empty list":   `{"questions":[]}`,
		"bad type":     `{"questions":[{"text":"x","type":"essay","category":"interests","order_index":1}]}`,
		"bad category": `{"questions":[{"text":"x","type":"slider","category":"hobbies","order_index":1}]}`,
		"not json":     `questions`,
	} {
		t.Run(name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/admin/questions", bytes.NewBufferString(body)))
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestDeactivateQuestion(t *testing.T) {
	catalog := &fakeCatalog{}
	router := newRouter(catalog)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/admin/questions/7/deactivate", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []uint{7}, catalog.deactivated)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/admin/questions/404/deactivate", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
