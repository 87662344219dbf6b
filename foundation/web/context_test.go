package web

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestContext(t *testing.T, r *http.Request) *Context {
	t.Helper()

	gin.SetMode(gin.TestMode)
	ginCtx, _ := gin.CreateTestContext(httptest.NewRecorder())
	ginCtx.Request = r

	return &Context{Ctx: r.Context(), Context: ginCtx}
}

func TestBindFuncJSON(t *testing.T) {
	var request struct {
		Login    *string `json:"login" form:"login"`
		Password *string `json:"password" form:"password"`
	}

	body := strings.NewReader(`{"login":"student1","password":"secret"}`)
	r := httptest.NewRequest(http.MethodPost, "/", body)
	r.Header.Set("Content-Type", "application/json")

	c := newTestContext(t, r)
	if err := c.BindFunc(&request, "Login", "Password"); err != nil {
		t.Fatalf("BindFunc: %v", err)
	}
	if request.Login == nil || *request.Login != "student1" {
		t.Errorf("login = %v, want student1", request.Login)
	}
}

func TestBindFuncMultipartFile(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("excel", "students.xlsx")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write([]byte("workbook bytes")); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	r := httptest.NewRequest(http.MethodPost, "/", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())

	var request struct {
		Excel *multipart.FileHeader `json:"excel" form:"excel"`
	}

	c := newTestContext(t, r)
	if err := c.BindFunc(&request, "Excel"); err != nil {
		t.Fatalf("BindFunc: %v", err)
	}
	if request.Excel == nil {
		t.Fatal("file header not bound")
	}
	if request.Excel.Filename != "students.xlsx" {
		t.Errorf("filename = %q, want students.xlsx", request.Excel.Filename)
	}
}

func TestBindFuncMultipartMissingFile(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("comment", "no file attached"); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	r := httptest.NewRequest(http.MethodPost, "/", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())

	var request struct {
		Excel *multipart.FileHeader `json:"excel" form:"excel"`
	}

	c := newTestContext(t, r)
	err := c.BindFunc(&request, "Excel")
	if err == nil {
		t.Fatal("expected an error for a missing required file")
	}

	webErr, ok := IsRequestError(err)
	if !ok {
		t.Fatalf("expected a request error, got %v", err)
	}
	if webErr.Status != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", webErr.Status, http.StatusBadRequest)
	}
}
