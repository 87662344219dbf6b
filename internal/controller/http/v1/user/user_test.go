package user

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"college/backend/foundation/web"
	"college/backend/internal/repository/postgres/user"

	"github.com/gin-gonic/gin"
)

type fakeUser struct {
	excel user.ExcelRequest
}

func (f *fakeUser) GetList(ctx context.Context, filter user.Filter) ([]user.GetListResponse, int, error) {
	return nil, 0, nil
}

func (f *fakeUser) GetDetailById(ctx context.Context, id int) (user.GetDetailByIdResponse, error) {
	return user.GetDetailByIdResponse{}, nil
}

func (f *fakeUser) Create(ctx context.Context, request user.CreateRequest) (user.CreateResponse, error) {
	return user.CreateResponse{}, nil
}

func (f *fakeUser) CreateByExcel(ctx context.Context, request user.ExcelRequest) (int, []int, error) {
	f.excel = request
	return 3, []int{5}, nil
}

func (f *fakeUser) ExportStudents(ctx context.Context) (string, error) {
	return "", nil
}

func (f *fakeUser) UpdateColumns(ctx context.Context, request user.UpdateRequest) error {
	return nil
}

func (f *fakeUser) Delete(ctx context.Context, id int) error {
	return nil
}

func newExcelApp(fake *fakeUser) *web.App {
	gin.SetMode(gin.TestMode)

	app := web.NewApp(make(chan os.Signal, 1))
	app.Post("/api/v1/user/create_excel", NewController(fake).CreateByExcel)

	return app
}

func TestCreateByExcelBindsUpload(t *testing.T) {
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

	fake := &fakeUser{}
	app := newExcelApp(fake)

	r := httptest.NewRequest(http.MethodPost, "/api/v1/user/create_excel", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()

	app.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if fake.excel.Excel == nil {
		t.Fatal("file header did not reach the repository")
	}
	if fake.excel.Excel.Filename != "students.xlsx" {
		t.Errorf("filename = %q, want students.xlsx", fake.excel.Excel.Filename)
	}
	if !strings.Contains(w.Body.String(), `"created":3`) {
		t.Errorf("body = %s, want created count", w.Body.String())
	}
}

func TestCreateByExcelWithoutFile(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("comment", "forgot the attachment"); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	app := newExcelApp(&fakeUser{})

	r := httptest.NewRequest(http.MethodPost, "/api/v1/user/create_excel", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()

	app.ServeHTTP(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Excel") {
		t.Errorf("body = %s, want the missing field named", w.Body.String())
	}
}
