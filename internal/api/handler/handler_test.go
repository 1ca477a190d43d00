package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/am-bush650/student-management-system/internal/dto"
	"github.com/am-bush650/student-management-system/internal/permission"
	"github.com/am-bush650/student-management-system/internal/service"
	"github.com/am-bush650/student-management-system/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult      *dto.TokenResponse
	loginErr         error
	refreshResult    *dto.TokenResponse
	refreshErr       error
	logoutErr        error
	getCurrentResult *dto.UserResponse
	getCurrentErr    error
	changePassErr    error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) RefreshToken(_ context.Context, _ string) (*dto.TokenResponse, error) {
	return m.refreshResult, m.refreshErr
}
func (m *mockAuthService) Logout(_ context.Context, _ string, _ time.Time) error {
	return m.logoutErr
}
func (m *mockAuthService) GetCurrentUser(_ context.Context, _ string) (*dto.UserResponse, error) {
	return m.getCurrentResult, m.getCurrentErr
}
func (m *mockAuthService) ChangePassword(_ context.Context, _ string, _ *dto.ChangePasswordRequest) error {
	return m.changePassErr
}

// ── Mock StudentService ──

type mockStudentService struct {
	listResult   []dto.StudentResponse
	listTotal    int64
	listErr      error
	getResult    *dto.StudentResponse
	getErr       error
	createResult *dto.StudentResponse
	createErr    error
	updateResult *dto.StudentResponse
	updateErr    error
}

func (m *mockStudentService) List(_ context.Context, _ *dto.PaginationRequest) ([]dto.StudentResponse, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}
func (m *mockStudentService) Get(_ context.Context, _ string, _ permission.Role, _ string) (*dto.StudentResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockStudentService) Create(_ context.Context, _ *dto.CreateStudentRequest) (*dto.StudentResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockStudentService) Update(_ context.Context, _ string, _ *dto.UpdateStudentRequest) (*dto.StudentResponse, error) {
	return m.updateResult, m.updateErr
}

// ── Mock GradeService ──

type mockGradeService struct {
	editResult  *dto.GradeResponse
	editErr     error
	listResult  []dto.GradeResponse
	listErr     error
	parseResult []service.GradeRow
	parseErr    error
	bulkResult  *dto.BulkUploadResponse
	bulkErr     error
}

func (m *mockGradeService) EditGrade(_ context.Context, _ *dto.EditGradeRequest) (*dto.GradeResponse, error) {
	return m.editResult, m.editErr
}
func (m *mockGradeService) ListByStudent(_ context.Context, _ string, _ permission.Role, _ string) ([]dto.GradeResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockGradeService) ParseUploadFile(_ io.Reader, _ string) ([]service.GradeRow, error) {
	return m.parseResult, m.parseErr
}
func (m *mockGradeService) BulkUpload(_ context.Context, _ []service.GradeRow) (*dto.BulkUploadResponse, error) {
	return m.bulkResult, m.bulkErr
}

// ── Mock MessageService ──

type mockMessageService struct {
	sendResult *dto.MessageResponse
	sendErr    error
	listResult []dto.MessageResponse
	listErr    error
}

func (m *mockMessageService) Send(_ context.Context, _ string, _ *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	return m.sendResult, m.sendErr
}
func (m *mockMessageService) ListByUser(_ context.Context, _ string) ([]dto.MessageResponse, error) {
	return m.listResult, m.listErr
}

// ── Mock AssignmentService ──

type mockAssignmentService struct {
	uploadResult   *dto.AssignmentResponse
	uploadErr      error
	listResult     []dto.AssignmentResponse
	listErr        error
	downloadBody   string
	downloadResult *dto.AssignmentResponse
	downloadErr    error
}

func (m *mockAssignmentService) Upload(_ context.Context, _, _, _ string, _ int64, _ io.Reader) (*dto.AssignmentResponse, error) {
	return m.uploadResult, m.uploadErr
}
func (m *mockAssignmentService) ListByStudent(_ context.Context, _ string, _ permission.Role, _ string) ([]dto.AssignmentResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockAssignmentService) Download(_ context.Context, _ string, _ permission.Role, _ string) (io.ReadCloser, *dto.AssignmentResponse, error) {
	if m.downloadErr != nil {
		return nil, nil, m.downloadErr
	}
	return io.NopCloser(strings.NewReader(m.downloadBody)), m.downloadResult, nil
}

// ── Mock ExportService ──

type mockExportService struct {
	buf         *bytes.Buffer
	filename    string
	contentType string
	err         error
}

func (m *mockExportService) ExportStudent(_ context.Context, _, _ string) (*bytes.Buffer, string, string, error) {
	return m.buf, m.filename, m.contentType, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

// withAuth 模拟 JWT 中间件注入的上下文
func withAuth(role, studentID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", "test-user-id")
		c.Set("role", role)
		c.Set("student_id", studentID)
		c.Set("jti", "test-jti")
		c.Set("token_expires_at", time.Now().Add(15*time.Minute))
		c.Next()
	}
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// multipartBody 构造带单个文件字段的 multipart 请求体
func multipartBody(t *testing.T, field, filename, content string) (io.Reader, string) {
	t.Helper()
	buf := new(bytes.Buffer)
	mw := multipart.NewWriter(buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("构造 multipart 失败: %v", err)
	}
	fw.Write([]byte(content))
	mw.Close()
	return buf, mw.FormDataContentType()
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.TokenResponse{
			AccessToken:  "test-access-token",
			RefreshToken: "test-refresh-token",
			ExpiresIn:    900,
		},
	}
	h := NewAuthHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Username: "staff1",
		Password: "password123",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrInvalidCredentials})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Username: "staff1",
		Password: "wrong",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11001 {
		t.Errorf("expected error code 11001, got %d", resp.Code)
	}
}

func TestAuthHandler_RefreshToken_Invalid(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{refreshErr: service.ErrRefreshInvalid})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/refresh", jsonBody(dto.RefreshTokenRequest{
		RefreshToken: "stale-token",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/refresh", h.RefreshToken)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 11002 {
		t.Errorf("expected error code 11002, got %d", resp.Code)
	}
}

func TestAuthHandler_GetCurrentUser_Unauthenticated(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/auth/me", nil)

	// 未注入认证上下文
	r := gin.New()
	r.GET("/auth/me", h.GetCurrentUser)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuthHandler_Logout_Success(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/logout", nil)

	r := gin.New()
	r.POST("/auth/logout", withAuth("staff", ""), h.Logout)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestAuthHandler_ChangePassword_WrongOld(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{changePassErr: service.ErrOldPasswordWrong})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/auth/password", jsonBody(dto.ChangePasswordRequest{
		OldPassword: "wrong",
		NewPassword: "new_password_123",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/auth/password", withAuth("staff", ""), h.ChangePassword)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 11004 {
		t.Errorf("expected error code 11004, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// StudentHandler Tests
// ═══════════════════════════════════════════════════════════

func TestStudentHandler_Get_Success(t *testing.T) {
	h := NewStudentHandler(&mockStudentService{
		getResult: &dto.StudentResponse{ID: "s1", Name: "Alice"},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/students/s1", nil)

	r := gin.New()
	r.GET("/students/:id", withAuth("staff", ""), h.GetStudent)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestStudentHandler_Get_Forbidden(t *testing.T) {
	h := NewStudentHandler(&mockStudentService{getErr: service.ErrNoPermission})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/students/s2", nil)

	r := gin.New()
	r.GET("/students/:id", withAuth("student", "s1"), h.GetStudent)
	r.ServeHTTP(w, req)

	// 越权是可见的 403 响应，而不是静默空结果
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 10003 {
		t.Errorf("expected error code 10003, got %d", resp.Code)
	}
}

func TestStudentHandler_Get_NotFound(t *testing.T) {
	h := NewStudentHandler(&mockStudentService{getErr: service.ErrStudentNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/students/ghost", nil)

	r := gin.New()
	r.GET("/students/:id", withAuth("staff", ""), h.GetStudent)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 12001 {
		t.Errorf("expected error code 12001, got %d", resp.Code)
	}
}

func TestStudentHandler_Create_Success(t *testing.T) {
	h := NewStudentHandler(&mockStudentService{
		createResult: &dto.StudentResponse{ID: "s-new", Name: "新同学"},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/students", jsonBody(dto.CreateStudentRequest{
		Name:  "新同学",
		Email: "new@test.com",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/students", withAuth("staff", ""), h.CreateStudent)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestStudentHandler_Create_BadEmail(t *testing.T) {
	h := NewStudentHandler(&mockStudentService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/students", jsonBody(map[string]string{
		"name":  "新同学",
		"email": "not-an-email",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/students", withAuth("staff", ""), h.CreateStudent)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// GradeHandler Tests
// ═══════════════════════════════════════════════════════════

func TestGradeHandler_Edit_Success(t *testing.T) {
	h := NewGradeHandler(&mockGradeService{
		editResult: &dto.GradeResponse{ID: "g1", StudentID: "s1", Course: "Math", Score: 95},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/grades", jsonBody(dto.EditGradeRequest{
		StudentID: "11111111-1111-1111-1111-111111111111",
		Course:    "Math",
		Score:     95,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/grades", withAuth("professor", ""), h.EditGrade)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestGradeHandler_Edit_ScoreOutOfRange(t *testing.T) {
	h := NewGradeHandler(&mockGradeService{editErr: service.ErrScoreOutOfRange})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/grades", jsonBody(dto.EditGradeRequest{
		StudentID: "11111111-1111-1111-1111-111111111111",
		Course:    "Math",
		Score:     100,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/grades", withAuth("professor", ""), h.EditGrade)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 13001 {
		t.Errorf("expected error code 13001, got %d", resp.Code)
	}
}

func TestGradeHandler_BulkUpload_Success(t *testing.T) {
	h := NewGradeHandler(&mockGradeService{
		parseResult: []service.GradeRow{{Row: 1, StudentID: "s1", Course: "Math", ScoreRaw: "95"}},
		bulkResult:  &dto.BulkUploadResponse{Total: 1, Success: 1},
	})

	body, contentType := multipartBody(t, "file", "grades.csv", "s1,Math,95\n")
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/grades/upload", body)
	req.Header.Set("Content-Type", contentType)

	r := gin.New()
	r.POST("/grades/upload", withAuth("staff", ""), h.BulkUpload)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestGradeHandler_BulkUpload_MissingFile(t *testing.T) {
	h := NewGradeHandler(&mockGradeService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/grades/upload", nil)

	r := gin.New()
	r.POST("/grades/upload", withAuth("staff", ""), h.BulkUpload)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestGradeHandler_BulkUpload_NoData(t *testing.T) {
	h := NewGradeHandler(&mockGradeService{parseErr: service.ErrImportNoData})

	body, contentType := multipartBody(t, "file", "grades.csv", "")
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/grades/upload", body)
	req.Header.Set("Content-Type", contentType)

	r := gin.New()
	r.POST("/grades/upload", withAuth("staff", ""), h.BulkUpload)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 13003 {
		t.Errorf("expected error code 13003, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// MessageHandler Tests
// ═══════════════════════════════════════════════════════════

func TestMessageHandler_Send_Success(t *testing.T) {
	h := NewMessageHandler(&mockMessageService{
		sendResult: &dto.MessageResponse{ID: "m1", SenderID: "test-user-id", Body: "你好"},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/messages", jsonBody(dto.SendMessageRequest{
		RecipientID: "22222222-2222-2222-2222-222222222222",
		Body:        "你好",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/messages", withAuth("student", "s1"), h.SendMessage)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestMessageHandler_Send_RecipientNotFound(t *testing.T) {
	h := NewMessageHandler(&mockMessageService{sendErr: service.ErrRecipientNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/messages", jsonBody(dto.SendMessageRequest{
		RecipientID: "22222222-2222-2222-2222-222222222222",
		Body:        "你好",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/messages", withAuth("student", "s1"), h.SendMessage)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 14002 {
		t.Errorf("expected error code 14002, got %d", resp.Code)
	}
}

func TestMessageHandler_List_Success(t *testing.T) {
	h := NewMessageHandler(&mockMessageService{
		listResult: []dto.MessageResponse{{ID: "m1", Body: "第一条"}},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/messages", nil)

	r := gin.New()
	r.GET("/messages", withAuth("student", "s1"), h.ListMessages)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// AssignmentHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAssignmentHandler_Upload_Success(t *testing.T) {
	h := NewAssignmentHandler(&mockAssignmentService{
		uploadResult: &dto.AssignmentResponse{ID: "a1", StudentID: "s1", FileName: "homework.pdf"},
	})

	body, contentType := multipartBody(t, "file", "homework.pdf", "作业内容")
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/assignments/upload", body)
	req.Header.Set("Content-Type", contentType)

	r := gin.New()
	r.POST("/assignments/upload", withAuth("student", "s1"), h.Upload)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestAssignmentHandler_Upload_NoStudentProfile(t *testing.T) {
	h := NewAssignmentHandler(&mockAssignmentService{})

	body, contentType := multipartBody(t, "file", "homework.pdf", "作业内容")
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/assignments/upload", body)
	req.Header.Set("Content-Type", contentType)

	// Token 未携带学生档案 ID
	r := gin.New()
	r.POST("/assignments/upload", withAuth("student", ""), h.Upload)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}

func TestAssignmentHandler_Upload_BannedType(t *testing.T) {
	h := NewAssignmentHandler(&mockAssignmentService{uploadErr: service.ErrFileTypeBanned})

	body, contentType := multipartBody(t, "file", "virus.exe", "x")
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/assignments/upload", body)
	req.Header.Set("Content-Type", contentType)

	r := gin.New()
	r.POST("/assignments/upload", withAuth("student", "s1"), h.Upload)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 15003 {
		t.Errorf("expected error code 15003, got %d", resp.Code)
	}
}

func TestAssignmentHandler_List_DefaultsToOwn(t *testing.T) {
	h := NewAssignmentHandler(&mockAssignmentService{
		listResult: []dto.AssignmentResponse{{ID: "a1", StudentID: "s1"}},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/assignments", nil)

	r := gin.New()
	r.GET("/assignments", withAuth("student", "s1"), h.List)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestAssignmentHandler_Download_Success(t *testing.T) {
	h := NewAssignmentHandler(&mockAssignmentService{
		downloadBody: "作业内容",
		downloadResult: &dto.AssignmentResponse{
			ID: "a1", StudentID: "s1", FileName: "homework.pdf",
			SizeBytes: 12, ContentType: "application/pdf",
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/assignments/a1/download", nil)

	r := gin.New()
	r.GET("/assignments/:id/download", withAuth("professor", ""), h.Download)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if got := w.Header().Get("Content-Disposition"); got != `attachment; filename="homework.pdf"` {
		t.Errorf("unexpected Content-Disposition: %s", got)
	}
	if w.Body.String() != "作业内容" {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestAssignmentHandler_Download_NotFound(t *testing.T) {
	h := NewAssignmentHandler(&mockAssignmentService{
		downloadErr: service.ErrAssignmentNotFound,
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/assignments/ghost/download", nil)

	r := gin.New()
	r.GET("/assignments/:id/download", withAuth("staff", ""), h.Download)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 15004 {
		t.Errorf("expected error code 15004, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_Success(t *testing.T) {
	h := NewExportHandler(&mockExportService{
		buf:         bytes.NewBufferString("%PDF-1.3 fake"),
		filename:    "student_s1.pdf",
		contentType: "application/pdf",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/students/s1?format=pdf", nil)

	r := gin.New()
	r.GET("/export/students/:id", withAuth("staff", ""), h.ExportStudent)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("expected application/pdf, got %s", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd != `attachment; filename="student_s1.pdf"` {
		t.Errorf("Content-Disposition 错误: %s", cd)
	}
}

func TestExportHandler_BadFormat(t *testing.T) {
	h := NewExportHandler(&mockExportService{err: service.ErrExportBadFormat})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/students/s1?format=docx", nil)

	r := gin.New()
	r.GET("/export/students/:id", withAuth("staff", ""), h.ExportStudent)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 16001 {
		t.Errorf("expected error code 16001, got %d", resp.Code)
	}
}

func TestExportHandler_StudentNotFound(t *testing.T) {
	h := NewExportHandler(&mockExportService{err: service.ErrStudentNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/students/ghost", nil)

	r := gin.New()
	r.GET("/export/students/:id", withAuth("staff", ""), h.ExportStudent)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}
