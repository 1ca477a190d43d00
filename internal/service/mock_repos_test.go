package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/am-bush650/student-management-system/internal/model"
	"github.com/am-bush650/student-management-system/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "user-" + user.Username
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	if _, ok := m.users[user.UserID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.users[user.UserID] = user
	return nil
}

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	students map[string]*model.Student
}

func newMockStudentRepo() *mockStudentRepo {
	return &mockStudentRepo{students: make(map[string]*model.Student)}
}

func (m *mockStudentRepo) Create(_ context.Context, student *model.Student) error {
	if student.StudentID == "" {
		student.StudentID = "stu-" + student.Name
	}
	m.students[student.StudentID] = student
	return nil
}

func (m *mockStudentRepo) GetByID(_ context.Context, id string) (*model.Student, error) {
	if s, ok := m.students[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) GetByUserID(_ context.Context, userID string) (*model.Student, error) {
	for _, s := range m.students {
		if s.UserID != nil && *s.UserID == userID {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) Update(_ context.Context, student *model.Student) error {
	if _, ok := m.students[student.StudentID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.students[student.StudentID] = student
	return nil
}

func (m *mockStudentRepo) List(_ context.Context, offset, limit int) ([]model.Student, int64, error) {
	all := make([]model.Student, 0, len(m.students))
	for _, s := range m.students {
		all = append(all, *s)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })

	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

// ── Mock GradeRepository ──

type mockGradeRepo struct {
	grades map[string]*model.Grade // key: studentID|course

	// failOnCourse 非空时，Upsert 该课程立即报错（事务回滚场景用）
	failOnCourse string
}

func newMockGradeRepo() *mockGradeRepo {
	return &mockGradeRepo{grades: make(map[string]*model.Grade)}
}

func gradeKey(studentID, course string) string {
	return studentID + "|" + course
}

func (m *mockGradeRepo) Upsert(_ context.Context, grade *model.Grade) error {
	if m.failOnCourse != "" && grade.Course == m.failOnCourse {
		return fmt.Errorf("模拟写入失败: %s", grade.Course)
	}
	key := gradeKey(grade.StudentID, grade.Course)
	if existing, ok := m.grades[key]; ok {
		existing.Score = grade.Score
		existing.UpdatedAt = time.Now()
		return nil
	}
	if grade.GradeID == "" {
		grade.GradeID = "grade-" + key
	}
	grade.UpdatedAt = time.Now()
	cp := *grade
	m.grades[key] = &cp
	return nil
}

func (m *mockGradeRepo) GetByStudentCourse(_ context.Context, studentID, course string) (*model.Grade, error) {
	if g, ok := m.grades[gradeKey(studentID, course)]; ok {
		return g, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGradeRepo) ListByStudent(_ context.Context, studentID string) ([]model.Grade, error) {
	var result []model.Grade
	for _, g := range m.grades {
		if g.StudentID == studentID {
			result = append(result, *g)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Course < result[j].Course })
	return result, nil
}

func (m *mockGradeRepo) CountByStudent(_ context.Context, studentID string) (int64, error) {
	var n int64
	for _, g := range m.grades {
		if g.StudentID == studentID {
			n++
		}
	}
	return n, nil
}

// ── Mock MessageRepository ──

type mockMessageRepo struct {
	messages []*model.Message
}

func newMockMessageRepo() *mockMessageRepo {
	return &mockMessageRepo{}
}

func (m *mockMessageRepo) Create(_ context.Context, message *model.Message) error {
	if message.MessageID == "" {
		message.MessageID = fmt.Sprintf("msg-%d", len(m.messages)+1)
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}
	m.messages = append(m.messages, message)
	return nil
}

func (m *mockMessageRepo) ListByUser(_ context.Context, userID string) ([]model.Message, error) {
	var result []model.Message
	for _, msg := range m.messages {
		if msg.SenderID == userID || msg.RecipientID == userID {
			result = append(result, *msg)
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

// ── Mock AssignmentRepository ──

type mockAssignmentRepo struct {
	assignments []*model.Assignment

	// failCreate 为 true 时 Create 报错（孤儿文件清理场景用）
	failCreate bool
}

func newMockAssignmentRepo() *mockAssignmentRepo {
	return &mockAssignmentRepo{}
}

func (m *mockAssignmentRepo) Create(_ context.Context, assignment *model.Assignment) error {
	if m.failCreate {
		return fmt.Errorf("模拟写入失败")
	}
	if assignment.AssignmentID == "" {
		assignment.AssignmentID = fmt.Sprintf("asn-%d", len(m.assignments)+1)
	}
	if assignment.CreatedAt.IsZero() {
		assignment.CreatedAt = time.Now()
	}
	m.assignments = append(m.assignments, assignment)
	return nil
}

func (m *mockAssignmentRepo) GetByID(_ context.Context, id string) (*model.Assignment, error) {
	for _, a := range m.assignments {
		if a.AssignmentID == id {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssignmentRepo) ListByStudent(_ context.Context, studentID string) ([]model.Assignment, error) {
	var result []model.Assignment
	for _, a := range m.assignments {
		if a.StudentID == studentID {
			result = append(result, *a)
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

// ── Mock TxManager ──
//
// 写入失败时恢复成绩表快照，模拟整批回滚

type mockTxManager struct {
	repo   *repository.Repository
	grades *mockGradeRepo
}

func (m *mockTxManager) Transaction(_ context.Context, fn func(txRepo *repository.Repository) error) error {
	snapshot := make(map[string]*model.Grade, len(m.grades.grades))
	for k, v := range m.grades.grades {
		cp := *v
		snapshot[k] = &cp
	}

	if err := fn(m.repo); err != nil {
		m.grades.grades = snapshot
		return err
	}
	return nil
}

// ── 测试装配 ──

type testRepos struct {
	users       *mockUserRepo
	students    *mockStudentRepo
	grades      *mockGradeRepo
	messages    *mockMessageRepo
	assignments *mockAssignmentRepo
}

// newTestRepository 构造全 mock 的 Repository 聚合
func newTestRepository() (*testRepos, *repository.Repository) {
	mocks := &testRepos{
		users:       newMockUserRepo(),
		students:    newMockStudentRepo(),
		grades:      newMockGradeRepo(),
		messages:    newMockMessageRepo(),
		assignments: newMockAssignmentRepo(),
	}
	repo := &repository.Repository{
		User:       mocks.users,
		Student:    mocks.students,
		Grade:      mocks.grades,
		Message:    mocks.messages,
		Assignment: mocks.assignments,
	}
	repo.Tx = &mockTxManager{repo: repo, grades: mocks.grades}
	return mocks, repo
}
