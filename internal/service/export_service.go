package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/am-bush650/student-management-system/internal/model"
	"github.com/am-bush650/student-management-system/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportBadFormat    = errors.New("不支持的导出格式")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// 支持的导出格式
const (
	FormatPDF  = "pdf"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// ExportService 学生档案导出业务接口
//
// 设计说明：
//   - 每次调用即时生成，不做缓存
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
//   - 学生不存在时返回 ErrStudentNotFound，不返回部分数据
type ExportService interface {
	// ExportStudent 将学生档案与全部成绩渲染为指定格式
	// 返回值：buf（文件内容）, filename（建议文件名）, contentType, error
	ExportStudent(ctx context.Context, studentID, format string) (*bytes.Buffer, string, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

func (s *exportService) ExportStudent(ctx context.Context, studentID, format string) (*bytes.Buffer, string, string, error) {
	if format != FormatPDF && format != FormatCSV && format != FormatXLSX {
		return nil, "", "", ErrExportBadFormat
	}

	// 1. 查询学生档案
	student, err := s.repo.Student.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", "", ErrStudentNotFound
		}
		s.logger.Error("查询学生失败", zap.Error(err))
		return nil, "", "", err
	}

	// 2. 查询全部成绩
	grades, err := s.repo.Grade.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("查询成绩失败", zap.Error(err))
		return nil, "", "", err
	}

	// 3. 渲染
	var buf *bytes.Buffer
	var contentType string
	switch format {
	case FormatCSV:
		buf, err = renderCSV(student, grades)
		contentType = "text/csv; charset=utf-8"
	case FormatXLSX:
		buf, err = renderXLSX(student, grades)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		buf, err = renderPDF(student, grades)
		contentType = "application/pdf"
	}
	if err != nil {
		s.logger.Error("渲染导出文件失败", zap.String("format", format), zap.Error(err))
		return nil, "", "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("student_%s.%s", student.StudentID, format)
	return buf, filename, contentType, nil
}

// ── 各格式渲染 ──

func renderCSV(student *model.Student, grades []model.Grade) (*bytes.Buffer, error) {
	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)

	rows := [][]string{
		{"student_id", student.StudentID},
		{"name", student.Name},
		{"email", student.Email},
		{"major", student.Major},
		{"enrolled_at", student.EnrolledAt.Format("2006-01-02")},
		{},
		{"course", "score"},
	}
	for _, g := range grades {
		rows = append(rows, []string{g.Course, strconv.FormatFloat(g.Score, 'f', 2, 64)})
	}

	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf, nil
}

func renderXLSX(student *model.Student, grades []model.Grade) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheetName = "学生档案"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 16)
	f.SetColWidth(sheetName, "B", "B", 30)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 档案区
	info := [][]interface{}{
		{"学号", student.StudentID},
		{"姓名", student.Name},
		{"邮箱", student.Email},
		{"专业", student.Major},
		{"入学日期", student.EnrolledAt.Format("2006-01-02")},
	}
	row := 1
	for _, pair := range info {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), pair[0])
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), pair[1])
		row++
	}

	// 成绩区
	row++
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "课程")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), "分数")
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), headerStyle)
	row++
	for _, g := range grades {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), g.Course)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), g.Score)
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// renderPDF 生成 PDF 版学生档案
// gofpdf 内置字体不含 CJK 字形，表头使用英文，避免乱码
func renderPDF(student *model.Student, grades []model.Grade) (*bytes.Buffer, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Student Record")
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 11)
	info := [][2]string{
		{"Student ID", student.StudentID},
		{"Name", student.Name},
		{"Email", student.Email},
		{"Major", student.Major},
		{"Enrolled", student.EnrolledAt.Format("2006-01-02")},
	}
	for _, pair := range info {
		pdf.CellFormat(35, 8, pair[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 8, pair[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	// 成绩表
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(68, 114, 196)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(120, 8, "Course", "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 8, "Score", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(0, 0, 0)
	for _, g := range grades {
		pdf.CellFormat(120, 8, g.Course, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, strconv.FormatFloat(g.Score, 'f', 2, 64), "1", 1, "R", false, 0, "")
	}
	if len(grades) == 0 {
		pdf.CellFormat(160, 8, "No grades recorded", "1", 1, "C", false, 0, "")
	}

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, err
	}
	return buf, nil
}
