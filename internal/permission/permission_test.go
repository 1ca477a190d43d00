package permission

import "testing"

func TestCan_Table(t *testing.T) {
	cases := []struct {
		role   Role
		action Action
		want   bool
	}{
		{RoleProfessor, ActionEditGrades, true},
		{RoleProfessor, ActionViewStudents, true},
		{RoleProfessor, ActionExport, true},
		{RoleProfessor, ActionManageRecords, false},
		{RoleProfessor, ActionUploadAssignment, false},
		{RoleProfessor, ActionSendMessage, false},

		{RoleStaff, ActionManageRecords, true},
		{RoleStaff, ActionEditGrades, true},
		{RoleStaff, ActionViewStudents, true},
		{RoleStaff, ActionExport, true},
		{RoleStaff, ActionUploadAssignment, false},
		{RoleStaff, ActionViewOwnRecord, false},

		{RoleStudent, ActionViewOwnRecord, true},
		{RoleStudent, ActionUploadAssignment, true},
		{RoleStudent, ActionSendMessage, true},
		{RoleStudent, ActionEditGrades, false},
		{RoleStudent, ActionViewStudents, false},
		{RoleStudent, ActionExport, false},
	}

	for _, tc := range cases {
		if got := Can(tc.role, tc.action); got != tc.want {
			t.Errorf("Can(%s, %s)=%v，期望 %v", tc.role, tc.action, got, tc.want)
		}
	}
}

func TestCan_Deterministic(t *testing.T) {
	// 相同输入多次调用结果必须一致
	for i := 0; i < 100; i++ {
		if !Can(RoleStaff, ActionExport) {
			t.Fatalf("Can(staff, export) 第 %d 次调用结果不一致", i)
		}
	}
}

func TestCan_UnknownRoleOrAction(t *testing.T) {
	if Can(Role("admin"), ActionExport) {
		t.Error("未知角色应一律拒绝")
	}
	if Can(RoleStaff, Action("drop_tables")) {
		t.Error("未知操作应一律拒绝")
	}
}

func TestRole_Valid(t *testing.T) {
	for _, r := range []Role{RoleStudent, RoleProfessor, RoleStaff} {
		if !r.Valid() {
			t.Errorf("角色 %s 应为合法值", r)
		}
	}
	if Role("admin").Valid() {
		t.Error("admin 不是合法角色")
	}
	if Role("").Valid() {
		t.Error("空角色不是合法值")
	}
}
