/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */


package command

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	mssql "github.com/microsoft/go-mssqldb"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mssqldialect"
)

func TestParamsNamesAreCaseInsensitive(t *testing.T) {
	p := NewParams().Add("@UserId", 1).Add("Name", "alice").Add("userid", 2)

	if p.Len() != 2 {
		t.Fatalf("Len = %d, want 2", p.Len())
	}
	if got := p.Value("USERID"); got != 2 {
		t.Fatalf("UserId = %v, want 2", got)
	}
	names := p.Names()
	if names[0] != "@UserId" || names[1] != "Name" {
		t.Fatalf("names = %v", names)
	}
}

func TestParamsReserved(t *testing.T) {
	p := NewParams().AddReserved()
	if p.Message() != "" {
		t.Fatalf("Message = %q", p.Message())
	}
	if _, ok := p.ReturnValue(); ok {
		t.Fatal("unset return_value must not report ok")
	}

	p.AddWithDirection(ReturnValueParam, []byte("1"), ReturnValue)
	p.AddWithDirection(MessageParam, []byte("denied"), InputOutput)
	if rv, ok := p.ReturnValue(); !ok || rv != FailureReturnValue {
		t.Fatalf("return_value = %d, %v", rv, ok)
	}
	if p.Message() != "denied" {
		t.Fatalf("Message = %q", p.Message())
	}
}

func TestNewCommandType(t *testing.T) {
	tests := []struct {
		target string
		want   CommandType
	}{
		{"usp_GetUser", StoredProcedure},
		{"dbo.usp_GetUser", StoredProcedure},
		{" usp_GetUser ", StoredProcedure},
		{"SELECT * FROM users", Text},
		{"", Text},
	}
	for _, tt := range tests {
		if got := NewCommand(tt.target, nil).Type; got != tt.want {
			t.Errorf("NewCommand(%q).Type = %s, want %s", tt.target, got, tt.want)
		}
	}
}

func TestRender(t *testing.T) {
	params := NewParams().Add("Id", 42).Add("@Name", nil).AddReserved()
	cmd := NewProcedureCommand("usp_SaveUser", params)

	want := "exec usp_SaveUser\n@Id = 42\n@Name = null\n@Message = "
	if got := cmd.Render(); got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}

	text := NewTextCommand("SELECT 1", nil)
	if got := text.Render(); got != "SELECT 1" {
		t.Fatalf("Render() = %q", got)
	}
}

func TestIsConstraintError(t *testing.T) {
	tests := []struct {
		msg  string
		want bool
	}{
		{`The INSERT statement conflicted with the CHECK constraint "CK_Age_Positive".`, true},
		{`The DELETE statement conflicted with the REFERENCE constraint "F_Order_User".`, true},
		{`Violation of UNIQUE KEY constraint 'U_User_Email'.`, true},
		{"Transaction was deadlocked", false},
		{"Login failed", false},
	}
	for _, tt := range tests {
		if got := IsConstraintError(tt.msg); got != tt.want {
			t.Errorf("IsConstraintError(%q) = %v, want %v", tt.msg, got, tt.want)
		}
	}
}

func TestSplitProcedureName(t *testing.T) {
	tests := []struct {
		in, schema, name string
	}{
		{"usp_GetUser", "", "usp_GetUser"},
		{"dbo.usp_GetUser", "dbo", "usp_GetUser"},
		{"[dbo].[usp_GetUser]", "dbo", "usp_GetUser"},
		{" sales.\"usp_Orders\"", "sales", "usp_Orders"},
		{"shop.sales.usp_Orders", "sales", "usp_Orders"},
	}
	for _, tt := range tests {
		schema, name := splitProcedureName(tt.in)
		if schema != tt.schema || name != tt.name {
			t.Errorf("splitProcedureName(%q) = %q, %q; want %q, %q", tt.in, schema, name, tt.schema, tt.name)
		}
	}
}

func TestEnums(t *testing.T) {
	if MultipleRecords.Name() != "MultipleRecords" || !MultipleRecords.IsValid() {
		t.Fatalf("MultipleRecords = %s", MultipleRecords)
	}
	if Mode(7).IsValid() || Mode(7).Number() != -1 {
		t.Fatal("Mode(7) must be invalid")
	}
	if !ReturnValue.IsOutput() || Input.IsOutput() {
		t.Fatal("IsOutput mismatch")
	}
	if Direction(9).Name() != "unknown" {
		t.Fatalf("Direction(9) = %s", Direction(9))
	}
}

func TestOutBinder(t *testing.T) {
	in := &Param{Name: "@Id", Value: 1, Direction: Input}
	arg, collect := OutBinder{}.Bind(in)
	named, ok := arg.(sql.NamedArg)
	if !ok || named.Name != "Id" || named.Value != 1 || collect != nil {
		t.Fatalf("input bound as %#v", arg)
	}

	msg := &Param{Name: MessageParam, Value: "", Direction: InputOutput}
	arg, _ = OutBinder{}.Bind(msg)
	out, ok := arg.(sql.NamedArg).Value.(sql.Out)
	if !ok || !out.In {
		t.Fatalf("output bound as %#v", arg)
	}
	*out.Dest.(*interface{}) = "saved"
	if msg.Value != "saved" {
		t.Fatalf("Message = %v", msg.Value)
	}
}

func TestMSSQLBinderReturnStatus(t *testing.T) {
	rv := &Param{Name: ReturnValueParam, Direction: ReturnValue}
	arg, collect := MSSQLBinder{}.Bind(rv)
	status, ok := arg.(*mssql.ReturnStatus)
	if !ok || collect == nil {
		t.Fatalf("return value bound as %#v", arg)
	}
	*status = 1
	collect()
	if rv.Value != int64(1) {
		t.Fatalf("return_value = %#v", rv.Value)
	}
}

func TestDefaultBinderByDialect(t *testing.T) {
	sqldb, _, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	db := bun.NewDB(sqldb, mssqldialect.New())
	defer db.Close()

	if _, ok := NewExecutor(db).binder.(MSSQLBinder); !ok {
		t.Fatal("expected MSSQLBinder for SQL Server")
	}
	if _, ok := NewExecutor(nil).binder.(OutBinder); !ok {
		t.Fatal("expected OutBinder without a database")
	}
}
